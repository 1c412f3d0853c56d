package handlers

import (
	"net/http"

	"blogify/database"
	"blogify/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type FollowRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// FollowUser adds the caller to the target's followers and the target to the
// caller's following list. The two writes are independent: if the second one
// fails after the first succeeds the graph is briefly lopsided. $addToSet
// keeps each side idempotent so a retry converges.
func FollowUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return
	}

	var req FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}

	targetID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if targetID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot follow yourself"})
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	var currentUser models.User
	if err := database.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&currentUser); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var target models.User
	err = database.Users.FindOne(ctx, bson.M{"_id": targetID}).Decode(&target)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		logrus.WithError(err).Error("follow: target lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow user"})
		return
	}

	if containsID(currentUser.Following, targetID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Already following this user"})
		return
	}

	if _, err := database.Users.UpdateOne(ctx, bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"following": targetID}}); err != nil {
		logrus.WithError(err).Error("follow: following update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow user"})
		return
	}
	if _, err := database.Users.UpdateOne(ctx, bson.M{"_id": targetID},
		bson.M{"$addToSet": bson.M{"followers": userID}}); err != nil {
		logrus.WithError(err).Error("follow: followers update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow user"})
		return
	}

	// Best effort; a failed notification never fails the follow.
	if target.Notifications.NewFollower {
		followerName := currentUser.Username
		if followerName == "" {
			followerName = "Someone"
		}
		SendPushNotification(targetID, "New Follower", followerName+" started following you")
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Successfully followed user",
		"followersCount": len(target.Followers) + 1,
		"followingCount": len(currentUser.Following) + 1,
	})
}

// UnfollowUser removes the caller from the target's followers and the target
// from the caller's following list.
func UnfollowUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return
	}

	var req FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}

	targetID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	var currentUser models.User
	if err := database.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&currentUser); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if !containsID(currentUser.Following, targetID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Not following this user"})
		return
	}

	if _, err := database.Users.UpdateOne(ctx, bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"following": targetID}}); err != nil {
		logrus.WithError(err).Error("unfollow: following update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfollow user"})
		return
	}
	if _, err := database.Users.UpdateOne(ctx, bson.M{"_id": targetID},
		bson.M{"$pull": bson.M{"followers": userID}}); err != nil {
		logrus.WithError(err).Error("unfollow: followers update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfollow user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully unfollowed user"})
}
