package handlers

import (
	"net/http"

	"blogify/database"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

// DeleteAccount irreversibly removes the caller: their user document, their
// posts (comments go with them), their push subscription, and their edges in
// everyone else's follower/following arrays. The client gates this behind a
// confirmation step.
func DeleteAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	res, err := database.Users.DeleteOne(ctx, bson.M{"_id": userID})
	if err != nil {
		logrus.WithError(err).Error("delete account: user delete failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// Cleanup below is best effort; the account itself is already gone.
	if _, err := database.Posts.DeleteMany(ctx, bson.M{"author": userID}); err != nil {
		logrus.WithError(err).Warn("delete account: post cleanup failed")
	}
	if _, err := database.Users.UpdateMany(ctx, bson.M{},
		bson.M{"$pull": bson.M{"followers": userID, "following": userID}}); err != nil {
		logrus.WithError(err).Warn("delete account: graph cleanup failed")
	}
	if _, err := database.Subscriptions.DeleteOne(ctx, bson.M{"userId": userID}); err != nil {
		logrus.WithError(err).Warn("delete account: subscription cleanup failed")
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
