package handlers

import (
	"net/http"
	"time"

	"blogify/database"
	"blogify/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Like, save, comment and report all load the post document, mutate the
// embedded arrays in memory and write the whole document back. Concurrent
// requests against the same post are last-write-wins at document granularity;
// the blog's contention profile tolerates that and the original behaves the
// same way.

type LikeRequest struct {
	CommentID string `json:"commentId"`
}

type CommentRequest struct {
	Content         string `json:"content" binding:"required"`
	ParentCommentID string `json:"parentCommentId"`
}

type ReportRequest struct {
	Reason    string `json:"reason" binding:"required"`
	CommentID string `json:"commentId"`
}

// findComment locates a top-level comment by id.
func findComment(post *models.Post, id primitive.ObjectID) *models.Comment {
	for i := range post.Comments {
		if post.Comments[i].ID == id {
			return &post.Comments[i]
		}
	}
	return nil
}

func loadPost(c *gin.Context) (*models.Post, bool) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return nil, false
	}

	ctx, cancel := reqContext()
	defer cancel()

	var post models.Post
	err = database.Posts.FindOne(ctx, bson.M{"_id": postID}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return nil, false
	}
	if err != nil {
		logrus.WithError(err).Error("load post failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return nil, false
	}
	return &post, true
}

func savePost(c *gin.Context, post *models.Post) bool {
	ctx, cancel := reqContext()
	defer cancel()

	post.UpdatedAt = time.Now().Unix()
	if _, err := database.Posts.ReplaceOne(ctx, bson.M{"_id": post.ID}, post); err != nil {
		logrus.WithError(err).Error("save post failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return false
	}
	return true
}

// ToggleLike flips the caller's like on the post, or on a top-level comment
// when commentId is given.
func ToggleLike(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return
	}

	var req LikeRequest
	_ = c.ShouldBindJSON(&req) // empty body means: like the post itself

	post, ok := loadPost(c)
	if !ok {
		return
	}

	likes := &post.Likes
	if req.CommentID != "" {
		commentID, err := primitive.ObjectIDFromHex(req.CommentID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
			return
		}
		comment := findComment(post, commentID)
		if comment == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		likes = &comment.Likes
	}

	var isLiked bool
	*likes, isLiked = toggleID(*likes, userID)

	if !savePost(c, post) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"likes":   len(*likes),
		"isLiked": isLiked,
	})
}

// ToggleSave flips the caller in the post's savedBy set.
func ToggleSave(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return
	}

	post, ok := loadPost(c)
	if !ok {
		return
	}

	var isSaved bool
	post.SavedBy, isSaved = toggleID(post.SavedBy, userID)

	if !savePost(c, post) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"savedBy": len(post.SavedBy),
		"isSaved": isSaved,
	})
}

// AddComment appends a comment to the post, or a reply under the parent
// comment when parentCommentId is given.
func AddComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
		return
	}

	post, ok := loadPost(c)
	if !ok {
		return
	}

	now := time.Now().Unix()

	if req.ParentCommentID != "" {
		parentID, err := primitive.ObjectIDFromHex(req.ParentCommentID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid parent comment ID"})
			return
		}
		parent := findComment(post, parentID)
		if parent == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Parent comment not found"})
			return
		}

		reply := models.Reply{
			ID:        primitive.NewObjectID(),
			Content:   req.Content,
			Author:    userID,
			Likes:     []primitive.ObjectID{},
			Reports:   []models.Report{},
			CreatedAt: now,
		}
		parent.Replies = append(parent.Replies, reply)

		if !savePost(c, post) {
			return
		}
		reply.User = lookupAuthor(userID)
		c.JSON(http.StatusCreated, reply)
		return
	}

	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		Content:   req.Content,
		Author:    userID,
		Likes:     []primitive.ObjectID{},
		Replies:   []models.Reply{},
		Reports:   []models.Report{},
		CreatedAt: now,
	}
	post.Comments = append(post.Comments, comment)

	if !savePost(c, post) {
		return
	}
	comment.User = lookupAuthor(userID)
	c.JSON(http.StatusCreated, comment)
}

// ReportContent records a report against the post or one of its comments.
// Reports are stored for later review; nothing consumes them yet.
func ReportContent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return
	}

	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reason is required"})
		return
	}

	post, ok := loadPost(c)
	if !ok {
		return
	}

	report := models.Report{
		UserID:    userID,
		Reason:    req.Reason,
		CreatedAt: time.Now().Unix(),
	}

	if req.CommentID != "" {
		commentID, err := primitive.ObjectIDFromHex(req.CommentID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
			return
		}
		comment := findComment(post, commentID)
		if comment == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		comment.Reports = append(comment.Reports, report)
	} else {
		post.Reports = append(post.Reports, report)
	}

	if !savePost(c, post) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report submitted successfully"})
}
