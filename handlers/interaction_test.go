package handlers

import (
	"testing"

	"blogify/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFindComment(t *testing.T) {
	first := models.Comment{ID: primitive.NewObjectID(), Content: "first"}
	second := models.Comment{ID: primitive.NewObjectID(), Content: "second"}
	post := &models.Post{Comments: []models.Comment{first, second}}

	got := findComment(post, second.ID)
	if assert.NotNil(t, got) {
		assert.Equal(t, "second", got.Content)
	}

	assert.Nil(t, findComment(post, primitive.NewObjectID()))
	assert.Nil(t, findComment(&models.Post{}, first.ID))
}

func TestFindCommentReturnsMutableReference(t *testing.T) {
	comment := models.Comment{ID: primitive.NewObjectID()}
	post := &models.Post{Comments: []models.Comment{comment}}

	user := primitive.NewObjectID()
	target := findComment(post, comment.ID)
	target.Likes, _ = toggleID(target.Likes, user)

	// The mutation must land on the embedded comment, not a copy
	assert.True(t, containsID(post.Comments[0].Likes, user))
}

func TestCommentLikeToggleRoundTrip(t *testing.T) {
	user := primitive.NewObjectID()
	comment := &models.Comment{ID: primitive.NewObjectID()}

	var liked bool
	comment.Likes, liked = toggleID(comment.Likes, user)
	assert.True(t, liked)
	assert.Len(t, comment.Likes, 1)

	comment.Likes, liked = toggleID(comment.Likes, user)
	assert.False(t, liked)
	assert.Len(t, comment.Likes, 0)
}
