package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, ValidCategory(c), c)
	}

	assert.False(t, ValidCategory(""))
	assert.False(t, ValidCategory("ai"))
	assert.False(t, ValidCategory("Gardening"))
}

// The author summary on comments and replies is a response-only join: it must
// appear in the JSON body but never land in the stored document.
func TestCommentAuthorSummaryResponseOnly(t *testing.T) {
	comment := Comment{
		ID:      primitive.NewObjectID(),
		Content: "nice post",
		Author:  primitive.NewObjectID(),
		User:    &AuthorSummary{ID: primitive.NewObjectID(), Username: "ada", ProfilePic: "/a.png"},
	}

	body, err := json.Marshal(comment)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"user"`)
	assert.Contains(t, string(body), `"ada"`)

	raw, err := bson.Marshal(comment)
	require.NoError(t, err)
	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.NotContains(t, doc, "user")
}

func TestReplyAuthorSummaryResponseOnly(t *testing.T) {
	reply := Reply{
		ID:      primitive.NewObjectID(),
		Content: "agreed",
		Author:  primitive.NewObjectID(),
		User:    &AuthorSummary{ID: primitive.NewObjectID(), Username: "lin"},
	}

	body, err := json.Marshal(reply)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"user"`)

	raw, err := bson.Marshal(reply)
	require.NoError(t, err)
	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.NotContains(t, doc, "user")
}
