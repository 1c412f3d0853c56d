package handlers

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestToggleIDRoundTrip(t *testing.T) {
	user := primitive.NewObjectID()
	other := primitive.NewObjectID()
	ids := []primitive.ObjectID{other}

	ids, present := toggleID(ids, user)
	assert.True(t, present)
	assert.Len(t, ids, 2)

	// Toggling again restores the original state
	ids, present = toggleID(ids, user)
	assert.False(t, present)
	assert.Len(t, ids, 1)
	assert.True(t, containsID(ids, other))
	assert.False(t, containsID(ids, user))
}

func TestToggleIDEmptySet(t *testing.T) {
	user := primitive.NewObjectID()

	ids, present := toggleID(nil, user)
	assert.True(t, present)
	assert.Equal(t, []primitive.ObjectID{user}, ids)
}

func TestRemoveIDMissing(t *testing.T) {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	ids := removeID([]primitive.ObjectID{a}, b)
	assert.Equal(t, []primitive.ObjectID{a}, ids)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcde...", truncate("abcdefgh", 5))
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	assert.Equal(t, "héllo...", truncate("héllo wörld", 5))
	assert.Equal(t, "日本語...", truncate("日本語のテキスト", 3))

	// Never cut a multibyte rune in half
	for n := 0; n < 10; n++ {
		assert.True(t, utf8.ValidString(truncate("日本語のテキスト", n)))
	}
}
