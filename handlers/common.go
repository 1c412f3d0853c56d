package handlers

import (
	"context"
	"time"

	"blogify/config"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const defaultAvatar = "/default-avatar.png"

// cfg is the process configuration shared by all handlers, set once at startup.
var cfg *config.Config

// SetConfig wires the loaded configuration into the handlers package.
func SetConfig(c *config.Config) {
	cfg = c
}

// PushSubscription stores a browser push endpoint for one user.
type PushSubscription struct {
	ID     primitive.ObjectID   `bson:"_id,omitempty"`
	UserID primitive.ObjectID   `bson:"userId"`
	Sub    webpush.Subscription `bson:"sub"`
}

// reqContext returns the per-request database context. All handler I/O runs
// under this timeout.
func reqContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// currentUserID reads the authenticated caller's id set by the JWT middleware.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("userId"))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return userID, true
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// toggleID adds id to the set if absent and removes it if present. The second
// return value reports whether the id is in the set afterwards, so toggling
// twice always round-trips to the original state.
func toggleID(ids []primitive.ObjectID, id primitive.ObjectID) ([]primitive.ObjectID, bool) {
	if containsID(ids, id) {
		return removeID(ids, id), false
	}
	return append(ids, id), true
}

// truncate shortens s to at most n runes. Cutting on rune boundaries keeps
// multibyte text valid UTF-8.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
