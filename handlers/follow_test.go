package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Self-follow is rejected before any database access, so no graph mutation
// can occur. The test runs without collection handles; touching the database
// would panic.
func TestFollowUserRejectsSelfFollow(t *testing.T) {
	gin.SetMode(gin.TestMode)

	userID := primitive.NewObjectID()
	body, _ := json.Marshal(FollowRequest{UserID: userID.Hex()})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/user/follow", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("userId", userID.Hex())

	FollowUser(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cannot follow yourself")
}

func TestFollowUserRejectsMalformedTarget(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/user/follow",
		bytes.NewReader([]byte(`{"userId":"not-an-object-id"}`)))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("userId", primitive.NewObjectID().Hex())

	FollowUser(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
