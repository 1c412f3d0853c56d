package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

func TestRandomStateUnguessable(t *testing.T) {
	first, err := randomState()
	require.NoError(t, err)
	second, err := randomState()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	raw, err := base64.RawURLEncoding.DecodeString(first)
	require.NoError(t, err)
	assert.Len(t, raw, 16)
}

func TestGetGoogleAuthURLGeneratesState(t *testing.T) {
	gin.SetMode(gin.TestMode)

	prev := googleOAuthConfig
	googleOAuthConfig = &oauth2.Config{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost/cb",
		Endpoint:     google.Endpoint,
	}
	defer func() { googleOAuthConfig = prev }()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/auth/google/url", nil)

	GetGoogleAuthURL(c)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		URL   string `json:"url"`
		State string `json:"state"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body.State)
	assert.NotEqual(t, "state", body.State)
	assert.Contains(t, body.URL, "state="+body.State)
}

func TestGetGoogleAuthURLEchoesClientState(t *testing.T) {
	gin.SetMode(gin.TestMode)

	prev := googleOAuthConfig
	googleOAuthConfig = &oauth2.Config{ClientID: "client", Endpoint: google.Endpoint}
	defer func() { googleOAuthConfig = prev }()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/auth/google/url?state=client-chosen", nil)

	GetGoogleAuthURL(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "client-chosen")
}
