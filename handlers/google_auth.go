package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"blogify/database"
	"blogify/middleware"
	"blogify/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var googleOAuthConfig *oauth2.Config

// InitGoogleOAuth builds the oauth2 config from the loaded configuration.
// Google sign-in stays disabled when the credentials are absent.
func InitGoogleOAuth() {
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		logrus.Warn("Google OAuth not configured - set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET")
		return
	}
	googleOAuthConfig = &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
	logrus.Info("Google OAuth configured")
}

// randomState mints an unguessable CSRF token for the consent redirect. The
// client echoes it back and compares against what it stored.
func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// GetGoogleAuthURL hands the client the consent-screen URL.
func GetGoogleAuthURL(c *gin.Context) {
	if googleOAuthConfig == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google OAuth not configured"})
		return
	}
	state := c.Query("state")
	if state == "" {
		var err error
		if state, err = randomState(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate state"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"url": googleOAuthConfig.AuthCodeURL(state), "state": state})
}

// GoogleOAuthCallback exchanges the authorization code, fetches the Google
// profile and signs the user in, creating the account on first sign-in.
func GoogleOAuthCallback(c *gin.Context) {
	if googleOAuthConfig == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google OAuth not configured"})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Authorization code missing"})
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	token, err := googleOAuthConfig.Exchange(ctx, code)
	if err != nil {
		logrus.WithError(err).Error("google oauth: token exchange failed")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to exchange authorization code"})
		return
	}

	client := googleOAuthConfig.Client(ctx, token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		logrus.WithError(err).Error("google oauth: userinfo fetch failed")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to get user information"})
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read user information"})
		return
	}

	var info googleUserInfo
	if err := json.Unmarshal(body, &info); err != nil || info.Email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user information from Google"})
		return
	}

	user, err := upsertOAuthUser(info)
	if err != nil {
		logrus.WithError(err).Error("google oauth: upsert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in"})
		return
	}

	tokenString, err := middleware.IssueToken(cfg.JWTSecret, user.ID.Hex(), user.Email, user.HasSetUsername, cfg.TokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":          tokenString,
		"userId":         user.ID.Hex(),
		"hasSetUsername": user.HasSetUsername,
	})
}

// upsertOAuthUser looks up a user by email and creates the document on first
// sign-in, mirroring the credentials registration defaults.
func upsertOAuthUser(info googleUserInfo) (*models.User, error) {
	ctx, cancel := reqContext()
	defer cancel()

	var user models.User
	err := database.Users.FindOne(ctx, bson.M{"email": info.Email}).Decode(&user)
	if err == nil {
		return &user, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	profilePic := info.Picture
	if profilePic == "" {
		profilePic = defaultAvatar
	}

	now := time.Now().Unix()
	user = models.User{
		ID:             primitive.NewObjectID(),
		Email:          info.Email,
		Provider:       "google",
		ProfilePic:     profilePic,
		Interests:      []string{},
		HasSetUsername: false,
		Followers:      []primitive.ObjectID{},
		Following:      []primitive.ObjectID{},
		Notifications:  models.NotificationPreferences{NewFollower: true, FollowingPost: true},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := database.Users.InsertOne(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}
