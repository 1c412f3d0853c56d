package handlers

import (
	"net/http"
	"strings"
	"time"

	"blogify/database"
	"blogify/middleware"
	"blogify/models"

	"github.com/gin-gonic/gin"
	"github.com/nbutton23/zxcvbn-go"
	"github.com/pquerna/otp/totp"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// minPasswordScore is the zxcvbn threshold below which registration is refused.
const minPasswordScore = 3

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Code     string `json:"code"` // required once 2FA is enabled
}

// disposableDomains are throwaway providers refused at registration.
var disposableDomains = map[string]struct{}{
	"mailinator.com":     {},
	"guerrillamail.com":  {},
	"10minutemail.com":   {},
	"tempmail.com":       {},
	"temp-mail.org":      {},
	"throwawaymail.com":  {},
	"yopmail.com":        {},
	"getnada.com":        {},
	"maildrop.cc":        {},
	"dispostable.com":    {},
	"trashmail.com":      {},
	"fakeinbox.com":      {},
	"sharklasers.com":    {},
	"mailnesia.com":      {},
	"mintemail.com":      {},
	"spamgourmet.com":    {},
	"mytemp.email":       {},
	"burnermail.io":      {},
	"emailondeck.com":    {},
	"guerrillamail.info": {},
}

func isDisposableEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	domain := strings.ToLower(email[at+1:])
	_, found := disposableDomains[domain]
	return found
}

// passwordStrength scores a candidate password with zxcvbn (0-4).
func passwordStrength(password string) int {
	return zxcvbn.PasswordStrength(password, nil).Score
}

func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	ctx, cancel := reqContext()
	defer cancel()

	var existing models.User
	err := database.Users.FindOne(ctx, bson.M{"email": req.Email}).Decode(&existing)
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User with this email already exists"})
		return
	}
	if err != mongo.ErrNoDocuments {
		logrus.WithError(err).Error("register: email lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if isDisposableEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Disposable email addresses are not allowed"})
		return
	}

	if passwordStrength(req.Password) < minPasswordScore {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password is too weak. Please choose a stronger one."})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	hashed := string(hashedPassword)

	now := time.Now().Unix()
	user := models.User{
		ID:             primitive.NewObjectID(),
		Email:          req.Email,
		PasswordHash:   &hashed,
		Provider:       "credentials",
		ProfilePic:     defaultAvatar,
		Interests:      []string{},
		HasSetUsername: false,
		Followers:      []primitive.ObjectID{},
		Following:      []primitive.ObjectID{},
		Notifications:  models.NotificationPreferences{NewFollower: true, FollowingPost: true},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := database.Users.InsertOne(ctx, user); err != nil {
		logrus.WithError(err).Error("register: insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"userId":  user.ID.Hex(),
	})
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	ctx, cancel := reqContext()
	defer cancel()

	var user models.User
	err := database.Users.FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err != nil {
		logrus.WithError(err).Error("login: lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if user.PasswordHash == nil {
		// OAuth account without a password
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if user.TwoFactorEnabled {
		if req.Code == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Two-factor code required", "twoFactorRequired": true})
			return
		}
		if !totp.Validate(req.Code, user.TwoFactorSecret) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid two-factor code"})
			return
		}
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
		"message":        "Login successful",
	})
}
