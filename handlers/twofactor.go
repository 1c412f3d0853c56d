package handlers

import (
	"encoding/base64"
	"net/http"
	"time"

	"blogify/database"
	"blogify/models"

	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"
	"github.com/sirupsen/logrus"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Two-factor state machine: disabled -> setup stores a secret and QR code but
// leaves the enabled flag off -> a successful verify flips it on -> disable
// with a valid code clears everything. A failed verification never changes
// state.

const totpIssuer = "Blogify"

type TwoFactorCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// qrDataURL renders the otpauth URL as an inline PNG data URL.
func qrDataURL(otpauthURL string) (string, error) {
	png, err := qrcode.Encode(otpauthURL, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

func loadCurrentUser(c *gin.Context) (*models.User, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return nil, false
	}

	ctx, cancel := reqContext()
	defer cancel()

	var user models.User
	err := database.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return nil, false
	}
	if err != nil {
		logrus.WithError(err).Error("load current user failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return nil, false
	}
	return &user, true
}

// SetupTwoFactor generates a fresh shared secret and its QR code. Enabling
// still requires a successful verify.
func SetupTwoFactor(c *gin.Context) {
	user, ok := loadCurrentUser(c)
	if !ok {
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: user.Email,
	})
	if err != nil {
		logrus.WithError(err).Error("2fa setup: secret generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to setup 2FA"})
		return
	}

	qr, err := qrDataURL(key.URL())
	if err != nil {
		logrus.WithError(err).Error("2fa setup: qr encoding failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to setup 2FA"})
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	_, err = database.Users.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": bson.M{
		"twoFactorSecret": key.Secret(),
		"twoFactorQRCode": qr,
		"updatedAt":       time.Now().Unix(),
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to setup 2FA"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"qrCode": qr,
		"secret": key.Secret(),
	})
}

// VerifyTwoFactor checks a submitted code against the stored secret and
// enables 2FA on success.
func VerifyTwoFactor(c *gin.Context) {
	var req TwoFactorCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code is required"})
		return
	}

	user, ok := loadCurrentUser(c)
	if !ok {
		return
	}
	if user.TwoFactorSecret == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "2FA not setup"})
		return
	}

	if !totp.Validate(req.Code, user.TwoFactorSecret) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid code"})
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	_, err := database.Users.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": bson.M{
		"twoFactorEnabled": true,
		"updatedAt":        time.Now().Unix(),
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify 2FA code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "2FA enabled successfully"})
}

// DisableTwoFactor requires a valid code before clearing the secret.
func DisableTwoFactor(c *gin.Context) {
	var req TwoFactorCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code is required"})
		return
	}

	user, ok := loadCurrentUser(c)
	if !ok {
		return
	}
	if user.TwoFactorSecret == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "2FA not setup"})
		return
	}

	if !totp.Validate(req.Code, user.TwoFactorSecret) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid code"})
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	_, err := database.Users.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$set":   bson.M{"twoFactorEnabled": false, "updatedAt": time.Now().Unix()},
		"$unset": bson.M{"twoFactorSecret": "", "twoFactorQRCode": ""},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to disable 2FA"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "2FA disabled successfully"})
}
