package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"time"

	"blogify/database"
	"blogify/models"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UpdateProfileRequest struct {
	Username         string                          `json:"username"`
	Bio              *string                         `json:"bio"`
	Interests        []string                        `json:"interests"`
	RemoveProfilePic bool                            `json:"removeProfilePic"`
	Notifications    *models.NotificationPreferences `json:"notificationPreferences"`
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

func validateUsername(username string) error {
	if len(username) < 3 || len(username) > 30 {
		return errors.New("Username must be between 3 and 30 characters")
	}
	if !usernamePattern.MatchString(username) {
		return errors.New("Username can only contain letters, numbers, and underscores")
	}
	return nil
}

// validateBio enforces the 10-500 character bounds on non-empty bios.
func validateBio(bio string) error {
	if len(bio) < 10 {
		return errors.New("Bio must be at least 10 characters long")
	}
	if len(bio) > 500 {
		return errors.New("Bio cannot exceed 500 characters")
	}
	return nil
}

func validateInterests(interests []string) error {
	if len(interests) > 5 {
		return errors.New("You can select up to 5 interests")
	}
	return nil
}

func profileResponse(user *models.User) gin.H {
	return gin.H{
		"id":                      user.ID.Hex(),
		"username":                user.Username,
		"email":                   user.Email,
		"profilepic":              user.ProfilePic,
		"bio":                     user.Bio,
		"interests":               user.Interests,
		"hasSetUsername":          user.HasSetUsername,
		"isVerified":              user.IsVerified(),
		"twoFactorEnabled":        user.TwoFactorEnabled,
		"followers":               user.Followers,
		"following":               user.Following,
		"followersCount":          len(user.Followers),
		"followingCount":          len(user.Following),
		"notificationPreferences": user.Notifications,
	}
}

func GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	var user models.User
	err := database.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		logrus.WithError(err).Error("get profile: lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user profile"})
		return
	}

	if user.ProfilePic == "" {
		user.ProfilePic = defaultAvatar
	}

	c.JSON(http.StatusOK, gin.H{"user": profileResponse(&user)})
}

// UpdateProfile applies field-level validated changes. The username is
// settable exactly once; any later attempt is rejected no matter the payload.
func UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON data"})
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	var user models.User
	err := database.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		logrus.WithError(err).Error("update profile: lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user profile"})
		return
	}

	set := bson.M{"updatedAt": time.Now().Unix()}

	if req.Username != "" && req.Username != user.Username {
		if user.HasSetUsername {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username can only be set once"})
			return
		}
		if err := validateUsername(req.Username); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		count, err := database.Users.CountDocuments(ctx, bson.M{
			"username": req.Username,
			"_id":      bson.M{"$ne": userID},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user profile"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username is already taken"})
			return
		}

		set["username"] = req.Username
		set["hasSetUsername"] = true
	}

	if req.Bio != nil && *req.Bio != "" {
		if err := validateBio(*req.Bio); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		set["bio"] = *req.Bio
	}

	if req.Interests != nil {
		if err := validateInterests(req.Interests); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		set["interests"] = req.Interests
	}

	if req.Notifications != nil {
		set["notificationPreferences"] = *req.Notifications
	}

	if req.RemoveProfilePic {
		set["profilepic"] = defaultAvatar
	}

	var updated models.User
	err = database.Users.FindOneAndUpdate(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		logrus.WithError(err).Error("update profile: write failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    profileResponse(&updated),
	})
}

// UploadProfilePhoto stores the image on Cloudinary and points the user
// record at it. The upload is central here: its failure fails the request.
func UploadProfilePhoto(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	cld, err := cloudinary.NewFromURL(cfg.CloudinaryURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cloudinary configuration error"})
		return
	}

	result, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         "profile-photos",
		PublicID:       userID.Hex(),
		ResourceType:   "image",
		Transformation: "c_limit,w_400,h_400,q_auto",
	})
	if err != nil {
		logrus.WithError(err).Error("profile photo upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload profile photo"})
		return
	}

	res, err := database.Users.UpdateOne(ctx, bson.M{"_id": userID},
		bson.M{"$set": bson.M{"profilepic": result.SecureURL, "updatedAt": time.Now().Unix()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile photo"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile photo updated successfully",
		"url":     result.SecureURL,
	})
}
