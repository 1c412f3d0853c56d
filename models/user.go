package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// NotificationPreferences controls which events may trigger a push message.
type NotificationPreferences struct {
	NewFollower   bool `bson:"newFollower" json:"newFollower"`
	FollowingPost bool `bson:"followingPost" json:"followingPost"`
}

type User struct {
	ID               primitive.ObjectID      `bson:"_id,omitempty" json:"id"`
	Username         string                  `bson:"username,omitempty" json:"username,omitempty"`
	Email            string                  `bson:"email" json:"email"`
	PasswordHash     *string                 `bson:"passwordHash,omitempty" json:"-"`
	Provider         string                  `bson:"provider" json:"provider"` // credentials, google
	ProfilePic       string                  `bson:"profilepic" json:"profilepic"`
	Bio              string                  `bson:"bio,omitempty" json:"bio"`
	Interests        []string                `bson:"interests" json:"interests"`
	HasSetUsername   bool                    `bson:"hasSetUsername" json:"hasSetUsername"`
	TwoFactorEnabled bool                    `bson:"twoFactorEnabled" json:"twoFactorEnabled"`
	TwoFactorSecret  string                  `bson:"twoFactorSecret,omitempty" json:"-"`
	TwoFactorQRCode  string                  `bson:"twoFactorQRCode,omitempty" json:"-"`
	Followers        []primitive.ObjectID    `bson:"followers" json:"followers"`
	Following        []primitive.ObjectID    `bson:"following" json:"following"`
	Notifications    NotificationPreferences `bson:"notificationPreferences" json:"notificationPreferences"`
	CreatedAt        int64                   `bson:"createdAt" json:"createdAt"`
	UpdatedAt        int64                   `bson:"updatedAt" json:"updatedAt"`
}

// IsVerified is true once 2FA has been fully enabled.
func (u *User) IsVerified() bool {
	return u.TwoFactorEnabled && u.TwoFactorSecret != ""
}
