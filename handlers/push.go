package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"blogify/database"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PushTokenRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
	Keys     struct {
		P256dh string `json:"p256dh" binding:"required"`
		Auth   string `json:"auth" binding:"required"`
	} `json:"keys" binding:"required"`
}

// GetVapidPublicKey hands the client the key it needs to subscribe.
func GetVapidPublicKey(c *gin.Context) {
	if cfg.VAPIDPublicKey == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Push notifications not configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"publicKey": cfg.VAPIDPublicKey})
}

// SavePushToken upserts the caller's browser push subscription. This is the
// device-token registration step behind the notification preferences.
func SavePushToken(c *gin.Context) {
	var req PushTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	sub := webpush.Subscription{
		Endpoint: req.Endpoint,
		Keys: webpush.Keys{
			P256dh: req.Keys.P256dh,
			Auth:   req.Keys.Auth,
		},
	}

	// $set must not touch _id on an existing document
	_, err := database.Subscriptions.UpdateOne(
		ctx,
		bson.M{"userId": userID},
		bson.M{
			"$set":         bson.M{"sub": sub},
			"$setOnInsert": bson.M{"_id": primitive.NewObjectID(), "userId": userID},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		logrus.WithError(err).Error("save push token failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save push token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Push token saved successfully"})
}

// DeletePushToken drops the caller's subscription.
func DeletePushToken(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	if _, err := database.Subscriptions.DeleteOne(ctx, bson.M{"userId": userID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete push token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Push token removed"})
}

// SendPushNotification delivers a web push message to the user's registered
// endpoint, asynchronously and best effort. Expired subscriptions (410) are
// deleted on the spot.
func SendPushNotification(userID primitive.ObjectID, title, body string) {
	if cfg == nil || cfg.VAPIDPrivateKey == "" {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logrus.Errorf("panic in push notification: %v", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var sub PushSubscription
		err := database.Subscriptions.FindOne(ctx, bson.M{"userId": userID}).Decode(&sub)
		if err == mongo.ErrNoDocuments {
			return // user never registered a device
		}
		if err != nil {
			logrus.WithError(err).Warn("push: subscription lookup failed")
			return
		}

		payload, err := json.Marshal(map[string]interface{}{
			"title": title,
			"body":  body,
			"data": map[string]interface{}{
				"timestamp": time.Now().Unix(),
			},
		})
		if err != nil {
			return
		}

		resp, err := webpush.SendNotification(payload, &sub.Sub, &webpush.Options{
			Subscriber:      cfg.VAPIDSubscriber,
			VAPIDPublicKey:  cfg.VAPIDPublicKey,
			VAPIDPrivateKey: cfg.VAPIDPrivateKey,
			TTL:             30,
		})
		if err != nil {
			logrus.WithError(err).WithField("userId", userID.Hex()).Warn("push delivery failed")
			if resp != nil && resp.StatusCode == http.StatusGone {
				if _, delErr := database.Subscriptions.DeleteOne(ctx, bson.M{"userId": userID}); delErr != nil {
					logrus.WithError(delErr).Warn("push: expired subscription cleanup failed")
				}
			}
			return
		}
		resp.Body.Close()
	}()
}
