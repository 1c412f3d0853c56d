package handlers

import (
	"net/http"
	"regexp"
	"strings"

	"blogify/database"
	"blogify/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Typeahead limits: each group is capped and queries under two characters
// never reach the database.
const (
	minQueryLength      = 2
	suggestionsPerGroup = 5
)

type SuggestionGroup struct {
	Type  string        `json:"type"`
	Items []interface{} `json:"items"`
}

// SearchSuggestions runs up to three independent capped queries (users,
// posts, topics by category) for the typeahead dropdown.
func SearchSuggestions(c *gin.Context) {
	query := c.Query("q")
	kind := c.DefaultQuery("type", "all")

	if len(query) < minQueryLength {
		c.JSON(http.StatusOK, gin.H{"suggestions": []SuggestionGroup{}})
		return
	}

	pattern := regexp.QuoteMeta(query)
	suggestions := []SuggestionGroup{}

	if kind == "all" || kind == "users" {
		if group, err := suggestUsers(pattern); err == nil {
			suggestions = append(suggestions, group)
		} else {
			logrus.WithError(err).Warn("search suggestions: users query failed")
		}
	}

	if kind == "all" || kind == "posts" {
		if group, err := suggestPosts(pattern); err == nil {
			suggestions = append(suggestions, group)
		} else {
			logrus.WithError(err).Warn("search suggestions: posts query failed")
		}
	}

	if kind == "all" || kind == "topics" {
		suggestions = append(suggestions, suggestTopics(query))
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func suggestUsers(pattern string) (SuggestionGroup, error) {
	ctx, cancel := reqContext()
	defer cancel()

	group := SuggestionGroup{Type: "Users", Items: []interface{}{}}

	cursor, err := database.Users.Find(ctx,
		bson.M{"username": bson.M{"$regex": pattern, "$options": "i"}},
		options.Find().SetLimit(suggestionsPerGroup))
	if err != nil {
		return group, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return group, err
	}

	for _, u := range users {
		pic := u.ProfilePic
		if pic == "" {
			pic = defaultAvatar
		}
		group.Items = append(group.Items, gin.H{
			"id":             u.ID.Hex(),
			"username":       u.Username,
			"profilepic":     pic,
			"bio":            truncate(u.Bio, 100),
			"isVerified":     u.IsVerified(),
			"followersCount": len(u.Followers),
			"followingCount": len(u.Following),
			"type":           "user",
		})
	}
	return group, nil
}

func suggestPosts(pattern string) (SuggestionGroup, error) {
	ctx, cancel := reqContext()
	defer cancel()

	group := SuggestionGroup{Type: "Posts", Items: []interface{}{}}

	filter := bson.M{
		"status": models.StatusPublished,
		"$or": []bson.M{
			{"title": bson.M{"$regex": pattern, "$options": "i"}},
			{"content": bson.M{"$regex": pattern, "$options": "i"}},
			{"tags": bson.M{"$regex": pattern, "$options": "i"}},
		},
	}

	cursor, err := database.Posts.Find(ctx, filter, options.Find().SetLimit(suggestionsPerGroup))
	if err != nil {
		return group, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return group, err
	}

	attachAuthors(posts)
	for _, p := range posts {
		item := gin.H{
			"id":       p.ID.Hex(),
			"title":    p.Title,
			"preview":  truncate(p.Content, 100),
			"category": p.Category,
			"slug":     p.Slug,
			"type":     "post",
		}
		if p.User != nil {
			item["author"] = p.User
		}
		group.Items = append(group.Items, item)
	}
	return group, nil
}

// suggestTopics matches against the fixed category list and counts posts per
// matching category.
func suggestTopics(query string) SuggestionGroup {
	ctx, cancel := reqContext()
	defer cancel()

	group := SuggestionGroup{Type: "Topics", Items: []interface{}{}}
	lower := strings.ToLower(query)

	for _, category := range models.Categories {
		if len(group.Items) >= suggestionsPerGroup {
			break
		}
		if !strings.Contains(strings.ToLower(category), lower) {
			continue
		}

		count, err := database.Posts.CountDocuments(ctx, bson.M{"category": category})
		if err != nil {
			logrus.WithError(err).Warn("search suggestions: topic count failed")
			count = 0
		}
		group.Items = append(group.Items, gin.H{
			"id":    category,
			"title": category,
			"count": count,
			"type":  "topic",
		})
	}
	return group
}
