package handlers

import (
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"blogify/database"
	"blogify/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CreatePostRequest struct {
	Title    string         `json:"title"`
	Content  string         `json:"content"`
	Category string         `json:"category"`
	Tags     []string       `json:"tags"`
	Media    []models.Media `json:"media"`
}

// ListPosts returns a page of published posts filtered by the optional
// category/tag/author/search query parameters.
func ListPosts(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}

	query := bson.M{"status": models.StatusPublished}
	if category := c.Query("category"); category != "" {
		query["category"] = category
	}
	if tag := c.Query("tag"); tag != "" {
		query["tags"] = tag
	}
	if author := c.Query("author"); author != "" {
		authorID, err := primitive.ObjectIDFromHex(author)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid author ID"})
			return
		}
		query["author"] = authorID
	}
	if search := c.Query("search"); search != "" {
		// Literal case-insensitive substring match on title/content/tags
		pattern := regexp.QuoteMeta(search)
		query["$or"] = []bson.M{
			{"title": bson.M{"$regex": pattern, "$options": "i"}},
			{"content": bson.M{"$regex": pattern, "$options": "i"}},
			{"tags": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}

	ctx, cancel := reqContext()
	defer cancel()

	totalPosts, err := database.Posts.CountDocuments(ctx, query)
	if err != nil {
		logrus.WithError(err).Error("list posts: count failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := database.Posts.Find(ctx, query, findOptions)
	if err != nil {
		logrus.WithError(err).Error("list posts: find failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode posts"})
		return
	}

	attachAuthors(posts)

	c.JSON(http.StatusOK, gin.H{
		"posts":       posts,
		"currentPage": page,
		"totalPages":  int(math.Ceil(float64(totalPosts) / float64(limit))),
		"totalPosts":  totalPosts,
	})
}

// attachAuthors joins author summaries onto the given posts in one query.
func attachAuthors(posts []models.Post) {
	if len(posts) == 0 {
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	seen := map[primitive.ObjectID]struct{}{}
	var authorIDs []primitive.ObjectID
	for _, p := range posts {
		if _, ok := seen[p.Author]; !ok {
			seen[p.Author] = struct{}{}
			authorIDs = append(authorIDs, p.Author)
		}
	}

	cursor, err := database.Users.Find(ctx, bson.M{"_id": bson.M{"$in": authorIDs}})
	if err != nil {
		logrus.WithError(err).Warn("attach authors: find failed")
		return
	}
	defer cursor.Close(ctx)

	var authors []models.AuthorSummary
	if err := cursor.All(ctx, &authors); err != nil {
		logrus.WithError(err).Warn("attach authors: decode failed")
		return
	}

	byID := make(map[primitive.ObjectID]*models.AuthorSummary, len(authors))
	for i := range authors {
		if authors[i].ProfilePic == "" {
			authors[i].ProfilePic = defaultAvatar
		}
		byID[authors[i].ID] = &authors[i]
	}
	for i := range posts {
		posts[i].User = byID[posts[i].Author]
	}
}

// lookupAuthor fetches one author summary, nil when the user is gone.
func lookupAuthor(id primitive.ObjectID) *models.AuthorSummary {
	ctx, cancel := reqContext()
	defer cancel()

	var author models.AuthorSummary
	if err := database.Users.FindOne(ctx, bson.M{"_id": id}).Decode(&author); err != nil {
		return nil
	}
	if author.ProfilePic == "" {
		author.ProfilePic = defaultAvatar
	}
	return &author
}

func CreatePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title == "" || req.Content == "" || req.Category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title, content, and category are required"})
		return
	}
	if !models.ValidCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}

	tags := []string{}
	for _, tag := range req.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	media := req.Media
	if media == nil {
		media = []models.Media{}
	}

	ctx, cancel := reqContext()
	defer cancel()

	base := Slugify(req.Title)
	if base == "" {
		// Titles made entirely of symbols still need a slug
		base = "post"
	}
	slug, err := uniqueSlug(base, slugTaken(ctx))
	if err != nil {
		logrus.WithError(err).Error("create post: slug probe failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	now := time.Now().Unix()
	post := models.Post{
		ID:        primitive.NewObjectID(),
		Title:     req.Title,
		Slug:      slug,
		Content:   req.Content,
		Media:     media,
		Author:    userID,
		Category:  req.Category,
		Tags:      tags,
		Likes:     []primitive.ObjectID{},
		Comments:  []models.Comment{},
		SavedBy:   []primitive.ObjectID{},
		Reports:   []models.Report{},
		Status:    models.StatusPublished,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := database.Posts.InsertOne(ctx, post); err != nil {
		logrus.WithError(err).Error("create post: insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	single := []models.Post{post}
	attachAuthors(single)

	c.JSON(http.StatusCreated, single[0])
}

// GetPostBySlug returns one post and bumps its view counter.
func GetPostBySlug(c *gin.Context) {
	slug := c.Param("slug")

	ctx, cancel := reqContext()
	defer cancel()

	var post models.Post
	err := database.Posts.FindOneAndUpdate(
		ctx,
		bson.M{"slug": slug},
		bson.M{"$inc": bson.M{"views": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&post)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		logrus.WithError(err).Error("get post: lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return
	}

	single := []models.Post{post}
	attachAuthors(single)
	c.JSON(http.StatusOK, single[0])
}

// GetMyPosts lists the caller's own posts, newest first.
func GetMyPosts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return
	}
	listPostsBy(c, bson.M{"author": userID})
}

// GetLikedPosts lists posts the caller has liked.
func GetLikedPosts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return
	}
	listPostsBy(c, bson.M{"likes": userID})
}

// GetSavedPosts lists posts the caller has saved.
func GetSavedPosts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return
	}
	listPostsBy(c, bson.M{"savedBy": userID})
}

func listPostsBy(c *gin.Context, query bson.M) {
	ctx, cancel := reqContext()
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.Posts.Find(ctx, query, findOptions)
	if err != nil {
		logrus.WithError(err).Error("list posts by query: find failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode posts"})
		return
	}

	attachAuthors(posts)
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}
