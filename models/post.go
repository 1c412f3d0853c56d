package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Categories is the closed list shared between client and server validation.
var Categories = []string{
	"AI", "Web Development", "Mobile Development", "DevOps", "Data Science",
	"Cybersecurity", "Blockchain", "Cloud Computing", "Machine Learning",
	"Programming Languages", "Software Engineering", "Other",
}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Post statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

type Media struct {
	URL  string `bson:"url" json:"url"`
	Type string `bson:"type" json:"type"` // image, video, pdf
}

type Report struct {
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Reason    string             `bson:"reason" json:"reason"`
	CreatedAt int64              `bson:"createdAt" json:"createdAt"`
}

// Reply is a single-level response embedded under a comment.
type Reply struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Content   string               `bson:"content" json:"content"`
	Author    primitive.ObjectID   `bson:"author" json:"author"`
	Likes     []primitive.ObjectID `bson:"likes" json:"likes"`
	Reports   []Report             `bson:"reports" json:"reports"`
	CreatedAt int64                `bson:"createdAt" json:"createdAt"`

	// Populated in responses only.
	User *AuthorSummary `bson:"-" json:"user,omitempty"`
}

// Comment is embedded in its parent Post and owned by it; comments are never
// referenced from outside the post document.
type Comment struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Content   string               `bson:"content" json:"content"`
	Author    primitive.ObjectID   `bson:"author" json:"author"`
	Likes     []primitive.ObjectID `bson:"likes" json:"likes"`
	Replies   []Reply              `bson:"replies" json:"replies"`
	Reports   []Report             `bson:"reports" json:"reports"`
	CreatedAt int64                `bson:"createdAt" json:"createdAt"`

	// Populated in responses only.
	User *AuthorSummary `bson:"-" json:"user,omitempty"`
}

type Post struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title     string               `bson:"title" json:"title"`
	Slug      string               `bson:"slug" json:"slug"`
	Content   string               `bson:"content" json:"content"`
	Media     []Media              `bson:"media" json:"media"`
	Author    primitive.ObjectID   `bson:"author" json:"author"`
	Category  string               `bson:"category" json:"category"`
	Tags      []string             `bson:"tags" json:"tags"`
	Likes     []primitive.ObjectID `bson:"likes" json:"likes"`
	Comments  []Comment            `bson:"comments" json:"comments"`
	Views     int64                `bson:"views" json:"views"`
	SavedBy   []primitive.ObjectID `bson:"savedBy" json:"savedBy"`
	Reports   []Report             `bson:"reports" json:"reports"`
	Status    string               `bson:"status" json:"status"`
	CreatedAt int64                `bson:"createdAt" json:"createdAt"`
	UpdatedAt int64                `bson:"updatedAt" json:"updatedAt"`

	// Populated in responses only.
	User *AuthorSummary `bson:"-" json:"user,omitempty"`
}

// AuthorSummary is the slice of a user attached to posts and comments in
// API responses.
type AuthorSummary struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	Username   string             `bson:"username" json:"username"`
	ProfilePic string             `bson:"profilepic" json:"profilepic"`
}
