package handlers

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"blogify/database"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)
	repeatedHyphens = regexp.MustCompile(`-+`)
)

// Slugify derives the URL slug from a post title: lowercase, every
// non-alphanumeric run becomes a single hyphen, leading and trailing hyphens
// are trimmed. Deterministic for a given title.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = nonAlphanumeric.ReplaceAllString(slug, "-")
	slug = repeatedHyphens.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// uniqueSlug resolves collisions by probing base, base-1, base-2, ... in order
// until taken reports a free slug.
func uniqueSlug(base string, taken func(string) (bool, error)) (string, error) {
	slug := base
	for counter := 1; ; counter++ {
		used, err := taken(slug)
		if err != nil {
			return "", err
		}
		if !used {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}

// slugTaken probes the posts collection for an existing slug.
func slugTaken(ctx context.Context) func(string) (bool, error) {
	return func(slug string) (bool, error) {
		count, err := database.Posts.CountDocuments(ctx, bson.M{"slug": slug})
		return count > 0, err
	}
}
