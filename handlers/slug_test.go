package handlers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"punctuation and digits", "Hello, World! 2024", "hello-world-2024"},
		{"already clean", "golang", "golang"},
		{"uppercase", "Go Is Fun", "go-is-fun"},
		{"collapses runs", "a --- b", "a-b"},
		{"trims edges", "!leading and trailing?", "leading-and-trailing"},
		{"unicode stripped", "café au lait", "caf-au-lait"},
		{"only punctuation", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	title := "Some Mixed-CASE Title: With Symbols #42"
	first := Slugify(title)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Slugify(title))
	}
}

func takenFrom(existing ...string) func(string) (bool, error) {
	set := map[string]struct{}{}
	for _, s := range existing {
		set[s] = struct{}{}
	}
	return func(slug string) (bool, error) {
		_, ok := set[slug]
		return ok, nil
	}
}

func TestUniqueSlugCollisionOrder(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{"base free", nil, "my-post"},
		{"base taken", []string{"my-post"}, "my-post-1"},
		{"base and first suffix taken", []string{"my-post", "my-post-1"}, "my-post-2"},
		{"gap is filled in order", []string{"my-post", "my-post-2"}, "my-post-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := uniqueSlug("my-post", takenFrom(tt.existing...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUniqueSlugPropagatesProbeError(t *testing.T) {
	probeErr := errors.New("count failed")
	_, err := uniqueSlug("my-post", func(string) (bool, error) {
		return false, probeErr
	})
	assert.ErrorIs(t, err, probeErr)
}
