package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	assert.Error(t, validateUsername("ab"), "2 chars is below the minimum")
	assert.NoError(t, validateUsername("abc"))
	assert.NoError(t, validateUsername("user_42"))
	assert.Error(t, validateUsername("has space"))
	assert.Error(t, validateUsername("dash-ed"))
	assert.Error(t, validateUsername(strings.Repeat("a", 31)))
	assert.NoError(t, validateUsername(strings.Repeat("a", 30)))
}

func TestValidateBioBounds(t *testing.T) {
	assert.Error(t, validateBio("too short"), "9 chars rejected")
	assert.NoError(t, validateBio("exactly 10"), "10 chars accepted")
	assert.NoError(t, validateBio(strings.Repeat("b", 500)))
	assert.Error(t, validateBio(strings.Repeat("b", 501)))
}

func TestValidateInterests(t *testing.T) {
	assert.NoError(t, validateInterests(nil))
	assert.NoError(t, validateInterests([]string{"go", "db", "web", "ml", "ai"}))
	assert.Error(t, validateInterests([]string{"1", "2", "3", "4", "5", "6"}))
}
