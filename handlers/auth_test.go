package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDisposableEmail(t *testing.T) {
	assert.True(t, isDisposableEmail("someone@mailinator.com"))
	assert.True(t, isDisposableEmail("user@YOPMAIL.com"))
	assert.False(t, isDisposableEmail("user@gmail.com"))
	assert.False(t, isDisposableEmail("no-at-sign"))
}

func TestPasswordStrengthThreshold(t *testing.T) {
	weak := []string{"password", "123456", "qwerty"}
	for _, p := range weak {
		assert.Less(t, passwordStrength(p), minPasswordScore, "expected %q to be rejected", p)
	}

	strong := []string{
		"correct horse battery staple",
		"x9$Lq!vE2#pT7wZr",
	}
	for _, p := range strong {
		assert.GreaterOrEqual(t, passwordStrength(p), minPasswordScore, "expected %q to be accepted", p)
	}
}
