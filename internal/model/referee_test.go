package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPhone(t *testing.T) {
	valid := []string{
		"",
		"+60123456789",
		"0123456789",
		"+123456789012345",
	}
	for _, phone := range valid {
		assert.True(t, ValidPhone(phone), "expected %q to be valid", phone)
	}

	invalid := []string{
		"12345",
		"abc",
		"+6012-345-6789",
		"+1234567890123456789",
	}
	for _, phone := range invalid {
		assert.False(t, ValidPhone(phone), "expected %q to be invalid", phone)
	}
}
