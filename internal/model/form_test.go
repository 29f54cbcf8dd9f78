package model

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken()
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// URL-safe, no padding
	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
	assert.NotContains(t, token, "=")
	assert.NotContains(t, token, "+")
	assert.NotContains(t, token, "/")
}

func TestGenerateTokenUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := GenerateToken()
		require.NoError(t, err)
		require.False(t, seen[token], "duplicate token generated")
		seen[token] = true
	}
}

func TestFormAccessURL(t *testing.T) {
	f := Form{Token: "abc123"}
	assert.Equal(t, "https://hr.example.com/form/abc123/", f.AccessURL("https://hr.example.com"))
}

func TestFormIsExpired(t *testing.T) {
	window := 30 * 24 * time.Hour

	fresh := Form{BaseModel: BaseModel{CreatedAt: time.Now().Add(-time.Hour)}}
	assert.False(t, fresh.IsExpired(window))

	old := Form{BaseModel: BaseModel{CreatedAt: time.Now().Add(-31 * 24 * time.Hour)}}
	assert.True(t, old.IsExpired(window))
}
