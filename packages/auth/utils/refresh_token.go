package utils

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"bab-arcade/packages/auth/models"
)

const RefreshTokenExpiry = 7 * 24 * time.Hour

// NewRefreshToken builds an unsaved refresh token for the profile.
func NewRefreshToken(profileID uint, now time.Time, ttl time.Duration) (*models.RefreshToken, error) {
	token, err := generateSecureToken()
	if err != nil {
		return nil, err
	}
	return &models.RefreshToken{
		ProfileID: profileID,
		Token:     token,
		ExpiresAt: now.Add(ttl),
	}, nil
}

func generateSecureToken() (string, error) {
	bytes := make([]byte, 32) // 256 bits
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
