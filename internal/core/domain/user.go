package domain

import "time"

// User represents a user of the application.
type User struct {
	UserID       string `json:"userID"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	// FamilyID is the family this user belongs to, if any. Empty string means
	// the user has not created or joined a family yet.
	FamilyID string `json:"familyID,omitempty"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`

	// Refresh token fields; only the SHA256 hash of the token is stored.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

// GoogleUserInfo holds the subset of the Google userinfo payload we consume
// during OAuth sign-in.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
