package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Credentials is the wire form of an access/refresh pair.
type Credentials struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (c Credentials) Empty() bool {
	return c.AccessToken == "" || c.RefreshToken == ""
}

type TokenPair struct {
	AccessToken  *jwt.Token
	RefreshToken *jwt.Token
}

func (p *TokenPair) Credentials() Credentials {
	return Credentials{
		AccessToken:  p.AccessToken.Raw,
		RefreshToken: p.RefreshToken.Raw,
	}
}

// RefreshToken is the persisted server-side record for one refresh credential.
// Rotation deletes all rows for the user before inserting the replacement, so
// at most one row per user is live.
type RefreshToken struct {
	UserID      uuid.UUID
	HashedToken string
	CreatedAt   time.Time
	ExpiresAt   time.Time
}
