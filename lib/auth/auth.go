package auth

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the subset of an access/ID token the client cares about.
// Tokens are decoded without signature verification: the backend verifies
// them, the client only reads expiry and identity for display.
type Claims struct {
	Subject   string    `json:"sub"`
	Email     string    `json:"email,omitempty"`
	Username  string    `json:"username,omitempty"`
	ClientID  string    `json:"client_id,omitempty"`
	TokenUse  string    `json:"token_use,omitempty"`
	Issuer    string    `json:"iss,omitempty"`
	Audience  []string  `json:"aud,omitempty"`
	ExpiresAt time.Time `json:"exp"`
	IssuedAt  time.Time `json:"iat"`
	Algorithm string    `json:"alg,omitempty"`
	KeyID     string    `json:"kid,omitempty"`
}

type tokenClaims struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	ClientID string `json:"client_id"`
	TokenUse string `json:"token_use"`
	jwt.RegisteredClaims
}

// ParseTokenClaims decodes the header and payload of a JWT
func ParseTokenClaims(token string) (*Claims, error) {
	var raw tokenClaims
	parsed, _, err := jwt.NewParser().ParseUnverified(token, &raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims := &Claims{
		Subject:  raw.Subject,
		Email:    raw.Email,
		Username: raw.Username,
		ClientID: raw.ClientID,
		TokenUse: raw.TokenUse,
		Issuer:   raw.Issuer,
		Audience: raw.Audience,
	}
	if raw.ExpiresAt != nil {
		claims.ExpiresAt = raw.ExpiresAt.Time
	}
	if raw.IssuedAt != nil {
		claims.IssuedAt = raw.IssuedAt.Time
	}
	if alg, ok := parsed.Header["alg"].(string); ok {
		claims.Algorithm = alg
	}
	if kid, ok := parsed.Header["kid"].(string); ok {
		claims.KeyID = kid
	}
	return claims, nil
}

// ExpiresWithin reports whether the token expires before now+window.
// Tokens without an exp claim never expire.
func (c *Claims) ExpiresWithin(now time.Time, window time.Duration) bool {
	if c.ExpiresAt.IsZero() {
		return false
	}
	return !now.Add(window).Before(c.ExpiresAt)
}

// ToJSON converts claims to JSON string for logging
func (c *Claims) ToJSON() string {
	data, _ := json.Marshal(c)
	return string(data)
}
