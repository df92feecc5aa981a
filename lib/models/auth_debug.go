package models

// AuthDebugUser is the user echoed back by the auth-debug endpoints
type AuthDebugUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthDebugMe is the response of GET /auth-debug/me
type AuthDebugMe struct {
	User          *AuthDebugUser `json:"user"`
	Authorization *string        `json:"authorization"`
}

// TokenHeader holds the JOSE header fields the backend saw
type TokenHeader struct {
	Alg string `json:"alg,omitempty"`
	Kid string `json:"kid,omitempty"`
}

// TokenPayload holds the registered claims the backend saw
type TokenPayload struct {
	Iss string `json:"iss,omitempty"`
	Aud string `json:"aud,omitempty"`
	Sub string `json:"sub,omitempty"`
}

// AuthDebugHeaders is the response of GET /auth-debug/headers
type AuthDebugHeaders struct {
	Authorization *string       `json:"authorization"`
	Header        *TokenHeader  `json:"header"`
	Payload       *TokenPayload `json:"payload"`
}
