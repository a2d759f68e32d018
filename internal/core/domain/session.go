package domain

import (
	"errors"
	"time"
)

var (
	ErrMalformedToken   = errors.New("malformed access token")
	ErrNotAuthenticated = errors.New("not authenticated")
)

// TokenPair is the credential pair issued by the platform's token endpoint.
// The refresh token is stored but never exercised by the gateway; it is
// reserved for future token renewal.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Claims are the fields the gateway reads out of the access token's payload
// segment. They drive routing and display only; the upstream API re-validates
// the full token on every proxied request.
type Claims struct {
	Role     string `json:"role"`
	FullName string `json:"full_name"`
}

// Session is one signed-in dashboard user, keyed by the sid cookie. It is the
// server-side equivalent of the three local-storage entries the web client
// used to keep (access, refresh, role).
//
// Invariant: Role always equals the role claim inside AccessToken at the time
// the session was written. A record missing either the token or the role is
// invalid and reads as "not logged in".
type Session struct {
	ID           string
	AccessToken  string
	RefreshToken string
	Role         Role
	FullName     string
	CreatedAt    time.Time
}

// Valid reports whether the record satisfies the token/role pairing invariant.
func (s *Session) Valid() bool {
	return s != nil && s.ID != "" && s.AccessToken != "" && s.Role != ""
}
