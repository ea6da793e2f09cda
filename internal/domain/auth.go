package domain

import "time"

// Claim types carried by issued tokens.
const (
	ClaimName    = "name"
	ClaimEmail   = "email"
	ClaimTokenID = "jti"
	ClaimSubject = "sub"
)

// Claim is a single typed assertion attached to a token.
type Claim struct {
	Type  string
	Value string
}

// Token is an issued bearer token. It has no server-side record.
type Token struct {
	Value     string
	ID        string
	Claims    []Claim
	ExpiresAt time.Time
}

// ClaimValue returns the value of the first claim with the given type.
func ClaimValue(claims []Claim, claimType string) (string, bool) {
	for _, c := range claims {
		if c.Type == claimType {
			return c.Value, true
		}
	}
	return "", false
}
