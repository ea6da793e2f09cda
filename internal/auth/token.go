package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/poseidon-api/internal/domain"
)

// Principal is the caller reconstructed from a validated token.
type Principal struct {
	Subject   string
	Name      string
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

// IdentityClaims builds the claim set for an identity with a fresh token id.
func IdentityClaims(identity *domain.Identity) []domain.Claim {
	return []domain.Claim{
		{Type: domain.ClaimSubject, Value: identity.ID},
		{Type: domain.ClaimName, Value: identity.Name},
		{Type: domain.ClaimEmail, Value: identity.Email},
		{Type: domain.ClaimTokenID, Value: uuid.NewString()},
	}
}

// Issue signs claims into an HS256 JWT that expires ttl after now.
func Issue(secret []byte, claims []domain.Claim, ttl time.Duration, now time.Time) (domain.Token, error) {
	if len(secret) == 0 {
		return domain.Token{}, fmt.Errorf("%w: empty secret", domain.ErrSigning)
	}

	tokenID, ok := domain.ClaimValue(claims, domain.ClaimTokenID)
	if !ok || tokenID == "" {
		return domain.Token{}, fmt.Errorf("%w: missing %s", domain.ErrInvalidClaims, domain.ClaimTokenID)
	}
	for _, required := range []string{domain.ClaimName, domain.ClaimEmail} {
		if _, ok := domain.ClaimValue(claims, required); !ok {
			return domain.Token{}, fmt.Errorf("%w: missing %s", domain.ErrInvalidClaims, required)
		}
	}

	// exp is signed at whole-second precision; report the same instant.
	expiresAt := jwt.NewNumericDate(now.Add(ttl)).Time
	payload := jwt.MapClaims{}
	for _, c := range claims {
		payload[c.Type] = c.Value
	}
	payload["iat"] = jwt.NewNumericDate(now)
	payload["exp"] = jwt.NewNumericDate(expiresAt)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString(secret)
	if err != nil {
		return domain.Token{}, fmt.Errorf("%w: %v", domain.ErrSigning, err)
	}

	return domain.Token{
		Value:     signed,
		ID:        tokenID,
		Claims:    append([]domain.Claim(nil), claims...),
		ExpiresAt: expiresAt,
	}, nil
}

// TokenManager issues and validates bearer tokens with a fixed secret and lifetime.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 60 * time.Minute
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL returns the lifetime of issued tokens.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// Issue mints a token for a verified identity.
func (tm *TokenManager) Issue(identity *domain.Identity) (domain.Token, error) {
	return Issue(tm.secret, IdentityClaims(identity), tm.ttl, tm.now())
}

// Parse validates signature and expiry and returns the principal.
func (tm *TokenManager) Parse(tokenStr string) (*Principal, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", token.Header["alg"])
		}
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !parsed.Valid {
		return nil, errors.New("token is invalid")
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, errors.New("token has no expiry")
	}

	principal := &Principal{
		Subject:   stringClaim(claims, domain.ClaimSubject),
		Name:      stringClaim(claims, domain.ClaimName),
		Email:     stringClaim(claims, domain.ClaimEmail),
		TokenID:   stringClaim(claims, domain.ClaimTokenID),
		ExpiresAt: exp.Time,
	}
	if principal.TokenID == "" {
		return nil, fmt.Errorf("%w: missing %s", domain.ErrInvalidClaims, domain.ClaimTokenID)
	}
	return principal, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}
