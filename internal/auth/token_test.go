package auth

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/poseidon-api/internal/domain"
)

var issuedAt = time.Date(2026, time.March, 4, 9, 30, 0, 0, time.UTC)

func testIdentity() *domain.Identity {
	return &domain.Identity{ID: "2f1c8f4e-8a57-4d3a-9a54-6f0d1b8e9c11", Name: "Yvan", Email: "yvan@x.com"}
}

func fixedManager(at time.Time) *TokenManager {
	tm := NewTokenManager("secret", 60*time.Minute)
	tm.now = func() time.Time { return at }
	return tm
}

func TestTokenManager_Roundtrip(t *testing.T) {
	tm := fixedManager(issuedAt)

	token, err := tm.Issue(testIdentity())
	require.NoError(t, err)
	assert.Len(t, strings.Split(token.Value, "."), 3)
	assert.Equal(t, issuedAt.Add(60*time.Minute), token.ExpiresAt)

	principal, err := tm.Parse(token.Value)
	require.NoError(t, err)
	assert.Equal(t, "Yvan", principal.Name)
	assert.Equal(t, "yvan@x.com", principal.Email)
	assert.Equal(t, testIdentity().ID, principal.Subject)
	assert.Equal(t, token.ID, principal.TokenID)
	assert.True(t, principal.ExpiresAt.Equal(token.ExpiresAt))
}

func TestTokenManager_ExpiresAtMatchesSignedExp(t *testing.T) {
	at := time.Date(2026, time.January, 1, 0, 0, 0, 900_000_000, time.UTC)
	tm := fixedManager(at)

	token, err := tm.Issue(testIdentity())
	require.NoError(t, err)
	assert.Zero(t, token.ExpiresAt.Nanosecond())
	assert.True(t, token.ExpiresAt.Equal(time.Date(2026, time.January, 1, 1, 0, 0, 0, time.UTC)))

	principal, err := tm.Parse(token.Value)
	require.NoError(t, err)
	assert.True(t, principal.ExpiresAt.Equal(token.ExpiresAt))
}

func TestIssue_DistinctTokenIDsYieldDistinctTokens(t *testing.T) {
	claims := IdentityClaims(testIdentity())
	other := IdentityClaims(testIdentity())

	first, err := Issue([]byte("secret"), claims, time.Hour, issuedAt)
	require.NoError(t, err)
	second, err := Issue([]byte("secret"), other, time.Hour, issuedAt)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, first.Value, second.Value)
}

func TestTokenManager_ValidUntilExpiry(t *testing.T) {
	tm := fixedManager(issuedAt)
	token, err := tm.Issue(testIdentity())
	require.NoError(t, err)

	tm.now = func() time.Time { return issuedAt.Add(59 * time.Minute) }
	_, err = tm.Parse(token.Value)
	require.NoError(t, err)

	tm.now = func() time.Time { return issuedAt.Add(61 * time.Minute) }
	_, err = tm.Parse(token.Value)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenManager_RejectsTampering(t *testing.T) {
	tm := fixedManager(issuedAt)
	token, err := tm.Issue(testIdentity())
	require.NoError(t, err)

	parts := strings.Split(token.Value, ".")
	require.Len(t, parts, 3)

	for idx, name := range []string{"header", "payload", "signature"} {
		t.Run(name, func(t *testing.T) {
			tampered := append([]string(nil), parts...)
			tampered[idx] = flipMiddle(tampered[idx])
			_, err := tm.Parse(strings.Join(tampered, "."))
			require.Error(t, err)
		})
	}
}

func TestTokenManager_RejectsForeignSecret(t *testing.T) {
	token, err := fixedManager(issuedAt).Issue(testIdentity())
	require.NoError(t, err)

	other := NewTokenManager("another-secret", time.Hour)
	other.now = func() time.Time { return issuedAt }
	_, err = other.Parse(token.Value)
	require.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestTokenManager_RejectsNoneAlgorithm(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"jti": "x",
		"exp": jwt.NewNumericDate(issuedAt.Add(time.Hour)),
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = fixedManager(issuedAt).Parse(raw)
	require.Error(t, err)
}

func TestIssue_EmptySecret(t *testing.T) {
	_, err := Issue(nil, IdentityClaims(testIdentity()), time.Hour, issuedAt)
	require.ErrorIs(t, err, domain.ErrSigning)
}

func TestIssue_RequiresTokenIDAndIdentityClaims(t *testing.T) {
	tests := []struct {
		name   string
		claims []domain.Claim
	}{
		{"no jti", []domain.Claim{{Type: domain.ClaimName, Value: "a"}, {Type: domain.ClaimEmail, Value: "a@b.c"}}},
		{"no name", []domain.Claim{{Type: domain.ClaimTokenID, Value: "1"}, {Type: domain.ClaimEmail, Value: "a@b.c"}}},
		{"no email", []domain.Claim{{Type: domain.ClaimTokenID, Value: "1"}, {Type: domain.ClaimName, Value: "a"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Issue([]byte("secret"), tt.claims, time.Hour, issuedAt)
			require.ErrorIs(t, err, domain.ErrInvalidClaims)
		})
	}
}

func TestNewTokenManager_DefaultTTL(t *testing.T) {
	assert.Equal(t, 60*time.Minute, NewTokenManager("s", 0).TTL())
}

func flipMiddle(segment string) string {
	b := []byte(segment)
	i := len(b) / 2
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}
	return string(b)
}
