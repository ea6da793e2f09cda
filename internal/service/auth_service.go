package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/poseidon-api/internal/auth"
	"github.com/spec-kit/poseidon-api/internal/domain"
	"github.com/spec-kit/poseidon-api/internal/events"
	"github.com/spec-kit/poseidon-api/internal/repository"
	apperrors "github.com/spec-kit/poseidon-api/pkg/util/errorutil"
)

// dummyPassword backs the hash compared against when no identity matches.
const dummyPassword = "poseidon-unused-credential"

// loginFailureMessage is shared by every rejected login so the responses are identical.
const loginFailureMessage = "invalid email or password"

// AuthService verifies credentials and issues bearer tokens.
type AuthService struct {
	identities repository.IdentityRepository
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
	logger     *zap.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService builds the service.
func NewAuthService(
	tokens *auth.TokenManager,
	identities repository.IdentityRepository,
	dispatcher events.Dispatcher,
	bcryptCost int,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		identities: identities,
		tokens:     tokens,
		dispatcher: dispatcher,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Authenticate resolves the identity owning email and checks password against
// its stored hash. It reads the credential store and never writes to it.
//
// An unknown email yields an error wrapping domain.ErrNotFound and a wrong
// password yields domain.ErrInvalidCredentials. Both paths perform exactly one
// bcrypt comparison.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.Identity, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, domain.ErrMissingCredentials
	}

	identity, err := s.identities.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.burnComparison(password)
		}
		return nil, err
	}

	if err := auth.ComparePassword(identity.PasswordHash, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return identity, nil
}

// Login authenticates and, on success, issues a token. Unknown email and wrong
// password are reported with the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Token, error) {
	identity, err := s.Authenticate(ctx, email, password)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInvalidCredentials):
		s.publish(ctx, events.Event{
			Type:    events.EventLoginRejected,
			Payload: events.LoginPayload{Email: strings.TrimSpace(email), Reason: rejectionReason(err)},
		})
		return domain.Token{}, apperrors.NewUnauthorized(loginFailureMessage)
	default:
		return domain.Token{}, err
	}

	token, err := s.tokens.Issue(identity)
	if err != nil {
		return domain.Token{}, fmt.Errorf("issue token: %w", err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventLoginSucceeded,
		Entity:   "identities",
		EntityID: identity.ID,
		Actor:    identity.Email,
		Payload:  events.LoginPayload{Email: identity.Email},
	})
	return token, nil
}

// EnsureIdentity creates an identity for email unless one already exists.
// It reports whether a new identity was created.
func (s *AuthService) EnsureIdentity(ctx context.Context, name, email, password string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return false, domain.ErrMissingCredentials
	}

	if _, err := s.identities.GetByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return false, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	identity := &domain.Identity{Name: name, Email: email, PasswordHash: hash}
	if err := s.identities.Create(ctx, identity); err != nil {
		return false, err
	}
	s.logger.Info("bootstrap identity created", zap.String("identity_id", identity.ID))
	return true, nil
}

// burnComparison compares plain against a hash built at the configured cost,
// so an unknown email costs the same bcrypt work as a wrong password.
func (s *AuthService) burnComparison(plain string) {
	s.dummyOnce.Do(func() {
		hash, err := auth.HashPassword(dummyPassword, s.bcryptCost)
		if err != nil {
			s.logger.Warn("dummy hash generation failed", zap.Error(err))
			return
		}
		s.dummyHash = hash
	})
	_ = auth.ComparePassword(s.dummyHash, plain)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("audit publish failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func rejectionReason(err error) string {
	if errors.Is(err, domain.ErrNotFound) {
		return "unknown_identity"
	}
	return "password_mismatch"
}
