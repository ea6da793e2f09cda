package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/poseidon-api/internal/domain"
)

// IdentityRepository is the credential store consulted at login.
type IdentityRepository interface {
	Create(ctx context.Context, identity *domain.Identity) error
	GetByEmail(ctx context.Context, email string) (*domain.Identity, error)
}

type identityRepository struct {
	db Querier
}

var _ IdentityRepository = (*identityRepository)(nil)

// NewIdentityRepository returns a Postgres-backed implementation.
func NewIdentityRepository(db Querier) IdentityRepository {
	return &identityRepository{db: db}
}

func (r *identityRepository) Create(ctx context.Context, identity *domain.Identity) error {
	const query = `
        INSERT INTO identities (name, email, password_hash)
        VALUES ($1, $2, $3)
        RETURNING id::text, created_at`

	if err := r.db.QueryRow(ctx, query,
		identity.Name,
		identity.Email,
		identity.PasswordHash,
	).Scan(&identity.ID, &identity.CreatedAt); err != nil {
		return fmt.Errorf("insert identity: %w: %v", domain.ErrPersistence, err)
	}
	return nil
}

// GetByEmail matches emails case-insensitively.
func (r *identityRepository) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	const query = `
        SELECT id::text, name, email, password_hash, created_at
        FROM identities WHERE LOWER(email) = LOWER($1)`

	var identity domain.Identity
	if err := r.db.QueryRow(ctx, query, email).Scan(
		&identity.ID,
		&identity.Name,
		&identity.Email,
		&identity.PasswordHash,
		&identity.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("identity: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get identity by email: %w: %v", domain.ErrPersistence, err)
	}
	return &identity, nil
}
