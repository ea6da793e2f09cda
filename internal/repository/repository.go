package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/poseidon-api/internal/domain"
)

// Repository is the CRUD contract shared by every entity type.
//
// Update does not check that the row exists: callers fetch with GetByID,
// merge their changes and then persist. Delete reports whether a row was
// removed instead of failing on a missing id.
type Repository[T any, K comparable] interface {
	GetAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id K) (*T, error)
	Add(ctx context.Context, entity T) (*T, error)
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id K) (bool, error)
}

// Querier is the subset of pgxpool.Pool used by the repositories.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Table maps an entity type onto a relational table.
type Table[T any, K comparable] struct {
	Name    string
	Key     string
	Columns []string
	// KeyRef points at the entity's primary key field.
	KeyRef func(*T) *K
	// Values returns the non-key column values in Columns order.
	Values func(*T) []any
	// Targets returns scan destinations for the non-key columns in Columns order.
	Targets func(*T) []any
}

type pgRepository[T any, K comparable] struct {
	db    Querier
	table Table[T, K]

	selectAll  string
	selectByID string
	insert     string
	update     string
	delete     string
}

// NewRepository returns the Postgres-backed implementation for a table.
func NewRepository[T any, K comparable](db Querier, table Table[T, K]) Repository[T, K] {
	cols := strings.Join(table.Columns, ", ")
	all := table.Key + ", " + cols

	placeholders := make([]string, len(table.Columns))
	assignments := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		assignments[i] = fmt.Sprintf("%s=$%d", col, i+1)
	}

	return &pgRepository[T, K]{
		db:         db,
		table:      table,
		selectAll:  fmt.Sprintf("SELECT %s FROM %s", all, table.Name),
		selectByID: fmt.Sprintf("SELECT %s FROM %s WHERE %s=$1", all, table.Name, table.Key),
		insert: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
			table.Name, cols, strings.Join(placeholders, ", "), table.Key),
		update: fmt.Sprintf("UPDATE %s SET %s WHERE %s=$%d",
			table.Name, strings.Join(assignments, ", "), table.Key, len(table.Columns)+1),
		delete: fmt.Sprintf("DELETE FROM %s WHERE %s=$1", table.Name, table.Key),
	}
}

func (r *pgRepository[T, K]) GetAll(ctx context.Context) ([]T, error) {
	rows, err := r.db.Query(ctx, r.selectAll)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w: %v", r.table.Name, domain.ErrPersistence, err)
	}
	defer rows.Close()

	result := make([]T, 0)
	for rows.Next() {
		var entity T
		if err := rows.Scan(r.scanTargets(&entity)...); err != nil {
			return nil, fmt.Errorf("scan %s: %w: %v", r.table.Name, domain.ErrPersistence, err)
		}
		result = append(result, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w: %v", r.table.Name, domain.ErrPersistence, err)
	}
	return result, nil
}

func (r *pgRepository[T, K]) GetByID(ctx context.Context, id K) (*T, error) {
	var entity T
	if err := r.db.QueryRow(ctx, r.selectByID, id).Scan(r.scanTargets(&entity)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s %v: %w", r.table.Name, id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get %s %v: %w: %v", r.table.Name, id, domain.ErrPersistence, err)
	}
	return &entity, nil
}

func (r *pgRepository[T, K]) Add(ctx context.Context, entity T) (*T, error) {
	if err := r.db.QueryRow(ctx, r.insert, r.table.Values(&entity)...).Scan(r.table.KeyRef(&entity)); err != nil {
		return nil, fmt.Errorf("insert %s: %w: %v", r.table.Name, domain.ErrPersistence, err)
	}
	return &entity, nil
}

func (r *pgRepository[T, K]) Update(ctx context.Context, entity *T) error {
	args := append(r.table.Values(entity), *r.table.KeyRef(entity))
	if _, err := r.db.Exec(ctx, r.update, args...); err != nil {
		return fmt.Errorf("update %s: %w: %v", r.table.Name, domain.ErrPersistence, err)
	}
	return nil
}

func (r *pgRepository[T, K]) Delete(ctx context.Context, id K) (bool, error) {
	cmd, err := r.db.Exec(ctx, r.delete, id)
	if err != nil {
		return false, fmt.Errorf("delete %s %v: %w: %v", r.table.Name, id, domain.ErrPersistence, err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *pgRepository[T, K]) scanTargets(entity *T) []any {
	return append([]any{r.table.KeyRef(entity)}, r.table.Targets(entity)...)
}
