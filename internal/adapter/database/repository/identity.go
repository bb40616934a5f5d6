package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"joiner/internal/adapter/database"
	"joiner/internal/core/domain"
	"joiner/internal/core/port"
)

const identitiesTable = "identities"

var identityColumns = []string{
	"id", "first_name", "last_name", "email", "password_hash", "role", "created_at", "updated_at",
}

type IdentityRepository struct {
	db *database.DB
}

func NewIdentityRepository(db *database.DB) port.IdentityRepository {
	return &IdentityRepository{db: db}
}

func (ir *IdentityRepository) GetByUUID(ctx context.Context, id uuid.UUID) (domain.Identity, error) {
	return ir.getOne(ctx, sq.Eq{"id": id.String()})
}

// GetByEmail compares emails case-insensitively.
func (ir *IdentityRepository) GetByEmail(ctx context.Context, email string) (domain.Identity, error) {
	return ir.getOne(ctx, sq.Eq{"LOWER(email)": domain.NormalizeEmail(email)})
}

func (ir *IdentityRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query, args, err := ir.db.QueryBuilder.Select("COUNT(*)").
		From(identitiesTable).
		Where(sq.Eq{"LOWER(email)": domain.NormalizeEmail(email)}).
		ToSql()
	if err != nil {
		return false, err
	}

	var count int
	err = ir.db.Traced(ctx, identitiesTable, "exists", func(ctx context.Context) error {
		return ir.db.QueryRowContext(ctx, query, args...).Scan(&count)
	})
	if err != nil {
		return false, fmt.Errorf("count identities by email: %w", database.Translate(err))
	}

	return count > 0, nil
}

func (ir *IdentityRepository) Create(ctx context.Context, identity domain.Identity) (domain.Identity, error) {
	query, args, err := ir.db.QueryBuilder.Insert(identitiesTable).
		Columns(identityColumns...).
		Values(
			identity.ID.String(),
			identity.FirstName,
			identity.LastName,
			identity.Email,
			identity.PasswordHash,
			string(identity.Role),
			identity.CreatedAt,
			identity.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return domain.Identity{}, err
	}

	err = ir.db.Traced(ctx, identitiesTable, "insert", func(ctx context.Context) error {
		_, err := ir.db.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		return domain.Identity{}, fmt.Errorf("insert identity: %w", database.Translate(err))
	}

	return identity, nil
}

func (ir *IdentityRepository) getOne(ctx context.Context, where sq.Sqlizer) (domain.Identity, error) {
	query, args, err := ir.db.QueryBuilder.Select(identityColumns...).
		From(identitiesTable).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return domain.Identity{}, err
	}

	var identity domain.Identity
	err = ir.db.Traced(ctx, identitiesTable, "select", func(ctx context.Context) error {
		return scanIdentity(ir.db.QueryRowContext(ctx, query, args...), &identity)
	})
	if err != nil {
		return domain.Identity{}, database.Translate(err)
	}

	return identity, nil
}

func scanIdentity(row rowScanner, identity *domain.Identity) error {
	return row.Scan(
		&identity.ID,
		&identity.FirstName,
		&identity.LastName,
		&identity.Email,
		&identity.PasswordHash,
		&identity.Role,
		&identity.CreatedAt,
		&identity.UpdatedAt,
	)
}
