package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"joiner/internal/adapter/database"
	"joiner/internal/core/domain"
	"joiner/internal/core/port"
)

const membersTable = "members"

var memberColumns = []string{
	"id", "first_name", "last_name", "email", "mobile_number", "gender", "membership_type",
	"persona", "deleted", "owner_id", "created_at", "updated_at",
}

type MemberRepository struct {
	db *database.DB
}

func NewMemberRepository(db *database.DB) port.MemberRepository {
	return &MemberRepository{db: db}
}

// GetByUUID ignores the deleted flag.
func (mr *MemberRepository) GetByUUID(ctx context.Context, id uuid.UUID) (domain.Member, error) {
	return mr.getOne(ctx, sq.Eq{"id": id.String()})
}

// GetByOwner ignores the deleted flag.
func (mr *MemberRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) (domain.Member, error) {
	return mr.getOne(ctx, sq.Eq{"owner_id": ownerID.String()})
}

func (mr *MemberRepository) ExistsByEmail(ctx context.Context, email string, excluding uuid.UUID) (bool, error) {
	where := sq.And{sq.Eq{"LOWER(email)": domain.NormalizeEmail(email)}}
	if excluding != uuid.Nil {
		where = append(where, sq.NotEq{"id": excluding.String()})
	}

	query, args, err := mr.db.QueryBuilder.Select("COUNT(*)").
		From(membersTable).
		Where(where).
		ToSql()
	if err != nil {
		return false, err
	}

	var count int
	err = mr.db.Traced(ctx, membersTable, "exists", func(ctx context.Context) error {
		return mr.db.QueryRowContext(ctx, query, args...).Scan(&count)
	})
	if err != nil {
		return false, fmt.Errorf("count members by email: %w", database.Translate(err))
	}

	return count > 0, nil
}

func (mr *MemberRepository) Create(ctx context.Context, member domain.Member) (domain.Member, error) {
	query, args, err := mr.db.QueryBuilder.Insert(membersTable).
		Columns(memberColumns...).
		Values(
			member.ID.String(),
			member.FirstName,
			member.LastName,
			member.Email,
			nullString(member.MobileNumber),
			string(member.Gender),
			string(member.MembershipType),
			string(member.Persona),
			member.Deleted,
			nullUUID(member.OwnerID),
			member.CreatedAt,
			member.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return domain.Member{}, err
	}

	err = mr.db.Traced(ctx, membersTable, "insert", func(ctx context.Context) error {
		_, err := mr.db.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		return domain.Member{}, fmt.Errorf("insert member: %w", database.Translate(err))
	}

	return member, nil
}

// Update rewrites every mutable column. The owner is never reassigned.
func (mr *MemberRepository) Update(ctx context.Context, member domain.Member) (domain.Member, error) {
	query, args, err := mr.db.QueryBuilder.Update(membersTable).
		SetMap(map[string]any{
			"first_name":      member.FirstName,
			"last_name":       member.LastName,
			"email":           member.Email,
			"mobile_number":   nullString(member.MobileNumber),
			"gender":          string(member.Gender),
			"membership_type": string(member.MembershipType),
			"persona":         string(member.Persona),
			"deleted":         member.Deleted,
			"updated_at":      member.UpdatedAt,
		}).
		Where(sq.Eq{"id": member.ID.String()}).
		ToSql()
	if err != nil {
		return domain.Member{}, err
	}

	if err := mr.exec(ctx, "update", query, args); err != nil {
		return domain.Member{}, fmt.Errorf("update member: %w", err)
	}

	return member, nil
}

func (mr *MemberRepository) DeleteByUUID(ctx context.Context, id uuid.UUID) error {
	query, args, err := mr.db.QueryBuilder.Delete(membersTable).
		Where(sq.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return err
	}

	if err := mr.exec(ctx, "delete", query, args); err != nil {
		return fmt.Errorf("delete member: %w", err)
	}

	return nil
}

// Find returns one page of members matching predicate and the total
// number of matches.
func (mr *MemberRepository) Find(ctx context.Context, predicate sq.Sqlizer, offset, limit int) ([]domain.Member, int, error) {
	countQuery, countArgs, err := mr.db.QueryBuilder.Select("COUNT(*)").
		From(membersTable).
		Where(predicate).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	query, args, err := mr.db.QueryBuilder.Select(memberColumns...).
		From(membersTable).
		Where(predicate).
		OrderBy("created_at", "id").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total int
	members := make([]domain.Member, 0, limit)

	err = mr.db.Traced(ctx, membersTable, "find", func(ctx context.Context) error {
		if err := mr.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
			return err
		}

		rows, err := mr.db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var member domain.Member
			if err := scanMember(rows, &member); err != nil {
				return err
			}
			members = append(members, member)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, 0, fmt.Errorf("find members: %w", database.Translate(err))
	}

	return members, total, nil
}

func (mr *MemberRepository) getOne(ctx context.Context, where sq.Sqlizer) (domain.Member, error) {
	query, args, err := mr.db.QueryBuilder.Select(memberColumns...).
		From(membersTable).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return domain.Member{}, err
	}

	var member domain.Member
	err = mr.db.Traced(ctx, membersTable, "select", func(ctx context.Context) error {
		return scanMember(mr.db.QueryRowContext(ctx, query, args...), &member)
	})
	if err != nil {
		return domain.Member{}, database.Translate(err)
	}

	return member, nil
}

func (mr *MemberRepository) exec(ctx context.Context, operation, query string, args []any) error {
	return mr.db.Traced(ctx, membersTable, operation, func(ctx context.Context) error {
		result, err := mr.db.ExecContext(ctx, query, args...)
		if err != nil {
			return database.Translate(err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return domain.ErrRecordNotFound
		}

		return nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner, member *domain.Member) error {
	var (
		mobile sql.NullString
		owner  uuid.NullUUID
	)

	err := row.Scan(
		&member.ID,
		&member.FirstName,
		&member.LastName,
		&member.Email,
		&mobile,
		&member.Gender,
		&member.MembershipType,
		&member.Persona,
		&member.Deleted,
		&owner,
		&member.CreatedAt,
		&member.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if mobile.Valid {
		member.MobileNumber = &mobile.String
	}
	if owner.Valid {
		member.OwnerID = &owner.UUID
	}

	return nil
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func nullUUID(value *uuid.UUID) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: value.String(), Valid: true}
}
