package port

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"joiner/internal/core/domain"
	"joiner/internal/core/filter"
	"joiner/internal/core/model/request"
)

type MemberRepository interface {
	GetByUUID(ctx context.Context, id uuid.UUID) (domain.Member, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (domain.Member, error)
	ExistsByEmail(ctx context.Context, email string, excluding uuid.UUID) (bool, error)
	Create(ctx context.Context, member domain.Member) (domain.Member, error)
	Update(ctx context.Context, member domain.Member) (domain.Member, error)
	DeleteByUUID(ctx context.Context, id uuid.UUID) error
	Find(ctx context.Context, predicate sq.Sqlizer, offset, limit int) ([]domain.Member, int, error)
}

type MemberService interface {
	GetMyProfile(ctx context.Context, principal domain.Principal) (domain.Member, error)
	Create(ctx context.Context, principal domain.Principal, req *request.MemberRequest) (domain.Member, error)
	Get(ctx context.Context, principal domain.Principal, id uuid.UUID) (domain.Member, error)
	Update(ctx context.Context, principal domain.Principal, id uuid.UUID, req *request.MemberUpdateRequest) (domain.Member, error)
	SoftDelete(ctx context.Context, principal domain.Principal, id uuid.UUID) error
	HardDelete(ctx context.Context, principal domain.Principal, id uuid.UUID) error
	Filter(ctx context.Context, principal domain.Principal, page, size int, criteria filter.Criteria) (domain.MemberPage, error)
	Search(ctx context.Context, principal domain.Principal, term string, page, size int) (domain.MemberPage, error)
}
