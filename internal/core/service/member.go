package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"joiner/internal/core/domain"
	"joiner/internal/core/filter"
	"joiner/internal/core/model/request"
	"joiner/internal/core/policy"
	"joiner/internal/core/port"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	maxOffset = math.MaxInt32
)

type MemberService struct {
	repo      port.MemberRepository
	telemetry port.Telemetry
	now       func() time.Time
}

func NewMemberService(repo port.MemberRepository, telemetry port.Telemetry) *MemberService {
	return &MemberService{
		repo:      repo,
		telemetry: telemetry,
		now:       time.Now,
	}
}

func (ms *MemberService) GetMyProfile(ctx context.Context, principal domain.Principal) (member domain.Member, err error) {
	ctx, done := observe(ctx, ms.telemetry, "member", "get_mine", principal.ID.String())
	defer done(&err)

	member, err = ms.repo.GetByOwner(ctx, principal.ID)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return domain.Member{}, domain.ErrProfileNotFound
	}
	if err != nil {
		slog.Error("Member#GetMyProfile", "get_by_owner", err)
		return domain.Member{}, fmt.Errorf("get profile by owner: %w", err)
	}

	return member, nil
}

// Create stores a new profile. Users own what they create and may only
// ever hold one profile, soft-deleted ones included. Admins create
// ownerless profiles.
func (ms *MemberService) Create(ctx context.Context, principal domain.Principal, req *request.MemberRequest) (member domain.Member, err error) {
	ctx, done := observe(ctx, ms.telemetry, "member", "create", principal.ID.String())
	defer done(&err)

	if !principal.Role.IsAdmin() {
		if err := ms.ensureNoProfile(ctx, principal.ID); err != nil {
			return domain.Member{}, err
		}
	}

	member, err = newMember(req)
	if err != nil {
		return domain.Member{}, err
	}

	member.ID = uuid.New()
	member.CreatedAt = ms.now()
	member.UpdatedAt = member.CreatedAt
	if !principal.Role.IsAdmin() {
		ownerID := principal.ID
		member.OwnerID = &ownerID
	}

	if err := ms.ensureEmailAvailable(ctx, member.Email, uuid.Nil); err != nil {
		return domain.Member{}, err
	}

	created, err := ms.repo.Create(ctx, member)
	if errors.Is(err, domain.ErrRecordConflict) {
		return domain.Member{}, ms.explainConflict(ctx, member)
	}
	if err != nil {
		slog.Error("Member#Create", "create", err)
		return domain.Member{}, fmt.Errorf("create profile: %w", err)
	}

	ms.telemetry.RecordBusinessEvent(ctx, "member.created", "member", created.ID.String(), map[string]any{
		"owned": created.OwnerID != nil,
	})

	return created, nil
}

func (ms *MemberService) Get(ctx context.Context, principal domain.Principal, id uuid.UUID) (member domain.Member, err error) {
	ctx, done := observe(ctx, ms.telemetry, "member", "get", principal.ID.String())
	defer done(&err)

	if err := policy.RequireAdmin(principal); err != nil {
		return domain.Member{}, err
	}

	return ms.find(ctx, id)
}

// Update applies a partial patch. Blank text fields and absent fields
// keep their stored values.
func (ms *MemberService) Update(ctx context.Context, principal domain.Principal, id uuid.UUID, req *request.MemberUpdateRequest) (member domain.Member, err error) {
	ctx, done := observe(ctx, ms.telemetry, "member", "update", principal.ID.String())
	defer done(&err)

	member, err = ms.find(ctx, id)
	if err != nil {
		return domain.Member{}, err
	}

	if !policy.IsOwnerOrAdmin(principal, member) {
		return domain.Member{}, domain.ErrForbidden
	}

	patch, err := newPatch(req)
	if err != nil {
		return domain.Member{}, err
	}

	if email := trimmed(patch.Email); email != "" && !strings.EqualFold(email, member.Email) {
		if err := ms.ensureEmailAvailable(ctx, email, member.ID); err != nil {
			return domain.Member{}, err
		}
	}

	member.Apply(patch)
	member.UpdatedAt = ms.now()

	updated, err := ms.repo.Update(ctx, member)
	if errors.Is(err, domain.ErrRecordConflict) {
		return domain.Member{}, domain.ErrMemberEmailTaken
	}
	if err != nil {
		slog.Error("Member#Update", "update", err)
		return domain.Member{}, fmt.Errorf("update profile: %w", err)
	}

	return updated, nil
}

// SoftDelete hides the profile from listings. The owner link is kept, so
// the owner still cannot create another profile.
func (ms *MemberService) SoftDelete(ctx context.Context, principal domain.Principal, id uuid.UUID) (err error) {
	ctx, done := observe(ctx, ms.telemetry, "member", "soft_delete", principal.ID.String())
	defer done(&err)

	if err := policy.RequireAdmin(principal); err != nil {
		return err
	}

	member, err := ms.find(ctx, id)
	if err != nil {
		return err
	}

	member.Deleted = true
	member.UpdatedAt = ms.now()

	if _, err := ms.repo.Update(ctx, member); err != nil {
		slog.Error("Member#SoftDelete", "update", err)
		return fmt.Errorf("soft delete profile: %w", err)
	}

	ms.telemetry.RecordBusinessEvent(ctx, "member.soft_deleted", "member", id.String(), nil)
	return nil
}

func (ms *MemberService) HardDelete(ctx context.Context, principal domain.Principal, id uuid.UUID) (err error) {
	ctx, done := observe(ctx, ms.telemetry, "member", "hard_delete", principal.ID.String())
	defer done(&err)

	if err := policy.RequireAdmin(principal); err != nil {
		return err
	}

	if _, err := ms.find(ctx, id); err != nil {
		return err
	}

	if err := ms.repo.DeleteByUUID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.ErrProfileNotFound
		}
		slog.Error("Member#HardDelete", "delete_by_uuid", err)
		return fmt.Errorf("hard delete profile: %w", err)
	}

	ms.telemetry.RecordBusinessEvent(ctx, "member.hard_deleted", "member", id.String(), nil)
	return nil
}

// Filter lists non-deleted profiles matching criteria. Admin access is
// enforced by the caller.
func (ms *MemberService) Filter(ctx context.Context, principal domain.Principal, page, size int, criteria filter.Criteria) (result domain.MemberPage, err error) {
	ctx, done := observe(ctx, ms.telemetry, "member", "filter", principal.ID.String())
	defer done(&err)

	predicate, err := filter.Compile(criteria)
	if err != nil {
		return domain.MemberPage{}, err
	}

	return ms.page(ctx, predicate, page, size)
}

// Search matches term against first or last name of non-deleted profiles.
func (ms *MemberService) Search(ctx context.Context, principal domain.Principal, term string, page, size int) (result domain.MemberPage, err error) {
	ctx, done := observe(ctx, ms.telemetry, "member", "search", principal.ID.String())
	defer done(&err)

	return ms.page(ctx, filter.Search(term), page, size)
}

func (ms *MemberService) page(ctx context.Context, predicate sq.Sqlizer, page, size int) (domain.MemberPage, error) {
	page, size = normalizePage(page, size)

	offset, limit := page*size, size
	if page > maxOffset/size {
		// Past any reachable row: only count.
		offset, limit = 0, 0
	}

	members, total, err := ms.repo.Find(ctx, predicate, offset, limit)
	if err != nil {
		slog.Error("Member#Find", "find", err)
		return domain.MemberPage{}, fmt.Errorf("find profiles: %w", err)
	}

	return domain.MemberPage{
		Content:       members,
		Page:          page,
		Size:          size,
		TotalElements: total,
	}, nil
}

func (ms *MemberService) find(ctx context.Context, id uuid.UUID) (domain.Member, error) {
	member, err := ms.repo.GetByUUID(ctx, id)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return domain.Member{}, domain.ErrProfileNotFound
	}
	if err != nil {
		slog.Error("Member#Find", "get_by_uuid", err)
		return domain.Member{}, fmt.Errorf("get profile: %w", err)
	}

	return member, nil
}

func (ms *MemberService) ensureNoProfile(ctx context.Context, ownerID uuid.UUID) error {
	_, err := ms.repo.GetByOwner(ctx, ownerID)
	switch {
	case err == nil:
		return domain.ErrProfileAlreadyExists
	case errors.Is(err, domain.ErrRecordNotFound):
		return nil
	default:
		slog.Error("Member#Create", "get_by_owner", err)
		return fmt.Errorf("get profile by owner: %w", err)
	}
}

func (ms *MemberService) ensureEmailAvailable(ctx context.Context, email string, excluding uuid.UUID) error {
	taken, err := ms.repo.ExistsByEmail(ctx, email, excluding)
	if err != nil {
		return fmt.Errorf("check member email: %w", err)
	}
	if taken {
		return domain.ErrMemberEmailTaken
	}
	return nil
}

// explainConflict tells apart the two unique constraints a concurrent
// insert can trip.
func (ms *MemberService) explainConflict(ctx context.Context, member domain.Member) error {
	if member.OwnerID != nil {
		if err := ms.ensureNoProfile(ctx, *member.OwnerID); errors.Is(err, domain.ErrProfileAlreadyExists) {
			return err
		}
	}
	return domain.ErrMemberEmailTaken
}

func trimmed(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

func normalizePage(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}

func newMember(req *request.MemberRequest) (domain.Member, error) {
	var missing []string
	for _, field := range []struct{ name, value string }{
		{"firstName", req.FirstName},
		{"lastName", req.LastName},
		{"email", req.Email},
		{"gender", req.Gender},
		{"membershipType", req.MembershipType},
		{"persona", req.Persona},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return domain.Member{}, fmt.Errorf("%w: missing %s", domain.ErrValidationFailed, strings.Join(missing, ", "))
	}

	gender, err := domain.ParseGender(req.Gender)
	if err != nil {
		return domain.Member{}, fmt.Errorf("%w: %v", domain.ErrValidationFailed, err)
	}
	membershipType, err := domain.ParseMembershipType(req.MembershipType)
	if err != nil {
		return domain.Member{}, fmt.Errorf("%w: %v", domain.ErrValidationFailed, err)
	}
	persona, err := domain.ParsePersona(req.Persona)
	if err != nil {
		return domain.Member{}, fmt.Errorf("%w: %v", domain.ErrValidationFailed, err)
	}

	member := domain.Member{
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Email:          strings.TrimSpace(req.Email),
		Gender:         gender,
		MembershipType: membershipType,
		Persona:        persona,
	}
	if req.MobileNumber != nil && strings.TrimSpace(*req.MobileNumber) != "" {
		mobile := strings.TrimSpace(*req.MobileNumber)
		member.MobileNumber = &mobile
	}

	return member, nil
}

func newPatch(req *request.MemberUpdateRequest) (domain.MemberPatch, error) {
	patch := domain.MemberPatch{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		MobileNumber: req.MobileNumber,
	}

	if req.Gender != nil {
		gender, err := domain.ParseGender(*req.Gender)
		if err != nil {
			return domain.MemberPatch{}, fmt.Errorf("%w: %v", domain.ErrValidationFailed, err)
		}
		patch.Gender = &gender
	}
	if req.MembershipType != nil {
		membershipType, err := domain.ParseMembershipType(*req.MembershipType)
		if err != nil {
			return domain.MemberPatch{}, fmt.Errorf("%w: %v", domain.ErrValidationFailed, err)
		}
		patch.MembershipType = &membershipType
	}
	if req.Persona != nil {
		persona, err := domain.ParsePersona(*req.Persona)
		if err != nil {
			return domain.MemberPatch{}, fmt.Errorf("%w: %v", domain.ErrValidationFailed, err)
		}
		patch.Persona = &persona
	}

	return patch, nil
}
