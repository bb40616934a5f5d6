package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	. "joiner/internal/adapter/http/helper"
	"joiner/internal/adapter/http/middleware"
	. "joiner/internal/adapter/http/validation"
	"joiner/internal/core/domain"
	"joiner/internal/core/filter"
	"joiner/internal/core/model/request"
	"joiner/internal/core/model/response"
	"joiner/internal/core/port"
	"joiner/internal/core/util"
	"joiner/pkg/config"
	. "joiner/pkg/tracing"
)

type MemberHandler struct {
	svc    port.MemberService
	Logger *config.LokiLogger
}

func NewMemberHandler(svc port.MemberService, logger *config.LokiLogger) *MemberHandler {
	return &MemberHandler{
		svc:    svc,
		Logger: logger,
	}
}

func (m *MemberHandler) GetMyProfile(c *gin.Context) {
	ctx, span := StartHandlerSpan(c.Request.Context(), "member", "GetMyProfile", c.Request.Method, c.FullPath())
	defer span.End()

	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}

	member, err := m.svc.GetMyProfile(ctx, principal)

	if err != nil {
		failSpan(c, span, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewMemberResponse(member))
}

func (m *MemberHandler) Create(c *gin.Context) {
	ctx, span := StartHandlerSpan(c.Request.Context(), "member", "Create", c.Request.Method, c.FullPath())
	defer span.End()

	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}

	params, err := util.ParamsToMap[request.MemberRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", Localize(c, MsgRequestInvalid))
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	member, err := m.svc.Create(ctx, principal, &params)

	if err != nil {
		failSpan(c, span, err)
		return
	}

	m.Logger.InfoWithTrace(ctx, "Member created",
		zap.String("member_id", member.ID.String()),
		zap.String("principal_id", principal.ID.String()),
	)

	SendSuccess(c, http.StatusCreated, response.NewMemberResponse(member), MsgMemberCreated)
}

func (m *MemberHandler) Get(c *gin.Context) {
	ctx, span := StartHandlerSpan(c.Request.Context(), "member", "Get", c.Request.Method, c.FullPath())
	defer span.End()

	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}

	id, ok := memberID(c)
	if !ok {
		return
	}

	member, err := m.svc.Get(ctx, principal, id)

	if err != nil {
		failSpan(c, span, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewMemberResponse(member))
}

func (m *MemberHandler) Update(c *gin.Context) {
	ctx, span := StartHandlerSpan(c.Request.Context(), "member", "Update", c.Request.Method, c.FullPath())
	defer span.End()

	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}

	id, ok := memberID(c)
	if !ok {
		return
	}

	params, err := util.ParamsToMap[request.MemberUpdateRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", Localize(c, MsgRequestInvalid))
		return
	}

	params.DropBlankText()

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	member, err := m.svc.Update(ctx, principal, id, &params)

	if err != nil {
		failSpan(c, span, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewMemberResponse(member), MsgMemberUpdated)
}

// Delete soft deletes unless ?hard=true.
func (m *MemberHandler) Delete(c *gin.Context) {
	ctx, span := StartHandlerSpan(c.Request.Context(), "member", "Delete", c.Request.Method, c.FullPath())
	defer span.End()

	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}

	id, ok := memberID(c)
	if !ok {
		return
	}

	hard := false
	if raw := c.Query("hard"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			sendFieldValidationError(c, "hard", Localize(c, MsgRequestInvalid))
			return
		}
		hard = parsed
	}

	deleteType, message := response.DeleteSoft, MsgMemberSoftDelete

	var err error
	if hard {
		deleteType, message = response.DeleteHard, MsgMemberHardDelete
		err = m.svc.HardDelete(ctx, principal, id)
	} else {
		err = m.svc.SoftDelete(ctx, principal, id)
	}

	if err != nil {
		failSpan(c, span, err)
		return
	}

	m.Logger.InfoWithTrace(ctx, "Member deleted",
		zap.String("member_id", id.String()),
		zap.String("delete_type", string(deleteType)),
	)

	SendSuccess(c, http.StatusOK, response.DeleteResponse{
		Message:    Localize(c, message),
		DeleteType: deleteType,
		Success:    true,
	})
}

func (m *MemberHandler) Filter(c *gin.Context) {
	ctx, span := StartHandlerSpan(c.Request.Context(), "member", "Filter", c.Request.Method, c.FullPath())
	defer span.End()

	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}

	var params request.MemberFilterRequest

	if err := c.ShouldBindQuery(&params); err != nil {
		SendBadRequestError(c, "request", Localize(c, MsgRequestInvalid))
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	span.SetAttributes(
		attribute.Int("member.page", params.Page),
		attribute.Int("member.size", params.Size),
	)

	page, err := m.svc.Filter(ctx, principal, params.Page, params.Size, filter.Criteria{
		FirstName:      params.FirstName,
		LastName:       params.LastName,
		Email:          params.Email,
		Gender:         params.Gender,
		MembershipType: params.MembershipType,
		Persona:        params.Persona,
	})

	if err != nil {
		m.Logger.WarnWithTrace(ctx, "Failed to filter members", zap.Error(err))

		failSpan(c, span, err)
		return
	}

	span.SetAttributes(attribute.Int("member.total", page.TotalElements))

	SendSuccess(c, http.StatusOK, response.NewMemberPageResponse(page))
}

func (m *MemberHandler) Search(c *gin.Context) {
	ctx, span := StartHandlerSpan(c.Request.Context(), "member", "Search", c.Request.Method, c.FullPath())
	defer span.End()

	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}

	var params request.MemberSearchRequest

	if err := c.ShouldBindQuery(&params); err != nil {
		SendBadRequestError(c, "request", Localize(c, MsgRequestInvalid))
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	page, err := m.svc.Search(ctx, principal, params.Query, params.Page, params.Size)

	if err != nil {
		failSpan(c, span, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewMemberPageResponse(page))
}

func failSpan(c *gin.Context, span trace.Span, err error) {
	FailSpan(span, err)
	SendDomainError(c, err)
}

func currentPrincipal(c *gin.Context) (domain.Principal, bool) {
	principal, ok := middleware.Principal(c)
	if !ok {
		SendDomainError(c, domain.ErrUnauthenticated)
	}
	return principal, ok
}

func memberID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		sendFieldValidationError(c, "id", Localize(c, MsgInvalidID))
		return uuid.Nil, false
	}
	return id, true
}

func sendFieldValidationError(c *gin.Context, field, message string) {
	SendError(c, http.StatusBadRequest, "VALIDATION_ERROR", []response.ValidationError{{
		Field:   field,
		Message: message,
	}})
}
