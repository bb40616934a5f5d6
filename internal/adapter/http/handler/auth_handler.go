package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	. "joiner/internal/adapter/http/helper"
	. "joiner/internal/adapter/http/validation"
	"joiner/internal/core/model/request"
	"joiner/internal/core/model/response"
	"joiner/internal/core/port"
	"joiner/internal/core/util"
	"joiner/pkg/auth"
)

type AuthHandler struct {
	svc port.AuthService
}

func NewAuthHandler(svc port.AuthService) *AuthHandler {
	return &AuthHandler{
		svc: svc,
	}
}

func (a *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.SignUpRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", Localize(c, MsgRequestInvalid))
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	identity, err := a.svc.Register(ctx, &params)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusCreated, response.RegisterResponse{
		UserID:    identity.ID,
		Email:     identity.Email,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		Success:   true,
	}, MsgUserRegistered)
}

func (a *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.LoginRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", Localize(c, MsgRequestInvalid))
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	result, err := a.svc.Login(ctx, &params)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.LoginResponse{
		UserID:        result.Identity.ID,
		Email:         result.Identity.Email,
		FirstName:     result.Identity.FirstName,
		LastName:      result.Identity.LastName,
		Role:          result.Identity.Role,
		Authenticated: true,
		Token:         result.Token,
		ExpiresAt:     result.Session.ExpiresAt,
	}, MsgUserLoggedIn)
}

// Logout always answers 200, with or without a live session.
func (a *AuthHandler) Logout(c *gin.Context) {
	if token, ok := auth.BearerToken(c.GetHeader("Authorization")); ok {
		a.svc.Logout(c.Request.Context(), token)
	}

	SendSuccess(c, http.StatusOK, gin.H{"success": true}, MsgUserLoggedOut)
}
