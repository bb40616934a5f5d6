package response

import (
	"time"

	"github.com/google/uuid"

	"joiner/internal/core/domain"
)

type RegisterResponse struct {
	UserID    uuid.UUID `json:"userId"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Success   bool      `json:"success"`
}

type LoginResponse struct {
	UserID        uuid.UUID   `json:"userId"`
	Email         string      `json:"email"`
	FirstName     string      `json:"firstName"`
	LastName      string      `json:"lastName"`
	Role          domain.Role `json:"role"`
	Authenticated bool        `json:"authenticated"`
	Token         string      `json:"token"`
	ExpiresAt     time.Time   `json:"expiresAt"`
}

type MemberResponse struct {
	ID             uuid.UUID             `json:"id"`
	FirstName      string                `json:"firstName"`
	LastName       string                `json:"lastName"`
	Email          string                `json:"email"`
	MobileNumber   *string               `json:"mobileNumber,omitempty"`
	Gender         domain.Gender         `json:"gender"`
	MembershipType domain.MembershipType `json:"membershipType"`
	Persona        domain.Persona        `json:"persona"`
}

func NewMemberResponse(member domain.Member) MemberResponse {
	return MemberResponse{
		ID:             member.ID,
		FirstName:      member.FirstName,
		LastName:       member.LastName,
		Email:          member.Email,
		MobileNumber:   member.MobileNumber,
		Gender:         member.Gender,
		MembershipType: member.MembershipType,
		Persona:        member.Persona,
	}
}

type PageResponse[T any] struct {
	Content       []T `json:"content"`
	Page          int `json:"page"`
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
}

func NewMemberPageResponse(page domain.MemberPage) PageResponse[MemberResponse] {
	content := make([]MemberResponse, 0, len(page.Content))
	for _, member := range page.Content {
		content = append(content, NewMemberResponse(member))
	}

	return PageResponse[MemberResponse]{
		Content:       content,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages(),
	}
}

type DeleteType string

const (
	DeleteSoft DeleteType = "SOFT"
	DeleteHard DeleteType = "HARD"
)

type DeleteResponse struct {
	Message    string     `json:"message"`
	DeleteType DeleteType `json:"deleteType"`
	Success    bool       `json:"success"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ResponseError struct {
	Code    string            `json:"code"`
	Errors  []ValidationError `json:"errors"`
	Details any               `json:"details,omitempty"`
}

type SuccessResponse struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error ResponseError `json:"error"`
}
