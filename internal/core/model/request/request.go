package request

import "strings"

type SignUpRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=12,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=100"`
}

type MemberRequest struct {
	FirstName      string  `json:"firstName" validate:"required,max=100"`
	LastName       string  `json:"lastName" validate:"required,max=100"`
	Email          string  `json:"email" validate:"required,email,max=255"`
	MobileNumber   *string `json:"mobileNumber" validate:"omitempty,max=30"`
	Gender         string  `json:"gender" validate:"required,gender"`
	MembershipType string  `json:"membershipType" validate:"required,membership_type"`
	Persona        string  `json:"persona" validate:"required,persona"`
}

type MemberUpdateRequest struct {
	FirstName      *string `json:"firstName" validate:"omitempty,max=100"`
	LastName       *string `json:"lastName" validate:"omitempty,max=100"`
	Email          *string `json:"email" validate:"omitempty,email,max=255"`
	MobileNumber   *string `json:"mobileNumber" validate:"omitempty,max=30"`
	Gender         *string `json:"gender" validate:"omitempty,gender"`
	MembershipType *string `json:"membershipType" validate:"omitempty,membership_type"`
	Persona        *string `json:"persona" validate:"omitempty,persona"`
}

// DropBlankText clears blank text fields, which a patch treats as absent.
func (r *MemberUpdateRequest) DropBlankText() {
	for _, field := range []**string{&r.FirstName, &r.LastName, &r.Email, &r.MobileNumber} {
		if *field != nil && strings.TrimSpace(**field) == "" {
			*field = nil
		}
	}
}

type MemberFilterRequest struct {
	Page           int    `form:"page" validate:"min=0"`
	Size           int    `form:"size" validate:"omitempty,min=1,max=100"`
	FirstName      string `form:"firstName" validate:"max=100"`
	LastName       string `form:"lastName" validate:"max=100"`
	Email          string `form:"email" validate:"max=255"`
	Gender         string `form:"gender"`
	MembershipType string `form:"membershipType"`
	Persona        string `form:"persona"`
}

type MemberSearchRequest struct {
	Query string `form:"q" validate:"max=100"`
	Page  int    `form:"page" validate:"min=0"`
	Size  int    `form:"size" validate:"omitempty,min=1,max=100"`
}
