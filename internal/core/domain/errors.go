package domain

import "errors"

// Each message doubles as the localization key rendered at the HTTP boundary.
var (
	ErrDuplicateIdentity    = errors.New("user.exists")
	ErrUnknownIdentity      = errors.New("user.notfound")
	ErrInvalidCredentials   = errors.New("invalid.credentials")
	ErrUnauthenticated      = errors.New("user.unauthorized")
	ErrForbidden            = errors.New("access.denied")
	ErrProfileNotFound      = errors.New("member.notfound")
	ErrProfileAlreadyExists = errors.New("member.profile.exists")
	ErrMemberEmailTaken     = errors.New("member.email.exists")
	ErrInvalidFilterValue   = errors.New("filter.invalid")
	ErrValidationFailed     = errors.New("validation.failed")
	ErrInternal             = errors.New("error.internal")
)

// Storage level outcomes returned by repositories.
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrRecordConflict = errors.New("record conflicts with an existing row")
)
