package helper

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"

	. "joiner/internal/adapter/http/validation"
	"joiner/internal/core/domain"
	"joiner/internal/core/model/response"
	"joiner/pkg/tracing"
)

type domainError struct {
	err    error
	status int
	code   string
	field  string
}

var domainErrors = []domainError{
	{domain.ErrDuplicateIdentity, http.StatusConflict, "CONFLICT", "email"},
	{domain.ErrUnknownIdentity, http.StatusUnauthorized, "UNAUTHORIZED", "auth"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED", "auth"},
	{domain.ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHORIZED", "auth"},
	{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN", "auth"},
	{domain.ErrProfileNotFound, http.StatusNotFound, "NOT_FOUND", "resource"},
	{domain.ErrProfileAlreadyExists, http.StatusConflict, "CONFLICT", "member"},
	{domain.ErrMemberEmailTaken, http.StatusConflict, "CONFLICT", "email"},
	{domain.ErrInvalidFilterValue, http.StatusBadRequest, "BAD_REQUEST", "filter"},
	{domain.ErrValidationFailed, http.StatusBadRequest, "VALIDATION_ERROR", "request"},
}

func RequestTranslator(c *gin.Context) ut.Translator {
	return TranslatorFor(c.GetHeader("Accept-Language"))
}

func Localize(c *gin.Context, key string) string {
	return Message(RequestTranslator(c), key)
}

func SendSuccess(c *gin.Context, statusCode int, data any, message ...string) {
	response := response.SuccessResponse{
		Data: data,
	}

	if len(message) > 0 && message[0] != "" {
		response.Message = Localize(c, message[0])
	}

	c.JSON(statusCode, response)
}

func SendError(c *gin.Context, statusCode int, code string, errors []response.ValidationError, details ...any) {
	errorResponse := response.ErrorResponse{
		Error: response.ResponseError{
			Code:   code,
			Errors: errors,
		},
	}

	if len(details) > 0 {
		errorResponse.Error.Details = details[0]
	}

	c.AbortWithStatusJSON(statusCode, errorResponse)
}

// SendDomainError maps err to its status and localized message. Errors
// outside the domain vocabulary become a 500 without details.
func SendDomainError(c *gin.Context, err error) {
	for _, known := range domainErrors {
		if !errors.Is(err, known.err) {
			continue
		}

		message := Localize(c, known.err.Error())
		var details []any
		if known.err == domain.ErrInvalidFilterValue || known.err == domain.ErrValidationFailed {
			if detail := err.Error(); detail != known.err.Error() {
				details = append(details, detail)
			}
		}

		SendError(c, known.status, known.code, []response.ValidationError{{
			Field:   known.field,
			Message: message,
		}}, details...)
		return
	}

	slog.Error("Unhandled error", "path", c.FullPath(), "trace_id", tracing.TraceID(c.Request.Context()), "error", err)
	SendInternalError(c, Localize(c, domain.ErrInternal.Error()))
}

func SendValidationError(c *gin.Context, err error) {
	validationErrors := FormatValidationErrors(err, RequestTranslator(c))
	SendError(c, http.StatusBadRequest, "VALIDATION_ERROR", validationErrors)
}

func SendInternalError(c *gin.Context, message string) {
	errors := []response.ValidationError{
		{
			Field:   "server",
			Message: message,
		},
	}

	SendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", errors)
}

func SendBadRequestError(c *gin.Context, field string, message string) {
	errors := []response.ValidationError{
		{
			Field:   field,
			Message: message,
		},
	}

	SendError(c, http.StatusBadRequest, "BAD_REQUEST", errors)
}
