package validation

import (
	"testing"

	. "github.com/onsi/gomega"

	"joiner/internal/core/domain"
	"joiner/internal/core/model/request"
)

func validMember() request.MemberRequest {
	return request.MemberRequest{
		FirstName:      "Alice",
		LastName:       "Liddell",
		Email:          "alice@example.com",
		Gender:         "female",
		MembershipType: "INTERNAL",
		Persona:        "Individual",
	}
}

func TestValidatorAcceptsEnumLabelsCaseInsensitively(t *testing.T) {
	RegisterTestingT(t)

	member := validMember()

	Expect(Validator.Struct(member)).To(Succeed())
}

func TestValidatorRejectsUnknownEnumLabels(t *testing.T) {
	RegisterTestingT(t)

	member := validMember()
	member.Persona = "NGO"

	errs := FormatValidationErrors(Validator.Struct(member), TranslatorFor("en"))

	Expect(errs).To(HaveLen(1))
	Expect(errs[0].Field).To(Equal("persona"))
	Expect(errs[0].Message).To(Equal("persona must be one of INDIVIDUAL, BUSINESS, GOVERNMENT"))
}

func TestValidatorUsesJSONFieldNames(t *testing.T) {
	RegisterTestingT(t)

	errs := FormatValidationErrors(Validator.Struct(request.SignUpRequest{
		FirstName: "Alice",
		LastName:  "Liddell",
		Email:     "not-an-email",
		Password:  "short",
	}), TranslatorFor(""))

	fields := []string{}
	for _, err := range errs {
		fields = append(fields, err.Field)
	}

	Expect(fields).To(ConsistOf("email", "password"))
}

func TestValidatorTranslatesToPortuguese(t *testing.T) {
	RegisterTestingT(t)

	member := validMember()
	member.FirstName = ""

	errs := FormatValidationErrors(Validator.Struct(member), TranslatorFor("pt-BR,pt;q=0.9,en;q=0.8"))

	Expect(errs).To(HaveLen(1))
	Expect(errs[0].Field).To(Equal("firstName"))
	Expect(errs[0].Message).To(Equal("Nome é obrigatório"))
}

func TestTranslatorFor(t *testing.T) {
	RegisterTestingT(t)

	Expect(TranslatorFor("").Locale()).To(Equal(LocaleEN))
	Expect(TranslatorFor("fr-FR").Locale()).To(Equal(LocaleEN))
	Expect(TranslatorFor("pt").Locale()).To(Equal(LocalePTBR))
	Expect(TranslatorFor("fr;q=0.9, pt-BR;q=0.8").Locale()).To(Equal(LocalePTBR))
}

func TestMessageCatalogs(t *testing.T) {
	RegisterTestingT(t)

	Expect(Message(TranslatorFor("en"), domain.ErrForbidden.Error())).To(Equal("You are not allowed to perform this action"))
	Expect(Message(TranslatorFor("pt-BR"), domain.ErrProfileNotFound.Error())).To(Equal("Perfil de membro não encontrado"))
	Expect(Message(TranslatorFor("en"), "unknown.key")).To(Equal("unknown.key"))

	for locale, messages := range catalogs {
		Expect(messages).To(HaveLen(len(catalogs[LocaleEN])), "catalog %s", locale)
	}
}

func TestDomainErrorsHaveMessages(t *testing.T) {
	RegisterTestingT(t)

	for _, err := range []error{
		domain.ErrDuplicateIdentity,
		domain.ErrUnknownIdentity,
		domain.ErrInvalidCredentials,
		domain.ErrUnauthenticated,
		domain.ErrForbidden,
		domain.ErrProfileNotFound,
		domain.ErrProfileAlreadyExists,
		domain.ErrMemberEmailTaken,
		domain.ErrInvalidFilterValue,
		domain.ErrValidationFailed,
		domain.ErrInternal,
	} {
		for locale := range catalogs {
			Expect(catalogs[locale]).To(HaveKey(err.Error()))
		}
	}
}
