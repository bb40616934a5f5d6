package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	ptbr_translations "github.com/go-playground/validator/v10/translations/pt_BR"

	"joiner/internal/core/domain"
	"joiner/internal/core/model/response"
)

const (
	LocaleEN   = "en"
	LocalePTBR = "pt_BR"
)

var (
	Validator  *validator.Validate
	Translator ut.Translator

	universal *ut.UniversalTranslator
)

// enumTags maps each custom tag to the labels it accepts.
var enumTags = map[string]func() []string{
	"gender":          func() []string { return labels(domain.Genders) },
	"membership_type": func() []string { return labels(domain.MembershipTypes) },
	"persona":         func() []string { return labels(domain.Personas) },
}

func init() {
	Validator = validator.New(validator.WithRequiredStructEnabled())
	Validator.RegisterTagNameFunc(jsonFieldName)

	registerEnumValidations()

	english := en.New()
	universal = ut.New(english, english, pt_BR.New())

	enTranslator := mustTranslator(LocaleEN)
	if err := en_translations.RegisterDefaultTranslations(Validator, enTranslator); err != nil {
		panic(err)
	}

	ptTranslator := mustTranslator(LocalePTBR)
	if err := ptbr_translations.RegisterDefaultTranslations(Validator, ptTranslator); err != nil {
		panic(err)
	}

	addCustomTranslations(enTranslator, ptTranslator)

	for locale, messages := range catalogs {
		if err := registerMessages(mustTranslator(locale), messages); err != nil {
			panic(err)
		}
	}

	Translator = enTranslator
}

func mustTranslator(locale string) ut.Translator {
	translator, found := universal.GetTranslator(locale)
	if !found {
		panic("translator " + locale + " not found")
	}
	return translator
}

// TranslatorFor picks the first supported locale from an Accept-Language
// header, falling back to English.
func TranslatorFor(acceptLanguage string) ut.Translator {
	var locales []string

	for _, part := range strings.Split(acceptLanguage, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" || tag == "*" {
			continue
		}

		tag = strings.ReplaceAll(tag, "-", "_")
		if strings.EqualFold(tag, "pt") || strings.HasPrefix(strings.ToLower(tag), "pt_") {
			tag = LocalePTBR
		}
		locales = append(locales, tag)
	}

	translator, _ := universal.FindTranslator(locales...)
	return translator
}

func registerEnumValidations() {
	parsers := map[string]func(string) error{
		"gender": func(v string) error {
			_, err := domain.ParseGender(v)
			return err
		},
		"membership_type": func(v string) error {
			_, err := domain.ParseMembershipType(v)
			return err
		},
		"persona": func(v string) error {
			_, err := domain.ParsePersona(v)
			return err
		},
	}

	for tag, parse := range parsers {
		if err := Validator.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return parse(fl.Field().String()) == nil
		}); err != nil {
			panic(err)
		}
	}
}

func addCustomTranslations(enTranslator, ptTranslator ut.Translator) {
	register := func(translator ut.Translator, tag, text string, params func(validator.FieldError) []string) {
		if err := Validator.RegisterTranslation(tag, translator, func(ut ut.Translator) error {
			return ut.Add(tag, text, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, params(fe)...)
			return t
		}); err != nil {
			panic(err)
		}
	}

	allowed := func(fe validator.FieldError) []string {
		return []string{fe.Field(), strings.Join(enumTags[fe.Tag()](), ", ")}
	}
	for tag := range enumTags {
		register(enTranslator, tag, "{0} must be one of {1}", allowed)
		register(ptTranslator, tag, "{0} deve ser um dos valores: {1}", allowed)
	}

	ptField := func(fe validator.FieldError) []string {
		return []string{getFieldName(fe.Field())}
	}
	ptFieldParam := func(fe validator.FieldError) []string {
		return []string{getFieldName(fe.Field()), fe.Param()}
	}

	register(ptTranslator, "required", "{0} é obrigatório", ptField)
	register(ptTranslator, "email", "{0} deve ser um email válido", ptField)
	register(ptTranslator, "min", "{0} deve ter no mínimo {1} caracteres", ptFieldParam)
	register(ptTranslator, "max", "{0} deve ter no máximo {1} caracteres", ptFieldParam)
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"firstName":      "Nome",
		"lastName":       "Sobrenome",
		"email":          "Email",
		"password":       "Senha",
		"mobileNumber":   "Celular",
		"gender":         "Gênero",
		"membershipType": "Tipo de associação",
		"persona":        "Persona",
	}

	if name, exists := fieldNames[field]; exists {
		return name
	}

	return field
}

func jsonFieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return field.Name
}

func labels[T ~string](values []T) []string {
	result := make([]string, 0, len(values))
	for _, value := range values {
		result = append(result, string(value))
	}
	return result
}

func FormatValidationErrors(err error, translator ut.Translator) []response.ValidationError {
	var result []response.ValidationError

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			result = append(result, response.ValidationError{
				Field:   fieldError.Field(),
				Message: fieldError.Translate(translator),
			})
		}
	}

	return result
}
