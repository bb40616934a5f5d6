package validation

import ut "github.com/go-playground/universal-translator"

const (
	MsgRequestInvalid   = "request.invalid"
	MsgInvalidID        = "request.id.invalid"
	MsgUserRegistered   = "user.registered"
	MsgUserLoggedIn     = "user.loggedin"
	MsgUserLoggedOut    = "user.loggedout"
	MsgMemberCreated    = "member.created"
	MsgMemberUpdated    = "member.updated"
	MsgMemberSoftDelete = "member.deleted.soft"
	MsgMemberHardDelete = "member.deleted.hard"
)

var catalogs = map[string]map[string]string{
	LocaleEN: {
		"user.exists":           "An account with this email already exists",
		"user.notfound":         "No account was found for this email",
		"invalid.credentials":   "Invalid email or password",
		"user.unauthorized":     "Authentication is required",
		"access.denied":         "You are not allowed to perform this action",
		"member.notfound":       "Member profile not found",
		"member.profile.exists": "You already have a member profile",
		"member.email.exists":   "A member profile with this email already exists",
		"filter.invalid":        "Invalid filter value",
		"validation.failed":     "Validation failed",
		"error.internal":        "Something went wrong, please try again later",

		MsgRequestInvalid:   "Invalid request parameters",
		MsgInvalidID:        "Invalid member id",
		MsgUserRegistered:   "Account created",
		MsgUserLoggedIn:     "Logged in",
		MsgUserLoggedOut:    "Logged out",
		MsgMemberCreated:    "Member profile created",
		MsgMemberUpdated:    "Member profile updated",
		MsgMemberSoftDelete: "Member profile deactivated",
		MsgMemberHardDelete: "Member profile permanently deleted",
	},
	LocalePTBR: {
		"user.exists":           "Já existe uma conta com este email",
		"user.notfound":         "Nenhuma conta encontrada para este email",
		"invalid.credentials":   "Email ou senha inválidos",
		"user.unauthorized":     "Autenticação necessária",
		"access.denied":         "Você não tem permissão para realizar esta ação",
		"member.notfound":       "Perfil de membro não encontrado",
		"member.profile.exists": "Você já possui um perfil de membro",
		"member.email.exists":   "Já existe um perfil de membro com este email",
		"filter.invalid":        "Valor de filtro inválido",
		"validation.failed":     "Falha na validação",
		"error.internal":        "Algo deu errado, tente novamente mais tarde",

		MsgRequestInvalid:   "Parâmetros da requisição inválidos",
		MsgInvalidID:        "Identificador de membro inválido",
		MsgUserRegistered:   "Conta criada",
		MsgUserLoggedIn:     "Login realizado",
		MsgUserLoggedOut:    "Logout realizado",
		MsgMemberCreated:    "Perfil de membro criado",
		MsgMemberUpdated:    "Perfil de membro atualizado",
		MsgMemberSoftDelete: "Perfil de membro desativado",
		MsgMemberHardDelete: "Perfil de membro excluído permanentemente",
	},
}

func registerMessages(translator ut.Translator, messages map[string]string) error {
	for key, text := range messages {
		if err := translator.Add(key, text, false); err != nil {
			return err
		}
	}
	return nil
}

// Message renders key in the translator's locale. Unknown keys are
// returned as is.
func Message(translator ut.Translator, key string) string {
	text, err := translator.T(key)
	if err != nil {
		return key
	}
	return text
}
