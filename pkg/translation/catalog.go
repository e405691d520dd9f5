// Package translation maps stable error codes to localized user-facing
// messages. The catalog is a plain value handed to the error-translation
// boundary at call time; there is no process-wide singleton.
package translation

import (
	"strings"

	"github.com/goidm/identity-backend/pkg/apperrors"
)

// Catalog holds per-language message tables keyed by error code.
type Catalog struct {
	fallback string
	messages map[string]map[apperrors.Code]string
}

// DefaultCatalog returns the built-in English and Brazilian-Portuguese
// messages with English as the fallback language.
func DefaultCatalog() Catalog {
	return Catalog{
		fallback: "en",
		messages: map[string]map[apperrors.Code]string{
			"en": {
				apperrors.CodeUsernameCannotBeEmpty:               "Username cannot be empty.",
				apperrors.CodeExistingTokenFound:                  "An active token of this type already exists.",
				apperrors.CodeInvalidUserTokenType:                "Invalid token type.",
				apperrors.CodeInvalidUserTokenExpiration:          "The token is invalid or has expired.",
				apperrors.CodeNameCannotBeEmpty:                   "Name cannot be empty.",
				apperrors.CodeEmailCannotBeEmpty:                  "Email cannot be empty.",
				apperrors.CodeInvalidEmailFormat:                  "The email address is not valid.",
				apperrors.CodePasswordCannotBeEmpty:               "Password cannot be empty.",
				apperrors.CodePasswordTooShort:                    "Password must be at least 8 characters long.",
				apperrors.CodePasswordMustContainUpperCase:        "Password must contain an uppercase letter.",
				apperrors.CodePasswordMustContainLowerCase:        "Password must contain a lowercase letter.",
				apperrors.CodePasswordMustContainDigit:            "Password must contain a digit.",
				apperrors.CodePasswordMustContainSpecialCharacter: "Password must contain a special character.",
				apperrors.CodeUserAlreadyExists:                   "A user with this email already exists.",
				apperrors.CodeUserNotFound:                        "User not found.",
				apperrors.CodeRegistrationFailed:                  "An unexpected error occurred during registration.",
				apperrors.CodeActivationFailed:                    "An unexpected error occurred during account activation.",
			},
			"pt-br": {
				apperrors.CodeUsernameCannotBeEmpty:               "O nome de usuário não pode ser vazio.",
				apperrors.CodeExistingTokenFound:                  "Já existe um token ativo deste tipo.",
				apperrors.CodeInvalidUserTokenType:                "Tipo de token inválido.",
				apperrors.CodeInvalidUserTokenExpiration:          "O token é inválido ou expirou.",
				apperrors.CodeNameCannotBeEmpty:                   "O nome não pode ser vazio.",
				apperrors.CodeEmailCannotBeEmpty:                  "O email não pode ser vazio.",
				apperrors.CodeInvalidEmailFormat:                  "O endereço de email não é válido.",
				apperrors.CodePasswordCannotBeEmpty:               "A senha não pode ser vazia.",
				apperrors.CodePasswordTooShort:                    "A senha deve ter pelo menos 8 caracteres.",
				apperrors.CodePasswordMustContainUpperCase:        "A senha deve conter uma letra maiúscula.",
				apperrors.CodePasswordMustContainLowerCase:        "A senha deve conter uma letra minúscula.",
				apperrors.CodePasswordMustContainDigit:            "A senha deve conter um dígito.",
				apperrors.CodePasswordMustContainSpecialCharacter: "A senha deve conter um caractere especial.",
				apperrors.CodeUserAlreadyExists:                   "Já existe um usuário com este email.",
				apperrors.CodeUserNotFound:                        "Usuário não encontrado.",
				apperrors.CodeRegistrationFailed:                  "Ocorreu um erro inesperado durante o cadastro.",
				apperrors.CodeActivationFailed:                    "Ocorreu um erro inesperado durante a ativação da conta.",
			},
		},
	}
}

// Lookup resolves the message for code in the given language, falling back to
// the default language and finally to the code itself. lang accepts an
// Accept-Language style value; only the primary tag is considered.
func (c Catalog) Lookup(lang string, code apperrors.Code) string {
	lang = primaryTag(lang)
	if table, ok := c.messages[lang]; ok {
		if msg, ok := table[code]; ok {
			return msg
		}
	}
	if table, ok := c.messages[c.fallback]; ok {
		if msg, ok := table[code]; ok {
			return msg
		}
	}
	return string(code)
}

func primaryTag(lang string) string {
	lang = strings.TrimSpace(strings.ToLower(lang))
	if i := strings.IndexAny(lang, ",;"); i >= 0 {
		lang = lang[:i]
	}
	return lang
}
