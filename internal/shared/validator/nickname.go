package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// nicknameRegex allows Korean, alphanumeric and underscore, 2-20 chars
	nicknameRegex = regexp.MustCompile(`^[가-힣a-zA-Z0-9_]{2,20}$`)
)

// ValidateNickname validates a member nickname
// This is a common validator used across multiple domains
func ValidateNickname(fl validator.FieldLevel) bool {
	nickname := fl.Field().String()
	return nicknameRegex.MatchString(nickname)
}
