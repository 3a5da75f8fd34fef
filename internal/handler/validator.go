package handler

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Usernames are 3-20 characters of letters, digits, underscores and periods.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.]{3,20}$`)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	return v
}
