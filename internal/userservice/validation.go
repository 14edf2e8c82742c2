package userservice

import (
	"regexp"

	"github.com/sushihentaime/bloglist/internal/common"
)

var EmailRX = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// validateRegistration applies the registration checks in a fixed order so
// that the first failing rule decides the returned message: password present,
// password length, username present, username length.
func validateRegistration(username, password string) error {
	v := common.NewValidator()

	switch {
	case password == "":
		v.AddError("password", "password missing")
	case len(password) < 3:
		v.AddError("password", "password must be at least 3 characters long")
	case username == "":
		v.AddError("username", "username missing")
	case len(username) < 3:
		v.AddError("username", "username is shorter than the minimum allowed length (3)")
	}

	if !v.Valid() {
		return v.ValidationError()
	}

	return nil
}

func validateEmail(v *common.Validator, email string) {
	v.Check(EmailRX.MatchString(email), "email", "must be a valid email address")
}

func validateCredentials(v *common.Validator, username, password string) {
	v.Check(username != "", "username", "must be provided")
	v.Check(password != "", "password", "must be provided")
}

func ValidateTokenPlain(v *common.Validator, token string) {
	v.Check(token != "", "token", "must be provided")
}
