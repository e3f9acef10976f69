package users

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("simple_email", simpleEmail)
	return v
}

// simpleEmail accepts anything shaped like local@domain.tld.
func simpleEmail(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return emailRegex.MatchString(val)
}

// signupMessage maps validation failures to a single message. Missing fields
// win over a bad email, which wins over a short password.
func signupMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request"
	}
	var badEmail, shortPassword bool
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			return "All fields are required"
		case "simple_email":
			badEmail = true
		case "min":
			shortPassword = true
		}
	}
	switch {
	case badEmail:
		return "Invalid email format"
	case shortPassword:
		return "Password must be at least 6 characters long"
	default:
		return "Invalid request"
	}
}
