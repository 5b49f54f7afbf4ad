// Package validation holds the declarative field rules for every form the
// site accepts and turns rule failures into user-facing messages.
package validation

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	digitRe   = regexp.MustCompile(`[0-9]`)
	specialRe = regexp.MustCompile(`[!@#$%^&*]`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("hasdigit", func(fl validator.FieldLevel) bool {
		return digitRe.MatchString(fl.Field().String())
	})
	v.RegisterValidation("hasspecial", func(fl validator.FieldLevel) bool {
		return specialRe.MatchString(fl.Field().String())
	})
	return v
}

type RegistrationForm struct {
	Name            string `validate:"min=2"`
	Email           string `validate:"required,email"`
	EmailConfirm    string `validate:"eqfield=Email"`
	Password        string `validate:"min=8,hasdigit,hasspecial"`
	PasswordConfirm string `validate:"eqfield=Password"`
}

type LoginForm struct {
	Email    string `validate:"required,email,max=255"`
	Password string `validate:"required,min=8,max=128"`
}

type AccountForm struct {
	Name  string `validate:"min=2"`
	Email string `validate:"required,email"`
}

// AdminForm holds the admin CLI input. The password rules match
// RegistrationForm so the account can sign in through the login form.
type AdminForm struct {
	Name     string `validate:"min=2"`
	Email    string `validate:"required,email,max=255"`
	Password string `validate:"min=8,max=128,hasdigit,hasspecial"`
}

// messages is keyed by "<Form>.<Field>.<tag>".
var messages = map[string]string{
	"RegistrationForm.Name.min":                "Name must be at least 2 characters",
	"RegistrationForm.Email.required":          "Must be a valid email address",
	"RegistrationForm.Email.email":             "Must be a valid email address",
	"RegistrationForm.EmailConfirm.eqfield":    "Email addresses must match",
	"RegistrationForm.Password.min":            "Password must be at least 8 characters",
	"RegistrationForm.Password.hasdigit":       "Password must contain at least one number",
	"RegistrationForm.Password.hasspecial":     "Password must contain at least one special character",
	"RegistrationForm.PasswordConfirm.eqfield": "Passwords must match",
	"LoginForm.Email.required":                 "Please provide a valid email address",
	"LoginForm.Email.email":                    "Please provide a valid email address",
	"LoginForm.Email.max":                      "Email Address is too long",
	"LoginForm.Password.required":              "Password is required",
	"LoginForm.Password.min":                   "Password must be between 8 and 128 characters",
	"LoginForm.Password.max":                   "Password must be between 8 and 128 characters",
	"AccountForm.Name.min":                     "Name must be at least 2 characters",
	"AccountForm.Email.required":               "Must be a valid email address",
	"AccountForm.Email.email":                  "Must be a valid email address",
	"AdminForm.Name.min":                       "Name must be at least 2 characters",
	"AdminForm.Email.required":                 "Must be a valid email address",
	"AdminForm.Email.email":                    "Must be a valid email address",
	"AdminForm.Email.max":                      "Email Address is too long",
	"AdminForm.Password.min":                   "Password must be between 8 and 128 characters",
	"AdminForm.Password.max":                   "Password must be between 8 and 128 characters",
	"AdminForm.Password.hasdigit":              "Password must contain at least one number",
	"AdminForm.Password.hasspecial":            "Password must contain at least one special character",
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseRegistration reads the registration form. Name and email are
// trimmed, email is lower-cased; passwords are taken verbatim.
func ParseRegistration(r *http.Request) RegistrationForm {
	return RegistrationForm{
		Name:            strings.TrimSpace(r.PostFormValue("name")),
		Email:           normalizeEmail(r.PostFormValue("email")),
		EmailConfirm:    normalizeEmail(r.PostFormValue("emailConfirm")),
		Password:        r.PostFormValue("password"),
		PasswordConfirm: r.PostFormValue("passwordConfirm"),
	}
}

func ParseLogin(r *http.Request) LoginForm {
	return LoginForm{
		Email:    normalizeEmail(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
}

// NewAdminForm trims the name and normalizes the email like the web forms.
func NewAdminForm(name, email, password string) AdminForm {
	return AdminForm{
		Name:     strings.TrimSpace(name),
		Email:    normalizeEmail(email),
		Password: password,
	}
}

func ParseAccount(r *http.Request) AccountForm {
	return AccountForm{
		Name:  strings.TrimSpace(r.PostFormValue("name")),
		Email: normalizeEmail(r.PostFormValue("email")),
	}
}

// Check runs the rules declared on form and returns one message per
// failing field, in field order. An empty result means the form is valid.
func Check(form any) []string {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{"Invalid form submission"}
	}

	out := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if msg, ok := messages[fe.Namespace()+"."+fe.Tag()]; ok {
			out = append(out, msg)
			continue
		}
		out = append(out, fe.Field()+" is invalid")
	}
	return out
}
