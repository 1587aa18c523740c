// Package forms holds the server-side validation rules for Warasin's forms.
//
// Each rule set mirrors the client-side schema: trimmed values, minimum
// lengths counted in characters, and email format for the admin login. All
// violations are reported at once so a form can highlight every field.
package forms

import (
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"

	v1 "warasin/contracts/api/v1"
)

// Minimum lengths, in characters.
const (
	MinEmailLength        = 5
	MinPasswordLength     = 8
	MinCategoryNameLength = 3
	MinAuthorLength       = 3
	MinContentLength      = 10
	MinCategoryIDLength   = 1
)

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the set of violations for one form. A nil Errors means valid.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "form valid"
	}
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// Has reports whether field has at least one violation.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func (e Errors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// ValidateAdminLogin checks the admin sign-in form.
func ValidateAdminLogin(req v1.AdminLoginRequest) error {
	var errs Errors

	email := strings.TrimSpace(req.Email)
	switch {
	case email == "":
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	case runeLen(email) < MinEmailLength:
		errs = append(errs, FieldError{Field: "email", Message: minMessage("email", MinEmailLength)})
	case !validEmail(email):
		errs = append(errs, FieldError{Field: "email", Message: "email format is invalid"})
	}

	// Passwords are not trimmed: surrounding spaces are part of the secret.
	if utf8.RuneCountInString(req.Password) < MinPasswordLength {
		errs = append(errs, FieldError{Field: "password", Message: minMessage("password", MinPasswordLength)})
	}

	return errs.orNil()
}

// ValidateMotivationCategory checks the category creation form.
func ValidateMotivationCategory(req v1.MotivationCategoryRequest) error {
	var errs Errors
	errs = minLength(errs, "name", req.Name, MinCategoryNameLength)
	return errs.orNil()
}

// ValidateMotivation checks the motivation creation form.
func ValidateMotivation(req v1.MotivationRequest) error {
	var errs Errors
	errs = minLength(errs, "author", req.Author, MinAuthorLength)
	errs = minLength(errs, "content", req.Content, MinContentLength)
	errs = minLength(errs, "category_id", req.CategoryID, MinCategoryIDLength)
	return errs.orNil()
}

func minLength(errs Errors, field, value string, min int) Errors {
	if runeLen(strings.TrimSpace(value)) < min {
		return append(errs, FieldError{Field: field, Message: minMessage(field, min)})
	}
	return errs
}

func minMessage(field string, min int) string {
	if min == 1 {
		return field + " is required"
	}
	return field + " must be at least " + strconv.Itoa(min) + " characters"
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }

// validEmail accepts a bare RFC 5322 address (no display name) with a dotted domain.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	if at <= 0 {
		return false
	}
	domain := s[at+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}
