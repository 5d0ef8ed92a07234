package validation

import (
	"regexp"
	"strings"
	"unicode"

	"auralearn/internal/domain"
	"auralearn/internal/dto"
)

const specialCharacters = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

// Strength labels for UI-facing password guidance.
const (
	StrengthWeak   = "Weak"
	StrengthMedium = "Medium"
	StrengthStrong = "Strong"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSignupRequest validates a signup request. All independent
// field failures are collected rather than short-circuited, so the
// caller can surface every problem at once.
func (v *Validator) ValidateSignupRequest(req *dto.SignupRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors

	name := strings.TrimSpace(req.Name)
	if name == "" {
		errs = append(errs, domain.NewFieldError("name", domain.CodeEmptyName, "name is required"))
	} else if len(name) < 2 {
		errs = append(errs, domain.NewFieldError("name", domain.CodeNameTooShort, "name must be at least 2 characters"))
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		errs = append(errs, domain.NewFieldError("email", domain.CodeEmptyEmail, "email is required"))
	} else if !isValidEmail(email) {
		errs = append(errs, domain.NewFieldError("email", domain.CodeInvalidEmailFormat, "email address is not valid"))
	}

	if !isStrongPassword(req.Password) {
		errs = append(errs, domain.NewFieldError("password", domain.CodeWeakPassword,
			"password needs at least 8 characters with upper and lower case letters, a digit and a special character"))
	}

	if req.ConfirmPassword == "" {
		errs = append(errs, domain.NewFieldError("confirm_password", domain.CodeEmptyConfirmation, "password confirmation is required"))
	} else if req.ConfirmPassword != req.Password {
		errs = append(errs, domain.NewFieldError("confirm_password", domain.CodePasswordMismatch, "passwords do not match"))
	}

	if !domain.Role(req.Role).IsValid() {
		errs = append(errs, domain.NewFieldError("role", domain.CodeRoleRequired, "role must be teacher or student"))
	}

	return errs
}

// ValidateLoginRequest validates a login request. Only presence is
// checked here; credential verification is the auth service's job.
func (v *Validator) ValidateLoginRequest(req *dto.LoginRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if strings.TrimSpace(req.Email) == "" {
		errs = append(errs, domain.NewMissingFieldError("email"))
	}
	if req.Password == "" {
		errs = append(errs, domain.NewMissingFieldError("password"))
	}
	if !domain.Role(req.Role).IsValid() {
		errs = append(errs, domain.NewFieldError("role", domain.CodeRoleRequired, "role must be teacher or student"))
	}

	return errs
}

// PasswordStrength counts the satisfied password checks and maps the
// count to a strength label: 0-2 Weak, 3-4 Medium, 5 Strong.
func (v *Validator) PasswordStrength(password string) dto.PasswordStrengthResponse {
	satisfied := countPasswordChecks(password)

	strength := StrengthWeak
	switch {
	case satisfied == 5:
		strength = StrengthStrong
	case satisfied >= 3:
		strength = StrengthMedium
	}

	return dto.PasswordStrengthResponse{
		Strength:        strength,
		SatisfiedChecks: satisfied,
	}
}

// isValidEmail requires a local part, an @, a dot somewhere after the
// @, and no whitespace.
func isValidEmail(email string) bool {
	if whitespacePattern.MatchString(email) {
		return false
	}
	at := strings.Index(email, "@")
	return at > 0 && strings.Contains(email[at+1:], ".")
}

var whitespacePattern = regexp.MustCompile(`\s`)

func countPasswordChecks(password string) int {
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(specialCharacters, r):
			hasSpecial = true
		}
	}

	satisfied := 0
	if len(password) >= 8 {
		satisfied++
	}
	for _, ok := range []bool{hasUpper, hasLower, hasDigit, hasSpecial} {
		if ok {
			satisfied++
		}
	}
	return satisfied
}

func isStrongPassword(password string) bool {
	return countPasswordChecks(password) == 5
}
