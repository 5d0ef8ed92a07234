package domain

import (
	"fmt"
	"strings"
)

// Field-level validation codes surfaced to the caller for re-entry.
const (
	CodeEmptyName              = "EMPTY_NAME"
	CodeNameTooShort           = "NAME_TOO_SHORT"
	CodeEmptyEmail             = "EMPTY_EMAIL"
	CodeInvalidEmailFormat     = "INVALID_EMAIL_FORMAT"
	CodeWeakPassword           = "WEAK_PASSWORD"
	CodeEmptyConfirmation      = "EMPTY_CONFIRMATION"
	CodePasswordMismatch       = "PASSWORD_MISMATCH"
	CodeRoleRequired           = "ROLE_REQUIRED"
	CodeEmailAlreadyRegistered = "EMAIL_ALREADY_REGISTERED"
	CodeMissingField           = "MISSING_FIELD"
	CodeInvalidValue           = "INVALID_VALUE"
	CodeUnsupportedFileType    = "UNSUPPORTED_FILE_TYPE"
)

// ValidationError represents a single field validation failure
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects all field failures of a request. It is an
// error itself so services can return it directly.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "; ")
}

// NewFieldError creates a field-tagged validation error
func NewFieldError(field, code, message string) ValidationError {
	return ValidationError{Field: field, Code: code, Message: message}
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Code: CodeMissingField, Message: fmt.Sprintf("%s is required", field)}
}
