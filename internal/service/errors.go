package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSurveyNotFound     = errors.New("survey not found")
	ErrDuplicateResponse  = errors.New("response already submitted for this survey")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("admin access required")
)

// ValidationError reports why a candidate submission or survey definition
// was rejected. Missing lists required questions with no usable answer;
// Invalid lists questions answered with values outside their options.
type ValidationError struct {
	Missing []string `json:"missing,omitempty"`
	Invalid []string `json:"invalid,omitempty"`
	Message string   `json:"message,omitempty"`
}

func (e *ValidationError) Error() string {
	var parts []string
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing required answers: %s", strings.Join(e.Missing, ", ")))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, fmt.Sprintf("invalid option values for: %s", strings.Join(e.Invalid, ", ")))
	}
	if len(parts) == 0 {
		return "validation failed"
	}
	return strings.Join(parts, "; ")
}

func validationMessage(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
