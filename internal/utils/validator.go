package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)
	handleRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
)

// ValidationError is caller-fixable malformed input (4xx).
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s provided", e.Field)
}

func ValidateEmail(v string) error {
	if !emailRe.MatchString(strings.TrimSpace(v)) {
		return &ValidationError{Field: "email"}
	}
	return nil
}

func ValidateHandle(v string) error {
	if !handleRe.MatchString(v) {
		return &ValidationError{Field: "handle"}
	}
	return nil
}

func ValidatePassword(v string) error {
	if len(v) < 6 || len(v) > 72 { // 72: bcrypt input ceiling
		return &ValidationError{Field: "password"}
	}
	return nil
}

func ValidateComment(v string) error {
	c := strings.TrimSpace(v)
	if len(c) < 3 || len(c) > 1000 {
		return &ValidationError{Field: "comment"}
	}
	return nil
}
