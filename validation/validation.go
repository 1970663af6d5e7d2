// Package validation implements declarative payload validation. Each request
// payload declares an explicit list of per-field constraints; Validate
// evaluates every constraint eagerly and reports all violations at once, never
// stopping at the first failure. Payloads reach constraint checking only after
// they have been successfully deserialized; decoding failures are a different
// error kind (BadRequestError) and are raised by the web pipeline before
// validation runs.
package validation

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/usguri/almoxarifado-go/apperror"
)

// Check inspects a field value and returns a violation message, or "" when
// the value satisfies the constraint.
type Check func(value string) string

// Field pairs a named value with the constraints declared for it.
type Field struct {
	Name   string
	Value  string
	Checks []Check
}

// F is a convenience constructor for a Field.
func F(name, value string, checks ...Check) Field {
	return Field{Name: name, Value: value, Checks: checks}
}

// Validate runs every check of every field and collects all violations into a
// single ValidationError whose message lists each violated constraint as
// "field: reason". Returns nil when everything passes.
func Validate(fields ...Field) error {
	var violations []string
	for _, f := range fields {
		for _, check := range f.Checks {
			if msg := check(f.Value); msg != "" {
				violations = append(violations, fmt.Sprintf("%s: %s", f.Name, msg))
			}
		}
	}
	if len(violations) == 0 {
		return nil
	}
	message := fmt.Sprintf("input validation error: [%s]", strings.Join(violations, ", "))
	return apperror.NewValidationError(message, nil)
}

// NonEmpty requires a non-empty string.
func NonEmpty() Check {
	return func(value string) string {
		if value == "" {
			return "cannot be empty"
		}
		return ""
	}
}

// MinLen requires at least n bytes.
func MinLen(n int) Check {
	return func(value string) string {
		if len(value) < n {
			return fmt.Sprintf("must be at least %d characters", n)
		}
		return ""
	}
}

// MaxLen requires at most n bytes.
func MaxLen(n int) Check {
	return func(value string) string {
		if len(value) > n {
			return fmt.Sprintf("must be at most %d characters", n)
		}
		return ""
	}
}

// Email requires a well-formed address. The address must stand alone, without
// a display name.
func Email() Check {
	return func(value string) string {
		addr, err := mail.ParseAddress(value)
		if err != nil || addr.Address != value {
			return "invalid email"
		}
		return ""
	}
}
