package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usguri/almoxarifado-go/apperror"
)

func TestValidateCollectsAllViolations(t *testing.T) {
	// A registration-shaped payload with two independent violations must
	// report both, not just the first.
	err := Validate(
		F("name", "", NonEmpty()),
		F("email", "not-an-email", Email()),
		F("password", "secret123", MinLen(8)),
	)
	require.Error(t, err)
	require.True(t, apperror.IsValidationError(err))

	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	msg := appErr.ClientMessage()
	assert.Contains(t, msg, "name: cannot be empty")
	assert.Contains(t, msg, "email: invalid email")
	assert.NotContains(t, msg, "password")
}

func TestValidatePasses(t *testing.T) {
	err := Validate(
		F("name", "usguri", NonEmpty(), MaxLen(64)),
		F("email", "user@example.com", Email()),
		F("password", "longenough", MinLen(8)),
	)
	assert.NoError(t, err)
}

func TestValidateDoesNotShortCircuitWithinField(t *testing.T) {
	err := Validate(F("name", "", NonEmpty(), MinLen(3)))
	require.Error(t, err)
	appErr, _ := apperror.FromError(err)
	assert.Contains(t, appErr.ClientMessage(), "cannot be empty")
	assert.Contains(t, appErr.ClientMessage(), "at least 3 characters")
}

func TestChecks(t *testing.T) {
	tests := []struct {
		name  string
		check Check
		value string
		want  bool // true = violation expected
	}{
		{"non-empty rejects empty", NonEmpty(), "", true},
		{"non-empty accepts value", NonEmpty(), "x", false},
		{"min len rejects short", MinLen(8), "short", true},
		{"min len accepts exact", MinLen(8), "12345678", false},
		{"max len rejects long", MaxLen(3), "abcd", true},
		{"email rejects missing at", Email(), "not-an-email", true},
		{"email rejects display name", Email(), "Name <a@example.com>", true},
		{"email rejects empty", Email(), "", true},
		{"email accepts plain address", Email(), "a@example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.check(tt.value)
			if tt.want {
				assert.NotEmpty(t, msg)
			} else {
				assert.Empty(t, msg)
			}
		})
	}
}
