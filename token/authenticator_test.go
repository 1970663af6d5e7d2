package token

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usguri/almoxarifado-go/apperror"
)

func TestAuthenticateAcceptsValidToken(t *testing.T) {
	issuer := NewIssuer(testSecret, time.Hour)

	signed, err := issuer.Issue(42)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)

	subject, err := issuer.Authenticate(req)
	require.NoError(t, err)
	assert.Equal(t, 42, subject)
}

func TestAuthenticateRejectionsAreIdentical(t *testing.T) {
	issuer := NewIssuer(testSecret, time.Hour)

	expired := func() string {
		i := NewIssuer(testSecret, time.Nanosecond)
		s, err := i.Issue(42)
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
		return s
	}()

	cases := map[string]func(r *http.Request){
		"no header":      func(r *http.Request) {},
		"wrong scheme":   func(r *http.Request) { r.Header.Set("Authorization", "Basic dXNlcjpwdw==") },
		"empty bearer":   func(r *http.Request) { r.Header.Set("Authorization", "Bearer ") },
		"garbage token":  func(r *http.Request) { r.Header.Set("Authorization", "Bearer garbage") },
		"expired token":  func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+expired) },
		"missing bearer": func(r *http.Request) { r.Header.Set("Authorization", "token-without-scheme") },
	}

	var messages []string
	for name, arrange := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			arrange(req)

			_, err := issuer.Authenticate(req)
			require.Error(t, err)
			appErr, ok := apperror.FromError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.AuthError, appErr.Type)
			messages = append(messages, appErr.ClientMessage())
		})
	}

	// Every rejection renders the exact same message; the client cannot tell
	// a missing header from a bad signature from an expired token.
	for i := 1; i < len(messages); i++ {
		assert.Equal(t, messages[0], messages[i])
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"standard", "Bearer abc.def.ghi", "abc.def.ghi", true},
		{"case-insensitive scheme", "bearer tok", "tok", true},
		{"missing", "", "", false},
		{"no scheme", "abc.def.ghi", "", false},
		{"empty token", "Bearer ", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			got, ok := bearerToken(r)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
