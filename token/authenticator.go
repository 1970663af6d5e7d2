package token

import (
	"net/http"
	"strings"

	"github.com/usguri/almoxarifado-go/apperror"
)

// Authenticate verifies the bearer token of an incoming request and returns
// the subject's user id. A missing header, wrong scheme, or a token that
// fails verification all produce the identical AuthError; the reason is never
// disclosed. It satisfies the request pipeline's Authenticator interface, so
// endpoints declare authentication as a pipeline step rather than a wrapping
// middleware.
func (i *Issuer) Authenticate(r *http.Request) (int, error) {
	raw, ok := bearerToken(r)
	if !ok {
		return 0, apperror.NewAuthError("authentication required", nil)
	}

	claims, err := i.Verify(raw)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
