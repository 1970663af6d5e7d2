package web

import (
	"encoding/json"
	"net/http"

	"github.com/usguri/almoxarifado-go/apperror"
)

// Validatable is implemented by request payloads that declare field
// constraints. Validate reports every violated constraint in one error.
type Validatable interface {
	Validate() error
}

// Authenticator verifies a request's credentials and returns the subject's
// user id. Failures are AuthErrors that never disclose the reason.
type Authenticator interface {
	Authenticate(r *http.Request) (int, error)
}

// JSON adapts a business function into an http.HandlerFunc for endpoints with
// a JSON body. The pipeline is strictly sequential and short-circuits:
// decode (malformed body → 400), validate (violations → 422), invoke, respond
// with 200. The business function never sees an unvalidated payload.
func JSON[Req Validatable, Resp any](fn func(r *http.Request, req Req) (Resp, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var req Req
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), err))
			return
		}

		if err := req.Validate(); err != nil {
			WriteError(w, r, err)
			return
		}

		resp, err := fn(r, req)
		if err != nil {
			WriteError(w, r, err)
			return
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

// AuthJSON is JSON for endpoints that also require authentication. The
// credential check is a pipeline step after validation, so a request that is
// both malformed and unauthenticated reports the payload problem: decode,
// validate, authenticate, invoke. The business function receives the verified
// subject id alongside the validated payload.
func AuthJSON[Req Validatable, Resp any](auth Authenticator, fn func(r *http.Request, subject int, req Req) (Resp, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var req Req
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), err))
			return
		}

		if err := req.Validate(); err != nil {
			WriteError(w, r, err)
			return
		}

		subject, err := auth.Authenticate(r)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		resp, err := fn(r, subject, req)
		if err != nil {
			WriteError(w, r, err)
			return
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

// Get adapts a business function for endpoints without a request body.
func Get[Resp any](fn func(r *http.Request) (Resp, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := fn(r)
		if err != nil {
			WriteError(w, r, err)
			return
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

// AuthGet is Get for endpoints that require authentication. With no body to
// decode, credential verification is the first step.
func AuthGet[Resp any](auth Authenticator, fn func(r *http.Request, subject int) (Resp, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subject, err := auth.Authenticate(r)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		resp, err := fn(r, subject)
		if err != nil {
			WriteError(w, r, err)
			return
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

// Do adapts a business function for endpoints that answer 200 with an empty
// body, such as deletes.
func Do(fn func(r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(r); err != nil {
			WriteError(w, r, err)
			return
		}
		WriteJSON(w, http.StatusOK, nil)
	}
}

// AuthDo is Do for endpoints that require authentication.
func AuthDo(auth Authenticator, fn func(r *http.Request, subject int) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subject, err := auth.Authenticate(r)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		if err := fn(r, subject); err != nil {
			WriteError(w, r, err)
			return
		}
		WriteJSON(w, http.StatusOK, nil)
	}
}
