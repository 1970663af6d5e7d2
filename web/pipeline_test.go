package web

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usguri/almoxarifado-go/apperror"
	"github.com/usguri/almoxarifado-go/validation"
)

type createThing struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (c createThing) Validate() error {
	return validation.Validate(
		validation.F("name", c.Name, validation.NonEmpty()),
		validation.F("email", c.Email, validation.Email()),
	)
}

type thingResponse struct {
	ID int `json:"id"`
}

func newCreateHandler(t *testing.T) http.HandlerFunc {
	t.Helper()
	return JSON(func(r *http.Request, req createThing) (thingResponse, error) {
		// Reaching here implies the payload passed validation.
		require.NotEmpty(t, req.Name)
		return thingResponse{ID: 1}, nil
	})
}

func TestJSONPipelineSequencing(t *testing.T) {
	t.Run("malformed body is 400 and never validated", func(t *testing.T) {
		handler := JSON(func(r *http.Request, req createThing) (thingResponse, error) {
			t.Fatal("business logic must not run for malformed bodies")
			return thingResponse{}, nil
		})
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid request body")
	})

	t.Run("constraint violations are 422 listing every failure", func(t *testing.T) {
		handler := JSON(func(r *http.Request, req createThing) (thingResponse, error) {
			t.Fatal("business logic must not run for invalid payloads")
			return thingResponse{}, nil
		})
		body := `{"name": "", "email": "not-an-email"}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "name: cannot be empty")
		assert.Contains(t, rec.Body.String(), "email: invalid email")
	})

	t.Run("valid payload reaches business logic and answers 200", func(t *testing.T) {
		body := `{"name": "warehouse", "email": "a@example.com"}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		rec := httptest.NewRecorder()
		newCreateHandler(t).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":1}`, rec.Body.String())
	})
}

func TestGet(t *testing.T) {
	handler := Get(func(r *http.Request) (thingResponse, error) {
		return thingResponse{ID: 7}, nil
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":7}`, rec.Body.String())
}

func TestDo(t *testing.T) {
	t.Run("success is 200 with empty body", func(t *testing.T) {
		handler := Do(func(r *http.Request) error { return nil })
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		handler := Do(func(r *http.Request) error {
			return apperror.NewNotFoundError("place 9 not found", nil)
		})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"not found"}`, rec.Body.String())
	})
}

// stubAuthenticator accepts requests carrying the "Authorization: ok" header
// and rejects everything else the way a token verifier would.
type stubAuthenticator struct {
	calls int
}

func (s *stubAuthenticator) Authenticate(r *http.Request) (int, error) {
	s.calls++
	if r.Header.Get("Authorization") != "ok" {
		return 0, apperror.NewAuthError("authentication required", nil)
	}
	return 42, nil
}

func TestAuthJSONPipelineSequencing(t *testing.T) {
	t.Run("invalid payload without credentials is 422, credentials never checked", func(t *testing.T) {
		auth := &stubAuthenticator{}
		handler := AuthJSON(auth, func(r *http.Request, subject int, req createThing) (thingResponse, error) {
			t.Fatal("business logic must not run for invalid payloads")
			return thingResponse{}, nil
		})
		body := `{"name": "", "email": "not-an-email"}`
		req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		// Validation precedes the credential check, so the double failure
		// reports the payload violations.
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "name: cannot be empty")
		assert.Equal(t, 0, auth.calls)
	})

	t.Run("malformed body without credentials is 400", func(t *testing.T) {
		auth := &stubAuthenticator{}
		handler := AuthJSON(auth, func(r *http.Request, subject int, req createThing) (thingResponse, error) {
			t.Fatal("business logic must not run for malformed bodies")
			return thingResponse{}, nil
		})
		req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, 0, auth.calls)
	})

	t.Run("valid payload without credentials is 401", func(t *testing.T) {
		handler := AuthJSON(&stubAuthenticator{}, func(r *http.Request, subject int, req createThing) (thingResponse, error) {
			t.Fatal("business logic must not run for unauthenticated requests")
			return thingResponse{}, nil
		})
		body := `{"name": "warehouse", "email": "a@example.com"}`
		req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid and authenticated reaches business logic with the subject", func(t *testing.T) {
		handler := AuthJSON(&stubAuthenticator{}, func(r *http.Request, subject int, req createThing) (thingResponse, error) {
			require.Equal(t, 42, subject)
			return thingResponse{ID: subject}, nil
		})
		body := `{"name": "warehouse", "email": "a@example.com"}`
		req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(body))
		req.Header.Set("Authorization", "ok")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":42}`, rec.Body.String())
	})
}

func TestAuthGet(t *testing.T) {
	handler := AuthGet(&stubAuthenticator{}, func(r *http.Request, subject int) (thingResponse, error) {
		return thingResponse{ID: subject}, nil
	})

	t.Run("missing credentials are 401", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("subject flows to business logic", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "ok")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":42}`, rec.Body.String())
	})
}

func TestAuthDo(t *testing.T) {
	t.Run("missing credentials are 401 and business logic never runs", func(t *testing.T) {
		handler := AuthDo(&stubAuthenticator{}, func(r *http.Request, subject int) error {
			t.Fatal("business logic must not run for unauthenticated requests")
			return nil
		})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("authenticated success is 200 with empty body", func(t *testing.T) {
		handler := AuthDo(&stubAuthenticator{}, func(r *http.Request, subject int) error { return nil })
		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		req.Header.Set("Authorization", "ok")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}

func TestWriteErrorPolicy(t *testing.T) {
	t.Run("internal detail is masked", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		WriteError(rec, req, apperror.NewDatabaseError("query users failed", errors.New("connection refused")))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"an internal server error occurred"}`, rec.Body.String())
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})

	t.Run("plain errors are treated as internal faults", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		WriteError(rec, req, errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "boom")
	})

	t.Run("conflict message is verbatim", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		WriteError(rec, req, apperror.NewConflictError("email already taken", nil))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.JSONEq(t, `{"error":"email already taken"}`, rec.Body.String())
	})
}
