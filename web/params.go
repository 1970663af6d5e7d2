package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/usguri/almoxarifado-go/apperror"
)

// IntParam extracts a numeric path parameter. A non-numeric value is a
// malformed request, not a validation failure: the route shape itself is
// wrong.
func IntParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.NewBadRequestError(fmt.Sprintf("invalid %s parameter: %q", name, raw), err)
	}
	return value, nil
}
