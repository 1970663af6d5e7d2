package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/usguri/almoxarifado-go/web"
)

// Handlers exposes the users service over HTTP. Authenticated endpoints carry
// the credential check as a pipeline step in their adapters, after payload
// decoding and validation.
type Handlers struct {
	service *Service
	auth    web.Authenticator
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *Service, auth web.Authenticator) *Handlers {
	return &Handlers{service: service, auth: auth}
}

// HandleMe godoc
// @Summary Current User
// @Description Returns the user identified by the session token.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} users.UserResponse "Current user"
// @Failure 401 {object} apperror.ErrorResponse "Authentication required"
// @Failure 404 {object} apperror.ErrorResponse "User no longer exists"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /users/me [get]
func (h *Handlers) HandleMe() http.HandlerFunc {
	return web.AuthGet(h.auth, func(r *http.Request, subject int) (*UserResponse, error) {
		return h.service.GetByID(r.Context(), subject)
	})
}

// HandleUpdate godoc
// @Summary Update User
// @Description Partially updates a user. Absent fields are left unchanged.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param updateBody body users.UpdateUserRequest true "Fields to update"
// @Success 200 {object} users.UserResponse "Updated user"
// @Failure 400 {object} apperror.ErrorResponse "Malformed request"
// @Failure 401 {object} apperror.ErrorResponse "Authentication required"
// @Failure 404 {object} apperror.ErrorResponse "Unknown user id"
// @Failure 409 {object} apperror.ErrorResponse "Email already taken"
// @Failure 422 {object} apperror.ErrorResponse "Validation failed"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /users/update/{id} [patch]
func (h *Handlers) HandleUpdate() http.HandlerFunc {
	return web.AuthJSON(h.auth, func(r *http.Request, subject int, req UpdateUserRequest) (*UserResponse, error) {
		id, err := web.IntParam(r, "id")
		if err != nil {
			return nil, err
		}
		return h.service.Update(r.Context(), id, req)
	})
}

// HandleDelete godoc
// @Summary Delete User
// @Description Deletes a user. Answers 200 with an empty body.
// @Tags users
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 "Deleted"
// @Failure 400 {object} apperror.ErrorResponse "Malformed request"
// @Failure 401 {object} apperror.ErrorResponse "Authentication required"
// @Failure 404 {object} apperror.ErrorResponse "Unknown user id"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /users/delete/{id} [delete]
func (h *Handlers) HandleDelete() http.HandlerFunc {
	return web.AuthDo(h.auth, func(r *http.Request, subject int) error {
		id, err := web.IntParam(r, "id")
		if err != nil {
			return err
		}
		return h.service.Delete(r.Context(), id)
	})
}

// HandleListProfiles godoc
// @Summary List Profiles
// @Description Lists the public profile of every user.
// @Tags profile
// @Produce json
// @Success 200 {array} users.Profile "Profiles"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /profile/all [get]
func (h *Handlers) HandleListProfiles() http.HandlerFunc {
	return web.Get(func(r *http.Request) ([]Profile, error) {
		return h.service.ListProfiles(r.Context())
	})
}

// HandleGetProfile godoc
// @Summary Get Profile
// @Description Returns the public profile of one user.
// @Tags profile
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} users.Profile "Profile"
// @Failure 400 {object} apperror.ErrorResponse "Malformed request"
// @Failure 404 {object} apperror.ErrorResponse "Unknown user id"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /profile/{id} [get]
func (h *Handlers) HandleGetProfile() http.HandlerFunc {
	return web.Get(func(r *http.Request) (*Profile, error) {
		id, err := web.IntParam(r, "id")
		if err != nil {
			return nil, err
		}
		return h.service.GetProfile(r.Context(), id)
	})
}

// RegisterProfileRoutes mounts the public profile endpoints on the router.
// Both the bare prefix and /all answer the full listing, mirroring how the
// equivalent place listing is exposed.
func (h *Handlers) RegisterProfileRoutes(r chi.Router) {
	r.Get("/", h.HandleListProfiles())
	r.Get("/all", h.HandleListProfiles())
	r.Get("/{id}", h.HandleGetProfile())
}
