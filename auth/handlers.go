package auth

import (
	"net/http"

	"github.com/usguri/almoxarifado-go/web"
)

// Handlers exposes the auth service over HTTP.
type Handlers struct {
	service *Service
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// HandleRegister godoc
// @Summary User Registration
// @Description Registers a new user and returns its id, name, email and a session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerBody body auth.RegisterRequest true "User registration details"
// @Success 200 {object} auth.AuthResponse "User created"
// @Failure 400 {object} apperror.ErrorResponse "Malformed request body"
// @Failure 409 {object} apperror.ErrorResponse "Email already taken"
// @Failure 422 {object} apperror.ErrorResponse "Validation failed"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /users/create [post]
func (h *Handlers) HandleRegister() http.HandlerFunc {
	return web.JSON(func(r *http.Request, req RegisterRequest) (*AuthResponse, error) {
		return h.service.Register(r.Context(), req)
	})
}

// HandleLogin godoc
// @Summary User Login
// @Description Logs in an existing user and returns the same body shape as registration.
// @Tags auth
// @Accept json
// @Produce json
// @Param loginBody body auth.LoginRequest true "User login credentials"
// @Success 200 {object} auth.AuthResponse "Login successful"
// @Failure 401 {object} apperror.ErrorResponse "Invalid credentials"
// @Failure 422 {object} apperror.ErrorResponse "Validation failed"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /users/login [post]
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return web.JSON(func(r *http.Request, req LoginRequest) (*AuthResponse, error) {
		return h.service.Login(r.Context(), req)
	})
}
