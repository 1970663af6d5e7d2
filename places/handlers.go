package places

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/usguri/almoxarifado-go/web"
)

// Handlers exposes the places service over HTTP.
type Handlers struct {
	service *Service
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes mounts the place endpoints on the router. Both the bare
// prefix and /all answer the full listing.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleList())
	r.Get("/all", h.HandleList())
	r.Get("/{id}", h.HandleGet())
	r.Post("/create", h.HandleCreate())
	r.Patch("/update/{id}", h.HandleUpdate())
	r.Delete("/delete/{id}", h.HandleDelete())
}

// HandleList godoc
// @Summary List Places
// @Tags places
// @Produce json
// @Success 200 {array} places.Place "Places"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /place/all [get]
func (h *Handlers) HandleList() http.HandlerFunc {
	return web.Get(func(r *http.Request) ([]Place, error) {
		return h.service.List(r.Context())
	})
}

// HandleGet godoc
// @Summary Get Place
// @Tags places
// @Produce json
// @Param id path int true "Place ID"
// @Success 200 {object} places.Place "Place"
// @Failure 400 {object} apperror.ErrorResponse "Malformed request"
// @Failure 404 {object} apperror.ErrorResponse "Unknown place id"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /place/{id} [get]
func (h *Handlers) HandleGet() http.HandlerFunc {
	return web.Get(func(r *http.Request) (*Place, error) {
		id, err := web.IntParam(r, "id")
		if err != nil {
			return nil, err
		}
		return h.service.Get(r.Context(), id)
	})
}

// HandleCreate godoc
// @Summary Create Place
// @Tags places
// @Accept json
// @Produce json
// @Param placeBody body places.CreatePlaceRequest true "Place details"
// @Success 200 {object} places.Place "Place created"
// @Failure 400 {object} apperror.ErrorResponse "Malformed request body"
// @Failure 409 {object} apperror.ErrorResponse "Name already taken"
// @Failure 422 {object} apperror.ErrorResponse "Validation failed"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /place/create [post]
func (h *Handlers) HandleCreate() http.HandlerFunc {
	return web.JSON(func(r *http.Request, req CreatePlaceRequest) (*Place, error) {
		return h.service.Create(r.Context(), req)
	})
}

// HandleUpdate godoc
// @Summary Update Place
// @Tags places
// @Accept json
// @Produce json
// @Param id path int true "Place ID"
// @Param placeBody body places.UpdatePlaceRequest true "Fields to update"
// @Success 200 {object} places.Place "Updated place"
// @Failure 400 {object} apperror.ErrorResponse "Malformed request"
// @Failure 404 {object} apperror.ErrorResponse "Unknown place id"
// @Failure 409 {object} apperror.ErrorResponse "Name already taken"
// @Failure 422 {object} apperror.ErrorResponse "Validation failed"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /place/update/{id} [patch]
func (h *Handlers) HandleUpdate() http.HandlerFunc {
	return web.JSON(func(r *http.Request, req UpdatePlaceRequest) (*Place, error) {
		id, err := web.IntParam(r, "id")
		if err != nil {
			return nil, err
		}
		return h.service.Update(r.Context(), id, req)
	})
}

// HandleDelete godoc
// @Summary Delete Place
// @Tags places
// @Param id path int true "Place ID"
// @Success 200 "Deleted"
// @Failure 400 {object} apperror.ErrorResponse "Malformed request"
// @Failure 404 {object} apperror.ErrorResponse "Unknown place id"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /place/delete/{id} [delete]
func (h *Handlers) HandleDelete() http.HandlerFunc {
	return web.Do(func(r *http.Request) error {
		id, err := web.IntParam(r, "id")
		if err != nil {
			return err
		}
		return h.service.Delete(r.Context(), id)
	})
}
