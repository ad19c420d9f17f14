package booking

import (
	"github.com/go-chi/chi/v5"

	"github.com/screentime/screentime-api/internal/domain/admin"
)

// PublicRoutes returns public booking routes
func (h *Handler) PublicRoutes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/{id}", h.GetByID)

	return r
}

// AdminRoutes returns admin booking routes
func (h *Handler) AdminRoutes(jwtSvc *admin.JWTService, adminSvc *admin.Service) chi.Router {
	r := chi.NewRouter()

	// All routes require admin auth
	r.Use(admin.AuthMiddleware(jwtSvc, adminSvc))

	r.Get("/", h.List)
	r.Delete("/{id}", h.Delete)

	return r
}
