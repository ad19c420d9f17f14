package screen

import (
	"github.com/go-chi/chi/v5"

	"github.com/screentime/screentime-api/internal/domain/admin"
)

// PublicRoutes returns public screen routes
func (h *Handler) PublicRoutes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)

	return r
}

// AdminRoutes returns admin screen routes
func (h *Handler) AdminRoutes(jwtSvc *admin.JWTService, adminSvc *admin.Service) chi.Router {
	r := chi.NewRouter()

	// All routes require admin auth
	r.Use(admin.AuthMiddleware(jwtSvc, adminSvc))

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}
