package sticker

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/albumforge/albumforge-api/internal/middleware"
)

// Routes returns sticker router. Reads require authentication; catalog
// mutations additionally require the admin role.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/", h.List)
	r.Get("/{stickerId}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin())
		r.Post("/", h.Create)
		r.Put("/{stickerId}", h.Update)
		r.Delete("/{stickerId}", h.Delete)
	})

	return r
}
