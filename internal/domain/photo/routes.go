package photo

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns photo router. All routes require authentication.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Post("/", h.Upload)
	r.Get("/", h.List)
	r.Get("/{photoId}/file", h.GetFile)
	r.Delete("/{photoId}", h.Delete)

	return r
}
