package album

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns album router. All routes require authentication.
// The download handler lives in the export domain but shares the album
// URL space, so it is mounted here.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler, download http.HandlerFunc) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Post("/", h.Create)
	r.Get("/", h.List)

	r.Route("/{albumId}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Patch("/", h.Update)
		r.Delete("/", h.Delete)

		r.Post("/pages", h.AddPage)
		r.Delete("/pages/{pageId}", h.DeletePage)

		r.Post("/objects", h.AddObject)
		r.Put("/objects/{objectId}", h.UpdateObject)
		r.Delete("/objects/{objectId}", h.DeleteObject)

		r.Get("/download", download)
	})

	return r
}
