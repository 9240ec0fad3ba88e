package export

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/albumforge/albumforge-api/internal/domain/album"
	"github.com/albumforge/albumforge-api/internal/middleware"
	"github.com/albumforge/albumforge-api/internal/pkg/response"
)

// Handler handles album export HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates export handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Download handles GET /albums/{albumId}/download and responds with the
// rendered PDF as an attachment
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "authentication required")
		return
	}

	albumID, err := uuid.Parse(chi.URLParam(r, "albumId"))
	if err != nil {
		response.BadRequest(w, "invalid album id")
		return
	}

	result, err := h.service.Export(r.Context(), userID, albumID)
	if err != nil {
		switch {
		case errors.Is(err, album.ErrAlbumNotFound):
			response.NotFound(w, "album not found")
		default:
			log.Error().Err(err).Str("album_id", albumID.String()).Msg("failed to export album")
			response.InternalError(w)
		}
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Data); err != nil {
		log.Warn().Err(err).Str("album_id", albumID.String()).Msg("pdf download interrupted")
	}
}
