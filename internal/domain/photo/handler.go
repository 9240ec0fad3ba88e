package photo

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/albumforge/albumforge-api/internal/middleware"
	"github.com/albumforge/albumforge-api/internal/pkg/response"
)

// Handler handles photo HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates photo handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Upload handles POST /photos (multipart/form-data, field "file")
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "authentication required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.service.MaxSize())
	if err := r.ParseMultipartForm(h.service.MaxSize()); err != nil {
		response.BadRequest(w, "invalid multipart form or file too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "file field is required")
		return
	}
	defer file.Close()

	result, err := h.service.Upload(r.Context(), userID, header.Filename, header.Size, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidImage), errors.Is(err, ErrFileTooLarge):
			response.BadRequest(w, err.Error())
		default:
			log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to upload photo")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, result)
}

// List handles GET /photos
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "authentication required")
		return
	}

	result, err := h.service.List(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list photos")
		response.InternalError(w)
		return
	}

	response.OK(w, result)
}

// GetFile handles GET /photos/{photoId}/file and streams the stored bytes
func (h *Handler) GetFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "authentication required")
		return
	}

	photoID, err := uuid.Parse(chi.URLParam(r, "photoId"))
	if err != nil {
		response.BadRequest(w, "invalid photo id")
		return
	}

	rc, p, err := h.service.OpenFile(r.Context(), userID, photoID)
	if err != nil {
		h.writePhotoError(w, err, photoID, "failed to open photo")
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", p.MimeType)
	w.Header().Set("Content-Length", strconv.FormatInt(p.FileSize, 10))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		log.Warn().Err(err).Str("photo_id", photoID.String()).Msg("photo stream interrupted")
	}
}

// Delete handles DELETE /photos/{photoId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "authentication required")
		return
	}

	photoID, err := uuid.Parse(chi.URLParam(r, "photoId"))
	if err != nil {
		response.BadRequest(w, "invalid photo id")
		return
	}

	if err := h.service.Delete(r.Context(), userID, photoID); err != nil {
		h.writePhotoError(w, err, photoID, "failed to delete photo")
		return
	}

	response.NoContent(w)
}

func (h *Handler) writePhotoError(w http.ResponseWriter, err error, photoID uuid.UUID, msg string) {
	switch {
	case errors.Is(err, ErrPhotoNotFound):
		response.NotFound(w, "photo not found")
	case errors.Is(err, ErrNotPhotoOwner):
		response.Forbidden(w, err.Error())
	default:
		log.Error().Err(err).Str("photo_id", photoID.String()).Msg(msg)
		response.InternalError(w)
	}
}
