package album

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/albumforge/albumforge-api/internal/middleware"
	"github.com/albumforge/albumforge-api/internal/pkg/response"
	"github.com/albumforge/albumforge-api/internal/pkg/validator"
)

// Handler handles album HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates album handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /albums
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "authentication required")
		return
	}

	var req CreateAlbumRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if fields := validator.Validate(&req); fields != nil {
		response.ValidationError(w, fields)
		return
	}

	result, err := h.service.CreateAlbum(r.Context(), userID, &req)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to create album")
		response.InternalError(w)
		return
	}

	response.Created(w, result)
}

// List handles GET /albums
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "authentication required")
		return
	}

	result, err := h.service.ListAlbums(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list albums")
		response.InternalError(w)
		return
	}

	response.OK(w, result)
}

// Get handles GET /albums/{albumId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.service.GetAlbum(r.Context(), userID, albumID)
	if err != nil {
		switch {
		case errors.Is(err, ErrAlbumNotFound):
			response.NotFound(w, "album not found")
		default:
			log.Error().Err(err).Str("album_id", albumID.String()).Msg("failed to get album")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, result)
}

// Update handles PATCH /albums/{albumId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req UpdateAlbumRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if fields := validator.Validate(&req); fields != nil {
		response.ValidationError(w, fields)
		return
	}

	result, err := h.service.UpdateAlbum(r.Context(), userID, albumID, &req)
	if err != nil {
		h.writeAlbumError(w, err, albumID, "failed to update album")
		return
	}

	response.OK(w, result)
}

// Delete handles DELETE /albums/{albumId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.service.DeleteAlbum(r.Context(), userID, albumID); err != nil {
		h.writeAlbumError(w, err, albumID, "failed to delete album")
		return
	}

	response.NoContent(w)
}

// AddPage handles POST /albums/{albumId}/pages
func (h *Handler) AddPage(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.service.AddPage(r.Context(), userID, albumID)
	if err != nil {
		h.writeAlbumError(w, err, albumID, "failed to add page")
		return
	}

	response.Created(w, result)
}

// DeletePage handles DELETE /albums/{albumId}/pages/{pageId}
func (h *Handler) DeletePage(w http.ResponseWriter, r *http.Request) {
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

	pageID, err := uuid.Parse(chi.URLParam(r, "pageId"))
	if err != nil {
		response.BadRequest(w, "invalid page id")
		return
	}

	if err := h.service.DeletePage(r.Context(), userID, albumID, pageID); err != nil {
		switch {
		case errors.Is(err, ErrAlbumNotFound), errors.Is(err, ErrPageNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotAlbumOwner):
			response.Forbidden(w, err.Error())
		default:
			log.Error().Err(err).Str("page_id", pageID.String()).Msg("failed to delete page")
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

// AddObject handles POST /albums/{albumId}/objects
func (h *Handler) AddObject(w http.ResponseWriter, r *http.Request) {
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

	var req CreateObjectRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if fields := validator.Validate(&req); fields != nil {
		response.ValidationError(w, fields)
		return
	}

	result, err := h.service.AddObject(r.Context(), userID, albumID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrAlbumNotFound), errors.Is(err, ErrPageNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrInvalidContent):
			response.BadRequest(w, err.Error())
		default:
			log.Error().Err(err).Str("album_id", albumID.String()).Msg("failed to add object")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, result)
}

// UpdateObject handles PUT /albums/{albumId}/objects/{objectId}
func (h *Handler) UpdateObject(w http.ResponseWriter, r *http.Request) {
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

	objectID, err := uuid.Parse(chi.URLParam(r, "objectId"))
	if err != nil {
		response.BadRequest(w, "invalid object id")
		return
	}

	var req UpdateObjectRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if fields := validator.Validate(&req); fields != nil {
		response.ValidationError(w, fields)
		return
	}

	result, err := h.service.UpdateObject(r.Context(), userID, albumID, objectID, &req)
	if err != nil {
		h.writeObjectError(w, err, objectID, "failed to update object")
		return
	}

	response.OK(w, result)
}

// DeleteObject handles DELETE /albums/{albumId}/objects/{objectId}
func (h *Handler) DeleteObject(w http.ResponseWriter, r *http.Request) {
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

	objectID, err := uuid.Parse(chi.URLParam(r, "objectId"))
	if err != nil {
		response.BadRequest(w, "invalid object id")
		return
	}

	if err := h.service.DeleteObject(r.Context(), userID, albumID, objectID); err != nil {
		h.writeObjectError(w, err, objectID, "failed to delete object")
		return
	}

	response.NoContent(w)
}

func (h *Handler) writeAlbumError(w http.ResponseWriter, err error, albumID uuid.UUID, msg string) {
	switch {
	case errors.Is(err, ErrAlbumNotFound):
		response.NotFound(w, "album not found")
	case errors.Is(err, ErrNotAlbumOwner):
		response.Forbidden(w, err.Error())
	default:
		log.Error().Err(err).Str("album_id", albumID.String()).Msg(msg)
		response.InternalError(w)
	}
}

func (h *Handler) writeObjectError(w http.ResponseWriter, err error, objectID uuid.UUID, msg string) {
	switch {
	case errors.Is(err, ErrObjectNotFound):
		response.NotFound(w, "object not found")
	case errors.Is(err, ErrAlbumMismatch), errors.Is(err, ErrInvalidContent):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrNotAlbumOwner):
		response.Forbidden(w, err.Error())
	default:
		log.Error().Err(err).Str("object_id", objectID.String()).Msg(msg)
		response.InternalError(w)
	}
}
