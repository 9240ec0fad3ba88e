package sticker

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/albumforge/albumforge-api/internal/pkg/response"
	"github.com/albumforge/albumforge-api/internal/pkg/validator"
)

// Handler handles sticker HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates sticker handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /stickers?category=...
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	result, err := h.service.List(r.Context(), category)
	if err != nil {
		log.Error().Err(err).Msg("failed to list stickers")
		response.InternalError(w)
		return
	}

	response.OK(w, result)
}

// Get handles GET /stickers/{stickerId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	stickerID, err := uuid.Parse(chi.URLParam(r, "stickerId"))
	if err != nil {
		response.BadRequest(w, "invalid sticker id")
		return
	}

	result, err := h.service.Get(r.Context(), stickerID)
	if err != nil {
		h.writeStickerError(w, err, stickerID, "failed to get sticker")
		return
	}

	response.OK(w, result)
}

// Create handles POST /stickers (admin only)
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateStickerRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if fields := validator.Validate(&req); fields != nil {
		response.ValidationError(w, fields)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		log.Error().Err(err).Msg("failed to create sticker")
		response.InternalError(w)
		return
	}

	response.Created(w, result)
}

// Update handles PUT /stickers/{stickerId} (admin only)
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	stickerID, err := uuid.Parse(chi.URLParam(r, "stickerId"))
	if err != nil {
		response.BadRequest(w, "invalid sticker id")
		return
	}

	var req UpdateStickerRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if fields := validator.Validate(&req); fields != nil {
		response.ValidationError(w, fields)
		return
	}

	result, err := h.service.Update(r.Context(), stickerID, &req)
	if err != nil {
		h.writeStickerError(w, err, stickerID, "failed to update sticker")
		return
	}

	response.OK(w, result)
}

// Delete handles DELETE /stickers/{stickerId} (admin only)
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	stickerID, err := uuid.Parse(chi.URLParam(r, "stickerId"))
	if err != nil {
		response.BadRequest(w, "invalid sticker id")
		return
	}

	if err := h.service.Delete(r.Context(), stickerID); err != nil {
		h.writeStickerError(w, err, stickerID, "failed to delete sticker")
		return
	}

	response.NoContent(w)
}

func (h *Handler) writeStickerError(w http.ResponseWriter, err error, stickerID uuid.UUID, msg string) {
	switch {
	case errors.Is(err, ErrStickerNotFound):
		response.NotFound(w, "sticker not found")
	default:
		log.Error().Err(err).Str("sticker_id", stickerID.String()).Msg(msg)
		response.InternalError(w)
	}
}
