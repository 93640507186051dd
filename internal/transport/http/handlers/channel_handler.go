package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/abdulrafay-07/slack/internal/service"
	"github.com/abdulrafay-07/slack/internal/transport/http/middleware"
	"github.com/abdulrafay-07/slack/pkg/validator"
	"github.com/google/uuid"
)

type ChannelHandler struct {
	channelService *service.ChannelService
}

func NewChannelHandler(channelService *service.ChannelService) *ChannelHandler {
	return &ChannelHandler{channelService: channelService}
}

type channelInput struct {
	Name string `json:"name"`
}

func (h *ChannelHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	workspaceID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid workspace ID")
		return
	}

	var input channelInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateChannelName(input.Name); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	channel, err := h.channelService.Create(r.Context(), userID, workspaceID, input.Name)
	if err != nil {
		writeChannelError(w, err, "create channel")
		return
	}

	writeJSON(w, http.StatusCreated, channel)
}

func (h *ChannelHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	workspaceID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid workspace ID")
		return
	}

	channels, err := h.channelService.ListByWorkspace(r.Context(), userID, workspaceID)
	if err != nil {
		writeChannelError(w, err, "list channels")
		return
	}

	writeJSON(w, http.StatusOK, channels)
}

func (h *ChannelHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	channelID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid channel ID")
		return
	}

	channel, err := h.channelService.GetByID(r.Context(), userID, channelID)
	if err != nil {
		writeChannelError(w, err, "get channel")
		return
	}

	writeJSON(w, http.StatusOK, channel)
}

func (h *ChannelHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	channelID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid channel ID")
		return
	}

	var input channelInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateChannelName(input.Name); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	channel, err := h.channelService.Rename(r.Context(), userID, channelID, input.Name)
	if err != nil {
		writeChannelError(w, err, "rename channel")
		return
	}

	writeJSON(w, http.StatusOK, channel)
}

func (h *ChannelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	channelID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid channel ID")
		return
	}

	if err := h.channelService.Delete(r.Context(), userID, channelID); err != nil {
		writeChannelError(w, err, "delete channel")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeChannelError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, service.ErrChannelNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Channel not found")
	case errors.Is(err, service.ErrNotMember):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "You are not a member of this workspace")
	case errors.Is(err, service.ErrNotAdmin):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Only a workspace admin can do this")
	default:
		log.Printf("ERROR %s: %v", op, err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
	}
}
