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

type ReactionHandler struct {
	reactionService *service.ReactionService
}

func NewReactionHandler(reactionService *service.ReactionService) *ReactionHandler {
	return &ReactionHandler{reactionService: reactionService}
}

// Toggle adds or removes the caller's emoji on a message.
func (h *ReactionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	messageID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid message ID")
		return
	}

	var input struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateReactionValue(input.Value); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	result, err := h.reactionService.Toggle(r.Context(), userID, messageID, input.Value)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMessageNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Message not found")
		case errors.Is(err, service.ErrNotMember):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "You are not a member of this workspace")
		default:
			log.Printf("ERROR toggle reaction: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}
