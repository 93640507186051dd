package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/abdulrafay-07/slack/internal/service"
	"github.com/abdulrafay-07/slack/internal/transport/http/middleware"
	"github.com/google/uuid"
)

type ConversationHandler struct {
	conversationService *service.ConversationService
}

func NewConversationHandler(conversationService *service.ConversationService) *ConversationHandler {
	return &ConversationHandler{conversationService: conversationService}
}

// CreateOrGet resolves the conversation between the caller and another
// member, creating it on first contact. POSTing twice (from either side)
// returns the same conversation.
func (h *ConversationHandler) CreateOrGet(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	workspaceID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid workspace ID")
		return
	}

	var input struct {
		MemberID uuid.UUID `json:"member_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if input.MemberID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "MISSING_MEMBER", "member_id is required")
		return
	}

	conv, err := h.conversationService.CreateOrGet(r.Context(), userID, workspaceID, input.MemberID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotMember):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "You are not a member of this workspace")
		case errors.Is(err, service.ErrMemberNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Member not found")
		default:
			log.Printf("ERROR create or get conversation: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, conv)
}

func (h *ConversationHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	conversationID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid conversation ID")
		return
	}

	conv, err := h.conversationService.Get(r.Context(), userID, conversationID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConversationNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Conversation not found")
		case errors.Is(err, service.ErrNotParticipant):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "You are not a participant of this conversation")
		default:
			log.Printf("ERROR get conversation: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, conv)
}
