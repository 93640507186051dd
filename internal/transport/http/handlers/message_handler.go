package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/abdulrafay-07/slack/internal/service"
	"github.com/abdulrafay-07/slack/internal/transport/http/middleware"
	"github.com/abdulrafay-07/slack/pkg/validator"
	"github.com/google/uuid"
)

type MessageHandler struct {
	messageService *service.MessageService
}

func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// SendToChannel posts a message to a channel.
func (h *MessageHandler) SendToChannel(w http.ResponseWriter, r *http.Request) {
	channelID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid channel ID")
		return
	}
	h.send(w, r, func(input *service.SendMessageInput) {
		input.ChannelID = &channelID
	})
}

// SendToConversation posts a direct message.
func (h *MessageHandler) SendToConversation(w http.ResponseWriter, r *http.Request) {
	conversationID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid conversation ID")
		return
	}
	h.send(w, r, func(input *service.SendMessageInput) {
		input.ConversationID = &conversationID
	})
}

// Reply posts into the thread under a parent message.
func (h *MessageHandler) Reply(w http.ResponseWriter, r *http.Request) {
	parentID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid message ID")
		return
	}
	h.send(w, r, func(input *service.SendMessageInput) {
		input.ParentID = &parentID
	})
}

func (h *MessageHandler) send(w http.ResponseWriter, r *http.Request, target func(*service.SendMessageInput)) {
	userID := middleware.GetUserID(r.Context())

	var input service.SendMessageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	// The route decides where the message goes, not the body.
	input.ChannelID = nil
	input.ConversationID = nil
	input.ParentID = nil
	target(&input)

	if errs := validator.ValidateMessageBody(input.Body); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	msg, err := h.messageService.Send(r.Context(), userID, input)
	if err != nil {
		writeMessageError(w, err, "send message")
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

func (h *MessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	messageID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid message ID")
		return
	}

	msg, err := h.messageService.Get(r.Context(), userID, messageID)
	if err != nil {
		writeMessageError(w, err, "get message")
		return
	}

	writeJSON(w, http.StatusOK, msg)
}

// ListChannel returns a channel's day-grouped timeline page.
func (h *MessageHandler) ListChannel(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.messageService.ListChannel, "Invalid channel ID")
}

// ListConversation returns a conversation's day-grouped timeline page.
func (h *MessageHandler) ListConversation(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.messageService.ListConversation, "Invalid conversation ID")
}

// ListThread returns the replies under a message.
func (h *MessageHandler) ListThread(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.messageService.ListThread, "Invalid message ID")
}

func (h *MessageHandler) list(
	w http.ResponseWriter,
	r *http.Request,
	fetch func(ctx context.Context, userID, scopeID uuid.UUID, before *uuid.UUID, limit int) (*service.TimelineResponse, error),
	invalidIDMsg string,
) {
	userID := middleware.GetUserID(r.Context())
	scopeID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", invalidIDMsg)
		return
	}

	var before *uuid.UUID
	if beforeStr := r.URL.Query().Get("before"); beforeStr != "" {
		id, err := uuid.Parse(beforeStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid before cursor")
			return
		}
		before = &id
	}

	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	resp, err := fetch(r.Context(), userID, scopeID, before, limit)
	if err != nil {
		log.Printf("ERROR list messages: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *MessageHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	messageID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid message ID")
		return
	}

	var input struct {
		Body string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateMessageBody(input.Body); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	msg, err := h.messageService.Edit(r.Context(), userID, messageID, input.Body)
	if err != nil {
		writeMessageError(w, err, "edit message")
		return
	}

	writeJSON(w, http.StatusOK, msg)
}

func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	messageID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid message ID")
		return
	}

	if err := h.messageService.Delete(r.Context(), userID, messageID); err != nil {
		writeMessageError(w, err, "delete message")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeMessageError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, service.ErrMessageNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Message not found")
	case errors.Is(err, service.ErrChannelNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Channel not found")
	case errors.Is(err, service.ErrConversationNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Conversation not found")
	case errors.Is(err, service.ErrNotMember):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "You are not a member of this workspace")
	case errors.Is(err, service.ErrNotParticipant):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "You are not a participant of this conversation")
	case errors.Is(err, service.ErrNotMessageOwner):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Only the message author can do this")
	case errors.Is(err, service.ErrInvalidTarget):
		writeError(w, http.StatusBadRequest, "INVALID_TARGET", "Message needs exactly one of channel or conversation")
	default:
		log.Printf("ERROR %s: %v", op, err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
	}
}
