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

type WorkspaceHandler struct {
	workspaceService *service.WorkspaceService
}

func NewWorkspaceHandler(workspaceService *service.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

func (h *WorkspaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input service.CreateWorkspaceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateWorkspaceName(input.Name); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	ws, err := h.workspaceService.Create(r.Context(), userID, input)
	if err != nil {
		log.Printf("ERROR create workspace: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusCreated, ws)
}

func (h *WorkspaceHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	workspaces, err := h.workspaceService.ListByUser(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR list workspaces: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, workspaces)
}

func (h *WorkspaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	workspaceID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid workspace ID")
		return
	}

	ws, err := h.workspaceService.GetByID(r.Context(), userID, workspaceID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkspaceNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Workspace not found")
		case errors.Is(err, service.ErrNotMember):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "You are not a member of this workspace")
		default:
			log.Printf("ERROR get workspace: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, ws)
}

// GetInfo is the join-screen view: name plus whether the caller is already
// a member. Accessible to any authenticated user.
func (h *WorkspaceHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	workspaceID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid workspace ID")
		return
	}

	info, err := h.workspaceService.GetInfo(r.Context(), userID, workspaceID)
	if err != nil {
		if errors.Is(err, service.ErrWorkspaceNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Workspace not found")
		} else {
			log.Printf("ERROR get workspace info: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, info)
}

func (h *WorkspaceHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	workspaceID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid workspace ID")
		return
	}

	var input service.CreateWorkspaceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateWorkspaceName(input.Name); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	ws, err := h.workspaceService.Rename(r.Context(), userID, workspaceID, input.Name)
	if err != nil {
		writeWorkspaceError(w, err, "rename workspace")
		return
	}

	writeJSON(w, http.StatusOK, ws)
}

func (h *WorkspaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	workspaceID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid workspace ID")
		return
	}

	if err := h.workspaceService.Delete(r.Context(), userID, workspaceID); err != nil {
		writeWorkspaceError(w, err, "delete workspace")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *WorkspaceHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	workspaceID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid workspace ID")
		return
	}

	var input struct {
		JoinCode string `json:"join_code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	member, err := h.workspaceService.Join(r.Context(), userID, workspaceID, input.JoinCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkspaceNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Workspace not found")
		case errors.Is(err, service.ErrInvalidJoinCode):
			writeError(w, http.StatusForbidden, "INVALID_JOIN_CODE", "Join code does not match")
		case errors.Is(err, service.ErrAlreadyMember):
			writeError(w, http.StatusConflict, "ALREADY_MEMBER", "You already belong to this workspace")
		default:
			log.Printf("ERROR join workspace: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, member)
}

func (h *WorkspaceHandler) ResetJoinCode(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	workspaceID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid workspace ID")
		return
	}

	joinCode, err := h.workspaceService.ResetJoinCode(r.Context(), userID, workspaceID)
	if err != nil {
		writeWorkspaceError(w, err, "reset join code")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"join_code": joinCode})
}

func (h *WorkspaceHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	workspaceID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid workspace ID")
		return
	}

	members, err := h.workspaceService.ListMembers(r.Context(), userID, workspaceID)
	if err != nil {
		writeWorkspaceError(w, err, "list members")
		return
	}

	writeJSON(w, http.StatusOK, members)
}

// CurrentMember resolves the caller's own member record in a workspace.
func (h *WorkspaceHandler) CurrentMember(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	workspaceID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid workspace ID")
		return
	}

	member, err := h.workspaceService.CurrentMember(r.Context(), userID, workspaceID)
	if err != nil {
		writeWorkspaceError(w, err, "current member")
		return
	}

	writeJSON(w, http.StatusOK, member)
}

func (h *WorkspaceHandler) GetMember(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	memberID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid member ID")
		return
	}

	member, err := h.workspaceService.GetMember(r.Context(), userID, memberID)
	if err != nil {
		writeWorkspaceError(w, err, "get member")
		return
	}

	writeJSON(w, http.StatusOK, member)
}

func (h *WorkspaceHandler) UpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	memberID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid member ID")
		return
	}

	var input struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if input.Role != "admin" && input.Role != "member" {
		writeError(w, http.StatusBadRequest, "INVALID_ROLE", "Role must be admin or member")
		return
	}

	member, err := h.workspaceService.UpdateMemberRole(r.Context(), userID, memberID, input.Role)
	if err != nil {
		writeWorkspaceError(w, err, "update member role")
		return
	}

	writeJSON(w, http.StatusOK, member)
}

func (h *WorkspaceHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	memberID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid member ID")
		return
	}

	if err := h.workspaceService.RemoveMember(r.Context(), userID, memberID); err != nil {
		if errors.Is(err, service.ErrAdminCannotLeave) {
			writeError(w, http.StatusConflict, "ADMIN_CANNOT_LEAVE", "An admin cannot leave the workspace")
			return
		}
		writeWorkspaceError(w, err, "remove member")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeWorkspaceError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, service.ErrWorkspaceNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Workspace not found")
	case errors.Is(err, service.ErrMemberNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Member not found")
	case errors.Is(err, service.ErrNotMember):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "You are not a member of this workspace")
	case errors.Is(err, service.ErrNotAdmin):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Only a workspace admin can do this")
	default:
		log.Printf("ERROR %s: %v", op, err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
	}
}
