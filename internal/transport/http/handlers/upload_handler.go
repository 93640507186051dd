package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/abdulrafay-07/slack/internal/storage"
)

const maxUploadSize = 10 << 20 // 10 MiB

type UploadHandler struct {
	store *storage.Store
}

func NewUploadHandler(store *storage.Store) *UploadHandler {
	return &UploadHandler{store: store}
}

// Upload accepts a multipart file and returns the storage key to attach to a
// message.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_UPLOAD", "File is missing or too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_UPLOAD", "File is missing or too large")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key, err := h.store.Upload(r.Context(), header.Filename, contentType, file, header.Size)
	if err != nil {
		log.Printf("ERROR upload file: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"file_key": key})
}

// Download redirects to a short-lived presigned URL for the stored object.
func (h *UploadHandler) Download(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid file key")
		return
	}

	u, err := h.store.PresignedURL(r.Context(), key, 15*time.Minute)
	if err != nil {
		log.Printf("ERROR presign file: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	http.Redirect(w, r, u, http.StatusTemporaryRedirect)
}
