package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"courier/internal/middleware"
	"courier/internal/models"
)

const maxUploadSize = 10 << 20 // 10MB

type MediaHandler struct {
	UploadDir string
}

// Upload stores a media file and returns the URL to reference from a
// sendMessage intent. Transcoding and thumbnails are out of scope; the
// file is saved as-is.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "File too large", http.StatusRequestEntityTooLarge)
		return
	}

	file, header, err := r.FormFile("media")
	if err != nil {
		http.Error(w, "Missing media file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	mediaType := classifyMedia(header.Header.Get("Content-Type"))
	if !mediaType.Valid() {
		http.Error(w, "Unsupported media type", http.StatusUnsupportedMediaType)
		return
	}

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	name := uuid.NewString() + filepath.Ext(header.Filename)
	dst, err := os.Create(filepath.Join(h.UploadDir, name))
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"file":    name,
		"type":    mediaType,
	}).Info("media uploaded")

	json.NewEncoder(w).Encode(map[string]any{
		"mediaUrl":  "/uploads/" + name,
		"mediaType": mediaType,
	})
}

func classifyMedia(contentType string) models.MediaType {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return models.MediaImage
	case strings.HasPrefix(contentType, "video/"):
		return models.MediaVideo
	case strings.HasPrefix(contentType, "audio/"):
		return models.MediaAudio
	case contentType == "application/pdf", contentType == "text/plain",
		strings.HasPrefix(contentType, "application/"):
		return models.MediaDocument
	}
	return models.MediaType("")
}
