package handler

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"surveyhub/internal/log"
)

const maxUploadBytes = 5 << 20

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// UploadHandler stores survey images on disk and hands back their URL. The
// catalog only ever stores that URL string.
type UploadHandler struct {
	dir string
}

// NewUploadHandler creates a new upload handler writing into dir.
func NewUploadHandler(dir string) *UploadHandler {
	return &UploadHandler{dir: dir}
}

// Upload handles POST /v1/uploads
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or malformed form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		writeError(w, http.StatusBadRequest, "only image files are allowed")
		return
	}

	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		log.Errorf("upload dir: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	name := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(h.dir, name))
	if err != nil {
		log.Errorf("upload create: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		log.Errorf("upload write: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"url": "/uploads/" + name})
}
