package upload

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// maxImageSize caps uploads at 5 MiB.
const maxImageSize = 5 << 20

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Handler stores admin-uploaded product images on disk under uuid names
// and returns the public URL they are served from.
type Handler struct {
	dir     string
	urlBase string
}

// NewHandler creates the upload directory if needed.
func NewHandler(dir, urlBase string) (*Handler, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Handler{dir: dir, urlBase: strings.TrimSuffix(urlBase, "/")}, nil
}

func (h *Handler) RegisterRoutes(r *chi.Mux, adminOnly func(http.Handler) http.Handler) {
	r.With(adminOnly).Post("/api/v1/upload/image", h.uploadImage)

	// Serve stored images back to the storefront.
	r.Handle(h.urlBase+"/*", http.StripPrefix(h.urlBase+"/", http.FileServer(http.Dir(h.dir))))
}

func (h *Handler) uploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)
	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		http.Error(w, fmt.Sprintf("unsupported image type %q", ext), http.StatusBadRequest)
		return
	}

	name := uuid.NewString() + ext
	dst, err := os.OpenFile(filepath.Join(h.dir, name), os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(dst.Name())
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"url": h.urlBase + "/" + name})
}
