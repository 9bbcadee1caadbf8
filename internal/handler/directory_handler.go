// internal/handler/directory_handler.go
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/campaign-builder/internal/api/respond"
	"github.com/unclebandit/campaign-builder/internal/model"
	"github.com/unclebandit/campaign-builder/internal/repository"
)

// DirectoryHandler exposes the channel catalog and the contact directory.
type DirectoryHandler struct {
	Directory repository.ContactDirectory
}

func (h *DirectoryHandler) Routes(r chi.Router) {
	r.Get("/channels", h.ListChannels)
	r.Get("/contacts", h.ListContacts)
	r.Get("/segments", h.ListSegments)
	r.Get("/health", h.Health)
}

func (h *DirectoryHandler) ListChannels(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]any{"data": model.Channels()})
}

// ListContacts filters by ?search= against name and email.
func (h *DirectoryHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.Directory.ListContacts(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to fetch contacts: "+err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"data": contacts})
}

func (h *DirectoryHandler) ListSegments(w http.ResponseWriter, r *http.Request) {
	segments, err := h.Directory.ListSegments(r.Context())
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to fetch segments: "+err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"data": segments})
}

func (h *DirectoryHandler) Health(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
