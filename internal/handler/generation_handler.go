// internal/handler/generation_handler.go
package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/campaign-builder/internal/api/respond"
	"github.com/unclebandit/campaign-builder/internal/model"
	"github.com/unclebandit/campaign-builder/internal/service"
)

// GenerationHandler serves content generation for a draft.
type GenerationHandler struct {
	Service *service.DraftService
}

func (h *GenerationHandler) Routes(r chi.Router) {
	r.Get("/generation/options", h.Options)
	r.Post("/drafts/{id}/generations", h.StartGeneration)
	r.Get("/drafts/{id}/generations/{target}", h.GetGeneration)
	r.Delete("/drafts/{id}/generations/{target}", h.CancelGeneration)
	r.Post("/drafts/{id}/channels/{channel}/improve", h.ImproveChannel)
}

// targetParam turns a path segment into a tracker target: "canonical" or a
// channel name.
func targetParam(p string) string {
	if p == "" || p == service.CanonicalTarget {
		return service.CanonicalTarget
	}
	return service.ChannelTarget(model.ParseChannel(p))
}

func (h *GenerationHandler) Options(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]any{
		"campaign_types": model.CampaignTypes,
		"tones":          model.Tones,
	})
}

// StartGeneration begins generating content for the canonical message or,
// when "channel" is given, for that channel. With "wait" it blocks and
// returns the content; otherwise it answers 202 with the pending status.
func (h *GenerationHandler) StartGeneration(w http.ResponseWriter, r *http.Request) {
	var body struct {
		model.GenerationRequest
		Channel string `json:"channel"`
		Wait    bool   `json:"wait"`
	}
	if !respond.Decode(w, r, &body) {
		return
	}
	if strings.TrimSpace(body.Prompt) == "" {
		respond.Error(w, http.StatusBadRequest, "prompt is required")
		return
	}

	id := chi.URLParam(r, "id")
	target := service.CanonicalTarget
	if body.Channel != "" {
		target = service.ChannelTarget(model.ParseChannel(body.Channel))
	}

	if body.Wait {
		content, err := h.Service.Generate(r.Context(), id, target, body.GenerationRequest)
		if err != nil {
			respond.Err(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, content)
		return
	}

	st, err := h.Service.StartGeneration(id, target, body.GenerationRequest)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusAccepted, st)
}

func (h *GenerationHandler) GetGeneration(w http.ResponseWriter, r *http.Request) {
	st, ok, err := h.Service.GenerationStatus(chi.URLParam(r, "id"), targetParam(chi.URLParam(r, "target")))
	if err != nil {
		respond.Err(w, err)
		return
	}
	if !ok {
		respond.Error(w, http.StatusNotFound, "no generation for this target")
		return
	}
	respond.JSON(w, http.StatusOK, st)
}

// CancelGeneration is called when the generator surface is closed; a result
// arriving later is dropped.
func (h *GenerationHandler) CancelGeneration(w http.ResponseWriter, r *http.Request) {
	cancelled, err := h.Service.CancelGeneration(chi.URLParam(r, "id"), targetParam(chi.URLParam(r, "target")))
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]bool{"cancelled": cancelled})
}

func (h *GenerationHandler) ImproveChannel(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Service.ImproveChannel(chi.URLParam(r, "id"), model.ParseChannel(chi.URLParam(r, "channel")))
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, snap)
}
