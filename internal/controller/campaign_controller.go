// internal/controller/campaign_controller.go
package controller

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/campaign-builder/internal/api/respond"
	"github.com/unclebandit/campaign-builder/internal/model"
	"github.com/unclebandit/campaign-builder/internal/service"
)

// CampaignController serves the draft editing endpoints.
type CampaignController struct {
	DraftService *service.DraftService
}

// Routes mounts the draft endpoints on r.
func (c *CampaignController) Routes(r chi.Router) {
	r.Post("/drafts", c.CreateDraft)
	r.Get("/drafts", c.ListDrafts)
	r.Get("/drafts/{id}", c.GetDraft)
	r.Patch("/drafts/{id}", c.RenameDraft)
	r.Delete("/drafts/{id}", c.DiscardDraft)

	r.Post("/drafts/{id}/channels", c.AddChannel)
	r.Delete("/drafts/{id}/channels/{channel}", c.RemoveChannel)
	r.Put("/drafts/{id}/channels/{channel}/text", c.SetChannelText)
	r.Put("/drafts/{id}/channels/{channel}/subject", c.SetChannelSubject)
	r.Post("/drafts/{id}/channels/{channel}/images", c.AddChannelImage)
	r.Delete("/drafts/{id}/channels/{channel}/images/{index}", c.RemoveChannelImage)

	r.Post("/drafts/{id}/contacts", c.AddContact)
	r.Post("/drafts/{id}/contacts/select-all", c.SelectAllContacts)
	r.Delete("/drafts/{id}/contacts", c.ClearContacts)
	r.Delete("/drafts/{id}/contacts/{contactID}", c.RemoveContact)

	r.Post("/drafts/{id}/segments", c.AddSegment)
	r.Delete("/drafts/{id}/segments/{segmentID}", c.RemoveSegment)

	r.Put("/drafts/{id}/message", c.SetMessage)
	r.Post("/drafts/{id}/apply-to-all", c.ApplyToAllChannels)

	r.Get("/drafts/{id}/stages/{stage}", c.CanAdvance)
	r.Get("/drafts/{id}/issues", c.Issues)
	r.Get("/drafts/{id}/estimate", c.Estimate)
	r.Post("/drafts/{id}/submit", c.Submit)
}

func draftID(r *http.Request) string { return chi.URLParam(r, "id") }

func channelParam(r *http.Request) model.Channel {
	return model.ParseChannel(chi.URLParam(r, "channel"))
}

func (c *CampaignController) reply(w http.ResponseWriter, snap model.DraftSnapshot, err error) {
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, snap)
}

func (c *CampaignController) CreateDraft(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if !respond.DecodeOptional(w, r, &body) {
		return
	}

	snap, err := c.DraftService.CreateDraft(body.Name)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, snap)
}

func (c *CampaignController) ListDrafts(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	status := r.URL.Query().Get("status")

	drafts, pagination, err := c.DraftService.ListDrafts(page, pageSize, status)
	if err != nil {
		respond.Err(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"data":       drafts,
		"pagination": pagination,
	})
}

func (c *CampaignController) GetDraft(w http.ResponseWriter, r *http.Request) {
	snap, err := c.DraftService.GetDraft(draftID(r))
	c.reply(w, snap, err)
}

func (c *CampaignController) RenameDraft(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if !respond.Decode(w, r, &body) {
		return
	}
	snap, err := c.DraftService.Rename(draftID(r), body.Name)
	c.reply(w, snap, err)
}

func (c *CampaignController) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	if err := c.DraftService.DiscardDraft(draftID(r)); err != nil {
		respond.Err(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *CampaignController) AddChannel(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Channel string `json:"channel"`
	}
	if !respond.Decode(w, r, &body) {
		return
	}
	snap, err := c.DraftService.AddChannel(draftID(r), model.ParseChannel(body.Channel))
	c.reply(w, snap, err)
}

func (c *CampaignController) RemoveChannel(w http.ResponseWriter, r *http.Request) {
	snap, err := c.DraftService.RemoveChannel(draftID(r), channelParam(r))
	c.reply(w, snap, err)
}

func (c *CampaignController) SetChannelText(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if !respond.Decode(w, r, &body) {
		return
	}
	snap, err := c.DraftService.SetChannelText(draftID(r), channelParam(r), body.Text)
	c.reply(w, snap, err)
}

func (c *CampaignController) SetChannelSubject(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Subject string `json:"subject"`
	}
	if !respond.Decode(w, r, &body) {
		return
	}
	snap, err := c.DraftService.SetChannelSubject(draftID(r), channelParam(r), body.Subject)
	c.reply(w, snap, err)
}

// AddChannelImage accepts an optional {"ref": "..."}; without one a
// placeholder image is added.
func (c *CampaignController) AddChannelImage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Ref string `json:"ref"`
	}
	if !respond.DecodeOptional(w, r, &body) {
		return
	}
	snap, err := c.DraftService.AddChannelImage(draftID(r), channelParam(r), body.Ref)
	c.reply(w, snap, err)
}

func (c *CampaignController) RemoveChannelImage(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid image index")
		return
	}
	snap, err := c.DraftService.RemoveChannelImage(draftID(r), channelParam(r), index)
	c.reply(w, snap, err)
}

func (c *CampaignController) AddContact(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ContactID string `json:"contact_id"`
	}
	if !respond.Decode(w, r, &body) {
		return
	}
	if body.ContactID == "" {
		respond.Error(w, http.StatusBadRequest, "contact_id is required")
		return
	}
	snap, err := c.DraftService.AddContact(draftID(r), body.ContactID)
	c.reply(w, snap, err)
}

func (c *CampaignController) RemoveContact(w http.ResponseWriter, r *http.Request) {
	snap, err := c.DraftService.RemoveContact(draftID(r), chi.URLParam(r, "contactID"))
	c.reply(w, snap, err)
}

// SelectAllContacts selects the given ids, or the whole directory.
func (c *CampaignController) SelectAllContacts(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ContactIDs []string `json:"contact_ids"`
	}
	if !respond.DecodeOptional(w, r, &body) {
		return
	}
	snap, err := c.DraftService.SelectAllContacts(r.Context(), draftID(r), body.ContactIDs)
	c.reply(w, snap, err)
}

func (c *CampaignController) ClearContacts(w http.ResponseWriter, r *http.Request) {
	snap, err := c.DraftService.ClearContacts(draftID(r))
	c.reply(w, snap, err)
}

func (c *CampaignController) AddSegment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SegmentID string `json:"segment_id"`
	}
	if !respond.Decode(w, r, &body) {
		return
	}
	if body.SegmentID == "" {
		respond.Error(w, http.StatusBadRequest, "segment_id is required")
		return
	}
	snap, err := c.DraftService.AddSegment(draftID(r), body.SegmentID)
	c.reply(w, snap, err)
}

func (c *CampaignController) RemoveSegment(w http.ResponseWriter, r *http.Request) {
	snap, err := c.DraftService.RemoveSegment(draftID(r), chi.URLParam(r, "segmentID"))
	c.reply(w, snap, err)
}

func (c *CampaignController) SetMessage(w http.ResponseWriter, r *http.Request) {
	var body model.ChannelMessage
	if !respond.Decode(w, r, &body) {
		return
	}
	snap, err := c.DraftService.SetMessage(draftID(r), body)
	c.reply(w, snap, err)
}

func (c *CampaignController) ApplyToAllChannels(w http.ResponseWriter, r *http.Request) {
	snap, err := c.DraftService.ApplyToAllChannels(draftID(r))
	c.reply(w, snap, err)
}

func (c *CampaignController) CanAdvance(w http.ResponseWriter, r *http.Request) {
	stage := model.Stage(chi.URLParam(r, "stage"))
	ok, err := c.DraftService.CanAdvance(draftID(r), stage)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"stage":       stage,
		"can_advance": ok,
		"next":        model.NextStage(stage),
	})
}

func (c *CampaignController) Issues(w http.ResponseWriter, r *http.Request) {
	issues, err := c.DraftService.Issues(draftID(r))
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"issues":   issues,
		"blocking": service.HasBlocking(issues),
	})
}

func (c *CampaignController) Estimate(w http.ResponseWriter, r *http.Request) {
	est, err := c.DraftService.Estimate(r.Context(), draftID(r))
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, est)
}

func (c *CampaignController) Submit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SendNow bool `json:"send_now"`
	}
	if !respond.DecodeOptional(w, r, &body) {
		return
	}
	snap, err := c.DraftService.Submit(draftID(r), body.SendNow)
	c.reply(w, snap, err)
}
