// internal/model/campaign.go
package model

import (
	"time"

	appErrors "github.com/unclebandit/campaign-builder/internal/errors"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusScheduled Status = "scheduled"
	StatusSent      Status = "sent"
)

func (s Status) rank() int {
	switch s {
	case StatusDraft:
		return 0
	case StatusScheduled:
		return 1
	case StatusSent:
		return 2
	}
	return -1
}

// Stage is a step of the builder wizard.
type Stage string

const (
	StageChannels Stage = "channels"
	StageAudience Stage = "audience"
	StageMessage  Stage = "message"
	StagePreview  Stage = "preview"
)

// NextStage returns the step that follows s. Preview is terminal.
func NextStage(s Stage) Stage {
	switch s {
	case StageChannels:
		return StageAudience
	case StageAudience:
		return StageMessage
	}
	return StagePreview
}

// CampaignDraft is the aggregate edited by the builder. It owns one
// ChannelMessage per selected channel plus the canonical message used as a
// cross-channel fallback. It is not safe for concurrent use.
type CampaignDraft struct {
	ID        string
	Name      string
	Message   ChannelMessage
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time

	channels []Channel
	contacts []string
	segments []string
	store    *ChannelMessageStore
}

func NewCampaignDraft(id, name string) *CampaignDraft {
	now := time.Now()
	if name == "" {
		name = "New Campaign"
	}
	return &CampaignDraft{
		ID:        id,
		Name:      name,
		Message:   emptyMessage(),
		Status:    StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
		store:     NewChannelMessageStore(),
	}
}

func (d *CampaignDraft) touch() { d.UpdatedAt = time.Now() }

// Messages exposes the per-channel message store.
func (d *CampaignDraft) Messages() *ChannelMessageStore { return d.store }

// Channels returns the selected channels in insertion order.
func (d *CampaignDraft) Channels() []Channel {
	out := make([]Channel, len(d.channels))
	copy(out, d.channels)
	return out
}

// Contacts returns the selected contact ids in insertion order.
func (d *CampaignDraft) Contacts() []string {
	out := make([]string, len(d.contacts))
	copy(out, d.contacts)
	return out
}

// Segments returns the selected segment ids in insertion order.
func (d *CampaignDraft) Segments() []string {
	out := make([]string, len(d.segments))
	copy(out, d.segments)
	return out
}

func (d *CampaignDraft) HasChannel(ch Channel) bool {
	return indexOf(d.channels, ch) >= 0
}

// AddChannel selects ch and opens an empty message for it. Re-adding an
// already selected channel changes nothing.
func (d *CampaignDraft) AddChannel(ch Channel) {
	if d.HasChannel(ch) {
		return
	}
	d.channels = append(d.channels, ch)
	d.store.open(ch)
	d.touch()
}

// RemoveChannel deselects ch and discards its message. Adding it back later
// starts from an empty message.
func (d *CampaignDraft) RemoveChannel(ch Channel) {
	i := indexOf(d.channels, ch)
	if i < 0 {
		return
	}
	d.channels = append(d.channels[:i:i], d.channels[i+1:]...)
	d.store.drop(ch)
	d.touch()
}

func (d *CampaignDraft) AddContact(id string) {
	if indexOf(d.contacts, id) >= 0 {
		return
	}
	d.contacts = append(d.contacts, id)
	d.touch()
}

func (d *CampaignDraft) RemoveContact(id string) {
	i := indexOf(d.contacts, id)
	if i < 0 {
		return
	}
	d.contacts = append(d.contacts[:i:i], d.contacts[i+1:]...)
	d.touch()
}

// SelectAll adds every id in ids, keeping existing selections.
func (d *CampaignDraft) SelectAll(ids []string) {
	for _, id := range ids {
		d.AddContact(id)
	}
}

func (d *CampaignDraft) ClearContacts() {
	d.contacts = nil
	d.touch()
}

func (d *CampaignDraft) AddSegment(id string) {
	if indexOf(d.segments, id) >= 0 {
		return
	}
	d.segments = append(d.segments, id)
	d.touch()
}

func (d *CampaignDraft) RemoveSegment(id string) {
	i := indexOf(d.segments, id)
	if i < 0 {
		return
	}
	d.segments = append(d.segments[:i:i], d.segments[i+1:]...)
	d.touch()
}

func (d *CampaignDraft) Rename(name string) {
	d.Name = name
	d.touch()
}

// SetMessage replaces the canonical message.
func (d *CampaignDraft) SetMessage(msg ChannelMessage) {
	d.Message = msg.Clone()
	d.touch()
}

// CanAdvance reports whether the wizard may leave stage. It is evaluated
// against the current state on every call.
func (d *CampaignDraft) CanAdvance(stage Stage) bool {
	switch stage {
	case StageChannels:
		return len(d.channels) > 0
	case StageAudience:
		return len(d.contacts) > 0
	case StageMessage:
		return len(d.Message.Text) > 0
	case StagePreview:
		return true
	}
	return false
}

// ApplyGeneratedContent overwrites the canonical text and images.
func (d *CampaignDraft) ApplyGeneratedContent(content GeneratedContent) {
	d.Message.Text = content.Text
	d.Message.Images = append([]string{}, content.Images...)
	d.touch()
}

// ApplyGeneratedToChannel overwrites the text and images of one channel's
// message, leaving its subject alone.
func (d *CampaignDraft) ApplyGeneratedToChannel(ch Channel, content GeneratedContent) bool {
	m, ok := d.store.messages[ch]
	if !ok {
		return false
	}
	m.Text = content.Text
	m.Images = append([]string{}, content.Images...)
	d.touch()
	return true
}

// ApplyToAllChannels seeds every selected channel from the canonical message.
func (d *CampaignDraft) ApplyToAllChannels() {
	d.store.SeedAll(d.Message)
	d.touch()
}

// AdvanceStatus moves the draft forward through draft, scheduled, sent.
// Moving to the current status is allowed; moving back is not.
func (d *CampaignDraft) AdvanceStatus(to Status) error {
	if to.rank() < 0 {
		return appErrors.NewInvalidStatus(string(to))
	}
	if to.rank() < d.Status.rank() {
		return appErrors.ErrStatusRegression
	}
	if to != d.Status {
		d.Status = to
		d.touch()
	}
	return nil
}

// Clone returns an independent deep copy of the draft.
func (d *CampaignDraft) Clone() *CampaignDraft {
	out := *d
	out.Message = d.Message.Clone()
	out.channels = d.Channels()
	out.contacts = d.Contacts()
	out.segments = d.Segments()
	out.store = d.store.clone()
	return &out
}

func indexOf[T comparable](list []T, v T) int {
	for i, x := range list {
		if x == v {
			return i
		}
	}
	return -1
}
