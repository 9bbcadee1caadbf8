// internal/model/snapshot.go
package model

import "time"

// DraftSnapshot is a read-only copy of a draft for display and handoff.
type DraftSnapshot struct {
	ID              string                     `json:"id"`
	Name            string                     `json:"name"`
	Channels        []Channel                  `json:"channels"`
	Contacts        []string                   `json:"contacts"`
	Segments        []string                   `json:"segments"`
	Message         ChannelMessage             `json:"message"`
	ChannelMessages map[Channel]ChannelMessage `json:"channel_messages"`
	Status          Status                     `json:"status"`
	CreatedAt       time.Time                  `json:"created_at"`
	UpdatedAt       time.Time                  `json:"updated_at"`
}

func (d *CampaignDraft) Snapshot() DraftSnapshot {
	msgs := make(map[Channel]ChannelMessage, len(d.channels))
	for _, ch := range d.channels {
		if m, ok := d.store.Get(ch); ok {
			msgs[ch] = m
		}
	}
	return DraftSnapshot{
		ID:              d.ID,
		Name:            d.Name,
		Channels:        d.Channels(),
		Contacts:        d.Contacts(),
		Segments:        d.Segments(),
		Message:         d.Message.Clone(),
		ChannelMessages: msgs,
		Status:          d.Status,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}
