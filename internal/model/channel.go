// internal/model/channel.go
package model

import "strings"

// Channel identifies a delivery medium.
type Channel string

const (
	ChannelSMS      Channel = "sms"
	ChannelEmail    Channel = "email"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelRCS      Channel = "rcs"
)

// ChannelLimits are the content constraints of a channel.
type ChannelLimits struct {
	MaxTextLength   int  `json:"max_text_length"`
	MaxImages       int  `json:"max_images"`
	SupportsSubject bool `json:"supports_subject"`
}

// DefaultLimits applies to channels missing from the catalog.
var DefaultLimits = ChannelLimits{MaxTextLength: 1000, MaxImages: 5}

// ChannelInfo is the display entry of a catalog channel.
type ChannelInfo struct {
	ID          Channel       `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Limits      ChannelLimits `json:"limits"`
}

var catalog = []ChannelInfo{
	{
		ID:          ChannelSMS,
		Name:        "SMS",
		Description: "Reach customers instantly with text messages",
		Limits:      ChannelLimits{MaxTextLength: 160, MaxImages: 0},
	},
	{
		ID:          ChannelEmail,
		Name:        "Email",
		Description: "Rich content with images and formatting",
		Limits:      ChannelLimits{MaxTextLength: 10000, MaxImages: 10, SupportsSubject: true},
	},
	{
		ID:          ChannelWhatsApp,
		Name:        "WhatsApp",
		Description: "Personal messaging on popular platform",
		Limits:      ChannelLimits{MaxTextLength: 4096, MaxImages: 10},
	},
	{
		ID:          ChannelRCS,
		Name:        "RCS",
		Description: "Rich cards and suggested actions in the native messaging app",
		Limits:      ChannelLimits{MaxTextLength: 2048, MaxImages: 10},
	},
}

// LimitsFor looks up the limits of a channel. Unknown channels get
// DefaultLimits instead of an error so a new channel never blocks the flow.
func LimitsFor(ch Channel) ChannelLimits {
	for _, info := range catalog {
		if info.ID == ch {
			return info.Limits
		}
	}
	return DefaultLimits
}

// Channels returns the catalog in display order.
func Channels() []ChannelInfo {
	out := make([]ChannelInfo, len(catalog))
	copy(out, catalog)
	return out
}

// Valid reports whether ch is part of the catalog.
func (ch Channel) Valid() bool {
	for _, info := range catalog {
		if info.ID == ch {
			return true
		}
	}
	return false
}

// ParseChannel normalizes user input into a Channel. The result may be
// outside the catalog; callers decide whether that matters.
func ParseChannel(s string) Channel {
	return Channel(strings.ToLower(strings.TrimSpace(s)))
}
