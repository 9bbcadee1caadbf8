// internal/model/generation.go
package model

// GenerationRequest is what the builder asks the content generator for.
type GenerationRequest struct {
	Prompt        string `json:"prompt"`
	BusinessName  string `json:"business_name,omitempty"`
	CampaignType  string `json:"campaign_type,omitempty"`
	Tone          string `json:"tone,omitempty"`
	IncludeImages bool   `json:"include_images"`
}

type GeneratedContent struct {
	Text   string   `json:"text"`
	Images []string `json:"images"`
}

// CampaignTypes and Tones are the choices offered by the generator form.
var CampaignTypes = []string{
	"Product Launch",
	"Promotional Sale",
	"Event Announcement",
	"Newsletter",
	"Customer Welcome",
	"Abandoned Cart",
	"Survey Request",
	"Holiday Greeting",
	"Service Update",
	"Educational Content",
}

var Tones = []string{
	"Professional",
	"Friendly",
	"Excited",
	"Urgent",
	"Casual",
	"Formal",
	"Playful",
	"Reassuring",
}
