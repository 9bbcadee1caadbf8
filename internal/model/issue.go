// internal/model/issue.go
package model

type IssueKind string

const (
	IssueTextTooLong   IssueKind = "text_too_long"
	IssueTooManyImages IssueKind = "too_many_images"
	// IssueSMSSegmented is advisory: the text still sends, split into parts.
	IssueSMSSegmented IssueKind = "sms_segmented"
)

// ValidationIssue is derived from a message on every read and never stored.
type ValidationIssue struct {
	Channel  Channel   `json:"channel"`
	Kind     IssueKind `json:"kind"`
	Detail   string    `json:"detail"`
	Overage  int       `json:"overage,omitempty"`
	Segments int       `json:"segments,omitempty"`
	Blocking bool      `json:"blocking"`
}

// EstimateResult is derived from a draft on every read and never stored.
type EstimateResult struct {
	Reach      int     `json:"reach"`
	Cost       float64 `json:"cost"`
	CostMicros int64   `json:"cost_micros"`
}
