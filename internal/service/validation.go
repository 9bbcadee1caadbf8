package service

import (
	"fmt"
	"unicode/utf8"

	"github.com/unclebandit/campaign-builder/internal/model"
)

const (
	smsSegmentLength   = 160
	smsMultipartLength = 153
)

// IssuesFor checks msg against the limits of ch. A clean message yields an
// empty, non-nil slice.
func IssuesFor(ch model.Channel, msg model.ChannelMessage) []model.ValidationIssue {
	limits := model.LimitsFor(ch)
	issues := []model.ValidationIssue{}
	length := utf8.RuneCountInString(msg.Text)

	if length > limits.MaxTextLength {
		over := length - limits.MaxTextLength
		issues = append(issues, model.ValidationIssue{
			Channel:  ch,
			Kind:     model.IssueTextTooLong,
			Detail:   fmt.Sprintf("text exceeds %d character limit by %d", limits.MaxTextLength, over),
			Overage:  over,
			Blocking: true,
		})
	}

	if limits.MaxImages > 0 && len(msg.Images) > limits.MaxImages {
		over := len(msg.Images) - limits.MaxImages
		issues = append(issues, model.ValidationIssue{
			Channel:  ch,
			Kind:     model.IssueTooManyImages,
			Detail:   fmt.Sprintf("too many images (max %d), %d over", limits.MaxImages, over),
			Overage:  over,
			Blocking: true,
		})
	}

	if ch == model.ChannelSMS && length > smsSegmentLength {
		parts := SMSSegments(msg.Text)
		issues = append(issues, model.ValidationIssue{
			Channel:  ch,
			Kind:     model.IssueSMSSegmented,
			Detail:   fmt.Sprintf("message may be delivered as %d SMS segments", parts),
			Segments: parts,
		})
	}

	return issues
}

// SMSSegments estimates how many transport parts text needs. Multipart
// messages lose 7 characters per part to the concatenation header.
func SMSSegments(text string) int {
	n := utf8.RuneCountInString(text)
	if n <= smsSegmentLength {
		return 1
	}
	return (n + smsMultipartLength - 1) / smsMultipartLength
}

// IssuesForDraft validates every selected channel in selection order. A
// channel with an empty message falls back to the canonical message.
func IssuesForDraft(d *model.CampaignDraft) []model.ValidationIssue {
	issues := []model.ValidationIssue{}
	for _, ch := range d.Channels() {
		issues = append(issues, IssuesFor(ch, EffectiveMessage(d, ch))...)
	}
	return issues
}

// EffectiveMessage is what would go out on ch: the channel's own message
// when it has content, otherwise the canonical message.
func EffectiveMessage(d *model.CampaignDraft, ch model.Channel) model.ChannelMessage {
	m, ok := d.Messages().Get(ch)
	if ok && (m.Text != "" || len(m.Images) > 0) {
		return m
	}
	return d.Message.Clone()
}

// HasBlocking reports whether any issue is a hard limit violation. Whether
// that stops a send is the caller's policy.
func HasBlocking(issues []model.ValidationIssue) bool {
	for _, is := range issues {
		if is.Blocking {
			return true
		}
	}
	return false
}
