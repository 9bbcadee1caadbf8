package service_test

import (
	"strings"
	"testing"

	"github.com/unclebandit/campaign-builder/internal/model"
	"github.com/unclebandit/campaign-builder/internal/service"
)

func hasKind(issues []model.ValidationIssue, kind model.IssueKind) (model.ValidationIssue, bool) {
	for _, is := range issues {
		if is.Kind == kind {
			return is, true
		}
	}
	return model.ValidationIssue{}, false
}

func TestTextTooLongIffOverLimit(t *testing.T) {
	channels := []model.Channel{model.ChannelSMS, model.ChannelEmail, model.ChannelWhatsApp, model.ChannelRCS, "future"}
	for _, ch := range channels {
		limit := model.LimitsFor(ch).MaxTextLength
		for _, n := range []int{0, limit - 1, limit, limit + 1, limit + 50} {
			issues := service.IssuesFor(ch, model.ChannelMessage{Text: strings.Repeat("a", n)})
			_, got := hasKind(issues, model.IssueTextTooLong)
			if got != (n > limit) {
				t.Errorf("%s with %d chars: TextTooLong=%v, limit %d", ch, n, got, limit)
			}
		}
	}
}

func TestCleanMessageYieldsEmptySlice(t *testing.T) {
	issues := service.IssuesFor(model.ChannelEmail, model.ChannelMessage{Text: "hello"})
	if issues == nil {
		t.Fatalf("expected empty slice, got nil")
	}
	if len(issues) != 0 {
		t.Errorf("expected no issues, got %v", issues)
	}
}

func TestSMSOverLimitReportsBothSignals(t *testing.T) {
	issues := service.IssuesFor(model.ChannelSMS, model.ChannelMessage{Text: strings.Repeat("x", 170)})

	tooLong, ok := hasKind(issues, model.IssueTextTooLong)
	if !ok {
		t.Fatalf("expected TextTooLong, got %v", issues)
	}
	if tooLong.Overage != 10 || !tooLong.Blocking {
		t.Errorf("expected blocking overage 10, got %+v", tooLong)
	}

	seg, ok := hasKind(issues, model.IssueSMSSegmented)
	if !ok {
		t.Fatalf("expected segmentation advisory, got %v", issues)
	}
	if seg.Blocking {
		t.Errorf("segmentation advisory must not block")
	}
	if seg.Segments != 2 {
		t.Errorf("expected 2 segments, got %d", seg.Segments)
	}
}

func TestTooManyImages(t *testing.T) {
	images := make([]string, 12)
	issues := service.IssuesFor(model.ChannelWhatsApp, model.ChannelMessage{Text: "hi", Images: images})

	is, ok := hasKind(issues, model.IssueTooManyImages)
	if !ok {
		t.Fatalf("expected TooManyImages, got %v", issues)
	}
	if is.Overage != 2 {
		t.Errorf("expected overage 2, got %d", is.Overage)
	}
}

func TestSMSImagesAreNotCounted(t *testing.T) {
	issues := service.IssuesFor(model.ChannelSMS, model.ChannelMessage{Text: "hi", Images: []string{"a", "b"}})
	if _, ok := hasKind(issues, model.IssueTooManyImages); ok {
		t.Errorf("sms has no image support, expected no image issue: %v", issues)
	}
}

func TestTextLengthCountsCharacters(t *testing.T) {
	text := strings.Repeat("é", 160)
	issues := service.IssuesFor(model.ChannelSMS, model.ChannelMessage{Text: text})
	if len(issues) != 0 {
		t.Errorf("160 two-byte characters fit in sms, got %v", issues)
	}
}

func TestSMSSegments(t *testing.T) {
	cases := map[int]int{0: 1, 160: 1, 161: 2, 306: 2, 307: 3}
	for n, want := range cases {
		if got := service.SMSSegments(strings.Repeat("a", n)); got != want {
			t.Errorf("SMSSegments(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestIssuesForDraftFallsBackToCanonical(t *testing.T) {
	d := model.NewCampaignDraft("d1", "Spring")
	d.AddChannel(model.ChannelSMS)
	d.AddChannel(model.ChannelEmail)
	d.SetMessage(model.ChannelMessage{Text: strings.Repeat("x", 170)})
	d.Messages().SetText(model.ChannelEmail, "short")

	issues := service.IssuesForDraft(d)
	for _, is := range issues {
		if is.Channel != model.ChannelSMS {
			t.Errorf("expected only sms issues, got %+v", is)
		}
	}
	if len(issues) != 2 {
		t.Errorf("expected TextTooLong and advisory for sms, got %v", issues)
	}
	if !service.HasBlocking(issues) {
		t.Errorf("expected blocking issue")
	}
}
