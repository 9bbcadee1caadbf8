package model_test

import (
	"testing"

	"github.com/unclebandit/campaign-builder/internal/model"
)

func TestLimitsFor(t *testing.T) {
	cases := []struct {
		ch   model.Channel
		want model.ChannelLimits
	}{
		{model.ChannelSMS, model.ChannelLimits{MaxTextLength: 160, MaxImages: 0}},
		{model.ChannelEmail, model.ChannelLimits{MaxTextLength: 10000, MaxImages: 10, SupportsSubject: true}},
		{model.ChannelWhatsApp, model.ChannelLimits{MaxTextLength: 4096, MaxImages: 10}},
		{model.ChannelRCS, model.ChannelLimits{MaxTextLength: 2048, MaxImages: 10}},
		{model.Channel("telegram"), model.ChannelLimits{MaxTextLength: 1000, MaxImages: 5}},
	}
	for _, c := range cases {
		if got := model.LimitsFor(c.ch); got != c.want {
			t.Errorf("LimitsFor(%s) = %+v, want %+v", c.ch, got, c.want)
		}
	}
}

func TestParseChannel(t *testing.T) {
	if got := model.ParseChannel("  WhatsApp "); got != model.ChannelWhatsApp {
		t.Errorf("expected whatsapp, got %q", got)
	}
	if model.ParseChannel("fax").Valid() {
		t.Errorf("fax should not be a catalog channel")
	}
}

func TestChannelsReturnsCopy(t *testing.T) {
	list := model.Channels()
	if len(list) != 4 {
		t.Fatalf("expected 4 channels, got %d", len(list))
	}
	list[0].Limits.MaxTextLength = 1
	if model.LimitsFor(model.ChannelSMS).MaxTextLength != 160 {
		t.Errorf("catalog mutated through Channels()")
	}
}
