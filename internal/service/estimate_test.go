package service_test

import (
	"strconv"
	"testing"

	"github.com/unclebandit/campaign-builder/internal/model"
	"github.com/unclebandit/campaign-builder/internal/service"
)

func draftWith(channels []model.Channel, contacts int) *model.CampaignDraft {
	d := model.NewCampaignDraft("d1", "Spring")
	for _, ch := range channels {
		d.AddChannel(ch)
	}
	for i := 1; i <= contacts; i++ {
		d.AddContact(strconv.Itoa(i))
	}
	return d
}

func TestEstimateSMSScenario(t *testing.T) {
	d := draftWith([]model.Channel{model.ChannelSMS}, 5)

	est := service.Estimate(d)
	if est.Reach != 5 {
		t.Errorf("expected reach 5, got %d", est.Reach)
	}
	if est.Cost != 0.25 || est.CostMicros != 250_000 {
		t.Errorf("expected cost 0.25, got %v (%d micros)", est.Cost, est.CostMicros)
	}
}

func TestEstimateReachIsContactsTimesChannels(t *testing.T) {
	all := []model.Channel{model.ChannelSMS, model.ChannelEmail, model.ChannelWhatsApp, model.ChannelRCS}
	for nch := 0; nch <= len(all); nch++ {
		for contacts := 0; contacts <= 7; contacts += 7 {
			d := draftWith(all[:nch], contacts)
			if got := service.Estimate(d).Reach; got != nch*contacts {
				t.Errorf("%d channels x %d contacts: reach %d", nch, contacts, got)
			}
		}
	}
}

func TestEstimateUnknownChannelCostsNothing(t *testing.T) {
	d := draftWith([]model.Channel{model.ChannelRCS, "pigeon", model.ChannelEmail}, 10)

	est := service.Estimate(d)
	if est.CostMicros != 10_000 {
		t.Errorf("expected only email to cost (10000 micros), got %d", est.CostMicros)
	}
	if est.Reach != 30 {
		t.Errorf("unknown channels still count toward reach, got %d", est.Reach)
	}
}

func TestEstimateIsNotCached(t *testing.T) {
	d := draftWith([]model.Channel{model.ChannelWhatsApp}, 1)
	first := service.Estimate(d)

	d.AddContact("extra")
	second := service.Estimate(d)

	if second.Reach != first.Reach+1 {
		t.Errorf("estimate did not follow the draft: %d then %d", first.Reach, second.Reach)
	}
}

func TestSegmentReach(t *testing.T) {
	segments := []model.Segment{
		{ID: "vip", Count: 450},
		{ID: "new", Count: 1200},
	}
	if got := service.SegmentReach(segments, []string{"vip", "new", "ghost"}); got != 1650 {
		t.Errorf("expected 1650, got %d", got)
	}
}
