package service

import "github.com/unclebandit/campaign-builder/internal/model"

// ratesMicros is the price per message in millionths of the currency unit.
var ratesMicros = map[model.Channel]int64{
	model.ChannelSMS:      50_000,
	model.ChannelEmail:    1_000,
	model.ChannelWhatsApp: 20_000,
}

// RateFor returns the per-message price of ch. Channels without a rate cost nothing.
func RateFor(ch model.Channel) float64 {
	return float64(ratesMicros[ch]) / 1e6
}

// Estimate derives reach and cost from the current selection. It is
// recomputed on every call.
func Estimate(d *model.CampaignDraft) model.EstimateResult {
	channels := d.Channels()
	contacts := len(d.Contacts())

	var micros int64
	for _, ch := range channels {
		micros += ratesMicros[ch] * int64(contacts)
	}

	return model.EstimateResult{
		Reach:      contacts * len(channels),
		Cost:       float64(micros) / 1e6,
		CostMicros: micros,
	}
}

// SegmentReach sums the counts of the selected segments. Unknown ids add nothing.
func SegmentReach(segments []model.Segment, selected []string) int {
	counts := make(map[string]int, len(segments))
	for _, s := range segments {
		counts[s.ID] = s.Count
	}
	total := 0
	for _, id := range selected {
		total += counts[id]
	}
	return total
}
