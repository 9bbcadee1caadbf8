package queue

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/unclebandit/campaign-builder/internal/model"
)

// DecodeHandoff accepts either an in-process event or a raw JSON body.
func DecodeHandoff(payload any) (model.HandoffEvent, error) {
	switch p := payload.(type) {
	case model.HandoffEvent:
		return p, nil
	case *model.HandoffEvent:
		return *p, nil
	case []byte:
		var ev model.HandoffEvent
		if err := json.Unmarshal(p, &ev); err != nil {
			return model.HandoffEvent{}, fmt.Errorf("decode handoff: %w", err)
		}
		return ev, nil
	}
	return model.HandoffEvent{}, fmt.Errorf("unexpected handoff payload %T", payload)
}

// StartHandoffSubscriber feeds every handoff published on q to process.
// Malformed payloads are logged and dropped rather than retried.
func StartHandoffSubscriber(q Queue, log zerolog.Logger, process func(model.HandoffEvent) error) error {
	return q.Subscribe(HandoffTopic, func(payload any) error {
		ev, err := DecodeHandoff(payload)
		if err != nil {
			log.Error().Err(err).Msg("dropping malformed handoff")
			return nil
		}
		log.Info().Str("draft_id", ev.Data.ID).Str("event_id", ev.Meta.ID).Msg("processing handoff")
		return process(ev)
	})
}
