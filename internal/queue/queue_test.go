package queue_test

import (
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/unclebandit/campaign-builder/internal/model"
	"github.com/unclebandit/campaign-builder/internal/queue"
)

func TestPublishWithoutSubscribers(t *testing.T) {
	q := queue.NewInMemoryQueue(zerolog.Nop())
	if err := q.Publish("nobody", "x"); err == nil {
		t.Errorf("expected error when no one is listening")
	}
}

func TestRetriesUntilSuccess(t *testing.T) {
	q := queue.NewInMemoryQueue(zerolog.Nop())
	q.Backoff = time.Millisecond

	var calls int32
	q.Subscribe("jobs", func(payload any) error {
		if atomic.AddInt32(&calls, 1) < 3 {
			return errors.New("transient")
		}
		return nil
	})

	q.Publish("jobs", 1)
	q.Wait()

	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("expected 3 attempts, got %d", got)
	}
}

func TestGivesUpAfterMaxRetries(t *testing.T) {
	q := queue.NewInMemoryQueue(zerolog.Nop())
	q.Backoff = time.Millisecond
	q.MaxRetries = 2

	var calls int32
	q.Subscribe("jobs", func(payload any) error {
		atomic.AddInt32(&calls, 1)
		return errors.New("permanent")
	})

	q.Publish("jobs", 1)
	q.Wait()

	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("expected 1 attempt plus 2 retries, got %d", got)
	}
}

func TestDecodeHandoff(t *testing.T) {
	ev := model.HandoffEvent{
		Meta: model.HandoffMeta{ID: "ev-1", Type: "campaign.draft.submitted.v1"},
		Data: model.DraftSnapshot{ID: "d1", Status: model.StatusScheduled},
	}

	if got, err := queue.DecodeHandoff(ev); err != nil || got.Data.ID != "d1" {
		t.Errorf("value payload: %v %v", got, err)
	}
	if got, err := queue.DecodeHandoff(&ev); err != nil || got.Meta.ID != "ev-1" {
		t.Errorf("pointer payload: %v %v", got, err)
	}

	body, _ := json.Marshal(ev)
	got, err := queue.DecodeHandoff(body)
	if err != nil || got.Data.Status != model.StatusScheduled {
		t.Errorf("json payload: %v %v", got, err)
	}

	if _, err := queue.DecodeHandoff([]byte("{")); err == nil {
		t.Errorf("expected error for malformed json")
	}
	if _, err := queue.DecodeHandoff(42); err == nil {
		t.Errorf("expected error for unexpected type")
	}
}

func TestHandoffSubscriberDropsMalformedPayloads(t *testing.T) {
	q := queue.NewInMemoryQueue(zerolog.Nop())
	q.Backoff = time.Millisecond

	var processed int32
	queue.StartHandoffSubscriber(q, zerolog.Nop(), func(model.HandoffEvent) error {
		atomic.AddInt32(&processed, 1)
		return nil
	})

	q.Publish(queue.HandoffTopic, "garbage")
	q.Publish(queue.HandoffTopic, model.HandoffEvent{Data: model.DraftSnapshot{ID: "d1"}})
	q.Wait()

	if got := atomic.LoadInt32(&processed); got != 1 {
		t.Errorf("expected exactly one processed handoff, got %d", got)
	}
}
