package service_test

import (
	"errors"
	"testing"

	appErrors "github.com/unclebandit/campaign-builder/internal/errors"
	"github.com/unclebandit/campaign-builder/internal/service"
)

func applied() (service.GenerationState, error) { return service.GenerationApplied, nil }

func TestTrackerAllowsOneInFlightPerTarget(t *testing.T) {
	tr := service.NewGenerationTracker()

	if _, err := tr.Begin("d1", service.CanonicalTarget); err != nil {
		t.Fatalf("first Begin: %v", err)
	}
	if _, err := tr.Begin("d1", service.CanonicalTarget); !errors.Is(err, appErrors.ErrGenerationInProgress) {
		t.Errorf("expected in-progress error, got %v", err)
	}
	if _, err := tr.Begin("d1", service.ChannelTarget("sms")); err != nil {
		t.Errorf("other targets must not be blocked: %v", err)
	}
	if _, err := tr.Begin("d2", service.CanonicalTarget); err != nil {
		t.Errorf("other drafts must not be blocked: %v", err)
	}
}

func TestTrackerDropsStaleToken(t *testing.T) {
	tr := service.NewGenerationTracker()

	stale, _ := tr.Begin("d1", service.CanonicalTarget)
	tr.Cancel("d1", service.CanonicalTarget)
	fresh, err := tr.Begin("d1", service.CanonicalTarget)
	if err != nil {
		t.Fatalf("Begin after cancel: %v", err)
	}

	if !tr.Finish("d1", service.CanonicalTarget, fresh, applied) {
		t.Errorf("current token should settle")
	}
	called := false
	if tr.Finish("d1", service.CanonicalTarget, stale, func() (service.GenerationState, error) {
		called = true
		return service.GenerationApplied, nil
	}) {
		t.Errorf("stale token must be rejected")
	}
	if called {
		t.Errorf("apply must not run for a stale token")
	}

	st, ok := tr.Status("d1", service.CanonicalTarget)
	if !ok || st.Token != fresh || st.State != service.GenerationApplied {
		t.Errorf("expected applied status for fresh token, got %+v", st)
	}
}

func TestTrackerCancelDraft(t *testing.T) {
	tr := service.NewGenerationTracker()
	tok, _ := tr.Begin("d1", service.CanonicalTarget)
	tr.Begin("d10", service.CanonicalTarget)

	tr.CancelDraft("d1")

	if tr.InFlight("d1", service.CanonicalTarget) {
		t.Errorf("d1 should have nothing in flight")
	}
	if !tr.InFlight("d10", service.CanonicalTarget) {
		t.Errorf("d10 must not be affected by cancelling d1")
	}
	if tr.Finish("d1", service.CanonicalTarget, tok, applied) {
		t.Errorf("result for a discarded draft must be dropped")
	}
}

func TestTrackerRecordsApplyOutcome(t *testing.T) {
	tr := service.NewGenerationTracker()
	target := service.ChannelTarget("sms")

	tok, _ := tr.Begin("d1", target)
	tr.Finish("d1", target, tok, func() (service.GenerationState, error) {
		return service.GenerationDiscarded, nil
	})
	if st, _ := tr.Status("d1", target); st.State != service.GenerationDiscarded {
		t.Errorf("expected discarded when the result could not be applied, got %s", st.State)
	}

	tok, _ = tr.Begin("d1", target)
	tr.Finish("d1", target, tok, func() (service.GenerationState, error) {
		return service.GenerationFailed, errors.New("timeout")
	})
	if st, _ := tr.Status("d1", target); st.State != service.GenerationFailed || st.Error != "timeout" {
		t.Errorf("expected failed status with error, got %+v", st)
	}
}
