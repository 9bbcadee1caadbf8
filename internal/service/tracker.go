package service

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	appErrors "github.com/unclebandit/campaign-builder/internal/errors"
	"github.com/unclebandit/campaign-builder/internal/model"
)

// CanonicalTarget is the generation target for the draft-wide message.
const CanonicalTarget = "canonical"

// ChannelTarget is the generation target for one channel's message.
func ChannelTarget(ch model.Channel) string {
	return "channel:" + string(ch)
}

type GenerationState string

const (
	GenerationPending   GenerationState = "pending"
	GenerationApplied   GenerationState = "applied"
	GenerationFailed    GenerationState = "failed"
	GenerationDiscarded GenerationState = "discarded"
)

type GenerationStatus struct {
	DraftID   string          `json:"draft_id"`
	Target    string          `json:"target"`
	Token     string          `json:"token"`
	State     GenerationState `json:"state"`
	Error     string          `json:"error,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// GenerationTracker allows at most one in-flight generation per draft
// target and remembers which request token is current, so a response that
// arrives after a cancel or a newer request is dropped.
type GenerationTracker struct {
	mu       sync.Mutex
	inflight map[string]string
	statuses map[string]GenerationStatus
}

func NewGenerationTracker() *GenerationTracker {
	return &GenerationTracker{
		inflight: make(map[string]string),
		statuses: make(map[string]GenerationStatus),
	}
}

func trackerKey(draftID, target string) string {
	return draftID + "/" + target
}

// Begin issues a fresh token for target or fails if one is still in flight.
func (t *GenerationTracker) Begin(draftID, target string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := trackerKey(draftID, target)
	if _, busy := t.inflight[key]; busy {
		return "", appErrors.ErrGenerationInProgress
	}
	token := uuid.NewString()
	t.inflight[key] = token
	t.statuses[key] = GenerationStatus{
		DraftID:   draftID,
		Target:    target,
		Token:     token,
		State:     GenerationPending,
		UpdatedAt: time.Now(),
	}
	return token, nil
}

// Cancel forgets the in-flight token for target. Its response, if it ever
// arrives, will be discarded.
func (t *GenerationTracker) Cancel(draftID, target string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancelLocked(trackerKey(draftID, target))
}

func (t *GenerationTracker) cancelLocked(key string) bool {
	token, ok := t.inflight[key]
	if !ok {
		return false
	}
	delete(t.inflight, key)
	st := t.statuses[key]
	if st.Token == token {
		st.State = GenerationDiscarded
		st.UpdatedAt = time.Now()
		t.statuses[key] = st
	}
	return true
}

// CancelDraft drops every in-flight request and status of a draft.
func (t *GenerationTracker) CancelDraft(draftID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	prefix := draftID + "/"
	for key := range t.inflight {
		if strings.HasPrefix(key, prefix) {
			delete(t.inflight, key)
		}
	}
	for key := range t.statuses {
		if strings.HasPrefix(key, prefix) {
			delete(t.statuses, key)
		}
	}
}

// Finish settles token. Only while token is still current for target does
// apply run, under the tracker lock, and its outcome become the recorded
// state. A stale token reports false and apply is never called.
func (t *GenerationTracker) Finish(draftID, target, token string, apply func() (GenerationState, error)) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := trackerKey(draftID, target)
	if t.inflight[key] != token {
		return false
	}
	delete(t.inflight, key)

	state, err := apply()
	st := GenerationStatus{DraftID: draftID, Target: target, Token: token, State: state, UpdatedAt: time.Now()}
	if err != nil {
		st.Error = err.Error()
	}
	t.statuses[key] = st
	return true
}

func (t *GenerationTracker) InFlight(draftID, target string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.inflight[trackerKey(draftID, target)]
	return ok
}

// Status returns the last known state of target.
func (t *GenerationTracker) Status(draftID, target string) (GenerationStatus, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	st, ok := t.statuses[trackerKey(draftID, target)]
	return st, ok
}
