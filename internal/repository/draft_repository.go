package repository

import (
	"sort"
	"sync"

	appErrors "github.com/unclebandit/campaign-builder/internal/errors"
	"github.com/unclebandit/campaign-builder/internal/model"
)

// DraftRepositoryInterface holds editing sessions. Drafts live only as long
// as the process; nothing here is persisted.
type DraftRepositoryInterface interface {
	Create(d *model.CampaignDraft) error
	// View runs fn with the draft locked for reading. fn must not keep d.
	View(id string, fn func(d *model.CampaignDraft) error) error
	// Update runs fn with the draft locked for writing. fn must not keep d.
	Update(id string, fn func(d *model.CampaignDraft) error) error
	Delete(id string) error
	ListDrafts(offset, limit int, status string) ([]model.DraftSnapshot, int, error)
}

type session struct {
	mu    sync.RWMutex
	draft *model.CampaignDraft
}

// InMemoryDraftRepository keeps one mutex per draft so edits to different
// drafts never wait on each other.
type InMemoryDraftRepository struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func NewInMemoryDraftRepository() *InMemoryDraftRepository {
	return &InMemoryDraftRepository{sessions: make(map[string]*session)}
}

func (r *InMemoryDraftRepository) Create(d *model.CampaignDraft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[d.ID] = &session{draft: d}
	return nil
}

func (r *InMemoryDraftRepository) get(id string) (*session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, appErrors.NewDraftNotFound(id)
	}
	return s, nil
}

func (r *InMemoryDraftRepository) View(id string, fn func(d *model.CampaignDraft) error) error {
	s, err := r.get(id)
	if err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.draft)
}

func (r *InMemoryDraftRepository) Update(id string, fn func(d *model.CampaignDraft) error) error {
	s, err := r.get(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.draft)
}

func (r *InMemoryDraftRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return appErrors.NewDraftNotFound(id)
	}
	delete(r.sessions, id)
	return nil
}

// ListDrafts returns snapshots newest first, optionally filtered by status,
// along with the total number of matches.
func (r *InMemoryDraftRepository) ListDrafts(offset, limit int, status string) ([]model.DraftSnapshot, int, error) {
	r.mu.RLock()
	all := make([]*session, 0, len(r.sessions))
	for _, s := range r.sessions {
		all = append(all, s)
	}
	r.mu.RUnlock()

	snaps := make([]model.DraftSnapshot, 0, len(all))
	for _, s := range all {
		s.mu.RLock()
		snap := s.draft.Snapshot()
		s.mu.RUnlock()
		if status != "" && string(snap.Status) != status {
			continue
		}
		snaps = append(snaps, snap)
	}

	sort.Slice(snaps, func(i, j int) bool {
		if snaps[i].CreatedAt.Equal(snaps[j].CreatedAt) {
			return snaps[i].ID > snaps[j].ID
		}
		return snaps[i].CreatedAt.After(snaps[j].CreatedAt)
	})

	total := len(snaps)
	if offset >= total {
		return []model.DraftSnapshot{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return snaps[offset:end], total, nil
}
