package repository_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	appErrors "github.com/unclebandit/campaign-builder/internal/errors"
	"github.com/unclebandit/campaign-builder/internal/model"
	"github.com/unclebandit/campaign-builder/internal/repository"
)

func TestDraftRepositoryLifecycle(t *testing.T) {
	repo := repository.NewInMemoryDraftRepository()
	repo.Create(model.NewCampaignDraft("d1", "Spring"))

	err := repo.Update("d1", func(d *model.CampaignDraft) error {
		d.AddChannel(model.ChannelSMS)
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	var channels []model.Channel
	repo.View("d1", func(d *model.CampaignDraft) error {
		channels = d.Channels()
		return nil
	})
	if len(channels) != 1 || channels[0] != model.ChannelSMS {
		t.Errorf("update not visible, got %v", channels)
	}

	if err := repo.Delete("d1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.View("d1", func(*model.CampaignDraft) error { return nil }); !appErrors.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestUpdatePropagatesCallbackError(t *testing.T) {
	repo := repository.NewInMemoryDraftRepository()
	repo.Create(model.NewCampaignDraft("d1", ""))

	boom := errors.New("boom")
	if err := repo.Update("d1", func(*model.CampaignDraft) error { return boom }); !errors.Is(err, boom) {
		t.Errorf("expected callback error, got %v", err)
	}
}

func TestConcurrentUpdatesAreSerialised(t *testing.T) {
	repo := repository.NewInMemoryDraftRepository()
	repo.Create(model.NewCampaignDraft("d1", ""))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			repo.Update("d1", func(d *model.CampaignDraft) error {
				d.AddContact(string(rune('a' + i%26)) + string(rune('a'+i/26)))
				return nil
			})
		}(i)
	}
	wg.Wait()

	var n int
	repo.View("d1", func(d *model.CampaignDraft) error {
		n = len(d.Contacts())
		return nil
	})
	if n != 50 {
		t.Errorf("expected 50 contacts, got %d", n)
	}
}

func TestListDraftsNewestFirst(t *testing.T) {
	repo := repository.NewInMemoryDraftRepository()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		d := model.NewCampaignDraft(id, id)
		d.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		repo.Create(d)
	}
	repo.Update("b", func(d *model.CampaignDraft) error {
		return d.AdvanceStatus(model.StatusScheduled)
	})

	all, total, _ := repo.ListDrafts(0, 10, "")
	if total != 3 || all[0].ID != "c" || all[2].ID != "a" {
		t.Errorf("unexpected order %v (total %d)", all, total)
	}

	drafts, total, _ := repo.ListDrafts(0, 10, string(model.StatusDraft))
	if total != 2 || len(drafts) != 2 {
		t.Errorf("expected 2 drafts in draft status, got %d", total)
	}

	empty, total, _ := repo.ListDrafts(5, 10, "")
	if len(empty) != 0 || total != 3 {
		t.Errorf("expected empty page past the end, got %d of %d", len(empty), total)
	}
}
