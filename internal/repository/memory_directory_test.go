package repository_test

import (
	"context"
	"testing"

	"github.com/unclebandit/campaign-builder/internal/repository"
)

func TestDemoDirectorySearch(t *testing.T) {
	dir := repository.NewDemoDirectory()
	ctx := context.Background()

	all, _ := dir.ListContacts(ctx, "")
	if len(all) != 5 {
		t.Fatalf("expected 5 contacts, got %d", len(all))
	}

	byName, _ := dir.ListContacts(ctx, "JANE")
	if len(byName) != 1 || byName[0].ID != "2" {
		t.Errorf("expected Jane by case-insensitive name, got %v", byName)
	}

	byEmail, _ := dir.ListContacts(ctx, "david@")
	if len(byEmail) != 1 || byEmail[0].ID != "5" {
		t.Errorf("expected David by email, got %v", byEmail)
	}

	none, _ := dir.ListContacts(ctx, "nobody")
	if none == nil || len(none) != 0 {
		t.Errorf("expected empty non-nil result, got %v", none)
	}
}

func TestDemoDirectoryLookup(t *testing.T) {
	dir := repository.NewDemoDirectory()
	ctx := context.Background()

	c, err := dir.GetContact(ctx, "4")
	if err != nil || c == nil || c.Name != "Sarah Wilson" {
		t.Errorf("unexpected contact %v, %v", c, err)
	}
	c, err = dir.GetContact(ctx, "42")
	if err != nil || c != nil {
		t.Errorf("unknown id should yield nil, nil; got %v, %v", c, err)
	}

	ids, _ := dir.ContactIDs(ctx)
	if len(ids) != 5 || ids[0] != "1" {
		t.Errorf("unexpected ids %v", ids)
	}

	segs, _ := dir.ListSegments(ctx)
	segs[0].Count = 0
	again, _ := dir.ListSegments(ctx)
	if again[0].Count != 450 {
		t.Errorf("ListSegments must return a copy")
	}
}
