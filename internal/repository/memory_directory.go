package repository

import (
	"context"
	"strings"

	"github.com/unclebandit/campaign-builder/internal/model"
)

// MemoryDirectory is a fixed directory used when no database is configured.
type MemoryDirectory struct {
	Contacts []model.Contact
	Segments []model.Segment
}

// NewDemoDirectory returns the directory the builder demo ships with.
func NewDemoDirectory() *MemoryDirectory {
	return &MemoryDirectory{
		Contacts: []model.Contact{
			{ID: "1", Name: "John Doe", Email: "john@example.com", Phone: "+1234567890", Tags: []string{"VIP", "Premium"}, LastActive: "2024-01-15"},
			{ID: "2", Name: "Jane Smith", Email: "jane@example.com", Phone: "+1234567891", Tags: []string{"New"}, LastActive: "2024-01-14"},
			{ID: "3", Name: "Mike Johnson", Email: "mike@example.com", Phone: "+1234567892", Tags: []string{"Regular"}, LastActive: "2024-01-13"},
			{ID: "4", Name: "Sarah Wilson", Email: "sarah@example.com", Phone: "+1234567893", Tags: []string{"VIP"}, LastActive: "2024-01-12"},
			{ID: "5", Name: "David Brown", Email: "david@example.com", Phone: "+1234567894", Tags: []string{"Premium"}, LastActive: "2024-01-11"},
		},
		Segments: []model.Segment{
			{ID: "vip", Name: "VIP Customers", Count: 450, Description: "High-value customers with premium status"},
			{ID: "new", Name: "New Subscribers", Count: 1200, Description: "Recently subscribed users"},
			{ID: "inactive", Name: "Inactive Users", Count: 800, Description: "Users who haven't engaged recently"},
			{ID: "premium", Name: "Premium Members", Count: 650, Description: "Users with premium subscriptions"},
		},
	}
}

func (m *MemoryDirectory) ListContacts(_ context.Context, search string) ([]model.Contact, error) {
	term := strings.ToLower(strings.TrimSpace(search))
	out := []model.Contact{}
	for _, c := range m.Contacts {
		if term == "" ||
			strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(strings.ToLower(c.Email), term) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MemoryDirectory) GetContact(_ context.Context, id string) (*model.Contact, error) {
	for _, c := range m.Contacts {
		if c.ID == id {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (m *MemoryDirectory) ContactIDs(_ context.Context) ([]string, error) {
	ids := make([]string, 0, len(m.Contacts))
	for _, c := range m.Contacts {
		ids = append(ids, c.ID)
	}
	return ids, nil
}

func (m *MemoryDirectory) ListSegments(_ context.Context) ([]model.Segment, error) {
	out := make([]model.Segment, len(m.Segments))
	copy(out, m.Segments)
	return out, nil
}
