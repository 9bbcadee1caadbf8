package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/lib/pq"

	"github.com/unclebandit/campaign-builder/internal/model"
)

// ContactDirectory is the external source of contacts and segments. The
// builder only keeps contact ids and reads segment counts.
type ContactDirectory interface {
	ListContacts(ctx context.Context, search string) ([]model.Contact, error)
	GetContact(ctx context.Context, id string) (*model.Contact, error)
	ContactIDs(ctx context.Context) ([]string, error)
	ListSegments(ctx context.Context) ([]model.Segment, error)
}

// ContactRepository reads the directory from Postgres.
type ContactRepository struct {
	DB *sql.DB
}

// ListContacts fetches contacts whose name or email contains search,
// case-insensitively. An empty search returns everyone.
func (r *ContactRepository) ListContacts(ctx context.Context, search string) ([]model.Contact, error) {
	query := `
        SELECT id, name, email, phone, tags, last_active
        FROM contacts
        WHERE $1 = '' OR name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%'
        ORDER BY id
    `
	rows, err := r.DB.QueryContext(ctx, query, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []model.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *c)
	}
	return contacts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (*model.Contact, error) {
	var c model.Contact
	var tags pq.StringArray
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &tags, &c.LastActive); err != nil {
		return nil, err
	}
	c.Tags = []string(tags)
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return &c, nil
}

// GetContact returns nil, nil when the id is unknown.
func (r *ContactRepository) GetContact(ctx context.Context, id string) (*model.Contact, error) {
	query := `
        SELECT id, name, email, phone, tags, last_active
        FROM contacts
        WHERE id = $1
    `
	c, err := scanContact(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *ContactRepository) ContactIDs(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id FROM contacts ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *ContactRepository) ListSegments(ctx context.Context) ([]model.Segment, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, count, description FROM segments ORDER BY position, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	segments := []model.Segment{}
	for rows.Next() {
		var s model.Segment
		if err := rows.Scan(&s.ID, &s.Name, &s.Count, &s.Description); err != nil {
			return nil, err
		}
		segments = append(segments, s)
	}
	return segments, rows.Err()
}
