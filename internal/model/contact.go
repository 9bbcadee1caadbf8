// internal/model/contact.go
package model

// Contact is a directory record. Drafts only keep the ID.
type Contact struct {
	ID         string   `db:"id" json:"id"`
	Name       string   `db:"name" json:"name"`
	Email      string   `db:"email" json:"email"`
	Phone      string   `db:"phone" json:"phone"`
	Tags       []string `db:"tags" json:"tags"`
	LastActive string   `db:"last_active" json:"last_active"`
}

// Segment is a pre-counted audience slice of the directory.
type Segment struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Count       int    `db:"count" json:"count"`
	Description string `db:"description" json:"description"`
}
