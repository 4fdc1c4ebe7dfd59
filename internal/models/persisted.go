package models

import (
	"fmt"
	"strings"
	"time"
)

var (
	_ Model = (*PersistedBook)(nil)
	_ Model = (*PersistedContact)(nil)
)

// PersistedBook is a stored address book row.
type PersistedBook struct {
	id        string
	sequence  int
	name      string
	createdAt time.Time
	updatedAt time.Time
}

// NewPersistedBook creates a book row with fresh timestamps. The id is assigned by the repository.
func NewPersistedBook(sequence int, name string) *PersistedBook {
	now := time.Now()
	return &PersistedBook{sequence: sequence, name: name, createdAt: now, updatedAt: now}
}

func (b *PersistedBook) ID() string           { return b.id }
func (b *PersistedBook) Sequence() int        { return b.sequence }
func (b *PersistedBook) Name() string         { return b.name }
func (b *PersistedBook) CreatedAt() time.Time { return b.createdAt }
func (b *PersistedBook) UpdatedAt() time.Time { return b.updatedAt }

func (b *PersistedBook) SetID(id string)          { b.id = id }
func (b *PersistedBook) SetSequence(seq int)      { b.sequence = seq }
func (b *PersistedBook) SetCreatedAt(t time.Time) { b.createdAt = t }
func (b *PersistedBook) SetUpdatedAt(t time.Time) { b.updatedAt = t }

// Validate requires an id and a non-blank name.
func (b *PersistedBook) Validate() error {
	if b.id == "" {
		return fmt.Errorf("book id is required")
	}
	if strings.TrimSpace(b.name) == "" {
		return fmt.Errorf("book name is required")
	}
	return nil
}

// PersistedContact is a stored contact row belonging to one book.
type PersistedContact struct {
	id        string
	bookID    string
	sequence  int
	contact   Contact
	createdAt time.Time
	updatedAt time.Time
}

// NewPersistedContact wraps c for storage in the book with id bookID.
func NewPersistedContact(sequence int, bookID string, c Contact) *PersistedContact {
	now := time.Now()
	return &PersistedContact{sequence: sequence, bookID: bookID, contact: c, createdAt: now, updatedAt: now}
}

func (p *PersistedContact) ID() string           { return p.id }
func (p *PersistedContact) BookID() string       { return p.bookID }
func (p *PersistedContact) Sequence() int        { return p.sequence }
func (p *PersistedContact) Contact() Contact     { return p.contact }
func (p *PersistedContact) CreatedAt() time.Time { return p.createdAt }
func (p *PersistedContact) UpdatedAt() time.Time { return p.updatedAt }

func (p *PersistedContact) SetID(id string)          { p.id = id }
func (p *PersistedContact) SetSequence(seq int)      { p.sequence = seq }
func (p *PersistedContact) SetContact(c Contact)     { p.contact = c }
func (p *PersistedContact) SetCreatedAt(t time.Time) { p.createdAt = t }
func (p *PersistedContact) SetUpdatedAt(t time.Time) { p.updatedAt = t }

// Validate requires the row and book ids.
//
// Field formats are not checked here: rows loaded from flat files may hold values that
// never passed the console rules (even an empty first name), and the store keeps them as they are.
func (p *PersistedContact) Validate() error {
	if p.id == "" {
		return fmt.Errorf("contact id is required")
	}
	if p.bookID == "" {
		return fmt.Errorf("contact book id is required")
	}
	return nil
}
