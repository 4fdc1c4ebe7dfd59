package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/abook/internal/models"
	"github.com/desertthunder/abook/internal/shared"
)

var _ models.Repository[*models.PersistedContact] = (*ContactRepository)(nil)

const contactColumns = `id, book_id, sequence, first_name, last_name, address, city, state, zip_code,
		phone_number, email, created_at, updated_at`

// ContactRepository implements [models.Repository] for [models.PersistedContact] rows.
type ContactRepository struct {
	db DBTX
}

// NewContactRepository creates a new [ContactRepository] over db
func NewContactRepository(db DBTX) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create inserts a new contact with generated ID and sequence
func (r *ContactRepository) Create(pc *models.PersistedContact) error {
	sequence, err := NextSequence(r.db, "contacts")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	pc.SetID(shared.GenerateID())
	pc.SetSequence(sequence)

	if err := pc.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `INSERT INTO contacts (` + contactColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	c := pc.Contact()
	_, err = r.db.Exec(query,
		pc.ID(), pc.BookID(), sequence,
		c.FirstName, c.LastName, c.Address, c.City, c.State, c.ZipCode, c.PhoneNumber, c.Email,
		pc.CreatedAt(), pc.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert contact: %w", err)
	}
	return nil
}

// Get retrieves a contact by ID
func (r *ContactRepository) Get(id string) (*models.PersistedContact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = ?`

	pc, err := scanContact(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: contact %s", shared.ErrNotFound, id)
	}
	return pc, err
}

// Update writes every contact field and the sequence back
func (r *ContactRepository) Update(pc *models.PersistedContact) error {
	if err := pc.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	pc.SetUpdatedAt(now)

	query := `
		UPDATE contacts
		SET sequence = ?, first_name = ?, last_name = ?, address = ?, city = ?, state = ?,
			zip_code = ?, phone_number = ?, email = ?, updated_at = ?
		WHERE id = ?
	`

	c := pc.Contact()
	result, err := r.db.Exec(query,
		pc.Sequence(), c.FirstName, c.LastName, c.Address, c.City, c.State, c.ZipCode, c.PhoneNumber, c.Email,
		now, pc.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}
	return checkAffected(result, fmt.Errorf("%w: contact %s", shared.ErrNotFound, pc.ID()))
}

// Delete removes a contact by ID
func (r *ContactRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	return checkAffected(result, fmt.Errorf("%w: contact %s", shared.ErrNotFound, id))
}

// List retrieves contacts in insertion order, optionally narrowed by "book_id" and "first_name".
func (r *ContactRepository) List(criteria map[string]any) ([]*models.PersistedContact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE 1 = 1`
	args := []any{}

	if bookID, ok := criteria["book_id"].(string); ok && bookID != "" {
		query += " AND book_id = ?"
		args = append(args, bookID)
	}

	if firstName, ok := criteria["first_name"].(string); ok {
		query += " AND first_name = ?"
		args = append(args, firstName)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*models.PersistedContact
	for rows.Next() {
		pc, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return contacts, nil
}

func scanContact(s scanner) (*models.PersistedContact, error) {
	var (
		id        string
		bookID    string
		sequence  int
		c         models.Contact
		createdAt time.Time
		updatedAt time.Time
	)

	err := s.Scan(
		&id, &bookID, &sequence,
		&c.FirstName, &c.LastName, &c.Address, &c.City, &c.State, &c.ZipCode, &c.PhoneNumber, &c.Email,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan contact: %w", err)
	}

	pc := models.NewPersistedContact(sequence, bookID, c)
	pc.SetID(id)
	pc.SetCreatedAt(createdAt)
	pc.SetUpdatedAt(updatedAt)
	return pc, nil
}
