package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/abook/internal/models"
	"github.com/desertthunder/abook/internal/shared"
)

var _ models.Repository[*models.PersistedBook] = (*BookRepository)(nil)

// BookRepository implements [models.Repository] for [models.PersistedBook] rows.
type BookRepository struct {
	db DBTX
}

// NewBookRepository creates a new [BookRepository] over db
func NewBookRepository(db DBTX) *BookRepository {
	return &BookRepository{db: db}
}

// Create inserts a new book with generated ID and sequence
func (r *BookRepository) Create(book *models.PersistedBook) error {
	sequence, err := NextSequence(r.db, "books")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	book.SetID(shared.GenerateID())
	book.SetSequence(sequence)

	if err := book.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `INSERT INTO books (id, sequence, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`

	if _, err := r.db.Exec(query, book.ID(), sequence, book.Name(), book.CreatedAt(), book.UpdatedAt()); err != nil {
		return fmt.Errorf("failed to insert book: %w", err)
	}
	return nil
}

// Get retrieves a book by ID
func (r *BookRepository) Get(id string) (*models.PersistedBook, error) {
	query := `SELECT id, sequence, name, created_at, updated_at FROM books WHERE id = ?`
	return r.scanOne(r.db.QueryRow(query, id), id)
}

// GetByName retrieves a book by its unique name
func (r *BookRepository) GetByName(name string) (*models.PersistedBook, error) {
	query := `SELECT id, sequence, name, created_at, updated_at FROM books WHERE name = ?`
	return r.scanOne(r.db.QueryRow(query, name), name)
}

// Update writes the book's sequence and timestamps back
func (r *BookRepository) Update(book *models.PersistedBook) error {
	if err := book.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	book.SetUpdatedAt(now)

	result, err := r.db.Exec(`UPDATE books SET sequence = ?, name = ?, updated_at = ? WHERE id = ?`,
		book.Sequence(), book.Name(), now, book.ID())
	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}
	return checkAffected(result, fmt.Errorf("%w: book %s", shared.ErrNotFound, book.ID()))
}

// Delete removes a book and its contacts by ID
func (r *BookRepository) Delete(id string) error {
	if _, err := r.db.Exec(`DELETE FROM contacts WHERE book_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete book contacts: %w", err)
	}

	result, err := r.db.Exec(`DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	return checkAffected(result, fmt.Errorf("%w: book %s", shared.ErrNotFound, id))
}

// List retrieves books in creation order. The only criterion is "name".
func (r *BookRepository) List(criteria map[string]any) ([]*models.PersistedBook, error) {
	query := `SELECT id, sequence, name, created_at, updated_at FROM books WHERE 1 = 1`
	args := []any{}

	if name, ok := criteria["name"].(string); ok && name != "" {
		query += " AND name = ?"
		args = append(args, name)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	var books []*models.PersistedBook
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return books, nil
}

func (r *BookRepository) scanOne(row *sql.Row, key string) (*models.PersistedBook, error) {
	book, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: book %s", shared.ErrNotFound, key)
	}
	return book, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBook(s scanner) (*models.PersistedBook, error) {
	var (
		id        string
		sequence  int
		name      string
		createdAt time.Time
		updatedAt time.Time
	)

	if err := s.Scan(&id, &sequence, &name, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan book: %w", err)
	}

	book := models.NewPersistedBook(sequence, name)
	book.SetID(id)
	book.SetCreatedAt(createdAt)
	book.SetUpdatedAt(updatedAt)
	return book, nil
}
