package repositories

import (
	"database/sql"
	"fmt"

	"github.com/desertthunder/abook/internal/addressbook"
	"github.com/desertthunder/abook/internal/models"
)

// Store loads and saves a whole [addressbook.Manager].
type Store struct {
	db *sql.DB
}

// NewStore creates a [Store] over an opened and migrated database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Load rebuilds the manager from the database, books in creation order and contacts in insertion order.
//
// The returned manager has an empty journal.
func (s *Store) Load() (*addressbook.Manager, error) {
	m := addressbook.NewManager()

	rows, err := NewBookRepository(s.db).List(nil)
	if err != nil {
		return nil, err
	}

	contacts := NewContactRepository(s.db)
	for _, pb := range rows {
		book, err := m.Create(pb.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to restore book %q: %w", pb.Name(), err)
		}

		stored, err := contacts.List(map[string]any{"book_id": pb.ID()})
		if err != nil {
			return nil, err
		}
		for _, pc := range stored {
			book.Put(pc.Contact())
		}
	}

	m.Drain()
	return m, nil
}

// Save replaces the stored state with m in a single transaction.
//
// Rows are matched by book name and contact first name so ids and creation times survive
// across saves. Every kept row is re-stamped with a fresh sequence in current order.
func (s *Store) Save(m *addressbook.Manager) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	books := NewBookRepository(tx)
	existing, err := books.List(nil)
	if err != nil {
		return err
	}

	byName := make(map[string]*models.PersistedBook, len(existing))
	for _, pb := range existing {
		byName[pb.Name()] = pb
	}

	for _, book := range m.Books() {
		pb, ok := byName[book.Name()]
		if ok {
			delete(byName, book.Name())
			if err := restamp(tx, "books", pb.SetSequence); err != nil {
				return err
			}
			err = books.Update(pb)
		} else {
			pb = models.NewPersistedBook(0, book.Name())
			err = books.Create(pb)
		}
		if err != nil {
			return fmt.Errorf("failed to save book %q: %w", book.Name(), err)
		}

		if err := saveContacts(tx, pb.ID(), book); err != nil {
			return fmt.Errorf("failed to save book %q: %w", book.Name(), err)
		}
	}

	for name, pb := range byName {
		if err := books.Delete(pb.ID()); err != nil {
			return fmt.Errorf("failed to remove book %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func saveContacts(tx DBTX, bookID string, book *addressbook.AddressBook) error {
	repo := NewContactRepository(tx)
	existing, err := repo.List(map[string]any{"book_id": bookID})
	if err != nil {
		return err
	}

	byKey := make(map[string]*models.PersistedContact, len(existing))
	for _, pc := range existing {
		byKey[pc.Contact().Key()] = pc
	}

	for c := range book.All() {
		pc, ok := byKey[c.Key()]
		if ok {
			delete(byKey, c.Key())
			if err := restamp(tx, "contacts", pc.SetSequence); err != nil {
				return err
			}
			pc.SetContact(c)
			err = repo.Update(pc)
		} else {
			err = repo.Create(models.NewPersistedContact(0, bookID, c))
		}
		if err != nil {
			return fmt.Errorf("contact %q: %w", c.Key(), err)
		}
	}

	for key, pc := range byKey {
		if err := repo.Delete(pc.ID()); err != nil {
			return fmt.Errorf("contact %q: %w", key, err)
		}
	}
	return nil
}

func restamp(tx DBTX, table string, set func(int)) error {
	seq, err := NextSequence(tx, table)
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}
	set(seq)
	return nil
}
