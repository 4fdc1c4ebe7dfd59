package addressbook

import (
	"fmt"
	"slices"
	"strings"

	"github.com/desertthunder/abook/internal/models"
	"github.com/desertthunder/abook/internal/shared"
)

// Match is one search hit: a contact and the book holding it.
type Match struct {
	Book    string
	Contact models.Contact
}

// Manager owns every address book, keyed by unique name, in creation order.
type Manager struct {
	order   []string
	books   map[string]*AddressBook
	journal *Journal
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{books: make(map[string]*AddressBook), journal: &Journal{}}
}

// Create adds an empty book named name.
//
// Fails with [shared.ErrDuplicateCollection] when the name is taken and with
// [shared.ErrInvalidArgument] when it is blank.
func (m *Manager) Create(name string) (*AddressBook, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: address book name is empty", shared.ErrInvalidArgument)
	}
	if _, ok := m.books[name]; ok {
		return nil, fmt.Errorf("%w: %q", shared.ErrDuplicateCollection, name)
	}
	book := newAddressBook(name, m.journal)
	m.books[name] = book
	m.order = append(m.order, name)
	m.journal.record(Event{Kind: EventBookCreated, Book: name})
	return book, nil
}

// Select returns the owned book named name. Edits through it are visible to every holder.
func (m *Manager) Select(name string) (*AddressBook, error) {
	book, ok := m.books[name]
	if !ok {
		return nil, fmt.Errorf("%w: address book %q", shared.ErrNotFound, name)
	}
	return book, nil
}

// Remove destroys the book named name and every contact in it.
func (m *Manager) Remove(name string) error {
	if _, ok := m.books[name]; !ok {
		return fmt.Errorf("%w: address book %q", shared.ErrNotFound, name)
	}
	delete(m.books, name)
	if i := slices.Index(m.order, name); i >= 0 {
		m.order = slices.Delete(m.order, i, i+1)
	}
	m.journal.record(Event{Kind: EventBookRemoved, Book: name})
	return nil
}

// Names returns the book names in creation order.
func (m *Manager) Names() []string {
	return slices.Clone(m.order)
}

// Books returns the books in creation order.
func (m *Manager) Books() []*AddressBook {
	books := make([]*AddressBook, 0, len(m.order))
	for _, name := range m.order {
		books = append(books, m.books[name])
	}
	return books
}

// Len returns the number of books.
func (m *Manager) Len() int { return len(m.order) }

// SearchAcross finds contacts whose city or state equals value, ignoring case, in every book.
//
// Results follow book creation order, then insertion order within each book. No hits is an empty result, not an error.
func (m *Manager) SearchAcross(attribute models.Field, value string) ([]Match, error) {
	if err := checkFilterField(attribute); err != nil {
		return nil, err
	}
	matches := []Match{}
	for _, book := range m.Books() {
		seq, err := book.FilterBy(attribute, value)
		if err != nil {
			return nil, err
		}
		for c := range seq {
			matches = append(matches, Match{Book: book.Name(), Contact: c})
		}
	}
	return matches, nil
}

// Journal returns the journal shared by the manager and its books.
func (m *Manager) Journal() *Journal { return m.journal }

// Drain returns and clears the events recorded since the last drain.
func (m *Manager) Drain() []Event { return m.journal.Drain() }
