package addressbook

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/desertthunder/abook/internal/models"
	"github.com/desertthunder/abook/internal/shared"
)

// SortKey selects the field [AddressBook.SortBy] orders by.
type SortKey string

const (
	SortByName  SortKey = "name"
	SortByCity  SortKey = "city"
	SortByState SortKey = "state"
	SortByZip   SortKey = "zip"
)

// SortKeys lists the accepted sort keys.
var SortKeys = []SortKey{SortByName, SortByCity, SortByState, SortByZip}

// Field returns the contact field a sort key orders by.
func (k SortKey) Field() (models.Field, bool) {
	switch SortKey(strings.ToLower(string(k))) {
	case SortByName:
		return models.FieldFirstName, true
	case SortByCity:
		return models.FieldCity, true
	case SortByState:
		return models.FieldState, true
	case SortByZip:
		return models.FieldZipCode, true
	}
	return "", false
}

// AddressBook is an insertion-ordered set of contacts keyed by first name.
type AddressBook struct {
	name     string
	order    []string
	contacts map[string]models.Contact
	journal  *Journal
}

// NewAddressBook creates an empty, unmanaged book with its own journal.
func NewAddressBook(name string) *AddressBook {
	return newAddressBook(name, &Journal{})
}

func newAddressBook(name string, j *Journal) *AddressBook {
	return &AddressBook{name: name, contacts: make(map[string]models.Contact), journal: j}
}

// Name returns the book's name within its manager.
func (b *AddressBook) Name() string { return b.name }

// Journal returns the journal this book records into.
func (b *AddressBook) Journal() *Journal { return b.journal }

// Len returns the number of contacts.
func (b *AddressBook) Len() int { return len(b.order) }

// Get returns the contact with the given first name.
func (b *AddressBook) Get(firstName string) (models.Contact, error) {
	c, ok := b.contacts[firstName]
	if !ok {
		return models.Contact{}, fmt.Errorf("%w: contact %q in %q", shared.ErrNotFound, firstName, b.name)
	}
	return c, nil
}

// Has reports whether a contact with the given first name exists.
func (b *AddressBook) Has(firstName string) bool {
	_, ok := b.contacts[firstName]
	return ok
}

// Contacts returns a snapshot of all contacts in insertion order.
func (b *AddressBook) Contacts() []models.Contact {
	out := make([]models.Contact, 0, len(b.order))
	for c := range b.All() {
		out = append(out, c)
	}
	return out
}

// All yields every contact in insertion order.
//
// Each call walks the book as it is at that moment.
func (b *AddressBook) All() iter.Seq[models.Contact] {
	return func(yield func(models.Contact) bool) {
		for _, key := range slices.Clone(b.order) {
			c, ok := b.contacts[key]
			if !ok {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// Add inserts c at the end of the book.
//
// Fails with [shared.ErrDuplicateIdentity] when the first name is taken; the book is unchanged.
func (b *AddressBook) Add(c models.Contact) error {
	if b.Has(c.Key()) {
		return fmt.Errorf("%w: %q in %q", shared.ErrDuplicateIdentity, c.Key(), b.name)
	}
	b.insert(c)
	b.journal.record(Event{Kind: EventContactAdded, Book: b.name, Contact: c.Key()})
	return nil
}

// Put stores c under its first name, replacing an existing contact in place or appending a new one.
func (b *AddressBook) Put(c models.Contact) {
	if b.Has(c.Key()) {
		b.contacts[c.Key()] = c
	} else {
		b.insert(c)
	}
	b.journal.record(Event{Kind: EventContactPut, Book: b.name, Contact: c.Key()})
}

// Edit replaces the contact named firstName with a copy carrying the non-blank fields of changes.
//
// Changed values are validated with their field rule. The replacement is removed and re-inserted
// under its (possibly new) first name. Renaming onto another existing contact fails with
// [shared.ErrDuplicateIdentity] and leaves the book unchanged.
func (b *AddressBook) Edit(firstName string, changes models.Contact) (models.Contact, error) {
	current, err := b.Get(firstName)
	if err != nil {
		return models.Contact{}, err
	}

	for _, f := range models.Fields {
		v := changes.Get(f)
		if strings.TrimSpace(v) == "" {
			continue
		}
		valid, err := models.ValidateField(f, v)
		if err != nil {
			return models.Contact{}, err
		}
		changes = changes.With(f, valid)
	}

	updated := current.Merge(changes)
	renamed := updated.Key() != firstName
	if renamed && b.Has(updated.Key()) {
		return models.Contact{}, fmt.Errorf("%w: cannot rename %q to %q in %q", shared.ErrDuplicateIdentity, firstName, updated.Key(), b.name)
	}

	b.remove(firstName)
	b.insert(updated)

	if renamed {
		b.journal.record(Event{Kind: EventContactRenamed, Book: b.name, Contact: updated.Key(), Previous: firstName})
	} else {
		b.journal.record(Event{Kind: EventContactUpdated, Book: b.name, Contact: updated.Key()})
	}
	return updated, nil
}

// Delete removes the contact named firstName.
//
// Fails with [shared.ErrNotFound] when absent; the book is unchanged.
func (b *AddressBook) Delete(firstName string) error {
	if !b.Has(firstName) {
		return fmt.Errorf("%w: contact %q in %q", shared.ErrNotFound, firstName, b.name)
	}
	b.remove(firstName)
	b.journal.record(Event{Kind: EventContactDeleted, Book: b.name, Contact: firstName})
	return nil
}

// FilterBy yields the contacts whose city or state equals value, ignoring case, in book order.
//
// The sequence is lazy and restartable: every range over it re-reads the book.
func (b *AddressBook) FilterBy(field models.Field, value string) (iter.Seq[models.Contact], error) {
	if err := checkFilterField(field); err != nil {
		return nil, err
	}
	return func(yield func(models.Contact) bool) {
		for c := range b.All() {
			if !strings.EqualFold(c.Get(field), value) {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}, nil
}

// SortBy returns every contact ordered by key, case-insensitive ascending.
//
// Ties keep insertion order. Unknown keys fail with [shared.ErrInvalidSortKey].
func (b *AddressBook) SortBy(key SortKey) ([]models.Contact, error) {
	field, ok := key.Field()
	if !ok {
		return nil, fmt.Errorf("%w: %q (choose name, city, state or zip)", shared.ErrInvalidSortKey, key)
	}
	sorted := b.Contacts()
	slices.SortStableFunc(sorted, func(x, y models.Contact) int {
		return strings.Compare(shared.FoldKey(x.Get(field)), shared.FoldKey(y.Get(field)))
	})
	return sorted, nil
}

// GroupCount is the number of contacts sharing one city or state.
type GroupCount struct {
	Value string
	Count int
}

// CountBy groups contacts by city or state, ignoring case.
//
// Groups appear in the order their first member was inserted and are labelled with that member's spelling.
func (b *AddressBook) CountBy(field models.Field) ([]GroupCount, error) {
	if err := checkFilterField(field); err != nil {
		return nil, err
	}
	var groups []GroupCount
	index := make(map[string]int)
	for c := range b.All() {
		key := shared.FoldKey(c.Get(field))
		if i, ok := index[key]; ok {
			groups[i].Count++
			continue
		}
		index[key] = len(groups)
		groups = append(groups, GroupCount{Value: c.Get(field), Count: 1})
	}
	return groups, nil
}

func checkFilterField(field models.Field) error {
	if field != models.FieldCity && field != models.FieldState {
		return fmt.Errorf("%w: %q (choose city or state)", shared.ErrInvalidFilterField, field)
	}
	return nil
}

func (b *AddressBook) insert(c models.Contact) {
	b.contacts[c.Key()] = c
	b.order = append(b.order, c.Key())
}

func (b *AddressBook) remove(firstName string) {
	delete(b.contacts, firstName)
	if i := slices.Index(b.order, firstName); i >= 0 {
		b.order = slices.Delete(b.order, i, i+1)
	}
}
