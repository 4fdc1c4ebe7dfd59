package addressbook

import (
	"errors"
	"slices"
	"testing"

	"github.com/desertthunder/abook/internal/models"
	"github.com/desertthunder/abook/internal/shared"
	"github.com/google/go-cmp/cmp"
)

func contact(first, city, state, zip string) models.Contact {
	return models.Contact{
		FirstName:   first,
		LastName:    "Tester",
		Address:     "1 Main Road",
		City:        city,
		State:       state,
		ZipCode:     zip,
		PhoneNumber: "91 9876543210",
		Email:       "someone@example.com",
	}
}

func mustAdd(t *testing.T, b *AddressBook, c models.Contact) {
	t.Helper()
	if err := b.Add(c); err != nil {
		t.Fatalf("Add(%s) failed: %v", c.FirstName, err)
	}
}

func names(contacts []models.Contact) []string {
	out := make([]string, len(contacts))
	for i, c := range contacts {
		out[i] = c.FirstName
	}
	return out
}

func collect(t *testing.T, b *AddressBook, field models.Field, value string) []string {
	t.Helper()
	seq, err := b.FilterBy(field, value)
	if err != nil {
		t.Fatalf("FilterBy failed: %v", err)
	}
	return names(slices.Collect(seq))
}

func newBook(t *testing.T, contacts ...models.Contact) *AddressBook {
	t.Helper()
	b := NewAddressBook("Friends")
	for _, c := range contacts {
		if err := b.Add(c); err != nil {
			t.Fatalf("failed to add %s: %v", c.FirstName, err)
		}
	}
	return b
}

func TestAddressBook(t *testing.T) {
	t.Run("Add", func(t *testing.T) {
		t.Run("preserves insertion order", func(t *testing.T) {
			b := newBook(t,
				contact("Zed", "Pune", "Maharashtra", "411001"),
				contact("Amy", "Pune", "Maharashtra", "411002"),
				contact("Max", "Pune", "Maharashtra", "411003"),
			)
			if got := names(b.Contacts()); !slices.Equal(got, []string{"Zed", "Amy", "Max"}) {
				t.Errorf("unexpected order %v", got)
			}
		})

		t.Run("rejects duplicate first name", func(t *testing.T) {
			original := contact("Amy", "Pune", "Maharashtra", "411001")
			b := newBook(t, original)

			err := b.Add(contact("Amy", "Mumbai", "Maharashtra", "400001"))
			if !errors.Is(err, shared.ErrDuplicateIdentity) {
				t.Fatalf("expected ErrDuplicateIdentity, got %v", err)
			}
			if b.Len() != 1 {
				t.Errorf("expected 1 contact, got %d", b.Len())
			}
			got, _ := b.Get("Amy")
			if diff := cmp.Diff(original, got); diff != "" {
				t.Errorf("book changed (-want +got):\n%s", diff)
			}
		})
	})

	t.Run("Edit", func(t *testing.T) {
		t.Run("all blank keeps every field", func(t *testing.T) {
			original := contact("Amy", "Pune", "Maharashtra", "411001")
			b := newBook(t, original)

			updated, err := b.Edit("Amy", models.Contact{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(original, updated); diff != "" {
				t.Errorf("edit changed fields (-want +got):\n%s", diff)
			}
			got, _ := b.Get("Amy")
			if diff := cmp.Diff(original, got); diff != "" {
				t.Errorf("stored contact changed (-want +got):\n%s", diff)
			}
		})

		t.Run("updates supplied fields only", func(t *testing.T) {
			b := newBook(t, contact("Amy", "Pune", "Maharashtra", "411001"))

			updated, err := b.Edit("Amy", models.Contact{City: "Nagpur", ZipCode: "440001"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if updated.City != "Nagpur" || updated.ZipCode != "440001" || updated.State != "Maharashtra" {
				t.Errorf("unexpected contact %+v", updated)
			}
		})

		t.Run("holders of old copies see replacement semantics", func(t *testing.T) {
			b := newBook(t, contact("Amy", "Pune", "Maharashtra", "411001"))
			held, _ := b.Get("Amy")

			if _, err := b.Edit("Amy", models.Contact{City: "Nagpur"}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if held.City != "Pune" {
				t.Errorf("expected held copy to be unchanged, got %s", held.City)
			}
		})

		t.Run("rename re-keys the contact", func(t *testing.T) {
			b := newBook(t,
				contact("Amy", "Pune", "Maharashtra", "411001"),
				contact("Bob", "Pune", "Maharashtra", "411002"),
			)

			if _, err := b.Edit("Amy", models.Contact{FirstName: "Ann"}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if b.Has("Amy") {
				t.Error("old key should be gone")
			}
			got, err := b.Get("Ann")
			if err != nil {
				t.Fatalf("new key missing: %v", err)
			}
			if got.FirstName != "Ann" || got.City != "Pune" {
				t.Errorf("unexpected renamed contact %+v", got)
			}
			if order := names(b.Contacts()); !slices.Equal(order, []string{"Bob", "Ann"}) {
				t.Errorf("expected renamed contact re-inserted last, got %v", order)
			}
		})

		t.Run("rejects rename onto another contact", func(t *testing.T) {
			b := newBook(t,
				contact("Amy", "Pune", "Maharashtra", "411001"),
				contact("Bob", "Mumbai", "Maharashtra", "400001"),
			)

			_, err := b.Edit("Amy", models.Contact{FirstName: "Bob"})
			if !errors.Is(err, shared.ErrDuplicateIdentity) {
				t.Fatalf("expected ErrDuplicateIdentity, got %v", err)
			}
			bob, _ := b.Get("Bob")
			if bob.City != "Mumbai" {
				t.Error("existing contact was overwritten")
			}
			if !b.Has("Amy") || b.Len() != 2 {
				t.Error("book should be unchanged")
			}
		})

		t.Run("validates supplied values", func(t *testing.T) {
			b := newBook(t, contact("Amy", "Pune", "Maharashtra", "411001"))

			_, err := b.Edit("Amy", models.Contact{ZipCode: "12"})
			if !errors.Is(err, shared.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			got, _ := b.Get("Amy")
			if got.ZipCode != "411001" {
				t.Error("contact changed after failed edit")
			}
		})

		t.Run("missing contact", func(t *testing.T) {
			b := newBook(t)
			if _, err := b.Edit("Nobody", models.Contact{}); !errors.Is(err, shared.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	})

	t.Run("Delete", func(t *testing.T) {
		t.Run("removes contact", func(t *testing.T) {
			b := newBook(t, contact("Amy", "Pune", "Maharashtra", "411001"))
			if err := b.Delete("Amy"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if b.Len() != 0 {
				t.Errorf("expected empty book, got %d", b.Len())
			}
		})

		t.Run("missing contact leaves size unchanged", func(t *testing.T) {
			b := newBook(t, contact("Amy", "Pune", "Maharashtra", "411001"))
			if err := b.Delete("Nobody"); !errors.Is(err, shared.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			if b.Len() != 1 {
				t.Errorf("expected 1 contact, got %d", b.Len())
			}
		})
	})

	t.Run("FilterBy", func(t *testing.T) {
		b := newBook(t,
			contact("Amy", "pune", "Maharashtra", "411001"),
			contact("Bob", "Mumbai", "Maharashtra", "400001"),
			contact("Cat", "PUNE", "Maharashtra", "411002"),
		)

		t.Run("matches city ignoring case", func(t *testing.T) {
			if got := collect(t, b, models.FieldCity, "Pune"); !slices.Equal(got, []string{"Amy", "Cat"}) {
				t.Errorf("unexpected matches %v", got)
			}
		})

		t.Run("matches state", func(t *testing.T) {
			if got := collect(t, b, models.FieldState, "maharashtra"); len(got) != 3 {
				t.Errorf("expected 3 matches, got %v", got)
			}
		})

		t.Run("is exact, not substring", func(t *testing.T) {
			if got := collect(t, b, models.FieldCity, "Pun"); len(got) != 0 {
				t.Errorf("expected no matches, got %v", got)
			}
		})

		t.Run("is restartable and re-evaluated", func(t *testing.T) {
			seq, err := b.FilterBy(models.FieldCity, "pune")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if first := slices.Collect(seq); len(first) != 2 {
				t.Fatalf("expected 2 matches, got %d", len(first))
			}
			if err := b.Add(contact("Dan", "Pune", "Maharashtra", "411003")); err != nil {
				t.Fatalf("failed to add: %v", err)
			}
			if second := slices.Collect(seq); len(second) != 3 {
				t.Errorf("expected 3 matches on second pass, got %d", len(second))
			}
		})

		t.Run("stops early", func(t *testing.T) {
			seq, _ := b.FilterBy(models.FieldState, "Maharashtra")
			count := 0
			for range seq {
				count++
				break
			}
			if count != 1 {
				t.Errorf("expected iteration to stop after 1, got %d", count)
			}
		})

		t.Run("rejects other fields", func(t *testing.T) {
			if _, err := b.FilterBy(models.FieldZipCode, "411001"); !errors.Is(err, shared.ErrInvalidFilterField) {
				t.Errorf("expected ErrInvalidFilterField, got %v", err)
			}
		})
	})

	t.Run("SortBy", func(t *testing.T) {
		t.Run("zip", func(t *testing.T) {
			b := newBook(t,
				contact("Aaa", "Pune", "Maharashtra", "900001"),
				contact("Bbb", "Pune", "Maharashtra", "100002"),
				contact("Ccc", "Pune", "Maharashtra", "500003"),
			)
			sorted, err := b.SortBy(SortByZip)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := names(sorted); !slices.Equal(got, []string{"Bbb", "Ccc", "Aaa"}) {
				t.Errorf("unexpected order %v", got)
			}
		})

		t.Run("name ignores case", func(t *testing.T) {
			b := newBook(t,
				contact("Dave", "Pune", "Maharashtra", "411001"),
				contact("alan", "Pune", "Maharashtra", "411001"),
				contact("Carl", "Pune", "Maharashtra", "411001"),
			)
			sorted, _ := b.SortBy("NAME")
			if got := names(sorted); !slices.Equal(got, []string{"alan", "Carl", "Dave"}) {
				t.Errorf("unexpected order %v", got)
			}
		})

		t.Run("is stable on ties", func(t *testing.T) {
			b := newBook(t,
				contact("Zed", "Pune", "Maharashtra", "411001"),
				contact("Amy", "Agra", "Uttar Pradesh", "282001"),
				contact("Max", "pune", "Maharashtra", "411002"),
				contact("Bob", "PUNE", "Maharashtra", "411003"),
			)
			sorted, _ := b.SortBy(SortByCity)
			if got := names(sorted); !slices.Equal(got, []string{"Amy", "Zed", "Max", "Bob"}) {
				t.Errorf("unexpected order %v", got)
			}
			if got := names(b.Contacts()); !slices.Equal(got, []string{"Zed", "Amy", "Max", "Bob"}) {
				t.Errorf("sorting must not reorder the book, got %v", got)
			}
		})

		t.Run("rejects unknown key", func(t *testing.T) {
			b := newBook(t)
			if _, err := b.SortBy("phone"); !errors.Is(err, shared.ErrInvalidSortKey) {
				t.Errorf("expected ErrInvalidSortKey, got %v", err)
			}
		})
	})

	t.Run("Put replaces in place", func(t *testing.T) {
		b := newBook(t,
			contact("Amy", "Pune", "Maharashtra", "411001"),
			contact("Bob", "Pune", "Maharashtra", "411002"),
		)
		b.Put(contact("Amy", "Goa", "Goa", "403001"))
		b.Put(contact("Cat", "Goa", "Goa", "403002"))

		if got := names(b.Contacts()); !slices.Equal(got, []string{"Amy", "Bob", "Cat"}) {
			t.Errorf("unexpected order %v", got)
		}
		amy, _ := b.Get("Amy")
		if amy.City != "Goa" {
			t.Errorf("expected Amy replaced, got %s", amy.City)
		}
	})

	t.Run("CountBy", func(t *testing.T) {
		b := newBook(t,
			contact("Amy", "Pune", "Maharashtra", "411001"),
			contact("Bob", "Goa", "Goa", "403001"),
			contact("Cat", "pune", "Maharashtra", "411002"),
		)
		groups, err := b.CountBy(models.FieldCity)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []GroupCount{{Value: "Pune", Count: 2}, {Value: "Goa", Count: 1}}
		if diff := cmp.Diff(want, groups); diff != "" {
			t.Errorf("groups mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("journal records mutations", func(t *testing.T) {
		b := newBook(t, contact("Amy", "Pune", "Maharashtra", "411001"))
		if _, err := b.Edit("Amy", models.Contact{FirstName: "Ann"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_ = b.Delete("Nobody")
		if err := b.Delete("Ann"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		events := b.Journal().Drain()
		kinds := make([]EventKind, len(events))
		for i, e := range events {
			kinds[i] = e.Kind
		}
		want := []EventKind{EventContactAdded, EventContactRenamed, EventContactDeleted}
		if !slices.Equal(kinds, want) {
			t.Errorf("expected %v, got %v", want, kinds)
		}
		if events[1].Previous != "Amy" || events[1].Contact != "Ann" {
			t.Errorf("unexpected rename event %+v", events[1])
		}
		if b.Journal().Len() != 0 {
			t.Error("expected journal to be empty after drain")
		}
	})
}
