package addressbook

import (
	"errors"
	"slices"
	"testing"

	"github.com/desertthunder/abook/internal/models"
	"github.com/desertthunder/abook/internal/shared"
)

func TestManager(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		t.Run("keeps creation order", func(t *testing.T) {
			m := NewManager()
			for _, name := range []string{"Work", "Family", "Gym"} {
				if _, err := m.Create(name); err != nil {
					t.Fatalf("failed to create %s: %v", name, err)
				}
			}
			if got := m.Names(); !slices.Equal(got, []string{"Work", "Family", "Gym"}) {
				t.Errorf("unexpected names %v", got)
			}
		})

		t.Run("rejects duplicate name", func(t *testing.T) {
			m := NewManager()
			_, _ = m.Create("Work")
			if _, err := m.Create("Work"); !errors.Is(err, shared.ErrDuplicateCollection) {
				t.Errorf("expected ErrDuplicateCollection, got %v", err)
			}
			if m.Len() != 1 {
				t.Errorf("expected 1 book, got %d", m.Len())
			}
		})

		t.Run("rejects blank name", func(t *testing.T) {
			m := NewManager()
			if _, err := m.Create("  "); !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	})

	t.Run("Select returns the owned book", func(t *testing.T) {
		m := NewManager()
		_, _ = m.Create("Work")

		first, err := m.Select("Work")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := first.Add(contact("Amy", "Pune", "Maharashtra", "411001")); err != nil {
			t.Fatalf("failed to add: %v", err)
		}
		second, _ := m.Select("Work")
		if second.Len() != 1 {
			t.Error("expected edits to be visible through every holder")
		}

		if _, err := m.Select("Missing"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Remove", func(t *testing.T) {
		m := NewManager()
		_, _ = m.Create("Work")
		_, _ = m.Create("Gym")

		if err := m.Remove("Work"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := m.Names(); !slices.Equal(got, []string{"Gym"}) {
			t.Errorf("unexpected names %v", got)
		}
		if err := m.Remove("Work"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("SearchAcross", func(t *testing.T) {
		m := NewManager()
		work, _ := m.Create("Work")
		family, _ := m.Create("Family")
		mustAdd(t, work, contact("Amy", "Pune", "Maharashtra", "411001"))
		mustAdd(t, family, contact("Bob", "Bengaluru", "Karnataka", "560001"))
		mustAdd(t, family, contact("Cat", "Mysuru", "karnataka", "570001"))

		t.Run("one matching book", func(t *testing.T) {
			m2 := NewManager()
			a, _ := m2.Create("A")
			b, _ := m2.Create("B")
			mustAdd(t, a, contact("Amy", "Pune", "Maharashtra", "411001"))
			mustAdd(t, b, contact("Bob", "Bengaluru", "Karnataka", "560001"))

			matches, err := m2.SearchAcross(models.FieldState, "Karnataka")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(matches) != 1 {
				t.Fatalf("expected 1 match, got %d", len(matches))
			}
			if matches[0].Book != "B" || matches[0].Contact.FirstName != "Bob" {
				t.Errorf("unexpected match %+v", matches[0])
			}
		})

		t.Run("orders by book then insertion", func(t *testing.T) {
			mustAdd(t, work, contact("Dan", "Hubli", "Karnataka", "580001"))
			matches, _ := m.SearchAcross(models.FieldState, "KARNATAKA")

			var got []string
			for _, match := range matches {
				got = append(got, match.Book+"/"+match.Contact.FirstName)
			}
			want := []string{"Work/Dan", "Family/Bob", "Family/Cat"}
			if !slices.Equal(got, want) {
				t.Errorf("expected %v, got %v", want, got)
			}
		})

		t.Run("no hits is empty", func(t *testing.T) {
			matches, err := m.SearchAcross(models.FieldCity, "Delhi")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if matches == nil || len(matches) != 0 {
				t.Errorf("expected empty, non-nil result, got %v", matches)
			}
		})

		t.Run("rejects other attributes", func(t *testing.T) {
			if _, err := m.SearchAcross(models.FieldEmail, "x"); !errors.Is(err, shared.ErrInvalidFilterField) {
				t.Errorf("expected ErrInvalidFilterField, got %v", err)
			}
		})
	})

	t.Run("books share the manager journal", func(t *testing.T) {
		m := NewManager()
		book, _ := m.Create("Work")
		mustAdd(t, book, contact("Amy", "Pune", "Maharashtra", "411001"))
		_ = m.Remove("Work")

		events := m.Drain()
		if len(events) != 3 {
			t.Fatalf("expected 3 events, got %d", len(events))
		}
		if events[0].Kind != EventBookCreated || events[1].Kind != EventContactAdded || events[2].Kind != EventBookRemoved {
			t.Errorf("unexpected events %+v", events)
		}
		if len(m.Drain()) != 0 {
			t.Error("expected drain to clear the journal")
		}
	})
}
