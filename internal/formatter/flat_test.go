package formatter

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/abook/internal/addressbook"
	"github.com/desertthunder/abook/internal/models"
	"github.com/desertthunder/abook/internal/shared"
	th "github.com/desertthunder/abook/internal/testing"
	"github.com/google/go-cmp/cmp"
)

const flatFixture = `{'first_name': 'Girish', 'last_name': 'Nekar', 'address': '12 MG Road', 'city': 'Bengaluru', 'state': 'Karnataka', 'zip_code': '560001', 'phone_number': '91 9876543210', 'email': 'girish@example.com'}
{"first_name": "Asha", "last_name": "Patil", "city": " Pune ", "state": "Maharashtra ", "zip_code": 411004}
`

func TestImportFlat(t *testing.T) {
	t.Run("parses single and double quoted records", func(t *testing.T) {
		contacts, err := ImportFlat(strings.NewReader(flatFixture))
		if err != nil {
			t.Fatalf("ImportFlat failed: %v", err)
		}
		if len(contacts) != 2 {
			t.Fatalf("expected 2 contacts, got %d", len(contacts))
		}
		if diff := cmp.Diff(th.SampleContacts()[0], contacts[0]); diff != "" {
			t.Errorf("first contact mismatch (-want +got):\n%s", diff)
		}

		want := models.Contact{FirstName: "Asha", LastName: "Patil", City: "Pune", State: "Maharashtra", ZipCode: "411004"}
		if diff := cmp.Diff(want, contacts[1]); diff != "" {
			t.Errorf("second contact mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing email reads as empty", func(t *testing.T) {
		contacts, err := ImportFlat(strings.NewReader(`{'first_name': 'Amy', 'city': 'Pune'}`))
		if err != nil {
			t.Fatalf("ImportFlat failed: %v", err)
		}
		if contacts[0].Email != "" {
			t.Errorf("expected empty email, got %q", contacts[0].Email)
		}
	})

	t.Run("ignores unknown keys", func(t *testing.T) {
		contacts, err := ImportFlat(strings.NewReader(`{'first_name': 'Amy', 'nickname': 'A', 'age': 30,}`))
		if err != nil {
			t.Fatalf("ImportFlat failed: %v", err)
		}
		if contacts[0].FirstName != "Amy" {
			t.Errorf("unexpected contact %+v", contacts[0])
		}
	})

	t.Run("decodes escapes", func(t *testing.T) {
		contacts, err := ImportFlat(strings.NewReader(`{'first_name': 'O\'Neil', 'address': "Flat 2\\B", 'city': 'München', 'state': '\x41ssam'}`))
		if err != nil {
			t.Fatalf("ImportFlat failed: %v", err)
		}
		c := contacts[0]
		if c.FirstName != "O'Neil" || c.Address != `Flat 2\B` || c.City != "München" || c.State != "Assam" {
			t.Errorf("unexpected contact %+v", c)
		}
	})

	t.Run("integer literals", func(t *testing.T) {
		tests := []struct {
			literal string
			want    string
		}{
			{"560001", "560001"},
			{"411_004", "411004"},
			{"0", "0"},
			{"000", "0"},
			{"-5", "-5"},
			{"+7", "7"},
		}
		for _, tt := range tests {
			contacts, err := ImportFlat(strings.NewReader("{'zip_code': " + tt.literal + "}"))
			if err != nil {
				t.Fatalf("ImportFlat(%s) failed: %v", tt.literal, err)
			}
			if got := contacts[0].ZipCode; got != tt.want {
				t.Errorf("literal %s: expected %q, got %q", tt.literal, tt.want, got)
			}
		}
	})

	t.Run("skips blank lines", func(t *testing.T) {
		contacts, err := ImportFlat(strings.NewReader("\n{'first_name': 'Amy'}\n   \n{'first_name': 'Bob'}\n"))
		if err != nil {
			t.Fatalf("ImportFlat failed: %v", err)
		}
		if len(contacts) != 2 {
			t.Errorf("expected 2 contacts, got %d", len(contacts))
		}
	})

	t.Run("empty mapping", func(t *testing.T) {
		contacts, err := ImportFlat(strings.NewReader("{}"))
		if err != nil {
			t.Fatalf("ImportFlat failed: %v", err)
		}
		if diff := cmp.Diff(models.Contact{}, contacts[0]); diff != "" {
			t.Errorf("expected blank contact (-want +got):\n%s", diff)
		}
	})

	malformed := []struct {
		name string
		line string
	}{
		{name: "not a mapping", line: `['first_name', 'Amy']`},
		{name: "unterminated string", line: `{'first_name': 'Amy}`},
		{name: "missing colon", line: `{'first_name' 'Amy'}`},
		{name: "missing brace", line: `{'first_name': 'Amy'`},
		{name: "bare word value", line: `{'first_name': None}`},
		{name: "unquoted key", line: `{first_name: 'Amy'}`},
		{name: "trailing text", line: `{'first_name': 'Amy'} extra`},
		{name: "bad unicode escape", line: `{'first_name': '\uZZZZ'}`},
		{name: "leading zero integer", line: `{'first_name': 'Amy', 'zip_code': 012345}`},
		{name: "doubled underscore", line: `{'first_name': 'Amy', 'zip_code': 12__3}`},
		{name: "trailing underscore", line: `{'first_name': 'Amy', 'zip_code': 123_}`},
	}
	for _, tt := range malformed {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			input := "{'first_name': 'Amy'}\n" + tt.line + "\n{'first_name': 'Bob'}\n"
			contacts, err := ImportFlat(strings.NewReader(input))
			if contacts != nil {
				t.Error("expected no contacts from a failed import")
			}
			if !errors.Is(err, shared.ErrParse) {
				t.Fatalf("expected ErrParse, got %v", err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if pe.Line != 2 || pe.Content != tt.line {
				t.Errorf("expected line 2 %q, got line %d %q", tt.line, pe.Line, pe.Content)
			}
		})
	}

	t.Run("reports read failures", func(t *testing.T) {
		if _, err := ImportFlat(&th.FReader{}); !errors.Is(err, shared.ErrIO) {
			t.Errorf("expected ErrIO, got %v", err)
		}
	})
}

func TestLoadFlatFile(t *testing.T) {
	t.Run("last write wins", func(t *testing.T) {
		dir := t.TempDir()
		path := th.MustWriteFile(t, dir, "book.txt",
			"{'first_name': 'Amy', 'city': 'Pune'}\n"+
				"{'first_name': 'Bob', 'city': 'Goa'}\n"+
				"{'first_name': 'Amy', 'city': 'Nagpur'}\n")

		book := addressbook.NewAddressBook("Friends")
		n, err := LoadFlatFile(book, path)
		if err != nil {
			t.Fatalf("LoadFlatFile failed: %v", err)
		}
		if n != 3 {
			t.Errorf("expected 3 records read, got %d", n)
		}
		if book.Len() != 2 {
			t.Fatalf("expected 2 contacts, got %d", book.Len())
		}
		amy, _ := book.Get("Amy")
		if amy.City != "Nagpur" {
			t.Errorf("expected later record to win, got %s", amy.City)
		}
		if book.Contacts()[0].FirstName != "Amy" {
			t.Error("expected Amy to keep her first position")
		}
	})

	t.Run("overwrites existing contacts", func(t *testing.T) {
		dir := t.TempDir()
		path := th.MustWriteFile(t, dir, "book.txt", "{'first_name': 'Girish', 'city': 'Hubli'}\n")

		book := sampleBook(t)
		if _, err := LoadFlatFile(book, path); err != nil {
			t.Fatalf("LoadFlatFile failed: %v", err)
		}
		girish, _ := book.Get("Girish")
		if girish.City != "Hubli" || girish.Email != "" {
			t.Errorf("expected plain replacement, got %+v", girish)
		}
	})

	t.Run("malformed file loads nothing", func(t *testing.T) {
		dir := t.TempDir()
		path := th.MustWriteFile(t, dir, "book.txt", "{'first_name': 'Amy'}\nnot a record\n")

		book := addressbook.NewAddressBook("Friends")
		if _, err := LoadFlatFile(book, path); !errors.Is(err, shared.ErrParse) {
			t.Fatalf("expected ErrParse, got %v", err)
		}
		if book.Len() != 0 {
			t.Errorf("expected nothing loaded, got %d", book.Len())
		}
	})

	t.Run("missing file is reported", func(t *testing.T) {
		book := addressbook.NewAddressBook("Friends")
		_, err := LoadFlatFile(book, filepath.Join(t.TempDir(), "address_book.txt"))
		if !errors.Is(err, shared.ErrFileNotFound) {
			t.Errorf("expected ErrFileNotFound, got %v", err)
		}
	})

	t.Run("default path", func(t *testing.T) {
		dir := th.InTempDir(t)
		th.MustWriteFile(t, dir, DefaultFlatPath, "{'first_name': 'Amy'}\n")

		book := addressbook.NewAddressBook("Friends")
		if _, err := LoadFlatFile(book, ""); err != nil {
			t.Fatalf("LoadFlatFile failed: %v", err)
		}
		if !book.Has("Amy") {
			t.Error("expected Amy to be loaded from the default path")
		}
	})
}
