package formatter

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/desertthunder/abook/internal/addressbook"
	"github.com/desertthunder/abook/internal/models"
	"github.com/desertthunder/abook/internal/shared"
)

// ImportJSON decodes the [ExportJSON] format back into contacts.
//
// This is the unified round-trip mode; the flat format read by [ImportFlat] is unaffected by it.
// Missing keys read as "" and unknown keys are ignored.
func ImportJSON(data []byte) ([]models.Contact, error) {
	var contacts []models.Contact
	if err := json.Unmarshal(data, &contacts); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrParse, err)
	}
	return contacts, nil
}

// LoadJSONFile imports an [ExportJSON] file (default [DefaultJSONPath]) into book with last-write-wins semantics.
func LoadJSONFile(book *addressbook.AddressBook, path string) (int, error) {
	if path == "" {
		path = DefaultJSONPath
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, fmt.Errorf("%w: %s", shared.ErrFileNotFound, path)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: read %s: %v", shared.ErrIO, path, err)
	}

	contacts, err := ImportJSON(data)
	if err != nil {
		return 0, err
	}
	for _, c := range contacts {
		book.Put(c)
	}
	return len(contacts), nil
}
