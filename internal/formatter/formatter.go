// package formatter converts address books to and from files: the structured JSON export,
// CSV and plain text listings, and the flat one-record-per-line import format.
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/desertthunder/abook/internal/addressbook"
	"github.com/desertthunder/abook/internal/models"
	"github.com/desertthunder/abook/internal/shared"
)

// Default file names used when the caller does not supply a path.
const (
	DefaultJSONPath = "contacts.json"
	DefaultFlatPath = "address_book.txt"
	DefaultCSVPath  = "contacts.csv"
)

// ExportJSON serializes every contact of book as a JSON array of objects, one per contact,
// keyed by field name in record order and indented with four spaces.
func ExportJSON(book *addressbook.AddressBook) ([]byte, error) {
	data, err := shared.MarshalJSON(book.Contacts(), true)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal contacts: %w", err)
	}
	return data, nil
}

// WriteJSONExport writes [ExportJSON] output to path (default [DefaultJSONPath]).
//
// The file is replaced atomically; on failure the previous file is left as it was.
func WriteJSONExport(book *addressbook.AddressBook, path string) (string, error) {
	if path == "" {
		path = DefaultJSONPath
	}

	data, err := ExportJSON(book)
	if err != nil {
		return "", err
	}
	if err := WriteFileAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// ExportToCSV converts book to CSV with a header row of field names.
func ExportToCSV(book *addressbook.AddressBook) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := make([]string, len(models.Fields))
	for i, f := range models.Fields {
		headers[i] = string(f)
	}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for c := range book.All() {
		if err := writer.Write(c.Values()); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteCSVExport writes [ExportToCSV] output to path (default [DefaultCSVPath]).
func WriteCSVExport(book *addressbook.AddressBook, path string) (string, error) {
	if path == "" {
		path = DefaultCSVPath
	}

	data, err := ExportToCSV(book)
	if err != nil {
		return "", err
	}
	if err := WriteFileAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// ExportToText renders contacts as numbered blocks.
func ExportToText(contacts []models.Contact) []byte {
	var buf bytes.Buffer
	for i, c := range contacts {
		fmt.Fprintf(&buf, "\nContact %d:\n%s\n", i+1, c)
	}
	return buf.Bytes()
}

// WriteFileAtomic writes data to a temporary file next to path and renames it into place.
//
// Errors wrap [shared.ErrIO].
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file for %s: %v", shared.ErrIO, path, err)
	}
	tmpPath := tmp.Name()

	fail := func(op string, err error) error {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %s %s: %v", shared.ErrIO, op, path, err)
	}

	if _, err := tmp.Write(data); err != nil {
		return fail("write", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("sync", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		return fail("chmod", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: close %s: %v", shared.ErrIO, path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: rename into %s: %v", shared.ErrIO, path, err)
	}
	return nil
}
