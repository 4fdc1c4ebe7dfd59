// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/abook/internal/models"
)

// SampleContacts returns three valid contacts in two states.
func SampleContacts() []models.Contact {
	return []models.Contact{
		{
			FirstName:   "Girish",
			LastName:    "Nekar",
			Address:     "12 MG Road",
			City:        "Bengaluru",
			State:       "Karnataka",
			ZipCode:     "560001",
			PhoneNumber: "91 9876543210",
			Email:       "girish@example.com",
		},
		{
			FirstName:   "Asha",
			LastName:    "Patil",
			Address:     "4 FC Road",
			City:        "Pune",
			State:       "Maharashtra",
			ZipCode:     "411004",
			PhoneNumber: "91 9123456780",
			Email:       "asha.patil@example.co.in",
		},
		{
			FirstName:   "Ravi",
			LastName:    "Kumar",
			Address:     "",
			City:        "Mysuru",
			State:       "Karnataka",
			ZipCode:     "570001",
			PhoneNumber: "80 9988776655",
			Email:       "ravi+work@example.org",
		},
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// FReader always returns an error on Read
type FReader struct{}

func (f *FReader) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

// InTempDir changes into a fresh temporary directory until the test ends.
func InTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	original := MustGetwd(t)
	MustChdir(t, dir)
	t.Cleanup(func() { MustChdir(t, original) })
	return dir
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertFileMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("File should not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// MustWriteFile writes content to name inside dir and returns the full path.
func MustWriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
	return path
}
