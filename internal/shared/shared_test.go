package shared

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

func TestFoldKey(t *testing.T) {
	tc := []struct {
		name string
		in   string
		want string
	}{
		{name: "lower", in: "pune", want: "pune"},
		{name: "mixed case", in: "PuNe", want: "pune"},
		{name: "keeps spaces", in: "Tamil Nadu", want: "tamil nadu"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := FoldKey(tt.in); got != tt.want {
				t.Errorf("FoldKey(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Error("expected distinct ids")
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("expected a valid uuid, got %q: %v", a, err)
	}
}

func TestMarshalJSON(t *testing.T) {
	data := map[string]string{"city": "Pune"}

	t.Run("compact", func(t *testing.T) {
		got, err := MarshalJSON(data, false)
		if err != nil {
			t.Fatalf("MarshalJSON failed: %v", err)
		}
		if string(got) != `{"city":"Pune"}` {
			t.Errorf("unexpected output %s", got)
		}
	})

	t.Run("pretty uses four spaces", func(t *testing.T) {
		got, err := MarshalJSON(data, true)
		if err != nil {
			t.Fatalf("MarshalJSON failed: %v", err)
		}
		if string(got) != "{\n    \"city\": \"Pune\"\n}" {
			t.Errorf("unexpected output %s", got)
		}
	})
}

func TestLogger(t *testing.T) {
	t.Run("writes key value pairs", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithLogger(NewLogger(&buf), "book", "Friends")
		logger.Info("contact added", "contact", "Girish")

		out := buf.String()
		for _, want := range []string{"contact added", "book=Friends", "contact=Girish"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in %q", want, out)
			}
		}
	})

	t.Run("ApplyLogLevel", func(t *testing.T) {
		logger := NewLogger(&bytes.Buffer{})

		if err := ApplyLogLevel(logger, "DEBUG"); err != nil {
			t.Fatalf("ApplyLogLevel failed: %v", err)
		}
		if logger.GetLevel() != log.DebugLevel {
			t.Errorf("expected debug level, got %v", logger.GetLevel())
		}

		if err := ApplyLogLevel(logger, ""); err != nil {
			t.Errorf("expected blank level to be ignored, got %v", err)
		}
		if logger.GetLevel() != log.DebugLevel {
			t.Errorf("expected level to stay debug, got %v", logger.GetLevel())
		}

		if err := ApplyLogLevel(logger, "loud"); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestStateLock(t *testing.T) {
	t.Run("second acquire fails while held", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "abook.db")

		first, err := AcquireStateLock(dbPath)
		if err != nil {
			t.Fatalf("AcquireStateLock failed: %v", err)
		}

		if _, err := AcquireStateLock(dbPath); !errors.Is(err, ErrLocked) {
			t.Errorf("expected ErrLocked, got %v", err)
		}

		if err := first.Release(); err != nil {
			t.Fatalf("Release failed: %v", err)
		}

		again, err := AcquireStateLock(dbPath)
		if err != nil {
			t.Fatalf("expected lock to be free after release: %v", err)
		}
		again.Release()
	})

	t.Run("memory database needs no lock", func(t *testing.T) {
		a, err := AcquireStateLock(":memory:")
		if err != nil {
			t.Fatalf("AcquireStateLock failed: %v", err)
		}
		b, err := AcquireStateLock(":memory:")
		if err != nil {
			t.Fatalf("AcquireStateLock failed: %v", err)
		}
		if err := a.Release(); err != nil {
			t.Errorf("Release failed: %v", err)
		}
		if err := b.Release(); err != nil {
			t.Errorf("Release failed: %v", err)
		}
	})

	t.Run("nil release", func(t *testing.T) {
		var l *StateLock
		if err := l.Release(); err != nil {
			t.Errorf("expected nil error, got %v", err)
		}
	})
}
