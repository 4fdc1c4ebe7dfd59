package formatter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/desertthunder/abook/internal/addressbook"
	"github.com/desertthunder/abook/internal/models"
	"github.com/desertthunder/abook/internal/shared"
)

const maxFlatLine = 1 << 20

// ParseError reports a malformed flat record.
type ParseError struct {
	Line    int
	Content string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Content)
}

func (e *ParseError) Unwrap() error { return shared.ErrParse }

// ImportFlat reads one mapping literal per line, for example
//
//	{'first_name': 'Girish', 'city': 'Pune', "zip_code": 560001}
//
// Keys and string values use single or double quotes; values may also be decimal integers.
// Unknown keys are ignored and missing keys read as "". City and state are trimmed.
// Blank lines are skipped rather than rejected as empty records. The first malformed line
// aborts the whole import with a [*ParseError].
func ImportFlat(r io.Reader) ([]models.Contact, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxFlatLine)

	var contacts []models.Contact
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields, err := parseFlatRecord(line)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Content: line, Err: err}
		}
		contacts = append(contacts, flatContact(fields))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: read flat records: %v", shared.ErrIO, err)
	}
	return contacts, nil
}

// LoadFlatFile imports path (default [DefaultFlatPath]) into book.
//
// A missing file returns [shared.ErrFileNotFound] and loads nothing. Records are stored only after
// the whole file parsed, keyed by first name; later lines overwrite earlier ones and existing contacts.
func LoadFlatFile(book *addressbook.AddressBook, path string) (int, error) {
	if path == "" {
		path = DefaultFlatPath
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, fmt.Errorf("%w: %s", shared.ErrFileNotFound, path)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: open %s: %v", shared.ErrIO, path, err)
	}
	defer f.Close()

	contacts, err := ImportFlat(f)
	if err != nil {
		return 0, err
	}
	for _, c := range contacts {
		book.Put(c)
	}
	return len(contacts), nil
}

func flatContact(fields map[string]string) models.Contact {
	var c models.Contact
	for _, f := range models.Fields {
		c = c.With(f, fields[string(f)])
	}
	c.City = strings.TrimSpace(c.City)
	c.State = strings.TrimSpace(c.State)
	return c
}

// flatScanner walks one mapping literal.
type flatScanner struct {
	src string
	pos int
}

func parseFlatRecord(line string) (map[string]string, error) {
	s := &flatScanner{src: line}
	fields := make(map[string]string)

	s.skipSpace()
	if !s.consume('{') {
		return nil, s.errorf("expected '{'")
	}

	for {
		s.skipSpace()
		if s.consume('}') {
			break
		}

		key, err := s.stringLit()
		if err != nil {
			return nil, fmt.Errorf("key: %w", err)
		}
		s.skipSpace()
		if !s.consume(':') {
			return nil, s.errorf("expected ':' after key %q", key)
		}
		s.skipSpace()
		value, err := s.value()
		if err != nil {
			return nil, fmt.Errorf("value of %q: %w", key, err)
		}
		fields[key] = value

		s.skipSpace()
		if s.consume(',') {
			continue
		}
		if s.consume('}') {
			break
		}
		return nil, s.errorf("expected ',' or '}'")
	}

	s.skipSpace()
	if !s.done() {
		return nil, s.errorf("unexpected text after '}'")
	}
	return fields, nil
}

func (s *flatScanner) done() bool { return s.pos >= len(s.src) }

func (s *flatScanner) peek() byte {
	if s.done() {
		return 0
	}
	return s.src[s.pos]
}

func (s *flatScanner) consume(b byte) bool {
	if s.peek() == b && !s.done() {
		s.pos++
		return true
	}
	return false
}

func (s *flatScanner) skipSpace() {
	for !s.done() && strings.IndexByte(" \t\r\n\f\v", s.src[s.pos]) >= 0 {
		s.pos++
	}
}

func (s *flatScanner) errorf(format string, args ...any) error {
	return fmt.Errorf("column %d: %s", s.pos+1, fmt.Sprintf(format, args...))
}

func (s *flatScanner) value() (string, error) {
	switch c := s.peek(); {
	case c == '\'' || c == '"':
		return s.stringLit()
	case c == '-' || c == '+' || (c >= '0' && c <= '9'):
		return s.intLit()
	}
	return "", s.errorf("expected a string or integer")
}

// intLit reads a decimal integer literal and returns its digits without separators.
//
// Underscores may only separate two digits. A leading zero is allowed only when every digit is zero.
func (s *flatScanner) intLit() (string, error) {
	start := s.pos
	negative := false
	if c := s.peek(); c == '-' || c == '+' {
		negative = c == '-'
		s.pos++
	}

	var digits strings.Builder
	for !s.done() {
		c := s.peek()
		switch {
		case c >= '0' && c <= '9':
			digits.WriteByte(c)
			s.pos++
			continue
		case c == '_' && digits.Len() > 0 && s.pos+1 < len(s.src) && isDigit(s.src[s.pos+1]):
			s.pos++
			continue
		}
		break
	}
	if digits.Len() == 0 {
		return "", s.errorf("expected digits")
	}
	if s.peek() == '_' {
		return "", fmt.Errorf("invalid integer %q", s.src[start:s.pos+1])
	}

	text := digits.String()
	if strings.Trim(text, "0") == "" {
		return "0", nil
	}
	if text[0] == '0' {
		return "", fmt.Errorf("invalid integer %q: leading zeros are not allowed", s.src[start:s.pos])
	}
	if negative {
		return "-" + text, nil
	}
	return text, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// stringLit reads a quoted literal with backslash escapes.
func (s *flatScanner) stringLit() (string, error) {
	quote := s.peek()
	if quote != '\'' && quote != '"' {
		return "", s.errorf("expected a quoted string")
	}
	s.pos++

	var b strings.Builder
	for {
		if s.done() {
			return "", s.errorf("unterminated string")
		}
		c := s.src[s.pos]
		switch {
		case c == quote:
			s.pos++
			return b.String(), nil
		case c == '\\':
			if err := s.escape(&b); err != nil {
				return "", err
			}
		default:
			r, size := utf8.DecodeRuneInString(s.src[s.pos:])
			b.WriteRune(r)
			s.pos += size
		}
	}
}

func (s *flatScanner) escape(b *strings.Builder) error {
	s.pos++ // backslash
	if s.done() {
		return s.errorf("unterminated escape")
	}
	c := s.src[s.pos]
	s.pos++

	simple := map[byte]byte{
		'\\': '\\', '\'': '\'', '"': '"', 'n': '\n', 't': '\t',
		'r': '\r', 'a': '\a', 'b': '\b', 'f': '\f', 'v': '\v', '0': 0,
	}
	if out, ok := simple[c]; ok {
		b.WriteByte(out)
		return nil
	}

	width := map[byte]int{'x': 2, 'u': 4, 'U': 8}[c]
	if width == 0 {
		// Unknown escapes keep their backslash.
		b.WriteByte('\\')
		b.WriteByte(c)
		return nil
	}
	if s.pos+width > len(s.src) {
		return s.errorf("truncated \\%c escape", c)
	}
	code, err := strconv.ParseUint(s.src[s.pos:s.pos+width], 16, 32)
	if err != nil || !utf8.ValidRune(rune(code)) {
		return s.errorf("invalid \\%c escape", c)
	}
	s.pos += width
	b.WriteRune(rune(code))
	return nil
}
