package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/abook/internal/addressbook"
	"github.com/desertthunder/abook/internal/formatter"
	"github.com/desertthunder/abook/internal/models"
	"github.com/desertthunder/abook/internal/shared"
)

// Options configures a [Console]. Zero values fall back to the package defaults.
type Options struct {
	MaxAttempts int
	ExportPath  string
	ImportPath  string
	CSVPath     string
	Logger      *log.Logger
}

// Console reads menu choices and field values from in and writes prompts and results to out.
type Console struct {
	in      *bufio.Reader
	out     io.Writer
	manager *addressbook.Manager
	opts    Options
	logger  *log.Logger
}

// New creates a console driving m.
func New(in io.Reader, out io.Writer, m *addressbook.Manager, opts Options) *Console {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 3
	}
	if opts.ExportPath == "" {
		opts.ExportPath = formatter.DefaultJSONPath
	}
	if opts.ImportPath == "" {
		opts.ImportPath = formatter.DefaultFlatPath
	}
	if opts.CSVPath == "" {
		opts.CSVPath = formatter.DefaultCSVPath
	}
	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &Console{in: bufio.NewReader(in), out: out, manager: m, opts: opts, logger: logger}
}

// Run shows the manager menu until the user exits or the input ends.
func (c *Console) Run() error {
	err := c.managerMenu()
	c.flush()
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// LogEvents writes one log line per journal event.
func LogEvents(logger *log.Logger, events []addressbook.Event) {
	for _, e := range events {
		kv := []any{"book", e.Book}
		switch e.Kind {
		case addressbook.EventBookCreated, addressbook.EventBookRemoved:
		default:
			kv = append(kv, "contact", e.Contact)
		}
		if e.Previous != "" {
			kv = append(kv, "previous", e.Previous)
		}
		logger.Info(string(e.Kind), kv...)
	}
}

func (c *Console) flush() {
	LogEvents(c.logger, c.manager.Drain())
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// readLine prompts and returns one line without its line ending.
//
// A final line without a newline is returned normally; the following call reports [io.EOF].
func (c *Console) readLine(prompt string) (string, error) {
	c.printf("%s", prompt)
	line, err := c.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: reading input: %v", shared.ErrIO, err)
		}
		if line == "" {
			c.printf("\n")
			return "", io.EOF
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ask reads a value for field f, reprompting on invalid input.
//
// Returns [shared.ErrTooManyAttempts] after MaxAttempts rejected answers.
func (c *Console) ask(f models.Field, prompt string) (string, error) {
	return c.askWith(f, prompt, false)
}

// askOptional is [Console.ask] that also accepts a blank answer, returned as "".
func (c *Console) askOptional(f models.Field, prompt string) (string, error) {
	return c.askWith(f, prompt, true)
}

func (c *Console) askWith(f models.Field, prompt string, optional bool) (string, error) {
	for range c.opts.MaxAttempts {
		line, err := c.readLine(prompt)
		if err != nil {
			return "", err
		}
		raw := strings.TrimSpace(line)
		if optional && raw == "" {
			return "", nil
		}

		v, err := models.ValidateField(f, raw)
		if err == nil {
			return v, nil
		}
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			c.printf("Invalid %s. Please %s.\n", strings.ToLower(f.Label()), ve.Message)
		}
	}
	return "", fmt.Errorf("%w: %s", shared.ErrTooManyAttempts, f.Label())
}
