package main

import (
	"context"
	"errors"

	"github.com/desertthunder/abook/internal/addressbook"
	"github.com/desertthunder/abook/internal/formatter"
	"github.com/desertthunder/abook/internal/shared"
	"github.com/urfave/cli/v3"
)

func pathOr(cmd *cli.Command, flag, fallback string) string {
	if p := cmd.String(flag); p != "" {
		return p
	}
	return fallback
}

// ExportJSON writes a book to a JSON file.
func (r *Runner) ExportJSON(ctx context.Context, cmd *cli.Command) error {
	return r.export(cmd, func(book *addressbook.AddressBook) (string, error) {
		return formatter.WriteJSONExport(book, pathOr(cmd, "output", r.config.Files.ExportPath))
	})
}

// ExportCSV writes a book to a CSV file.
func (r *Runner) ExportCSV(ctx context.Context, cmd *cli.Command) error {
	return r.export(cmd, func(book *addressbook.AddressBook) (string, error) {
		return formatter.WriteCSVExport(book, pathOr(cmd, "output", r.config.Files.CSVPath))
	})
}

func (r *Runner) export(cmd *cli.Command, write func(*addressbook.AddressBook) (string, error)) error {
	name, err := requireArg(cmd, "book")
	if err != nil {
		return err
	}

	return r.withManager(cmd, false, func(m *addressbook.Manager) error {
		book, err := m.Select(name)
		if err != nil {
			return err
		}
		path, err := write(book)
		if err != nil {
			return err
		}
		r.logger.Info("exported address book", "book", name, "path", path, "contacts", book.Len())
		return r.writePlain("✓ Saved %d contacts to %s\n", book.Len(), path)
	})
}

// ImportFlat loads a flat record file into a book.
func (r *Runner) ImportFlat(ctx context.Context, cmd *cli.Command) error {
	return r.load(cmd, func(book *addressbook.AddressBook) (string, int, error) {
		path := pathOr(cmd, "input", r.config.Files.ImportPath)
		n, err := formatter.LoadFlatFile(book, path)
		return path, n, err
	})
}

// ImportJSON loads a JSON export into a book.
func (r *Runner) ImportJSON(ctx context.Context, cmd *cli.Command) error {
	return r.load(cmd, func(book *addressbook.AddressBook) (string, int, error) {
		path := pathOr(cmd, "input", r.config.Files.ExportPath)
		n, err := formatter.LoadJSONFile(book, path)
		return path, n, err
	})
}

func (r *Runner) load(cmd *cli.Command, read func(*addressbook.AddressBook) (string, int, error)) error {
	name, err := requireArg(cmd, "book")
	if err != nil {
		return err
	}

	return r.withManager(cmd, true, func(m *addressbook.Manager) error {
		book, err := m.Select(name)
		if errors.Is(err, shared.ErrNotFound) && cmd.Bool("create") {
			book, err = m.Create(name)
		}
		if err != nil {
			return err
		}

		path, n, err := read(book)
		if err != nil {
			return err
		}
		r.logger.Info("imported contacts", "book", name, "path", path, "records", n)
		return r.writePlain("✓ Loaded %d records from %s into '%s' (%d contacts)\n", n, path, name, book.Len())
	})
}
