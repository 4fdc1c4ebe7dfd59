// submodule cmd contains command definitions
package main

import (
	"strings"

	"github.com/desertthunder/abook/internal/models"
	"github.com/urfave/cli/v3"
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// fieldFlagName turns a field key like "zip_code" into "zip-code".
func fieldFlagName(f models.Field) string {
	return strings.ReplaceAll(string(f), "_", "-")
}

func contactFlags() []cli.Flag {
	flags := []cli.Flag{configFlag()}
	for _, f := range models.Fields {
		flags = append(flags, &cli.StringFlag{Name: fieldFlagName(f), Usage: f.Label()})
	}
	return flags
}

// filterFlags are the mutually exclusive --city and --state selectors.
func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "city", Usage: "Match contacts in this city (case-insensitive)"},
		&cli.StringFlag{Name: "state", Usage: "Match contacts in this state (case-insensitive)"},
	}
}

// setupCommand initializes the config file and state database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create the config file and initialize the state database",
		Flags:  []cli.Flag{configFlag()},
		Action: r.SetupDatabase,
	}
}

// bookCommand handles address book operations
func bookCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "book",
		Aliases: []string{"books"},
		Usage:   "Address book operations",
		Commands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "Create an empty address book",
				Arguments: []cli.Argument{&cli.StringArg{Name: "name"}},
				Flags:     []cli.Flag{configFlag()},
				Action:    r.BookCreate,
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List address books with their contact counts",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.BookList,
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "Remove an address book and every contact in it",
				Arguments: []cli.Argument{&cli.StringArg{Name: "name"}},
				Flags:     []cli.Flag{configFlag()},
				Action:    r.BookRemove,
			},
		},
	}
}

// contactCommand handles contact operations within one book
func contactCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "contact",
		Aliases: []string{"contacts"},
		Usage:   "Contact operations within an address book",
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add a validated contact",
				Arguments: []cli.Argument{&cli.StringArg{Name: "book"}},
				Flags:     contactFlags(),
				Action:    r.ContactAdd,
			},
			{
				Name:  "edit",
				Usage: "Change the given fields of a contact",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "book"},
					&cli.StringArg{Name: "contact"},
				},
				Flags:  contactFlags(),
				Action: r.ContactEdit,
			},
			{
				Name:    "delete",
				Aliases: []string{"rm"},
				Usage:   "Delete a contact by first name",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "book"},
					&cli.StringArg{Name: "contact"},
				},
				Flags:  []cli.Flag{configFlag()},
				Action: r.ContactDelete,
			},
			{
				Name:      "list",
				Aliases:   []string{"ls"},
				Usage:     "List contacts, optionally sorted or filtered",
				Arguments: []cli.Argument{&cli.StringArg{Name: "book"}},
				Flags: append([]cli.Flag{
					configFlag(),
					&cli.StringFlag{Name: "sort", Usage: "Sort by name, city, state or zip"},
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				}, filterFlags()...),
				Action: r.ContactList,
			},
			{
				Name:  "show",
				Usage: "Show every field of a contact",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "book"},
					&cli.StringArg{Name: "contact"},
				},
				Flags:  []cli.Flag{configFlag()},
				Action: r.ContactShow,
			},
			{
				Name:      "count",
				Usage:     "Count contacts per city or state",
				Arguments: []cli.Argument{&cli.StringArg{Name: "book"}},
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{Name: "by", Usage: "Group by city or state", Value: "city"},
				},
				Action: r.ContactCount,
			},
		},
	}
}

// searchCommand searches every book by city or state
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search every address book by city or state",
		Flags: append([]cli.Flag{
			configFlag(),
			&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
		}, filterFlags()...),
		Action: r.Search,
	}
}

// exportCommand writes a book to a file
func exportCommand(r *Runner) *cli.Command {
	outputFlag := func() cli.Flag {
		return &cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output file path (default from config)"}
	}
	return &cli.Command{
		Name:  "export",
		Usage: "Export an address book",
		Commands: []*cli.Command{
			{
				Name:      "json",
				Usage:     "Export contacts as a JSON array",
				Arguments: []cli.Argument{&cli.StringArg{Name: "book"}},
				Flags:     []cli.Flag{configFlag(), outputFlag()},
				Action:    r.ExportJSON,
			},
			{
				Name:      "csv",
				Usage:     "Export contacts as CSV with a header row",
				Arguments: []cli.Argument{&cli.StringArg{Name: "book"}},
				Flags:     []cli.Flag{configFlag(), outputFlag()},
				Action:    r.ExportCSV,
			},
		},
	}
}

// importCommand loads contacts from a file into a book
func importCommand(r *Runner) *cli.Command {
	inputFlags := func() []cli.Flag {
		return []cli.Flag{
			configFlag(),
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "Input file path (default from config)"},
			&cli.BoolFlag{Name: "create", Usage: "Create the address book when it does not exist"},
		}
	}
	return &cli.Command{
		Name:  "import",
		Usage: "Import contacts into an address book",
		Commands: []*cli.Command{
			{
				Name:      "flat",
				Usage:     "Import one mapping literal per line; later records overwrite earlier ones",
				Arguments: []cli.Argument{&cli.StringArg{Name: "book"}},
				Flags:     inputFlags(),
				Action:    r.ImportFlat,
			},
			{
				Name:      "json",
				Usage:     "Import a JSON export",
				Arguments: []cli.Argument{&cli.StringArg{Name: "book"}},
				Flags:     inputFlags(),
				Action:    r.ImportJSON,
			},
		},
	}
}

// shellCommand runs the numbered-menu console.
func shellCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "shell",
		Aliases: []string{"console"},
		Usage:   "Run the interactive address book menu",
		Flags:   []cli.Flag{configFlag()},
		Action:  r.Shell,
	}
}

// tuiCommand returns the top-level TUI command for browsing address books.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Browse address books in a full-screen TUI",
		Flags:   []cli.Flag{configFlag()},
		Action:  r.TUI,
	}
}
