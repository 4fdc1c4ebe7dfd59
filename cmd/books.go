package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/abook/internal/addressbook"
	"github.com/desertthunder/abook/internal/models"
	"github.com/desertthunder/abook/internal/shared"
	"github.com/urfave/cli/v3"
)

// bookSummary is the JSON shape of one row of `book list`.
type bookSummary struct {
	Name     string `json:"name"`
	Contacts int    `json:"contacts"`
}

// searchResult is the JSON shape of one search hit.
type searchResult struct {
	Book    string         `json:"book"`
	Contact models.Contact `json:"contact"`
}

func requireArg(cmd *cli.Command, name string) (string, error) {
	value := cmd.StringArg(name)
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("%w: <%s>", shared.ErrMissingArgument, name)
	}
	return value, nil
}

// contactFromFlags collects the contact field flags that were given, trimmed.
func contactFromFlags(cmd *cli.Command) models.Contact {
	var c models.Contact
	for _, f := range models.Fields {
		c = c.With(f, strings.TrimSpace(cmd.String(fieldFlagName(f))))
	}
	return c
}

// filterFromFlags reads --city or --state. Giving both is an error; giving neither returns an empty field.
func filterFromFlags(cmd *cli.Command) (models.Field, string, error) {
	city, state := cmd.IsSet("city"), cmd.IsSet("state")
	switch {
	case city && state:
		return "", "", fmt.Errorf("%w: use either --city or --state", shared.ErrInvalidFlag)
	case city:
		return models.FieldCity, cmd.String("city"), nil
	case state:
		return models.FieldState, cmd.String("state"), nil
	}
	return "", "", nil
}

func contactRows(contacts []models.Contact) [][]string {
	rows := make([][]string, len(contacts))
	for i, c := range contacts {
		rows[i] = []string{strconv.Itoa(i + 1), c.FullName(), c.City, c.State, c.ZipCode, c.PhoneNumber, c.Email}
	}
	return rows
}

var contactHeaders = []string{"#", "Name", "City", "State", "Zip", "Phone", "Email"}

// BookCreate creates an empty address book.
func (r *Runner) BookCreate(ctx context.Context, cmd *cli.Command) error {
	name, err := requireArg(cmd, "name")
	if err != nil {
		return err
	}
	return r.withManager(cmd, true, func(m *addressbook.Manager) error {
		if _, err := m.Create(name); err != nil {
			return err
		}
		return r.writePlain("✓ Address book '%s' created\n", name)
	})
}

// BookList prints every book with its contact count in creation order.
func (r *Runner) BookList(ctx context.Context, cmd *cli.Command) error {
	return r.withManager(cmd, false, func(m *addressbook.Manager) error {
		summaries := make([]bookSummary, 0, m.Len())
		for _, b := range m.Books() {
			summaries = append(summaries, bookSummary{Name: b.Name(), Contacts: b.Len()})
		}

		if cmd.Bool("json") {
			return r.writeJSON(summaries, true)
		}
		if len(summaries) == 0 {
			return r.writePlain("No address books found.\n")
		}

		rows := make([][]string, len(summaries))
		for i, s := range summaries {
			rows[i] = []string{s.Name, strconv.Itoa(s.Contacts)}
		}
		return r.writeTable([]string{"Book", "Contacts"}, rows, []columnAlignment{alignLeft, alignRight})
	})
}

// BookRemove destroys a book and its contacts.
func (r *Runner) BookRemove(ctx context.Context, cmd *cli.Command) error {
	name, err := requireArg(cmd, "name")
	if err != nil {
		return err
	}
	return r.withManager(cmd, true, func(m *addressbook.Manager) error {
		if err := m.Remove(name); err != nil {
			return err
		}
		return r.writePlain("✓ Address book '%s' removed\n", name)
	})
}

// ContactAdd validates the field flags and adds the contact to a book.
func (r *Runner) ContactAdd(ctx context.Context, cmd *cli.Command) error {
	name, err := requireArg(cmd, "book")
	if err != nil {
		return err
	}
	contact, err := models.NewContact(contactFromFlags(cmd))
	if err != nil {
		return err
	}

	return r.withManager(cmd, true, func(m *addressbook.Manager) error {
		book, err := m.Select(name)
		if err != nil {
			return err
		}
		if err := book.Add(contact); err != nil {
			return err
		}
		return r.writePlain("✓ Contact %s added to '%s'\n", contact.FirstName, name)
	})
}

// ContactEdit applies the given field flags to an existing contact. Omitted flags keep their values.
func (r *Runner) ContactEdit(ctx context.Context, cmd *cli.Command) error {
	name, err := requireArg(cmd, "book")
	if err != nil {
		return err
	}
	firstName, err := requireArg(cmd, "contact")
	if err != nil {
		return err
	}

	changes := contactFromFlags(cmd)

	return r.withManager(cmd, true, func(m *addressbook.Manager) error {
		book, err := m.Select(name)
		if err != nil {
			return err
		}
		updated, err := book.Edit(firstName, changes)
		if err != nil {
			return err
		}
		return r.writePlain("✓ Contact %s updated\n", updated.FirstName)
	})
}

// ContactDelete removes a contact by first name.
func (r *Runner) ContactDelete(ctx context.Context, cmd *cli.Command) error {
	name, err := requireArg(cmd, "book")
	if err != nil {
		return err
	}
	firstName, err := requireArg(cmd, "contact")
	if err != nil {
		return err
	}

	return r.withManager(cmd, true, func(m *addressbook.Manager) error {
		book, err := m.Select(name)
		if err != nil {
			return err
		}
		if err := book.Delete(firstName); err != nil {
			return err
		}
		return r.writePlain("✓ Contact %s deleted\n", firstName)
	})
}

// ContactList prints a book's contacts, sorted by --sort and narrowed by --city or --state.
func (r *Runner) ContactList(ctx context.Context, cmd *cli.Command) error {
	name, err := requireArg(cmd, "book")
	if err != nil {
		return err
	}
	field, value, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}

	return r.withManager(cmd, false, func(m *addressbook.Manager) error {
		book, err := m.Select(name)
		if err != nil {
			return err
		}
		contacts, err := listContacts(book, addressbook.SortKey(cmd.String("sort")), field, value)
		if err != nil {
			return err
		}

		if cmd.Bool("json") {
			return r.writeJSON(contacts, true)
		}
		if len(contacts) == 0 {
			return r.writePlain("No contacts found.\n")
		}
		if err := r.writeTable(contactHeaders, contactRows(contacts), nil); err != nil {
			return err
		}
		if field != "" {
			return r.writePlainln("Total contacts in '%s': %d", value, len(contacts))
		}
		return nil
	})
}

// listContacts orders a book by key (insertion order when empty) and keeps the contacts whose
// field equals value when field is set.
func listContacts(book *addressbook.AddressBook, key addressbook.SortKey, field models.Field, value string) ([]models.Contact, error) {
	contacts := book.Contacts()
	if key != "" {
		sorted, err := book.SortBy(key)
		if err != nil {
			return nil, err
		}
		contacts = sorted
	}
	if field == "" {
		return contacts, nil
	}

	seq, err := book.FilterBy(field, value)
	if err != nil {
		return nil, err
	}
	keep := make(map[string]bool)
	for c := range seq {
		keep[c.Key()] = true
	}

	filtered := []models.Contact{}
	for _, c := range contacts {
		if keep[c.Key()] {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// ContactShow prints every field of one contact.
func (r *Runner) ContactShow(ctx context.Context, cmd *cli.Command) error {
	name, err := requireArg(cmd, "book")
	if err != nil {
		return err
	}
	firstName, err := requireArg(cmd, "contact")
	if err != nil {
		return err
	}

	return r.withManager(cmd, false, func(m *addressbook.Manager) error {
		book, err := m.Select(name)
		if err != nil {
			return err
		}
		contact, err := book.Get(firstName)
		if err != nil {
			return err
		}
		r.writePlainHeader(contact.FullName())
		return r.writePlain("%s\n", contact)
	})
}

// ContactCount prints how many contacts share each city or state.
func (r *Runner) ContactCount(ctx context.Context, cmd *cli.Command) error {
	name, err := requireArg(cmd, "book")
	if err != nil {
		return err
	}
	field, ok := models.ParseField(cmd.String("by"))
	if !ok {
		return fmt.Errorf("%w: --by %q", shared.ErrInvalidFlag, cmd.String("by"))
	}

	return r.withManager(cmd, false, func(m *addressbook.Manager) error {
		book, err := m.Select(name)
		if err != nil {
			return err
		}
		groups, err := book.CountBy(field)
		if err != nil {
			return err
		}
		if len(groups) == 0 {
			return r.writePlain("No contacts found.\n")
		}

		rows := make([][]string, len(groups))
		for i, g := range groups {
			rows[i] = []string{g.Value, strconv.Itoa(g.Count)}
		}
		return r.writeTable([]string{field.Label(), "Contacts"}, rows, []columnAlignment{alignLeft, alignRight})
	})
}

// Search finds contacts in every book whose city or state matches.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	field, value, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}
	if field == "" {
		return fmt.Errorf("%w: --city or --state is required", shared.ErrMissingArgument)
	}

	return r.withManager(cmd, false, func(m *addressbook.Manager) error {
		matches, err := m.SearchAcross(field, value)
		if err != nil {
			return err
		}

		results := make([]searchResult, len(matches))
		for i, match := range matches {
			results[i] = searchResult{Book: match.Book, Contact: match.Contact}
		}

		if cmd.Bool("json") {
			return r.writeJSON(results, true)
		}
		if len(results) == 0 {
			return r.writePlain("No contacts found.\n")
		}

		rows := make([][]string, len(results))
		for i, res := range results {
			c := res.Contact
			rows[i] = []string{res.Book, c.FullName(), c.City, c.State, c.PhoneNumber}
		}
		return r.writeTable([]string{"Book", "Name", "City", "State", "Phone"}, rows, nil)
	})
}
