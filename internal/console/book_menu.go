package console

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/desertthunder/abook/internal/addressbook"
	"github.com/desertthunder/abook/internal/formatter"
	"github.com/desertthunder/abook/internal/models"
	"github.com/desertthunder/abook/internal/shared"
)

var bookMenuItems = []string{
	"Add Contact",
	"Add Multiple Contacts",
	"Display Contacts",
	"Edit Contact",
	"Delete Contact",
	"View Contacts by City",
	"View Contacts by State",
	"Sort Contacts by Name",
	"Sort Contacts by City",
	"Sort Contacts by State",
	"Sort Contacts by Zip Code",
	"Load Contacts from input file",
	"Save Contacts to JSON file",
	"Save Contacts to CSV file",
	"Exit",
}

var contactPrompts = []struct {
	field  models.Field
	prompt string
}{
	{models.FieldFirstName, "Enter first name (Eg : Girish): "},
	{models.FieldLastName, "Enter last name (Eg : Nekar): "},
	{models.FieldAddress, "Enter address: "},
	{models.FieldCity, "Enter city: "},
	{models.FieldState, "Enter state: "},
	{models.FieldZipCode, "Enter zip code: "},
	{models.FieldPhone, "Enter phone number (Eg : 87 4567890654): "},
	{models.FieldEmail, "Enter email (Eg : gmnekar45@gmail.com): "},
}

func (c *Console) bookMenu(book *addressbook.AddressBook) error {
	prompt := fmt.Sprintf("Choose an option (1-%d): ", len(bookMenuItems))
	for {
		c.printf("\nAddress Book Menu:\n")
		for i, item := range bookMenuItems {
			c.printf("%d. %s\n", i+1, item)
		}

		choice, err := c.readLine(prompt)
		if err != nil {
			return err
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = c.addContact(book)
		case "2":
			err = c.addMultiple(book)
		case "3":
			c.display(book.Contacts())
		case "4":
			err = c.editContact(book)
		case "5":
			err = c.deleteContact(book)
		case "6":
			err = c.viewBy(book, models.FieldCity)
		case "7":
			err = c.viewBy(book, models.FieldState)
		case "8":
			c.sortBy(book, addressbook.SortByName)
		case "9":
			c.sortBy(book, addressbook.SortByCity)
		case "10":
			c.sortBy(book, addressbook.SortByState)
		case "11":
			c.sortBy(book, addressbook.SortByZip)
		case "12":
			err = c.loadFlat(book)
		case "13":
			err = c.saveJSON(book)
		case "14":
			err = c.saveCSV(book)
		case "15":
			c.printf("Exiting Address Book.\n")
			return nil
		default:
			c.printf("Invalid choice. Please select a valid option.\n")
		}
		c.flush()
		if err != nil {
			return err
		}
	}
}

func (c *Console) addContact(book *addressbook.AddressBook) error {
	var raw models.Contact
	for _, p := range contactPrompts {
		v, err := c.ask(p.field, p.prompt)
		if errors.Is(err, shared.ErrTooManyAttempts) {
			c.printf("Too many invalid attempts. Contact not added.\n")
			return nil
		}
		if err != nil {
			return err
		}
		raw = raw.With(p.field, v)
	}

	contact, err := models.NewContact(raw)
	if err != nil {
		c.printf("%v\n", err)
		return nil
	}

	if err := book.Add(contact); err != nil {
		if errors.Is(err, shared.ErrDuplicateIdentity) {
			c.printf("A contact with this first name already exists.\n")
			return nil
		}
		return err
	}
	c.printf("Contact added successfully.\n")
	return nil
}

func (c *Console) addMultiple(book *addressbook.AddressBook) error {
	for {
		c.printf("\nAdding a new contact.\n")
		if err := c.addContact(book); err != nil {
			return err
		}
		c.flush()

		more, err := c.readLine("Do you want to add another contact? (yes/no): ")
		if err != nil {
			return err
		}
		if strings.ToLower(strings.TrimSpace(more)) != "yes" {
			return nil
		}
	}
}

func (c *Console) display(contacts []models.Contact) {
	if len(contacts) == 0 {
		c.printf("Address Book is empty.\n")
		return
	}
	c.out.Write(formatter.ExportToText(contacts))
}

func (c *Console) editContact(book *addressbook.AddressBook) error {
	name, err := c.readLine("Enter the first name of the contact you want to edit: ")
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)

	current, err := book.Get(name)
	if err != nil {
		c.printf("Contact not found.\n")
		return nil
	}

	c.printf("\nCurrent details of the contact:\n%s\n", current)
	c.printf("\nEnter new details (leave blank to keep current value):\n")

	var changes models.Contact
	for _, f := range models.Fields {
		prompt := fmt.Sprintf("New %s (Current: %s): ", f.Label(), current.Get(f))
		v, err := c.askOptional(f, prompt)
		if errors.Is(err, shared.ErrTooManyAttempts) {
			c.printf("Too many invalid attempts. Contact not changed.\n")
			return nil
		}
		if err != nil {
			return err
		}
		changes = changes.With(f, v)
	}

	updated, err := book.Edit(name, changes)
	switch {
	case errors.Is(err, shared.ErrDuplicateIdentity):
		c.printf("A contact with the first name '%s' already exists. Contact not changed.\n", changes.FirstName)
	case errors.Is(err, shared.ErrValidation):
		c.printf("%v\n", err)
	case err != nil:
		return err
	default:
		c.printf("Contact %s updated successfully.\n", updated.Key())
	}
	return nil
}

func (c *Console) deleteContact(book *addressbook.AddressBook) error {
	name, err := c.readLine("Enter the first name of the contact you want to delete: ")
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)

	if err := book.Delete(name); err != nil {
		c.printf("Contact not found.\n")
		return nil
	}
	c.printf("Contact %s deleted successfully.\n", name)
	return nil
}

func (c *Console) viewBy(book *addressbook.AddressBook, field models.Field) error {
	kind := strings.ToLower(field.Label())
	value, err := c.ask(field, fmt.Sprintf("Enter %s to view contacts: ", kind))
	if errors.Is(err, shared.ErrTooManyAttempts) {
		c.printf("Too many invalid attempts.\n")
		return nil
	}
	if err != nil {
		return err
	}

	seq, err := book.FilterBy(field, value)
	if err != nil {
		return err
	}
	found := slices.Collect(seq)
	if len(found) == 0 {
		c.printf("No contacts found in %s '%s'.\n", kind, value)
		return nil
	}

	c.printf("\nContacts in %s '%s':\n", kind, value)
	c.out.Write(formatter.ExportToText(found))
	c.printf("\nTotal contacts in '%s': %d\n", value, len(found))
	return nil
}

func (c *Console) sortBy(book *addressbook.AddressBook, key addressbook.SortKey) {
	if book.Len() == 0 {
		c.printf("Address Book is empty.\n")
		return
	}
	sorted, err := book.SortBy(key)
	if err != nil {
		c.printf("%v\n", err)
		return
	}
	c.display(sorted)
}

func (c *Console) loadFlat(book *addressbook.AddressBook) error {
	path, err := c.pathPrompt("Enter the path of the file to load", c.opts.ImportPath)
	if err != nil {
		return err
	}

	n, err := formatter.LoadFlatFile(book, path)
	switch {
	case errors.Is(err, shared.ErrFileNotFound):
		c.printf("%s not found. No contacts loaded.\n", path)
		c.logger.Error("flat file not found", "path", path)
	case err != nil:
		c.printf("An error occurred while loading contacts: %v\n", err)
		c.logger.Error("failed to load contacts", "path", path, "error", err)
	default:
		c.printf("Contacts loaded from %s.\n", path)
		c.logger.Info("contacts loaded", "path", path, "records", n)
	}
	return nil
}

func (c *Console) saveJSON(book *addressbook.AddressBook) error {
	path, err := c.pathPrompt("Enter the path where the contacts should be saved", c.opts.ExportPath)
	if err != nil {
		return err
	}
	_, err = formatter.WriteJSONExport(book, path)
	c.reportSave(path, err)
	return nil
}

func (c *Console) saveCSV(book *addressbook.AddressBook) error {
	path, err := c.pathPrompt("Enter the path of the CSV file", c.opts.CSVPath)
	if err != nil {
		return err
	}
	_, err = formatter.WriteCSVExport(book, path)
	c.reportSave(path, err)
	return nil
}

func (c *Console) reportSave(path string, err error) {
	if err != nil {
		c.printf("An error occurred while saving contacts: %v\n", err)
		c.logger.Error("failed to save contacts", "path", path, "error", err)
		return
	}
	c.printf("All contacts have been saved to %s.\n", path)
	c.logger.Info("contacts saved", "path", path)
}

func (c *Console) pathPrompt(label, fallback string) (string, error) {
	path, err := c.readLine(fmt.Sprintf("%s (default: '%s'): ", label, fallback))
	if err != nil {
		return "", err
	}
	if path = strings.TrimSpace(path); path == "" {
		path = fallback
	}
	return path, nil
}
