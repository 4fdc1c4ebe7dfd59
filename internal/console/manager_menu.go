package console

import (
	"errors"
	"strconv"
	"strings"

	"github.com/desertthunder/abook/internal/models"
	"github.com/desertthunder/abook/internal/shared"
)

func (c *Console) managerMenu() error {
	for {
		c.printf("\nAddress Book Manager Menu:\n")
		c.printf("1. Create Address Book\n")
		c.printf("2. Select Address Book\n")
		c.printf("3. Search Contacts\n")
		c.printf("4. Exit\n")

		choice, err := c.readLine("Enter your choice: ")
		if err != nil {
			return err
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = c.createBook()
		case "2":
			err = c.selectBook()
		case "3":
			err = c.search()
		case "4":
			return nil
		default:
			c.printf("Invalid choice. Please try again.\n")
		}
		c.flush()
		if err != nil {
			return err
		}
	}
}

func (c *Console) createBook() error {
	name, err := c.readLine("Enter the name of the new Address Book: ")
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)

	_, err = c.manager.Create(name)
	switch {
	case errors.Is(err, shared.ErrDuplicateCollection):
		c.printf("Address Book already exists.\n")
	case errors.Is(err, shared.ErrInvalidArgument):
		c.printf("Address Book name cannot be empty.\n")
	case err != nil:
		return err
	default:
		c.printf("Address Book '%s' created successfully.\n", name)
	}
	return nil
}

func (c *Console) selectBook() error {
	names := c.manager.Names()
	if len(names) == 0 {
		c.printf("No Address Books available. Please create one first.\n")
		return nil
	}

	c.printf("\nAvailable Address Books:\n")
	for i, name := range names {
		c.printf("%d. %s\n", i+1, name)
	}

	choice, err := c.readLine("Enter the number of the Address Book you want to select (or 'q' to quit): ")
	if err != nil {
		return err
	}
	choice = strings.TrimSpace(choice)
	if strings.EqualFold(choice, "q") {
		return nil
	}

	n, err := strconv.Atoi(choice)
	if err != nil {
		c.printf("Invalid input. Please enter a number.\n")
		return nil
	}
	if n < 1 || n > len(names) {
		c.printf("Invalid choice.\n")
		return nil
	}

	book, err := c.manager.Select(names[n-1])
	if err != nil {
		return err
	}
	c.printf("Selected Address Book: %s\n", book.Name())
	return c.bookMenu(book)
}

func (c *Console) search() error {
	kind, err := c.readLine("Search by (1) City or (2) State? Enter 1 or 2: ")
	if err != nil {
		return err
	}

	var field models.Field
	switch strings.TrimSpace(kind) {
	case "1":
		field = models.FieldCity
	case "2":
		field = models.FieldState
	default:
		c.printf("Invalid choice.\n")
		return nil
	}

	term, err := c.readLine("Enter the search term: ")
	if err != nil {
		return err
	}

	matches, err := c.manager.SearchAcross(field, strings.TrimSpace(term))
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		c.printf("No contacts found.\n")
		return nil
	}

	c.printf("\nSearch Results:\n")
	for _, m := range matches {
		c.printf("\nAddress Book: %s\n%s\n", m.Book, m.Contact)
	}
	return nil
}
