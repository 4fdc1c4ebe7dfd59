package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/abook/internal/addressbook"
	"github.com/desertthunder/abook/internal/models"
)

var (
	_ list.Item = bookItem{}
	_ list.Item = contactItem{}
)

// bookItem wraps an [addressbook.AddressBook] to implement [list.Item].
type bookItem struct {
	name  string
	count int
}

func newBookItem(b *addressbook.AddressBook) bookItem {
	return bookItem{name: b.Name(), count: b.Len()}
}

func (i bookItem) FilterValue() string { return i.name }
func (i bookItem) Title() string       { return i.name }
func (i bookItem) Description() string {
	if i.count == 1 {
		return "1 contact"
	}
	return fmt.Sprintf("%d contacts", i.count)
}

// contactItem wraps [models.Contact] to implement [list.Item].
type contactItem struct {
	contact models.Contact
}

func (i contactItem) FilterValue() string {
	return strings.Join([]string{i.contact.FullName(), i.contact.City, i.contact.State}, " ")
}

func (i contactItem) Title() string { return i.contact.FullName() }

func (i contactItem) Description() string {
	desc := i.contact.City
	if i.contact.State != "" {
		desc = fmt.Sprintf("%s, %s", desc, i.contact.State)
	}
	if i.contact.ZipCode != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.contact.ZipCode)
	}
	return desc
}
