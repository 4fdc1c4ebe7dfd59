package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/abook/internal/addressbook"
	"github.com/desertthunder/abook/internal/models"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	BookListView ViewState = iota
	ContactListView
	DetailView
)

// sortCycle is the order the sort key advances through; the empty key means insertion order.
var sortCycle = append([]addressbook.SortKey{""}, addressbook.SortKeys...)

// Model represents the TUI application state.
type Model struct {
	view        ViewState
	manager     *addressbook.Manager
	book        *addressbook.AddressBook
	sortKey     addressbook.SortKey
	selected    models.Contact
	bookList    list.Model
	contactList list.Model
	width       int
	height      int
	err         error
	help        help.Model
	keys        keyMap
}

// NewModel creates a browser over the books of m.
func NewModel(m *addressbook.Manager) *Model {
	items := make([]list.Item, 0, m.Len())
	for _, b := range m.Books() {
		items = append(items, newBookItem(b))
	}

	bookList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	bookList.Title = "Address Books"
	contactList := list.New(nil, list.NewDefaultDelegate(), 0, 0)

	return &Model{
		view:        BookListView,
		manager:     m,
		bookList:    bookList,
		contactList: contactList,
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

// ViewState returns the active view.
func (m *Model) ViewState() ViewState { return m.view }

// SortKey returns the sort key of the contact list; empty means insertion order.
func (m *Model) SortKey() addressbook.SortKey { return m.sortKey }

// Init implements [tea.Model]. Everything is already in memory.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bookList.SetSize(msg.Width-4, msg.Height-6)
		m.contactList.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case BookListView:
			return m.handleBookListKeys(msg)
		case ContactListView:
			return m.handleContactListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		}
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case BookListView:
		return m.renderBookList()
	case ContactListView:
		return m.renderContactList()
	case DetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

func (m *Model) handleBookListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.bookList.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.enter):
			if item, ok := m.bookList.SelectedItem().(bookItem); ok {
				return m, m.openBook(item.name)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.bookList, cmd = m.bookList.Update(msg)
	return m, cmd
}

func (m *Model) handleContactListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := m.contactList.FilterState()
	toList := state == list.Filtering || state == list.FilterApplied && key.Matches(msg, m.keys.back)

	if !toList {
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.back):
			m.view = BookListView
			m.book = nil
			m.refreshBooks()
			return m, nil
		case key.Matches(msg, m.keys.sort):
			m.sortKey = nextSortKey(m.sortKey)
			return m, m.refreshContacts()
		case key.Matches(msg, m.keys.enter):
			if item, ok := m.contactList.SelectedItem().(contactItem); ok {
				m.selected = item.contact
				m.view = DetailView
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.contactList, cmd = m.contactList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = ContactListView
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case BookListView:
		m.bookList, cmd = m.bookList.Update(msg)
	case ContactListView:
		m.contactList, cmd = m.contactList.Update(msg)
	}
	return m, cmd
}

func (m *Model) openBook(name string) tea.Cmd {
	book, err := m.manager.Select(name)
	if err != nil {
		m.err = err
		return nil
	}
	m.book = book
	m.sortKey = ""
	m.view = ContactListView
	m.contactList.ResetFilter()
	m.contactList.Select(0)
	return m.refreshContacts()
}

func (m *Model) refreshBooks() {
	items := make([]list.Item, 0, m.manager.Len())
	for _, b := range m.manager.Books() {
		items = append(items, newBookItem(b))
	}
	m.bookList.SetItems(items)
}

func (m *Model) refreshContacts() tea.Cmd {
	contacts := m.book.Contacts()
	if m.sortKey != "" {
		sorted, err := m.book.SortBy(m.sortKey)
		if err != nil {
			m.err = err
			return nil
		}
		contacts = sorted
	}

	items := make([]list.Item, len(contacts))
	for i, c := range contacts {
		items[i] = contactItem{contact: c}
	}
	m.contactList.Title = fmt.Sprintf("%s (%s)", m.book.Name(), sortLabel(m.sortKey))
	return m.contactList.SetItems(items)
}

func nextSortKey(k addressbook.SortKey) addressbook.SortKey {
	for i, s := range sortCycle {
		if s == k {
			return sortCycle[(i+1)%len(sortCycle)]
		}
	}
	return sortCycle[0]
}

func sortLabel(k addressbook.SortKey) string {
	if k == "" {
		return "insertion order"
	}
	return "by " + string(k)
}

func (m *Model) renderBookList() string {
	if len(m.bookList.Items()) == 0 {
		empty := styles.help.Render("No address books yet. Create one with `abook book create <name>`.")
		return fmt.Sprintf("%s\n\n%s", styles.title.Render("Address Books"), empty)
	}
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.quit})
	return fmt.Sprintf("%s\n\n%s", m.bookList.View(), helpView)
}

func (m *Model) renderContactList() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.sort, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n\n%s", m.contactList.View(), helpView)
}

func (m *Model) renderDetail() string {
	var b strings.Builder
	b.WriteString(styles.title.Render(m.selected.FullName()))
	b.WriteString("\n")
	for _, f := range models.Fields {
		fmt.Fprintf(&b, "%s %s\n", styles.label.Render(f.Label()+":"), m.selected.Get(f))
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n%s", b.String(), helpView)
}
