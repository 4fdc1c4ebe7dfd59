// Package ui implements a read-only terminal browser for address books using bubbletea's Elm architecture.
//
// The browser has three views:
//  1. [BookListView] : every address book with its contact count
//  2. [ContactListView] : the contacts of one book, in insertion order or sorted by name, city, state or zip
//  3. [DetailView] : every field of one contact
//
// Lists come from charmbracelet/bubbles/list, so "/" filters the current view.
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, s, q) with contextual help via charmbracelet/bubbles/help.
package ui
