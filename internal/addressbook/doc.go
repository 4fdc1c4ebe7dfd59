// Package addressbook implements the in-memory contact repository: named address books of
// contacts keyed by first name, and the [Manager] that owns them.
//
// # Identity
//
// A contact's first name is its identity key. An [AddressBook] never holds two contacts with the
// same first name, and its keys always equal the first name of the mapped contact. Renaming a
// contact through [AddressBook.Edit] removes the old key and inserts the new one, so the renamed
// contact moves to the end of the book's insertion order.
//
// # Ordering
//
// Books iterate in creation order and contacts in insertion order. [AddressBook.SortBy] is a
// stable, case-insensitive sort over one of the keys name, city, state or zip.
//
// # Events
//
// The core never logs. Every successful mutation appends an [Event] to the owning manager's
// [Journal]; callers drain the journal with [Manager.Drain] and decide how to report it.
package addressbook
