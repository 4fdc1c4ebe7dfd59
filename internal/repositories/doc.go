// Package repositories implements SQLite persistence for address books and their contacts.
//
// Key Implementations:
//   - [BookRepository] : one row per address book, unique by name
//   - [ContactRepository] : one row per contact, unique by first name within its book
//   - [Store] : loads and saves a whole [addressbook.Manager] in one transaction
//
// Sequence numbers record creation and insertion order independent of UUIDs and timestamps.
// The [NextSequence] function increments per-table sequence counters in dedicated sequence tables.
// Every repository accepts a [DBTX], so the same code runs against a [sql.DB] or inside a [sql.Tx].
package repositories
