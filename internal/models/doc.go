// Package models defines the contact entity, its field validation rules and the persisted wrappers used by the SQLite store.
//
// The package contains two categories of types:
//
// 1. Domain values: plain structs passed by value through the address book core
//   - [Contact] : One person's details, identified by first name
//   - [Rule] : A named validation pattern applied to one field
//
// 2. Persistent Entities: Database-backed models with ids, sequences and timestamps
//   - [PersistedBook] : A stored address book
//   - [PersistedContact] : A stored contact row belonging to one book
//
// All persistent entities implement the [Model] interface providing ID, timestamps and validation.
// The [Repository] interface defines standard CRUD operations for database access.
package models
