// Package console implements the interactive line-oriented shell over an [addressbook.Manager].
//
// The shell reproduces the two menus of the address book program: the manager menu
// (create, select by number, search across books) and the per-book menu (add, edit, delete,
// view, sort, load and save). Every prompt that validates input reprompts at most
// [Options.MaxAttempts] times. After each action the manager's journal is drained into the logger.
package console
