package addressbook

// EventKind names a mutation recorded in a [Journal].
type EventKind string

const (
	EventBookCreated    EventKind = "book_created"
	EventBookRemoved    EventKind = "book_removed"
	EventContactAdded   EventKind = "contact_added"
	EventContactUpdated EventKind = "contact_updated"
	EventContactRenamed EventKind = "contact_renamed"
	EventContactDeleted EventKind = "contact_deleted"
	EventContactPut     EventKind = "contact_put"
)

// Event describes one successful mutation.
type Event struct {
	Kind    EventKind
	Book    string
	Contact string
	// Previous holds the old first name of a renamed contact.
	Previous string
}

// Journal collects events until drained.
type Journal struct {
	events []Event
}

func (j *Journal) record(e Event) {
	if j == nil {
		return
	}
	j.events = append(j.events, e)
}

// Drain returns the recorded events in order and empties the journal.
func (j *Journal) Drain() []Event {
	if j == nil {
		return nil
	}
	events := j.events
	j.events = nil
	return events
}

// Len reports the number of undrained events.
func (j *Journal) Len() int {
	if j == nil {
		return 0
	}
	return len(j.events)
}
