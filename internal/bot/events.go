// Package bot holds the conversational core: the event dispatcher, the
// per-chat sessions, and the guided flows that walk a user from selecting a
// person to committing values into the tracker.
//
// All flow and session logic is confined to the dispatcher goroutine; the
// scheduler and transports only enqueue events. A session lives until its
// flow completes, the user cancels, a new flow replaces it, or the process
// exits — there is deliberately no inactivity timeout.
package bot

import "github.com/julianstephens/fitbot/internal/constants"

// EventKind discriminates the events the dispatcher consumes.
type EventKind string

const (
	EventCommand   EventKind = "command"
	EventSelection EventKind = "selection"
	EventText      EventKind = "text"
	EventReminder  EventKind = "reminder"
)

// Event is one unit of work on the dispatch queue.
type Event struct {
	Kind      EventKind
	ChatID    int64
	UserID    int64
	IsPrivate bool

	// Command events
	Command string
	Args    string

	// Selection and text events
	Text string

	// Reminder events
	Reminder constants.ReminderKind
}
