package bot

import (
	"context"

	"github.com/google/uuid"
)

// sessionKey addresses the single in-flight flow of a chat/user pair.
type sessionKey struct {
	ChatID int64
	UserID int64
}

// flow is one guided multi-step conversation. Each implementation is a small
// finite-state machine: handleSelection and handleText validate the input
// against the current step, advance, and report whether the flow is done.
// Input that does not match the current step — a stale selection from an
// already-exited prompt, or free text where a selection is expected — is
// ignored without ending the flow.
type flow interface {
	name() string
	handleSelection(ctx context.Context, value string) (done bool, err error)
	handleText(ctx context.Context, text string) (done bool, err error)
}

// session pins a chat/user pair to exactly one active flow. The id ties the
// flow's log lines together.
type session struct {
	id   string
	key  sessionKey
	flow flow
}

func newSession(key sessionKey, f flow) *session {
	return &session{
		id:   uuid.NewString(),
		key:  key,
		flow: f,
	}
}

// matchesOption reports whether value is one of the currently offered
// options. Selections from expired prompts fail this check and are dropped.
func matchesOption(options []string, value string) bool {
	for _, opt := range options {
		if opt == value {
			return true
		}
	}
	return false
}
