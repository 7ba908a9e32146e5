// Package transport defines the messaging boundary: how the bot sends text
// and selectable options to a chat, and how inbound chat activity reaches the
// dispatcher.
package transport

import "context"

// Option is one selectable choice presented to a chat.
type Option struct {
	Label string
	Value string
}

// Messenger is the outbound half of the messaging boundary. Implementations
// are assumed to be simple request/response clients; the bot never sees
// transport details.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string) error
	PresentOptions(ctx context.Context, chatID int64, prompt string, options []Option) error
}

// InboundHandler is the inbound half: the dispatcher implements it and
// transports deliver user activity through it. Calls must not block on flow
// logic; the dispatcher enqueues and returns.
type InboundHandler interface {
	HandleCommand(chatID, userID int64, isPrivate bool, name, args string)
	HandleSelection(chatID, userID int64, isPrivate bool, value string)
	HandleText(chatID, userID int64, isPrivate bool, text string)
}

// SelectOptions adapts a list of plain values into options whose label and
// value coincide, the common case for person and column choices.
func SelectOptions(values []string) []Option {
	opts := make([]Option, len(values))
	for i, v := range values {
		opts[i] = Option{Label: v, Value: v}
	}
	return opts
}
