package bot

import (
	"context"

	"github.com/julianstephens/fitbot/internal/auth"
	"github.com/julianstephens/fitbot/internal/constants"
	apperrors "github.com/julianstephens/fitbot/internal/errors"
	"github.com/julianstephens/fitbot/internal/logger"
	"github.com/julianstephens/fitbot/internal/reminder"
	"github.com/julianstephens/fitbot/internal/tracker"
	"github.com/julianstephens/fitbot/internal/transport"
	"github.com/julianstephens/fitbot/internal/utils"
)

const deniedMessage = "You are not allowed to use this bot."

// Bot routes inbound events to commands and flow sessions. A single Run
// goroutine consumes the queue, so sessions need no locking; transports and
// the reminder scheduler only enqueue.
type Bot struct {
	service   *tracker.Service
	gate      auth.Gate
	messenger transport.Messenger
	scheduler *reminder.Scheduler
	timezone  string

	events   chan Event
	sessions map[sessionKey]*session
}

func New(service *tracker.Service, gate auth.Gate, messenger transport.Messenger, timezone string) *Bot {
	return &Bot{
		service:   service,
		gate:      gate,
		messenger: messenger,
		timezone:  timezone,
		events:    make(chan Event, 64),
		sessions:  make(map[sessionKey]*session),
	}
}

// SetScheduler wires the reminder scheduler after construction; the scheduler
// needs the bot's queue as its sink, so the two are built in sequence.
func (b *Bot) SetScheduler(s *reminder.Scheduler) { b.scheduler = s }

// SetMessenger wires the outbound transport after construction, for
// transports that themselves deliver inbound events through the bot.
func (b *Bot) SetMessenger(m transport.Messenger) { b.messenger = m }

// Enqueue posts an event without blocking. A full queue drops the event; the
// dispatcher falling 64 events behind means something is wrong upstream.
func (b *Bot) Enqueue(ev Event) {
	select {
	case b.events <- ev:
	default:
		logger.Warn("Dispatch queue full, dropping event", "kind", ev.Kind, "chat", ev.ChatID)
	}
}

// HandleCommand implements transport.InboundHandler.
func (b *Bot) HandleCommand(chatID, userID int64, isPrivate bool, name, args string) {
	b.Enqueue(Event{Kind: EventCommand, ChatID: chatID, UserID: userID, IsPrivate: isPrivate, Command: name, Args: args})
}

// HandleSelection implements transport.InboundHandler.
func (b *Bot) HandleSelection(chatID, userID int64, isPrivate bool, value string) {
	b.Enqueue(Event{Kind: EventSelection, ChatID: chatID, UserID: userID, IsPrivate: isPrivate, Text: value})
}

// HandleText implements transport.InboundHandler.
func (b *Bot) HandleText(chatID, userID int64, isPrivate bool, text string) {
	b.Enqueue(Event{Kind: EventText, ChatID: chatID, UserID: userID, IsPrivate: isPrivate, Text: text})
}

// EnqueueReminder is the scheduler's sink: fired jobs become queue events and
// are sent from the dispatch goroutine, never from the timer goroutine.
func (b *Bot) EnqueueReminder(chatID int64, kind constants.ReminderKind) {
	b.Enqueue(Event{Kind: EventReminder, ChatID: chatID, Reminder: kind})
}

// Run consumes the event queue until the context is cancelled. Events are
// handled strictly one at a time in arrival order.
func (b *Bot) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-b.events:
			b.handleEvent(ctx, ev)
		}
	}
}

func (b *Bot) handleEvent(ctx context.Context, ev Event) {
	switch ev.Kind {
	case EventReminder:
		b.deliverReminder(ctx, ev)
	case EventCommand:
		b.handleCommand(ctx, ev)
	case EventSelection, EventText:
		b.handleSessionInput(ctx, ev)
	}
}

func (b *Bot) deliverReminder(ctx context.Context, ev Event) {
	text := "Don't forget to log today's fitness data! Use /update or /batch."
	if ev.Reminder == constants.ReminderHourly {
		text = "Hourly check-in: anything to log? Use /update."
	}
	// Delivery failure is logged only; the schedule continues regardless.
	if err := b.messenger.SendText(ctx, ev.ChatID, text); err != nil {
		logger.Warn("Reminder delivery failed", "chat", ev.ChatID, "kind", ev.Reminder, "error", err)
	}
}

func (b *Bot) handleCommand(ctx context.Context, ev Event) {
	if !b.gate.IsAllowed(ev.ChatID, ev.UserID, ev.IsPrivate) {
		logger.Info("Command denied", "chat", ev.ChatID, "user", ev.UserID, "command", ev.Command)
		b.send(ctx, ev.ChatID, deniedMessage)
		return
	}

	key := sessionKey{ChatID: ev.ChatID, UserID: ev.UserID}

	var err error
	switch ev.Command {
	case "start":
		err = b.send(ctx, ev.ChatID, welcomeText)
	case "help":
		err = b.send(ctx, ev.ChatID, helpText)
	case "addnewperson":
		err = b.cmdAddPerson(ctx, ev)
	case "viewtoday":
		err = b.cmdViewToday(ctx, ev)
	case "addcolumns":
		err = b.cmdAddColumns(ctx, ev)
	case "weekly":
		err = b.cmdWeekly(ctx, ev)
	case "viewgoals":
		err = b.cmdViewGoals(ctx, ev)
	case "remindon":
		err = b.cmdRemindOn(ctx, ev)
	case "remindoff":
		err = b.cmdRemindOff(ctx, ev)
	case "reminders":
		err = b.cmdReminders(ctx, ev)
	case "cancel":
		err = b.cmdCancel(ctx, key)
	case "update", "batch", "addgoal", "editgoal":
		err = b.enterFlow(ctx, key, ev.Command)
	default:
		err = b.send(ctx, ev.ChatID, "Unknown command. Type /help to see the list of available commands.")
	}

	if err != nil {
		logger.Error("Command failed", "command", ev.Command, "chat", ev.ChatID, "error", err)
		b.send(ctx, ev.ChatID, apperrors.Format(err))
	}
}

// enterFlow starts a guided flow, silently replacing any session the pair
// already has — flows never stack.
func (b *Bot) enterFlow(ctx context.Context, key sessionKey, command string) error {
	delete(b.sessions, key)

	var f flow
	var err error
	switch command {
	case "update":
		f, err = b.startUpdateFlow(ctx, key.ChatID)
	case "batch":
		f, err = b.startBatchFlow(ctx, key.ChatID)
	case "addgoal":
		f, err = b.startGoalAddFlow(ctx, key.ChatID)
	case "editgoal":
		f, err = b.startGoalEditFlow(ctx, key.ChatID)
	}
	if err != nil {
		return err
	}
	if f == nil {
		// Entry step already reported why no flow could start.
		return nil
	}

	s := newSession(key, f)
	b.sessions[key] = s
	logger.Debug("Flow started", "flow", f.name(), "session", s.id, "chat", key.ChatID)
	return nil
}

func (b *Bot) handleSessionInput(ctx context.Context, ev Event) {
	key := sessionKey{ChatID: ev.ChatID, UserID: ev.UserID}
	s, ok := b.sessions[key]
	if !ok {
		logger.Debug("Input without active session ignored", "chat", ev.ChatID, "kind", ev.Kind)
		return
	}

	var done bool
	var err error
	if ev.Kind == EventSelection {
		done, err = s.flow.handleSelection(ctx, ev.Text)
	} else {
		done, err = s.flow.handleText(ctx, ev.Text)
	}

	if err != nil {
		// The flow's state is abandoned; other sessions are untouched.
		logger.Error("Flow step failed", "flow", s.flow.name(), "session", s.id, "error", err)
		delete(b.sessions, key)
		b.send(ctx, ev.ChatID, apperrors.Format(err))
		return
	}
	if done {
		logger.Debug("Flow completed", "flow", s.flow.name(), "session", s.id)
		delete(b.sessions, key)
	}
}

func (b *Bot) cmdCancel(ctx context.Context, key sessionKey) error {
	if s, ok := b.sessions[key]; ok {
		logger.Debug("Flow cancelled", "flow", s.flow.name(), "session", s.id)
		delete(b.sessions, key)
	}
	return b.send(ctx, key.ChatID, "Operation cancelled.")
}

// send reports transport failures to the log but never escalates them; a
// chat the bot cannot reach must not take the dispatcher down.
func (b *Bot) send(ctx context.Context, chatID int64, text string) error {
	if err := b.messenger.SendText(ctx, chatID, text); err != nil {
		logger.Warn("Send failed", "chat", chatID, "error", err)
		return err
	}
	return nil
}

func (b *Bot) today() (string, error) {
	return utils.Today(b.timezone)
}
