package bot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/fitbot/internal/auth"
	"github.com/julianstephens/fitbot/internal/constants"
	"github.com/julianstephens/fitbot/internal/reminder"
	"github.com/julianstephens/fitbot/internal/storage"
	"github.com/julianstephens/fitbot/internal/tracker"
	"github.com/julianstephens/fitbot/internal/transport"
	"github.com/julianstephens/fitbot/internal/utils"
)

// fakeMessenger records every outbound message so tests can assert on the
// conversation transcript.
type fakeMessenger struct {
	texts   []string
	prompts []string
	options [][]transport.Option
	sendErr error
}

func (m *fakeMessenger) SendText(_ context.Context, _ int64, text string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.texts = append(m.texts, text)
	return nil
}

func (m *fakeMessenger) PresentOptions(_ context.Context, _ int64, prompt string, options []transport.Option) error {
	m.prompts = append(m.prompts, prompt)
	m.options = append(m.options, options)
	return nil
}

func (m *fakeMessenger) lastText(t *testing.T) string {
	t.Helper()
	if len(m.texts) == 0 {
		t.Fatal("Expected at least one sent message")
	}
	return m.texts[len(m.texts)-1]
}

func newTestBot(t *testing.T, gate auth.Gate) (*Bot, *fakeMessenger, *storage.MemoryStore) {
	t.Helper()

	store := storage.NewMemoryStore()
	ctx := context.Background()
	if err := store.WriteRange(ctx, constants.RangePeople, [][]string{{"Sam"}, {"Alex"}}); err != nil {
		t.Fatalf("Failed to seed people: %v", err)
	}
	if err := store.WriteRange(ctx, constants.RangeTracker, [][]string{{"Date", "Name", "Steps", "Water"}}); err != nil {
		t.Fatalf("Failed to seed tracker: %v", err)
	}

	m := &fakeMessenger{}
	b := New(tracker.NewService(store), gate, m, "UTC")
	b.SetScheduler(reminder.New(reminder.DefaultConfig(), b.EnqueueReminder))
	return b, m, store
}

func command(name, args string) Event {
	return Event{Kind: EventCommand, ChatID: 1, UserID: 1, IsPrivate: true, Command: name, Args: args}
}

func selection(value string) Event {
	return Event{Kind: EventSelection, ChatID: 1, UserID: 1, IsPrivate: true, Text: value}
}

func text(value string) Event {
	return Event{Kind: EventText, ChatID: 1, UserID: 1, IsPrivate: true, Text: value}
}

func TestUpdateFlow_EndToEnd(t *testing.T) {
	b, m, store := newTestBot(t, auth.NewAllowList(nil))
	ctx := context.Background()

	b.handleEvent(ctx, command("update", ""))
	if len(m.prompts) != 1 || m.prompts[0] != "Select the name:" {
		t.Fatalf("Expected person prompt, got %v", m.prompts)
	}
	if len(m.options[0]) != 2 {
		t.Fatalf("Expected both people offered, got %v", m.options[0])
	}

	b.handleEvent(ctx, selection("Sam"))
	if m.prompts[len(m.prompts)-1] != "Select the column:" {
		t.Fatalf("Expected column prompt, got %v", m.prompts)
	}

	b.handleEvent(ctx, selection("Steps"))
	if got := m.lastText(t); !strings.Contains(got, "The current value for 'Steps' is: None") {
		t.Fatalf("Expected current-value prompt, got %q", got)
	}

	b.handleEvent(ctx, text("8000"))

	today, err := utils.Today("UTC")
	if err != nil {
		t.Fatalf("Today failed: %v", err)
	}
	want := "Updated Sam's Steps to 8000 for " + today + "."
	if got := m.lastText(t); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	rows, _ := store.ReadRange(ctx, constants.RangeTracker)
	if len(rows) != 2 {
		t.Fatalf("Expected header + 1 row, got %v", rows)
	}
	row := rows[1]
	if row[0] != today || row[1] != "Sam" || row[2] != "8000" || row[3] != "" {
		t.Errorf("Unexpected committed row: %v", row)
	}

	// The session ended; follow-up text is ignored.
	sent := len(m.texts)
	b.handleEvent(ctx, text("9000"))
	if len(m.texts) != sent {
		t.Error("Expected text after flow end to be ignored")
	}
}

func TestBatchFlow_EndToEnd(t *testing.T) {
	b, m, store := newTestBot(t, auth.NewAllowList(nil))
	ctx := context.Background()

	b.handleEvent(ctx, command("batch", ""))
	b.handleEvent(ctx, selection("Sam"))

	template := m.lastText(t)
	if !strings.Contains(template, "Steps: ") || !strings.Contains(template, "Water: ") {
		t.Fatalf("Expected template listing editable columns, got %q", template)
	}

	b.handleEvent(ctx, text("Steps: 8000\nWater: 2\nUnknown: x"))

	today, _ := utils.Today("UTC")
	want := "Updated 2 values for Sam on " + today + "."
	if got := m.lastText(t); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	rows, _ := store.ReadRange(ctx, constants.RangeTracker)
	row := rows[1]
	if row[2] != "8000" || row[3] != "2" {
		t.Errorf("Unexpected committed row: %v", row)
	}
}

func TestBatchFlow_MalformedReplyEndsSession(t *testing.T) {
	b, m, _ := newTestBot(t, auth.NewAllowList(nil))
	ctx := context.Background()

	b.handleEvent(ctx, command("batch", ""))
	b.handleEvent(ctx, selection("Sam"))
	b.handleEvent(ctx, text("A:1,B:2"))

	if got := m.lastText(t); !strings.Contains(got, "no recognizable") {
		t.Errorf("Expected malformed-batch report, got %q", got)
	}

	// The errored session was discarded.
	sent := len(m.texts)
	b.handleEvent(ctx, text("Steps: 8000"))
	if len(m.texts) != sent {
		t.Error("Expected no session after error")
	}
}

func TestCommand_DeniedByGate(t *testing.T) {
	b, m, store := newTestBot(t, auth.NewAllowList([]int64{99}))
	ctx := context.Background()

	b.handleEvent(ctx, command("addnewperson", "Mallory"))

	if got := m.lastText(t); got != deniedMessage {
		t.Errorf("Expected denial, got %q", got)
	}
	rows, _ := store.ReadRange(ctx, constants.RangePeople)
	if len(rows) != 2 {
		t.Errorf("Expected no write for denied command, got %v", rows)
	}
}

func TestGate_GroupChatUsesChatID(t *testing.T) {
	b, m, _ := newTestBot(t, auth.NewAllowList([]int64{5}))
	ctx := context.Background()

	// Group chat 5 is allowed regardless of the user id.
	b.handleEvent(ctx, Event{Kind: EventCommand, ChatID: 5, UserID: 777, Command: "help"})
	if got := m.lastText(t); got != helpText {
		t.Errorf("Expected help text, got %q", got)
	}
}

func TestCancel_ClearsSession(t *testing.T) {
	b, m, _ := newTestBot(t, auth.NewAllowList(nil))
	ctx := context.Background()

	b.handleEvent(ctx, command("update", ""))
	b.handleEvent(ctx, command("cancel", ""))
	if got := m.lastText(t); got != "Operation cancelled." {
		t.Fatalf("Expected cancel confirmation, got %q", got)
	}

	prompts := len(m.prompts)
	b.handleEvent(ctx, selection("Sam"))
	if len(m.prompts) != prompts {
		t.Error("Expected selection after cancel to be ignored")
	}
}

func TestStaleSelection_Ignored(t *testing.T) {
	b, m, _ := newTestBot(t, auth.NewAllowList(nil))
	ctx := context.Background()

	b.handleEvent(ctx, command("update", ""))
	b.handleEvent(ctx, selection("Sam"))

	// "Sam" is no longer among the offered options; the flow stays put.
	prompts := len(m.prompts)
	b.handleEvent(ctx, selection("Sam"))
	if len(m.prompts) != prompts {
		t.Fatal("Expected stale selection to be dropped")
	}

	// The flow still accepts a valid column afterwards.
	b.handleEvent(ctx, selection("Steps"))
	if got := m.lastText(t); !strings.Contains(got, "Please send the new value:") {
		t.Errorf("Expected value prompt, got %q", got)
	}
}

func TestNewCommand_ReplacesActiveFlow(t *testing.T) {
	b, m, _ := newTestBot(t, auth.NewAllowList(nil))
	ctx := context.Background()

	b.handleEvent(ctx, command("update", ""))
	b.handleEvent(ctx, command("addgoal", ""))

	// The selection now feeds the goal flow, not the abandoned update flow.
	b.handleEvent(ctx, selection("Sam"))
	if got := m.lastText(t); got != "Please send the name of the new goal." {
		t.Errorf("Expected goal-name prompt, got %q", got)
	}
}

func TestGoalAddFlow_EndToEnd(t *testing.T) {
	b, m, _ := newTestBot(t, auth.NewAllowList(nil))
	ctx := context.Background()

	b.handleEvent(ctx, command("addgoal", ""))
	b.handleEvent(ctx, selection("Sam"))
	b.handleEvent(ctx, text("Run 5k"))
	if got := m.lastText(t); got != "Please send the description for this goal." {
		t.Fatalf("Expected description prompt, got %q", got)
	}
	b.handleEvent(ctx, text("Under 30 minutes"))
	if got := m.lastText(t); got != "Goal 'Run 5k' added for Sam." {
		t.Fatalf("Expected confirmation, got %q", got)
	}

	b.handleEvent(ctx, command("viewgoals", "Sam"))
	if got := m.lastText(t); !strings.Contains(got, "Run 5k: Under 30 minutes") {
		t.Errorf("Expected goal listed, got %q", got)
	}
}

func TestGoalEditFlow_NoGoalsEndsImmediately(t *testing.T) {
	b, m, _ := newTestBot(t, auth.NewAllowList(nil))
	ctx := context.Background()

	b.handleEvent(ctx, command("editgoal", ""))
	b.handleEvent(ctx, selection("Sam"))
	if got := m.lastText(t); got != "No goals found for Sam." {
		t.Fatalf("Expected no-goals notice, got %q", got)
	}

	// The flow ended; free text no longer reaches it.
	sent := len(m.texts)
	b.handleEvent(ctx, text("new description"))
	if len(m.texts) != sent {
		t.Error("Expected no session after immediate end")
	}
}

func TestReminderDelivery(t *testing.T) {
	b, m, _ := newTestBot(t, auth.NewAllowList(nil))
	ctx := context.Background()

	b.handleEvent(ctx, Event{Kind: EventReminder, ChatID: 1, Reminder: constants.ReminderDaily})
	if got := m.lastText(t); !strings.Contains(got, "Don't forget to log today's fitness data!") {
		t.Errorf("Expected daily reminder text, got %q", got)
	}

	b.handleEvent(ctx, Event{Kind: EventReminder, ChatID: 1, Reminder: constants.ReminderHourly})
	if got := m.lastText(t); !strings.Contains(got, "Hourly check-in") {
		t.Errorf("Expected hourly reminder text, got %q", got)
	}
}

func TestReminderDeliveryFailure_DoesNotPanic(t *testing.T) {
	b, m, _ := newTestBot(t, auth.NewAllowList(nil))
	m.sendErr = errors.New("transport down")

	b.handleEvent(context.Background(), Event{Kind: EventReminder, ChatID: 1, Reminder: constants.ReminderDaily})
	if len(m.texts) != 0 {
		t.Errorf("Expected no delivered message, got %v", m.texts)
	}
}

func TestRemindCommands(t *testing.T) {
	b, m, _ := newTestBot(t, auth.NewAllowList(nil))
	ctx := context.Background()

	b.handleEvent(ctx, command("remindon", ""))
	b.handleEvent(ctx, command("reminders", ""))
	if got := m.lastText(t); !strings.Contains(got, "Scheduled reminders:") {
		t.Fatalf("Expected reminder list, got %q", got)
	}

	b.handleEvent(ctx, command("remindoff", ""))
	b.handleEvent(ctx, command("reminders", ""))
	if got := m.lastText(t); got != "No reminders scheduled. Use /remindon to enable them." {
		t.Errorf("Expected empty-list notice, got %q", got)
	}
}

func TestUnknownCommand(t *testing.T) {
	b, m, _ := newTestBot(t, auth.NewAllowList(nil))

	b.handleEvent(context.Background(), command("bogus", ""))
	if got := m.lastText(t); !strings.Contains(got, "Unknown command") {
		t.Errorf("Expected unknown-command reply, got %q", got)
	}
}

func TestUpdateFlow_NoPeople(t *testing.T) {
	store := storage.NewMemoryStore()
	m := &fakeMessenger{}
	b := New(tracker.NewService(store), auth.NewAllowList(nil), m, "UTC")

	b.handleEvent(context.Background(), command("update", ""))
	if got := m.lastText(t); got != "No names found. Please add data first." {
		t.Fatalf("Expected no-names notice, got %q", got)
	}
	if len(b.sessions) != 0 {
		t.Error("Expected no session when the entry step fails")
	}
}
