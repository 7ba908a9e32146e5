package bot

import (
	"context"
	"fmt"

	"github.com/julianstephens/fitbot/internal/transport"
)

type updateStep int

const (
	updateSelectPerson updateStep = iota
	updateSelectColumn
	updateAwaitValue
)

// updateFlow is the single-field update conversation:
// select person -> select column -> await value -> commit.
type updateFlow struct {
	bot    *Bot
	chatID int64

	step    updateStep
	options []string
	person  string
	column  string
	current string
	date    string
}

// startUpdateFlow performs the flow's entry step. It returns nil (and no
// session) when there is nothing to select.
func (b *Bot) startUpdateFlow(ctx context.Context, chatID int64) (flow, error) {
	people, err := b.service.People(ctx)
	if err != nil {
		return nil, err
	}
	if len(people) == 0 {
		return nil, b.messenger.SendText(ctx, chatID, "No names found. Please add data first.")
	}

	f := &updateFlow{bot: b, chatID: chatID, step: updateSelectPerson, options: people}
	if err := b.messenger.PresentOptions(ctx, chatID, "Select the name:", transport.SelectOptions(people)); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *updateFlow) name() string { return "update" }

func (f *updateFlow) handleSelection(ctx context.Context, value string) (bool, error) {
	if !matchesOption(f.options, value) {
		return false, nil
	}

	switch f.step {
	case updateSelectPerson:
		f.person = value

		columns, err := f.bot.service.Registry().EditableColumns(ctx)
		if err != nil {
			return false, err
		}
		if len(columns) == 0 {
			return true, f.bot.messenger.SendText(ctx, f.chatID, "No columns found. Please add headers first.")
		}

		f.step = updateSelectColumn
		f.options = columns
		return false, f.bot.messenger.PresentOptions(ctx, f.chatID, "Select the column:", transport.SelectOptions(columns))

	case updateSelectColumn:
		f.column = value

		date, err := f.bot.today()
		if err != nil {
			return false, err
		}
		f.date = date

		// Read before write: this value can be stale if another chat
		// commits between now and the user's reply.
		current, err := f.bot.service.CurrentValue(ctx, f.date, f.person, f.column)
		if err != nil {
			return false, err
		}
		if current == "" {
			current = "None"
		}
		f.current = current

		f.step = updateAwaitValue
		f.options = nil
		prompt := fmt.Sprintf("The current value for '%s' is: %s\n\nPlease send the new value:", f.column, current)
		return false, f.bot.messenger.SendText(ctx, f.chatID, prompt)
	}

	return false, nil
}

func (f *updateFlow) handleText(ctx context.Context, text string) (bool, error) {
	if f.step != updateAwaitValue {
		return false, nil
	}

	writes := map[string]string{f.column: text}
	if err := f.bot.service.UpsertRecord(ctx, f.date, f.person, writes); err != nil {
		return false, err
	}

	confirmation := fmt.Sprintf("Updated %s's %s to %s for %s.", f.person, f.column, text, f.date)
	return true, f.bot.messenger.SendText(ctx, f.chatID, confirmation)
}
