package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/fitbot/internal/batch"
	"github.com/julianstephens/fitbot/internal/constants"
	"github.com/julianstephens/fitbot/internal/schema"
	"github.com/julianstephens/fitbot/internal/tracker"
	"github.com/julianstephens/fitbot/internal/transport"
)

type batchStep int

const (
	batchSelectPerson batchStep = iota
	batchAwaitReply
)

// batchFlow is the whole-day update conversation: select person, receive a
// pre-filled template, parse the reply, and commit every recognized field in
// one write. The snapshot and target row are computed eagerly at template
// time and cached across the reply turn.
type batchFlow struct {
	bot    *Bot
	chatID int64

	step    batchStep
	options []string
	person  string
	date    string

	snapshot [][]string
	rowIdx   int
}

func (b *Bot) startBatchFlow(ctx context.Context, chatID int64) (flow, error) {
	people, err := b.service.People(ctx)
	if err != nil {
		return nil, err
	}
	if len(people) == 0 {
		return nil, b.messenger.SendText(ctx, chatID, "No names found. Please add data first.")
	}

	f := &batchFlow{bot: b, chatID: chatID, step: batchSelectPerson, options: people}
	if err := b.messenger.PresentOptions(ctx, chatID, "Select the name:", transport.SelectOptions(people)); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *batchFlow) name() string { return "batch" }

func (f *batchFlow) handleSelection(ctx context.Context, value string) (bool, error) {
	if f.step != batchSelectPerson || !matchesOption(f.options, value) {
		return false, nil
	}
	f.person = value

	date, err := f.bot.today()
	if err != nil {
		return false, err
	}
	f.date = date

	snapshot, rowIdx, err := f.bot.service.PrepareRecord(ctx, f.date, f.person)
	if err != nil {
		return false, err
	}
	f.snapshot = snapshot
	f.rowIdx = rowIdx

	headers := snapshot[0]
	if len(headers) <= constants.ReservedColumns {
		return true, f.bot.messenger.SendText(ctx, f.chatID, "No columns found. Please add headers first.")
	}

	var lines []string
	for _, column := range headers[constants.ReservedColumns:] {
		lines = append(lines, fmt.Sprintf("%s%s %s",
			column, constants.BatchSeparator, tracker.CellValue(headers, snapshot[f.rowIdx], column)))
	}

	f.step = batchAwaitReply
	f.options = nil
	prompt := fmt.Sprintf("Fill in the values for %s on %s and send the list back:\n\n%s",
		f.person, f.date, strings.Join(lines, "\n"))
	return false, f.bot.messenger.SendText(ctx, f.chatID, prompt)
}

func (f *batchFlow) handleText(ctx context.Context, text string) (bool, error) {
	if f.step != batchAwaitReply {
		return false, nil
	}

	var entries []batch.Entry
	var err error
	if strings.Contains(strings.TrimSpace(text), "\n") {
		entries, err = batch.Parse(text)
	} else {
		entries, err = batch.ParseLine(text)
	}
	if err != nil {
		return false, err
	}

	headers := f.snapshot[0]
	applied := 0
	for _, entry := range entries {
		idx := schema.IndexOf(headers, entry.Label)
		if idx < constants.ReservedColumns {
			// Unknown labels and the reserved key columns are skipped.
			continue
		}
		f.snapshot[f.rowIdx][idx] = entry.Value
		applied++
	}

	if err := f.bot.service.CommitSnapshot(ctx, f.snapshot); err != nil {
		return false, err
	}

	confirmation := fmt.Sprintf("Updated %d values for %s on %s.", applied, f.person, f.date)
	return true, f.bot.messenger.SendText(ctx, f.chatID, confirmation)
}
