package bot

import (
	"context"
	"fmt"

	apperrors "github.com/julianstephens/fitbot/internal/errors"
	"github.com/julianstephens/fitbot/internal/models"
	"github.com/julianstephens/fitbot/internal/transport"
)

type goalAddStep int

const (
	goalAddSelectPerson goalAddStep = iota
	goalAddAwaitName
	goalAddAwaitDescription
)

// goalAddFlow: select person -> await goal name -> await description -> commit.
type goalAddFlow struct {
	bot    *Bot
	chatID int64

	step     goalAddStep
	options  []string
	person   string
	goalName string
}

func (b *Bot) startGoalAddFlow(ctx context.Context, chatID int64) (flow, error) {
	people, err := b.service.People(ctx)
	if err != nil {
		return nil, err
	}
	if len(people) == 0 {
		return nil, b.messenger.SendText(ctx, chatID, "No names found. Please add names first.")
	}

	f := &goalAddFlow{bot: b, chatID: chatID, step: goalAddSelectPerson, options: people}
	prompt := "Select the person for whom you want to add a goal:"
	if err := b.messenger.PresentOptions(ctx, chatID, prompt, transport.SelectOptions(people)); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *goalAddFlow) name() string { return "goal-add" }

func (f *goalAddFlow) handleSelection(ctx context.Context, value string) (bool, error) {
	if f.step != goalAddSelectPerson || !matchesOption(f.options, value) {
		return false, nil
	}
	f.person = value
	f.step = goalAddAwaitName
	f.options = nil
	return false, f.bot.messenger.SendText(ctx, f.chatID, "Please send the name of the new goal.")
}

func (f *goalAddFlow) handleText(ctx context.Context, text string) (bool, error) {
	switch f.step {
	case goalAddAwaitName:
		f.goalName = text
		f.step = goalAddAwaitDescription
		return false, f.bot.messenger.SendText(ctx, f.chatID, "Please send the description for this goal.")

	case goalAddAwaitDescription:
		goal := models.Goal{Person: f.person, Name: f.goalName, Description: text}
		if err := f.bot.service.AddGoal(ctx, goal); err != nil {
			return false, err
		}
		confirmation := fmt.Sprintf("Goal '%s' added for %s.", f.goalName, f.person)
		return true, f.bot.messenger.SendText(ctx, f.chatID, confirmation)
	}
	return false, nil
}

type goalEditStep int

const (
	goalEditSelectPerson goalEditStep = iota
	goalEditSelectGoal
	goalEditAwaitDescription
)

// goalEditFlow: select person -> select goal -> await description -> commit.
// A person with no goals ends the flow immediately with a notice.
type goalEditFlow struct {
	bot    *Bot
	chatID int64

	step     goalEditStep
	options  []string
	person   string
	goalName string
}

func (b *Bot) startGoalEditFlow(ctx context.Context, chatID int64) (flow, error) {
	people, err := b.service.People(ctx)
	if err != nil {
		return nil, err
	}
	if len(people) == 0 {
		return nil, b.messenger.SendText(ctx, chatID, "No names found. Please add names first.")
	}

	f := &goalEditFlow{bot: b, chatID: chatID, step: goalEditSelectPerson, options: people}
	prompt := "Select the person whose goal you want to edit:"
	if err := b.messenger.PresentOptions(ctx, chatID, prompt, transport.SelectOptions(people)); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *goalEditFlow) name() string { return "goal-edit" }

func (f *goalEditFlow) handleSelection(ctx context.Context, value string) (bool, error) {
	if !matchesOption(f.options, value) {
		return false, nil
	}

	switch f.step {
	case goalEditSelectPerson:
		f.person = value

		goals, err := f.bot.service.Goals(ctx, f.person)
		if err != nil {
			return false, err
		}
		if len(goals) == 0 {
			msg := fmt.Sprintf("No goals found for %s.", f.person)
			return true, f.bot.messenger.SendText(ctx, f.chatID, msg)
		}

		names := make([]string, len(goals))
		for i, g := range goals {
			names[i] = g.Name
		}

		f.step = goalEditSelectGoal
		f.options = names
		return false, f.bot.messenger.PresentOptions(ctx, f.chatID, "Select the goal to edit:", transport.SelectOptions(names))

	case goalEditSelectGoal:
		f.goalName = value
		f.step = goalEditAwaitDescription
		f.options = nil
		return false, f.bot.messenger.SendText(ctx, f.chatID, "Please send the updated description for this goal:")
	}

	return false, nil
}

func (f *goalEditFlow) handleText(ctx context.Context, text string) (bool, error) {
	if f.step != goalEditAwaitDescription {
		return false, nil
	}

	err := f.bot.service.EditGoal(ctx, f.person, f.goalName, text)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			msg := fmt.Sprintf("Goal '%s' for %s not found.", f.goalName, f.person)
			return true, f.bot.messenger.SendText(ctx, f.chatID, msg)
		}
		return false, err
	}

	confirmation := fmt.Sprintf("Goal '%s' for %s updated successfully.", f.goalName, f.person)
	return true, f.bot.messenger.SendText(ctx, f.chatID, confirmation)
}
