package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/fitbot/internal/constants"
	"github.com/julianstephens/fitbot/internal/models"
)

const welcomeText = "\U0001F44B Welcome to the Fitness Tracking Bot! \U0001F3CB\n\n" +
	"Here to help you track your fitness journey effortlessly.\n" +
	"Type /help to see the list of available commands!"

const helpText = `Here are the available commands:
/start - Start the bot and get a welcome message
/help - Show this help message
/addnewperson - Add a new person to the fitness tracking sheet
/viewtoday - View today's stats for a person
/addcolumns - Add a new column to the sheet
/update - Update today's data for a person
/batch - Update a whole day's values at once
/weekly - View weekly stats for a person
/viewgoals - View goals for a person
/addgoal - Add a new goal for a person
/editgoal - Edit an existing goal for a person
/remindon - Enable reminders in this chat
/remindoff - Disable reminders in this chat
/reminders - List scheduled reminders
/cancel - Cancel current operation`

func (b *Bot) cmdAddPerson(ctx context.Context, ev Event) error {
	name := strings.TrimSpace(ev.Args)
	if name == "" {
		return b.send(ctx, ev.ChatID, "Usage: /addnewperson <name>")
	}
	if err := b.service.AddPerson(ctx, models.Person{Name: name}); err != nil {
		return err
	}
	return b.send(ctx, ev.ChatID, fmt.Sprintf("Added new person: %s", name))
}

func (b *Bot) cmdViewToday(ctx context.Context, ev Event) error {
	date, err := b.today()
	if err != nil {
		return err
	}

	headers, rows, err := b.service.RecordsForDate(ctx, date)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return b.send(ctx, ev.ChatID, "No entries found for today.")
	}

	var sb strings.Builder
	sb.WriteString("Today's Entries:\n")
	for _, row := range rows {
		for i, header := range headers {
			if i < len(row) && row[i] != "" {
				fmt.Fprintf(&sb, "%s: %s\n", header, row[i])
			}
		}
		sb.WriteString("---\n")
	}
	return b.send(ctx, ev.ChatID, strings.TrimSpace(sb.String()))
}

func (b *Bot) cmdAddColumns(ctx context.Context, ev Event) error {
	name := strings.TrimSpace(ev.Args)
	if name == "" {
		return b.send(ctx, ev.ChatID, "Usage: /addcolumns <column name>")
	}
	if _, err := b.service.Registry().Append(ctx, name); err != nil {
		return err
	}
	return b.send(ctx, ev.ChatID, fmt.Sprintf("Added column: %s", name))
}

func (b *Bot) cmdWeekly(ctx context.Context, ev Event) error {
	name := strings.TrimSpace(ev.Args)
	if name == "" {
		return b.send(ctx, ev.ChatID, "Usage: /weekly <name>")
	}

	stats, err := b.service.WeeklyStats(ctx, name)
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		return b.send(ctx, ev.ChatID, fmt.Sprintf("No stats found for %s.", name))
	}

	lines := make([]string, len(stats))
	for i, row := range stats {
		lines[i] = strings.Join(row, ", ")
	}
	return b.send(ctx, ev.ChatID, fmt.Sprintf("Weekly Stats for %s:\n%s", name, strings.Join(lines, "\n")))
}

func (b *Bot) cmdViewGoals(ctx context.Context, ev Event) error {
	name := strings.TrimSpace(ev.Args)
	if name == "" {
		return b.send(ctx, ev.ChatID, "Usage: /viewgoals <name>")
	}

	goals, err := b.service.Goals(ctx, name)
	if err != nil {
		return err
	}
	if len(goals) == 0 {
		return b.send(ctx, ev.ChatID, fmt.Sprintf("No goals found for %s.", name))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Goals for %s:\n", name)
	for _, goal := range goals {
		fmt.Fprintf(&sb, "%s: %s\n", goal.Name, goal.Description)
		sb.WriteString("---\n")
	}
	return b.send(ctx, ev.ChatID, strings.TrimSpace(sb.String()))
}

func (b *Bot) cmdRemindOn(ctx context.Context, ev Event) error {
	b.scheduler.Start(ev.ChatID)
	return b.send(ctx, ev.ChatID, "Reminders enabled: a daily summary nudge plus hourly check-ins.")
}

func (b *Bot) cmdRemindOff(ctx context.Context, ev Event) error {
	b.scheduler.Stop(ev.ChatID)
	return b.send(ctx, ev.ChatID, "Reminders disabled for this chat.")
}

func (b *Bot) cmdReminders(ctx context.Context, ev Event) error {
	jobs := b.scheduler.List(ev.ChatID)
	if len(jobs) == 0 {
		return b.send(ctx, ev.ChatID, "No reminders scheduled. Use /remindon to enable them.")
	}

	var sb strings.Builder
	sb.WriteString("Scheduled reminders:\n")
	for _, job := range jobs {
		kind := "daily"
		if job.Kind == constants.ReminderHourly {
			kind = "hourly"
		}
		fmt.Fprintf(&sb, "%s - next at %s\n", kind, job.NextFire.Format("2006-01-02 15:04"))
	}
	return b.send(ctx, ev.ChatID, strings.TrimSpace(sb.String()))
}
