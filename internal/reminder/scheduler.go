// Package reminder manages per-chat recurring reminder jobs. Jobs fire on a
// background ticker goroutine; each firing is handed to a sink callback
// (the bot posts it onto the dispatch queue) rather than sending directly,
// so flow logic never runs on the timer goroutine.
package reminder

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/julianstephens/fitbot/internal/constants"
	"github.com/julianstephens/fitbot/internal/logger"
)

// Job is one recurring reminder owned by the scheduler registry.
type Job struct {
	ID     string
	ChatID int64
	Kind   constants.ReminderKind
	Hour   int
	Minute int

	nextFire time.Time
}

// Status is the listable view of a job.
type Status struct {
	ID       string
	Kind     constants.ReminderKind
	NextFire time.Time
}

// Sink receives fired jobs. It must be cheap and non-blocking; the bot's
// implementation enqueues a dispatch event.
type Sink func(chatID int64, kind constants.ReminderKind)

// Config fixes the firing schedule derived per chat.
type Config struct {
	DailyHour   int
	DailyMinute int
	HourlyStart int
	HourlyEnd   int // inclusive
	Location    *time.Location
}

func DefaultConfig() Config {
	return Config{
		DailyHour:   constants.DefaultDailyReminderHour,
		DailyMinute: constants.DefaultDailyReminderMinute,
		HourlyStart: constants.DefaultHourlyStart,
		HourlyEnd:   constants.DefaultHourlyEnd,
		Location:    time.Local,
	}
}

// Scheduler owns the job registry exclusively; no other component mutates it.
type Scheduler struct {
	cfg  Config
	sink Sink

	mu   sync.Mutex
	jobs map[string]*Job

	// now is injectable for tests
	now func() time.Time
}

func New(cfg Config, sink Sink) *Scheduler {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &Scheduler{
		cfg:  cfg,
		sink: sink,
		jobs: make(map[string]*Job),
		now:  func() time.Time { return time.Now().In(cfg.Location) },
	}
}

func dailyJobID(chatID int64) string {
	return fmt.Sprintf("%s_%d", constants.ReminderDaily, chatID)
}

func hourlyJobID(chatID int64, hour int) string {
	return fmt.Sprintf("%s_%d_%02d", constants.ReminderHourly, chatID, hour)
}

// Start registers the chat's daily job and one hourly job per hour in the
// configured range. Calling Start again for the same chat replaces the
// existing jobs rather than duplicating them.
func (s *Scheduler) Start(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.register(&Job{
		ID:     dailyJobID(chatID),
		ChatID: chatID,
		Kind:   constants.ReminderDaily,
		Hour:   s.cfg.DailyHour,
		Minute: s.cfg.DailyMinute,
	}, now)

	for hour := s.cfg.HourlyStart; hour <= s.cfg.HourlyEnd; hour++ {
		s.register(&Job{
			ID:     hourlyJobID(chatID, hour),
			ChatID: chatID,
			Kind:   constants.ReminderHourly,
			Hour:   hour,
		}, now)
	}

	logger.Info("Reminders started", "chat", chatID, "jobs", len(s.jobs))
}

func (s *Scheduler) register(job *Job, now time.Time) {
	job.nextFire = nextFireAfter(now, job.Hour, job.Minute)
	s.jobs[job.ID] = job
}

// Stop removes every job belonging to the chat. Stopping a chat with no jobs
// is a no-op, not an error.
func (s *Scheduler) Stop(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, job := range s.jobs {
		if job.ChatID == chatID {
			delete(s.jobs, id)
		}
	}
	logger.Info("Reminders stopped", "chat", chatID)
}

// List returns the chat's jobs with their next fire times, daily job first,
// hourly jobs in hour order.
func (s *Scheduler) List(chatID int64) []Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Status
	for _, job := range s.jobs {
		if job.ChatID == chatID {
			out = append(out, Status{ID: job.ID, Kind: job.Kind, NextFire: job.nextFire})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Run ticks until the context is cancelled, firing due jobs. A fired job is
// immediately rescheduled for its next occurrence; delivery failure
// downstream never deregisters it.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fireDue()
		}
	}
}

func (s *Scheduler) fireDue() {
	now := s.now()

	s.mu.Lock()
	var due []*Job
	for _, job := range s.jobs {
		if !job.nextFire.After(now) {
			due = append(due, job)
			job.nextFire = nextFireAfter(now, job.Hour, job.Minute)
		}
	}
	s.mu.Unlock()

	for _, job := range due {
		logger.Debug("Reminder fired", "job", job.ID)
		s.sink(job.ChatID, job.Kind)
	}
}

// nextFireAfter returns the first hh:mm occurrence strictly after now.
func nextFireAfter(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
