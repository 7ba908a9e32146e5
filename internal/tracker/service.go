package tracker

import (
	"context"
	"fmt"

	"github.com/julianstephens/fitbot/internal/constants"
	apperrors "github.com/julianstephens/fitbot/internal/errors"
	"github.com/julianstephens/fitbot/internal/models"
	"github.com/julianstephens/fitbot/internal/schema"
	"github.com/julianstephens/fitbot/internal/storage"
)

// goalsHeaders is the header row seeded when the goals range is first written.
var goalsHeaders = []string{"Name", "Goal Name", "Description"}

// Service exposes the tracker operations behind the bot's commands and flows.
// It owns no state beyond its collaborators; every operation fetches the
// current snapshot from the backing store.
type Service struct {
	store    storage.RangeStore
	registry *schema.Registry
}

func NewService(store storage.RangeStore) *Service {
	return &Service{
		store:    store,
		registry: schema.NewRegistry(store),
	}
}

// Registry returns the schema registry bound to the same store.
func (s *Service) Registry() *schema.Registry {
	return s.registry
}

// People returns the known person names in range order.
func (s *Service) People(ctx context.Context) ([]string, error) {
	rows, err := s.store.ReadRange(ctx, constants.RangePeople)
	if err != nil {
		return nil, fmt.Errorf("failed to read people: %w", err)
	}
	var names []string
	for _, row := range rows {
		if len(row) > 0 && row[0] != "" {
			names = append(names, row[0])
		}
	}
	return names, nil
}

// AddPerson appends a new person to the people range.
func (s *Service) AddPerson(ctx context.Context, person models.Person) error {
	if err := person.Validate(); err != nil {
		return err
	}
	if err := s.store.AppendRow(ctx, constants.RangePeople, []string{person.Name}); err != nil {
		return fmt.Errorf("failed to add person: %w", err)
	}
	return nil
}

// trackerSnapshot reads the daily-tracker range, seeding the header row when
// the range has never been written.
func (s *Service) trackerSnapshot(ctx context.Context) ([][]string, error) {
	rows, err := s.store.ReadRange(ctx, constants.RangeTracker)
	if err != nil {
		return nil, fmt.Errorf("failed to read tracker: %w", err)
	}
	if len(rows) == 0 {
		headers, err := s.registry.Headers(ctx)
		if err != nil {
			return nil, err
		}
		rows = [][]string{headers}
	}
	return rows, nil
}

// CurrentValue returns the stored value for (date, name, column), or "" when
// no row or cell exists yet. The read is not isolated from concurrent writes;
// a value shown to a user can be stale by the time they reply.
func (s *Service) CurrentValue(ctx context.Context, date, name, column string) (string, error) {
	snapshot, err := s.trackerSnapshot(ctx)
	if err != nil {
		return "", err
	}
	idx := Locate(snapshot, date, name)
	if idx < 0 {
		return "", nil
	}
	return CellValue(snapshot[0], snapshot[idx], column), nil
}

// UpsertRecord applies the writes to the row keyed by (date, name) and
// persists the full snapshot in one write.
func (s *Service) UpsertRecord(ctx context.Context, date, name string, writes map[string]string) error {
	snapshot, err := s.trackerSnapshot(ctx)
	if err != nil {
		return err
	}
	snapshot, _ = Upsert(snapshot, date, name, writes)
	if err := s.store.WriteRange(ctx, constants.RangeTracker, snapshot); err != nil {
		return fmt.Errorf("failed to save tracker: %w", err)
	}
	return nil
}

// PrepareRecord locates or synthesizes the row for (date, name), padding it
// to schema width, and returns the snapshot and target row index. The batch
// flow caches both across the template turn and persists via CommitSnapshot.
func (s *Service) PrepareRecord(ctx context.Context, date, name string) ([][]string, int, error) {
	snapshot, err := s.trackerSnapshot(ctx)
	if err != nil {
		return nil, 0, err
	}
	snapshot, idx := Upsert(snapshot, date, name, nil)
	return snapshot, idx, nil
}

// CommitSnapshot writes a previously prepared tracker snapshot back in full.
func (s *Service) CommitSnapshot(ctx context.Context, snapshot [][]string) error {
	if err := s.store.WriteRange(ctx, constants.RangeTracker, snapshot); err != nil {
		return fmt.Errorf("failed to save tracker: %w", err)
	}
	return nil
}

// RecordsForDate returns the tracker headers and every data row whose date
// cell matches.
func (s *Service) RecordsForDate(ctx context.Context, date string) ([]string, [][]string, error) {
	rows, err := s.store.ReadRange(ctx, constants.RangeTracker)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read tracker: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, nil
	}
	var matched [][]string
	for _, row := range rows[1:] {
		if len(row) > 0 && row[0] == date {
			matched = append(matched, row)
		}
	}
	return rows[0], matched, nil
}

// WeeklyStats returns the rows of the read-only weekly-summary range that
// belong to the person. The summary is produced by an external process; the
// bot only renders it.
func (s *Service) WeeklyStats(ctx context.Context, name string) ([][]string, error) {
	rows, err := s.store.ReadRange(ctx, constants.RangeWeekly)
	if err != nil {
		return nil, fmt.Errorf("failed to read weekly summary: %w", err)
	}
	var matched [][]string
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) > 1 && row[1] == name {
			matched = append(matched, row)
		}
	}
	return matched, nil
}

// Goals returns the person's goals in range order.
func (s *Service) Goals(ctx context.Context, person string) ([]models.Goal, error) {
	rows, err := s.store.ReadRange(ctx, constants.RangeGoals)
	if err != nil {
		return nil, fmt.Errorf("failed to read goals: %w", err)
	}
	var goals []models.Goal
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) > 1 && row[0] == person {
			g := models.Goal{Person: row[0], Name: row[1]}
			if len(row) > 2 {
				g.Description = row[2]
			}
			goals = append(goals, g)
		}
	}
	return goals, nil
}

// AddGoal appends a goal row, creating the goals header row on first use.
func (s *Service) AddGoal(ctx context.Context, goal models.Goal) error {
	if err := goal.Validate(); err != nil {
		return err
	}

	rows, err := s.store.ReadRange(ctx, constants.RangeGoals)
	if err != nil {
		return fmt.Errorf("failed to read goals: %w", err)
	}
	if len(rows) == 0 {
		rows = [][]string{append([]string(nil), goalsHeaders...)}
	}

	width := len(rows[0])
	if width < len(goalsHeaders) {
		width = len(goalsHeaders)
	}
	row := make([]string, width)
	row[0] = goal.Person
	row[1] = goal.Name
	row[2] = goal.Description
	rows = append(rows, row)

	if err := s.store.WriteRange(ctx, constants.RangeGoals, rows); err != nil {
		return fmt.Errorf("failed to save goals: %w", err)
	}
	return nil
}

// EditGoal replaces the description of the first goal row matching (person,
// goalName). Editing a missing pair reports not-found and performs no write.
func (s *Service) EditGoal(ctx context.Context, person, goalName, description string) error {
	rows, err := s.store.ReadRange(ctx, constants.RangeGoals)
	if err != nil {
		return fmt.Errorf("failed to read goals: %w", err)
	}

	target := -1
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) > 1 && row[0] == person && row[1] == goalName {
			target = i
			break
		}
	}
	if target < 0 {
		return fmt.Errorf("%w: goal %q for %s", apperrors.ErrNotFound, goalName, person)
	}

	width := len(rows[0])
	if width < len(goalsHeaders) {
		width = len(goalsHeaders)
	}
	for len(rows[target]) < width {
		rows[target] = append(rows[target], "")
	}
	rows[target][2] = description

	if err := s.store.WriteRange(ctx, constants.RangeGoals, rows); err != nil {
		return fmt.Errorf("failed to save goals: %w", err)
	}
	return nil
}
