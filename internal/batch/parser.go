// Package batch parses freeform "label: value" text into an ordered mapping.
package batch

import (
	"fmt"
	"strings"

	"github.com/julianstephens/fitbot/internal/constants"
	apperrors "github.com/julianstephens/fitbot/internal/errors"
)

// Entry is one parsed label/value pair.
type Entry struct {
	Label string
	Value string
}

// Parse converts multi-line "label: value" text into entries in
// first-occurrence order. Each line is split on the first separator only and
// both sides are trimmed. Lines without the separator are skipped, lines with
// an empty value after trimming are discarded, and a duplicate label keeps
// its position but takes the last value. Returns ErrMalformedBatch when no
// line yields a valid pair.
func Parse(text string) ([]Entry, error) {
	return parse(text, false)
}

// ParseLine parses the strict single-line variant used for one-shot replies.
// In addition to requiring the separator, it rejects a value that itself
// contains the separator: a reply like "A:1,B:2" is an ambiguous comma-joined
// form, not one assignment.
func ParseLine(line string) ([]Entry, error) {
	return parse(line, true)
}

func parse(text string, strict bool) ([]Entry, error) {
	var entries []Entry
	index := make(map[string]int)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.SplitN(line, constants.BatchSeparator, 2)
		if len(parts) != 2 {
			if strict {
				return nil, fmt.Errorf("%w: line %q", apperrors.ErrMalformedBatch, line)
			}
			continue
		}

		label := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if strict && strings.Contains(value, constants.BatchSeparator) {
			return nil, fmt.Errorf("%w: line %q", apperrors.ErrMalformedBatch, line)
		}
		if label == "" || value == "" {
			continue
		}

		if i, ok := index[label]; ok {
			entries[i].Value = value
			continue
		}
		index[label] = len(entries)
		entries = append(entries, Entry{Label: label, Value: value})
	}

	if len(entries) == 0 {
		return nil, apperrors.ErrMalformedBatch
	}
	return entries, nil
}
