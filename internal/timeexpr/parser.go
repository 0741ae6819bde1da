// Package timeexpr extracts reminder instants from free text task
// descriptions.
//
// Two phrases are recognized, in priority order:
//
//   - an absolute clock time, "at H:MM", optionally qualified by
//     "tomorrow" ("tomorrow at 9:00", "at 9:00 tomorrow");
//   - a relative offset, "in N minutes".
//
// Only the first matching phrase is consumed and removed from the text.
package timeexpr

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/pkg/errors"
)

var ErrInvalidTime = errors.New("invalid time")

var (
	clockPattern    = regexp.MustCompile(`(?i)(?:\btomorrow\s+)?\bat\s+(\d{1,2}):(\d{2})\b(?:\s+tomorrow\b)?`)
	tomorrowPattern = regexp.MustCompile(`(?i)\btomorrow\b`)
	offsetPattern   = regexp.MustCompile(`(?i)\bin\s+(\d+)\s+(?:minutes?|mins?)\b`)
)

const maxOffsetMinutes = math.MaxInt64 / int64(time.Minute)

// latestDueAt is the last instant representable as nanoseconds since the
// Unix epoch, the precision reminders are stored with.
var latestDueAt = time.Unix(0, math.MaxInt64)

type Options struct {
	Clock func() time.Time
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Clock: time.Now,
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func WithClock(clock func() time.Time) OptionFunc {
	return func(opts *Options) {
		opts.Clock = clock
	}
}

type Parser struct {
	clock func() time.Time
}

func NewParser(funcs ...OptionFunc) *Parser {
	opts := NewOptions(funcs...)
	return &Parser{
		clock: opts.Clock,
	}
}

// Parse returns the text stripped of its time phrase and the instant the
// phrase designates, or a nil instant if the text holds no time phrase.
// The returned text may be empty.
func (p *Parser) Parse(text string) (string, *time.Time, error) {
	now := p.clock()

	if loc := clockPattern.FindStringSubmatchIndex(text); loc != nil {
		hour, err := strconv.Atoi(text[loc[2]:loc[3]])
		if err != nil {
			return "", nil, errors.Wrapf(ErrInvalidTime, "could not parse hour: %s", err)
		}

		minute, err := strconv.Atoi(text[loc[4]:loc[5]])
		if err != nil {
			return "", nil, errors.Wrapf(ErrInvalidTime, "could not parse minute: %s", err)
		}

		if hour > 23 || minute > 59 {
			return "", nil, errors.Wrapf(ErrInvalidTime, "%02d:%02d is not a valid clock time", hour, minute)
		}

		dueAt := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())

		switch {
		case tomorrowPattern.MatchString(text):
			dueAt = dueAt.AddDate(0, 0, 1)
		case dueAt.Before(now):
			dueAt = dueAt.AddDate(0, 0, 1)
		}

		return cut(text, loc[0], loc[1]), &dueAt, nil
	}

	if loc := offsetPattern.FindStringSubmatchIndex(text); loc != nil {
		minutes, err := strconv.ParseInt(text[loc[2]:loc[3]], 10, 64)
		if err != nil || minutes > maxOffsetMinutes {
			return "", nil, errors.Wrapf(ErrInvalidTime, "'%s' minutes is out of range", text[loc[2]:loc[3]])
		}

		dueAt := now.Add(time.Duration(minutes) * time.Minute)
		if dueAt.After(latestDueAt) {
			return "", nil, errors.Wrapf(ErrInvalidTime, "'%s' minutes from now is too far in the future", text[loc[2]:loc[3]])
		}

		return cut(text, loc[0], loc[1]), &dueAt, nil
	}

	return strings.TrimSpace(text), nil, nil
}

var defaultParser = NewParser()

// Parse parses text with a parser using the wall clock
func Parse(text string) (string, *time.Time, error) {
	return defaultParser.Parse(text)
}

func cut(text string, start, end int) string {
	left := strings.TrimRightFunc(text[:start], unicode.IsSpace)
	right := strings.TrimLeftFunc(text[end:], unicode.IsSpace)

	if left != "" && right != "" {
		return strings.TrimSpace(left + " " + right)
	}

	return strings.TrimSpace(left + right)
}
