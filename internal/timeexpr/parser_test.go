package timeexpr

import (
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestParser(t *testing.T) {
	now := time.Date(2026, time.October, 17, 10, 0, 0, 0, time.UTC)

	today := func(hour, minute int) *time.Time {
		t := time.Date(2026, time.October, 17, hour, minute, 0, 0, time.UTC)
		return &t
	}

	tomorrow := func(hour, minute int) *time.Time {
		t := time.Date(2026, time.October, 18, hour, minute, 0, 0, time.UTC)
		return &t
	}

	after := func(d time.Duration) *time.Time {
		t := now.Add(d)
		return &t
	}

	type testCase struct {
		Name          string
		Input         string
		ExpectedText  string
		ExpectedDueAt *time.Time
		ExpectedError error
	}

	testCases := []testCase{
		{
			Name:          "clock time later today",
			Input:         "Buy milk at 18:30",
			ExpectedText:  "Buy milk",
			ExpectedDueAt: today(18, 30),
		},
		{
			Name:          "relative offset",
			Input:         "Call mom in 10 minutes",
			ExpectedText:  "Call mom",
			ExpectedDueAt: after(10 * time.Minute),
		},
		{
			Name:         "no time phrase",
			Input:        "Write report",
			ExpectedText: "Write report",
		},
		{
			Name:          "past clock time rolls to tomorrow",
			Input:         "Pay rent at 9:15",
			ExpectedText:  "Pay rent",
			ExpectedDueAt: tomorrow(9, 15),
		},
		{
			Name:          "current clock time is not rolled",
			Input:         "Stand up at 10:00",
			ExpectedText:  "Stand up",
			ExpectedDueAt: today(10, 0),
		},
		{
			Name:          "leading tomorrow qualifier",
			Input:         "Gym tomorrow at 7:00",
			ExpectedText:  "Gym",
			ExpectedDueAt: tomorrow(7, 0),
		},
		{
			Name:          "trailing tomorrow qualifier on a future time",
			Input:         "Gym at 19:00 tomorrow",
			ExpectedText:  "Gym",
			ExpectedDueAt: tomorrow(19, 0),
		},
		{
			Name:          "detached tomorrow still shifts the day",
			Input:         "Tomorrow: dentist at 11:45",
			ExpectedText:  "Tomorrow: dentist",
			ExpectedDueAt: tomorrow(11, 45),
		},
		{
			Name:          "clock time takes precedence over offset",
			Input:         "Ping in 5 minutes at 12:00",
			ExpectedText:  "Ping in 5 minutes",
			ExpectedDueAt: today(12, 0),
		},
		{
			Name:          "only the first phrase is consumed",
			Input:         "Meet at 11:00 or at 12:00",
			ExpectedText:  "Meet or at 12:00",
			ExpectedDueAt: today(11, 0),
		},
		{
			Name:          "phrase in the middle of the text",
			Input:         "Call at 18:30 mom",
			ExpectedText:  "Call mom",
			ExpectedDueAt: today(18, 30),
		},
		{
			Name:          "phrase only",
			Input:         "at 18:30",
			ExpectedText:  "",
			ExpectedDueAt: today(18, 30),
		},
		{
			Name:          "case insensitive",
			Input:         "Buy milk AT 18:30",
			ExpectedText:  "Buy milk",
			ExpectedDueAt: today(18, 30),
		},
		{
			Name:          "singular minute",
			Input:         "Tea in 1 minute",
			ExpectedText:  "Tea",
			ExpectedDueAt: after(time.Minute),
		},
		{
			Name:          "zero minutes",
			Input:         "Now in 0 minutes",
			ExpectedText:  "Now",
			ExpectedDueAt: after(0),
		},
		{
			Name:         "at inside a word is ignored",
			Input:        "Chat 18:30",
			ExpectedText: "Chat 18:30",
		},
		{
			Name:          "out of range clock time",
			Input:         "Nonsense at 25:99",
			ExpectedError: ErrInvalidTime,
		},
		{
			Name:          "overflowing offset",
			Input:         "Later in 99999999999999999999 minutes",
			ExpectedError: ErrInvalidTime,
		},
		{
			Name:          "offset beyond storable instants",
			Input:         "Pay taxes in 150000000 minutes",
			ExpectedError: ErrInvalidTime,
		},
		{
			Name:          "distant but storable offset",
			Input:         "Pay taxes in 100000000 minutes",
			ExpectedText:  "Pay taxes",
			ExpectedDueAt: after(100000000 * time.Minute),
		},
	}

	parser := NewParser(WithClock(func() time.Time { return now }))

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			text, dueAt, err := parser.Parse(tc.Input)

			if tc.ExpectedError != nil {
				if !errors.Is(err, tc.ExpectedError) {
					t.Fatalf("err: expected '%v', got '%v'", tc.ExpectedError, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if e, g := tc.ExpectedText, text; e != g {
				t.Errorf("text: expected '%s', got '%s'", e, g)
			}

			switch {
			case tc.ExpectedDueAt == nil && dueAt != nil:
				t.Errorf("dueAt: expected nil, got '%v'", dueAt)
			case tc.ExpectedDueAt != nil && dueAt == nil:
				t.Errorf("dueAt: expected '%v', got nil", tc.ExpectedDueAt)
			case tc.ExpectedDueAt != nil && !tc.ExpectedDueAt.Equal(*dueAt):
				t.Errorf("dueAt: expected '%v', got '%v'", tc.ExpectedDueAt, dueAt)
			}
		})
	}
}
