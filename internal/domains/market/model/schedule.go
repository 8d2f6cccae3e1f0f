package model

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Weekdays in time.Weekday order (Sunday first)
var Weekdays = [7]string{"domingo", "lunes", "martes", "miercoles", "jueves", "viernes", "sabado"}

const (
	MsgScheduleUnavailable = "schedule unavailable"
	MsgClosedToday         = "closed today"
	MsgClosed              = "closed"
)

// DaySchedule is one day of a weekly schedule. Times are 24h "HH:MM".
type DaySchedule struct {
	Opens  string `json:"opens"`
	Closes string `json:"closes"`
	Closed bool   `json:"closed"`
}

// Schedule maps every weekday name to its opening hours.
// Ranges never span midnight.
type Schedule map[string]DaySchedule

// Status is the derived open/closed state of a market at a point in time
type Status struct {
	Open    bool   `json:"open"`
	Message string `json:"message"`
}

// Validate runs before a schedule is stored, so stored schedules are always well formed.
func (s Schedule) Validate() error {
	if s == nil {
		return nil
	}

	var problems []string
	for _, day := range Weekdays {
		d, ok := s[day]
		if !ok {
			problems = append(problems, day+": missing")
			continue
		}
		if d.Closed {
			continue
		}
		opens, err := parseClock(d.Opens)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s.opens: %v", day, err))
			continue
		}
		closes, err := parseClock(d.Closes)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s.closes: %v", day, err))
			continue
		}
		if closes < opens {
			problems = append(problems, day+": closes before it opens")
		}
	}

	known := make(map[string]bool, len(Weekdays))
	for _, day := range Weekdays {
		known[day] = true
	}
	var unknown []string
	for key := range s {
		if !known[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		problems = append(problems, key+": unknown day")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid schedule: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Evaluate computes whether a market with schedule s is open at t.
// t must already be in the market's local time zone.
// Both the opening and the closing minute count as open.
func Evaluate(s *Schedule, t time.Time) Status {
	unavailable := Status{Open: false, Message: MsgScheduleUnavailable}
	if s == nil || len(*s) == 0 {
		return unavailable
	}
	for _, day := range Weekdays {
		if _, ok := (*s)[day]; !ok {
			return unavailable
		}
	}

	today := (*s)[Weekdays[t.Weekday()]]
	if today.Closed {
		return Status{Open: false, Message: MsgClosedToday}
	}

	opens, err := parseClock(today.Opens)
	if err != nil {
		return unavailable
	}
	closes, err := parseClock(today.Closes)
	if err != nil || closes < opens {
		return unavailable
	}

	now := t.Hour()*60 + t.Minute()
	switch {
	case now >= opens && now <= closes:
		return Status{Open: true, Message: "open until " + today.Closes}
	case now < opens:
		return Status{Open: false, Message: "opens at " + today.Opens}
	default:
		return Status{Open: false, Message: MsgClosed}
	}
}

// parseClock turns "HH:MM" into minutes since midnight
func parseClock(v string) (int, error) {
	if len(v) != 5 || v[2] != ':' {
		return 0, fmt.Errorf("%q is not HH:MM", v)
	}
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, fmt.Errorf("%q is not HH:MM", v)
	}
	return t.Hour()*60 + t.Minute(), nil
}
