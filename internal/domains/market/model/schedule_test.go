package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekSchedule() Schedule {
	s := Schedule{}
	for _, day := range Weekdays {
		s[day] = DaySchedule{Opens: "08:00", Closes: "17:00"}
	}
	s["domingo"] = DaySchedule{Closed: true}
	return s
}

// 2024-03-04 is a Monday
func monday(hour, minute int) time.Time {
	return time.Date(2024, 3, 4, hour, minute, 0, 0, time.UTC)
}

func TestEvaluate_Boundaries(t *testing.T) {
	s := weekSchedule()

	tests := []struct {
		name string
		at   time.Time
		want Status
	}{
		{"opening minute", monday(8, 0), Status{Open: true, Message: "open until 17:00"}},
		{"one minute early", monday(7, 59), Status{Open: false, Message: "opens at 08:00"}},
		{"closing minute", monday(17, 0), Status{Open: true, Message: "open until 17:00"}},
		{"one minute late", monday(17, 1), Status{Open: false, Message: "closed"}},
		{"midday", monday(12, 30), Status{Open: true, Message: "open until 17:00"}},
		{"seconds within closing minute", monday(17, 0).Add(59 * time.Second), Status{Open: true, Message: "open until 17:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(&s, tt.at))
		})
	}
}

func TestEvaluate_ClosedDay(t *testing.T) {
	s := weekSchedule()
	sunday := time.Date(2024, 3, 3, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, Status{Open: false, Message: "closed today"}, Evaluate(&s, sunday))
}

func TestEvaluate_Unavailable(t *testing.T) {
	assert.Equal(t, MsgScheduleUnavailable, Evaluate(nil, monday(9, 0)).Message)

	empty := Schedule{}
	assert.Equal(t, MsgScheduleUnavailable, Evaluate(&empty, monday(9, 0)).Message)

	missing := weekSchedule()
	delete(missing, "viernes")
	assert.Equal(t, Status{Open: false, Message: MsgScheduleUnavailable}, Evaluate(&missing, monday(9, 0)))

	garbled := weekSchedule()
	garbled["lunes"] = DaySchedule{Opens: "8am", Closes: "17:00"}
	assert.Equal(t, MsgScheduleUnavailable, Evaluate(&garbled, monday(9, 0)).Message)
}

func TestEvaluate_UsesWeekdayOfGivenTime(t *testing.T) {
	s := weekSchedule()
	s["sabado"] = DaySchedule{Opens: "07:00", Closes: "12:00"}
	saturday := time.Date(2024, 3, 9, 13, 0, 0, 0, time.UTC)

	assert.Equal(t, Status{Open: false, Message: "closed"}, Evaluate(&s, saturday))
}

func TestSchedule_Validate(t *testing.T) {
	assert.NoError(t, weekSchedule().Validate())
	assert.NoError(t, Schedule(nil).Validate())

	missing := weekSchedule()
	delete(missing, "miercoles")
	assert.ErrorContains(t, missing.Validate(), "miercoles: missing")

	reversed := weekSchedule()
	reversed["martes"] = DaySchedule{Opens: "18:00", Closes: "09:00"}
	assert.ErrorContains(t, reversed.Validate(), "martes: closes before it opens")

	bad := weekSchedule()
	bad["jueves"] = DaySchedule{Opens: "25:00", Closes: "26:00"}
	assert.ErrorContains(t, bad.Validate(), "jueves.opens")

	extra := weekSchedule()
	extra["monday"] = DaySchedule{Opens: "08:00", Closes: "09:00"}
	assert.ErrorContains(t, extra.Validate(), "monday: unknown day")
}

func TestSchedule_JSON(t *testing.T) {
	raw := `{"domingo":{"opens":"","closes":"","closed":true},
		"lunes":{"opens":"08:00","closes":"17:00","closed":false},
		"martes":{"opens":"08:00","closes":"17:00","closed":false},
		"miercoles":{"opens":"08:00","closes":"17:00","closed":false},
		"jueves":{"opens":"08:00","closes":"17:00","closed":false},
		"viernes":{"opens":"08:00","closes":"17:00","closed":false},
		"sabado":{"opens":"08:00","closes":"12:00","closed":false}}`

	var s Schedule
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	require.NoError(t, s.Validate())
	assert.Equal(t, "12:00", s["sabado"].Closes)
}
