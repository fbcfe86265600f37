package calendar_test

import (
	"testing"
	"time"

	"go-leave/internal/calendar"
	"go-leave/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCountBusinessDays(t *testing.T) {
	// 2025-03-03 is a Monday.
	mon := date(2025, 3, 3)
	wed := date(2025, 3, 5)
	sat := date(2025, 3, 8)
	sun := date(2025, 3, 9)
	nextMon := date(2025, 3, 10)

	tests := []struct {
		name     string
		from     time.Time
		to       time.Time
		session  domain.Session
		holidays calendar.HolidaySet
		want     string
	}{
		{"single working day full", mon, mon, domain.SessionFull, nil, "1"},
		{"single working day am", mon, mon, domain.SessionAM, nil, "0.5"},
		{"single working day pm", mon, mon, domain.SessionPM, nil, "0.5"},
		{"reversed range", wed, mon, domain.SessionFull, nil, "0"},
		{"reversed range half day", wed, mon, domain.SessionAM, nil, "0"},
		{"three weekdays", mon, wed, domain.SessionFull, nil, "3"},
		{"weekend only", sat, sun, domain.SessionFull, nil, "0"},
		{"weekend only half day", sat, sat, domain.SessionAM, nil, "0"},
		{"spans weekend", mon, nextMon, domain.SessionFull, nil, "6"},
		{"holiday excluded", mon, wed, domain.SessionFull, calendar.NewHolidaySet(date(2025, 3, 4)), "2"},
		{"single holiday", mon, mon, domain.SessionFull, calendar.NewHolidaySet(mon), "0"},
		{"single holiday half day", mon, mon, domain.SessionPM, calendar.NewHolidaySet(mon), "0"},
		{"multi day half session", mon, wed, domain.SessionAM, nil, "2.5"},
		{"multi day half session with one working day", mon, date(2025, 3, 4), domain.SessionAM, calendar.NewHolidaySet(date(2025, 3, 4)), "0.5"},
		{"holiday on weekend counted once", sat, nextMon, domain.SessionFull, calendar.NewHolidaySet(sat), "1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := calendar.CountBusinessDays(tc.from, tc.to, tc.session, tc.holidays)
			assert.True(t, decimal.RequireFromString(tc.want).Equal(got), "want %s got %s", tc.want, got)
		})
	}
}

func TestCountBusinessDays_Properties(t *testing.T) {
	holidays := calendar.NewHolidaySet(date(2025, 1, 1), date(2025, 4, 14), date(2025, 12, 25))
	start := date(2025, 1, 1)
	halfStep := decimal.NewFromFloat(0.5)

	for i := 0; i < 60; i++ {
		from := start.AddDate(0, 0, i*3)
		for span := -2; span < 12; span++ {
			to := from.AddDate(0, 0, span)
			for _, session := range []domain.Session{domain.SessionFull, domain.SessionAM, domain.SessionPM} {
				got := calendar.CountBusinessDays(from, to, session, holidays)

				assert.False(t, got.IsNegative())
				assert.True(t, got.Mod(halfStep).IsZero(), "not a multiple of 0.5: %s", got)
				if to.Before(from) {
					assert.True(t, got.IsZero())
				}
				assert.True(t, got.Equal(calendar.CountBusinessDays(from, to, session, holidays)))

				var full int64
				for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
					if calendar.IsWorkingDay(d, holidays) {
						full++
					}
				}
				if session == domain.SessionFull {
					assert.Equal(t, full, got.IntPart())
				}
			}
		}
	}
}

func TestCountBusinessDays_IgnoresTimeOfDay(t *testing.T) {
	from := time.Date(2025, 3, 3, 17, 30, 0, 0, time.UTC)
	to := time.Date(2025, 3, 4, 1, 0, 0, 0, time.UTC)

	got := calendar.CountBusinessDays(from, to, domain.SessionFull, nil)

	assert.True(t, decimal.NewFromInt(2).Equal(got))
}

func TestHolidaySet_Contains(t *testing.T) {
	set := calendar.NewHolidaySet(date(2025, 5, 1))

	assert.True(t, set.Contains(date(2025, 5, 1)))
	assert.False(t, set.Contains(date(2025, 5, 2)))

	var empty calendar.HolidaySet
	assert.False(t, empty.Contains(date(2025, 5, 1)))
}
