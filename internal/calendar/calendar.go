// Package calendar counts chargeable leave days between two dates.
//
// Weekends and holidays are never charged. A half-day session charges 0.5
// for exactly one boundary day of the range.
package calendar

import (
	"time"

	"go-leave/internal/domain"

	"github.com/shopspring/decimal"
)

var half = decimal.NewFromFloat(0.5)

// HolidaySet holds holiday dates keyed by YYYY-MM-DD.
type HolidaySet map[string]struct{}

func NewHolidaySet(dates ...time.Time) HolidaySet {
	set := make(HolidaySet, len(dates))
	for _, d := range dates {
		set[d.Format(domain.DateLayout)] = struct{}{}
	}
	return set
}

func (h HolidaySet) Contains(d time.Time) bool {
	if h == nil {
		return false
	}
	_, ok := h[d.Format(domain.DateLayout)]
	return ok
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func IsWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsWorkingDay reports whether d is neither a weekend nor a holiday.
func IsWorkingDay(d time.Time, holidays HolidaySet) bool {
	return !IsWeekend(d) && !holidays.Contains(d)
}

// CountBusinessDays returns the chargeable day count for [from, to].
// It returns zero when to is before from.
func CountBusinessDays(from, to time.Time, session domain.Session, holidays HolidaySet) decimal.Decimal {
	from, to = Day(from), Day(to)
	if to.Before(from) {
		return decimal.Zero
	}

	full := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if IsWorkingDay(d, holidays) {
			full++
		}
	}

	if session == domain.SessionFull || session == "" {
		return decimal.NewFromInt(int64(full))
	}

	if full == 0 {
		return decimal.Zero
	}
	if from.Equal(to) {
		return half
	}
	return decimal.NewFromInt(int64(full - 1)).Add(half)
}
