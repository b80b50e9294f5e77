// Package period implements calendar arithmetic for the dashboard's time
// selector: period boundaries, display labels and the option lists offered
// by the picker.
package period

import (
	"errors"
	"fmt"
	"time"
)

// Granularity is the time-bucket size the dashboard is inspected at.
type Granularity string

const (
	Day     Granularity = "day"
	Month   Granularity = "month"
	Quarter Granularity = "quarter"
	Year    Granularity = "year"
)

// Granularities lists every granularity in picker order.
var Granularities = []Granularity{Day, Month, Quarter, Year}

// ErrInvalidGranularity indicates a value outside the closed enumeration.
var ErrInvalidGranularity = errors.New("period: invalid granularity")

// ErrInvalidDate indicates a date string that is not YYYY-MM-DD.
var ErrInvalidDate = errors.New("period: invalid date")

const isoLayout = "2006-01-02"

// ParseGranularity converts raw input into a Granularity.
func ParseGranularity(raw string) (Granularity, error) {
	switch g := Granularity(raw); g {
	case Day, Month, Quarter, Year:
		return g, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidGranularity, raw)
}

// Label returns the short picker caption.
func (g Granularity) Label() string {
	switch g {
	case Day:
		return "日"
	case Month:
		return "月"
	case Quarter:
		return "季"
	case Year:
		return "年"
	}
	panic(fmt.Sprintf("period: unknown granularity %q", string(g)))
}

// Date builds a civil date at midnight UTC.
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// Truncate drops the clock part of t, keeping its calendar day.
func Truncate(t time.Time) time.Time {
	return Date(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a YYYY-MM-DD string into a civil date.
func ParseDate(raw string) (time.Time, error) {
	t, err := time.Parse(isoLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return t, nil
}

// FormatISO renders the date as YYYY-MM-DD.
func FormatISO(t time.Time) string {
	return t.Format(isoLayout)
}

// DaysInMonth returns the number of days of month (1-12) in year.
func DaysInMonth(year, month int) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekdayOfMonth returns the weekday (0 = Sunday) of the first day of month.
func FirstWeekdayOfMonth(year, month int) int {
	return int(Date(year, month, 1).Weekday())
}

// QuarterOf returns the quarter (1-4) that month belongs to.
func QuarterOf(month int) int {
	return (month + 2) / 3
}

// FormatLabel renders the display label of date at granularity g.
func FormatLabel(date time.Time, g Granularity) string {
	y, m, d := date.Year(), int(date.Month()), date.Day()
	switch g {
	case Day:
		return fmt.Sprintf("%d/%d/%d", y, m, d)
	case Month:
		return fmt.Sprintf("%d/%d", y, m)
	case Quarter:
		return fmt.Sprintf("%d/Q%d", y, QuarterOf(m))
	case Year:
		return fmt.Sprintf("%d年", y)
	}
	panic(fmt.Sprintf("period: unknown granularity %q", string(g)))
}

// NormalizePeriodStart returns the first day of the period described by the
// arguments. quarter is only read for Quarter granularity.
func NormalizePeriodStart(year, month int, g Granularity, quarter int) time.Time {
	switch g {
	case Day, Month:
		if month < 1 || month > 12 {
			panic(fmt.Sprintf("period: month %d out of range", month))
		}
		return Date(year, month, 1)
	case Quarter:
		if quarter < 1 || quarter > 4 {
			panic(fmt.Sprintf("period: quarter %d out of range", quarter))
		}
		return Date(year, (quarter-1)*3+1, 1)
	case Year:
		return Date(year, 1, 1)
	}
	panic(fmt.Sprintf("period: unknown granularity %q", string(g)))
}

// Bounds returns the first and last calendar day of the period containing date.
func Bounds(date time.Time, g Granularity) (start, end time.Time) {
	date = Truncate(date)
	switch g {
	case Day:
		return date, date
	case Month:
		start = Date(date.Year(), int(date.Month()), 1)
		return start, start.AddDate(0, 1, -1)
	case Quarter:
		start = NormalizePeriodStart(date.Year(), 0, Quarter, QuarterOf(int(date.Month())))
		return start, start.AddDate(0, 3, -1)
	case Year:
		start = Date(date.Year(), 1, 1)
		return start, start.AddDate(1, 0, -1)
	}
	panic(fmt.Sprintf("period: unknown granularity %q", string(g)))
}

// TheoreticalWorkdays approximates the number of work days in a period.
func TheoreticalWorkdays(g Granularity) int {
	switch g {
	case Year:
		return 264
	case Quarter:
		return 66
	default:
		return 22
	}
}
