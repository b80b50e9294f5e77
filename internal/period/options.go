package period

import (
	"fmt"
	"time"
)

// yearWindow is the number of years offered by the picker, ending with the
// current one.
const yearWindow = 3

// Option is a single entry of a picker column.
type Option struct {
	Value int
	Label string
}

// YearOptions lists the selectable years: the current year and the two before it.
func YearOptions(now time.Time) []Option {
	current := now.Year()
	opts := make([]Option, 0, yearWindow)
	for y := current - yearWindow + 1; y <= current; y++ {
		opts = append(opts, Option{Value: y, Label: fmt.Sprintf("%d年", y)})
	}
	return opts
}

// MonthOptions lists the selectable months of year. The current year is cut
// off at the current month.
func MonthOptions(year int, now time.Time) []Option {
	limit := maxMonth(year, now)
	opts := make([]Option, 0, limit)
	for m := 1; m <= limit; m++ {
		opts = append(opts, Option{Value: m, Label: fmt.Sprintf("%d月", m)})
	}
	return opts
}

// QuarterOptions lists the selectable quarters of year. The current year is
// cut off at the current quarter.
func QuarterOptions(year int, now time.Time) []Option {
	limit := maxQuarter(year, now)
	opts := make([]Option, 0, limit)
	for q := 1; q <= limit; q++ {
		opts = append(opts, Option{Value: q, Label: fmt.Sprintf("Q%d", q)})
	}
	return opts
}

// ClampYear pulls year into the year window.
func ClampYear(year int, now time.Time) int {
	return clamp(year, now.Year()-yearWindow+1, now.Year())
}

// ClampMonth pulls month into the months selectable for year.
func ClampMonth(year, month int, now time.Time) int {
	return clamp(month, 1, maxMonth(year, now))
}

// ClampQuarter pulls quarter into the quarters selectable for year.
func ClampQuarter(year, quarter int, now time.Time) int {
	return clamp(quarter, 1, maxQuarter(year, now))
}

func maxMonth(year int, now time.Time) int {
	if year == now.Year() {
		return int(now.Month())
	}
	return 12
}

func maxQuarter(year int, now time.Time) int {
	if year == now.Year() {
		return QuarterOf(int(now.Month()))
	}
	return 4
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
