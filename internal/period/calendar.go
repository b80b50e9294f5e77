package period

import (
	"fmt"
	"time"
)

// WeekdayHeaders are the column captions of the day grid, Sunday first.
var WeekdayHeaders = []string{"日", "一", "二", "三", "四", "五", "六"}

// Cell is one day of the calendar grid.
type Cell struct {
	Day    int
	Date   string
	Future bool
}

// Grid is a month laid out for a Sunday-first calendar.
type Grid struct {
	Year    int
	Month   int
	Caption string
	Padding int
	Cells   []Cell
}

// CalendarGrid lays out month of year. Days after now's calendar day are
// flagged as Future.
func CalendarGrid(year, month int, now time.Time) Grid {
	today := Truncate(now)
	days := DaysInMonth(year, month)
	grid := Grid{
		Year:    year,
		Month:   month,
		Caption: FormatLabel(Date(year, month, 1), Year) + " " + monthCaption(month),
		Padding: FirstWeekdayOfMonth(year, month),
		Cells:   make([]Cell, 0, days),
	}
	for d := 1; d <= days; d++ {
		date := Date(year, month, d)
		grid.Cells = append(grid.Cells, Cell{
			Day:    d,
			Date:   FormatISO(date),
			Future: date.After(today),
		})
	}
	return grid
}

// IsFuture reports whether date lies on a calendar day after now.
func IsFuture(date, now time.Time) bool {
	return Truncate(date).After(Truncate(now))
}

func monthCaption(month int) string {
	return fmt.Sprintf("%d月", month)
}
