package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year, month, want int
	}{
		{2024, 2, 29},
		{2023, 2, 28},
		{1900, 2, 28},
		{2000, 2, 29},
		{2024, 1, 31},
		{2024, 4, 30},
		{2024, 12, 31},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DaysInMonth(tc.year, tc.month), "%d-%02d", tc.year, tc.month)
	}
}

func TestFirstWeekdayOfMonth(t *testing.T) {
	assert.Equal(t, 3, FirstWeekdayOfMonth(2024, 5)) // Wednesday
	assert.Equal(t, 0, FirstWeekdayOfMonth(2023, 10))
	assert.Equal(t, 6, FirstWeekdayOfMonth(2025, 11))
}

func TestFormatLabel(t *testing.T) {
	date := Date(2024, 5, 15)
	assert.Equal(t, "2024/5/15", FormatLabel(date, Day))
	assert.Equal(t, "2024/5", FormatLabel(date, Month))
	assert.Equal(t, "2024/Q2", FormatLabel(date, Quarter))
	assert.Equal(t, "2024年", FormatLabel(date, Year))
	assert.Panics(t, func() { FormatLabel(date, Granularity("week")) })
}

func TestNormalizePeriodStartMatchesLabel(t *testing.T) {
	start := NormalizePeriodStart(2024, 0, Quarter, 2)
	assert.Equal(t, "2024-04-01", FormatISO(start))
	assert.Equal(t, "2024/Q2", FormatLabel(start, Quarter))

	assert.Equal(t, "2024-07-01", FormatISO(NormalizePeriodStart(2024, 7, Month, 0)))
	assert.Equal(t, "2023-07-01", FormatISO(NormalizePeriodStart(2023, 0, Quarter, 3)))
	assert.Equal(t, "2022-01-01", FormatISO(NormalizePeriodStart(2022, 9, Year, 0)))
	assert.Panics(t, func() { NormalizePeriodStart(2024, 13, Month, 0) })
}

func TestBounds(t *testing.T) {
	start, end := Bounds(Date(2024, 8, 20), Quarter)
	assert.Equal(t, "2024-07-01", FormatISO(start))
	assert.Equal(t, "2024-09-30", FormatISO(end))

	start, end = Bounds(Date(2024, 2, 10), Month)
	assert.Equal(t, "2024-02-01", FormatISO(start))
	assert.Equal(t, "2024-02-29", FormatISO(end))

	start, end = Bounds(Date(2023, 6, 1), Year)
	assert.Equal(t, "2023-01-01", FormatISO(start))
	assert.Equal(t, "2023-12-31", FormatISO(end))
}

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity("quarter")
	require.NoError(t, err)
	assert.Equal(t, Quarter, g)

	_, err = ParseGranularity("week")
	assert.ErrorIs(t, err, ErrInvalidGranularity)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-05-15")
	require.NoError(t, err)
	assert.Equal(t, Date(2024, 5, 15), d)

	_, err = ParseDate("2024/05/15")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestOptionsClampedToNow(t *testing.T) {
	now := time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)

	years := YearOptions(now)
	require.Len(t, years, 3)
	assert.Equal(t, 2022, years[0].Value)
	assert.Equal(t, "2024年", years[2].Label)

	months := MonthOptions(2024, now)
	require.Len(t, months, 5)
	assert.Equal(t, "5月", months[4].Label)
	assert.Len(t, MonthOptions(2023, now), 12)

	quarters := QuarterOptions(2024, now)
	require.Len(t, quarters, 2)
	assert.Equal(t, "Q2", quarters[1].Label)
	assert.Len(t, QuarterOptions(2022, now), 4)
}

func TestClamp(t *testing.T) {
	now := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 5, ClampMonth(2024, 9, now))
	assert.Equal(t, 9, ClampMonth(2023, 9, now))
	assert.Equal(t, 1, ClampMonth(2023, 0, now))
	assert.Equal(t, 2, ClampQuarter(2024, 4, now))
	assert.Equal(t, 2022, ClampYear(2019, now))
	assert.Equal(t, 2024, ClampYear(2030, now))
}

func TestCalendarGrid(t *testing.T) {
	now := time.Date(2024, 5, 15, 18, 30, 0, 0, time.UTC)
	grid := CalendarGrid(2024, 5, now)

	assert.Equal(t, 3, grid.Padding)
	assert.Equal(t, "2024年 5月", grid.Caption)
	require.Len(t, grid.Cells, 31)
	assert.Equal(t, "2024-05-01", grid.Cells[0].Date)
	assert.False(t, grid.Cells[14].Future, "today is selectable")
	assert.True(t, grid.Cells[15].Future)
}

func TestIsFuture(t *testing.T) {
	now := time.Date(2024, 5, 15, 8, 0, 0, 0, time.UTC)
	assert.False(t, IsFuture(Date(2024, 5, 15), now))
	assert.True(t, IsFuture(Date(2024, 5, 16), now))
	assert.False(t, IsFuture(Date(2023, 12, 31), now))
}

func TestTheoreticalWorkdays(t *testing.T) {
	assert.Equal(t, 264, TheoreticalWorkdays(Year))
	assert.Equal(t, 66, TheoreticalWorkdays(Quarter))
	assert.Equal(t, 22, TheoreticalWorkdays(Month))
	assert.Equal(t, 22, TheoreticalWorkdays(Day))
}
