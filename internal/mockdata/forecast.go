package mockdata

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/odyssey-erp/warroom/internal/org"
	"github.com/odyssey-erp/warroom/internal/period"
)

// Dimension groups the forecast rows.
type Dimension string

const (
	DimensionDept Dimension = "dept"
	DimensionJob  Dimension = "job"
)

// ErrInvalidDimension is returned for dimensions other than dept and job.
var ErrInvalidDimension = errors.New("mockdata: invalid forecast dimension")

// ParseDimension validates a forecast dimension. An empty string selects dept.
func ParseDimension(raw string) (Dimension, error) {
	switch Dimension(raw) {
	case "", DimensionDept:
		return DimensionDept, nil
	case DimensionJob:
		return DimensionJob, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDimension, raw)
}

// ForecastDays is the number of days covered by the forecast.
const ForecastDays = 7

const (
	forecastHeadcount = 20
	riskThreshold     = 85
	fridayDip         = 5
)

// LeaveEntry is a confirmed leave on a forecast day.
type LeaveEntry struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ForecastCell is one day of a forecast row.
type ForecastCell struct {
	Date             string       `json:"date"`
	DayLabel         string       `json:"day_label"`
	Value            int          `json:"value"`
	Headcount        int          `json:"headcount"`
	ConfirmedLeave   []LeaveEntry `json:"confirmed_leave"`
	PredictedAbsence int          `json:"predicted_absence"`
}

// Level buckets the staffing value for colouring.
func (c ForecastCell) Level() string {
	switch {
	case c.Value >= 92:
		return "green"
	case c.Value >= 80:
		return "warning"
	default:
		return "danger"
	}
}

// ForecastRow is a department or job level across the forecast days.
type ForecastRow struct {
	ID   string         `json:"id"`
	Name string         `json:"name"`
	Data []ForecastCell `json:"data"`
}

// Risk is the lowest staffing cell of the forecast.
type Risk struct {
	Row   string `json:"row"`
	Date  string `json:"date"`
	Value int    `json:"value"`
}

// Forecast backs the seven-day staffing forecast view.
type Forecast struct {
	Dimension Dimension     `json:"dimension"`
	Rows      []ForecastRow `json:"rows"`
	Risk      *Risk         `json:"risk,omitempty"`
}

type rowProfile struct {
	id, name         string
	base, volatility int
}

var (
	deptProfiles = []rowProfile{
		{"rd1", "研發一部", 95, 10},
		{"rd2", "研發二部", 92, 12},
		{"sales", "業務一課", 88, 20},
		{"cs", "客服中心", 85, 15},
		{"admin", "管理部", 98, 5},
	}
	jobProfiles = []rowProfile{
		{"mgr", "經理級", 98, 5},
		{"sen", "資深人員", 90, 15},
		{"jun", "初階人員", 95, 8},
		{"int", "實習生", 80, 20},
	}
	weekdayLabels = [...]string{"週日", "週一", "週二", "週三", "週四", "週五", "週六"}
	leaveNames    = []string{"陳小明", "林美玲", "張偉", "黃怡君", "李志強", "王淑芬"}
	leaveTypes    = []string{"特休", "事假", "補休", "公出"}
)

// BuildForecast generates the staffing forecast for the seven days after
// from. Managers looking at the department dimension only see their own
// rows.
func BuildForecast(from time.Time, role org.Role, unit org.UnitID, unitName string, dim Dimension) Forecast {
	profiles := jobProfiles
	if dim == DimensionDept {
		profiles = deptProfiles
	}

	rows := make([]ForecastRow, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, ForecastRow{ID: p.id, Name: p.name, Data: forecastCells(from, p)})
	}
	if role == org.RoleManager && dim == DimensionDept && unit != org.All {
		rows = managerRows(rows, unit, unitName)
	}

	return Forecast{Dimension: dim, Rows: rows, Risk: lowestCell(rows)}
}

func forecastCells(from time.Time, p rowProfile) []ForecastCell {
	key := p.id + period.FormatISO(from)
	cells := make([]ForecastCell, ForecastDays)
	for i := range cells {
		day := from.AddDate(0, 0, i+1)
		drop := int(StringHash(fmt.Sprintf("%d#%s", i, key)) % int64(p.volatility))
		value := p.base - drop
		if day.Weekday() == time.Friday {
			value -= fridayDip
		}
		value = int(math.Max(60, math.Min(100, float64(value))))

		absent := int(math.Round(forecastHeadcount * (1 - float64(value)/100)))
		predicted := int(math.Floor(float64(absent) * 0.3))
		leave := make([]LeaveEntry, absent-predicted)
		for j := range leave {
			leave[j] = LeaveEntry{Name: leaveNames[j%len(leaveNames)], Type: leaveTypes[j%len(leaveTypes)]}
		}

		cells[i] = ForecastCell{
			Date:             fmt.Sprintf("%d/%d", int(day.Month()), day.Day()),
			DayLabel:         weekdayLabels[day.Weekday()],
			Value:            value,
			Headcount:        forecastHeadcount,
			ConfirmedLeave:   leave,
			PredictedAbsence: predicted,
		}
	}
	return cells
}

func managerRows(rows []ForecastRow, unit org.UnitID, unitName string) []ForecastRow {
	id := string(unit)
	var out []ForecastRow
	for _, r := range rows {
		if r.ID == id || (unitName != "" && strings.Contains(r.Name, unitName)) ||
			(strings.HasPrefix(id, "rd") && strings.HasPrefix(r.ID, "rd")) {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return rows[:1]
	}
	return out
}

// lowestCell returns the worst cell when it falls below the risk threshold.
func lowestCell(rows []ForecastRow) *Risk {
	var risk *Risk
	lowest := 100
	for _, r := range rows {
		for _, c := range r.Data {
			if c.Value < lowest {
				lowest = c.Value
				risk = &Risk{Row: r.Name, Date: c.Date, Value: c.Value}
			}
		}
	}
	if risk == nil || risk.Value >= riskThreshold {
		return nil
	}
	return risk
}
