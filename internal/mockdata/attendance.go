package mockdata

import (
	"math"
	"sort"
	"strconv"

	"github.com/odyssey-erp/warroom/internal/org"
)

// Stat is a KPI card.
type Stat struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Status string `json:"status"`
	Unit   string `json:"unit"`
}

// RankItem is one bar of a ranking chart.
type RankItem struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Attendance backs the attendance analysis view.
type Attendance struct {
	Stats    []Stat     `json:"stats"`
	Leave    []RankItem `json:"leave"`
	Overtime []RankItem `json:"overtime"`
	ByPerson bool       `json:"by_person"`
}

var departmentLeaveBase = []RankItem{
	{Name: "全公司", Value: 5.1},
	{Name: "研發一部", Value: 7.6},
	{Name: "研發二部", Value: 3.9},
	{Name: "業務一課", Value: 9.9},
	{Name: "客服中心", Value: 6.3},
	{Name: "管理部", Value: 2.0},
}

var departmentOvertimeBase = []RankItem{
	{Name: "全公司", Value: 24.5},
	{Name: "研發一部", Value: 32.5},
	{Name: "研發二部", Value: 18.2},
	{Name: "業務一課", Value: 12.8},
	{Name: "客服中心", Value: 28.1},
	{Name: "管理部", Value: 5.5},
}

// BuildAttendance generates the attendance KPIs and the leave / overtime
// rankings. byPerson switches the rankings from departments to people.
func BuildAttendance(date string, unit org.UnitID, byPerson bool) Attendance {
	seed := CharSum(date)
	rate := float64(88+seed%8) * unitFactor(unit)

	attendanceStatus := "warning"
	if rate >= 92 {
		attendanceStatus = "green"
	}
	absenceStatus := "green"
	if rate < 90 {
		absenceStatus = "warning"
	}

	out := Attendance{
		ByPerson: byPerson,
		Stats: []Stat{
			{Label: "出勤率", Value: fixed1(math.Min(99.4, rate)), Status: attendanceStatus, Unit: "%"},
			{Label: "缺勤率", Value: fixed1(100 - rate), Status: absenceStatus, Unit: "%"},
			{Label: "遲到率", Value: fixed1(3.2 + float64(seed%4)), Status: "warning", Unit: "%"},
			{Label: "加班均值", Value: fixed0(22 + float64(seed%15)), Status: "danger", Unit: "h"},
		},
	}

	if byPerson {
		out.Leave = personRanking(4.0, 1.5, seed%3)
		out.Overtime = personRanking(18.0, 4, seed%5)
		return out
	}
	out.Leave = shiftRanking(departmentLeaveBase, float64(seed%5))
	out.Overtime = shiftRanking(departmentOvertimeBase, float64(seed%10))
	return out
}

func unitFactor(unit org.UnitID) float64 {
	switch unit {
	case "cs":
		return 0.92
	case "rd1":
		return 0.97
	default:
		return 1
	}
}

func personRanking(base, step float64, offset int) []RankItem {
	items := make([]RankItem, len(rankingNames))
	for i, name := range rankingNames {
		items[i] = RankItem{Name: name, Value: round1(base + float64(i)*step + float64(offset))}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Value > items[j].Value })
	return items
}

func shiftRanking(base []RankItem, offset float64) []RankItem {
	items := make([]RankItem, len(base))
	for i, item := range base {
		items[i] = RankItem{Name: item.Name, Value: round1(item.Value + offset)}
	}
	return items
}

func fixed0(v float64) string {
	return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
}
