package mockdata

import (
	"fmt"
	"math"

	"github.com/odyssey-erp/warroom/internal/org"
	"github.com/odyssey-erp/warroom/internal/period"
)

// Utilisation statuses.
const (
	StatusOptimal         = "Optimal"
	StatusHighMaintenance = "High Maintenance"
	StatusUnreliable      = "Unreliable"
)

// UtilizationDetail is one employee's availability over the period.
type UtilizationDetail struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Dept        string  `json:"dept"`
	Theoretical int     `json:"theoretical"`
	Maintenance float64 `json:"maintenance"`
	Breakdown   float64 `json:"breakdown"`
	Utilization float64 `json:"utilization"`
	Status      string  `json:"status"`
}

// TrendPoint is one period of the utilisation trend line.
type TrendPoint struct {
	Name      string  `json:"name"`
	Current   float64 `json:"current"`
	Benchmark float64 `json:"benchmark"`
}

// Availability backs the utilisation view.
type Availability struct {
	Workdays       int                 `json:"workdays"`
	Details        []UtilizationDetail `json:"details"`
	AvgUtil        float64             `json:"avg_util"`
	AvgBreakdown   float64             `json:"avg_breakdown"`
	TotalPlanned   float64             `json:"total_planned"`
	TotalUnplanned float64             `json:"total_unplanned"`
	Trend          []TrendPoint        `json:"trend"`
}

// Unreliable reports whether the average utilisation is below the reliable level.
func (a Availability) Unreliable() bool { return a.AvgUtil < 90 }

// BreakdownHigh reports whether unplanned downtime exceeds five percent.
func (a Availability) BreakdownHigh() bool { return a.AvgBreakdown > 5 }

const utilizationBenchmark = 92

var (
	availabilityDepts = []string{"研發一部", "客服中心", "業務一課", "管理部", "行銷部"}
	availabilityNames = []string{"王大明", "李小美", "張建國", "陳志遠", "林志豪", "趙敏", "周芷若", "張無忌"}
)

// BuildAvailability generates utilisation figures for the unit over the
// period implied by g.
func BuildAvailability(date string, unit org.UnitID, unitName string, g period.Granularity) Availability {
	hash := StringHash(date + string(unit) + string(g))
	theo := period.TheoreticalWorkdays(g)
	scale := float64(theo / period.TheoreticalWorkdays(period.Month))

	details := make([]UtilizationDetail, 0, len(availabilityNames))
	for i, name := range availabilityNames {
		idx := int64(i)
		m := float64((hash+idx)%4) * scale
		var b float64
		if (hash*idx)%3 == 0 {
			b = float64(hash%3) * scale
		}
		util := math.Max(0, (float64(theo)-(m+b))/float64(theo)*100)

		status := StatusOptimal
		switch {
		case b/float64(theo) > 0.05 || util < 90:
			status = StatusUnreliable
		case m/float64(theo) > 0.15:
			status = StatusHighMaintenance
		}

		dept := availabilityDepts[i%len(availabilityDepts)]
		if unit != org.All && dept != unitName {
			continue
		}
		details = append(details, UtilizationDetail{
			ID:          fmt.Sprintf("EMP-%d", 100+i),
			Name:        name,
			Dept:        dept,
			Theoretical: theo,
			Maintenance: m,
			Breakdown:   b,
			Utilization: round1(util),
			Status:      status,
		})
	}

	out := Availability{Workdays: theo, Details: details}
	var sumUtil float64
	for _, d := range details {
		sumUtil += d.Utilization
		out.TotalPlanned += d.Maintenance
		out.TotalUnplanned += d.Breakdown
	}
	if n := len(details); n > 0 {
		out.AvgUtil = round1(sumUtil / float64(n))
		out.AvgBreakdown = round1(out.TotalUnplanned / float64(n*theo) * 100)
	}
	out.Trend = trend(out.AvgUtil, g)
	return out
}

func trend(avg float64, g period.Granularity) []TrendPoint {
	var names []string
	switch g {
	case period.Year:
		names = []string{"Q1", "Q2", "Q3", "Q4"}
	case period.Quarter:
		names = []string{"M1", "M2", "M3"}
	default:
		names = []string{"W1", "W2", "W3", "W4"}
	}
	points := make([]TrendPoint, len(names))
	for i, name := range names {
		points[i] = TrendPoint{
			Name:      name,
			Current:   round1(avg - 5 + math.Sin(float64(i))*3),
			Benchmark: utilizationBenchmark,
		}
	}
	return points
}
