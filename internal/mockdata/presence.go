package mockdata

import (
	"errors"
	"fmt"
	"strings"

	"github.com/odyssey-erp/warroom/internal/org"
)

// PresenceStatus is where an employee works today.
type PresenceStatus string

const (
	PresenceOffice PresenceStatus = "office"
	PresenceField  PresenceStatus = "field"
	PresenceWFH    PresenceStatus = "wfh"
	PresenceLeave  PresenceStatus = "leave"
)

// PresenceFilterAll disables the status filter.
const PresenceFilterAll = "all"

// ErrInvalidPresenceFilter is returned for unknown status filters.
var ErrInvalidPresenceFilter = errors.New("mockdata: invalid presence filter")

// ParsePresenceFilter validates a status filter. An empty string means all.
func ParsePresenceFilter(raw string) (string, error) {
	switch raw {
	case "", PresenceFilterAll:
		return PresenceFilterAll, nil
	case string(PresenceOffice), string(PresenceField), string(PresenceWFH), string(PresenceLeave):
		return raw, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPresenceFilter, raw)
}

const rosterSize = 150

var (
	presenceNames = []string{
		"陳志強", "林雅君", "王大衛", "張雅雯", "李子豪", "許曉明", "黃建國", "周佩珊", "趙敏", "張無忌",
		"周芷若", "林志豪", "許志安", "王小明", "李小美", "林建忠", "許雅惠", "陳冠廷", "張美玲", "王俊傑",
	}
	presenceTitles = []string{"資深工程師", "產品經理", "業務專員", "UI 設計師", "行政專員", "客服主任"}
	presenceDepts  = []string{"研發一部", "研發二部", "業務一課", "客服中心", "管理部"}
	presenceLeave  = []string{"特休", "病假", "事假"}
)

// Employee is one row of the presence roster.
type Employee struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	Title       string         `json:"title"`
	Dept        string         `json:"dept"`
	Status      PresenceStatus `json:"status"`
	AvatarID    int            `json:"avatar_id"`
	CheckInTime string         `json:"check_in_time,omitempty"`
	LeaveType   string         `json:"leave_type,omitempty"`
}

// PresenceCounts tallies the roster by status.
type PresenceCounts struct {
	Office int `json:"office"`
	WFH    int `json:"wfh"`
	Leave  int `json:"leave"`
}

// Presence backs the team presence view.
type Presence struct {
	Total     int            `json:"total"`
	Present   int            `json:"present"`
	Counts    PresenceCounts `json:"counts"`
	Employees []Employee     `json:"employees"`
}

// PresentRatio is the share of the roster working today.
func (p Presence) PresentRatio() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Present) / float64(p.Total)
}

// BuildPresence generates the roster for date restricted to the unit.
func BuildPresence(date string, unit org.UnitID) Presence {
	seed := CharSum(date)
	target, scoped := "", false
	if unit != org.All {
		if d, ok := org.Lookup(unit); ok {
			target, scoped = d.Name, true
		}
	}

	var out Presence
	for i := 0; i < rosterSize; i++ {
		emp := rosterEntry(i, seed)
		if scoped && emp.Dept != target {
			continue
		}
		switch emp.Status {
		case PresenceOffice:
			out.Counts.Office++
		case PresenceWFH:
			out.Counts.WFH++
		case PresenceLeave:
			out.Counts.Leave++
		}
		out.Employees = append(out.Employees, emp)
	}
	out.Total = len(out.Employees)
	out.Present = out.Counts.Office + out.Counts.WFH
	return out
}

func rosterEntry(i, seed int) Employee {
	p := (i*13 + seed) % rosterSize
	status := PresenceOffice
	switch {
	case p < 9:
		status = PresenceLeave
	case p < 51:
		status = PresenceWFH
	}

	name := presenceNames[i%len(presenceNames)]
	if i > 20 {
		name = fmt.Sprintf("%s %d", name, i)
	}
	emp := Employee{
		ID:       i,
		Name:     name,
		Title:    presenceTitles[i%len(presenceTitles)],
		Dept:     presenceDepts[i%len(presenceDepts)],
		Status:   status,
		AvatarID: (i*7 + seed) % 70,
	}
	switch status {
	case PresenceOffice:
		emp.CheckInTime = fmt.Sprintf("08:%02d", (i*17+seed)%59)
	case PresenceLeave:
		emp.LeaveType = presenceLeave[i%len(presenceLeave)]
	}
	return emp
}

// FilterEmployees keeps employees matching status (or all) whose name or
// department contains search.
func FilterEmployees(employees []Employee, status, search string) []Employee {
	search = strings.TrimSpace(search)
	out := make([]Employee, 0, len(employees))
	for _, e := range employees {
		if status != "" && status != PresenceFilterAll && string(e.Status) != status {
			continue
		}
		if search != "" && !strings.Contains(e.Name, search) && !strings.Contains(e.Dept, search) {
			continue
		}
		out = append(out, e)
	}
	return out
}
