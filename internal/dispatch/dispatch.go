// Package dispatch maps the active (tab, sub-tab) pair to the payload the
// corresponding view renders.
package dispatch

import (
	"errors"
	"fmt"

	"github.com/odyssey-erp/warroom/internal/org"
	"github.com/odyssey-erp/warroom/internal/period"
	"github.com/odyssey-erp/warroom/internal/selection"
)

// ErrUnknownView indicates a (tab, sub-tab) pair outside the closed enumeration.
var ErrUnknownView = errors.New("dispatch: unknown view")

// View names a presentational view.
type View string

const (
	ViewAttendance   View = "attendance"
	ViewAvailability View = "availability"
	ViewAnalysis     View = "analysis"
	ViewPresence     View = "presence"
	ViewHandover     View = "handover"
	ViewCare         View = "care"
)

// Route is the navigation position of the dashboard.
type Route struct {
	Tab selection.MainTab `json:"tab"`
	Sub selection.SubTab  `json:"sub"`
}

// RouteOf returns the route of the state's active tab.
func RouteOf(s selection.State) Route {
	return Route{Tab: s.MainTab, Sub: s.ActiveSubTab()}
}

// Payload is one of the view bundles defined in this package.
type Payload interface {
	View() View
	payload()
}

// AttendancePayload feeds the attendance analysis view.
type AttendancePayload struct {
	selection.ViewModel
}

// AvailabilityPayload feeds the utilisation view. Workdays follows the
// granularity.
type AvailabilityPayload struct {
	selection.ViewModel
	Workdays int `json:"workdays"`
}

// AnalysisPayload feeds the seven-day staffing forecast, which starts the day
// after ForecastFrom.
type AnalysisPayload struct {
	Role         org.Role   `json:"role"`
	UnitID       org.UnitID `json:"unit_id"`
	UnitName     string     `json:"unit_name"`
	ForecastFrom string     `json:"forecast_from"`
}

// PresencePayload feeds the daily team presence view.
type PresencePayload struct {
	selection.ViewModel
	ScheduleRange string `json:"schedule_range"`
}

// HandoverPayload feeds the deputy handover view, which takes no selection input.
type HandoverPayload struct{}

// CarePayload feeds the care view. Focus is the care sub-tab.
type CarePayload struct {
	Role     org.Role         `json:"role"`
	UnitID   org.UnitID       `json:"unit_id"`
	UnitName string           `json:"unit_name"`
	Focus    selection.SubTab `json:"focus"`
}

func (AttendancePayload) View() View   { return ViewAttendance }
func (AvailabilityPayload) View() View { return ViewAvailability }
func (AnalysisPayload) View() View     { return ViewAnalysis }
func (PresencePayload) View() View     { return ViewPresence }
func (HandoverPayload) View() View     { return ViewHandover }
func (CarePayload) View() View         { return ViewCare }

func (AttendancePayload) payload()   {}
func (AvailabilityPayload) payload() {}
func (AnalysisPayload) payload()     {}
func (PresencePayload) payload()     {}
func (HandoverPayload) payload()     {}
func (CarePayload) payload()         {}

// Dispatch selects the payload for route.
func Dispatch(vm selection.ViewModel, route Route) (Payload, error) {
	switch route.Tab {
	case selection.TabWarRoom:
		switch route.Sub {
		case selection.SubAttendance:
			return AttendancePayload{ViewModel: vm}, nil
		case selection.SubAvailability:
			return AvailabilityPayload{ViewModel: vm, Workdays: period.TheoreticalWorkdays(vm.Granularity)}, nil
		case selection.SubAnalysis:
			return AnalysisPayload{Role: vm.Role, UnitID: vm.UnitID, UnitName: vm.UnitName, ForecastFrom: vm.SelectedDate}, nil
		}
	case selection.TabManagement:
		switch route.Sub {
		case selection.SubPresence:
			return PresencePayload{ViewModel: vm, ScheduleRange: "today"}, nil
		case selection.SubHandover:
			return HandoverPayload{}, nil
		}
	case selection.TabCare:
		switch route.Sub {
		case selection.SubRetention, selection.SubBurnout, selection.SubAbnormal, selection.SubHeatmap:
			return CarePayload{Role: vm.Role, UnitID: vm.UnitID, UnitName: vm.UnitName, Focus: route.Sub}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s/%s", ErrUnknownView, route.Tab, route.Sub)
}

// MustDispatch is Dispatch for routes built from a validated state. It panics
// on unknown routes.
func MustDispatch(vm selection.ViewModel, route Route) Payload {
	p, err := Dispatch(vm, route)
	if err != nil {
		panic(err)
	}
	return p
}
