package selection

import (
	"time"

	"github.com/odyssey-erp/warroom/internal/org"
	"github.com/odyssey-erp/warroom/internal/period"
)

// ViewModel is the read-only bundle every view receives.
type ViewModel struct {
	Role         org.Role           `json:"role"`
	UnitID       org.UnitID         `json:"unit_id"`
	UnitName     string             `json:"unit_name"`
	SelectedDate string             `json:"selected_date"`
	Granularity  period.Granularity `json:"granularity"`
	Label        string             `json:"label"`
}

// ViewModel derives the view bundle from the current state.
func (s State) ViewModel() ViewModel {
	return ViewModel{
		Role:         s.Role,
		UnitID:       s.Unit,
		UnitName:     org.DisplayName(s.Unit),
		SelectedDate: period.FormatISO(s.Selected),
		Granularity:  s.Granularity,
		Label:        period.FormatLabel(s.Selected, s.Granularity),
	}
}

// ManagerView reports whether the views should list people rather than
// departments.
func (vm ViewModel) ManagerView() bool {
	return vm.Role == org.RoleManager || vm.UnitID != org.All
}

// GranularityOption is one button of the picker's granularity switch.
type GranularityOption struct {
	Value    period.Granularity `json:"value"`
	Label    string             `json:"label"`
	Active   bool               `json:"active"`
	Disabled bool               `json:"disabled"`
}

// PickerView is everything the picker dialog renders.
type PickerView struct {
	Mode             PickerMode          `json:"mode"`
	Granularities    []GranularityOption `json:"granularities"`
	Years            []period.Option     `json:"years,omitempty"`
	Months           []period.Option     `json:"months,omitempty"`
	Quarters         []period.Option     `json:"quarters,omitempty"`
	TentativeYear    int                 `json:"tentative_year"`
	TentativeMonth   int                 `json:"tentative_month"`
	TentativeQuarter int                 `json:"tentative_quarter"`
	Calendar         *period.Grid        `json:"calendar,omitempty"`
	NextMonthEnabled bool                `json:"next_month_enabled"`
	SelectedDate     string              `json:"selected_date"`
}

// PickerView derives the picker dialog contents at instant now.
func (s State) PickerView(now time.Time) PickerView {
	p := s.Picker
	view := PickerView{
		Mode:             s.PickerMode(),
		TentativeYear:    p.TentativeYear,
		TentativeMonth:   p.TentativeMonth,
		TentativeQuarter: p.TentativeQuarter,
		SelectedDate:     period.FormatISO(s.Selected),
	}
	for _, g := range period.Granularities {
		view.Granularities = append(view.Granularities, GranularityOption{
			Value:    g,
			Label:    g.Label(),
			Active:   g == s.Granularity,
			Disabled: !s.GranularityEnabled(g),
		})
	}
	switch view.Mode {
	case PickerDayGrid:
		grid := period.CalendarGrid(p.Cursor.Year(), int(p.Cursor.Month()), now)
		view.Calendar = &grid
		view.NextMonthEnabled = s.nextMonthEnabled(now)
	case PickerWheel:
		view.Years = period.YearOptions(now)
		switch s.Granularity {
		case period.Month:
			view.Months = period.MonthOptions(p.TentativeYear, now)
		case period.Quarter:
			view.Quarters = period.QuarterOptions(p.TentativeYear, now)
		}
	}
	return view
}

func (s State) nextMonthEnabled(now time.Time) bool {
	cursor := s.Picker.Cursor
	return cursor.Year() != now.Year() || cursor.Month() != now.Month()
}
