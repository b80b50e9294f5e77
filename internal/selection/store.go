package selection

import (
	"time"

	"github.com/odyssey-erp/warroom/internal/org"
	"github.com/odyssey-erp/warroom/internal/period"
)

// Clock returns the current instant. Stores read it on every transition so
// "now" is evaluated at event time.
type Clock func() time.Time

// Store applies transitions to a State. Each transition reports whether it
// changed anything; rejected inputs leave the state untouched.
type Store struct {
	state State
	now   Clock
}

// NewStore wraps state. A nil clock falls back to time.Now.
func NewStore(state State, now Clock) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{state: state, now: now}
}

// State returns a copy of the current state.
func (s *Store) State() State {
	return s.state
}

// Now exposes the store clock.
func (s *Store) Now() time.Time {
	return s.now()
}

// SelectMainTab switches the top-level tab. Entering the management tab
// forces day granularity.
func (s *Store) SelectMainTab(tab MainTab) bool {
	if !validMainTab(tab) {
		return false
	}
	before := s.state
	s.state.MainTab = tab
	if tab == TabManagement && s.state.Granularity != period.Day {
		s.applyGranularity(period.Day)
	}
	return s.state != before
}

// SelectSubTab switches the sub-tab of the current main tab.
func (s *Store) SelectSubTab(sub SubTab) bool {
	if !ownsSubTab(s.state.MainTab, sub) {
		return false
	}
	before := s.state
	switch s.state.MainTab {
	case TabWarRoom:
		s.state.WarRoomTab = sub
	case TabManagement:
		s.state.ManagementTab = sub
	case TabCare:
		s.state.CareTab = sub
	}
	return s.state != before
}

// SelectGranularity is the picker's granularity switch. Options disabled on
// the current tab are ignored.
func (s *Store) SelectGranularity(g period.Granularity) bool {
	if _, err := period.ParseGranularity(string(g)); err != nil {
		return false
	}
	if !s.state.GranularityEnabled(g) {
		return false
	}
	before := s.state
	s.applyGranularity(g)
	return s.state != before
}

func (s *Store) applyGranularity(g period.Granularity) {
	s.state.Granularity = g
	s.seedPicker()
}

// OpenPicker opens the period dialog, seeded from the committed period.
func (s *Store) OpenPicker() bool {
	if s.state.Picker.Open {
		return false
	}
	s.seedPicker()
	s.state.Picker.Open = true
	return true
}

// CancelPicker closes the dialog and drops the tentative selection.
func (s *Store) CancelPicker() bool {
	if !s.state.Picker.Open {
		return false
	}
	s.state.Picker.Open = false
	return true
}

// PickDay commits a day from the calendar grid and closes the dialog.
// Days after today are not selectable.
func (s *Store) PickDay(date time.Time) bool {
	if s.state.PickerMode() != PickerDayGrid {
		return false
	}
	if period.IsFuture(date, s.now()) {
		return false
	}
	s.state.Selected = period.Truncate(date)
	s.state.Picker.Open = false
	return true
}

// PrevMonth moves the calendar cursor one month back.
func (s *Store) PrevMonth() bool {
	if s.state.PickerMode() != PickerDayGrid {
		return false
	}
	s.state.Picker.Cursor = s.state.Picker.Cursor.AddDate(0, -1, 0)
	return true
}

// NextMonth moves the calendar cursor one month forward, never past the
// current month.
func (s *Store) NextMonth() bool {
	if s.state.PickerMode() != PickerDayGrid || !s.NextMonthEnabled() {
		return false
	}
	s.state.Picker.Cursor = s.state.Picker.Cursor.AddDate(0, 1, 0)
	return true
}

// NextMonthEnabled reports whether the cursor may move forward.
func (s *Store) NextMonthEnabled() bool {
	return s.state.nextMonthEnabled(s.now())
}

// SetTentativeYear picks a year in the wheel, clamped to the offered window.
func (s *Store) SetTentativeYear(year int) bool {
	if s.state.PickerMode() != PickerWheel {
		return false
	}
	before := s.state
	s.state.Picker.TentativeYear = period.ClampYear(year, s.now())
	s.clampTentative()
	return s.state != before
}

// SetTentativeMonth picks a month in the wheel, clamped to the offered months.
func (s *Store) SetTentativeMonth(month int) bool {
	if s.state.PickerMode() != PickerWheel || s.state.Granularity != period.Month {
		return false
	}
	before := s.state
	s.state.Picker.TentativeMonth = period.ClampMonth(s.state.Picker.TentativeYear, month, s.now())
	return s.state != before
}

// SetTentativeQuarter picks a quarter in the wheel, clamped to the offered quarters.
func (s *Store) SetTentativeQuarter(quarter int) bool {
	if s.state.PickerMode() != PickerWheel || s.state.Granularity != period.Quarter {
		return false
	}
	before := s.state
	s.state.Picker.TentativeQuarter = period.ClampQuarter(s.state.Picker.TentativeYear, quarter, s.now())
	return s.state != before
}

// Confirm commits the tentative month, quarter or year and closes the dialog.
func (s *Store) Confirm() bool {
	if s.state.PickerMode() != PickerWheel {
		return false
	}
	p := s.state.Picker
	s.state.Selected = period.NormalizePeriodStart(p.TentativeYear, p.TentativeMonth, s.state.Granularity, p.TentativeQuarter)
	s.state.Picker.Open = false
	return true
}

// SetRole switches the viewer role. A department manager is pinned to the
// managed unit; a general manager starts from the whole company.
func (s *Store) SetRole(role org.Role) bool {
	if _, err := org.ParseRole(string(role)); err != nil {
		return false
	}
	before := s.state
	s.state.Role = role
	s.state.Unit = org.UnitFor(role)
	return s.state != before
}

// SelectUnit changes the inspected unit. Only general managers may do so.
func (s *Store) SelectUnit(unit org.UnitID) bool {
	if !s.state.UnitSelectable() || !org.Valid(unit) {
		return false
	}
	before := s.state
	s.state.Unit = unit
	return s.state != before
}

// ToggleTheme flips dark mode.
func (s *Store) ToggleTheme() bool {
	s.state.DarkMode = !s.state.DarkMode
	return true
}

// OpenMenu opens the settings drawer.
func (s *Store) OpenMenu() bool {
	if s.state.MenuOpen {
		return false
	}
	s.state.MenuOpen = true
	return true
}

// CloseMenu closes the settings drawer.
func (s *Store) CloseMenu() bool {
	if !s.state.MenuOpen {
		return false
	}
	s.state.MenuOpen = false
	return true
}

// seedPicker re-derives the tentative selection and calendar cursor from the
// committed period.
func (s *Store) seedPicker() {
	sel := s.state.Selected
	month := int(sel.Month())
	s.state.Picker.TentativeYear = sel.Year()
	s.state.Picker.TentativeMonth = month
	s.state.Picker.TentativeQuarter = period.QuarterOf(month)
	s.state.Picker.Cursor = period.Date(sel.Year(), month, 1)
	s.clampTentative()
}

func (s *Store) clampTentative() {
	now := s.now()
	p := &s.state.Picker
	p.TentativeYear = period.ClampYear(p.TentativeYear, now)
	p.TentativeMonth = period.ClampMonth(p.TentativeYear, p.TentativeMonth, now)
	p.TentativeQuarter = period.ClampQuarter(p.TentativeYear, p.TentativeQuarter, now)
}
