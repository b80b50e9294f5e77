package selection

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/odyssey-erp/warroom/internal/org"
	"github.com/odyssey-erp/warroom/internal/period"
)

// ErrCorruptState indicates a stored state that does not decode into the
// closed enumerations.
var ErrCorruptState = errors.New("selection: corrupt state")

// Encode serialises the state for the session store.
func Encode(s State) (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("selection: encode: %w", err)
	}
	return string(data), nil
}

// Decode restores a state written by Encode.
func Decode(raw string) (State, error) {
	var s State
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if err := s.validate(); err != nil {
		return State{}, err
	}
	return s, nil
}

func (s State) validate() error {
	switch {
	case !validMainTab(s.MainTab):
		return fmt.Errorf("%w: main tab %q", ErrCorruptState, s.MainTab)
	case !ownsSubTab(TabWarRoom, s.WarRoomTab):
		return fmt.Errorf("%w: war room tab %q", ErrCorruptState, s.WarRoomTab)
	case !ownsSubTab(TabManagement, s.ManagementTab):
		return fmt.Errorf("%w: management tab %q", ErrCorruptState, s.ManagementTab)
	case !ownsSubTab(TabCare, s.CareTab):
		return fmt.Errorf("%w: care tab %q", ErrCorruptState, s.CareTab)
	case !org.Valid(s.Unit):
		return fmt.Errorf("%w: unit %q", ErrCorruptState, s.Unit)
	case s.Selected.IsZero():
		return fmt.Errorf("%w: missing selected date", ErrCorruptState)
	}
	if _, err := period.ParseGranularity(string(s.Granularity)); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if _, err := org.ParseRole(string(s.Role)); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if s.Role == org.RoleManager && s.Unit != org.ManagedUnit {
		return fmt.Errorf("%w: manager outside managed unit", ErrCorruptState)
	}
	return s.Picker.validate()
}

func (p Picker) validate() error {
	switch {
	case p.TentativeYear < 1:
		return fmt.Errorf("%w: tentative year %d", ErrCorruptState, p.TentativeYear)
	case p.TentativeMonth < 1 || p.TentativeMonth > 12:
		return fmt.Errorf("%w: tentative month %d", ErrCorruptState, p.TentativeMonth)
	case p.TentativeQuarter < 1 || p.TentativeQuarter > 4:
		return fmt.Errorf("%w: tentative quarter %d", ErrCorruptState, p.TentativeQuarter)
	case p.Cursor.IsZero() || p.Cursor.Day() != 1:
		return fmt.Errorf("%w: calendar cursor %s", ErrCorruptState, p.Cursor.Format("2006-01-02"))
	}
	return nil
}
