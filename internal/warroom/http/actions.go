package warroomhttp

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/odyssey-erp/warroom/internal/org"
	"github.com/odyssey-erp/warroom/internal/period"
	"github.com/odyssey-erp/warroom/internal/selection"
)

var errUnknownAction = errors.New("unknown action")

// Action names accepted under /actions/.
const (
	ActionTab           = "tab"
	ActionSubTab        = "subtab"
	ActionGranularity   = "granularity"
	ActionPickerOpen    = "picker/open"
	ActionPickerCancel  = "picker/cancel"
	ActionPickerDay     = "picker/day"
	ActionPickerPrev    = "picker/prev"
	ActionPickerNext    = "picker/next"
	ActionPickerYear    = "picker/year"
	ActionPickerMonth   = "picker/month"
	ActionPickerQuarter = "picker/quarter"
	ActionPickerConfirm = "picker/confirm"
	ActionRole          = "role"
	ActionUnit          = "unit"
	ActionTheme         = "theme"
	ActionMenuOpen      = "menu/open"
	ActionMenuClose     = "menu/close"
)

type tabForm struct {
	Value string `validate:"required,oneof=war_room management care"`
}

type subTabForm struct {
	Value string `validate:"required,oneof=attendance availability analysis presence handover retention burnout abnormal heatmap"`
}

type granularityForm struct {
	Value string `validate:"required,oneof=day month quarter year"`
}

type dayForm struct {
	Date string `validate:"required,datetime=2006-01-02"`
}

type yearForm struct {
	Value int `validate:"min=1900,max=9999"`
}

type monthForm struct {
	Value int `validate:"min=1,max=12"`
}

type quarterForm struct {
	Value int `validate:"min=1,max=4"`
}

type roleForm struct {
	Value string `validate:"required,oneof=gm manager"`
}

type unitForm struct {
	Value string `validate:"required,max=32"`
}

// apply runs one store transition and reports whether the state changed.
// Transitions the store refuses (disabled granularity, future day, a
// manager picking a unit) are not errors; they simply change nothing.
func (h *Handler) apply(store *selection.Store, action string, form url.Values) (bool, error) {
	value := strings.TrimSpace(form.Get("value"))

	switch action {
	case ActionTab:
		in := tabForm{Value: value}
		if err := h.validator.Struct(in); err != nil {
			return false, err
		}
		return store.SelectMainTab(selection.MainTab(in.Value)), nil
	case ActionSubTab:
		in := subTabForm{Value: value}
		if err := h.validator.Struct(in); err != nil {
			return false, err
		}
		return store.SelectSubTab(selection.SubTab(in.Value)), nil
	case ActionGranularity:
		in := granularityForm{Value: value}
		if err := h.validator.Struct(in); err != nil {
			return false, err
		}
		return store.SelectGranularity(period.Granularity(in.Value)), nil
	case ActionPickerOpen:
		return store.OpenPicker(), nil
	case ActionPickerCancel:
		return store.CancelPicker(), nil
	case ActionPickerDay:
		in := dayForm{Date: strings.TrimSpace(form.Get("date"))}
		if err := h.validator.Struct(in); err != nil {
			return false, err
		}
		date, err := period.ParseDate(in.Date)
		if err != nil {
			return false, err
		}
		return store.PickDay(date), nil
	case ActionPickerPrev:
		return store.PrevMonth(), nil
	case ActionPickerNext:
		return store.NextMonth(), nil
	case ActionPickerYear:
		n, err := atoi(value)
		if err != nil {
			return false, err
		}
		if err := h.validator.Struct(yearForm{Value: n}); err != nil {
			return false, err
		}
		return store.SetTentativeYear(n), nil
	case ActionPickerMonth:
		n, err := atoi(value)
		if err != nil {
			return false, err
		}
		if err := h.validator.Struct(monthForm{Value: n}); err != nil {
			return false, err
		}
		return store.SetTentativeMonth(n), nil
	case ActionPickerQuarter:
		n, err := atoi(value)
		if err != nil {
			return false, err
		}
		if err := h.validator.Struct(quarterForm{Value: n}); err != nil {
			return false, err
		}
		return store.SetTentativeQuarter(n), nil
	case ActionPickerConfirm:
		return store.Confirm(), nil
	case ActionRole:
		in := roleForm{Value: value}
		if err := h.validator.Struct(in); err != nil {
			return false, err
		}
		return store.SetRole(org.Role(in.Value)), nil
	case ActionUnit:
		in := unitForm{Value: value}
		if err := h.validator.Struct(in); err != nil {
			return false, err
		}
		unit, err := org.ParseUnit(in.Value)
		if err != nil {
			return false, err
		}
		return store.SelectUnit(unit), nil
	case ActionTheme:
		return store.ToggleTheme(), nil
	case ActionMenuOpen:
		return store.OpenMenu(), nil
	case ActionMenuClose:
		return store.CloseMenu(), nil
	}
	return false, fmt.Errorf("%w: %q", errUnknownAction, action)
}

func atoi(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	return n, nil
}
