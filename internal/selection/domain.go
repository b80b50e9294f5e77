// Package selection owns the dashboard's session state: the active tabs, the
// inspected period, the organisational unit and the viewer role. All changes
// go through Store transitions; everything shown to the views is derived
// from the current State on demand.
package selection

import (
	"time"

	"github.com/odyssey-erp/warroom/internal/org"
	"github.com/odyssey-erp/warroom/internal/period"
)

// MainTab is a top-level navigation tab.
type MainTab string

const (
	TabWarRoom    MainTab = "war_room"
	TabManagement MainTab = "management"
	TabCare       MainTab = "care"
)

// MainTabs lists the bottom navigation in display order.
var MainTabs = []MainTab{TabWarRoom, TabManagement, TabCare}

// Label returns the navigation caption.
func (t MainTab) Label() string {
	switch t {
	case TabWarRoom:
		return "戰情"
	case TabManagement:
		return "團隊動態"
	case TabCare:
		return "關懷"
	}
	return string(t)
}

// SubTab is a second-level tab. Each main tab owns its own set.
type SubTab string

const (
	SubAttendance   SubTab = "attendance"
	SubAvailability SubTab = "availability"
	SubAnalysis     SubTab = "analysis"

	SubPresence SubTab = "presence"
	SubHandover SubTab = "handover"

	SubRetention SubTab = "retention"
	SubBurnout   SubTab = "burnout"
	SubAbnormal  SubTab = "abnormal"
	SubHeatmap   SubTab = "heatmap"
)

// SubTabsOf lists the sub-tabs owned by a main tab in display order.
func SubTabsOf(tab MainTab) []SubTab {
	switch tab {
	case TabWarRoom:
		return []SubTab{SubAttendance, SubAvailability, SubAnalysis}
	case TabManagement:
		return []SubTab{SubPresence, SubHandover}
	case TabCare:
		return []SubTab{SubRetention, SubBurnout, SubAbnormal, SubHeatmap}
	}
	return nil
}

// Label returns the sub-navigation caption.
func (s SubTab) Label() string {
	switch s {
	case SubAttendance:
		return "出勤分析"
	case SubAvailability:
		return "稼動率戰情"
	case SubAnalysis:
		return "戰力預警"
	case SubPresence:
		return "人員動態"
	case SubHandover:
		return "職務代理"
	case SubRetention:
		return "需關注"
	case SubBurnout:
		return "過勞風險"
	case SubAbnormal:
		return "出勤異常"
	case SubHeatmap:
		return "壓力熱圖"
	}
	return string(s)
}

// PickerMode is the state of the period picker dialog.
type PickerMode string

const (
	PickerClosed  PickerMode = "closed"
	PickerDayGrid PickerMode = "day_grid"
	PickerWheel   PickerMode = "wheel"
)

// Picker holds the uncommitted picker selection.
type Picker struct {
	Open             bool      `json:"open"`
	TentativeYear    int       `json:"tentative_year"`
	TentativeMonth   int       `json:"tentative_month"`
	TentativeQuarter int       `json:"tentative_quarter"`
	Cursor           time.Time `json:"cursor"`
}

// State is the complete session state of one dashboard viewer.
type State struct {
	MainTab       MainTab            `json:"main_tab"`
	WarRoomTab    SubTab             `json:"war_room_tab"`
	ManagementTab SubTab             `json:"management_tab"`
	CareTab       SubTab             `json:"care_tab"`
	Granularity   period.Granularity `json:"granularity"`
	Selected      time.Time          `json:"selected"`
	Unit          org.UnitID         `json:"unit"`
	Role          org.Role           `json:"role"`
	DarkMode      bool               `json:"dark_mode"`
	MenuOpen      bool               `json:"menu_open"`
	Picker        Picker             `json:"picker"`
}

// DefaultState returns the state a new session starts with.
func DefaultState(now time.Time) State {
	today := period.Truncate(now)
	return State{
		MainTab:       TabWarRoom,
		WarRoomTab:    SubAttendance,
		ManagementTab: SubPresence,
		CareTab:       SubRetention,
		Granularity:   period.Day,
		Selected:      today,
		Unit:          org.All,
		Role:          org.RoleGM,
		Picker: Picker{
			TentativeYear:    today.Year(),
			TentativeMonth:   int(today.Month()),
			TentativeQuarter: period.QuarterOf(int(today.Month())),
			Cursor:           period.Date(today.Year(), int(today.Month()), 1),
		},
	}
}

// ActiveSubTab returns the sub-tab of the current main tab.
func (s State) ActiveSubTab() SubTab {
	switch s.MainTab {
	case TabWarRoom:
		return s.WarRoomTab
	case TabManagement:
		return s.ManagementTab
	case TabCare:
		return s.CareTab
	}
	return ""
}

// PickerMode derives the picker dialog state.
func (s State) PickerMode() PickerMode {
	if !s.Picker.Open {
		return PickerClosed
	}
	if s.Granularity == period.Day {
		return PickerDayGrid
	}
	return PickerWheel
}

// GranularityEnabled reports whether g may be chosen while on the current
// main tab. The management tab only works on single days.
func (s State) GranularityEnabled(g period.Granularity) bool {
	if s.MainTab == TabManagement {
		return g == period.Day
	}
	return true
}

// UnitSelectable reports whether the viewer may change the unit.
func (s State) UnitSelectable() bool {
	return s.Role == org.RoleGM
}

func ownsSubTab(tab MainTab, sub SubTab) bool {
	for _, candidate := range SubTabsOf(tab) {
		if candidate == sub {
			return true
		}
	}
	return false
}

func validMainTab(tab MainTab) bool {
	for _, candidate := range MainTabs {
		if candidate == tab {
			return true
		}
	}
	return false
}
