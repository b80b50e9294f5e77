package warroomhttp

import (
	"time"

	"github.com/odyssey-erp/warroom/internal/dispatch"
	"github.com/odyssey-erp/warroom/internal/mockdata"
	"github.com/odyssey-erp/warroom/internal/org"
	"github.com/odyssey-erp/warroom/internal/period"
	"github.com/odyssey-erp/warroom/internal/selection"
	"github.com/odyssey-erp/warroom/internal/warroom"
)

type navItem struct {
	Value  string
	Label  string
	Active bool
}

type dashboardPage struct {
	State           selection.State
	View            selection.ViewModel
	Route           dispatch.Route
	Picker          selection.PickerView
	Weekdays        []string
	MainTabs        []navItem
	SubTabs         []navItem
	Units           []navItem
	Roles           []navItem
	PresenceFilters []navItem
	Dimensions      []navItem
	UnitSelectable  bool
	Panel           warroom.Panel
	Options         warroom.Options
}

func newDashboardPage(state selection.State, now time.Time, panel warroom.Panel, opts warroom.Options) dashboardPage {
	route := dispatch.RouteOf(state)
	page := dashboardPage{
		State:          state,
		View:           state.ViewModel(),
		Route:          route,
		Picker:         state.PickerView(now),
		Weekdays:       period.WeekdayHeaders,
		UnitSelectable: state.UnitSelectable(),
		Panel:          panel,
		Options:        opts,
	}
	for _, tab := range selection.MainTabs {
		page.MainTabs = append(page.MainTabs, navItem{Value: string(tab), Label: tab.Label(), Active: tab == state.MainTab})
	}
	for _, sub := range selection.SubTabsOf(state.MainTab) {
		page.SubTabs = append(page.SubTabs, navItem{Value: string(sub), Label: sub.Label(), Active: sub == route.Sub})
	}
	page.Units = append(page.Units, navItem{Value: string(org.All), Label: org.AllName, Active: state.Unit == org.All})
	for _, d := range org.Departments {
		page.Units = append(page.Units, navItem{Value: string(d.ID), Label: d.Name, Active: state.Unit == d.ID})
	}
	for _, role := range []org.Role{org.RoleGM, org.RoleManager} {
		page.Roles = append(page.Roles, navItem{Value: string(role), Label: role.Label(), Active: role == state.Role})
	}
	for _, f := range []struct{ value, label string }{
		{mockdata.PresenceFilterAll, "全部"},
		{string(mockdata.PresenceOffice), "進辦公室"},
		{string(mockdata.PresenceWFH), "遠端"},
		{string(mockdata.PresenceLeave), "請假"},
	} {
		page.PresenceFilters = append(page.PresenceFilters, navItem{Value: f.value, Label: f.label, Active: f.value == opts.PresenceFilter})
	}
	for _, d := range []struct {
		value mockdata.Dimension
		label string
	}{
		{mockdata.DimensionDept, "部門"},
		{mockdata.DimensionJob, "職級"},
	} {
		page.Dimensions = append(page.Dimensions, navItem{Value: string(d.value), Label: d.label, Active: d.value == opts.Dimension})
	}
	return page
}
