package warroom

import (
	"context"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/warroom/internal/dispatch"
	"github.com/odyssey-erp/warroom/internal/mockdata"
	"github.com/odyssey-erp/warroom/internal/org"
	"github.com/odyssey-erp/warroom/internal/period"
	"github.com/odyssey-erp/warroom/internal/selection"
)

type recorder struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (r *recorder) RecordPanelCache(view, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.outcomes == nil {
		r.outcomes = make(map[string]int)
	}
	r.outcomes[view+"/"+outcome]++
}

func (r *recorder) count(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outcomes[key]
}

func newTestService(t *testing.T) (*Service, *miniredis.Miniredis, *recorder) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	rec := &recorder{}
	return NewService(NewCache(client, time.Minute), nil, rec), mr, rec
}

func testViewModel(unit org.UnitID, g period.Granularity) selection.ViewModel {
	state := selection.DefaultState(time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC))
	state.Unit = unit
	state.Granularity = g
	return state.ViewModel()
}

func TestPanelCachesByView(t *testing.T) {
	svc, mr, rec := newTestService(t)
	ctx := context.Background()
	payload := dispatch.MustDispatch(testViewModel(org.All, period.Month),
		dispatch.Route{Tab: selection.TabWarRoom, Sub: selection.SubAvailability})

	first, err := svc.Panel(ctx, payload, Options{})
	require.NoError(t, err)
	require.NotNil(t, first.Availability)
	assert.Equal(t, dispatch.ViewAvailability, first.View)
	assert.Equal(t, 89.8, first.Availability.AvgUtil)
	assert.Equal(t, 1, rec.count("availability/miss"))
	assert.True(t, mr.Exists("warroom:panel:availability:2024-05-15:all:month:1"))

	second, err := svc.Panel(ctx, payload, Options{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, rec.count("availability/hit"))
}

func TestPanelInvalidateBumpsVersion(t *testing.T) {
	svc, mr, rec := newTestService(t)
	ctx := context.Background()
	payload := dispatch.MustDispatch(testViewModel("cs", period.Day),
		dispatch.Route{Tab: selection.TabCare, Sub: selection.SubBurnout})

	_, err := svc.Panel(ctx, payload, Options{})
	require.NoError(t, err)
	require.NoError(t, svc.Invalidate(ctx))

	_, err = svc.Panel(ctx, payload, Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, rec.count("care/miss"))
	assert.True(t, mr.Exists("warroom:panel:care:cs:2"))
}

func TestPanelDegradesWithoutRedis(t *testing.T) {
	svc, mr, rec := newTestService(t)
	mr.Close()

	payload := dispatch.MustDispatch(testViewModel(org.All, period.Day),
		dispatch.Route{Tab: selection.TabManagement, Sub: selection.SubHandover})
	panel, err := svc.Panel(context.Background(), payload, Options{})
	require.NoError(t, err)
	require.NotNil(t, panel.Handover)
	assert.Equal(t, "王小明", panel.Handover.Deputy)
	assert.Equal(t, 1, rec.count("handover/degraded"))
}

func TestPanelWithoutCache(t *testing.T) {
	svc := NewService(nil, nil, nil)
	payload := dispatch.MustDispatch(testViewModel(org.ManagedUnit, period.Day),
		dispatch.Route{Tab: selection.TabWarRoom, Sub: selection.SubAttendance})
	panel, err := svc.Panel(context.Background(), payload, Options{})
	require.NoError(t, err)
	require.NotNil(t, panel.Attendance)
	assert.True(t, panel.Attendance.ByPerson)
}

func TestPanelForecastDimension(t *testing.T) {
	svc, _, _ := newTestService(t)
	payload := dispatch.MustDispatch(testViewModel(org.All, period.Day),
		dispatch.Route{Tab: selection.TabWarRoom, Sub: selection.SubAnalysis})

	dept, err := svc.Panel(context.Background(), payload, Options{})
	require.NoError(t, err)
	assert.Len(t, dept.Forecast.Rows, 5)

	jobs, err := svc.Panel(context.Background(), payload, Options{Dimension: mockdata.DimensionJob})
	require.NoError(t, err)
	assert.Len(t, jobs.Forecast.Rows, 4)
	assert.Equal(t, "5/16", jobs.Forecast.Rows[0].Data[0].Date)
}

func TestPanelPresenceFiltersOutsideCache(t *testing.T) {
	svc, _, rec := newTestService(t)
	payload := dispatch.MustDispatch(testViewModel(org.All, period.Day),
		dispatch.Route{Tab: selection.TabManagement, Sub: selection.SubPresence})

	all, err := svc.Panel(context.Background(), payload, Options{})
	require.NoError(t, err)
	assert.Len(t, all.Roster, 150)

	leave, err := svc.Panel(context.Background(), payload, Options{PresenceFilter: "leave"})
	require.NoError(t, err)
	assert.Len(t, leave.Roster, 9)
	assert.Equal(t, 150, leave.Presence.Total)
	assert.Equal(t, 1, rec.count("presence/hit"))
}

func TestPanelRejectsNilPayload(t *testing.T) {
	svc := NewService(nil, nil, nil)
	_, err := svc.Panel(context.Background(), nil, Options{})
	assert.ErrorIs(t, err, ErrUnsupportedPayload)
}

func TestWarmBuildsEveryPanel(t *testing.T) {
	svc, _, rec := newTestService(t)
	ctx := context.Background()

	result, err := svc.Warm(ctx, time.Date(2024, 5, 15, 1, 15, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2024-05-15", result.Date)
	assert.Equal(t, 57, result.Panels)
	assert.Zero(t, rec.count("availability/hit"))
}

func TestWarmCoversConfirmedPeriods(t *testing.T) {
	svc, _, rec := newTestService(t)
	ctx := context.Background()
	now := time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC)
	_, err := svc.Warm(ctx, now)
	require.NoError(t, err)

	route := dispatch.Route{Tab: selection.TabWarRoom, Sub: selection.SubAvailability}
	cases := []struct {
		unit      org.UnitID
		g         period.Granularity
		committed string
	}{
		{org.All, period.Month, "2024-05-01"},
		{"rd2", period.Quarter, "2024-04-01"},
		{"cs", period.Year, "2024-01-01"},
		{org.All, period.Day, "2024-05-15"},
	}
	for i, tc := range cases {
		store := selection.NewStore(selection.DefaultState(now), func() time.Time { return now })
		if tc.unit != org.All {
			require.True(t, store.SelectUnit(tc.unit))
		}
		store.OpenPicker()
		store.SelectGranularity(tc.g)
		if tc.g == period.Day {
			store.CancelPicker()
		} else {
			require.True(t, store.Confirm())
		}
		vm := store.State().ViewModel()
		require.Equal(t, tc.committed, vm.SelectedDate)

		_, err := svc.Panel(ctx, dispatch.MustDispatch(vm, route), Options{})
		require.NoError(t, err)
		assert.Equal(t, i+1, rec.count("availability/hit"), string(tc.g))
	}
	assert.Equal(t, 24, rec.count("availability/miss"))
}

func TestWarmStopsOnCancelledContext(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Warm(ctx, time.Now())
	assert.ErrorIs(t, err, context.Canceled)
}
