package warroom

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/odyssey-erp/warroom/internal/dispatch"
	"github.com/odyssey-erp/warroom/internal/mockdata"
	"github.com/odyssey-erp/warroom/internal/org"
	"github.com/odyssey-erp/warroom/internal/period"
	"github.com/odyssey-erp/warroom/internal/selection"
)

// WarmResult summarises a warmup run.
type WarmResult struct {
	Date   string
	Panels int
}

// Warm builds every panel reachable for date so the first dashboard
// requests of the day hit the cache. It covers the company-wide director
// view, every department and the pinned manager view.
func (s *Service) Warm(ctx context.Context, date time.Time) (WarmResult, error) {
	result := WarmResult{Date: period.FormatISO(date)}
	seen := make(map[string]struct{})

	for _, state := range warmStates(date) {
		for _, tab := range selection.MainTabs {
			for _, sub := range selection.SubTabsOf(tab) {
				if tab == selection.TabWarRoom && sub == selection.SubAvailability {
					for _, g := range period.Granularities {
						// A confirmed period commits its first day, so that is
						// the date the viewer's request carries.
						st := state
						st.Granularity = g
						st.Selected, _ = period.Bounds(date, g)
						if err := s.warmOne(ctx, st, dispatch.Route{Tab: tab, Sub: sub}, Options{}, seen, &result); err != nil {
							return result, err
						}
					}
					continue
				}
				if tab == selection.TabWarRoom && sub == selection.SubAnalysis {
					for _, dim := range []mockdata.Dimension{mockdata.DimensionDept, mockdata.DimensionJob} {
						if err := s.warmOne(ctx, state, dispatch.Route{Tab: tab, Sub: sub}, Options{Dimension: dim}, seen, &result); err != nil {
							return result, err
						}
					}
					continue
				}
				if err := s.warmOne(ctx, state, dispatch.Route{Tab: tab, Sub: sub}, Options{}, seen, &result); err != nil {
					return result, err
				}
			}
		}
	}

	s.logger.InfoContext(ctx, "panels warmed", slog.String("date", result.Date), slog.Int("panels", result.Panels))
	return result, nil
}

func (s *Service) warmOne(ctx context.Context, state selection.State, route dispatch.Route, opts Options, seen map[string]struct{}, result *WarmResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := dispatch.Dispatch(state.ViewModel(), route)
	if err != nil {
		return err
	}
	if opts.Dimension == "" {
		opts.Dimension = mockdata.DimensionDept
	}
	key, err := panelKey(payload, opts)
	if err != nil {
		return err
	}
	if _, ok := seen[key]; ok {
		return nil
	}
	seen[key] = struct{}{}
	if _, err := s.Panel(ctx, payload, opts); err != nil {
		return fmt.Errorf("warroom: warm %s: %w", key, err)
	}
	result.Panels++
	return nil
}

func warmStates(date time.Time) []selection.State {
	base := selection.DefaultState(date)

	states := make([]selection.State, 0, len(org.Departments)+2)
	states = append(states, base)
	for _, d := range org.Departments {
		st := base
		st.Unit = d.ID
		states = append(states, st)
	}
	manager := base
	manager.Role = org.RoleManager
	manager.Unit = org.UnitFor(org.RoleManager)
	return append(states, manager)
}
