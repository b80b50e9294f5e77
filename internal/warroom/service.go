// Package warroom assembles the data panels rendered by the dashboard views.
package warroom

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/odyssey-erp/warroom/internal/dispatch"
	"github.com/odyssey-erp/warroom/internal/mockdata"
	"github.com/odyssey-erp/warroom/internal/period"
)

// ErrUnsupportedPayload is returned for payloads the service cannot build.
var ErrUnsupportedPayload = errors.New("warroom: unsupported payload")

// Cache outcomes reported to the recorder.
const (
	CacheHit      = "hit"
	CacheMiss     = "miss"
	CacheDegraded = "degraded"
)

// CacheRecorder receives panel cache outcomes.
type CacheRecorder interface {
	RecordPanelCache(view, outcome string)
}

// Panel is the data bundle a view renders. Exactly one section is set.
type Panel struct {
	View         dispatch.View          `json:"view"`
	Attendance   *mockdata.Attendance   `json:"attendance,omitempty"`
	Availability *mockdata.Availability `json:"availability,omitempty"`
	Forecast     *mockdata.Forecast     `json:"forecast,omitempty"`
	Presence     *mockdata.Presence     `json:"presence,omitempty"`
	Handover     *mockdata.Handover     `json:"handover,omitempty"`
	Care         *mockdata.Care         `json:"care,omitempty"`

	// Roster is the presence list after the status filter and search.
	Roster []mockdata.Employee `json:"roster,omitempty"`
}

// Options carries the view-local controls that are not part of the
// selection state.
type Options struct {
	Dimension      mockdata.Dimension
	PresenceFilter string
	Search         string
}

// Service builds panels, backed by the Redis cache.
type Service struct {
	cache    *Cache
	logger   *slog.Logger
	recorder CacheRecorder
	group    singleflight.Group
}

// NewService wires a Cache and logger. Both may be nil.
func NewService(cache *Cache, logger *slog.Logger, recorder CacheRecorder) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{cache: cache, logger: logger, recorder: recorder}
}

// Panel returns the data for payload.
func (s *Service) Panel(ctx context.Context, payload dispatch.Payload, opts Options) (Panel, error) {
	if opts.Dimension == "" {
		opts.Dimension = mockdata.DimensionDept
	}
	keyBase, err := panelKey(payload, opts)
	if err != nil {
		return Panel{}, err
	}

	v, err, _ := s.group.Do(keyBase, func() (any, error) {
		return s.load(ctx, keyBase, payload, opts)
	})
	if err != nil {
		return Panel{}, err
	}
	panel := v.(Panel)
	if panel.Presence != nil {
		panel.Roster = mockdata.FilterEmployees(panel.Presence.Employees, opts.PresenceFilter, opts.Search)
	}
	return panel, nil
}

func (s *Service) load(ctx context.Context, keyBase string, payload dispatch.Payload, opts Options) (Panel, error) {
	view := string(payload.View())
	loader := func(context.Context) (any, error) {
		return buildPanel(payload, opts)
	}

	key, err := s.cache.BuildKey(ctx, keyBase)
	if err == nil {
		var panel Panel
		var hit bool
		hit, err = s.cache.FetchJSON(ctx, key, &panel, loader)
		if err == nil {
			s.record(view, hit)
			return panel, nil
		}
	}

	s.logger.WarnContext(ctx, "panel cache unavailable", slog.String("view", view), slog.Any("error", err))
	if s.recorder != nil {
		s.recorder.RecordPanelCache(view, CacheDegraded)
	}
	return buildPanel(payload, opts)
}

func (s *Service) record(view string, hit bool) {
	if s.recorder == nil {
		return
	}
	outcome := CacheMiss
	if hit {
		outcome = CacheHit
	}
	s.recorder.RecordPanelCache(view, outcome)
}

// Invalidate drops every cached panel.
func (s *Service) Invalidate(ctx context.Context) error {
	ver, err := s.cache.Bump(ctx)
	if err != nil {
		return fmt.Errorf("warroom: bump cache version: %w", err)
	}
	s.logger.InfoContext(ctx, "panel cache invalidated", slog.Int64("version", ver))
	return nil
}

func buildPanel(payload dispatch.Payload, opts Options) (Panel, error) {
	panel := Panel{View: payload.View()}
	switch p := payload.(type) {
	case dispatch.AttendancePayload:
		a := mockdata.BuildAttendance(p.SelectedDate, p.UnitID, p.ManagerView())
		panel.Attendance = &a
	case dispatch.AvailabilityPayload:
		a := mockdata.BuildAvailability(p.SelectedDate, p.UnitID, p.UnitName, p.Granularity)
		panel.Availability = &a
	case dispatch.AnalysisPayload:
		from, err := period.ParseDate(p.ForecastFrom)
		if err != nil {
			return Panel{}, err
		}
		f := mockdata.BuildForecast(from, p.Role, p.UnitID, p.UnitName, opts.Dimension)
		panel.Forecast = &f
	case dispatch.PresencePayload:
		pr := mockdata.BuildPresence(p.SelectedDate, p.UnitID)
		panel.Presence = &pr
	case dispatch.HandoverPayload:
		h := mockdata.BuildHandover()
		panel.Handover = &h
	case dispatch.CarePayload:
		c := mockdata.BuildCare(p.UnitID)
		panel.Care = &c
	default:
		return Panel{}, fmt.Errorf("%w: %T", ErrUnsupportedPayload, payload)
	}
	return panel, nil
}

// panelKey lists exactly the inputs each generator reads.
func panelKey(payload dispatch.Payload, opts Options) (string, error) {
	if payload == nil {
		return "", fmt.Errorf("%w: nil", ErrUnsupportedPayload)
	}
	parts := []string{"warroom", "panel", string(payload.View())}
	switch p := payload.(type) {
	case dispatch.AttendancePayload:
		parts = append(parts, p.SelectedDate, string(p.UnitID), strconv.FormatBool(p.ManagerView()))
	case dispatch.AvailabilityPayload:
		parts = append(parts, p.SelectedDate, string(p.UnitID), string(p.Granularity))
	case dispatch.AnalysisPayload:
		parts = append(parts, p.ForecastFrom, string(p.Role), string(p.UnitID), string(opts.Dimension))
	case dispatch.PresencePayload:
		parts = append(parts, p.SelectedDate, string(p.UnitID))
	case dispatch.HandoverPayload:
	case dispatch.CarePayload:
		parts = append(parts, string(p.UnitID))
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedPayload, payload)
	}
	return strings.Join(parts, ":"), nil
}
