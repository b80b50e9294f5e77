package warroomhttp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/odyssey-erp/warroom/internal/dispatch"
	"github.com/odyssey-erp/warroom/internal/mockdata"
	"github.com/odyssey-erp/warroom/internal/platform/httpx"
	"github.com/odyssey-erp/warroom/internal/selection"
	"github.com/odyssey-erp/warroom/internal/shared"
	"github.com/odyssey-erp/warroom/internal/view"
	"github.com/odyssey-erp/warroom/internal/warroom"
)

// StateSessionKey is the session value holding the encoded selection state.
const StateSessionKey = "warroom_state"

const pageTitle = "人資戰情室"

type panelService interface {
	Panel(ctx context.Context, payload dispatch.Payload, opts warroom.Options) (warroom.Panel, error)
}

// TransitionRecorder counts applied and ignored state transitions.
type TransitionRecorder interface {
	RecordTransition(action string, changed bool)
}

// Handler serves the dashboard page, its JSON API and the state actions.
type Handler struct {
	logger    *slog.Logger
	service   panelService
	templates *view.Engine
	csrf      *shared.CSRFManager
	validator *validator.Validate
	clock     selection.Clock
	recorder  TransitionRecorder
}

// NewHandler constructs a dashboard handler. A nil clock uses time.Now.
func NewHandler(logger *slog.Logger, service panelService, templates *view.Engine, csrf *shared.CSRFManager, clock selection.Clock, recorder TransitionRecorder) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		templates: templates,
		csrf:      csrf,
		validator: validator.New(),
		clock:     clock,
		recorder:  recorder,
	}
}

// MountRoutes registers the dashboard routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.showDashboard)
	r.Route("/api", func(r chi.Router) {
		r.Get("/state", h.getState)
		r.Get("/view", h.getView)
	})
	r.Post("/actions/*", h.applyAction)
}

type stateResponse struct {
	ViewModel selection.ViewModel  `json:"view_model"`
	Picker    selection.PickerView `json:"picker"`
	Route     dispatch.Route       `json:"route"`
	UI        uiState              `json:"ui"`
}

type uiState struct {
	DarkMode       bool `json:"dark_mode"`
	MenuOpen       bool `json:"menu_open"`
	UnitSelectable bool `json:"unit_selectable"`
}

type viewResponse struct {
	ViewModel selection.ViewModel `json:"view_model"`
	Route     dispatch.Route      `json:"route"`
	Payload   dispatch.Payload    `json:"payload"`
	Panel     warroom.Panel       `json:"panel"`
}

type actionResponse struct {
	Action  string        `json:"action"`
	Changed bool          `json:"changed"`
	State   stateResponse `json:"state"`
}

func (h *Handler) showDashboard(w http.ResponseWriter, r *http.Request) {
	store := h.loadStore(r)
	opts, err := viewOptions(r)
	if err != nil {
		h.redirectWithFlash(w, r, "/", "danger", "篩選條件無效")
		return
	}
	state := store.State()
	vm := state.ViewModel()
	route := dispatch.RouteOf(state)
	payload := dispatch.MustDispatch(vm, route)
	panel, err := h.service.Panel(r.Context(), payload, opts)
	if err != nil {
		h.logger.Error("build panel", slog.String("view", string(payload.View())), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.render(w, r, "pages/dashboard.html", newDashboardPage(state, store.Now(), panel, opts), http.StatusOK)
}

func (h *Handler) getState(w http.ResponseWriter, r *http.Request) {
	store := h.loadStore(r)
	httpx.JSON(w, http.StatusOK, newStateResponse(store))
}

func (h *Handler) getView(w http.ResponseWriter, r *http.Request) {
	store := h.loadStore(r)
	opts, err := viewOptions(r)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	state := store.State()
	vm := state.ViewModel()
	route := dispatch.RouteOf(state)
	payload := dispatch.MustDispatch(vm, route)
	panel, err := h.service.Panel(r.Context(), payload, opts)
	if err != nil {
		h.logger.Error("build panel", slog.String("view", string(payload.View())), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, viewResponse{ViewModel: vm, Route: route, Payload: payload, Panel: panel})
}

func (h *Handler) applyAction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.actionError(w, r, http.StatusBadRequest, "無法解析表單")
		return
	}
	action := strings.Trim(chi.URLParam(r, "*"), "/")
	store := h.loadStore(r)

	changed, err := h.apply(store, action, r.PostForm)
	switch {
	case errors.Is(err, errUnknownAction):
		h.actionError(w, r, http.StatusNotFound, "未知的操作")
		return
	case err != nil:
		h.logger.Warn("invalid action input", slog.String("action", action), slog.Any("error", err))
		h.actionError(w, r, http.StatusBadRequest, "輸入值無效")
		return
	}

	if h.recorder != nil {
		h.recorder.RecordTransition(action, changed)
	}
	if changed {
		h.saveStore(r, store)
	}

	if wantsJSON(r) {
		httpx.JSON(w, http.StatusOK, actionResponse{Action: action, Changed: changed, State: newStateResponse(store)})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) actionError(w http.ResponseWriter, r *http.Request, status int, message string) {
	if wantsJSON(r) {
		httpx.Problem(w, status, http.StatusText(status), message)
		return
	}
	h.redirectWithFlash(w, r, "/", "danger", message)
}

// loadStore restores the viewer's state from the session. Missing or corrupt
// state starts over from the defaults.
func (h *Handler) loadStore(r *http.Request) *selection.Store {
	state := selection.DefaultState(h.now())
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		if raw := sess.Get(StateSessionKey); raw != "" {
			decoded, err := selection.Decode(raw)
			if err != nil {
				h.logger.Warn("discarding session state", slog.Any("error", err))
				sess.Delete(StateSessionKey)
			} else {
				state = decoded
			}
		}
	}
	return selection.NewStore(state, h.clock)
}

func (h *Handler) saveStore(r *http.Request, store *selection.Store) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		h.logger.Warn("session missing, state not persisted")
		return
	}
	raw, err := selection.Encode(store.State())
	if err != nil {
		h.logger.Error("encode state", slog.Any("error", err))
		return
	}
	sess.Set(StateSessionKey, raw)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, template string, data any, status int) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{
		Title:       pageTitle,
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		Data:        data,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.templates.Render(w, template, viewData); err != nil {
		h.logger.Error("render template", slog.Any("error", err))
	}
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, location, kind, message string) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.AddFlash(shared.FlashMessage{Kind: kind, Message: message})
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

func newStateResponse(store *selection.Store) stateResponse {
	state := store.State()
	return stateResponse{
		ViewModel: state.ViewModel(),
		Picker:    state.PickerView(store.Now()),
		Route:     dispatch.RouteOf(state),
		UI: uiState{
			DarkMode:       state.DarkMode,
			MenuOpen:       state.MenuOpen,
			UnitSelectable: state.UnitSelectable(),
		},
	}
}

func viewOptions(r *http.Request) (warroom.Options, error) {
	q := r.URL.Query()
	dim, err := mockdata.ParseDimension(q.Get("dim"))
	if err != nil {
		return warroom.Options{}, err
	}
	filter, err := mockdata.ParsePresenceFilter(q.Get("filter"))
	if err != nil {
		return warroom.Options{}, err
	}
	return warroom.Options{Dimension: dim, PresenceFilter: filter, Search: strings.TrimSpace(q.Get("q"))}, nil
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func (h *Handler) now() time.Time {
	if h.clock != nil {
		return h.clock()
	}
	return time.Now()
}
