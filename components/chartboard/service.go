package chartboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

const (
	widgetIDPrefix       = "module_"
	defaultDashboardName = "Main Dashboard"
)

// Options configures the chartboard Service. Every collaborator is provided
// via interface so applications can swap implementations.
type Options struct {
	Datasources *DatasourceRegistry
	Persister   Persister
	Telemetry   Telemetry
	RefreshHook RefreshHook
	IDs         IDGenerator

	// PersistErrorHandler receives persist failures, which are non-fatal:
	// the in-memory mutation is never rolled back. Defaults to a telemetry
	// event.
	PersistErrorHandler func(ctx context.Context, err error)

	// DefaultDashboardName names the dashboard seeded when the model starts
	// empty. At least one dashboard exists at all times.
	DefaultDashboardName string
}

// Service owns the dashboard collection: widget and layout mutations, lock
// state, and the minimum-one-dashboard invariant. All mutations are
// serialized and atomic — no observer ever sees a widget referenced by a
// layout entry or lock without existing in the widget list.
type Service struct {
	opts Options

	mu         sync.RWMutex
	dashboards []*Dashboard
}

// NewService builds a Service with safe defaults and seeds the initial
// dashboard.
func NewService(opts Options) *Service {
	if opts.Datasources == nil {
		opts.Datasources = NewDatasourceRegistry()
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	if opts.IDs == nil {
		opts.IDs = func(prefix string) string { return prefix + uuid.NewString() }
	}
	if opts.DefaultDashboardName == "" {
		opts.DefaultDashboardName = defaultDashboardName
	}
	if opts.PersistErrorHandler == nil {
		telemetry := opts.Telemetry
		opts.PersistErrorHandler = func(ctx context.Context, err error) {
			telemetry.Record(ctx, "chartboard.persist.error", map[string]any{
				"error": err.Error(),
			})
		}
	}
	s := &Service{opts: opts}
	s.dashboards = []*Dashboard{s.newDashboard(opts.DefaultDashboardName)}
	return s
}

// Datasources exposes the datasource registry the service was built with.
func (s *Service) Datasources() *DatasourceRegistry {
	return s.opts.Datasources
}

// Dashboards returns copies of all dashboards in creation order.
func (s *Service) Dashboards() []Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Dashboard, len(s.dashboards))
	for i, d := range s.dashboards {
		out[i] = cloneDashboard(d)
	}
	return out
}

// Dashboard returns a copy of the dashboard with the given id.
func (s *Service) Dashboard(id string) (Dashboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d := s.find(id)
	if d == nil {
		return Dashboard{}, fmt.Errorf("%w: dashboard %s", ErrNotFound, id)
	}
	return cloneDashboard(d), nil
}

// CreateDashboard adds a fresh dashboard with empty widget, layout, and lock
// collections.
func (s *Service) CreateDashboard(ctx context.Context, name string) (Dashboard, error) {
	if name == "" {
		return Dashboard{}, fmt.Errorf("chartboard: dashboard name is required")
	}
	s.mu.Lock()
	d := s.newDashboard(name)
	s.dashboards = append(s.dashboards, d)
	created := cloneDashboard(d)
	s.mu.Unlock()

	s.afterMutation(ctx, DashboardEvent{DashboardID: created.ID, Reason: "dashboard.create"})
	s.opts.Telemetry.Record(ctx, "chartboard.dashboard.create", map[string]any{
		"dashboard_id": created.ID,
	})
	return created, nil
}

// RenameDashboard updates the dashboard's display name.
func (s *Service) RenameDashboard(ctx context.Context, id, name string) error {
	if name == "" {
		return fmt.Errorf("chartboard: dashboard name is required")
	}
	s.mu.Lock()
	d := s.find(id)
	if d == nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: dashboard %s", ErrNotFound, id)
	}
	d.Name = name
	s.mu.Unlock()

	s.afterMutation(ctx, DashboardEvent{DashboardID: id, Reason: "dashboard.rename"})
	return nil
}

// DeleteDashboard removes a dashboard. Deleting the sole remaining dashboard
// fails with ErrLastDashboard; the collection never becomes empty. Callers
// that tracked the deleted dashboard as active must reassign (typically to
// the first remaining one).
func (s *Service) DeleteDashboard(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := -1
	for i, d := range s.dashboards {
		if d.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: dashboard %s", ErrNotFound, id)
	}
	if len(s.dashboards) == 1 {
		s.mu.Unlock()
		return ErrLastDashboard
	}
	s.dashboards = append(s.dashboards[:idx], s.dashboards[idx+1:]...)
	s.mu.Unlock()

	s.afterMutation(ctx, DashboardEvent{DashboardID: id, Reason: "dashboard.delete"})
	s.opts.Telemetry.Record(ctx, "chartboard.dashboard.delete", map[string]any{
		"dashboard_id": id,
	})
	return nil
}

// AddChartRequest configures a new chart widget built from a datasource.
type AddChartRequest struct {
	DatasourceID string    `json:"datasource_id"`
	Selection    Selection `json:"selection"`
	// Title overrides the default "<Type> Chart - <datasource>" title.
	Title string `json:"title,omitempty"`
}

// AddChart normalizes the selected datasource records for the requested
// chart type and places the resulting widget on the dashboard. Validation
// failures leave the dashboard untouched.
func (s *Service) AddChart(ctx context.Context, dashboardID string, req AddChartRequest) (Widget, error) {
	ds, ok := s.opts.Datasources.Get(req.DatasourceID)
	if !ok {
		return Widget{}, fmt.Errorf("%w: datasource %s", ErrNotFound, req.DatasourceID)
	}
	payload, err := Normalize(ds, req.Selection)
	if err != nil {
		return Widget{}, err
	}
	title := req.Title
	if title == "" {
		title = fmt.Sprintf("%s Chart - %s", payload.Type.Label(), ds.Name)
	}
	widget := payload.Widget(s.opts.IDs(widgetIDPrefix), title)
	if err := s.AddWidget(ctx, dashboardID, widget, LayoutEntry{}); err != nil {
		return Widget{}, err
	}
	return widget, nil
}

// AddWidget appends the widget and its layout entry to the dashboard. A
// zero-valued entry gets the default geometry, appended after the deepest
// occupied row of the default breakpoint.
func (s *Service) AddWidget(ctx context.Context, dashboardID string, widget Widget, entry LayoutEntry) error {
	if widget.ID == "" {
		return fmt.Errorf("chartboard: widget id is required")
	}
	s.mu.Lock()
	d := s.find(dashboardID)
	if d == nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: dashboard %s", ErrNotFound, dashboardID)
	}
	if _, exists := d.Widget(widget.ID); exists {
		s.mu.Unlock()
		return fmt.Errorf("%w: widget %s", ErrDuplicateID, widget.ID)
	}
	if entry == (LayoutEntry{}) {
		entry = NewLayoutEntry(widget.ID, d.Layouts[DefaultBreakpoint])
	}
	entry.WidgetID = widget.ID
	d.Widgets = append(d.Widgets, widget)
	d.Layouts[DefaultBreakpoint] = append(d.Layouts[DefaultBreakpoint], entry)
	s.mu.Unlock()

	s.afterMutation(ctx, DashboardEvent{DashboardID: dashboardID, WidgetID: widget.ID, Reason: "widget.add"})
	s.opts.Telemetry.Record(ctx, "chartboard.widget.add", map[string]any{
		"dashboard_id": dashboardID,
		"widget_id":    widget.ID,
		"chart_type":   widget.Type.String(),
	})
	return nil
}

// UpdateWidget replaces the stored widget with a matching id, keeping its
// layout entries and lock state.
func (s *Service) UpdateWidget(ctx context.Context, dashboardID string, widget Widget) error {
	s.mu.Lock()
	d := s.find(dashboardID)
	if d == nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: dashboard %s", ErrNotFound, dashboardID)
	}
	replaced := false
	for i := range d.Widgets {
		if d.Widgets[i].ID == widget.ID {
			d.Widgets[i] = widget
			replaced = true
			break
		}
	}
	s.mu.Unlock()
	if !replaced {
		return fmt.Errorf("%w: widget %s", ErrNotFound, widget.ID)
	}

	s.afterMutation(ctx, DashboardEvent{DashboardID: dashboardID, WidgetID: widget.ID, Reason: "widget.update"})
	return nil
}

// DeleteWidget removes the widget from the widget list, from every
// breakpoint's layout, and from the locked set — all three together.
func (s *Service) DeleteWidget(ctx context.Context, dashboardID, widgetID string) error {
	s.mu.Lock()
	d := s.find(dashboardID)
	if d == nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: dashboard %s", ErrNotFound, dashboardID)
	}
	if _, ok := d.Widget(widgetID); !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: widget %s", ErrNotFound, widgetID)
	}
	kept := d.Widgets[:0]
	for _, w := range d.Widgets {
		if w.ID != widgetID {
			kept = append(kept, w)
		}
	}
	d.Widgets = kept
	d.Layouts.removeWidget(widgetID)
	d.LockedWidgetIDs = removeString(d.LockedWidgetIDs, widgetID)
	s.mu.Unlock()

	s.afterMutation(ctx, DashboardEvent{DashboardID: dashboardID, WidgetID: widgetID, Reason: "widget.delete"})
	s.opts.Telemetry.Record(ctx, "chartboard.widget.delete", map[string]any{
		"dashboard_id": dashboardID,
		"widget_id":    widgetID,
	})
	return nil
}

// ToggleLock flips the widget's membership in the locked set and mirrors the
// static flag onto its layout entries across every breakpoint. Toggling
// twice restores the original state exactly.
func (s *Service) ToggleLock(ctx context.Context, dashboardID, widgetID string) (bool, error) {
	s.mu.Lock()
	d := s.find(dashboardID)
	if d == nil {
		s.mu.Unlock()
		return false, fmt.Errorf("%w: dashboard %s", ErrNotFound, dashboardID)
	}
	if _, ok := d.Widget(widgetID); !ok {
		s.mu.Unlock()
		return false, fmt.Errorf("%w: widget %s", ErrNotFound, widgetID)
	}
	locked := !d.Locked(widgetID)
	if locked {
		d.LockedWidgetIDs = append(d.LockedWidgetIDs, widgetID)
	} else {
		d.LockedWidgetIDs = removeString(d.LockedWidgetIDs, widgetID)
	}
	d.Layouts.setStatic(widgetID, locked)
	s.mu.Unlock()

	s.afterMutation(ctx, DashboardEvent{DashboardID: dashboardID, WidgetID: widgetID, Reason: "widget.lock"})
	return locked, nil
}

// UpdateLayout replaces one breakpoint's layout entries after a drag or
// resize. Entries referencing unknown widgets are rejected, and entries for
// locked widgets must keep their current geometry — omitting a locked
// widget's entry is rejected too, so its geometry cannot be replaced across
// two calls. The static flag is derived from the locked set, not trusted
// from the caller.
func (s *Service) UpdateLayout(ctx context.Context, dashboardID, breakpoint string, entries []LayoutEntry) error {
	if breakpoint == "" {
		return fmt.Errorf("chartboard: breakpoint is required")
	}
	s.mu.Lock()
	d := s.find(dashboardID)
	if d == nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: dashboard %s", ErrNotFound, dashboardID)
	}
	current := make(map[string]LayoutEntry, len(d.Layouts[breakpoint]))
	for _, entry := range d.Layouts[breakpoint] {
		current[entry.WidgetID] = entry
	}
	submitted := make(map[string]struct{}, len(entries))
	next := make([]LayoutEntry, len(entries))
	for i, entry := range entries {
		if _, ok := d.Widget(entry.WidgetID); !ok {
			s.mu.Unlock()
			return fmt.Errorf("%w: widget %s", ErrNotFound, entry.WidgetID)
		}
		if d.Locked(entry.WidgetID) {
			if prev, ok := current[entry.WidgetID]; ok && !sameGeometry(prev, entry) {
				s.mu.Unlock()
				return fmt.Errorf("%w: %s", ErrWidgetLocked, entry.WidgetID)
			}
		}
		entry.Static = d.Locked(entry.WidgetID)
		submitted[entry.WidgetID] = struct{}{}
		next[i] = entry
	}
	for _, id := range d.LockedWidgetIDs {
		if _, had := current[id]; !had {
			continue
		}
		if _, ok := submitted[id]; !ok {
			s.mu.Unlock()
			return fmt.Errorf("%w: %s", ErrWidgetLocked, id)
		}
	}
	d.Layouts[breakpoint] = next
	s.mu.Unlock()

	s.afterMutation(ctx, DashboardEvent{DashboardID: dashboardID, Reason: "layout.update"})
	return nil
}

// AssignAgent sets the dashboard's chat agent.
func (s *Service) AssignAgent(ctx context.Context, dashboardID string, agent *Agent) error {
	s.mu.Lock()
	d := s.find(dashboardID)
	if d == nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: dashboard %s", ErrNotFound, dashboardID)
	}
	d.Agent = agent
	s.mu.Unlock()

	s.afterMutation(ctx, DashboardEvent{DashboardID: dashboardID, Reason: "dashboard.assign_agent"})
	return nil
}

// Snapshot captures the current dashboard and datasource collections.
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	dashboards := make([]Dashboard, len(s.dashboards))
	for i, d := range s.dashboards {
		dashboards[i] = cloneDashboard(d)
	}
	s.mu.RUnlock()
	snapshot := Snapshot{
		Dashboards:  dashboards,
		Datasources: s.opts.Datasources.List(),
	}
	snapshot.normalize()
	return snapshot
}

// Load replaces the in-memory state with a decoded snapshot. An empty
// dashboard collection is rejected to preserve the minimum-count invariant.
func (s *Service) Load(snapshot Snapshot) error {
	snapshot.normalize()
	if len(snapshot.Dashboards) == 0 {
		return fmt.Errorf("chartboard: snapshot has no dashboards")
	}
	if err := snapshot.checkIntegrity(); err != nil {
		return err
	}
	s.mu.Lock()
	s.dashboards = make([]*Dashboard, len(snapshot.Dashboards))
	for i := range snapshot.Dashboards {
		d := cloneDashboard(&snapshot.Dashboards[i])
		s.dashboards[i] = &d
	}
	s.mu.Unlock()
	s.opts.Datasources.Replace(snapshot.Datasources)
	return nil
}

func (s *Service) newDashboard(name string) *Dashboard {
	return &Dashboard{
		ID:              s.opts.IDs(""),
		Name:            name,
		Widgets:         []Widget{},
		Layouts:         Layouts{},
		LockedWidgetIDs: []string{},
	}
}

func (s *Service) find(id string) *Dashboard {
	for _, d := range s.dashboards {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// afterMutation runs the fire-and-forget side effects of a successful
// mutation: notify transports and persist the snapshot. Neither failure
// rolls back the in-memory change.
func (s *Service) afterMutation(ctx context.Context, event DashboardEvent) {
	if err := s.opts.RefreshHook.DashboardUpdated(ctx, event); err != nil {
		s.opts.Telemetry.Record(ctx, "chartboard.refresh.error", map[string]any{
			"reason": event.Reason,
			"error":  err.Error(),
		})
	}
	if s.opts.Persister == nil {
		return
	}
	if err := s.opts.Persister.Persist(ctx, s.Snapshot()); err != nil {
		s.opts.PersistErrorHandler(ctx, err)
	}
}

func cloneDashboard(d *Dashboard) Dashboard {
	out := *d
	out.Widgets = make([]Widget, len(d.Widgets))
	for i := range d.Widgets {
		out.Widgets[i] = cloneWidget(d.Widgets[i])
	}
	out.Layouts = d.Layouts.clone()
	out.LockedWidgetIDs = append([]string{}, d.LockedWidgetIDs...)
	if d.Agent != nil {
		agent := *d.Agent
		out.Agent = &agent
	}
	return out
}

func cloneWidget(w Widget) Widget {
	out := w
	if w.DataKeys != nil {
		out.DataKeys = append([]string{}, w.DataKeys...)
	}
	if w.Data != nil {
		out.Data = make([]Record, len(w.Data))
		for i, row := range w.Data {
			out.Data[i] = cloneRecord(row)
		}
	}
	return out
}

func cloneRecord(row Record) Record {
	out := make(Record, len(row))
	for key, value := range row {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(v any) any {
	switch value := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(value))
		for key, item := range value {
			out[key] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

func removeString(list []string, value string) []string {
	kept := list[:0]
	for _, item := range list {
		if item != value {
			kept = append(kept, item)
		}
	}
	return kept
}

func sameGeometry(a, b LayoutEntry) bool {
	return a.X == b.X && a.Y == b.Y && a.W == b.W && a.H == b.H
}
