package chartboard

import "context"

// Record is a single row of datasource data: an arbitrary JSON-compatible
// mapping from field name to scalar or nested structure.
type Record = map[string]any

// Datasource is a named collection of raw records available for charting.
// Data is immutable once fetched; Update replaces the datasource wholesale.
type Datasource struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Data []Record `json:"data"`
}

// Agent identifies the chat agent assigned to a dashboard.
type Agent struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Widget is a single chart instance placed on a dashboard, carrying its
// shaped data plus the chart-type-specific key metadata the renderer needs.
type Widget struct {
	ID             string    `json:"id"`
	Type           ChartType `json:"type"`
	Title          string    `json:"title"`
	Data           []Record  `json:"data"`
	DataKeys       []string  `json:"dataKeys,omitempty"`
	XAxisDataKey   string    `json:"xAxisDataKey,omitempty"`
	NameKey        string    `json:"nameKey,omitempty"`
	LatitudeField  string    `json:"latitudeField,omitempty"`
	LongitudeField string    `json:"longitudeField,omitempty"`
}

// Dashboard owns an ordered set of widgets, their responsive grid layouts,
// and the ids of widgets whose layout entries are locked in place.
type Dashboard struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Agent           *Agent   `json:"agent"`
	Widgets         []Widget `json:"widgets"`
	Layouts         Layouts  `json:"layouts"`
	LockedWidgetIDs []string `json:"lockedWidgetIds"`
}

// Locked reports whether the widget id is in the dashboard's locked set.
func (d Dashboard) Locked(widgetID string) bool {
	for _, id := range d.LockedWidgetIDs {
		if id == widgetID {
			return true
		}
	}
	return false
}

// Widget returns the widget with the given id.
func (d Dashboard) Widget(widgetID string) (Widget, bool) {
	for _, w := range d.Widgets {
		if w.ID == widgetID {
			return w, true
		}
	}
	return Widget{}, false
}

// DashboardEvent describes a dashboard mutation that transports may care about.
type DashboardEvent struct {
	DashboardID string `json:"dashboard_id"`
	WidgetID    string `json:"widget_id,omitempty"`
	Reason      string `json:"reason"`
}

// RefreshHook notifies transports (REST/WebSocket) about dashboard changes.
type RefreshHook interface {
	DashboardUpdated(ctx context.Context, event DashboardEvent) error
}

// Persister writes the current snapshot to durable storage after each
// successful mutation. Failures never roll back the in-memory state.
type Persister interface {
	Persist(ctx context.Context, snapshot Snapshot) error
}

// IDGenerator mints unique identifiers with the given prefix.
type IDGenerator func(prefix string) string
