package chartboard

import (
	"context"
	"fmt"
	"io"
)

// DashboardView is the JSON payload clients use to render a dashboard.
type DashboardView struct {
	Dashboard Dashboard  `json:"dashboard"`
	Charts    []ChartRow `json:"charts"`
}

// ChartRow pairs a widget with its rendered chart markup.
type ChartRow struct {
	Widget Widget `json:"widget"`
	Locked bool   `json:"locked"`
	HTML   string `json:"html,omitempty"`
}

// Controller orchestrates dashboard page rendering and JSON payloads over the
// service and chart renderer.
type Controller struct {
	service   *Service
	charts    ChartRenderer
	templates Renderer
}

// ControllerOption customizes controller construction.
type ControllerOption func(*Controller)

// WithChartRenderer overrides the default ECharts renderer.
func WithChartRenderer(charts ChartRenderer) ControllerOption {
	return func(c *Controller) {
		c.charts = charts
	}
}

// WithTemplateRenderer overrides the embedded template renderer.
func WithTemplateRenderer(templates Renderer) ControllerOption {
	return func(c *Controller) {
		c.templates = templates
	}
}

// NewController wires the service into a controller. The embedded templates
// and the default ECharts renderer are used unless overridden.
func NewController(service *Service, options ...ControllerOption) (*Controller, error) {
	c := &Controller{service: service}
	for _, opt := range options {
		opt(c)
	}
	if c.charts == nil {
		c.charts = NewEChartsRenderer()
	}
	if c.templates == nil {
		templates, err := NewTemplateRenderer()
		if err != nil {
			return nil, fmt.Errorf("chartboard: load templates: %w", err)
		}
		c.templates = templates
	}
	return c, nil
}

// Payload resolves the dashboard and renders each widget's chart markup.
func (c *Controller) Payload(_ context.Context, dashboardID string) (DashboardView, error) {
	if c.service == nil {
		return DashboardView{}, fmt.Errorf("chartboard: controller has no service")
	}
	d, err := c.service.Dashboard(dashboardID)
	if err != nil {
		return DashboardView{}, err
	}
	view := DashboardView{
		Dashboard: d,
		Charts:    make([]ChartRow, 0, len(d.Widgets)),
	}
	for _, widget := range d.Widgets {
		html, err := c.charts.Render(widget)
		if err != nil {
			return DashboardView{}, fmt.Errorf("chartboard: render widget %s: %w", widget.ID, err)
		}
		view.Charts = append(view.Charts, ChartRow{
			Widget: widget,
			Locked: d.Locked(widget.ID),
			HTML:   html,
		})
	}
	return view, nil
}

// RenderTemplate writes the full dashboard HTML page to out.
func (c *Controller) RenderTemplate(ctx context.Context, dashboardID string, out io.Writer) error {
	view, err := c.Payload(ctx, dashboardID)
	if err != nil {
		return err
	}
	agentName := ""
	if view.Dashboard.Agent != nil {
		agentName = view.Dashboard.Agent.Name
	}
	widgets := make([]map[string]any, len(view.Charts))
	for i, row := range view.Charts {
		widgets[i] = map[string]any{
			"id":         row.Widget.ID,
			"type":       row.Widget.Type.String(),
			"title":      row.Widget.Title,
			"locked":     row.Locked,
			"chart_html": row.HTML,
		}
	}
	data := map[string]any{
		"dashboard": map[string]any{
			"id":    view.Dashboard.ID,
			"name":  view.Dashboard.Name,
			"agent": agentName,
		},
		"widgets": widgets,
	}
	_, err = c.templates.Render("dashboard", data, out)
	return err
}
