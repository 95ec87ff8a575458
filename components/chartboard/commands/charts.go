package commands

import (
	"context"
	"errors"

	chartboard "github.com/goliatone/go-chartboard/components/chartboard"
	gocommand "github.com/goliatone/go-command"
)

// AddChartInput configures a chart widget built from a datasource selection.
type AddChartInput struct {
	DashboardID string                     `json:"dashboard_id"`
	Request     chartboard.AddChartRequest `json:"request"`
}

type addChartService interface {
	AddChart(ctx context.Context, dashboardID string, req chartboard.AddChartRequest) (chartboard.Widget, error)
}

// AddChartCommand wraps Service.AddChart so transports can add charts without
// linking directly against the service.
type AddChartCommand struct {
	service   addChartService
	telemetry Telemetry
}

// NewAddChartCommand builds a command instance.
func NewAddChartCommand(service addChartService, telemetry Telemetry) *AddChartCommand {
	return &AddChartCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[AddChartInput] = (*AddChartCommand)(nil)

// Execute normalizes the selection and places the widget.
func (c *AddChartCommand) Execute(ctx context.Context, msg AddChartInput) error {
	if c.service == nil {
		return errors.New("add chart command requires service")
	}
	widget, err := c.service.AddChart(ctx, msg.DashboardID, msg.Request)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "chartboard.widget.add", map[string]any{
		"dashboard_id": msg.DashboardID,
		"widget_id":    widget.ID,
		"chart_type":   widget.Type.String(),
	})
	return nil
}

// RemoveWidgetInput identifies the widget instance to remove.
type RemoveWidgetInput struct {
	DashboardID string `json:"dashboard_id"`
	WidgetID    string `json:"widget_id"`
}

type removeService interface {
	DeleteWidget(ctx context.Context, dashboardID, widgetID string) error
}

// RemoveWidgetCommand wraps Service.DeleteWidget and records telemetry for
// auditing purposes.
type RemoveWidgetCommand struct {
	service   removeService
	telemetry Telemetry
}

// NewRemoveWidgetCommand builds a command instance.
func NewRemoveWidgetCommand(service removeService, telemetry Telemetry) *RemoveWidgetCommand {
	return &RemoveWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RemoveWidgetInput] = (*RemoveWidgetCommand)(nil)

// Execute removes the widget.
func (c *RemoveWidgetCommand) Execute(ctx context.Context, msg RemoveWidgetInput) error {
	if c.service == nil {
		return errors.New("remove command requires service")
	}
	if err := c.service.DeleteWidget(ctx, msg.DashboardID, msg.WidgetID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "chartboard.widget.remove", map[string]any{
		"dashboard_id": msg.DashboardID,
		"widget_id":    msg.WidgetID,
	})
	return nil
}
