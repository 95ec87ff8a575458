package commands

import (
	"context"
	"errors"

	chartboard "github.com/goliatone/go-chartboard/components/chartboard"
	gocommand "github.com/goliatone/go-command"
)

// ToggleLockInput identifies the widget whose lock state flips.
type ToggleLockInput struct {
	DashboardID string `json:"dashboard_id"`
	WidgetID    string `json:"widget_id"`
}

type lockService interface {
	ToggleLock(ctx context.Context, dashboardID, widgetID string) (bool, error)
}

// ToggleLockCommand wraps Service.ToggleLock.
type ToggleLockCommand struct {
	service   lockService
	telemetry Telemetry
}

// NewToggleLockCommand builds a command instance.
func NewToggleLockCommand(service lockService, telemetry Telemetry) *ToggleLockCommand {
	return &ToggleLockCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleLockInput] = (*ToggleLockCommand)(nil)

// Execute flips the widget's lock state.
func (c *ToggleLockCommand) Execute(ctx context.Context, msg ToggleLockInput) error {
	if c.service == nil {
		return errors.New("toggle lock command requires service")
	}
	locked, err := c.service.ToggleLock(ctx, msg.DashboardID, msg.WidgetID)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "chartboard.widget.lock", map[string]any{
		"dashboard_id": msg.DashboardID,
		"widget_id":    msg.WidgetID,
		"locked":       locked,
	})
	return nil
}

// UpdateLayoutInput replaces one breakpoint's layout entries.
type UpdateLayoutInput struct {
	DashboardID string                  `json:"dashboard_id"`
	Breakpoint  string                  `json:"breakpoint"`
	Entries     []chartboard.LayoutEntry `json:"entries"`
}

type layoutService interface {
	UpdateLayout(ctx context.Context, dashboardID, breakpoint string, entries []chartboard.LayoutEntry) error
}

// UpdateLayoutCommand wraps Service.UpdateLayout, applying a drag or resize
// result.
type UpdateLayoutCommand struct {
	service   layoutService
	telemetry Telemetry
}

// NewUpdateLayoutCommand builds a command instance.
func NewUpdateLayoutCommand(service layoutService, telemetry Telemetry) *UpdateLayoutCommand {
	return &UpdateLayoutCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateLayoutInput] = (*UpdateLayoutCommand)(nil)

// Execute replaces the breakpoint layout.
func (c *UpdateLayoutCommand) Execute(ctx context.Context, msg UpdateLayoutInput) error {
	if c.service == nil {
		return errors.New("update layout command requires service")
	}
	if err := c.service.UpdateLayout(ctx, msg.DashboardID, msg.Breakpoint, msg.Entries); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "chartboard.layout.update", map[string]any{
		"dashboard_id": msg.DashboardID,
		"breakpoint":   msg.Breakpoint,
		"entries":      len(msg.Entries),
	})
	return nil
}
