package commands

import (
	"context"
	"errors"

	chartboard "github.com/goliatone/go-chartboard/components/chartboard"
	gocommand "github.com/goliatone/go-command"
)

// CreateDashboardInput names the dashboard to create.
type CreateDashboardInput struct {
	Name string `json:"name"`
}

type createService interface {
	CreateDashboard(ctx context.Context, name string) (chartboard.Dashboard, error)
}

// CreateDashboardCommand wraps Service.CreateDashboard.
type CreateDashboardCommand struct {
	service   createService
	telemetry Telemetry
}

// NewCreateDashboardCommand builds a command instance.
func NewCreateDashboardCommand(service createService, telemetry Telemetry) *CreateDashboardCommand {
	return &CreateDashboardCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CreateDashboardInput] = (*CreateDashboardCommand)(nil)

// Execute creates the dashboard.
func (c *CreateDashboardCommand) Execute(ctx context.Context, msg CreateDashboardInput) error {
	if c.service == nil {
		return errors.New("create command requires service")
	}
	created, err := c.service.CreateDashboard(ctx, msg.Name)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "chartboard.dashboard.create", map[string]any{"dashboard_id": created.ID})
	return nil
}

// RenameDashboardInput carries the dashboard id and its new name.
type RenameDashboardInput struct {
	DashboardID string `json:"dashboard_id"`
	Name        string `json:"name"`
}

type renameService interface {
	RenameDashboard(ctx context.Context, id, name string) error
}

// RenameDashboardCommand wraps Service.RenameDashboard.
type RenameDashboardCommand struct {
	service   renameService
	telemetry Telemetry
}

// NewRenameDashboardCommand builds a command instance.
func NewRenameDashboardCommand(service renameService, telemetry Telemetry) *RenameDashboardCommand {
	return &RenameDashboardCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RenameDashboardInput] = (*RenameDashboardCommand)(nil)

// Execute renames the dashboard.
func (c *RenameDashboardCommand) Execute(ctx context.Context, msg RenameDashboardInput) error {
	if c.service == nil {
		return errors.New("rename command requires service")
	}
	if err := c.service.RenameDashboard(ctx, msg.DashboardID, msg.Name); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "chartboard.dashboard.rename", map[string]any{"dashboard_id": msg.DashboardID})
	return nil
}

// DeleteDashboardInput identifies the dashboard to remove.
type DeleteDashboardInput struct {
	DashboardID string `json:"dashboard_id"`
}

type deleteService interface {
	DeleteDashboard(ctx context.Context, id string) error
}

// DeleteDashboardCommand wraps Service.DeleteDashboard. Removing the last
// remaining dashboard surfaces chartboard.ErrLastDashboard.
type DeleteDashboardCommand struct {
	service   deleteService
	telemetry Telemetry
}

// NewDeleteDashboardCommand builds a command instance.
func NewDeleteDashboardCommand(service deleteService, telemetry Telemetry) *DeleteDashboardCommand {
	return &DeleteDashboardCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeleteDashboardInput] = (*DeleteDashboardCommand)(nil)

// Execute deletes the dashboard.
func (c *DeleteDashboardCommand) Execute(ctx context.Context, msg DeleteDashboardInput) error {
	if c.service == nil {
		return errors.New("delete command requires service")
	}
	if err := c.service.DeleteDashboard(ctx, msg.DashboardID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "chartboard.dashboard.delete", map[string]any{"dashboard_id": msg.DashboardID})
	return nil
}

// AssignAgentInput binds a chat agent to a dashboard. A nil Agent clears the
// assignment.
type AssignAgentInput struct {
	DashboardID string            `json:"dashboard_id"`
	Agent       *chartboard.Agent `json:"agent,omitempty"`
}

type assignAgentService interface {
	AssignAgent(ctx context.Context, dashboardID string, agent *chartboard.Agent) error
}

// AssignAgentCommand wraps Service.AssignAgent.
type AssignAgentCommand struct {
	service   assignAgentService
	telemetry Telemetry
}

// NewAssignAgentCommand builds a command instance.
func NewAssignAgentCommand(service assignAgentService, telemetry Telemetry) *AssignAgentCommand {
	return &AssignAgentCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[AssignAgentInput] = (*AssignAgentCommand)(nil)

// Execute assigns the agent.
func (c *AssignAgentCommand) Execute(ctx context.Context, msg AssignAgentInput) error {
	if c.service == nil {
		return errors.New("assign agent command requires service")
	}
	if err := c.service.AssignAgent(ctx, msg.DashboardID, msg.Agent); err != nil {
		return err
	}
	payload := map[string]any{"dashboard_id": msg.DashboardID}
	if msg.Agent != nil {
		payload["agent_id"] = msg.Agent.ID
	}
	c.telemetry.Record(ctx, "chartboard.dashboard.assign_agent", payload)
	return nil
}
