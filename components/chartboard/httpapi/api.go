package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	chartboard "github.com/goliatone/go-chartboard/components/chartboard"
	"github.com/goliatone/go-chartboard/components/chartboard/commands"
	gocommand "github.com/goliatone/go-command"
)

// Executor is the command surface transports invoke. Implementations wrap the
// shared commands so routers never link directly against the service.
type Executor interface {
	CreateDashboard(ctx context.Context, input commands.CreateDashboardInput) error
	RenameDashboard(ctx context.Context, input commands.RenameDashboardInput) error
	DeleteDashboard(ctx context.Context, input commands.DeleteDashboardInput) error
	AddChart(ctx context.Context, input commands.AddChartInput) error
	RemoveWidget(ctx context.Context, input commands.RemoveWidgetInput) error
	ToggleLock(ctx context.Context, input commands.ToggleLockInput) error
	UpdateLayout(ctx context.Context, input commands.UpdateLayoutInput) error
	AssignAgent(ctx context.Context, input commands.AssignAgentInput) error
	PinMessage(ctx context.Context, input commands.PinMessageInput) error
	UnpinMessage(ctx context.Context, input commands.UnpinMessageInput) error
}

// CommandExecutor adapts individual commands into the Executor surface.
type CommandExecutor struct {
	Create gocommand.Commander[commands.CreateDashboardInput]
	Rename gocommand.Commander[commands.RenameDashboardInput]
	Delete gocommand.Commander[commands.DeleteDashboardInput]
	Chart  gocommand.Commander[commands.AddChartInput]
	Remove gocommand.Commander[commands.RemoveWidgetInput]
	Lock   gocommand.Commander[commands.ToggleLockInput]
	Layout gocommand.Commander[commands.UpdateLayoutInput]
	Agent  gocommand.Commander[commands.AssignAgentInput]
	Pin    gocommand.Commander[commands.PinMessageInput]
	Unpin  gocommand.Commander[commands.UnpinMessageInput]
}

var _ Executor = (*CommandExecutor)(nil)

// NewCommandExecutor wires the full command set against a service and pin
// board.
func NewCommandExecutor(service *chartboard.Service, board *chartboard.PinBoard, telemetry commands.Telemetry) *CommandExecutor {
	return &CommandExecutor{
		Create: commands.NewCreateDashboardCommand(service, telemetry),
		Rename: commands.NewRenameDashboardCommand(service, telemetry),
		Delete: commands.NewDeleteDashboardCommand(service, telemetry),
		Chart:  commands.NewAddChartCommand(service, telemetry),
		Remove: commands.NewRemoveWidgetCommand(service, telemetry),
		Lock:   commands.NewToggleLockCommand(service, telemetry),
		Layout: commands.NewUpdateLayoutCommand(service, telemetry),
		Agent:  commands.NewAssignAgentCommand(service, telemetry),
		Pin:    commands.NewPinMessageCommand(board, telemetry),
		Unpin:  commands.NewUnpinMessageCommand(board, telemetry),
	}
}

func (e *CommandExecutor) CreateDashboard(ctx context.Context, input commands.CreateDashboardInput) error {
	return e.Create.Execute(ctx, input)
}

func (e *CommandExecutor) RenameDashboard(ctx context.Context, input commands.RenameDashboardInput) error {
	return e.Rename.Execute(ctx, input)
}

func (e *CommandExecutor) DeleteDashboard(ctx context.Context, input commands.DeleteDashboardInput) error {
	return e.Delete.Execute(ctx, input)
}

func (e *CommandExecutor) AddChart(ctx context.Context, input commands.AddChartInput) error {
	return e.Chart.Execute(ctx, input)
}

func (e *CommandExecutor) RemoveWidget(ctx context.Context, input commands.RemoveWidgetInput) error {
	return e.Remove.Execute(ctx, input)
}

func (e *CommandExecutor) ToggleLock(ctx context.Context, input commands.ToggleLockInput) error {
	return e.Lock.Execute(ctx, input)
}

func (e *CommandExecutor) UpdateLayout(ctx context.Context, input commands.UpdateLayoutInput) error {
	return e.Layout.Execute(ctx, input)
}

func (e *CommandExecutor) AssignAgent(ctx context.Context, input commands.AssignAgentInput) error {
	return e.Agent.Execute(ctx, input)
}

func (e *CommandExecutor) PinMessage(ctx context.Context, input commands.PinMessageInput) error {
	return e.Pin.Execute(ctx, input)
}

func (e *CommandExecutor) UnpinMessage(ctx context.Context, input commands.UnpinMessageInput) error {
	return e.Unpin.Execute(ctx, input)
}

// Handlers exposes HTTP endpoints backed by shared commands.
type Handlers struct {
	API Executor
}

// HandleCreateDashboard accepts {"name": "..."} and creates a dashboard.
func (h *Handlers) HandleCreateDashboard(w http.ResponseWriter, r *http.Request) {
	var payload commands.CreateDashboardInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.CreateDashboard(r.Context(), payload); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// HandleDeleteDashboard removes the identified dashboard. Deleting the last
// one yields 409.
func (h *Handlers) HandleDeleteDashboard(w http.ResponseWriter, r *http.Request, dashboardID string) {
	input := commands.DeleteDashboardInput{DashboardID: dashboardID}
	if err := h.API.DeleteDashboard(r.Context(), input); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleAddChart normalizes a datasource selection into a widget.
func (h *Handlers) HandleAddChart(w http.ResponseWriter, r *http.Request) {
	var payload commands.AddChartInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.AddChart(r.Context(), payload); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// HandleRemoveWidget deletes one widget with its layout entries and lock.
func (h *Handlers) HandleRemoveWidget(w http.ResponseWriter, r *http.Request, dashboardID, widgetID string) {
	input := commands.RemoveWidgetInput{DashboardID: dashboardID, WidgetID: widgetID}
	if err := h.API.RemoveWidget(r.Context(), input); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleToggleLock flips a widget's lock state.
func (h *Handlers) HandleToggleLock(w http.ResponseWriter, r *http.Request) {
	var payload commands.ToggleLockInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.ToggleLock(r.Context(), payload); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// HandleUpdateLayout replaces one breakpoint's layout entries.
func (h *Handlers) HandleUpdateLayout(w http.ResponseWriter, r *http.Request) {
	var payload commands.UpdateLayoutInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.UpdateLayout(r.Context(), payload); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// HandlePinMessage pins a chat response to the pin board.
func (h *Handlers) HandlePinMessage(w http.ResponseWriter, r *http.Request) {
	var payload commands.PinMessageInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.PinMessage(r.Context(), payload); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// respondError maps domain errors onto HTTP status codes.
func respondError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), StatusFor(err))
}

// StatusFor resolves the HTTP status code a domain error maps to.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, chartboard.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, chartboard.ErrDuplicateID):
		return http.StatusConflict
	case errors.Is(err, chartboard.ErrLastDashboard):
		return http.StatusConflict
	case errors.Is(err, chartboard.ErrWidgetLocked):
		return http.StatusConflict
	case errors.Is(err, chartboard.ErrUnsupportedChartType),
		errors.Is(err, chartboard.ErrNotPinnable),
		chartboard.IsValidation(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
