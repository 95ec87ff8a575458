package gorouter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	chartboard "github.com/goliatone/go-chartboard/components/chartboard"
	"github.com/goliatone/go-chartboard/components/chartboard/commands"
	"github.com/goliatone/go-chartboard/components/chartboard/httpapi"
	router "github.com/goliatone/go-router"
)

// Config wires go-router with chartboard controllers, APIs, and hooks.
type Config[T any] struct {
	Router     router.Router[T]
	Controller *chartboard.Controller
	Service    *chartboard.Service
	API        httpapi.Executor
	Broadcast  *chartboard.BroadcastHook
	BasePath   string
	Routes     RouteConfig
}

// RouteConfig customizes the relative paths used for chartboard endpoints.
type RouteConfig struct {
	HTML        string
	Dashboards  string
	DashboardID string
	Charts      string
	WidgetID    string
	Layout      string
	Lock        string
	Agent       string
	Pins        string
	Datasources string
	Keys        string
	WebSocket   string
}

// Register mounts chartboard routes (HTML, JSON, REST, WebSocket) on a
// go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	base := cfg.BasePath
	if base == "" {
		base = "/charts"
	}

	group := cfg.Router.Group(base)

	group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		var buf bytes.Buffer
		if err := cfg.Controller.RenderTemplate(ctx.Context(), id, &buf); err != nil {
			return respondError(ctx, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	}))

	group.Get(routes.DashboardID, router.WrapHandler(func(ctx router.Context) error {
		payload, err := cfg.Controller.Payload(ctx.Context(), ctx.Param("id"))
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, payload)
	}))

	if cfg.Service != nil {
		registerReads(group, cfg.Service, routes)
	}

	if cfg.API != nil {
		registerAPI(group, cfg.API, routes)
	}

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

func registerReads[T any](r router.Router[T], service *chartboard.Service, routes RouteConfig) {
	r.Get(routes.Dashboards, router.WrapHandler(func(ctx router.Context) error {
		return ctx.JSON(http.StatusOK, service.Dashboards())
	}))

	r.Get(routes.Datasources, router.WrapHandler(func(ctx router.Context) error {
		return ctx.JSON(http.StatusOK, service.Datasources().List())
	}))

	r.Get(routes.Keys, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		ds, ok := service.Datasources().Get(id)
		if !ok {
			return respondError(ctx, chartboard.ErrNotFound)
		}
		return ctx.JSON(http.StatusOK, chartboard.ExtractKeys(ds.Data))
	}))
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, routes RouteConfig) {
	r.Post(routes.Dashboards, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.CreateDashboardInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return badRequest(ctx, err)
		}
		if err := api.CreateDashboard(ctx.Context(), payload); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusCreated, map[string]string{"status": "created"})
	}))

	r.Delete(routes.DashboardID, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if id == "" {
			return badRequest(ctx, errors.New("dashboard id is required"))
		}
		if err := api.DeleteDashboard(ctx.Context(), commands.DeleteDashboardInput{DashboardID: id}); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "removed"})
	}))

	r.Post(routes.Charts, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.AddChartInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return badRequest(ctx, err)
		}
		payload.DashboardID = ctx.Param("id")
		if err := api.AddChart(ctx.Context(), payload); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusCreated, map[string]string{"status": "created"})
	}))

	r.Delete(routes.WidgetID, router.WrapHandler(func(ctx router.Context) error {
		input := commands.RemoveWidgetInput{
			DashboardID: ctx.Param("id"),
			WidgetID:    ctx.Param("widget"),
		}
		if input.WidgetID == "" {
			return badRequest(ctx, errors.New("widget id is required"))
		}
		if err := api.RemoveWidget(ctx.Context(), input); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "removed"})
	}))

	r.Post(routes.Lock, router.WrapHandler(func(ctx router.Context) error {
		input := commands.ToggleLockInput{
			DashboardID: ctx.Param("id"),
			WidgetID:    ctx.Param("widget"),
		}
		if err := api.ToggleLock(ctx.Context(), input); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "toggled"})
	}))

	r.Post(routes.Layout, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.UpdateLayoutInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return badRequest(ctx, err)
		}
		payload.DashboardID = ctx.Param("id")
		if err := api.UpdateLayout(ctx.Context(), payload); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "saved"})
	}))

	r.Post(routes.Agent, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.AssignAgentInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return badRequest(ctx, err)
		}
		payload.DashboardID = ctx.Param("id")
		if err := api.AssignAgent(ctx.Context(), payload); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "assigned"})
	}))

	r.Post(routes.Pins, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.PinMessageInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return badRequest(ctx, err)
		}
		if err := api.PinMessage(ctx.Context(), payload); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusCreated, map[string]string{"status": "pinned"})
	}))
}

func registerWebSocket[T any](r router.Router[T], hook *chartboard.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func badRequest(ctx router.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
}

func respondError(ctx router.Context, err error) error {
	return ctx.JSON(httpapi.StatusFor(err), map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/dashboards/:id/html"
	}
	if routes.Dashboards == "" {
		routes.Dashboards = "/dashboards"
	}
	if routes.DashboardID == "" {
		routes.DashboardID = "/dashboards/:id"
	}
	if routes.Charts == "" {
		routes.Charts = "/dashboards/:id/charts"
	}
	if routes.WidgetID == "" {
		routes.WidgetID = "/dashboards/:id/charts/:widget"
	}
	if routes.Layout == "" {
		routes.Layout = "/dashboards/:id/layout"
	}
	if routes.Lock == "" {
		routes.Lock = "/dashboards/:id/charts/:widget/lock"
	}
	if routes.Agent == "" {
		routes.Agent = "/dashboards/:id/agent"
	}
	if routes.Pins == "" {
		routes.Pins = "/pins"
	}
	if routes.Datasources == "" {
		routes.Datasources = "/datasources"
	}
	if routes.Keys == "" {
		routes.Keys = "/datasources/:id/keys"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/ws"
	}
	return routes
}
