package chartboard

import (
	"context"
	"testing"

	"github.com/goliatone/go-chartboard/pkg/activity"
)

func TestActivityTelemetryEmitsParsedEvents(t *testing.T) {
	var captured []activity.Event
	hook := activity.HookFunc(func(_ context.Context, event activity.Event) error {
		captured = append(captured, event)
		return nil
	})
	emitter := activity.NewEmitter(activity.Hooks{hook}, activity.Config{Enabled: true})

	telemetry := ActivityTelemetry{Emitter: emitter}
	telemetry.Record(context.Background(), "chartboard.widget.lock", map[string]any{
		"widget_id":    "w1",
		"dashboard_id": "d1",
	})

	if len(captured) != 1 {
		t.Fatalf("expected one event, got %d", len(captured))
	}
	event := captured[0]
	if event.Verb != "lock" || event.ObjectType != "widget" {
		t.Fatalf("unexpected event %+v", event)
	}
	if event.DefinitionCode != "widget:lock" {
		t.Fatalf("unexpected definition code %q", event.DefinitionCode)
	}
	if event.ObjectID != "w1" {
		t.Fatalf("expected widget id preferred over dashboard id, got %q", event.ObjectID)
	}
}

func TestActivityTelemetryChainsNext(t *testing.T) {
	var forwarded []string
	next := telemetryFunc(func(_ context.Context, event string, _ map[string]any) {
		forwarded = append(forwarded, event)
	})

	telemetry := ActivityTelemetry{Next: next}
	telemetry.Record(context.Background(), "chartboard.dashboard.create", nil)

	if len(forwarded) != 1 || forwarded[0] != "chartboard.dashboard.create" {
		t.Fatalf("expected event forwarded, got %v", forwarded)
	}
}

func TestActivityTelemetrySkipsDisabledEmitter(t *testing.T) {
	var captured []activity.Event
	hook := activity.HookFunc(func(_ context.Context, event activity.Event) error {
		captured = append(captured, event)
		return nil
	})
	emitter := activity.NewEmitter(activity.Hooks{hook}, activity.Config{Enabled: false})

	telemetry := ActivityTelemetry{Emitter: emitter}
	telemetry.Record(context.Background(), "chartboard.widget.lock", nil)

	if len(captured) != 0 {
		t.Fatalf("expected no events from disabled emitter")
	}
}

type telemetryFunc func(ctx context.Context, event string, payload map[string]any)

func (f telemetryFunc) Record(ctx context.Context, event string, payload map[string]any) {
	f(ctx, event, payload)
}
