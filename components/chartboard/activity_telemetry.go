package chartboard

import (
	"context"
	"strings"

	"github.com/goliatone/go-chartboard/pkg/activity"
)

// ActivityTelemetry forwards telemetry events to an activity emitter so
// mutations show up in user-facing activity streams. Event names follow the
// "chartboard.<object>.<verb>" convention; anything else is passed through as
// metadata only.
type ActivityTelemetry struct {
	Emitter *activity.Emitter
	// Next optionally chains another telemetry sink.
	Next Telemetry
}

var _ Telemetry = (*ActivityTelemetry)(nil)

// Record implements Telemetry.
func (t ActivityTelemetry) Record(ctx context.Context, event string, payload map[string]any) {
	if t.Next != nil {
		t.Next.Record(ctx, event, payload)
	}
	if t.Emitter == nil || !t.Emitter.Enabled() {
		return
	}
	evt := activity.Event{Metadata: payload}
	parts := strings.Split(event, ".")
	if len(parts) == 3 {
		evt.ObjectType = parts[1]
		evt.Verb = parts[2]
		evt.DefinitionCode = parts[1] + ":" + parts[2]
	} else {
		evt.Verb = event
	}
	if id, ok := payload["widget_id"].(string); ok {
		evt.ObjectID = id
	} else if id, ok := payload["dashboard_id"].(string); ok {
		evt.ObjectID = id
	}
	_ = t.Emitter.Emit(ctx, evt)
}
