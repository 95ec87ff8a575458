// Package activity emits audit events for chartboard mutations so host
// applications can feed user-facing activity streams.
package activity

import (
	"context"
	"strings"
	"time"
)

// DefaultChannel tags events that do not set an explicit channel.
const DefaultChannel = "chartboard"

// Event is one auditable action taken against a dashboard or chart.
type Event struct {
	Verb           string
	ActorID        string
	UserID         string
	TenantID       string
	ObjectType     string
	ObjectID       string
	Channel        string
	DefinitionCode string
	Recipients     []string
	Metadata       map[string]any
	OccurredAt     time.Time
}

// Valid reports whether the event carries the minimum auditable payload.
func (e Event) Valid() bool {
	return strings.TrimSpace(e.Verb) != ""
}

// NormalizeEvent trims identifier fields, applies the default channel and
// timestamp, and clones the mutable collections so hooks cannot alias the
// caller's data.
func NormalizeEvent(evt Event) Event {
	out := evt
	out.Verb = strings.TrimSpace(evt.Verb)
	out.ObjectType = strings.TrimSpace(evt.ObjectType)
	out.ObjectID = strings.TrimSpace(evt.ObjectID)
	if out.Channel == "" {
		out.Channel = DefaultChannel
	}
	if out.OccurredAt.IsZero() {
		out.OccurredAt = time.Now()
	}
	if evt.Metadata != nil {
		out.Metadata = make(map[string]any, len(evt.Metadata))
		for k, v := range evt.Metadata {
			out.Metadata[k] = v
		}
	}
	if evt.Recipients != nil {
		out.Recipients = append([]string{}, evt.Recipients...)
	}
	return out
}

// Hook receives normalized activity events.
type Hook interface {
	Notify(ctx context.Context, evt Event) error
}

// HookFunc adapts a function into a Hook.
type HookFunc func(ctx context.Context, evt Event) error

// Notify implements Hook.
func (f HookFunc) Notify(ctx context.Context, evt Event) error {
	return f(ctx, evt)
}

// Hooks fans one event out to every registered hook.
type Hooks []Hook

// Notify normalizes the event and delivers it to each hook. Events without a
// verb are skipped. The first hook error stops delivery.
func (h Hooks) Notify(ctx context.Context, evt Event) error {
	if !evt.Valid() {
		return nil
	}
	normalized := NormalizeEvent(evt)
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.Notify(ctx, normalized); err != nil {
			return err
		}
	}
	return nil
}

// Config toggles activity emission.
type Config struct {
	Enabled bool
}

// Emitter dispatches events when enabled and at least one hook is registered.
type Emitter struct {
	hooks   Hooks
	enabled bool
}

// NewEmitter builds an emitter over the hook set.
func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	return &Emitter{hooks: hooks, enabled: cfg.Enabled && len(hooks) > 0}
}

// Enabled reports whether Emit will deliver events.
func (e *Emitter) Enabled() bool {
	return e != nil && e.enabled
}

// Emit delivers the event to the hooks; disabled emitters drop it silently.
func (e *Emitter) Emit(ctx context.Context, evt Event) error {
	if !e.Enabled() {
		return nil
	}
	return e.hooks.Notify(ctx, evt)
}
