package activity

import (
	"context"
	"errors"
	"testing"
)

func captureHook(events *[]Event) HookFunc {
	return func(_ context.Context, evt Event) error {
		*events = append(*events, evt)
		return nil
	}
}

func TestEmitterDeliversNormalizedEvents(t *testing.T) {
	var events []Event
	em := NewEmitter(Hooks{captureHook(&events)}, Config{Enabled: true})
	if !em.Enabled() {
		t.Fatalf("expected emitter enabled")
	}

	err := em.Emit(context.Background(), Event{
		Verb:       "pin",
		ObjectType: "chart",
		ObjectID:   "module_42",
	})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected one delivery, got %d", len(events))
	}
	evt := events[0]
	if evt.Verb != "pin" || evt.ObjectType != "chart" || evt.ObjectID != "module_42" {
		t.Fatalf("unexpected event %+v", evt)
	}
	if evt.Channel != DefaultChannel {
		t.Fatalf("expected default channel %q, got %q", DefaultChannel, evt.Channel)
	}
	if evt.OccurredAt.IsZero() {
		t.Fatalf("expected timestamp applied")
	}
}

func TestEmitterDisabledDropsEvents(t *testing.T) {
	var events []Event
	cases := []struct {
		name string
		em   *Emitter
	}{
		{"no hooks", NewEmitter(nil, Config{Enabled: true})},
		{"config off", NewEmitter(Hooks{captureHook(&events)}, Config{Enabled: false})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.em.Enabled() {
				t.Fatalf("expected emitter disabled")
			}
			if err := tc.em.Emit(context.Background(), Event{Verb: "pin"}); err != nil {
				t.Fatalf("disabled emit should be silent, got %v", err)
			}
		})
	}
	if len(events) != 0 {
		t.Fatalf("expected no deliveries, got %d", len(events))
	}
}

func TestEmitterStopsOnHookError(t *testing.T) {
	boom := errors.New("sink offline")
	var delivered int
	em := NewEmitter(Hooks{
		HookFunc(func(context.Context, Event) error { return boom }),
		HookFunc(func(context.Context, Event) error { delivered++; return nil }),
	}, Config{Enabled: true})

	err := em.Emit(context.Background(), Event{Verb: "unpin"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected hook error surfaced, got %v", err)
	}
	if delivered != 0 {
		t.Fatalf("expected delivery stopped at first failing hook")
	}
}
