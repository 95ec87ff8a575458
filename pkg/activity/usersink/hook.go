// Package usersink bridges chartboard activity events into a go-users
// activity sink.
package usersink

import (
	"context"
	"fmt"

	"github.com/goliatone/go-chartboard/pkg/activity"
	"github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// Sink is the subset of the go-users activity logger the hook needs.
type Sink interface {
	Log(ctx context.Context, record types.ActivityRecord) error
}

// Hook converts activity events into go-users activity records.
type Hook struct {
	Sink Sink
}

var _ activity.Hook = (*Hook)(nil)

// Notify maps the event onto an ActivityRecord and logs it. Events without a
// verb are dropped; malformed identifiers fail the call.
func (h Hook) Notify(ctx context.Context, evt activity.Event) error {
	if h.Sink == nil || !evt.Valid() {
		return nil
	}
	record := types.ActivityRecord{
		Verb:       evt.Verb,
		ObjectType: evt.ObjectType,
		ObjectID:   evt.ObjectID,
		Channel:    evt.Channel,
		OccurredAt: evt.OccurredAt,
	}
	var err error
	if record.ActorID, err = parseID("actor", evt.ActorID); err != nil {
		return err
	}
	if record.UserID, err = parseID("user", evt.UserID); err != nil {
		return err
	}
	if record.TenantID, err = parseID("tenant", evt.TenantID); err != nil {
		return err
	}
	record.Data = map[string]any{}
	for k, v := range evt.Metadata {
		record.Data[k] = v
	}
	if evt.DefinitionCode != "" {
		record.Data["definition_code"] = evt.DefinitionCode
	}
	if len(evt.Recipients) > 0 {
		record.Data["recipients"] = append([]string{}, evt.Recipients...)
	}
	return h.Sink.Log(ctx, record)
}

func parseID(label, value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("usersink: parse %s id %q: %w", label, value, err)
	}
	return id, nil
}
