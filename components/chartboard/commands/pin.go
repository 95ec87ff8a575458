package commands

import (
	"context"
	"errors"

	chartboard "github.com/goliatone/go-chartboard/components/chartboard"
	gocommand "github.com/goliatone/go-command"
)

// PinMessageInput carries the chat message to pin.
type PinMessageInput struct {
	Message chartboard.ChatMessage `json:"message"`
}

type pinBoard interface {
	Pin(msg chartboard.ChatMessage) (chartboard.PinnedMessage, error)
}

// PinMessageCommand promotes a chat response with chart data onto the pin
// board. Messages without renderable chart data fail with ErrNotPinnable.
type PinMessageCommand struct {
	board     pinBoard
	telemetry Telemetry
}

// NewPinMessageCommand builds a command instance.
func NewPinMessageCommand(board pinBoard, telemetry Telemetry) *PinMessageCommand {
	return &PinMessageCommand{board: board, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[PinMessageInput] = (*PinMessageCommand)(nil)

// Execute pins the message.
func (c *PinMessageCommand) Execute(ctx context.Context, msg PinMessageInput) error {
	if c.board == nil {
		return errors.New("pin command requires a pin board")
	}
	pinned, err := c.board.Pin(msg.Message)
	if err != nil {
		return err
	}
	payload := map[string]any{"title": pinned.EditableTitle}
	if chart := msg.Message.ChartData; chart != nil {
		payload["graph_type"] = chart.GraphType
	}
	c.telemetry.Record(ctx, "chartboard.message.pin", payload)
	return nil
}

// UnpinMessageInput identifies the pinned item by position.
type UnpinMessageInput struct {
	Index int `json:"index"`
}

type unpinBoard interface {
	Unpin(index int) error
}

// UnpinMessageCommand removes a pinned chat visualization.
type UnpinMessageCommand struct {
	board     unpinBoard
	telemetry Telemetry
}

// NewUnpinMessageCommand builds a command instance.
func NewUnpinMessageCommand(board unpinBoard, telemetry Telemetry) *UnpinMessageCommand {
	return &UnpinMessageCommand{board: board, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UnpinMessageInput] = (*UnpinMessageCommand)(nil)

// Execute removes the pinned item.
func (c *UnpinMessageCommand) Execute(ctx context.Context, msg UnpinMessageInput) error {
	if c.board == nil {
		return errors.New("unpin command requires a pin board")
	}
	if err := c.board.Unpin(msg.Index); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "chartboard.message.unpin", map[string]any{"index": msg.Index})
	return nil
}
