package chartboard

import (
	core "github.com/goliatone/go-chartboard/components/chartboard"
)

// Service exposes the underlying components/chartboard.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// Frequently used domain types, re-exported so applications can depend on
// this package alone.
type (
	Dashboard       = core.Dashboard
	Widget          = core.Widget
	Datasource      = core.Datasource
	Record          = core.Record
	Selection       = core.Selection
	ChartType       = core.ChartType
	AddChartRequest = core.AddChartRequest
	Snapshot        = core.Snapshot
	PinBoard        = core.PinBoard
	ChatMessage     = core.ChatMessage
)

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}

// NewPinBoard proxies to the internal constructor.
func NewPinBoard() *PinBoard {
	return core.NewPinBoard()
}
