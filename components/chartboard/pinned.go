package chartboard

import (
	"fmt"
	"sort"
	"sync"
)

// DefaultPinnedTitle is used when a pinned chat response carries no title.
const DefaultPinnedTitle = "Pinned Chart"

// ChatChart is the chart payload a chat response may carry. Data is
// column-oriented: series name to the parallel array of values.
type ChatChart struct {
	Data      map[string][]any `json:"data"`
	ShowGraph bool             `json:"show_graph"`
	GraphType string           `json:"graph_type"`
	XAxis     string           `json:"x_axis"`
	YAxis     string           `json:"y_axis"`
	Title     string           `json:"title,omitempty"`
}

// ChatMessage is one chat exchange entry as seen by the pin board.
type ChatMessage struct {
	Sender    string     `json:"sender"`
	Content   string     `json:"content"`
	PlainText string     `json:"plain_text,omitempty"`
	ChartData *ChatChart `json:"chart_data,omitempty"`
}

// Pinnable reports whether the message carries renderable chart data.
func (m ChatMessage) Pinnable() bool {
	return m.ChartData != nil && m.ChartData.ShowGraph
}

// PinnedMessage is a chat response promoted to a dashboard-attachable item
// with an editable title.
type PinnedMessage struct {
	Message       ChatMessage `json:"message"`
	EditableTitle string      `json:"editable_title"`
	IsEditing     bool        `json:"is_editing"`
}

// Payload runs the pinned chart through the same normalizer contract that
// manually configured widgets use: the column-oriented chat data is zipped
// into row records and dispatched on the chart type.
func (p PinnedMessage) Payload() (WidgetPayload, error) {
	chart := p.Message.ChartData
	if chart == nil {
		return WidgetPayload{}, ErrNotPinnable
	}
	chartType, err := ParseChartType(chart.GraphType)
	if err != nil {
		return WidgetPayload{}, err
	}
	ds := Datasource{
		ID:   "chat",
		Name: p.EditableTitle,
		Data: ZipSeries(chart.Data),
	}
	return Normalize(ds, Selection{
		Type:   chartType,
		Fields: []string{chart.XAxis, chart.YAxis},
	})
}

// ZipSeries converts a column-oriented mapping of parallel arrays into row
// records, one per index. Short columns yield nil values rather than
// truncating the longer ones.
func ZipSeries(columns map[string][]any) []Record {
	length := 0
	keys := make([]string, 0, len(columns))
	for key, values := range columns {
		keys = append(keys, key)
		if len(values) > length {
			length = len(values)
		}
	}
	sort.Strings(keys)
	rows := make([]Record, length)
	for i := range rows {
		row := make(Record, len(keys))
		for _, key := range keys {
			if values := columns[key]; i < len(values) {
				row[key] = values[i]
			} else {
				row[key] = nil
			}
		}
		rows[i] = row
	}
	return rows
}

// PinBoard manages the ordered list of pinned chat visualizations.
type PinBoard struct {
	mu    sync.RWMutex
	items []PinnedMessage
}

// NewPinBoard builds an empty pin board.
func NewPinBoard() *PinBoard {
	return &PinBoard{}
}

// Pin appends a chat message as a pinned item. Messages without chart data
// (or with the graph indicator off) fail with ErrNotPinnable.
func (b *PinBoard) Pin(msg ChatMessage) (PinnedMessage, error) {
	if !msg.Pinnable() {
		return PinnedMessage{}, ErrNotPinnable
	}
	title := msg.ChartData.Title
	if title == "" {
		title = DefaultPinnedTitle
	}
	pinned := PinnedMessage{
		Message:       msg,
		EditableTitle: title,
	}
	b.mu.Lock()
	b.items = append(b.items, pinned)
	b.mu.Unlock()
	return pinned, nil
}

// Unpin removes the pinned item at the given position.
func (b *PinBoard) Unpin(index int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if index < 0 || index >= len(b.items) {
		return fmt.Errorf("%w: pinned message %d", ErrNotFound, index)
	}
	b.items = append(b.items[:index], b.items[index+1:]...)
	return nil
}

// BeginEdit marks the item's title as editable.
func (b *PinBoard) BeginEdit(index int) error {
	return b.update(index, func(item *PinnedMessage) error {
		item.IsEditing = true
		return nil
	})
}

// RenameTitle updates the editable title. Renames outside an edit session
// are rejected.
func (b *PinBoard) RenameTitle(index int, title string) error {
	return b.update(index, func(item *PinnedMessage) error {
		if !item.IsEditing {
			return fmt.Errorf("chartboard: pinned message %d is not being edited", index)
		}
		item.EditableTitle = title
		return nil
	})
}

// CommitEdit closes the edit session, keeping the current title.
func (b *PinBoard) CommitEdit(index int) error {
	return b.update(index, func(item *PinnedMessage) error {
		item.IsEditing = false
		return nil
	})
}

// Items returns a copy of the pinned list in pin order.
func (b *PinBoard) Items() []PinnedMessage {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]PinnedMessage{}, b.items...)
}

func (b *PinBoard) update(index int, fn func(*PinnedMessage) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if index < 0 || index >= len(b.items) {
		return fmt.Errorf("%w: pinned message %d", ErrNotFound, index)
	}
	return fn(&b.items[index])
}
