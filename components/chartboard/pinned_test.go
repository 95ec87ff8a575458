package chartboard

import (
	"errors"
	"reflect"
	"testing"
)

func chatMessageFixture() ChatMessage {
	return ChatMessage{
		Sender:  "assistant",
		Content: "Revenue is trending up.",
		ChartData: &ChatChart{
			Data: map[string][]any{
				"month":   {"Jan", "Feb", "Mar"},
				"revenue": {120.0, 132.5, 151.0},
			},
			ShowGraph: true,
			GraphType: "line",
			XAxis:     "month",
			YAxis:     "revenue",
		},
	}
}

func TestPinRejectsMessagesWithoutChartData(t *testing.T) {
	board := NewPinBoard()
	_, err := board.Pin(ChatMessage{Sender: "assistant", Content: "plain text"})
	if !errors.Is(err, ErrNotPinnable) {
		t.Fatalf("expected ErrNotPinnable, got %v", err)
	}

	msg := chatMessageFixture()
	msg.ChartData.ShowGraph = false
	if _, err := board.Pin(msg); !errors.Is(err, ErrNotPinnable) {
		t.Fatalf("expected ErrNotPinnable when graph flag off, got %v", err)
	}
}

func TestPinDefaultsTitle(t *testing.T) {
	board := NewPinBoard()
	pinned, err := board.Pin(chatMessageFixture())
	if err != nil {
		t.Fatalf("pin: %v", err)
	}
	if pinned.EditableTitle != DefaultPinnedTitle {
		t.Fatalf("expected default title, got %q", pinned.EditableTitle)
	}

	titled := chatMessageFixture()
	titled.ChartData.Title = "Spring Revenue"
	pinned, err = board.Pin(titled)
	if err != nil {
		t.Fatalf("pin: %v", err)
	}
	if pinned.EditableTitle != "Spring Revenue" {
		t.Fatalf("expected provided title kept, got %q", pinned.EditableTitle)
	}
}

func TestPinUnpinOrder(t *testing.T) {
	board := NewPinBoard()
	first := chatMessageFixture()
	first.ChartData.Title = "First"
	second := chatMessageFixture()
	second.ChartData.Title = "Second"
	_, _ = board.Pin(first)
	_, _ = board.Pin(second)

	if err := board.Unpin(0); err != nil {
		t.Fatalf("unpin: %v", err)
	}
	items := board.Items()
	if len(items) != 1 || items[0].EditableTitle != "Second" {
		t.Fatalf("expected only second item, got %v", items)
	}
	if err := board.Unpin(5); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for bad index, got %v", err)
	}
}

func TestRenameTitleRequiresEditSession(t *testing.T) {
	board := NewPinBoard()
	_, _ = board.Pin(chatMessageFixture())

	if err := board.RenameTitle(0, "New Title"); err == nil {
		t.Fatalf("expected rename outside edit session to fail")
	}
	if err := board.BeginEdit(0); err != nil {
		t.Fatalf("begin edit: %v", err)
	}
	if err := board.RenameTitle(0, "New Title"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if err := board.CommitEdit(0); err != nil {
		t.Fatalf("commit: %v", err)
	}
	items := board.Items()
	if items[0].EditableTitle != "New Title" || items[0].IsEditing {
		t.Fatalf("unexpected item state %+v", items[0])
	}
}

func TestZipSeriesBuildsRows(t *testing.T) {
	rows := ZipSeries(map[string][]any{
		"month":   {"Jan", "Feb"},
		"revenue": {120.0, 132.5, 151.0},
	})
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	want := Record{"month": "Jan", "revenue": 120.0}
	if !reflect.DeepEqual(rows[0], want) {
		t.Fatalf("unexpected first row %v", rows[0])
	}
	// Short columns pad with nil rather than truncating.
	if rows[2]["month"] != nil || rows[2]["revenue"] != 151.0 {
		t.Fatalf("unexpected padded row %v", rows[2])
	}
}

func TestPinnedMessagePayloadUsesNormalizer(t *testing.T) {
	board := NewPinBoard()
	pinned, err := board.Pin(chatMessageFixture())
	if err != nil {
		t.Fatalf("pin: %v", err)
	}
	payload, err := pinned.Payload()
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	if payload.Type != ChartLine {
		t.Fatalf("expected line payload, got %s", payload.Type)
	}
	if payload.XAxisDataKey != "month" || !reflect.DeepEqual(payload.DataKeys, []string{"revenue"}) {
		t.Fatalf("unexpected keys: %q %v", payload.XAxisDataKey, payload.DataKeys)
	}
	if len(payload.Data) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(payload.Data))
	}
}

func TestPinnedMessagePayloadRejectsUnknownGraphType(t *testing.T) {
	msg := chatMessageFixture()
	msg.ChartData.GraphType = "sparkline"
	pinned := PinnedMessage{Message: msg, EditableTitle: DefaultPinnedTitle}
	if _, err := pinned.Payload(); !errors.Is(err, ErrUnsupportedChartType) {
		t.Fatalf("expected ErrUnsupportedChartType, got %v", err)
	}
}
