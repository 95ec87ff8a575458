package chartboard

import "testing"

func TestNewLayoutEntryAppendsBelowDeepestRow(t *testing.T) {
	existing := []LayoutEntry{
		{WidgetID: "a", Y: 0, H: 24},
		{WidgetID: "b", Y: 24, H: 12},
	}
	entry := NewLayoutEntry("c", existing)
	if entry.Y != 36 {
		t.Fatalf("expected row 36, got %d", entry.Y)
	}
	if entry.X != 0 || entry.W != 12 || entry.H != 24 {
		t.Fatalf("unexpected geometry %+v", entry)
	}
}

func TestNewLayoutEntryOnEmptyGrid(t *testing.T) {
	entry := NewLayoutEntry("a", nil)
	if entry.Y != 0 {
		t.Fatalf("expected row 0, got %d", entry.Y)
	}
	if entry.MinW != 3 || entry.MaxW != 12 || entry.MinH != 4 || entry.MaxH != 0 {
		t.Fatalf("unexpected constraints %+v", entry)
	}
}

func TestLayoutsSetStaticAcrossBreakpoints(t *testing.T) {
	layouts := Layouts{
		BreakpointLG: {{WidgetID: "a"}, {WidgetID: "b"}},
		BreakpointSM: {{WidgetID: "a"}},
	}
	layouts.setStatic("a", true)
	if !layouts[BreakpointLG][0].Static || !layouts[BreakpointSM][0].Static {
		t.Fatalf("expected static on every breakpoint")
	}
	if layouts[BreakpointLG][1].Static {
		t.Fatalf("expected other widgets untouched")
	}
}

func TestLayoutsRemoveWidget(t *testing.T) {
	layouts := Layouts{
		BreakpointLG: {{WidgetID: "a"}, {WidgetID: "b"}},
		BreakpointSM: {{WidgetID: "a"}},
	}
	layouts.removeWidget("a")
	if len(layouts[BreakpointLG]) != 1 || layouts[BreakpointLG][0].WidgetID != "b" {
		t.Fatalf("unexpected lg entries %v", layouts[BreakpointLG])
	}
	if len(layouts[BreakpointSM]) != 0 {
		t.Fatalf("expected sm empty, got %v", layouts[BreakpointSM])
	}
}
