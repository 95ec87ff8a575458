package chartboard

// Responsive grid breakpoints, widest first. New charts land on the widest
// breakpoint; lock toggles apply across all of them.
const (
	BreakpointLG  = "lg"
	BreakpointMD  = "md"
	BreakpointSM  = "sm"
	BreakpointXS  = "xs"
	BreakpointXXS = "xxs"
)

// DefaultBreakpoint receives newly added layout entries.
const DefaultBreakpoint = BreakpointLG

// Default geometry for new entries: full width, tall, appended below
// everything already placed. MaxH of zero means unbounded.
const (
	defaultEntryW    = 12
	defaultEntryH    = 24
	defaultEntryMinW = 3
	defaultEntryMaxW = 12
	defaultEntryMinH = 4
)

// LayoutEntry is the grid placement/size metadata for one widget within one
// responsive breakpoint. Static entries refuse drags and resizes.
type LayoutEntry struct {
	WidgetID string `json:"widgetId"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	W        int    `json:"w"`
	H        int    `json:"h"`
	MinW     int    `json:"minW"`
	MaxW     int    `json:"maxW"`
	MinH     int    `json:"minH"`
	MaxH     int    `json:"maxH"`
	Static   bool   `json:"static"`
}

// Layouts maps a breakpoint name to the ordered layout entries shown there.
type Layouts map[string][]LayoutEntry

// NewLayoutEntry places a widget at the default geometry, appended after the
// maximum currently occupied row of the given entries.
func NewLayoutEntry(widgetID string, existing []LayoutEntry) LayoutEntry {
	return LayoutEntry{
		WidgetID: widgetID,
		X:        0,
		Y:        nextRow(existing),
		W:        defaultEntryW,
		H:        defaultEntryH,
		MinW:     defaultEntryMinW,
		MaxW:     defaultEntryMaxW,
		MinH:     defaultEntryMinH,
	}
}

// nextRow computes the append-to-bottom row: one past the deepest occupied
// cell, or zero on an empty grid.
func nextRow(entries []LayoutEntry) int {
	max := 0
	for _, entry := range entries {
		if bottom := entry.Y + entry.H; bottom > max {
			max = bottom
		}
	}
	return max
}

func (l Layouts) clone() Layouts {
	if l == nil {
		return Layouts{}
	}
	out := make(Layouts, len(l))
	for breakpoint, entries := range l {
		out[breakpoint] = append([]LayoutEntry{}, entries...)
	}
	return out
}

// removeWidget drops every entry referencing widgetID across all breakpoints.
func (l Layouts) removeWidget(widgetID string) {
	for breakpoint, entries := range l {
		kept := entries[:0]
		for _, entry := range entries {
			if entry.WidgetID != widgetID {
				kept = append(kept, entry)
			}
		}
		l[breakpoint] = kept
	}
}

// setStatic flips the static flag on every entry matching widgetID.
func (l Layouts) setStatic(widgetID string, static bool) {
	for breakpoint, entries := range l {
		for i := range entries {
			if entries[i].WidgetID == widgetID {
				entries[i].Static = static
			}
		}
		l[breakpoint] = entries
	}
}
