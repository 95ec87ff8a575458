package chartboard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotFixture() Snapshot {
	return Snapshot{
		Dashboards: []Dashboard{
			{
				ID:   "d1",
				Name: "Main Dashboard",
				Widgets: []Widget{
					{
						ID:           "w1",
						Type:         ChartLine,
						Title:        "Line Chart - Sales",
						Data:         []Record{{"month": "Jan", "revenue": 120.0}},
						DataKeys:     []string{"revenue"},
						XAxisDataKey: "month",
					},
				},
				Layouts: Layouts{
					BreakpointLG: {{WidgetID: "w1", X: 0, Y: 0, W: 12, H: 24, MinW: 3, MaxW: 12, MinH: 4}},
				},
				LockedWidgetIDs: []string{"w1"},
			},
		},
		Datasources: []Datasource{
			{ID: "sales", Name: "Sales", Data: []Record{{"month": "Jan", "revenue": 120.0}}},
		},
	}
}

func TestSnapshotEncodeDecodeRoundTrip(t *testing.T) {
	original := snapshotFixture()
	data, err := original.Encode()
	require.NoError(t, err)

	decoded, err := DecodeSnapshot(data)
	require.NoError(t, err)

	reencoded, err := decoded.Encode()
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(reencoded))

	board := decoded.Dashboards[0]
	assert.Equal(t, "Main Dashboard", board.Name)
	assert.True(t, board.Locked("w1"))
	require.Len(t, board.Layouts[BreakpointLG], 1)
	assert.Equal(t, 24, board.Layouts[BreakpointLG][0].H)
}

func TestDecodeSnapshotRejectsUnknownChartType(t *testing.T) {
	payload := strings.Replace(mustEncode(t, snapshotFixture()), `"type":"line"`, `"type":"scatter"`, 1)
	_, err := DecodeSnapshot([]byte(payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed validation")
}

func TestDecodeSnapshotRejectsDanglingLayoutEntry(t *testing.T) {
	snapshot := snapshotFixture()
	snapshot.Dashboards[0].Layouts[BreakpointLG] = append(
		snapshot.Dashboards[0].Layouts[BreakpointLG],
		LayoutEntry{WidgetID: "ghost", W: 6, H: 8},
	)
	data, err := snapshot.Encode()
	require.NoError(t, err)
	_, err = DecodeSnapshot(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown widget")
}

func TestDecodeSnapshotRejectsDanglingLock(t *testing.T) {
	snapshot := snapshotFixture()
	snapshot.Dashboards[0].LockedWidgetIDs = append(snapshot.Dashboards[0].LockedWidgetIDs, "ghost")
	data, err := snapshot.Encode()
	require.NoError(t, err)
	_, err = DecodeSnapshot(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locks unknown widget")
}

func TestDecodeSnapshotRejectsDuplicateWidgets(t *testing.T) {
	snapshot := snapshotFixture()
	snapshot.Dashboards[0].Widgets = append(snapshot.Dashboards[0].Widgets, snapshot.Dashboards[0].Widgets[0])
	data, err := snapshot.Encode()
	require.NoError(t, err)
	_, err = DecodeSnapshot(data)
	require.ErrorIs(t, err, ErrDuplicateID)
}

func TestSnapshotNormalizeMakesCollectionsConcrete(t *testing.T) {
	snapshot := Snapshot{Dashboards: []Dashboard{{ID: "d1", Name: "Empty"}}}
	data, err := snapshot.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"widgets":[]`)
	assert.Contains(t, string(data), `"lockedWidgetIds":[]`)
	assert.Contains(t, string(data), `"datasources":[]`)
}

func mustEncode(t *testing.T, snapshot Snapshot) string {
	t.Helper()
	data, err := snapshot.Encode()
	require.NoError(t, err)
	return string(data)
}
