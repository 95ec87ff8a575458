package chartboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderWidgets(t *testing.T) map[ChartType]Widget {
	t.Helper()
	return map[ChartType]Widget{
		ChartLine: {
			ID: "w-line", Type: ChartLine, Title: "Revenue Trend",
			Data:         []Record{{"month": "Jan", "revenue": 120.0}, {"month": "Feb", "revenue": 132.5}},
			DataKeys:     []string{"revenue"},
			XAxisDataKey: "month",
		},
		ChartBar: {
			ID: "w-bar", Type: ChartBar, Title: "Cost by Month",
			Data:         []Record{{"month": "Jan", "cost": 80.0}},
			DataKeys:     []string{"cost"},
			XAxisDataKey: "month",
		},
		ChartHeatmap: {
			ID: "w-heat", Type: ChartHeatmap, Title: "Traffic",
			Data:     []Record{{"x": "Mon", "y": "09", "value": "7"}, {"x": "Tue", "y": "09", "value": 9}},
			DataKeys: []string{"day", "hour", "count"},
		},
		ChartRadar: {
			ID: "w-radar", Type: ChartRadar, Title: "Team Profile",
			Data:         []Record{{"name": "A", "speed": 5.0, "power": 7.0, "range": 3.0}},
			DataKeys:     []string{"speed", "power", "range"},
			XAxisDataKey: "name",
		},
		ChartPie: {
			ID: "w-pie", Type: ChartPie, Title: "Sector Split",
			Data:     []Record{{"sector": "tech", "value": 42.5}, {"sector": "energy", "value": 10.0}},
			DataKeys: []string{"value"},
			NameKey:  "sector",
		},
		ChartMap: {
			ID: "w-map", Type: ChartMap, Title: "Offices",
			Data:           []Record{{"city": "LA", "lat": 34.05, "lon": -118.24}},
			LatitudeField:  "lat",
			LongitudeField: "lon",
		},
	}
}

func TestEChartsRendererRendersEveryChartType(t *testing.T) {
	renderer := NewEChartsRenderer(WithRenderCache(nil))
	for chartType, widget := range renderWidgets(t) {
		html, err := renderer.Render(widget)
		require.NoError(t, err, "render %s", chartType)
		assert.Contains(t, html, widget.Title, "render %s", chartType)
		assert.Contains(t, html, "echarts", "render %s", chartType)
	}
}

func TestEChartsRendererRejectsUnknownType(t *testing.T) {
	renderer := NewEChartsRenderer(WithRenderCache(nil))
	_, err := renderer.Render(Widget{ID: "w", Type: ChartType("scatter"), Title: "Nope"})
	require.ErrorIs(t, err, ErrUnsupportedChartType)
}

func TestEChartsRendererCachesByContent(t *testing.T) {
	cache := NewChartCache(time.Minute)
	renderer := NewEChartsRenderer(WithRenderCache(cache))
	widget := renderWidgets(t)[ChartLine]

	first, err := renderer.Render(widget)
	require.NoError(t, err)
	second, err := renderer.Render(widget)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	widget.Title = "Renamed"
	third, err := renderer.Render(widget)
	require.NoError(t, err)
	assert.Contains(t, third, "Renamed")
}
