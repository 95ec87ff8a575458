package chartboard

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "360px"

var sharedChartCache = NewChartCache(5 * time.Minute)

// EChartsRenderer renders widget payloads to server-side chart HTML for all
// six chart types.
type EChartsRenderer struct {
	theme      string
	assetsHost string
	cache      RenderCache
}

// EChartsRendererOption customizes renderer behavior.
type EChartsRendererOption func(*EChartsRenderer)

// WithRenderCache injects a render cache.
func WithRenderCache(cache RenderCache) EChartsRendererOption {
	return func(r *EChartsRenderer) {
		r.cache = cache
	}
}

// WithTheme sets the chart theme (defaults to Westeros).
func WithTheme(theme string) EChartsRendererOption {
	return func(r *EChartsRenderer) {
		r.theme = theme
	}
}

// WithAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithAssetsHost(host string) EChartsRendererOption {
	return func(r *EChartsRenderer) {
		r.assetsHost = host
	}
}

// NewEChartsRenderer builds a renderer with safe defaults.
func NewEChartsRenderer(options ...EChartsRendererOption) *EChartsRenderer {
	r := &EChartsRenderer{
		theme: types.ThemeWesteros,
		cache: sharedChartCache,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Render converts a widget into chart HTML, caching per widget content.
func (r *EChartsRenderer) Render(widget Widget) (string, error) {
	renderFn := func() (string, error) {
		return r.render(widget)
	}
	if r.cache != nil {
		return r.cache.GetOrRender(widgetCacheKey(widget), renderFn)
	}
	return renderFn()
}

func (r *EChartsRenderer) render(widget Widget) (string, error) {
	switch widget.Type {
	case ChartLine:
		return r.renderLine(widget)
	case ChartBar:
		return r.renderBar(widget)
	case ChartHeatmap:
		return r.renderHeatmap(widget)
	case ChartRadar:
		return r.renderRadar(widget)
	case ChartPie:
		return r.renderPie(widget)
	case ChartMap:
		return r.renderMap(widget)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedChartType, string(widget.Type))
	}
}

func (r *EChartsRenderer) renderLine(widget Widget) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(r.globalChartOptions(widget.Title)...)
	line.SetXAxis(axisLabels(widget.Data, widget.XAxisDataKey))
	for _, key := range widget.DataKeys {
		data := make([]opts.LineData, len(widget.Data))
		for i, row := range widget.Data {
			data[i] = opts.LineData{Value: row[key]}
		}
		line.AddSeries(key, data)
	}
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return renderChart(line)
}

func (r *EChartsRenderer) renderBar(widget Widget) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(r.globalChartOptions(widget.Title)...)
	bar.SetXAxis(axisLabels(widget.Data, widget.XAxisDataKey))
	for _, key := range widget.DataKeys {
		data := make([]opts.BarData, len(widget.Data))
		for i, row := range widget.Data {
			data[i] = opts.BarData{Value: row[key]}
		}
		bar.AddSeries(key, data)
	}
	return renderChart(bar)
}

func (r *EChartsRenderer) renderPie(widget Widget) (string, error) {
	pie := charts.NewPie()
	pie.SetGlobalOptions(r.globalChartOptions(widget.Title)...)
	valueKey := ""
	if len(widget.DataKeys) > 0 {
		valueKey = widget.DataKeys[0]
	}
	data := make([]opts.PieData, 0, len(widget.Data))
	for i, row := range widget.Data {
		name := stringify(row[widget.NameKey])
		if name == "" {
			name = fmt.Sprintf("Slice %d", i+1)
		}
		data = append(data, opts.PieData{Name: name, Value: row[valueKey]})
	}
	pie.AddSeries(widget.Title, data)
	return renderChart(pie)
}

func (r *EChartsRenderer) renderRadar(widget Widget) (string, error) {
	radar := charts.NewRadar()
	indicators := make([]*opts.Indicator, len(widget.DataKeys))
	for i, key := range widget.DataKeys {
		max := float32(0)
		for _, row := range widget.Data {
			if v, ok := coerceFloat(row[key]); ok && float32(v) > max {
				max = float32(v)
			}
		}
		indicators[i] = &opts.Indicator{Name: key, Max: max}
	}
	globalOpts := append(r.globalChartOptions(widget.Title),
		charts.WithRadarComponentOpts(opts.RadarComponent{Indicator: indicators}),
	)
	radar.SetGlobalOptions(globalOpts...)
	data := make([]opts.RadarData, 0, len(widget.Data))
	for _, row := range widget.Data {
		values := make([]float64, len(widget.DataKeys))
		for i, key := range widget.DataKeys {
			if v, ok := coerceFloat(row[key]); ok {
				values[i] = v
			}
		}
		data = append(data, opts.RadarData{
			Name:  stringify(row[widget.XAxisDataKey]),
			Value: values,
		})
	}
	radar.AddSeries(widget.Title, data)
	return renderChart(radar)
}

// renderHeatmap coerces heatmap cell values numerically at render time; the
// normalizer carries them through untouched.
func (r *EChartsRenderer) renderHeatmap(widget Widget) (string, error) {
	heatmap := charts.NewHeatMap()
	xCategories := categories(widget.Data, "x")
	yCategories := categories(widget.Data, "y")
	xIndex := indexOf(xCategories)
	yIndex := indexOf(yCategories)

	min, max := 0.0, 0.0
	data := make([]opts.HeatMapData, 0, len(widget.Data))
	for _, row := range widget.Data {
		value, ok := coerceFloat(row["value"])
		if !ok {
			continue
		}
		if len(data) == 0 || value < min {
			min = value
		}
		if len(data) == 0 || value > max {
			max = value
		}
		data = append(data, opts.HeatMapData{
			Value: [3]any{xIndex[stringify(row["x"])], yIndex[stringify(row["y"])], value},
		})
	}

	globalOpts := append(r.globalChartOptions(widget.Title),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: yCategories}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        float32(min),
			Max:        float32(max),
		}),
	)
	heatmap.SetGlobalOptions(globalOpts...)
	heatmap.SetXAxis(xCategories)
	heatmap.AddSeries(widget.Title, data)
	return renderChart(heatmap)
}

func (r *EChartsRenderer) renderMap(widget Widget) (string, error) {
	geo := charts.NewGeo()
	globalOpts := append(r.globalChartOptions(widget.Title),
		charts.WithGeoComponentOpts(opts.GeoComponent{Map: "world"}),
	)
	geo.SetGlobalOptions(globalOpts...)
	data := make([]opts.GeoData, 0, len(widget.Data))
	for _, row := range widget.Data {
		lat, latOK := coerceFloat(row[widget.LatitudeField])
		lon, lonOK := coerceFloat(row[widget.LongitudeField])
		if !latOK || !lonOK {
			continue
		}
		data = append(data, opts.GeoData{Value: []float64{lon, lat, 1}})
	}
	geo.AddSeries(widget.Title, types.ChartScatter, data)
	return renderChart(geo)
}

func (r *EChartsRenderer) globalChartOptions(title string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  r.theme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func axisLabels(data []Record, key string) []string {
	labels := make([]string, len(data))
	for i, row := range data {
		labels[i] = stringify(row[key])
	}
	return labels
}

// categories returns the distinct stringified values of key in appearance
// order.
func categories(data []Record, key string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, row := range data {
		value := stringify(row[key])
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}

func indexOf(values []string) map[string]int {
	out := make(map[string]int, len(values))
	for i, value := range values {
		out[value] = i
	}
	return out
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
