package chartboard

import (
	"fmt"
	"strings"
)

// ChartType enumerates the closed set of supported chart types. Every switch
// over ChartType handles all six members plus a default returning
// ErrUnsupportedChartType, so adding a type is a compile-surface change.
type ChartType string

const (
	ChartLine    ChartType = "line"
	ChartBar     ChartType = "bar"
	ChartHeatmap ChartType = "heatmap"
	ChartRadar   ChartType = "radar"
	ChartPie     ChartType = "pie"
	ChartMap     ChartType = "map"
)

// ChartTypes returns all supported chart types in a stable order.
func ChartTypes() []ChartType {
	return []ChartType{ChartLine, ChartBar, ChartHeatmap, ChartRadar, ChartPie, ChartMap}
}

// ParseChartType maps a string tag onto the closed enum.
func ParseChartType(s string) (ChartType, error) {
	t := ChartType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedChartType, s)
	}
	return t, nil
}

// Valid reports whether t is one of the supported chart types.
func (t ChartType) Valid() bool {
	switch t {
	case ChartLine, ChartBar, ChartHeatmap, ChartRadar, ChartPie, ChartMap:
		return true
	}
	return false
}

func (t ChartType) String() string { return string(t) }

// Label returns the capitalized display form used in default widget titles.
func (t ChartType) Label() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}
