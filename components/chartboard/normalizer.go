package chartboard

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Selection captures the user's chart configuration choices: the chart type,
// the selected field names, and (for maps) the coordinate fields chosen
// separately from the generic field list.
type Selection struct {
	Type           ChartType `json:"type"`
	Fields         []string  `json:"fields"`
	LatitudeField  string    `json:"latitude_field,omitempty"`
	LongitudeField string    `json:"longitude_field,omitempty"`
}

// WidgetPayload is the normalizer's output: the shaped data plus key
// metadata for one chart, minus the id/title the dashboard model fills in.
// It is the shared currency between manually configured and chat-pinned
// charts.
type WidgetPayload struct {
	Type           ChartType
	Data           []Record
	DataKeys       []string
	XAxisDataKey   string
	NameKey        string
	LatitudeField  string
	LongitudeField string
}

// Widget stamps the payload with an id and title.
func (p WidgetPayload) Widget(id, title string) Widget {
	return Widget{
		ID:             id,
		Type:           p.Type,
		Title:          title,
		Data:           p.Data,
		DataKeys:       p.DataKeys,
		XAxisDataKey:   p.XAxisDataKey,
		NameKey:        p.NameKey,
		LatitudeField:  p.LatitudeField,
		LongitudeField: p.LongitudeField,
	}
}

// Normalize validates the selection against the chart type's constraints and
// reshapes the datasource records into that type's data contract.
//
// Coercion policy: pie values and map coordinates are parsed to floating
// point (rows whose values do not parse are dropped), heatmap values pass
// through unconverted, and line/bar/radar fields are copied untouched.
func Normalize(ds Datasource, sel Selection) (WidgetPayload, error) {
	if !sel.Type.Valid() {
		return WidgetPayload{}, fmt.Errorf("%w: %q", ErrUnsupportedChartType, string(sel.Type))
	}
	if len(ds.Data) == 0 {
		return WidgetPayload{}, newValidationError(sel.Type, "datasource %q has no records", ds.Name)
	}
	fields := dedupeFields(sel.Fields)
	records := flattenRecords(ds.Data)

	switch sel.Type {
	case ChartLine, ChartBar:
		return normalizeXY(sel.Type, records, fields)
	case ChartHeatmap:
		return normalizeHeatmap(records, fields)
	case ChartRadar:
		return normalizeRadar(records, fields)
	case ChartPie:
		return normalizePie(records, fields)
	case ChartMap:
		return normalizeMap(records, sel.LatitudeField, sel.LongitudeField)
	default:
		return WidgetPayload{}, fmt.Errorf("%w: %q", ErrUnsupportedChartType, string(sel.Type))
	}
}

func normalizeXY(t ChartType, records []Record, fields []string) (WidgetPayload, error) {
	if len(fields) < 2 {
		return WidgetPayload{}, newValidationError(t, "select at least two values (got %d)", len(fields))
	}
	data := make([]Record, len(records))
	for i, record := range records {
		row := make(Record, len(fields))
		for _, field := range fields {
			row[field] = record[field]
		}
		data[i] = row
	}
	return WidgetPayload{
		Type:         t,
		Data:         data,
		DataKeys:     fields[1:],
		XAxisDataKey: fields[0],
	}, nil
}

func normalizeHeatmap(records []Record, fields []string) (WidgetPayload, error) {
	if len(fields) != 3 {
		return WidgetPayload{}, newValidationError(ChartHeatmap, "select exactly three values for x, y, and value (got %d)", len(fields))
	}
	data := make([]Record, len(records))
	for i, record := range records {
		data[i] = Record{
			"x":     record[fields[0]],
			"y":     record[fields[1]],
			"value": record[fields[2]],
		}
	}
	return WidgetPayload{
		Type:         ChartHeatmap,
		Data:         data,
		DataKeys:     fields,
		XAxisDataKey: fields[0],
	}, nil
}

func normalizeRadar(records []Record, fields []string) (WidgetPayload, error) {
	if len(fields) < 3 {
		return WidgetPayload{}, newValidationError(ChartRadar, "select at least three values (got %d)", len(fields))
	}
	return WidgetPayload{
		Type:         ChartRadar,
		Data:         records,
		DataKeys:     fields,
		XAxisDataKey: fields[0],
	}, nil
}

func normalizePie(records []Record, fields []string) (WidgetPayload, error) {
	if len(fields) != 2 {
		return WidgetPayload{}, newValidationError(ChartPie, "select exactly two values for name and value (got %d)", len(fields))
	}
	nameField, valueField := fields[0], fields[1]
	data := make([]Record, 0, len(records))
	for _, record := range records {
		value, ok := coerceFloat(record[valueField])
		if !ok {
			continue
		}
		data = append(data, Record{
			nameField:  record[nameField],
			valueField: value,
		})
	}
	if len(data) == 0 {
		return WidgetPayload{}, newValidationError(ChartPie, "no record has a numeric %q value", valueField)
	}
	return WidgetPayload{
		Type:     ChartPie,
		Data:     data,
		DataKeys: []string{valueField},
		NameKey:  nameField,
	}, nil
}

func normalizeMap(records []Record, latField, lonField string) (WidgetPayload, error) {
	if latField == "" || lonField == "" {
		return WidgetPayload{}, newValidationError(ChartMap, "select fields for both latitude and longitude")
	}
	data := make([]Record, 0, len(records))
	for _, record := range records {
		lat, latOK := coerceFloat(record[latField])
		lon, lonOK := coerceFloat(record[lonField])
		if !latOK || !lonOK {
			continue
		}
		row := make(Record, len(record))
		for key, value := range record {
			row[key] = value
		}
		row[latField] = lat
		row[lonField] = lon
		data = append(data, row)
	}
	if len(data) == 0 {
		return WidgetPayload{}, newValidationError(ChartMap, "no record has numeric %q/%q coordinates", latField, lonField)
	}
	return WidgetPayload{
		Type:           ChartMap,
		Data:           data,
		LatitudeField:  latField,
		LongitudeField: lonField,
	}, nil
}

// flattenRecords splices one extra level of nesting: a record whose value
// under some field is a non-empty list of mappings (a per-record sub-table)
// is replaced by that sub-table's rows. Candidate fields are checked in
// sorted order so the result is deterministic.
func flattenRecords(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, record := range records {
		if rows := subTable(record); rows != nil {
			out = append(out, rows...)
			continue
		}
		out = append(out, record)
	}
	return out
}

func subTable(record Record) []Record {
	keys := make([]string, 0, len(record))
	for key := range record {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		switch value := record[key].(type) {
		case []Record:
			if len(value) > 0 {
				return value
			}
		case []any:
			rows := make([]Record, 0, len(value))
			for _, item := range value {
				row, ok := item.(map[string]any)
				if !ok {
					rows = nil
					break
				}
				rows = append(rows, row)
			}
			if len(rows) > 0 {
				return rows
			}
		}
	}
	return nil
}

func dedupeFields(fields []string) []string {
	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		if _, ok := seen[field]; ok {
			continue
		}
		seen[field] = struct{}{}
		out = append(out, field)
	}
	return out
}

// coerceFloat parses a value to float64, failing closed: values that do not
// parse, or parse to NaN, report ok=false.
func coerceFloat(v any) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, !math.IsNaN(value)
	case float32:
		return float64(value), true
	case int:
		return float64(value), true
	case int64:
		return float64(value), true
	case json.Number:
		f, err := value.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(value, 64)
		return f, err == nil && !math.IsNaN(f)
	default:
		return 0, false
	}
}
