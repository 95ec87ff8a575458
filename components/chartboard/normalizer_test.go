package chartboard

import (
	"errors"
	"reflect"
	"testing"
)

func salesDatasource() Datasource {
	return Datasource{
		ID:   "sales",
		Name: "Quarterly Sales",
		Data: []Record{
			{"month": "Jan", "revenue": 120.0, "cost": 80.0, "region": "west"},
			{"month": "Feb", "revenue": 132.5, "cost": 82.5, "region": "east"},
		},
	}
}

func TestNormalizeLineProjectsSelectedFields(t *testing.T) {
	payload, err := Normalize(salesDatasource(), Selection{
		Type:   ChartLine,
		Fields: []string{"month", "revenue", "cost"},
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if payload.XAxisDataKey != "month" {
		t.Fatalf("expected x-axis month, got %q", payload.XAxisDataKey)
	}
	if !reflect.DeepEqual(payload.DataKeys, []string{"revenue", "cost"}) {
		t.Fatalf("unexpected data keys %v", payload.DataKeys)
	}
	if len(payload.Data) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(payload.Data))
	}
	// Rows carry only the selected fields.
	if _, ok := payload.Data[0]["region"]; ok {
		t.Fatalf("expected unselected field dropped, got %v", payload.Data[0])
	}
	if payload.Data[0]["revenue"] != 120.0 {
		t.Fatalf("expected revenue preserved, got %v", payload.Data[0]["revenue"])
	}
}

func TestNormalizeLineRejectsSingleField(t *testing.T) {
	_, err := Normalize(salesDatasource(), Selection{Type: ChartLine, Fields: []string{"revenue"}})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNormalizeBarRejectsSingleField(t *testing.T) {
	_, err := Normalize(salesDatasource(), Selection{Type: ChartBar, Fields: []string{"revenue"}})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNormalizePieParsesValues(t *testing.T) {
	ds := Datasource{
		ID:   "sectors",
		Name: "Sectors",
		Data: []Record{
			{"sector": "tech", "value": "42.5"},
			{"sector": "energy", "value": 10},
			{"sector": "junk", "value": "n/a"},
		},
	}
	payload, err := Normalize(ds, Selection{Type: ChartPie, Fields: []string{"sector", "value"}})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if payload.NameKey != "sector" || !reflect.DeepEqual(payload.DataKeys, []string{"value"}) {
		t.Fatalf("unexpected keys: name=%q data=%v", payload.NameKey, payload.DataKeys)
	}
	// Unparseable rows are dropped; the rest are parsed to float.
	if len(payload.Data) != 2 {
		t.Fatalf("expected 2 rows, got %d: %v", len(payload.Data), payload.Data)
	}
	if payload.Data[0]["value"] != 42.5 {
		t.Fatalf("expected 42.5, got %v", payload.Data[0]["value"])
	}
	if payload.Data[1]["value"] != 10.0 {
		t.Fatalf("expected 10.0, got %v", payload.Data[1]["value"])
	}
}

func TestNormalizePieRejectsWrongFieldCount(t *testing.T) {
	for _, fields := range [][]string{{"sector"}, {"sector", "value", "extra"}} {
		_, err := Normalize(salesDatasource(), Selection{Type: ChartPie, Fields: fields})
		if !IsValidation(err) {
			t.Fatalf("fields %v: expected validation error, got %v", fields, err)
		}
	}
}

func TestNormalizeHeatmapPassesValuesThrough(t *testing.T) {
	ds := Datasource{
		ID:   "grid",
		Name: "Grid",
		Data: []Record{
			{"day": "Mon", "hour": "09", "count": "7"},
		},
	}
	payload, err := Normalize(ds, Selection{Type: ChartHeatmap, Fields: []string{"day", "hour", "count"}})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	row := payload.Data[0]
	if row["x"] != "Mon" || row["y"] != "09" {
		t.Fatalf("unexpected axes: %v", row)
	}
	// Heatmap values are not coerced: the string survives.
	if row["value"] != "7" {
		t.Fatalf("expected passthrough string, got %#v", row["value"])
	}
}

func TestNormalizeHeatmapRequiresExactlyThreeFields(t *testing.T) {
	_, err := Normalize(salesDatasource(), Selection{Type: ChartHeatmap, Fields: []string{"month", "revenue"}})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNormalizeRadarKeepsRecords(t *testing.T) {
	payload, err := Normalize(salesDatasource(), Selection{
		Type:   ChartRadar,
		Fields: []string{"month", "revenue", "cost"},
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if !reflect.DeepEqual(payload.DataKeys, []string{"month", "revenue", "cost"}) {
		t.Fatalf("unexpected data keys %v", payload.DataKeys)
	}
	if payload.Data[0]["region"] != "west" {
		t.Fatalf("expected radar rows passed through, got %v", payload.Data[0])
	}
}

func TestNormalizeRadarRequiresThreeFields(t *testing.T) {
	_, err := Normalize(salesDatasource(), Selection{Type: ChartRadar, Fields: []string{"month", "revenue"}})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNormalizeMapCoercesCoordinates(t *testing.T) {
	ds := Datasource{
		ID:   "offices",
		Name: "Offices",
		Data: []Record{
			{"city": "LA", "lat": "34.5", "lon": "-118.2"},
			{"city": "Nowhere", "lat": "oops", "lon": "0"},
		},
	}
	payload, err := Normalize(ds, Selection{
		Type:           ChartMap,
		LatitudeField:  "lat",
		LongitudeField: "lon",
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(payload.Data) != 1 {
		t.Fatalf("expected unparseable row dropped, got %d rows", len(payload.Data))
	}
	row := payload.Data[0]
	if row["lat"] != 34.5 || row["lon"] != -118.2 {
		t.Fatalf("expected parsed coordinates, got %v", row)
	}
	if row["city"] != "LA" {
		t.Fatalf("expected extra fields kept, got %v", row)
	}
	if payload.LatitudeField != "lat" || payload.LongitudeField != "lon" {
		t.Fatalf("unexpected coordinate fields: %q %q", payload.LatitudeField, payload.LongitudeField)
	}
}

func TestNormalizeMapRequiresBothCoordinateFields(t *testing.T) {
	_, err := Normalize(salesDatasource(), Selection{Type: ChartMap, LatitudeField: "lat"})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNormalizeRejectsUnknownType(t *testing.T) {
	_, err := Normalize(salesDatasource(), Selection{Type: ChartType("scatter"), Fields: []string{"a", "b"}})
	if !errors.Is(err, ErrUnsupportedChartType) {
		t.Fatalf("expected ErrUnsupportedChartType, got %v", err)
	}
}

func TestNormalizeRejectsEmptyDatasource(t *testing.T) {
	_, err := Normalize(Datasource{ID: "empty", Name: "Empty"}, Selection{Type: ChartLine, Fields: []string{"a", "b"}})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNormalizeDeduplicatesFields(t *testing.T) {
	payload, err := Normalize(salesDatasource(), Selection{
		Type:   ChartLine,
		Fields: []string{"month", "revenue", "revenue"},
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if !reflect.DeepEqual(payload.DataKeys, []string{"revenue"}) {
		t.Fatalf("expected duplicate field collapsed, got %v", payload.DataKeys)
	}
}

func TestNormalizeFlattensSubTables(t *testing.T) {
	ds := Datasource{
		ID:   "portfolios",
		Name: "Portfolios",
		Data: []Record{
			{
				"owner": "alex",
				"positions": []any{
					map[string]any{"symbol": "ACME", "shares": 10.0},
					map[string]any{"symbol": "INIT", "shares": 3.0},
				},
			},
		},
	}
	payload, err := Normalize(ds, Selection{Type: ChartBar, Fields: []string{"symbol", "shares"}})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(payload.Data) != 2 {
		t.Fatalf("expected sub-table rows spliced, got %d rows", len(payload.Data))
	}
	if payload.Data[0]["symbol"] != "ACME" || payload.Data[1]["symbol"] != "INIT" {
		t.Fatalf("unexpected rows %v", payload.Data)
	}
}

func TestCoerceFloatFailsClosed(t *testing.T) {
	cases := []struct {
		in any
		ok bool
	}{
		{"42.5", true},
		{42, true},
		{int64(7), true},
		{float32(1.5), true},
		{"n/a", false},
		{nil, false},
		{[]any{}, false},
		{"NaN", false},
	}
	for _, tc := range cases {
		if _, ok := coerceFloat(tc.in); ok != tc.ok {
			t.Fatalf("coerceFloat(%#v): expected ok=%v", tc.in, tc.ok)
		}
	}
}
