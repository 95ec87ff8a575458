package chartboard

import (
	"reflect"
	"testing"
)

func TestExtractKeysRecursesIntoNestedStructures(t *testing.T) {
	records := []Record{
		{
			"name": "Acme",
			"portfolio": []any{
				map[string]any{"symbol": "ACME", "shares": 10},
				map[string]any{"symbol": "INIT", "price": 4.2},
			},
		},
		{
			"name": "Globex",
			"address": map[string]any{
				"city": "Springfield",
				"geo":  map[string]any{"lat": 1.0, "lon": 2.0},
			},
		},
	}
	got := ExtractKeys(records)
	want := []string{"address", "city", "geo", "lat", "lon", "name", "portfolio", "price", "shares", "symbol"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExtractKeysSortedAndDeduplicated(t *testing.T) {
	records := []Record{
		{"b": 1, "a": 2},
		{"a": 3, "c": 4},
	}
	got := ExtractKeys(records)
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExtractKeysDeterministicAcrossOrdering(t *testing.T) {
	forward := []Record{{"x": 1}, {"y": map[string]any{"z": 2}}}
	reversed := []Record{{"y": map[string]any{"z": 2}}, {"x": 1}}
	if !reflect.DeepEqual(ExtractKeys(forward), ExtractKeys(reversed)) {
		t.Fatalf("expected identical keys regardless of record order")
	}
}

func TestExtractKeysIgnoresScalarsAndNil(t *testing.T) {
	records := []Record{
		{"a": nil, "b": "text", "c": []any{1, 2, 3}},
	}
	got := ExtractKeys(records)
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExtractKeysEmptyInput(t *testing.T) {
	if got := ExtractKeys(nil); len(got) != 0 {
		t.Fatalf("expected no keys, got %v", got)
	}
}
