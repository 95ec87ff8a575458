package chartboard

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Snapshot is the JSON-serializable form of the dashboard and datasource
// collections. Encode followed by DecodeSnapshot reproduces an equal value;
// empty collections stay concrete (never null or absent).
type Snapshot struct {
	Dashboards  []Dashboard  `json:"dashboards"`
	Datasources []Datasource `json:"datasources"`
}

// Encode serializes the snapshot.
func (s Snapshot) Encode() ([]byte, error) {
	s.normalize()
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("chartboard: encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses and validates a persisted snapshot. The payload is
// checked against the snapshot schema before being applied, so a corrupt
// blob never produces a half-populated model.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return Snapshot{}, fmt.Errorf("chartboard: parse snapshot: %w", err)
	}
	if err := snapshotSchema().Validate(payload); err != nil {
		return Snapshot{}, fmt.Errorf("chartboard: snapshot failed validation: %w", err)
	}
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return Snapshot{}, fmt.Errorf("chartboard: decode snapshot: %w", err)
	}
	snapshot.normalize()
	if err := snapshot.checkIntegrity(); err != nil {
		return Snapshot{}, err
	}
	return snapshot, nil
}

// normalize replaces nil collections with empty ones so round-trips are
// stable and consumers never see null widget/layout/lock sets.
func (s *Snapshot) normalize() {
	if s.Dashboards == nil {
		s.Dashboards = []Dashboard{}
	}
	if s.Datasources == nil {
		s.Datasources = []Datasource{}
	}
	for i := range s.Dashboards {
		d := &s.Dashboards[i]
		if d.Widgets == nil {
			d.Widgets = []Widget{}
		}
		if d.Layouts == nil {
			d.Layouts = Layouts{}
		}
		if d.LockedWidgetIDs == nil {
			d.LockedWidgetIDs = []string{}
		}
		for breakpoint, entries := range d.Layouts {
			if entries == nil {
				d.Layouts[breakpoint] = []LayoutEntry{}
			}
		}
	}
	for i := range s.Datasources {
		if s.Datasources[i].Data == nil {
			s.Datasources[i].Data = []Record{}
		}
	}
}

// checkIntegrity enforces referential integrity: every widget id referenced
// by a layout entry or the locked set must exist in the widget list.
func (s Snapshot) checkIntegrity() error {
	for _, d := range s.Dashboards {
		ids := make(map[string]struct{}, len(d.Widgets))
		for _, w := range d.Widgets {
			if _, ok := ids[w.ID]; ok {
				return fmt.Errorf("%w: widget %s in dashboard %s", ErrDuplicateID, w.ID, d.ID)
			}
			ids[w.ID] = struct{}{}
		}
		for breakpoint, entries := range d.Layouts {
			for _, entry := range entries {
				if _, ok := ids[entry.WidgetID]; !ok {
					return fmt.Errorf("chartboard: dashboard %s layout %s references unknown widget %s", d.ID, breakpoint, entry.WidgetID)
				}
			}
		}
		for _, locked := range d.LockedWidgetIDs {
			if _, ok := ids[locked]; !ok {
				return fmt.Errorf("chartboard: dashboard %s locks unknown widget %s", d.ID, locked)
			}
		}
	}
	return nil
}

const snapshotSchemaJSON = `{
	"type": "object",
	"required": ["dashboards", "datasources"],
	"properties": {
		"dashboards": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "name", "widgets", "layouts", "lockedWidgetIds"],
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"name": {"type": "string"},
					"agent": {
						"type": ["object", "null"],
						"properties": {
							"id": {"type": "string"},
							"name": {"type": "string"}
						}
					},
					"widgets": {
						"type": "array",
						"items": {
							"type": "object",
							"required": ["id", "type", "title"],
							"properties": {
								"id": {"type": "string", "minLength": 1},
								"type": {"enum": ["line", "bar", "heatmap", "radar", "pie", "map"]},
								"title": {"type": "string"},
								"data": {"type": "array"}
							}
						}
					},
					"layouts": {
						"type": "object",
						"additionalProperties": {
							"type": "array",
							"items": {
								"type": "object",
								"required": ["widgetId", "x", "y", "w", "h"],
								"properties": {
									"widgetId": {"type": "string", "minLength": 1},
									"x": {"type": "integer"},
									"y": {"type": "integer"},
									"w": {"type": "integer"},
									"h": {"type": "integer"},
									"static": {"type": "boolean"}
								}
							}
						}
					},
					"lockedWidgetIds": {
						"type": "array",
						"items": {"type": "string"}
					}
				}
			}
		},
		"datasources": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "name", "data"],
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"name": {"type": "string"},
					"data": {"type": "array"}
				}
			}
		}
	}
}`

var (
	snapshotSchemaOnce sync.Once
	compiledSnapshot   *jsonschema.Schema
)

func snapshotSchema() *jsonschema.Schema {
	snapshotSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("snapshot.json", strings.NewReader(snapshotSchemaJSON)); err != nil {
			panic(fmt.Sprintf("chartboard: load snapshot schema: %v", err))
		}
		compiledSnapshot = compiler.MustCompile("snapshot.json")
	})
	return compiledSnapshot
}
