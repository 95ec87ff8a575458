package chartboard

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current seed manifest format version.
	ManifestVersion = manifestVersionV1
)

// SeedManifest is a YAML/JSON document declaring datasources and dashboards
// to preload into a fresh service.
type SeedManifest struct {
	Version     string          `json:"version" yaml:"version"`
	Name        string          `json:"name,omitempty" yaml:"name,omitempty"`
	Datasources []Datasource    `json:"datasources,omitempty" yaml:"datasources,omitempty"`
	Dashboards  []SeedDashboard `json:"dashboards,omitempty" yaml:"dashboards,omitempty"`
	Source      string          `json:"-" yaml:"-"`
}

// SeedDashboard declares one dashboard and the charts placed on it.
type SeedDashboard struct {
	Name   string      `json:"name" yaml:"name"`
	Agent  *Agent      `json:"agent,omitempty" yaml:"agent,omitempty"`
	Charts []SeedChart `json:"charts,omitempty" yaml:"charts,omitempty"`
}

// SeedChart declares one chart built from a manifest datasource.
type SeedChart struct {
	Datasource     string   `json:"datasource" yaml:"datasource"`
	Type           string   `json:"type" yaml:"type"`
	Fields         []string `json:"fields,omitempty" yaml:"fields,omitempty"`
	LatitudeField  string   `json:"latitude_field,omitempty" yaml:"latitude_field,omitempty"`
	LongitudeField string   `json:"longitude_field,omitempty" yaml:"longitude_field,omitempty"`
	Title          string   `json:"title,omitempty" yaml:"title,omitempty"`
}

// ReadManifest loads a seed manifest file from disk.
func ReadManifest(path string) (*SeedManifest, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("chartboard: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("chartboard: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest reads a seed manifest from any reader.
func DecodeManifest(r io.Reader) (*SeedManifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc SeedManifest
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("chartboard: manifest is empty")
		}
		return nil, fmt.Errorf("chartboard: parse manifest: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate ensures the manifest satisfies required fields and internal
// references.
func (doc *SeedManifest) Validate() error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("chartboard: unsupported manifest version %q", doc.Version)
	}
	dsIDs := make(map[string]struct{}, len(doc.Datasources))
	for idx, ds := range doc.Datasources {
		if ds.ID == "" {
			return fmt.Errorf("chartboard: manifest datasource at index %d is missing id", idx)
		}
		if _, exists := dsIDs[ds.ID]; exists {
			return fmt.Errorf("chartboard: manifest duplicates datasource id %s", ds.ID)
		}
		dsIDs[ds.ID] = struct{}{}
	}
	for _, board := range doc.Dashboards {
		if board.Name == "" {
			return fmt.Errorf("chartboard: manifest dashboard is missing name")
		}
		for _, chart := range board.Charts {
			if _, err := ParseChartType(chart.Type); err != nil {
				return fmt.Errorf("chartboard: manifest dashboard %s: %w", board.Name, err)
			}
			if _, ok := dsIDs[chart.Datasource]; !ok {
				return fmt.Errorf("chartboard: manifest dashboard %s references unknown datasource %s", board.Name, chart.Datasource)
			}
		}
	}
	return nil
}

func (doc *SeedManifest) applyDefaults() {
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
}

// Seed registers the manifest's datasources and creates its dashboards and
// charts against the service. Datasources already present are left alone.
func (doc *SeedManifest) Seed(ctx context.Context, service *Service) error {
	if service == nil {
		return fmt.Errorf("chartboard: service is required to seed a manifest")
	}
	registry := service.Datasources()
	for _, ds := range doc.Datasources {
		if _, ok := registry.Get(ds.ID); ok {
			continue
		}
		if err := registry.Add(ds); err != nil {
			return fmt.Errorf("chartboard: seed datasource %s: %w", ds.ID, err)
		}
	}
	for _, board := range doc.Dashboards {
		created, err := service.CreateDashboard(ctx, board.Name)
		if err != nil {
			return fmt.Errorf("chartboard: seed dashboard %s: %w", board.Name, err)
		}
		if board.Agent != nil {
			if err := service.AssignAgent(ctx, created.ID, board.Agent); err != nil {
				return err
			}
		}
		for _, chart := range board.Charts {
			chartType, err := ParseChartType(chart.Type)
			if err != nil {
				return err
			}
			_, err = service.AddChart(ctx, created.ID, AddChartRequest{
				DatasourceID: chart.Datasource,
				Title:        chart.Title,
				Selection: Selection{
					Type:           chartType,
					Fields:         chart.Fields,
					LatitudeField:  chart.LatitudeField,
					LongitudeField: chart.LongitudeField,
				},
			})
			if err != nil {
				return fmt.Errorf("chartboard: seed chart on %s: %w", board.Name, err)
			}
		}
	}
	return nil
}
