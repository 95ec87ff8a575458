package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"

	"github.com/goliatone/go-chartboard/components/chartboard"
)

type cli struct {
	Keys      keysCmd      `cmd:"" help:"Extract selectable field names from a JSON records file."`
	Normalize normalizeCmd `cmd:"" help:"Shape records for a chart type and print the widget payload."`
	Seed      seedCmd      `cmd:"" help:"Apply a seed manifest and write the resulting snapshot."`
	Render    renderCmd    `cmd:"" help:"Render chart HTML for a widget from a snapshot."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Chart configuration utility for go-chartboard snapshots and manifests."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

type keysCmd struct {
	Records string `arg:"" type:"path" help:"Path to a JSON array of records."`
}

func (cmd *keysCmd) Run(_ context.Context) error {
	records, err := readRecords(cmd.Records)
	if err != nil {
		return err
	}
	for _, key := range chartboard.ExtractKeys(records) {
		fmt.Fprintln(os.Stdout, key)
	}
	return nil
}

type normalizeCmd struct {
	Records        string   `arg:"" type:"path" help:"Path to a JSON array of records."`
	Type           string   `required:"" help:"Chart type (line, bar, heatmap, radar, pie, map)."`
	Field          []string `help:"Selected fields in order (use multiple --field flags)."`
	LatitudeField  string   `help:"Latitude field for map charts."`
	LongitudeField string   `help:"Longitude field for map charts."`
	Name           string   `default:"records" help:"Datasource name used in the default title."`
}

func (cmd *normalizeCmd) Run(_ context.Context) error {
	records, err := readRecords(cmd.Records)
	if err != nil {
		return err
	}
	chartType, err := chartboard.ParseChartType(cmd.Type)
	if err != nil {
		return err
	}
	payload, err := chartboard.Normalize(
		chartboard.Datasource{ID: strcase.ToSnake(cmd.Name), Name: cmd.Name, Data: records},
		chartboard.Selection{
			Type:           chartType,
			Fields:         cmd.Field,
			LatitudeField:  cmd.LatitudeField,
			LongitudeField: cmd.LongitudeField,
		},
	)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

type seedCmd struct {
	Manifest string `arg:"" type:"path" help:"Path to a YAML seed manifest."`
	Out      string `required:"" type:"path" help:"Directory to write the snapshot into."`
	Key      string `default:"chartboard/snapshot" help:"Snapshot key (becomes <out>/<key>.json)."`
}

func (cmd *seedCmd) Run(ctx context.Context) error {
	doc, err := chartboard.ReadManifest(cmd.Manifest)
	if err != nil {
		return err
	}
	store := &chartboard.FileBlobStore{Dir: cmd.Out}
	persister := &chartboard.SnapshotPersister{Store: store, Key: cmd.Key}
	service := chartboard.NewService(chartboard.Options{Persister: persister})
	if err := doc.Seed(ctx, service); err != nil {
		return err
	}
	if err := persister.Persist(ctx, service.Snapshot()); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Seeded %d dashboards from %s into %s\n",
		len(service.Dashboards()), cmd.Manifest, filepath.Join(cmd.Out, cmd.Key+".json"))
	return nil
}

type renderCmd struct {
	Snapshot string `arg:"" type:"path" help:"Path to a snapshot JSON file."`
	Widget   string `required:"" help:"Widget id to render."`
	Out      string `type:"path" help:"Output HTML file (defaults to <widget>.html)."`
	Theme    string `help:"ECharts theme name."`
}

func (cmd *renderCmd) Run(_ context.Context) error {
	data, err := os.ReadFile(cmd.Snapshot)
	if err != nil {
		return fmt.Errorf("chartctl: read snapshot: %w", err)
	}
	snapshot, err := chartboard.DecodeSnapshot(data)
	if err != nil {
		return err
	}
	var widget chartboard.Widget
	found := false
	for _, d := range snapshot.Dashboards {
		for _, w := range d.Widgets {
			if w.ID == cmd.Widget {
				widget = w
				found = true
				break
			}
		}
	}
	if !found {
		return fmt.Errorf("chartctl: snapshot has no widget %s", cmd.Widget)
	}
	options := []chartboard.EChartsRendererOption{}
	if cmd.Theme != "" {
		options = append(options, chartboard.WithTheme(cmd.Theme))
	}
	html, err := chartboard.NewEChartsRenderer(options...).Render(widget)
	if err != nil {
		return err
	}
	out := cmd.Out
	if out == "" {
		out = sanitizeFileName(widget.ID) + ".html"
	}
	if err := os.WriteFile(out, []byte(html), 0o644); err != nil {
		return fmt.Errorf("chartctl: write %s: %w", out, err)
	}
	fmt.Fprintf(os.Stdout, "✓ Rendered %s chart %s to %s\n", widget.Type, widget.ID, out)
	return nil
}

func readRecords(path string) ([]chartboard.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("chartctl: read records: %w", err)
	}
	var records []chartboard.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("chartctl: parse records JSON: %w", err)
	}
	return records, nil
}

func sanitizeFileName(id string) string {
	replacer := strings.NewReplacer(".", "_", "-", "_", "/", "_", " ", "_")
	return strings.ToLower(replacer.Replace(id))
}
