package queries

import (
	"context"
	"fmt"

	chartboard "github.com/goliatone/go-chartboard/components/chartboard"
	gocommand "github.com/goliatone/go-command"
)

// DatasourceKeysInput identifies the datasource to inspect.
type DatasourceKeysInput struct {
	DatasourceID string `json:"datasource_id"`
}

// DatasourceKeysQuery extracts the set of selectable field names from a
// datasource's records, recursing into nested structures.
type DatasourceKeysQuery struct {
	registry *chartboard.DatasourceRegistry
}

// NewDatasourceKeysQuery builds the query.
func NewDatasourceKeysQuery(registry *chartboard.DatasourceRegistry) *DatasourceKeysQuery {
	return &DatasourceKeysQuery{registry: registry}
}

var _ gocommand.Querier[DatasourceKeysInput, []string] = (*DatasourceKeysQuery)(nil)

// Query returns the sorted, deduplicated key names.
func (q *DatasourceKeysQuery) Query(_ context.Context, input DatasourceKeysInput) ([]string, error) {
	ds, ok := q.registry.Get(input.DatasourceID)
	if !ok {
		return nil, fmt.Errorf("%w: datasource %s", chartboard.ErrNotFound, input.DatasourceID)
	}
	return chartboard.ExtractKeys(ds.Data), nil
}

// DatasourceListInput is empty; the full registry is returned.
type DatasourceListInput struct{}

// DatasourceListQuery lists registered datasources in insertion order.
type DatasourceListQuery struct {
	registry *chartboard.DatasourceRegistry
}

// NewDatasourceListQuery builds the query.
func NewDatasourceListQuery(registry *chartboard.DatasourceRegistry) *DatasourceListQuery {
	return &DatasourceListQuery{registry: registry}
}

var _ gocommand.Querier[DatasourceListInput, []chartboard.Datasource] = (*DatasourceListQuery)(nil)

// Query lists the datasources.
func (q *DatasourceListQuery) Query(context.Context, DatasourceListInput) ([]chartboard.Datasource, error) {
	return q.registry.List(), nil
}
