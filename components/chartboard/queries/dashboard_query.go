package queries

import (
	"context"

	chartboard "github.com/goliatone/go-chartboard/components/chartboard"
	gocommand "github.com/goliatone/go-command"
)

// DashboardInput identifies one dashboard.
type DashboardInput struct {
	DashboardID string `json:"dashboard_id"`
}

type dashboardService interface {
	Dashboard(id string) (chartboard.Dashboard, error)
}

// DashboardQuery fetches a single dashboard by id.
type DashboardQuery struct {
	service dashboardService
}

// NewDashboardQuery builds the query.
func NewDashboardQuery(service dashboardService) *DashboardQuery {
	return &DashboardQuery{service: service}
}

var _ gocommand.Querier[DashboardInput, chartboard.Dashboard] = (*DashboardQuery)(nil)

// Query resolves the dashboard.
func (q *DashboardQuery) Query(_ context.Context, input DashboardInput) (chartboard.Dashboard, error) {
	return q.service.Dashboard(input.DashboardID)
}

// DashboardListInput is empty; the full collection is always returned.
type DashboardListInput struct{}

type dashboardListService interface {
	Dashboards() []chartboard.Dashboard
}

// DashboardListQuery fetches every dashboard in creation order.
type DashboardListQuery struct {
	service dashboardListService
}

// NewDashboardListQuery builds the query.
func NewDashboardListQuery(service dashboardListService) *DashboardListQuery {
	return &DashboardListQuery{service: service}
}

var _ gocommand.Querier[DashboardListInput, []chartboard.Dashboard] = (*DashboardListQuery)(nil)

// Query lists the dashboards.
func (q *DashboardListQuery) Query(context.Context, DashboardListInput) ([]chartboard.Dashboard, error) {
	return q.service.Dashboards(), nil
}
