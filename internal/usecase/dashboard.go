package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/xavierca1/nhfg-leads/internal/entity"
)

// Fixed series shown on the dashboard chart until per-month aggregation is
// backed by real data.
var monthlyPerformance = []entity.MonthlyPerformance{
	{Month: "Jan", Revenue: 45000, Leads: 24},
	{Month: "Feb", Revenue: 52000, Leads: 30},
	{Month: "Mar", Revenue: 48000, Leads: 28},
}

type DashboardMetricsUseCase struct {
	Repo entity.DashboardRepositoryInterface
}

func NewDashboardMetricsUseCase(repo entity.DashboardRepositoryInterface) *DashboardMetricsUseCase {
	return &DashboardMetricsUseCase{Repo: repo}
}

func (uc *DashboardMetricsUseCase) Execute(ctx context.Context) (*DashboardOutput, error) {
	var out DashboardOutput

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := uc.Repo.TotalRevenue(gctx)
		out.TotalRevenue = v
		return err
	})
	g.Go(func() error {
		v, err := uc.Repo.CountClients(gctx)
		out.ActiveClients = v
		return err
	})
	g.Go(func() error {
		v, err := uc.Repo.CountLeadsByStatus(gctx, entity.LeadStatusNew)
		out.PendingLeads = v
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, storeFailure(err)
	}

	out.MonthlyPerformance = make([]MonthlyPerformanceOutput, len(monthlyPerformance))
	for i, m := range monthlyPerformance {
		out.MonthlyPerformance[i] = MonthlyPerformanceOutput{Month: m.Month, Revenue: m.Revenue, Leads: m.Leads}
	}
	return &out, nil
}
