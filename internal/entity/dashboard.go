package entity

import "context"

type MonthlyPerformance struct {
	Month   string
	Revenue int
	Leads   int
}

type DashboardRepositoryInterface interface {
	TotalRevenue(ctx context.Context) (float64, error)
	CountClients(ctx context.Context) (int, error)
	CountLeadsByStatus(ctx context.Context, status string) (int, error)
}
