package dashboard

import "context"

// DashboardService builds the role-specific overview
type DashboardService interface {
	// Overview gathers the numbers shown on the landing screen
	Overview(ctx context.Context) (Overview, error)
}
