package dashboard

import (
	"context"
	"log/slog"
	"sort"
	"time"
)

// ProductsFeed is the slice of the products client the summary needs.
type ProductsFeed interface {
	FetchProducts(ctx context.Context) ([]Product, error)
}

type PendingCounter interface {
	CountPending() (int, error)
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type Summary struct {
	TotalProducts      int           `json:"total_products"`
	ProductsByStatus   []StatusCount `json:"products_by_status"`
	PendingInspections int           `json:"pending_inspections"`
	FeedDegraded       bool          `json:"feed_degraded"`
	GeneratedAt        time.Time     `json:"generated_at"`
}

type Service struct {
	feed    ProductsFeed
	pending PendingCounter
	logger  *slog.Logger
}

func NewService(feed ProductsFeed, pending PendingCounter, logger *slog.Logger) *Service {
	return &Service{
		feed:    feed,
		pending: pending,
		logger:  logger,
	}
}

// GetSummary assembles the dashboard cards. A dead products feed degrades
// the summary instead of failing it; the inspection count still renders.
func (s *Service) GetSummary(ctx context.Context) (*Summary, error) {
	summary := &Summary{
		ProductsByStatus: []StatusCount{},
		GeneratedAt:      time.Now(),
	}

	products, err := s.feed.FetchProducts(ctx)
	if err != nil {
		s.logger.Warn("products feed unavailable, serving degraded summary", "error", err)
		summary.FeedDegraded = true
	} else {
		summary.TotalProducts = len(products)
		summary.ProductsByStatus = countByStatus(products)
	}

	if s.pending != nil {
		count, err := s.pending.CountPending()
		if err != nil {
			s.logger.Warn("failed to count pending inspections", "error", err)
		} else {
			summary.PendingInspections = count
		}
	}

	return summary, nil
}

func countByStatus(products []Product) []StatusCount {
	counts := map[string]int{}
	for _, product := range products {
		status := product.CurrentStatus
		if status == "" {
			status = "unknown"
		}
		counts[status]++
	}

	out := make([]StatusCount, 0, len(counts))
	for status, count := range counts {
		out = append(out, StatusCount{Status: status, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out
}
