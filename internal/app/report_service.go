package app

import (
	"context"
	"errors"
	"time"

	"kuritterweight/internal/domain"
)

// Limits of the reporting queries.
const (
	RecentLimit     = 7
	HistoryAPILimit = 30
	MaxMonths       = 60
)

var (
	// ErrMonthsOutOfRange indicates a monthly window outside [0, MaxMonths].
	ErrMonthsOutOfRange = errors.New("months must be between 1 and 60")
	// ErrInvalidDate indicates a date that is missing or not YYYY-MM-DD.
	ErrInvalidDate = errors.New("date must be YYYY-MM-DD")
)

// ReportService encapsulates the read-only reporting queries.
type ReportService struct {
	repo domain.WeightRepository
}

// NewReportService creates a ReportService backed by the given repository.
func NewReportService(repo domain.WeightRepository) *ReportService {
	return &ReportService{repo: repo}
}

// RecentWeights returns the newest RecentLimit readings across all users.
func (s *ReportService) RecentWeights(ctx context.Context) ([]domain.WeightRecord, error) {
	return s.repo.ListRecentWeights(ctx, RecentLimit)
}

// History returns the newest HistoryAPILimit readings across all users.
func (s *ReportService) History(ctx context.Context) ([]domain.WeightRecord, error) {
	return s.repo.ListRecentWeights(ctx, HistoryAPILimit)
}

// MonthlyAverages returns per-month averages, newest first. months == 0
// returns every month.
func (s *ReportService) MonthlyAverages(ctx context.Context, months int) ([]domain.MonthlyAverage, error) {
	if months < 0 || months > MaxMonths {
		return nil, ErrMonthsOutOfRange
	}
	return s.repo.MonthlyAverages(ctx, months)
}

// WeightsBetween returns readings from startDate through the end of endDate,
// oldest first.
func (s *ReportService) WeightsBetween(ctx context.Context, startDate, endDate string) ([]domain.DatePoint, error) {
	for _, d := range []string{startDate, endDate} {
		if _, err := time.Parse(domain.DateLayout, d); err != nil {
			return nil, ErrInvalidDate
		}
	}
	return s.repo.WeightsBetween(ctx, startDate, endDate)
}
