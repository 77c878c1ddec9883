package app_test

import (
	"context"

	"kuritterweight/internal/domain"
)

type mockWeightRepo struct {
	latestFn  func(ctx context.Context, userID string) (*float64, error)
	addFn     func(ctx context.Context, userID string, weight float64, ts string) (int64, error)
	deleteFn  func(ctx context.Context, userID string) (bool, error)
	recentFn  func(ctx context.Context, limit int) ([]domain.WeightRecord, error)
	userFn    func(ctx context.Context, userID string, limit int) ([]domain.WeightRecord, error)
	monthlyFn func(ctx context.Context, months int) ([]domain.MonthlyAverage, error)
	rangeFn   func(ctx context.Context, start, end string) ([]domain.DatePoint, error)
}

func (m *mockWeightRepo) LatestWeight(ctx context.Context, userID string) (*float64, error) {
	if m.latestFn != nil {
		return m.latestFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockWeightRepo) AddWeight(ctx context.Context, userID string, weight float64, ts string) (int64, error) {
	if m.addFn != nil {
		return m.addFn(ctx, userID, weight, ts)
	}
	return 1, nil
}

func (m *mockWeightRepo) DeleteLatestWeight(ctx context.Context, userID string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID)
	}
	return false, nil
}

func (m *mockWeightRepo) ListRecentWeights(ctx context.Context, limit int) ([]domain.WeightRecord, error) {
	if m.recentFn != nil {
		return m.recentFn(ctx, limit)
	}
	return nil, nil
}

func (m *mockWeightRepo) ListUserWeights(ctx context.Context, userID string, limit int) ([]domain.WeightRecord, error) {
	if m.userFn != nil {
		return m.userFn(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockWeightRepo) MonthlyAverages(ctx context.Context, months int) ([]domain.MonthlyAverage, error) {
	if m.monthlyFn != nil {
		return m.monthlyFn(ctx, months)
	}
	return nil, nil
}

func (m *mockWeightRepo) WeightsBetween(ctx context.Context, start, end string) ([]domain.DatePoint, error) {
	if m.rangeFn != nil {
		return m.rangeFn(ctx, start, end)
	}
	return nil, nil
}

type reply struct {
	token, text string
}

type mockNotifier struct {
	err     error
	replies []reply
}

func (m *mockNotifier) Reply(_ context.Context, replyToken, text string) error {
	m.replies = append(m.replies, reply{token: replyToken, text: text})
	return m.err
}

type mockPublisher struct {
	err    error
	events []domain.RecordedEvent
}

func (m *mockPublisher) PublishRecorded(_ context.Context, ev domain.RecordedEvent) error {
	m.events = append(m.events, ev)
	return m.err
}

func weightPtr(v float64) *float64 { return &v }
