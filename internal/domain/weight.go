// Package domain contains the core business entities and interfaces.
package domain

import "context"

// WeightRecord represents a single weight measurement reported by a user.
type WeightRecord struct {
	ID     int64   `json:"id"`
	UserID string  `json:"userId"`
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

// MonthlyAverage is the mean weight over one calendar month.
type MonthlyAverage struct {
	Month     string  `json:"month"`
	AvgWeight float64 `json:"avg_weight"`
}

// DatePoint is one reading returned by a date-range query.
type DatePoint struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

// WeightRepository is the port for weight persistence.
//
// "Latest" always means the record with the greatest Date for the user, ties
// broken by the greatest ID.
type WeightRepository interface {
	LatestWeight(ctx context.Context, userID string) (*float64, error)
	AddWeight(ctx context.Context, userID string, weight float64, timestamp string) (int64, error)
	DeleteLatestWeight(ctx context.Context, userID string) (bool, error)
	ListRecentWeights(ctx context.Context, limit int) ([]WeightRecord, error)
	ListUserWeights(ctx context.Context, userID string, limit int) ([]WeightRecord, error)
	// MonthlyAverages returns newest month first. months <= 0 means no bound.
	MonthlyAverages(ctx context.Context, months int) ([]MonthlyAverage, error)
	// WeightsBetween returns readings from startDate through the end of
	// endDate, oldest first.
	WeightsBetween(ctx context.Context, startDate, endDate string) ([]DatePoint, error)
}

// Notifier is the port for replying to the user who sent a message.
type Notifier interface {
	Reply(ctx context.Context, replyToken, text string) error
}

// RecordedEvent describes a weight reading that was durably stored.
type RecordedEvent struct {
	ID       int64   `json:"id"`
	UserID   string  `json:"userId"`
	Date     string  `json:"date"`
	Weight   float64 `json:"weight"`
	Previous float64 `json:"previous"`
}

// RecordPublisher is the port for announcing stored readings to other systems.
type RecordPublisher interface {
	PublishRecorded(ctx context.Context, ev RecordedEvent) error
}
