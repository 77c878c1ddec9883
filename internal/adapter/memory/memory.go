// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"kuritterweight/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu      sync.Mutex
	weights []domain.WeightRecord

	weightIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{}
}

// Ensure interfaces are met.
var _ domain.WeightRepository = (*DB)(nil)

// newerFirst orders records the way "latest" is defined: greatest date, then
// greatest id.
func newerFirst(a, b domain.WeightRecord) bool {
	if a.Date != b.Date {
		return a.Date > b.Date
	}
	return a.ID > b.ID
}

// latestIndex returns the index of userID's latest record, or -1.
func (db *DB) latestIndex(userID string) int {
	idx := -1
	for i, w := range db.weights {
		if w.UserID != userID {
			continue
		}
		if idx == -1 || newerFirst(w, db.weights[idx]) {
			idx = i
		}
	}
	return idx
}

// LatestWeight returns the weight of the user's latest record.
func (db *DB) LatestWeight(ctx context.Context, userID string) (*float64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	idx := db.latestIndex(userID)
	if idx == -1 {
		return nil, nil
	}
	v := db.weights[idx].Weight
	return &v, nil
}

// AddWeight appends a weight record.
func (db *DB) AddWeight(ctx context.Context, userID string, weight float64, timestamp string) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.weightIDCounter++
	id := db.weightIDCounter

	db.weights = append(db.weights, domain.WeightRecord{
		ID:     id,
		UserID: userID,
		Date:   timestamp,
		Weight: weight,
	})
	return id, nil
}

// DeleteLatestWeight deletes the user's latest record.
func (db *DB) DeleteLatestWeight(ctx context.Context, userID string) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	idx := db.latestIndex(userID)
	if idx == -1 {
		return false, nil
	}
	db.weights = append(db.weights[:idx], db.weights[idx+1:]...)
	return true, nil
}

// ListRecentWeights lists the most recent records across all users.
func (db *DB) ListRecentWeights(ctx context.Context, limit int) ([]domain.WeightRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.sorted(func(domain.WeightRecord) bool { return true }, limit), nil
}

// ListUserWeights lists the most recent records of one user.
func (db *DB) ListUserWeights(ctx context.Context, userID string, limit int) ([]domain.WeightRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.sorted(func(w domain.WeightRecord) bool { return w.UserID == userID }, limit), nil
}

func (db *DB) sorted(keep func(domain.WeightRecord) bool, limit int) []domain.WeightRecord {
	result := make([]domain.WeightRecord, 0, len(db.weights))
	for _, w := range db.weights {
		if keep(w) {
			result = append(result, w)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return newerFirst(result[i], result[j])
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

// MonthlyAverages returns the average weight per month, newest first.
func (db *DB) MonthlyAverages(ctx context.Context, months int) ([]domain.MonthlyAverage, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	type acc struct {
		sum float64
		n   int
	}
	byMonth := make(map[string]*acc)
	for _, w := range db.weights {
		if len(w.Date) < 7 {
			continue
		}
		m := w.Date[:7]
		if byMonth[m] == nil {
			byMonth[m] = &acc{}
		}
		byMonth[m].sum += w.Weight
		byMonth[m].n++
	}

	out := make([]domain.MonthlyAverage, 0, len(byMonth))
	for m, a := range byMonth {
		avg := math.Round(a.sum/float64(a.n)*10) / 10
		out = append(out, domain.MonthlyAverage{Month: m, AvgWeight: avg})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month > out[j].Month })
	if months > 0 && len(out) > months {
		out = out[:months]
	}
	return out, nil
}

// WeightsBetween returns readings from startDate through the last minute of
// endDate, oldest first.
func (db *DB) WeightsBetween(ctx context.Context, startDate, endDate string) ([]domain.DatePoint, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	end := endDate + " 23:59"
	matched := make([]domain.WeightRecord, 0)
	for _, w := range db.weights {
		if w.Date >= startDate && w.Date <= end {
			matched = append(matched, w)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return newerFirst(matched[j], matched[i]) })

	out := make([]domain.DatePoint, 0, len(matched))
	for _, w := range matched {
		out = append(out, domain.DatePoint{Date: w.Date, Weight: w.Weight})
	}
	return out, nil
}
