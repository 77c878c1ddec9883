package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"kuritterweight/internal/domain"
)

var _ domain.WeightRepository = (*DB)(nil)

// LatestWeight returns the weight of the user's most recent record.
func (d *DB) LatestWeight(ctx context.Context, userID string) (*float64, error) {
	var w float64
	err := d.sql.QueryRowContext(ctx,
		"SELECT weight FROM weights WHERE user_id=$1 ORDER BY date DESC, id DESC LIMIT 1;", userID,
	).Scan(&w)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest weight: %w", err)
	}
	return &w, nil
}

// AddWeight inserts a new weight record.
func (d *DB) AddWeight(ctx context.Context, userID string, weight float64, timestamp string) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO weights(user_id, date, weight) VALUES($1, $2, $3) RETURNING id;",
		userID, timestamp, weight,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("add weight: %w", err)
	}
	return id, nil
}

// DeleteLatestWeight removes the user's most recent record in a single
// statement.
func (d *DB) DeleteLatestWeight(ctx context.Context, userID string) (bool, error) {
	res, err := d.sql.ExecContext(ctx,
		"DELETE FROM weights WHERE id = (SELECT id FROM weights WHERE user_id=$1 ORDER BY date DESC, id DESC LIMIT 1);", userID)
	if err != nil {
		return false, fmt.Errorf("delete latest weight: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete latest weight: %w", err)
	}
	return n > 0, nil
}

// ListRecentWeights returns the most recent records across all users.
func (d *DB) ListRecentWeights(ctx context.Context, limit int) ([]domain.WeightRecord, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, user_id, date, weight FROM weights ORDER BY date DESC, id DESC LIMIT $1;", limit)
	if err != nil {
		return nil, fmt.Errorf("list recent weights: %w", err)
	}
	return scanRecords(rows, limit)
}

// ListUserWeights returns the most recent records of one user.
func (d *DB) ListUserWeights(ctx context.Context, userID string, limit int) ([]domain.WeightRecord, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, user_id, date, weight FROM weights WHERE user_id=$1 ORDER BY date DESC, id DESC LIMIT $2;", userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list user weights: %w", err)
	}
	return scanRecords(rows, limit)
}

func scanRecords(rows *sql.Rows, limit int) ([]domain.WeightRecord, error) {
	defer rows.Close() //nolint:errcheck

	out := make([]domain.WeightRecord, 0, limit)
	for rows.Next() {
		var e domain.WeightRecord
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.Weight); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// MonthlyAverages returns the average weight per month across all users,
// newest month first. months <= 0 returns every month.
func (d *DB) MonthlyAverages(ctx context.Context, months int) ([]domain.MonthlyAverage, error) {
	var limit any
	if months > 0 {
		limit = months
	}
	// LIMIT NULL means no limit in PostgreSQL.
	rows, err := d.sql.QueryContext(ctx,
		"SELECT LEFT(date, 7) AS month, ROUND(AVG(weight)::numeric, 1)::float8 AS avg_weight FROM weights GROUP BY month ORDER BY month DESC LIMIT $1;", limit)
	if err != nil {
		return nil, fmt.Errorf("monthly averages: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.MonthlyAverage, 0)
	for rows.Next() {
		var m domain.MonthlyAverage
		if err := rows.Scan(&m.Month, &m.AvgWeight); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// WeightsBetween returns readings from startDate through 23:59 of endDate,
// oldest first.
func (d *DB) WeightsBetween(ctx context.Context, startDate, endDate string) ([]domain.DatePoint, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT date, weight FROM weights WHERE date >= $1 AND date <= $2 ORDER BY date ASC, id ASC;",
		startDate, endDate+" 23:59")
	if err != nil {
		return nil, fmt.Errorf("weights between: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.DatePoint, 0)
	for rows.Next() {
		var p domain.DatePoint
		if err := rows.Scan(&p.Date, &p.Weight); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
