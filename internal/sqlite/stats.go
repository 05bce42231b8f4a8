package sqlite

import (
	"context"
	"fmt"
	"math"

	"github.com/tmorrell/cruxlog/internal/domain/climb"
)

// StatsRepository implements climb.StatsRepository for SQLite
type StatsRepository struct {
	db *DB
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Stats computes the aggregate view: total count, completion percentage
// (rounded to a whole percent), and per-type counts.
func (r *StatsRepository) Stats(ctx context.Context) (*climb.Stats, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM climb_logs`).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count logs: %w", err)
	}

	var complete int
	query := `SELECT COUNT(*) FROM climb_logs WHERE progress = 'complete'`
	if err := r.db.QueryRowContext(ctx, query).Scan(&complete); err != nil {
		return nil, fmt.Errorf("failed to count completed logs: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT climb_type, COUNT(*) FROM climb_logs GROUP BY climb_type ORDER BY climb_type`)
	if err != nil {
		return nil, fmt.Errorf("failed to count logs by type: %w", err)
	}
	defer rows.Close()

	byType := map[string]int{}
	for rows.Next() {
		var climbType string
		var n int
		if err := rows.Scan(&climbType, &n); err != nil {
			return nil, fmt.Errorf("failed to scan type count: %w", err)
		}
		byType[climbType] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read type counts: %w", err)
	}

	rate := 0
	if total > 0 {
		rate = int(math.Round(float64(complete) / float64(total) * 100))
	}

	return &climb.Stats{
		Total:          total,
		CompletionRate: rate,
		ByType:         byType,
	}, nil
}
