package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/tmorrell/cruxlog/internal/domain/climb"
)

type seedRecord struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Environment string `json:"environment"`
	Location    string `json:"location"`
	RouteName   string `json:"routeName"`
	ClimbType   string `json:"climbType"`
	GradeSystem string `json:"gradeSystem"`
	Grade       string `json:"grade"`
	Progress    string `json:"progress"`
}

// Seed loads records from a JSON file into an empty climb_logs table. A
// missing seed file or a non-empty table is not an error; both return 0.
// Seed data is inserted as-is, without running the record validator.
func Seed(ctx context.Context, db *DB, path string) (int, error) {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM climb_logs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count logs: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read seed file: %w", err)
	}

	var records []seedRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return 0, fmt.Errorf("failed to parse seed file: %w", err)
	}

	query := `
		INSERT OR IGNORE INTO climb_logs (
			id, date, environment, location, route_name,
			climb_type, grade_system, grade, grade_key, progress, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	inserted := 0
	now := time.Now()
	for _, rec := range records {
		id := rec.ID
		if id == "" {
			id = uuid.NewString()
		}
		result, err := db.ExecContext(ctx, query,
			id,
			rec.Date,
			rec.Environment,
			rec.Location,
			rec.RouteName,
			rec.ClimbType,
			rec.GradeSystem,
			rec.Grade,
			climb.GradeKey(climb.GradeSystem(rec.GradeSystem), rec.Grade),
			rec.Progress,
			now,
		)
		if err != nil {
			return inserted, fmt.Errorf("failed to seed record %s: %w", id, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return inserted, fmt.Errorf("failed to get rows affected: %w", err)
		}
		inserted += int(n)
	}

	return inserted, nil
}
