package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/tmorrell/cruxlog/internal/domain/climb"
	"github.com/tmorrell/cruxlog/internal/repository"
)

// LogRepository implements climb.LogRepository for SQLite
type LogRepository struct {
	db *DB
}

// NewLogRepository creates a new LogRepository
func NewLogRepository(db *DB) *LogRepository {
	return &LogRepository{db: db}
}

const logColumns = `
	id, date, environment, location, route_name,
	climb_type, grade_system, grade, progress, created_at,
	EXISTS(SELECT 1 FROM climb_images i WHERE i.log_id = climb_logs.id)
`

// Create inserts a new log entry.
func (r *LogRepository) Create(ctx context.Context, log *climb.Log) error {
	query := `
		INSERT INTO climb_logs (
			id, date, environment, location, route_name,
			climb_type, grade_system, grade, grade_key, progress, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		log.ID,
		log.Date,
		log.Environment,
		log.Location,
		log.RouteName,
		log.ClimbType,
		log.GradeSystem,
		log.Grade,
		climb.GradeKey(log.GradeSystem, log.Grade),
		log.Progress,
		log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create log: %w", err)
	}

	return nil
}

// Get retrieves a log entry by ID
func (r *LogRepository) Get(ctx context.Context, id string) (*climb.Log, error) {
	query := `SELECT ` + logColumns + ` FROM climb_logs WHERE id = ?`

	log, err := scanLog(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get log: %w", err)
	}
	return log, nil
}

// Update replaces all fields of a log entry.
func (r *LogRepository) Update(ctx context.Context, log *climb.Log) error {
	query := `
		UPDATE climb_logs
		SET date = ?, environment = ?, location = ?, route_name = ?,
		    climb_type = ?, grade_system = ?, grade = ?, grade_key = ?, progress = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		log.Date,
		log.Environment,
		log.Location,
		log.RouteName,
		log.ClimbType,
		log.GradeSystem,
		log.Grade,
		climb.GradeKey(log.GradeSystem, log.Grade),
		log.Progress,
		log.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update log: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a log entry. The image row goes with it via cascade.
func (r *LogRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM climb_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete log: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// List returns one page of logs matching the options. The requested page is
// clamped to the last available page, and the clamped value is reported back
// in the result.
func (r *LogRepository) List(ctx context.Context, opts climb.ListOptions) (*climb.ListResult, error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	pageSize := opts.PageSize
	if pageSize < 1 {
		pageSize = climb.DefaultPageSize
	}
	if pageSize > climb.MaxPageSize {
		pageSize = climb.MaxPageSize
	}

	where, args := buildWhere(opts)

	var total int
	countQuery := `SELECT COUNT(*) FROM climb_logs` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count logs: %w", err)
	}

	lastPage := (total + pageSize - 1) / pageSize
	if lastPage < 1 {
		lastPage = 1
	}
	if page > lastPage {
		page = lastPage
	}

	orderBy, err := r.resolveOrderBy(ctx, opts.Sort, where, args)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + logColumns + ` FROM climb_logs` + where +
		` ORDER BY ` + orderBy + ` LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, append(args, pageSize, (page-1)*pageSize)...)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}
	defer rows.Close()

	items := []climb.Log{}
	for rows.Next() {
		log, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan log: %w", err)
		}
		items = append(items, *log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read logs: %w", err)
	}

	return &climb.ListResult{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// resolveOrderBy maps the sort key onto an allowlisted ORDER BY clause. Grade
// sorting only applies when the filtered set spans exactly one grade system;
// mixed or empty sets fall back to date descending, since V and YDS keys are
// not comparable.
func (r *LogRepository) resolveOrderBy(ctx context.Context, sort climb.SortKey, where string, args []interface{}) (string, error) {
	switch sort {
	case climb.SortGradeAsc, climb.SortGradeDesc:
		var systems int
		query := `SELECT COUNT(DISTINCT grade_system) FROM climb_logs` + where
		if err := r.db.QueryRowContext(ctx, query, args...).Scan(&systems); err != nil {
			return "", fmt.Errorf("failed to check grade systems: %w", err)
		}
		if systems != 1 {
			return "date DESC, id", nil
		}
		if sort == climb.SortGradeAsc {
			return "grade_key ASC, id", nil
		}
		return "grade_key DESC, id", nil
	case climb.SortDateAsc:
		return "date ASC, id", nil
	case climb.SortLocationAsc:
		return "location ASC, id", nil
	case climb.SortLocationDesc:
		return "location DESC, id", nil
	case climb.SortRouteAsc:
		return "route_name ASC, id", nil
	case climb.SortRouteDesc:
		return "route_name DESC, id", nil
	default:
		return "date DESC, id", nil
	}
}

func buildWhere(opts climb.ListOptions) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}

	if search := strings.ToLower(strings.TrimSpace(opts.Search)); search != "" {
		conditions = append(conditions, "(LOWER(route_name) LIKE ? OR LOWER(location) LIKE ?)")
		like := "%" + search + "%"
		args = append(args, like, like)
	}

	if len(opts.Environments) > 0 {
		placeholders := make([]string, len(opts.Environments))
		for i, env := range opts.Environments {
			placeholders[i] = "?"
			args = append(args, env)
		}
		conditions = append(conditions, fmt.Sprintf("environment IN (%s)", strings.Join(placeholders, ",")))
	}

	if len(opts.Types) > 0 {
		placeholders := make([]string, len(opts.Types))
		for i, typ := range opts.Types {
			placeholders[i] = "?"
			args = append(args, typ)
		}
		conditions = append(conditions, fmt.Sprintf("climb_type IN (%s)", strings.Join(placeholders, ",")))
	}

	if len(opts.Progress) > 0 {
		placeholders := make([]string, len(opts.Progress))
		for i, prog := range opts.Progress {
			placeholders[i] = "?"
			args = append(args, prog)
		}
		conditions = append(conditions, fmt.Sprintf("progress IN (%s)", strings.Join(placeholders, ",")))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLog(row rowScanner) (*climb.Log, error) {
	var log climb.Log
	err := row.Scan(
		&log.ID,
		&log.Date,
		&log.Environment,
		&log.Location,
		&log.RouteName,
		&log.ClimbType,
		&log.GradeSystem,
		&log.Grade,
		&log.Progress,
		&log.CreatedAt,
		&log.HasImage,
	)
	if err != nil {
		return nil, err
	}
	return &log, nil
}
