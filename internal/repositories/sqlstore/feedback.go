package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"puzzle-landing-api/internal/models"
	"puzzle-landing-api/internal/repositories"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// Supported database/sql driver names
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

var feedbackColumns = []string{"puzzle_code", "rating", "comment", "contact", "user_agent", "ip"}

// FeedbackRepository writes feedback rows through database/sql. It works
// against Postgres (lib/pq) and SQLite (go-sqlite3).
type FeedbackRepository struct {
	db     *sql.DB
	driver string
	table  string
	insert string
	logger *logrus.Logger
}

// NewFeedbackRepository creates a feedback repository over an open database
func NewFeedbackRepository(db *sql.DB, driver, table string, logger *logrus.Logger) (*FeedbackRepository, error) {
	if logger == nil {
		logger = logrus.New()
	}
	if db == nil {
		return nil, repositories.NewRepositoryErrorWithMessage("init", "feedback", "database handle is nil", repositories.ErrInvalidConfig)
	}
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, repositories.NewRepositoryErrorWithMessage("init", "feedback",
			fmt.Sprintf("unsupported driver %q", driver), repositories.ErrInvalidConfig)
	}
	if !tableNamePattern.MatchString(table) {
		return nil, repositories.NewRepositoryErrorWithMessage("init", "feedback",
			fmt.Sprintf("invalid table name %q", table), repositories.ErrInvalidConfig)
	}

	return &FeedbackRepository{
		db:     db,
		driver: driver,
		table:  table,
		insert: buildInsert(driver, table),
		logger: logger,
	}, nil
}

func buildInsert(driver, table string) string {
	placeholders := make([]string, len(feedbackColumns))
	for i := range feedbackColumns {
		if driver == DriverPostgres {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
		} else {
			placeholders[i] = "?"
		}
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(feedbackColumns, ", "), strings.Join(placeholders, ", "))
}

// Create appends one feedback row
func (r *FeedbackRepository) Create(ctx context.Context, record *models.FeedbackRecord) error {
	if record == nil {
		return repositories.NewRepositoryErrorWithMessage("create", "feedback", "record is nil", repositories.ErrRejected)
	}

	args := []interface{}{
		nullString(record.PuzzleCode),
		record.Rating,
		record.Comment,
		nullString(record.Contact),
		nullString(record.UserAgent),
		nullString(record.IP),
	}

	start := time.Now()
	_, err := r.db.ExecContext(ctx, r.insert, args...)
	r.logQuery("create", time.Since(start), err)

	if err != nil {
		return r.wrapError("create", err)
	}
	return nil
}

// Close closes the underlying database
func (r *FeedbackRepository) Close() error {
	return r.db.Close()
}

// wrapError classifies driver errors so callers can tell a refused row from
// an unreachable database.
func (r *FeedbackRepository) wrapError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "23" {
		return repositories.NewRepositoryError(op, "feedback", fmt.Errorf("%w: %s", repositories.ErrConstraint, pqErr.Message))
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return repositories.NewRepositoryError(op, "feedback", fmt.Errorf("%w: %v", repositories.ErrConstraint, sqliteErr))
	}

	return repositories.NewRepositoryError(op, "feedback", err)
}

// logQuery logs a statement without its arguments; feedback rows carry
// free text and caller IPs.
func (r *FeedbackRepository) logQuery(operation string, duration time.Duration, err error) {
	fields := logrus.Fields{
		"operation": operation,
		"table":     r.table,
		"driver":    r.driver,
		"duration":  duration,
	}

	if err != nil {
		fields["error"] = err.Error()
		r.logger.WithFields(fields).Error("Query failed")
	} else {
		r.logger.WithFields(fields).Debug("Query executed")
	}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
