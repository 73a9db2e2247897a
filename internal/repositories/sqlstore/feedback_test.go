package sqlstore

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"puzzle-landing-api/internal/models"
	"puzzle-landing-api/internal/repositories"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open(DriverSQLite, dbPath)
	require.NoError(t, err)

	_, err = db.Exec(`
		CREATE TABLE feedback (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			puzzle_code TEXT,
			rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
			comment TEXT NOT NULL,
			contact TEXT,
			user_agent TEXT,
			ip TEXT
		)
	`)
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })
	return db
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return logger
}

func strPtr(s string) *string { return &s }

func TestFeedbackRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo, err := NewFeedbackRepository(db, DriverSQLite, "feedback", quietLogger())
	require.NoError(t, err)

	record := &models.FeedbackRecord{
		PuzzleCode: strPtr("PZ-1"),
		Rating:     5,
		Comment:    "Lovely puzzle",
		UserAgent:  strPtr("test-agent"),
	}
	require.NoError(t, repo.Create(context.Background(), record))

	var (
		code, contact, ua, ip sql.NullString
		rating                int
		comment               string
	)
	row := db.QueryRow(`SELECT puzzle_code, rating, comment, contact, user_agent, ip FROM feedback`)
	require.NoError(t, row.Scan(&code, &rating, &comment, &contact, &ua, &ip))

	assert.Equal(t, "PZ-1", code.String)
	assert.Equal(t, 5, rating)
	assert.Equal(t, "Lovely puzzle", comment)
	assert.False(t, contact.Valid)
	assert.Equal(t, "test-agent", ua.String)
	assert.False(t, ip.Valid)
}

func TestFeedbackRepository_ConstraintViolation(t *testing.T) {
	db := setupTestDB(t)
	repo, err := NewFeedbackRepository(db, DriverSQLite, "feedback", quietLogger())
	require.NoError(t, err)

	err = repo.Create(context.Background(), &models.FeedbackRecord{Rating: 9, Comment: "abc"})
	require.Error(t, err)

	var repoErr *repositories.RepositoryError
	require.ErrorAs(t, err, &repoErr)
	assert.Equal(t, "create", repoErr.Op)
	assert.ErrorIs(t, err, repositories.ErrConstraint)
}

func TestFeedbackRepository_MissingTable(t *testing.T) {
	db := setupTestDB(t)
	repo, err := NewFeedbackRepository(db, DriverSQLite, "missing_table", quietLogger())
	require.NoError(t, err)

	err = repo.Create(context.Background(), &models.FeedbackRecord{Rating: 3, Comment: "abc"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, repositories.ErrConstraint)
}

func TestNewFeedbackRepository_RejectsBadConfig(t *testing.T) {
	db := setupTestDB(t)

	_, err := NewFeedbackRepository(db, "mysql", "feedback", nil)
	assert.ErrorIs(t, err, repositories.ErrInvalidConfig)

	_, err = NewFeedbackRepository(db, DriverSQLite, "feedback; DROP TABLE x", nil)
	assert.ErrorIs(t, err, repositories.ErrInvalidConfig)

	_, err = NewFeedbackRepository(nil, DriverSQLite, "feedback", nil)
	assert.ErrorIs(t, err, repositories.ErrInvalidConfig)
}

func TestBuildInsert(t *testing.T) {
	assert.Equal(t,
		"INSERT INTO public.feedback (puzzle_code, rating, comment, contact, user_agent, ip) VALUES ($1, $2, $3, $4, $5, $6)",
		buildInsert(DriverPostgres, "public.feedback"))
	assert.Equal(t,
		"INSERT INTO feedback (puzzle_code, rating, comment, contact, user_agent, ip) VALUES (?, ?, ?, ?, ?, ?)",
		buildInsert(DriverSQLite, "feedback"))
}
