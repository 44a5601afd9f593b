package sqlite_test

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/avrek/wb-radar/internal/models"
	"github.com/avrek/wb-radar/internal/repository/sqlite"
)

func TestNewRepository_Success(t *testing.T) {
	ctx := t.Context()

	dbPath := filepath.Join(t.TempDir(), "testdb.sqlite")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	repo, err := sqlite.NewRepository(ctx, logger, dbPath)
	if err != nil {
		t.Fatalf("expected no error from NewRepository, got: %v", err)
	}
	defer repo.Close()

	if repo == nil {
		t.Fatal("expected repository to be non-nil")
	}
}

func TestNewRepository_InvalidPath(t *testing.T) {
	ctx := t.Context()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := sqlite.NewRepository(ctx, logger, "/invalid/path/to/db.sqlite")
	if err == nil {
		t.Fatal("expected error due to invalid path, got nil")
	}
}

func TestRepository_Close(t *testing.T) {
	ctx := t.Context()

	dbPath := filepath.Join(t.TempDir(), "testdb.sqlite")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	repo, err := sqlite.NewRepository(ctx, logger, dbPath)
	if err != nil {
		t.Fatalf("expected no error from NewRepository, got: %v", err)
	}

	if err = repo.Close(); err != nil {
		t.Fatalf("expected no error on Close, got: %v", err)
	}
}

func TestSchemaInitialization(t *testing.T) {
	repo := newTestRepo(t)

	rows, err := repo.DB().Query("SELECT name FROM sqlite_master WHERE type='table'")
	if err != nil {
		t.Fatalf("failed to query sqlite_master: %v", err)
	}
	defer rows.Close()

	found := make(map[string]bool)
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan row: %v", err)
		}
		found[name] = true
	}

	if !found["groups"] || !found["group_members"] || !found["comparison_snapshots"] {
		t.Errorf("expected tables 'groups', 'group_members' and 'comparison_snapshots' to exist, got: %+v", found)
	}
}

// newTestRepo creates a repository backed by a temporary database file.
func newTestRepo(t *testing.T) *sqlite.Repository {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "testdb.sqlite")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	repo, err := sqlite.NewRepository(t.Context(), logger, dbPath)
	require.NoError(t, err)

	t.Cleanup(func() { repo.Close() })

	return repo
}

// newMockedRepo creates a repository with a mocked database connection for testing failures.
func newMockedRepo(t *testing.T) (*sqlite.Repository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := sqlite.NewForTest(mockDB)

	t.Cleanup(func() { mockDB.Close() })

	return repo, mock
}

// createTestGroup inserts a group through the public API and returns it.
func createTestGroup(t *testing.T, repo *sqlite.Repository, userID int64, groupType models.GroupType) *models.ArticleGroup {
	t.Helper()

	group, err := repo.CreateGroup(t.Context(), userID, "test group", groupType)
	require.NoError(t, err)

	return group
}
