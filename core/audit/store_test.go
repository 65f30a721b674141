package audit

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"mods-merger/core/database"
	"mods-merger/core/merge"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupSQLite(t *testing.T) *Store {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	store := NewStore(db)
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func report(id string, started time.Time) *merge.Report {
	return &merge.Report{
		RunID:               id,
		Kind:                merge.KindText,
		RelativePath:        "msg/item.msgbnd.dcx",
		OutputPath:          "/merged/msg/item.msgbnd.dcx",
		HasVanillaReference: true,
		Persisted:           true,
		Records: []merge.AuditRecord{
			{Kind: merge.KindText, File: "b", Collection: "table[0]", Key: "100", Action: merge.ActionReplaced, Reason: merge.ReasonDivergesFromVanilla},
			{Kind: merge.KindText, File: "c", Collection: "table[0]", Key: "200", Action: merge.ActionAdded, Reason: merge.ReasonNewRelativeToVanilla, Detail: "x"},
		},
		Failures: []*merge.Failure{
			{Kind: merge.FailureCandidateLoad, File: "d", Message: "bad header", Err: errors.New("bad header")},
		},
		Summary:    merge.Summary{Files: 4, Folded: 2, SkippedFiles: 1, Replaced: 1, Added: 1},
		StartedAt:  started,
		FinishedAt: started.Add(time.Second),
	}
}

func TestFromReport(t *testing.T) {
	run := FromReport(report("run-1", time.Now()))
	assert.Equal(t, "run-1", run.ID)
	assert.Equal(t, "text", run.Kind)
	assert.False(t, run.Fatal)
	assert.Equal(t, "candidate-load: bad header", run.Failures)
	require.Len(t, run.Records, 2)
	assert.Equal(t, "run-1", run.Records[1].RunID)
	assert.Equal(t, "200", run.Records[1].Key)
}

func TestStore_SQLite(t *testing.T) {
	store := setupSQLite(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, store.SaveReport(ctx, report("older", now.Add(-time.Hour))))
	require.NoError(t, store.SaveReport(ctx, report("newer", now)))
	require.NoError(t, store.SaveReport(ctx, nil))

	t.Run("ListRuns", func(t *testing.T) {
		runs, err := store.ListRuns(ctx, 10)
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, "newer", runs[0].ID)
		assert.Empty(t, runs[0].Records)

		runs, err = store.ListRuns(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, runs, 1)
	})

	t.Run("GetRun", func(t *testing.T) {
		run, err := store.GetRun(ctx, "older")
		require.NoError(t, err)
		assert.Equal(t, 4, run.Files)
		assert.True(t, run.HasVanilla)
		require.Len(t, run.Records, 2)
		assert.Equal(t, "100", run.Records[0].Key)
		assert.Equal(t, "replaced", run.Records[0].Action)
		assert.Equal(t, "x", run.Records[1].Detail)
	})

	t.Run("GetRun Unknown", func(t *testing.T) {
		_, err := store.GetRun(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStore_Migrate_Columns(t *testing.T) {
	store := setupSQLite(t)
	missing, err := database.MissingColumns(store.db, "merge_records", recordColumns)
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestStore_SaveReport_MySQL(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `merge_runs`")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `merge_records`")).WillReturnResult(sqlmock.NewResult(1, 2))
	mock.ExpectCommit()

	err := store.SaveReport(context.Background(), report("run-1", time.Now()))
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SaveReport_RollsBack(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `merge_runs`")).WillReturnError(errors.New("duplicate entry"))
	mock.ExpectRollback()

	err := store.SaveReport(context.Background(), report("run-1", time.Now()))
	assert.ErrorContains(t, err, "failed to save merge run")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListRuns_MySQL(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	rows := sqlmock.NewRows([]string{"id", "kind", "relative_path"}).
		AddRow("a", "model", "chr/c1000.flver.dcx")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `merge_runs` ORDER BY started_at DESC LIMIT ?")).
		WithArgs(50).
		WillReturnRows(rows)

	runs, err := store.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "chr/c1000.flver.dcx", runs[0].RelativePath)
	assert.NoError(t, mock.ExpectationsWereMet())
}
