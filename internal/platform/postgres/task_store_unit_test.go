package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockTaskStore(t *testing.T) (*PostgresTaskStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresTaskStore(db, nil), mock
}

func taskRows() *sqlmock.Rows {
	return sqlmock.NewRows(taskColumns)
}

func TestPostgresTaskStore_Create(t *testing.T) {
	s, mock := newMockTaskStore(t)
	owner := uuid.New()
	task, err := domain.NewTask(owner, domain.TaskDraft{Title: "Buy milk"})
	require.NoError(t, err)

	mock.ExpectQuery(`INSERT INTO tasks \(user_id,title,description,priority,status,created_at,updated_at\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6,\$7\) RETURNING id`).
		WithArgs(owner, "Buy milk", "", 1, "pending", task.CreatedAt, task.UpdatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	require.NoError(t, s.Create(context.Background(), task))
	assert.Equal(t, int64(42), task.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_Create_InvalidEntity(t *testing.T) {
	s, mock := newMockTaskStore(t)

	err := s.Create(context.Background(), &domain.Task{Title: "", Priority: 9})
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet(), "no query is issued for invalid tasks")
}

func TestPostgresTaskStore_Create_ForeignKeyViolation(t *testing.T) {
	s, mock := newMockTaskStore(t)
	task, err := domain.NewTask(uuid.New(), domain.TaskDraft{Title: "orphan"})
	require.NoError(t, err)

	mock.ExpectQuery(`INSERT INTO tasks`).
		WillReturnError(&pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "tasks_user_id_fkey"})

	err = s.Create(context.Background(), task)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestPostgresTaskStore_GetByID(t *testing.T) {
	s, mock := newMockTaskStore(t)
	owner := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT id, user_id, title, description, priority, status, created_at, updated_at FROM tasks WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(taskRows().AddRow(int64(7), owner.String(), "Write report", "q3", 2, "in_progress", now, now))

	task, err := s.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), task.ID)
	assert.True(t, task.IsOwnedBy(owner))
	assert.Equal(t, domain.StatusInProgress, task.Status)
	assert.Equal(t, 2, task.Priority)

	mock.ExpectQuery(`FROM tasks WHERE id = \$1`).
		WithArgs(int64(8)).
		WillReturnRows(taskRows().AddRow(int64(8), nil, "Orphan", "", 1, "pending", now, now))

	orphan, err := s.GetByID(context.Background(), 8)
	require.NoError(t, err)
	assert.False(t, orphan.UserID.Valid)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_GetByID_NotFound(t *testing.T) {
	s, mock := newMockTaskStore(t)

	mock.ExpectQuery(`FROM tasks WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	task, err := s.GetByID(context.Background(), 99)
	assert.Nil(t, task)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestPostgresTaskStore_ListByOwnerAndStatus(t *testing.T) {
	s, mock := newMockTaskStore(t)
	owner := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM tasks WHERE .*status IN \(\$1,\$2\).*user_id = \$3.* ORDER BY id`).
		WithArgs("pending", "in_progress", owner).
		WillReturnRows(taskRows().
			AddRow(int64(1), owner.String(), "a", "", 1, "pending", now, now).
			AddRow(int64(2), owner.String(), "b", "", 3, "in_progress", now, now))

	tasks, err := s.ListByOwnerAndStatus(context.Background(), owner, domain.ActiveStatuses()...)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, domain.StatusPending, tasks[0].Status)
	assert.Equal(t, domain.StatusInProgress, tasks[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_ListByOwnerAndStatus_EmptySet(t *testing.T) {
	s, mock := newMockTaskStore(t)

	tasks, err := s.ListByOwnerAndStatus(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, tasks)
	assert.NotNil(t, tasks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_ListByOwnerAndStatus_BadStatusInRow(t *testing.T) {
	s, mock := newMockTaskStore(t)
	owner := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM tasks`).
		WillReturnRows(taskRows().AddRow(int64(1), owner.String(), "a", "", 1, "archived", now, now))

	_, err := s.ListByOwnerAndStatus(context.Background(), owner, domain.StatusCompleted)
	assert.ErrorIs(t, err, domain.ErrInvalidTaskStatus)
}

func TestPostgresTaskStore_Update(t *testing.T) {
	s, mock := newMockTaskStore(t)
	task := &domain.Task{
		ID:        5,
		Title:     "Buy milk",
		Priority:  3,
		Status:    domain.StatusCompleted,
		UpdatedAt: time.Now().UTC(),
	}

	mock.ExpectExec(`UPDATE tasks SET description = \$1, priority = \$2, status = \$3, title = \$4, updated_at = \$5 WHERE id = \$6`).
		WithArgs("", 3, "completed", "Buy milk", task.UpdatedAt, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.Update(context.Background(), task))

	mock.ExpectExec(`UPDATE tasks`).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, s.Update(context.Background(), task), store.ErrTaskNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_Delete(t *testing.T) {
	s, mock := newMockTaskStore(t)

	mock.ExpectExec(`DELETE FROM tasks WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.Delete(context.Background(), 3))

	mock.ExpectExec(`DELETE FROM tasks WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, s.Delete(context.Background(), 3), store.ErrTaskNotFound)

	mock.ExpectExec(`DELETE FROM tasks`).WillReturnError(errors.New("connection reset"))
	err := s.Delete(context.Background(), 4)
	var storeErr *store.StoreError
	assert.ErrorAs(t, err, &storeErr)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_CountByOwnerAndStatus(t *testing.T) {
	s, mock := newMockTaskStore(t)
	owner := uuid.New()
	completed := domain.StatusCompleted

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tasks WHERE user_id = \$1 AND status = \$2`).
		WithArgs(owner, "completed").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	n, err := s.CountByOwnerAndStatus(context.Background(), owner, &completed)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tasks WHERE user_id = \$1$`).
		WithArgs(owner).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(9))
	n, err = s.CountByOwnerAndStatus(context.Background(), owner, nil)
	require.NoError(t, err)
	assert.Equal(t, 9, n)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_RunInTx(t *testing.T) {
	s, mock := newMockTaskStore(t)
	owner := uuid.New()
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM tasks WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(1)).
		WillReturnRows(taskRows().AddRow(int64(1), owner.String(), "a", "", 1, "pending", now, now))
	mock.ExpectExec(`DELETE FROM tasks WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.RunInTx(context.Background(), func(ctx context.Context, tasks store.TaskStore) error {
		task, err := tasks.GetByID(ctx, 1)
		if err != nil {
			return err
		}
		return tasks.Delete(ctx, task.ID)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_RunInTx_Rollback(t *testing.T) {
	s, mock := newMockTaskStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM tasks WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(2)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := s.RunInTx(context.Background(), func(ctx context.Context, tasks store.TaskStore) error {
		_, err := tasks.GetByID(ctx, 2)
		return err
	})
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
