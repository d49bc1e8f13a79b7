package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"devboard/internal/domain"
	"devboard/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func connectDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)

	applyMigrations(t, db)
	return db
}

func createTask(t *testing.T, repo *repository.TaskRepository, email, date string) {
	t.Helper()
	task := &domain.Task{ID: uuid.NewString(), Text: "task at " + date, Date: date}
	if err := repo.Create(context.Background(), email, task); err != nil {
		t.Fatalf("create task: %v", err)
	}
}

// The end bound must take in the whole end day: a task timestamped late on
// endDate sorts after the bare date string, so the comparison runs against
// the real column collation, not a Go re-implementation.
func TestTaskRepository_List_EndDateIncludesWholeDay(t *testing.T) {
	db := connectDB(t)

	users := repository.NewUserRepository(db)
	tasks := repository.NewTaskRepository(db)

	email := uuid.NewString() + "@example.com"
	if err := users.Create(context.Background(), email, "hash"); err != nil {
		t.Fatalf("create user: %v", err)
	}

	createTask(t, tasks, email, "2024-06-01T09:00:00Z")
	createTask(t, tasks, email, "2024-06-01T23:59:00Z")
	createTask(t, tasks, email, "2024-06-02T00:00:01Z")

	got, err := tasks.List(context.Background(), email, domain.StatusAll, "2024-06-01", "2024-06-01")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 tasks within 2024-06-01, got %d", len(got))
	}
	for _, task := range got {
		if task.Date >= "2024-06-02" {
			t.Fatalf("task %s leaked past the end bound", task.Date)
		}
	}
}

func TestTaskRepository_List_StatusAndOrder(t *testing.T) {
	db := connectDB(t)

	users := repository.NewUserRepository(db)
	tasks := repository.NewTaskRepository(db)

	email := uuid.NewString() + "@example.com"
	if err := users.Create(context.Background(), email, "hash"); err != nil {
		t.Fatalf("create user: %v", err)
	}

	createTask(t, tasks, email, "2024-06-02T08:00:00Z")
	createTask(t, tasks, email, "2024-06-01T08:00:00Z")

	got, err := tasks.List(context.Background(), email, domain.StatusPending, "", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 pending tasks, got %d", len(got))
	}
	if got[0].Date > got[1].Date {
		t.Fatalf("tasks out of date order: %s before %s", got[0].Date, got[1].Date)
	}

	done, err := tasks.Toggle(context.Background(), email, got[0].ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !done {
		t.Fatalf("expected toggle to complete the task")
	}

	got, err = tasks.List(context.Background(), email, domain.StatusCompleted, "", "")
	if err != nil {
		t.Fatalf("list completed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 completed task, got %d", len(got))
	}
}
