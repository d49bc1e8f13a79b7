package domain

// Task is a single to-do item owned by exactly one user. Date is the
// ISO-8601 UTC creation timestamp, set once on insert and never changed.
type Task struct {
	ID        string `json:"id" db:"id"`
	Text      string `json:"text" db:"text"`
	Completed bool   `json:"completed" db:"completed"`
	Date      string `json:"date" db:"date"`
}

// Task list status filters.
const (
	StatusAll       = "all"
	StatusCompleted = "completed"
	StatusPending   = "pending"
)
