package domain

import "time"

// Todo is an ownership-scoped item; only OwnerID may read or change it
// through the regular routes.
type Todo struct {
	ID          int64
	Title       string
	Description string
	Priority    int
	Completed   bool
	OwnerID     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Export describes a todo snapshot stored in object storage.
type Export struct {
	Key          string
	Size         int64
	LastModified *time.Time
}
