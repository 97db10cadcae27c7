package housekeeping

import (
	"context"

	"github.com/google/uuid"
)

// TaskRepository defines persistence operations for housekeeping tasks.
type TaskRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	FindByRoomID(ctx context.Context, roomID uuid.UUID) ([]*Task, error)
	FindByAssignee(ctx context.Context, staff string, page, limit int) ([]*Task, int64, error)
	ListAll(ctx context.Context, status TaskStatus, page, limit int) ([]*Task, int64, error)
	Save(ctx context.Context, task *Task) error
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id uuid.UUID) error
}
