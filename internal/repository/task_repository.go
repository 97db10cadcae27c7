package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/acacia-hms/service-frontdesk/internal/domain"
	"github.com/acacia-hms/service-frontdesk/internal/domain/housekeeping"
)

// TaskModel is the GORM model for the housekeeping_tasks table.
type TaskModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RoomID      uuid.UUID  `gorm:"type:uuid;index;not null"`
	AssignedTo  string     `gorm:"size:100;index"`
	Type        string     `gorm:"not null;size:20"`
	Status      string     `gorm:"not null;size:20;index"`
	Priority    string     `gorm:"not null;size:10"`
	Description string     `gorm:"size:500"`
	StartedAt   *time.Time `gorm:""`
	CompletedAt *time.Time `gorm:""`
	Version     int64      `gorm:"not null;default:1"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (TaskModel) TableName() string {
	return "housekeeping_tasks"
}

// GormTaskRepository is the GORM-based implementation of TaskRepository.
type GormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GormTaskRepository.
func NewGormTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

// FindByID retrieves a task by its unique identifier.
func (r *GormTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*housekeeping.Task, error) {
	var model TaskModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Task", id.String())
		}
		return nil, fmt.Errorf("failed to find task by ID: %w", err)
	}
	return toDomainTask(&model), nil
}

// FindByRoomID retrieves the tasks for a room, newest first.
func (r *GormTaskRepository) FindByRoomID(ctx context.Context, roomID uuid.UUID) ([]*housekeeping.Task, error) {
	var models []TaskModel
	if err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find room tasks: %w", err)
	}

	tasks := make([]*housekeeping.Task, len(models))
	for i, m := range models {
		tasks[i] = toDomainTask(&m)
	}
	return tasks, nil
}

// FindByAssignee retrieves the tasks assigned to a staff member with pagination.
func (r *GormTaskRepository) FindByAssignee(ctx context.Context, staff string, page, limit int) ([]*housekeeping.Task, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&TaskModel{}).Where("assigned_to = ?", staff).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count assignee tasks: %w", err)
	}

	var models []TaskModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("assigned_to = ?", staff).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find assignee tasks: %w", err)
	}

	return toDomainTasks(models, total)
}

// ListAll retrieves all tasks with pagination, optionally filtered by status.
func (r *GormTaskRepository) ListAll(ctx context.Context, status housekeeping.TaskStatus, page, limit int) ([]*housekeeping.Task, int64, error) {
	query := r.db.WithContext(ctx).Model(&TaskModel{})
	if status != "" {
		query = query.Where("status = ?", string(status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	var models []TaskModel
	offset := (page - 1) * limit
	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return toDomainTasks(models, total)
}

// Save persists a new task.
func (r *GormTaskRepository) Save(ctx context.Context, t *housekeeping.Task) error {
	if err := r.db.WithContext(ctx).Create(toTaskModel(t)).Error; err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

// Update persists changes to an existing task with optimistic locking.
func (r *GormTaskRepository) Update(ctx context.Context, t *housekeeping.Task) error {
	model := toTaskModel(t)

	expectedVersion := t.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&TaskModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"assigned_to":  model.AssignedTo,
			"status":       model.Status,
			"priority":     model.Priority,
			"description":  model.Description,
			"started_at":   model.StartedAt,
			"completed_at": model.CompletedAt,
			"version":      model.Version,
			"updated_at":   model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("task was modified by another transaction")
	}
	return nil
}

// Delete removes a task permanently.
func (r *GormTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&TaskModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Task", id.String())
	}
	return nil
}

// --- Conversion Helpers ---

func toTaskModel(t *housekeeping.Task) *TaskModel {
	return &TaskModel{
		ID:          t.ID(),
		RoomID:      t.RoomID(),
		AssignedTo:  t.AssignedTo(),
		Type:        string(t.Type()),
		Status:      string(t.Status()),
		Priority:    string(t.Priority()),
		Description: t.Description(),
		StartedAt:   t.StartedAt(),
		CompletedAt: t.CompletedAt(),
		Version:     t.Version(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}

func toDomainTask(m *TaskModel) *housekeeping.Task {
	return housekeeping.Reconstruct(
		m.ID, m.RoomID,
		m.AssignedTo,
		housekeeping.TaskType(m.Type),
		housekeeping.TaskStatus(m.Status),
		housekeeping.Priority(m.Priority),
		m.Description,
		m.StartedAt, m.CompletedAt,
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	)
}

func toDomainTasks(models []TaskModel, total int64) ([]*housekeeping.Task, int64, error) {
	tasks := make([]*housekeeping.Task, len(models))
	for i, m := range models {
		tasks[i] = toDomainTask(&m)
	}
	return tasks, total, nil
}
