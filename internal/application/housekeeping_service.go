package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/acacia-hms/service-frontdesk/internal/domain"
	"github.com/acacia-hms/service-frontdesk/internal/domain/housekeeping"
	roomDomain "github.com/acacia-hms/service-frontdesk/internal/domain/room"
	"github.com/acacia-hms/service-frontdesk/internal/events"
	"github.com/acacia-hms/service-frontdesk/internal/platform/kafka"
)

// CreateTaskRequest holds the data needed to open a housekeeping task.
type CreateTaskRequest struct {
	RoomID      uuid.UUID `json:"room_id" binding:"required"`
	AssignedTo  string    `json:"assigned_to"`
	Type        string    `json:"type" binding:"required"`
	Priority    string    `json:"priority"`
	Description string    `json:"description"`
}

// TaskActor identifies who is driving a task transition. Restricted actors
// (housekeeping staff) may only act on tasks assigned to them or on tasks
// with no assignee yet, such as the ones the checkout consumer opens.
// Supervisors pass an unrestricted actor.
type TaskActor struct {
	Staff      string
	Restricted bool
}

func (a TaskActor) mayAct(task *housekeeping.Task) error {
	if a.Restricted && task.AssignedTo() != "" && !task.IsAssignedTo(a.Staff) {
		return domain.NewForbiddenError("task is assigned to another housekeeper")
	}
	return nil
}

// TaskDTO is the response representation of a housekeeping task.
type TaskDTO struct {
	ID          uuid.UUID  `json:"id"`
	RoomID      uuid.UUID  `json:"room_id"`
	AssignedTo  string     `json:"assigned_to,omitempty"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Description string     `json:"description,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Version     int64      `json:"version"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// HousekeepingService manages housekeeping tasks. Completing a cleaning task
// is what returns a room from cleaning to available, closing the loop that
// checkout opens.
type HousekeepingService struct {
	uow       UnitOfWork
	validator housekeeping.TransitionValidator
	producer  *kafka.Producer
	logger    *zap.Logger
}

// NewHousekeepingService creates a new HousekeepingService.
func NewHousekeepingService(
	uow UnitOfWork,
	validator housekeeping.TransitionValidator,
	producer *kafka.Producer,
	logger *zap.Logger,
) *HousekeepingService {
	return &HousekeepingService{
		uow:       uow,
		validator: validator,
		producer:  producer,
		logger:    logger,
	}
}

// CreateTask opens a housekeeping task for a room.
func (s *HousekeepingService) CreateTask(ctx context.Context, req CreateTaskRequest) (*TaskDTO, error) {
	priority := housekeeping.PriorityMedium
	if req.Priority != "" {
		priority = housekeeping.Priority(req.Priority)
	}

	var task *housekeeping.Task
	err := s.uow.WithinTx(ctx, func(repos Repositories) error {
		if _, err := repos.Rooms.FindByID(ctx, req.RoomID); err != nil {
			return err
		}

		var err error
		task, err = housekeeping.NewTask(req.RoomID, req.AssignedTo, housekeeping.TaskType(req.Type), priority, req.Description)
		if err != nil {
			return err
		}
		return repos.Tasks.Save(ctx, task)
	})
	if err != nil {
		return nil, err
	}

	result := toTaskDTO(task)
	return &result, nil
}

// CreateCheckoutTask opens a high-priority cleaning task after a checkout.
// It is idempotent for the consumer's at-least-once delivery: if a pending
// or in-progress cleaning task already exists for the room, nothing new is
// created.
func (s *HousekeepingService) CreateCheckoutTask(ctx context.Context, roomID uuid.UUID, roomNumber string) error {
	return s.uow.WithinTx(ctx, func(repos Repositories) error {
		open, err := repos.Tasks.FindByRoomID(ctx, roomID)
		if err != nil {
			return err
		}
		for _, t := range open {
			if t.Type() == housekeeping.TaskCleaning &&
				(t.Status() == housekeeping.StatusPending || t.Status() == housekeeping.StatusInProgress) {
				s.logger.Debug("cleaning task already open, skipping",
					zap.String("room_number", roomNumber),
				)
				return nil
			}
		}

		task, err := housekeeping.NewTask(
			roomID, "",
			housekeeping.TaskCleaning, housekeeping.PriorityHigh,
			fmt.Sprintf("post-checkout cleaning for room %s", roomNumber),
		)
		if err != nil {
			return err
		}
		if err := repos.Tasks.Save(ctx, task); err != nil {
			return err
		}

		s.logger.Info("checkout cleaning task created",
			zap.String("room_number", roomNumber),
			zap.String("task_id", task.ID().String()),
		)
		return nil
	})
}

// GetTask retrieves a task by ID.
func (s *HousekeepingService) GetTask(ctx context.Context, taskID uuid.UUID) (*TaskDTO, error) {
	task, err := s.uow.Repos().Tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	result := toTaskDTO(task)
	return &result, nil
}

// ListTasks returns paginated tasks, optionally filtered by status.
func (s *HousekeepingService) ListTasks(ctx context.Context, status string, page, limit int) (*domain.PaginatedResult[TaskDTO], error) {
	var statusFilter housekeeping.TaskStatus
	if status != "" {
		statusFilter = housekeeping.TaskStatus(status)
	}

	tasks, total, err := s.uow.Repos().Tasks.ListAll(ctx, statusFilter, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = toTaskDTO(t)
	}
	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// ListTasksByAssignee returns the paginated tasks assigned to a staff member.
func (s *HousekeepingService) ListTasksByAssignee(ctx context.Context, staff string, page, limit int) (*domain.PaginatedResult[TaskDTO], error) {
	tasks, total, err := s.uow.Repos().Tasks.FindByAssignee(ctx, staff, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = toTaskDTO(t)
	}
	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// StartTask moves a pending task to in_progress.
func (s *HousekeepingService) StartTask(ctx context.Context, taskID uuid.UUID, actor TaskActor) (*TaskDTO, error) {
	return s.advance(ctx, taskID, housekeeping.EventStart, actor)
}

// CompleteTask finishes a task. For cleaning tasks whose room is in the
// cleaning state, the room returns to available in the same transaction.
func (s *HousekeepingService) CompleteTask(ctx context.Context, taskID uuid.UUID, actor TaskActor) (*TaskDTO, error) {
	var task *housekeeping.Task
	err := s.uow.WithinTx(ctx, func(repos Repositories) error {
		var err error
		task, err = repos.Tasks.FindByID(ctx, taskID)
		if err != nil {
			return err
		}
		if err := actor.mayAct(task); err != nil {
			return err
		}

		if err := task.Advance(s.validator, housekeeping.EventComplete); err != nil {
			return err
		}
		task.IncrementVersion()
		if err := repos.Tasks.Update(ctx, task); err != nil {
			return err
		}

		if task.Type() != housekeeping.TaskCleaning {
			return nil
		}
		rm, err := repos.Rooms.FindByID(ctx, task.RoomID())
		if err != nil {
			return err
		}
		if rm.Status() != roomDomain.StatusCleaning {
			return nil
		}
		rm.MarkAvailable()
		return repos.Rooms.Update(ctx, rm)
	})
	if err != nil {
		return nil, err
	}

	evt := events.TaskCompletedEvent{
		TaskID:     task.ID(),
		RoomID:     task.RoomID(),
		TaskType:   string(task.Type()),
		AssignedTo: task.AssignedTo(),
		OccurredAt: time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicHousekeepingEvents, events.TaskCompleted, evt)

	result := toTaskDTO(task)
	return &result, nil
}

// CancelTask cancels a pending or in-progress task. Cancellation is a
// supervisor operation, so no actor restriction applies.
func (s *HousekeepingService) CancelTask(ctx context.Context, taskID uuid.UUID) (*TaskDTO, error) {
	return s.advance(ctx, taskID, housekeeping.EventCancel, TaskActor{})
}

// ReassignTask hands a task to another staff member.
func (s *HousekeepingService) ReassignTask(ctx context.Context, taskID uuid.UUID, staff string) (*TaskDTO, error) {
	if staff == "" {
		return nil, domain.NewValidationError("assignee is required")
	}

	var task *housekeeping.Task
	err := s.uow.WithinTx(ctx, func(repos Repositories) error {
		var err error
		task, err = repos.Tasks.FindByID(ctx, taskID)
		if err != nil {
			return err
		}
		task.Reassign(staff)
		task.IncrementVersion()
		return repos.Tasks.Update(ctx, task)
	})
	if err != nil {
		return nil, err
	}
	result := toTaskDTO(task)
	return &result, nil
}

func (s *HousekeepingService) advance(ctx context.Context, taskID uuid.UUID, event housekeeping.Event, actor TaskActor) (*TaskDTO, error) {
	var task *housekeeping.Task
	err := s.uow.WithinTx(ctx, func(repos Repositories) error {
		var err error
		task, err = repos.Tasks.FindByID(ctx, taskID)
		if err != nil {
			return err
		}
		if err := actor.mayAct(task); err != nil {
			return err
		}
		if err := task.Advance(s.validator, event); err != nil {
			return err
		}
		task.IncrementVersion()
		return repos.Tasks.Update(ctx, task)
	})
	if err != nil {
		return nil, err
	}
	result := toTaskDTO(task)
	return &result, nil
}

func (s *HousekeepingService) publishEvent(ctx context.Context, topic, eventType string, data interface{}) {
	cloudEvent, err := kafka.NewCloudEvent("service-frontdesk", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, topic, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func toTaskDTO(t *housekeeping.Task) TaskDTO {
	return TaskDTO{
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
