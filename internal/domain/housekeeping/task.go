package housekeeping

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/acacia-hms/service-frontdesk/internal/domain"
)

// TaskType is the kind of work a housekeeping task covers.
type TaskType string

const (
	TaskCleaning    TaskType = "cleaning"
	TaskMaintenance TaskType = "maintenance"
	TaskInspection  TaskType = "inspection"
)

// IsValid returns true if the task type is recognized.
func (t TaskType) IsValid() bool {
	switch t {
	case TaskCleaning, TaskMaintenance, TaskInspection:
		return true
	}
	return false
}

// Priority ranks how urgently a task should be picked up.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// IsValid returns true if the priority is recognized.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// TaskStatus is the state of a housekeeping task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
)

// Event names a requested task transition.
type Event string

const (
	EventStart    Event = "start"
	EventComplete Event = "complete"
	EventCancel   Event = "cancel"
)

// Transition is one allowed edge of the task state machine.
type Transition struct {
	Event Event
	Src   TaskStatus
	Dst   TaskStatus
}

// Transitions is the full task state machine: pending -> in_progress ->
// completed, with cancellation possible until the work is done.
var Transitions = []Transition{
	{Event: EventStart, Src: StatusPending, Dst: StatusInProgress},
	{Event: EventComplete, Src: StatusInProgress, Dst: StatusCompleted},
	{Event: EventCancel, Src: StatusPending, Dst: StatusCancelled},
	{Event: EventCancel, Src: StatusInProgress, Dst: StatusCancelled},
}

// TransitionValidator checks whether an event is allowed from the current
// status and yields the destination status.
type TransitionValidator interface {
	Apply(current TaskStatus, event Event) (TaskStatus, error)
}

// Task is the aggregate root for a housekeeping work item.
type Task struct {
	id          uuid.UUID
	roomID      uuid.UUID
	assignedTo  string
	taskType    TaskType
	status      TaskStatus
	priority    Priority
	description string
	startedAt   *time.Time
	completedAt *time.Time
	version     int64
	createdAt   time.Time
	updatedAt   time.Time
}

// NewTask creates a pending housekeeping task for a room.
func NewTask(roomID uuid.UUID, assignedTo string, taskType TaskType, priority Priority, description string) (*Task, error) {
	if roomID == uuid.Nil {
		return nil, domain.NewValidationError("room ID is required")
	}
	if !taskType.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid task type: %s", taskType))
	}
	if !priority.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid priority: %s", priority))
	}

	now := time.Now().UTC()
	return &Task{
		id:          uuid.New(),
		roomID:      roomID,
		assignedTo:  assignedTo,
		taskType:    taskType,
		status:      StatusPending,
		priority:    priority,
		description: description,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds a Task from persistence data (no validation).
func Reconstruct(
	id, roomID uuid.UUID,
	assignedTo string,
	taskType TaskType,
	status TaskStatus,
	priority Priority,
	description string,
	startedAt, completedAt *time.Time,
	version int64,
	createdAt, updatedAt time.Time,
) *Task {
	return &Task{
		id:          id,
		roomID:      roomID,
		assignedTo:  assignedTo,
		taskType:    taskType,
		status:      status,
		priority:    priority,
		description: description,
		startedAt:   startedAt,
		completedAt: completedAt,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// --- Getters ---

func (t *Task) ID() uuid.UUID           { return t.id }
func (t *Task) RoomID() uuid.UUID       { return t.roomID }
func (t *Task) AssignedTo() string      { return t.assignedTo }
func (t *Task) Type() TaskType          { return t.taskType }
func (t *Task) Status() TaskStatus      { return t.status }
func (t *Task) Priority() Priority      { return t.priority }
func (t *Task) Description() string     { return t.description }
func (t *Task) StartedAt() *time.Time   { return t.startedAt }
func (t *Task) CompletedAt() *time.Time { return t.completedAt }
func (t *Task) Version() int64          { return t.version }
func (t *Task) CreatedAt() time.Time    { return t.createdAt }
func (t *Task) UpdatedAt() time.Time    { return t.updatedAt }

// IsAssignedTo reports whether the task belongs to the given housekeeper.
func (t *Task) IsAssignedTo(staff string) bool {
	return t.assignedTo == staff
}

// --- Behavior ---

// Advance applies the event through the validator and moves the task to the
// resulting status.
func (t *Task) Advance(v TransitionValidator, event Event) error {
	next, err := v.Apply(t.status, event)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	switch next {
	case StatusInProgress:
		t.startedAt = &now
	case StatusCompleted:
		t.completedAt = &now
	}
	t.status = next
	t.updatedAt = now
	return nil
}

// Reassign hands the task to a different housekeeper.
func (t *Task) Reassign(staff string) {
	t.assignedTo = staff
	t.updatedAt = time.Now().UTC()
}

// IncrementVersion bumps the version for optimistic locking.
func (t *Task) IncrementVersion() {
	t.version++
	t.updatedAt = time.Now().UTC()
}
