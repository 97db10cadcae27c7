package housekeeping

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acacia-hms/service-frontdesk/internal/domain"
)

func TestFSMValidator_Apply(t *testing.T) {
	v := NewFSMValidator()

	tests := []struct {
		name    string
		current TaskStatus
		event   Event
		want    TaskStatus
		wantErr bool
	}{
		{"start pending", StatusPending, EventStart, StatusInProgress, false},
		{"complete in progress", StatusInProgress, EventComplete, StatusCompleted, false},
		{"cancel pending", StatusPending, EventCancel, StatusCancelled, false},
		{"cancel in progress", StatusInProgress, EventCancel, StatusCancelled, false},
		{"complete pending", StatusPending, EventComplete, "", true},
		{"start in progress", StatusInProgress, EventStart, "", true},
		{"restart completed", StatusCompleted, EventStart, "", true},
		{"complete completed", StatusCompleted, EventComplete, "", true},
		{"start cancelled", StatusCancelled, EventStart, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Apply(tt.current, tt.event)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, domain.IsCode(err, "INVALID_TRANSITION"))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTask_Advance(t *testing.T) {
	v := NewFSMValidator()

	task, err := NewTask(uuid.New(), "staff-7", TaskCleaning, PriorityHigh, "post-checkout cleaning")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, task.Status())

	require.NoError(t, task.Advance(v, EventStart))
	assert.Equal(t, StatusInProgress, task.Status())
	assert.NotNil(t, task.StartedAt())
	assert.Nil(t, task.CompletedAt())

	require.NoError(t, task.Advance(v, EventComplete))
	assert.Equal(t, StatusCompleted, task.Status())
	assert.NotNil(t, task.CompletedAt())

	// Completed is terminal.
	err = task.Advance(v, EventStart)
	assert.True(t, domain.IsCode(err, "INVALID_TRANSITION"))
	assert.Equal(t, StatusCompleted, task.Status())
}

func TestNewTask_Validation(t *testing.T) {
	t.Run("missing room", func(t *testing.T) {
		_, err := NewTask(uuid.Nil, "", TaskCleaning, PriorityMedium, "")
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := NewTask(uuid.New(), "", "gardening", PriorityMedium, "")
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})

	t.Run("unknown priority", func(t *testing.T) {
		_, err := NewTask(uuid.New(), "", TaskCleaning, "urgent", "")
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})
}

func TestTask_Reassign(t *testing.T) {
	task, err := NewTask(uuid.New(), "staff-7", TaskInspection, PriorityLow, "")
	require.NoError(t, err)

	task.Reassign("staff-9")
	assert.True(t, task.IsAssignedTo("staff-9"))
	assert.False(t, task.IsAssignedTo("staff-7"))
}
