package housekeeping

import (
	"context"
	"errors"

	loopfsm "github.com/looplab/fsm"

	"github.com/acacia-hms/service-frontdesk/internal/domain"
)

// Compile-time check: FSMValidator implements TransitionValidator.
var _ TransitionValidator = (*FSMValidator)(nil)

// events converts Transitions into looplab/fsm EventDesc format, grouping
// transitions with the same event+destination into one EventDesc with
// multiple source states (cancel is reachable from pending and in_progress).
var events = buildEvents()

func buildEvents() []loopfsm.EventDesc {
	type key struct {
		event string
		dst   string
	}
	grouped := make(map[key][]string)
	order := make([]key, 0)

	for _, t := range Transitions {
		k := key{event: string(t.Event), dst: string(t.Dst)}
		if _, exists := grouped[k]; !exists {
			order = append(order, k)
		}
		grouped[k] = append(grouped[k], string(t.Src))
	}

	out := make([]loopfsm.EventDesc, 0, len(order))
	for _, k := range order {
		out = append(out, loopfsm.EventDesc{
			Name: k.event,
			Src:  grouped[k],
			Dst:  k.dst,
		})
	}
	return out
}

// FSMValidator implements TransitionValidator using looplab/fsm. A
// short-lived FSM instance is created per Apply call because looplab/fsm
// tracks the current state internally.
type FSMValidator struct{}

// NewFSMValidator creates a new FSM-backed transition validator.
func NewFSMValidator() *FSMValidator {
	return &FSMValidator{}
}

// Apply checks if the given event is valid from the current status and
// returns the destination status.
func (v *FSMValidator) Apply(current TaskStatus, event Event) (TaskStatus, error) {
	machine := loopfsm.NewFSM(string(current), events, nil)

	if err := machine.Event(context.Background(), string(event)); err != nil {
		var invalidEvent loopfsm.InvalidEventError
		var noTransition loopfsm.NoTransitionError
		if errors.As(err, &invalidEvent) || errors.As(err, &noTransition) {
			return "", domain.NewInvalidTransitionError(string(current), string(event))
		}
		return "", err
	}

	return TaskStatus(machine.Current()), nil
}
