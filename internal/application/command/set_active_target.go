package command

import (
	"context"
	"time"

	"github.com/hafalan-hub/hafalan-engine/internal/domain/journal"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/shared"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/target"
)

// ══════════════════════════════════════════════════════════════════════════════
// SET ACTIVE TARGET COMMAND
// Designates at most one target as the active focus. Activating a PLANNED
// target starts it; an empty id clears the pointer.
// ══════════════════════════════════════════════════════════════════════════════

// SetActiveTargetCommand selects the active target.
type SetActiveTargetCommand struct {
	// TargetID is the target to activate. Empty clears the active pointer.
	TargetID string
}

// SetActiveTargetResult reports the outcome.
type SetActiveTargetResult struct {
	TargetID string

	// Started is true when activation transitioned the target from
	// PLANNED to IN_PROGRESS.
	Started bool

	Events []shared.Event
}

// SetActiveTargetHandler handles the SetActiveTargetCommand.
type SetActiveTargetHandler struct {
	deps Dependencies
}

// NewSetActiveTargetHandler creates a new SetActiveTargetHandler.
func NewSetActiveTargetHandler(deps Dependencies) *SetActiveTargetHandler {
	return &SetActiveTargetHandler{deps: deps}
}

// Handle executes the set active target command.
func (h *SetActiveTargetHandler) Handle(ctx context.Context, cmd SetActiveTargetCommand) (*SetActiveTargetResult, error) {
	result := &SetActiveTargetResult{TargetID: cmd.TargetID}

	_, events, err := h.deps.mutate(ctx, "set_active_target", func(j *journal.Journal, now time.Time) ([]shared.Event, error) {
		started, err := j.SetActive(cmd.TargetID, now)
		if err != nil {
			return nil, err
		}
		result.Started = started

		if cmd.TargetID == "" {
			return nil, nil
		}

		events := []shared.Event{shared.NewTargetActivatedEvent(cmd.TargetID)}
		if started {
			events = append(events, shared.NewTargetStatusChangedEvent(
				cmd.TargetID, string(target.StatusPlanned), string(target.StatusInProgress)))
		}
		return events, nil
	})
	if err != nil {
		return nil, err
	}

	result.Events = events
	return result, nil
}
