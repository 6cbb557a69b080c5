package command

import (
	"context"
	"time"

	"github.com/hafalan-hub/hafalan-engine/internal/domain/journal"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/shared"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/target"
)

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE STATUS COMMAND
// Advances a target one step along its lifecycle. The transition into
// MEMORIZED_SELF_REVIEW generates the murojaah cadence anchored at today.
// ══════════════════════════════════════════════════════════════════════════════

// UpdateStatusCommand moves a target to the next lifecycle state.
type UpdateStatusCommand struct {
	TargetID string
	Status   target.Status
}

// Validate validates the command.
func (c UpdateStatusCommand) Validate() error {
	if c.TargetID == "" {
		return shared.NewDomainError("command", "UpdateStatus", shared.ErrInvalidID, "target id is required")
	}
	if !c.Status.IsValid() {
		return shared.NewDomainError("command", "UpdateStatus", shared.ErrInvalidInput, "unknown status")
	}
	return nil
}

// UpdateStatusResult reports the transition outcome.
type UpdateStatusResult struct {
	TargetID string
	Status   target.Status

	// Changed is false for a same-state no-op.
	Changed bool

	// ScheduleGenerated is true when this transition created the murojaah
	// cadence.
	ScheduleGenerated bool

	Events []shared.Event
}

// UpdateStatusHandler handles the UpdateStatusCommand.
type UpdateStatusHandler struct {
	deps Dependencies
}

// NewUpdateStatusHandler creates a new UpdateStatusHandler.
func NewUpdateStatusHandler(deps Dependencies) *UpdateStatusHandler {
	return &UpdateStatusHandler{deps: deps}
}

// Handle executes the update status command.
func (h *UpdateStatusHandler) Handle(ctx context.Context, cmd UpdateStatusCommand) (*UpdateStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	result := &UpdateStatusResult{TargetID: cmd.TargetID, Status: cmd.Status}

	_, events, err := h.deps.mutate(ctx, "update_status", func(j *journal.Journal, now time.Time) ([]shared.Event, error) {
		t, err := j.FindTarget(cmd.TargetID)
		if err != nil {
			return nil, err
		}

		previous := t.Status
		scheduleBefore := len(t.Reviews)

		changed, err := t.ChangeStatus(cmd.Status, now)
		if err != nil {
			return nil, err
		}
		result.Changed = changed
		result.ScheduleGenerated = len(t.Reviews) > scheduleBefore
		if !changed {
			return nil, nil
		}
		j.UpdatedAt = now

		return []shared.Event{shared.NewTargetStatusChangedEvent(
			cmd.TargetID, string(previous), string(cmd.Status))}, nil
	})
	if err != nil {
		return nil, err
	}

	result.Events = events
	return result, nil
}
