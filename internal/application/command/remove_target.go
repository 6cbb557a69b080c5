package command

import (
	"context"
	"time"

	"github.com/hafalan-hub/hafalan-engine/internal/domain/journal"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// REMOVE TARGET COMMAND
// Deletes a target and its review history. Removing the active target
// clears the active pointer.
// ══════════════════════════════════════════════════════════════════════════════

// RemoveTargetCommand deletes a target.
type RemoveTargetCommand struct {
	TargetID string
}

// Validate validates the command.
func (c RemoveTargetCommand) Validate() error {
	if c.TargetID == "" {
		return shared.NewDomainError("command", "RemoveTarget", shared.ErrInvalidID, "target id is required")
	}
	return nil
}

// RemoveTargetResult reports the removal outcome.
type RemoveTargetResult struct {
	TargetID string

	// WasActive is true when the removed target was the active one.
	WasActive bool

	Events []shared.Event
}

// RemoveTargetHandler handles the RemoveTargetCommand.
type RemoveTargetHandler struct {
	deps Dependencies
}

// NewRemoveTargetHandler creates a new RemoveTargetHandler.
func NewRemoveTargetHandler(deps Dependencies) *RemoveTargetHandler {
	return &RemoveTargetHandler{deps: deps}
}

// Handle executes the remove target command.
func (h *RemoveTargetHandler) Handle(ctx context.Context, cmd RemoveTargetCommand) (*RemoveTargetResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	result := &RemoveTargetResult{TargetID: cmd.TargetID}

	_, events, err := h.deps.mutate(ctx, "remove_target", func(j *journal.Journal, now time.Time) ([]shared.Event, error) {
		wasActive := j.ActiveTargetID == cmd.TargetID
		if err := j.RemoveTarget(cmd.TargetID, now); err != nil {
			return nil, err
		}
		result.WasActive = wasActive

		return []shared.Event{shared.NewTargetRemovedEvent(cmd.TargetID, wasActive)}, nil
	})
	if err != nil {
		return nil, err
	}

	result.Events = events
	return result, nil
}
