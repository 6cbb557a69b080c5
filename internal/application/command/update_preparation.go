package command

import (
	"context"
	"time"

	"github.com/hafalan-hub/hafalan-engine/internal/domain/journal"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/shared"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/target"
)

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE PREPARATION COMMAND
// Sets one of the three preparation counters to an absolute value. The UI
// sends running totals, not deltas.
// ══════════════════════════════════════════════════════════════════════════════

// UpdatePreparationCommand sets a preparation counter.
type UpdatePreparationCommand struct {
	TargetID string
	Kind     target.PreparationKind
	Value    int
}

// Validate validates the command.
func (c UpdatePreparationCommand) Validate() error {
	if c.TargetID == "" {
		return shared.NewDomainError("command", "UpdatePreparation", shared.ErrInvalidID, "target id is required")
	}
	if !c.Kind.IsValid() {
		return shared.NewDomainError("command", "UpdatePreparation", shared.ErrInvalidInput, "unknown preparation kind")
	}
	if c.Value < 0 {
		return shared.NewDomainError("command", "UpdatePreparation", shared.ErrValueOutOfRange, "preparation value cannot be negative")
	}
	return nil
}

// UpdatePreparationResult reports the counter state after the update.
type UpdatePreparationResult struct {
	TargetID    string
	Preparation target.Preparation

	// Ready is true when all three counters crossed their thresholds.
	Ready bool
}

// UpdatePreparationHandler handles the UpdatePreparationCommand.
type UpdatePreparationHandler struct {
	deps Dependencies
}

// NewUpdatePreparationHandler creates a new UpdatePreparationHandler.
func NewUpdatePreparationHandler(deps Dependencies) *UpdatePreparationHandler {
	return &UpdatePreparationHandler{deps: deps}
}

// Handle executes the update preparation command.
func (h *UpdatePreparationHandler) Handle(ctx context.Context, cmd UpdatePreparationCommand) (*UpdatePreparationResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	result := &UpdatePreparationResult{TargetID: cmd.TargetID}

	_, _, err := h.deps.mutate(ctx, "update_preparation", func(j *journal.Journal, now time.Time) ([]shared.Event, error) {
		t, err := j.FindTarget(cmd.TargetID)
		if err != nil {
			return nil, err
		}
		if err := t.SetPreparation(cmd.Kind, cmd.Value, now); err != nil {
			return nil, err
		}
		j.UpdatedAt = now

		result.Preparation = t.Preparation
		result.Ready = t.Preparation.Ready()
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
