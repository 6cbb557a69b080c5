package query

import (
	"context"

	"github.com/hafalan-hub/hafalan-engine/internal/domain/review"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/target"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET ACTIVE TARGET QUERY
// Returns the target currently in focus, its preparation readiness, and the
// schedule entry due today if one exists.
// ══════════════════════════════════════════════════════════════════════════════

// GetActiveTargetResult is the active-target view. Target is nil when no
// target is active.
type GetActiveTargetResult struct {
	Target *target.Target

	// Ready reports whether all preparation thresholds are crossed.
	Ready bool

	// DueToday is the schedule entry for today, if the cadence has one.
	DueToday    *review.Schedule
	HasDueToday bool
}

// GetActiveTargetHandler handles the active-target query.
type GetActiveTargetHandler struct {
	deps Dependencies
}

// NewGetActiveTargetHandler creates a new GetActiveTargetHandler.
func NewGetActiveTargetHandler(deps Dependencies) *GetActiveTargetHandler {
	return &GetActiveTargetHandler{deps: deps}
}

// Handle executes the active target query.
func (h *GetActiveTargetHandler) Handle(ctx context.Context) (*GetActiveTargetResult, error) {
	j, err := h.deps.Repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := &GetActiveTargetResult{}
	t := j.ActiveTarget()
	if t == nil {
		return result, nil
	}

	result.Target = t
	result.Ready = t.Preparation.Ready()

	if idx, ok := review.FindByDay(t.Reviews, h.deps.now()); ok {
		entry := t.Reviews[idx]
		result.DueToday = &entry
		result.HasDueToday = true
	}
	return result, nil
}
