package query

import (
	"context"

	"github.com/hafalan-hub/hafalan-engine/internal/domain/achievement"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/stats"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET STATISTICS QUERY
// Returns the derived dashboard numbers plus the full unlocked achievement
// list gathered across targets.
// ══════════════════════════════════════════════════════════════════════════════

// GetStatisticsResult is the dashboard view.
type GetStatisticsResult struct {
	Statistics stats.Statistics

	TotalTargets     int
	MemorizedTargets int

	Achievements []achievement.Achievement
}

// GetStatisticsHandler handles the statistics query.
type GetStatisticsHandler struct {
	deps Dependencies
}

// NewGetStatisticsHandler creates a new GetStatisticsHandler.
func NewGetStatisticsHandler(deps Dependencies) *GetStatisticsHandler {
	return &GetStatisticsHandler{deps: deps}
}

// Handle executes the statistics query.
func (h *GetStatisticsHandler) Handle(ctx context.Context) (*GetStatisticsResult, error) {
	j, err := h.deps.Repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := &GetStatisticsResult{
		Statistics:   j.Statistics,
		TotalTargets: len(j.Targets),
	}
	for _, t := range j.Targets {
		if t.Status.IsMemorized() {
			result.MemorizedTargets++
		}
		result.Achievements = append(result.Achievements, t.Achievements...)
	}
	return result, nil
}
