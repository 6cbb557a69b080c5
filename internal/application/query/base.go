// Package query contains read operations (CQRS - Queries). Queries load the
// journal and derive views; they never mutate or save.
package query

import (
	"time"

	"github.com/hafalan-hub/hafalan-engine/config"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/journal"
)

// Dependencies bundles what every query handler needs.
type Dependencies struct {
	Repo journal.Repository

	// UrgencyEnabled gates urgency classification in the review queue.
	UrgencyEnabled bool

	// Clock overrides time.Now in tests.
	Clock func() time.Time
}

// NewDependencies fills in defaults.
func NewDependencies(repo journal.Repository) Dependencies {
	return Dependencies{
		Repo:           repo,
		UrgencyEnabled: true,
		Clock:          time.Now,
	}
}

// NewDependenciesFromConfig builds Dependencies with the configured feature
// flags applied.
func NewDependenciesFromConfig(cfg *config.Config, repo journal.Repository) Dependencies {
	deps := NewDependencies(repo)
	deps.UrgencyEnabled = cfg.Features.IsEnabled(config.FeatureMurojaahUrgency)
	return deps
}

func (d Dependencies) now() time.Time {
	if d.Clock != nil {
		return d.Clock()
	}
	return time.Now()
}
