// Package command contains write operations (CQRS - Commands).
//
// Every handler follows the same shape: load the journal, clone it, apply the
// mutation to the clone, recalculate statistics, evaluate achievements, save,
// then publish the collected domain events. The clone is what makes a failed
// save harmless; the caller's loaded journal is never touched.
package command

import (
	"context"
	"fmt"
	"time"

	"github.com/hafalan-hub/hafalan-engine/config"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/achievement"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/journal"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/shared"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/stats"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/target"
)

// Dependencies bundles what every command handler needs.
type Dependencies struct {
	Repo      journal.Repository
	Engine    *stats.Engine
	Publisher shared.EventPublisher

	// QualityRules gates the review-quality achievement rules.
	QualityRules bool

	// Clock overrides time.Now in tests.
	Clock func() time.Time
}

// NewDependencies fills in defaults.
func NewDependencies(repo journal.Repository, engine *stats.Engine, publisher shared.EventPublisher) Dependencies {
	if engine == nil {
		engine = stats.NewEngine()
	}
	return Dependencies{
		Repo:         repo,
		Engine:       engine,
		Publisher:    publisher,
		QualityRules: true,
		Clock:        time.Now,
	}
}

// NewDependenciesFromConfig builds Dependencies with the configured feature
// flags applied: the legacy ayah-count formula on the statistics engine and
// the quality achievement rule gate.
func NewDependenciesFromConfig(cfg *config.Config, repo journal.Repository, publisher shared.EventPublisher) Dependencies {
	engine := stats.NewEngine()
	engine.UseApproximateCount = cfg.Features.IsEnabled(config.FeatureApproximateAyahCount)

	deps := NewDependencies(repo, engine, publisher)
	deps.QualityRules = cfg.Features.IsEnabled(config.FeatureAchievementQualityRules)
	return deps
}

func (d Dependencies) now() time.Time {
	if d.Clock != nil {
		return d.Clock()
	}
	return time.Now()
}

// mutateFunc applies one command's change to the cloned journal and returns
// the domain events it produced.
type mutateFunc func(j *journal.Journal, now time.Time) ([]shared.Event, error)

// mutate runs the load-clone-apply-recalculate-save cycle shared by all
// commands.
func (d Dependencies) mutate(ctx context.Context, op string, fn mutateFunc) (*journal.Journal, []shared.Event, error) {
	loaded, err := d.Repo.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: load journal: %w", op, err)
	}

	now := d.now()
	next := loaded.Clone()

	events, err := fn(next, now)
	if err != nil {
		return nil, nil, err
	}

	next.Recalculate(d.Engine, now)
	events = append(events, d.unlockAchievements(next, now)...)

	if err := d.Repo.Save(ctx, next); err != nil {
		return nil, nil, fmt.Errorf("%s: save journal: %w", op, err)
	}

	d.publish(events)
	return next, events, nil
}

// unlockAchievements evaluates the rule table against the recalculated
// statistics. Earned achievements attach to the active target, falling back
// to the most recently updated one; a journal with no targets cannot earn
// anything since all metrics derive from target activity.
func (d Dependencies) unlockAchievements(j *journal.Journal, now time.Time) []shared.Event {
	holder := j.ActiveTarget()
	if holder == nil {
		holder = latestTarget(j)
	}
	if holder == nil {
		return nil
	}

	var existing []achievement.Achievement
	for _, t := range j.Targets {
		existing = append(existing, t.Achievements...)
	}

	fresh := achievement.Check(j.Statistics.Metrics(), existing, now)
	if !d.QualityRules {
		fresh = withoutQuality(fresh)
	}
	if len(fresh) == 0 {
		return nil
	}

	holder.Unlock(fresh, now)

	events := make([]shared.Event, 0, len(fresh))
	for _, a := range fresh {
		events = append(events, shared.NewAchievementUnlockedEvent(holder.ID, a.RuleID, a.Name))
	}
	return events
}

func latestTarget(j *journal.Journal) *target.Target {
	var latest *target.Target
	for _, t := range j.Targets {
		if latest == nil || t.UpdatedAt.After(latest.UpdatedAt) {
			latest = t
		}
	}
	return latest
}

func withoutQuality(fresh []achievement.Achievement) []achievement.Achievement {
	kept := fresh[:0]
	for _, a := range fresh {
		if a.Type != achievement.TypeQuality {
			kept = append(kept, a)
		}
	}
	return kept
}

func (d Dependencies) publish(events []shared.Event) {
	if d.Publisher == nil {
		return
	}
	for _, event := range events {
		_ = d.Publisher.Publish(event)
	}
}
