// Package journal holds the aggregate root of the hafalan engine: the full
// target collection, the optional active-target pointer, and the
// memorized-surah detail aggregates. There is no global state; commands
// receive a journal, mutate a copy, and write it back through the snapshot
// store (single-writer, copy-on-write).
package journal

import (
	"context"
	"time"

	"github.com/hafalan-hub/hafalan-engine/internal/domain/murojaah"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/shared"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/stats"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/target"
)

// Journal is the learner's complete hafalan state.
type Journal struct {
	Targets        []*target.Target        `json:"targets"`
	ActiveTargetID string                  `json:"active_target_id,omitempty"`
	SurahDetails   []*murojaah.SurahDetail `json:"surah_details"`
	Statistics     stats.Statistics        `json:"statistics"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

// New creates an empty journal.
func New() *Journal {
	return &Journal{
		Targets:      []*target.Target{},
		SurahDetails: []*murojaah.SurahDetail{},
	}
}

// FindTarget returns the target with the given id.
func (j *Journal) FindTarget(id string) (*target.Target, error) {
	for _, t := range j.Targets {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, shared.ErrTargetNotFound
}

// ActiveTarget returns the currently active target, or nil when none is set.
func (j *Journal) ActiveTarget() *target.Target {
	if j.ActiveTargetID == "" {
		return nil
	}
	t, err := j.FindTarget(j.ActiveTargetID)
	if err != nil {
		return nil
	}
	return t
}

// AddTarget appends a new target to the collection.
func (j *Journal) AddTarget(t *target.Target, now time.Time) error {
	if _, err := j.FindTarget(t.ID); err == nil {
		return shared.NewDomainError("journal", "AddTarget", shared.ErrAlreadyExists, "target id already exists")
	}
	j.Targets = append(j.Targets, t)
	j.UpdatedAt = now
	return nil
}

// RemoveTarget deletes a target and clears the active pointer if it
// referenced it.
func (j *Journal) RemoveTarget(id string, now time.Time) error {
	for i, t := range j.Targets {
		if t.ID != id {
			continue
		}
		j.Targets = append(j.Targets[:i], j.Targets[i+1:]...)
		if j.ActiveTargetID == id {
			j.ActiveTargetID = ""
		}
		j.UpdatedAt = now
		return nil
	}
	return shared.ErrTargetNotFound
}

// SetActive designates at most one target as active. An empty id clears the
// pointer. Activating a PLANNED target transitions it to IN_PROGRESS as a
// side effect; terminal targets cannot be activated.
func (j *Journal) SetActive(id string, now time.Time) (activated bool, err error) {
	if id == "" {
		j.ActiveTargetID = ""
		j.UpdatedAt = now
		return false, nil
	}

	t, err := j.FindTarget(id)
	if err != nil {
		return false, err
	}
	if t.Status.IsTerminal() {
		return false, shared.ErrTargetTerminal
	}

	changed, err := t.Activate(now)
	if err != nil {
		return false, err
	}
	j.ActiveTargetID = id
	j.UpdatedAt = now
	return changed, nil
}

// FindSurahDetail returns the memorized-summary aggregate for a surah.
func (j *Journal) FindSurahDetail(surahNumber int) (*murojaah.SurahDetail, error) {
	for _, d := range j.SurahDetails {
		if d.SurahNumber == surahNumber {
			return d, nil
		}
	}
	return nil, shared.ErrSurahDetailNotFound
}

// AddSurahDetail registers a surah detail; one per surah.
func (j *Journal) AddSurahDetail(d *murojaah.SurahDetail, now time.Time) error {
	if _, err := j.FindSurahDetail(d.SurahNumber); err == nil {
		return shared.ErrSurahDetailExists
	}
	j.SurahDetails = append(j.SurahDetails, d)
	j.UpdatedAt = now
	return nil
}

// Recalculate refreshes the derived statistics.
func (j *Journal) Recalculate(engine *stats.Engine, now time.Time) {
	j.Statistics = engine.Calculate(j.Targets, j.SurahDetails, now)
}

// Clone creates a deep copy of the journal for copy-on-write mutation.
func (j *Journal) Clone() *Journal {
	if j == nil {
		return nil
	}

	clone := &Journal{
		ActiveTargetID: j.ActiveTargetID,
		Statistics:     j.Statistics,
		UpdatedAt:      j.UpdatedAt,
		Targets:        make([]*target.Target, len(j.Targets)),
		SurahDetails:   make([]*murojaah.SurahDetail, len(j.SurahDetails)),
	}
	for i, t := range j.Targets {
		clone.Targets[i] = t.Clone()
	}
	for i, d := range j.SurahDetails {
		clone.SurahDetails[i] = d.Clone()
	}
	return clone
}

// Repository loads and stores the journal snapshot. Save must write the
// whole aggregate through; there is no partial update.
type Repository interface {
	Load(ctx context.Context) (*Journal, error)
	Save(ctx context.Context, j *Journal) error
}
