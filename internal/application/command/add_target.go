package command

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hafalan-hub/hafalan-engine/internal/domain/journal"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/quran"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/shared"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/target"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADD TARGET COMMAND
// Creates a new memorization target in PLANNED state.
// ══════════════════════════════════════════════════════════════════════════════

// AddTargetCommand contains the verse range of the new target.
type AddTargetCommand struct {
	StartSurah int
	StartAyah  int
	EndSurah   int
	EndAyah    int

	// MakeActive designates the new target as active immediately,
	// transitioning it to IN_PROGRESS.
	MakeActive bool
}

// Validate validates the command.
func (c AddTargetCommand) Validate() error {
	r := quran.AyahRange{
		StartSurah: c.StartSurah,
		StartAyah:  c.StartAyah,
		EndSurah:   c.EndSurah,
		EndAyah:    c.EndAyah,
	}
	return r.Validate()
}

// AddTargetResult contains the created target.
type AddTargetResult struct {
	TargetID  string
	Target    *target.Target
	AyahCount int
	Events    []shared.Event
}

// AddTargetHandler handles the AddTargetCommand.
type AddTargetHandler struct {
	deps Dependencies
}

// NewAddTargetHandler creates a new AddTargetHandler.
func NewAddTargetHandler(deps Dependencies) *AddTargetHandler {
	return &AddTargetHandler{deps: deps}
}

// Handle executes the add target command.
func (h *AddTargetHandler) Handle(ctx context.Context, cmd AddTargetCommand) (*AddTargetResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	result := &AddTargetResult{TargetID: id}

	saved, events, err := h.deps.mutate(ctx, "add_target", func(j *journal.Journal, now time.Time) ([]shared.Event, error) {
		r := quran.AyahRange{
			StartSurah: cmd.StartSurah,
			StartAyah:  cmd.StartAyah,
			EndSurah:   cmd.EndSurah,
			EndAyah:    cmd.EndAyah,
		}

		t, err := target.New(id, r, now)
		if err != nil {
			return nil, err
		}
		if err := j.AddTarget(t, now); err != nil {
			return nil, err
		}

		events := []shared.Event{shared.NewTargetAddedEvent(id, r.String())}

		if cmd.MakeActive {
			activated, err := j.SetActive(id, now)
			if err != nil {
				return nil, err
			}
			if activated {
				events = append(events, shared.NewTargetStatusChangedEvent(
					id, string(target.StatusPlanned), string(target.StatusInProgress)))
			}
		}
		return events, nil
	})
	if err != nil {
		return nil, err
	}

	t, err := saved.FindTarget(id)
	if err != nil {
		return nil, errors.New("add_target: created target missing after save")
	}

	result.Target = t
	result.AyahCount = t.AyahCount()
	result.Events = events
	return result, nil
}
