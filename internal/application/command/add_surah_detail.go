package command

import (
	"context"
	"time"

	"github.com/hafalan-hub/hafalan-engine/internal/domain/journal"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/murojaah"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADD SURAH DETAIL COMMAND
// Registers a memorized surah for segment-level murojaah tracking. Long
// surahs are split by page; short ones use a single segment.
// ══════════════════════════════════════════════════════════════════════════════

// SegmentSpec describes one page segment of the new surah detail.
type SegmentSpec struct {
	StartPage  int
	EndPage    int
	StartVerse int
	EndVerse   int
}

// AddSurahDetailCommand registers a surah for murojaah.
type AddSurahDetailCommand struct {
	SurahNumber int
	Segments    []SegmentSpec
}

// Validate validates the command.
func (c AddSurahDetailCommand) Validate() error {
	if len(c.Segments) == 0 {
		return shared.NewDomainError("command", "AddSurahDetail", shared.ErrInvalidInput, "at least one segment is required")
	}
	for _, spec := range c.Segments {
		seg := murojaah.Segment{
			StartPage:  spec.StartPage,
			EndPage:    spec.EndPage,
			StartVerse: spec.StartVerse,
			EndVerse:   spec.EndVerse,
		}
		if err := seg.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// AddSurahDetailResult contains the created detail.
type AddSurahDetailResult struct {
	SurahNumber int
	Detail      *murojaah.SurahDetail
}

// AddSurahDetailHandler handles the AddSurahDetailCommand.
type AddSurahDetailHandler struct {
	deps Dependencies
}

// NewAddSurahDetailHandler creates a new AddSurahDetailHandler.
func NewAddSurahDetailHandler(deps Dependencies) *AddSurahDetailHandler {
	return &AddSurahDetailHandler{deps: deps}
}

// Handle executes the add surah detail command.
func (h *AddSurahDetailHandler) Handle(ctx context.Context, cmd AddSurahDetailCommand) (*AddSurahDetailResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	result := &AddSurahDetailResult{SurahNumber: cmd.SurahNumber}

	saved, _, err := h.deps.mutate(ctx, "add_surah_detail", func(j *journal.Journal, now time.Time) ([]shared.Event, error) {
		segments := make([]murojaah.Segment, len(cmd.Segments))
		for i, spec := range cmd.Segments {
			segments[i] = murojaah.Segment{
				StartPage:  spec.StartPage,
				EndPage:    spec.EndPage,
				StartVerse: spec.StartVerse,
				EndVerse:   spec.EndVerse,
			}
		}

		detail, err := murojaah.NewSurahDetail(cmd.SurahNumber, segments, now)
		if err != nil {
			return nil, err
		}
		return nil, j.AddSurahDetail(detail, now)
	})
	if err != nil {
		return nil, err
	}

	detail, err := saved.FindSurahDetail(cmd.SurahNumber)
	if err != nil {
		return nil, err
	}
	result.Detail = detail
	return result, nil
}
