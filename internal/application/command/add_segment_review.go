package command

import (
	"context"
	"time"

	"github.com/hafalan-hub/hafalan-engine/internal/domain/journal"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/murojaah"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADD SEGMENT REVIEW COMMAND
// Records a smoothness review against one segment of a memorized surah.
// Non-smooth reviews carry per-ayah notes that drive the chapter progress
// percentage.
// ══════════════════════════════════════════════════════════════════════════════

// AyahNoteSpec pins a remark to an ayah in the reviewed segment.
type AyahNoteSpec struct {
	Ayah int
	Note string
}

// AddSegmentReviewCommand records a smoothness review.
type AddSegmentReviewCommand struct {
	SurahNumber  int
	SegmentIndex int
	IsSmooth     bool
	Notes        []AyahNoteSpec
}

// Validate validates the command.
func (c AddSegmentReviewCommand) Validate() error {
	if c.SegmentIndex < 0 {
		return shared.ErrSegmentNotFound
	}
	for _, note := range c.Notes {
		if note.Ayah < 1 {
			return shared.NewDomainError("command", "AddSegmentReview", shared.ErrValueOutOfRange, "ayah number must be positive")
		}
	}
	return nil
}

// AddSegmentReviewResult reports the chapter state after the review.
type AddSegmentReviewResult struct {
	SurahNumber int

	// Progress is the chapter smoothness percentage after this review.
	Progress int

	// TodayCount is the aggregated full-pass count for today.
	TodayCount int

	// DoneToday reports whether today's required passes are complete.
	DoneToday bool

	Events []shared.Event
}

// AddSegmentReviewHandler handles the AddSegmentReviewCommand.
type AddSegmentReviewHandler struct {
	deps Dependencies
}

// NewAddSegmentReviewHandler creates a new AddSegmentReviewHandler.
func NewAddSegmentReviewHandler(deps Dependencies) *AddSegmentReviewHandler {
	return &AddSegmentReviewHandler{deps: deps}
}

// Handle executes the add segment review command.
func (h *AddSegmentReviewHandler) Handle(ctx context.Context, cmd AddSegmentReviewCommand) (*AddSegmentReviewResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	result := &AddSegmentReviewResult{SurahNumber: cmd.SurahNumber}

	_, events, err := h.deps.mutate(ctx, "add_segment_review", func(j *journal.Journal, now time.Time) ([]shared.Event, error) {
		detail, err := j.FindSurahDetail(cmd.SurahNumber)
		if err != nil {
			return nil, err
		}

		notes := make([]murojaah.AyahNote, len(cmd.Notes))
		for i, spec := range cmd.Notes {
			notes[i] = murojaah.AyahNote{Ayah: spec.Ayah, Note: spec.Note}
		}

		r := murojaah.SegmentReview{IsSmooth: cmd.IsSmooth, Notes: notes}
		if err := detail.AddReview(cmd.SegmentIndex, r, now); err != nil {
			return nil, err
		}
		j.UpdatedAt = now

		result.Progress = detail.Progress()
		result.TodayCount = detail.TodayReviewCount(now)
		result.DoneToday = detail.DoneToday(now)

		aggregateID := shared.SurahAggregateID(cmd.SurahNumber)
		return []shared.Event{shared.NewSegmentReviewedEvent(
			aggregateID, cmd.SurahNumber, cmd.SegmentIndex, cmd.IsSmooth)}, nil
	})
	if err != nil {
		return nil, err
	}

	result.Events = events
	return result, nil
}
