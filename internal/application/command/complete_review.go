package command

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hafalan-hub/hafalan-engine/internal/domain/journal"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/review"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/shared"
	"github.com/hafalan-hub/hafalan-engine/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// COMPLETE REVIEW COMMAND
// Records a peer review against the schedule entry due on the given calendar
// day. The third peer review flips the entry to completed, permanently.
// ══════════════════════════════════════════════════════════════════════════════

// CompleteReviewCommand records one peer review.
type CompleteReviewCommand struct {
	TargetID string

	// ReviewDate selects the schedule entry by calendar day. Zero means
	// today.
	ReviewDate time.Time

	PeerName   string
	Mistakes   int
	Feedback   string
	Mushafahah bool
	Slot       review.Slot
}

// Validate validates the command.
func (c CompleteReviewCommand) Validate() error {
	if c.TargetID == "" {
		return shared.NewDomainError("command", "CompleteReview", shared.ErrInvalidID, "target id is required")
	}
	pr := review.PeerReview{
		PeerName: c.PeerName,
		Mistakes: c.Mistakes,
		Slot:     c.Slot,
	}
	return pr.Validate()
}

// CompleteReviewResult reports the review state after recording.
type CompleteReviewResult struct {
	TargetID    string
	PeerReviews int
	Score       int

	// Completed is true when this review completed the schedule entry.
	Completed bool

	Events []shared.Event
}

// CompleteReviewHandler handles the CompleteReviewCommand.
type CompleteReviewHandler struct {
	deps Dependencies
}

// NewCompleteReviewHandler creates a new CompleteReviewHandler.
func NewCompleteReviewHandler(deps Dependencies) *CompleteReviewHandler {
	return &CompleteReviewHandler{deps: deps}
}

// Handle executes the complete review command.
func (h *CompleteReviewHandler) Handle(ctx context.Context, cmd CompleteReviewCommand) (*CompleteReviewResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	result := &CompleteReviewResult{TargetID: cmd.TargetID}

	_, events, err := h.deps.mutate(ctx, "complete_review", func(j *journal.Journal, now time.Time) ([]shared.Event, error) {
		t, err := j.FindTarget(cmd.TargetID)
		if err != nil {
			return nil, err
		}

		date := cmd.ReviewDate
		if date.IsZero() {
			date = now
		}

		pr := review.PeerReview{
			ID:         uuid.NewString(),
			PeerName:   cmd.PeerName,
			Mistakes:   cmd.Mistakes,
			Feedback:   cmd.Feedback,
			Mushafahah: cmd.Mushafahah,
			Slot:       cmd.Slot,
		}

		completedNow, err := t.RecordPeerReview(date, pr, now)
		if err != nil {
			return nil, err
		}
		j.UpdatedAt = now

		idx, _ := review.FindByDay(t.Reviews, date)
		entry := t.Reviews[idx]

		result.PeerReviews = len(entry.PeerReviews)
		result.Score = pr.Score()
		result.Completed = completedNow

		events := []shared.Event{shared.NewPeerReviewRecordedEvent(cmd.TargetID, cmd.PeerName, cmd.Mistakes)}
		if completedNow {
			events = append(events, shared.NewReviewCompletedEvent(
				cmd.TargetID, timeutil.DayKey(entry.Date), len(entry.PeerReviews)))
		}
		return events, nil
	})
	if err != nil {
		return nil, err
	}

	result.Events = events
	return result, nil
}
