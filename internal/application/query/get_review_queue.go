package query

import (
	"context"
	"sort"

	"github.com/hafalan-hub/hafalan-engine/internal/domain/murojaah"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/quran"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/review"
	"github.com/hafalan-hub/hafalan-engine/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET REVIEW QUEUE QUERY
// Builds today's work list: open cadence entries due on or before today for
// every memorized target, and murojaah chapters ordered by how overdue they
// are.
// ══════════════════════════════════════════════════════════════════════════════

// ScheduleItem is one open cadence entry in the queue.
type ScheduleItem struct {
	TargetID string
	Range    string

	// DueDate is the entry's scheduled calendar day.
	DueDate string

	// Overdue reports that the entry was due before today.
	Overdue bool

	// PeerReviews already recorded against the entry.
	PeerReviews int

	// Remaining peer reviews until the entry completes.
	Remaining int
}

// MurojaahItem is one memorized chapter in the queue.
type MurojaahItem struct {
	SurahNumber int
	SurahName   string

	// Progress is the chapter smoothness percentage.
	Progress int

	// DaysSinceReview is meaningless when EverReviewed is false.
	DaysSinceReview int
	EverReviewed    bool

	Urgency murojaah.Urgency

	TodayCount    int
	RequiredToday int
	DoneToday     bool
}

// GetReviewQueueResult is the full work list.
type GetReviewQueueResult struct {
	Schedule []ScheduleItem
	Murojaah []MurojaahItem
}

// GetReviewQueueHandler handles the review queue query.
type GetReviewQueueHandler struct {
	deps Dependencies
}

// NewGetReviewQueueHandler creates a new GetReviewQueueHandler.
func NewGetReviewQueueHandler(deps Dependencies) *GetReviewQueueHandler {
	return &GetReviewQueueHandler{deps: deps}
}

// Handle executes the review queue query.
func (h *GetReviewQueueHandler) Handle(ctx context.Context) (*GetReviewQueueResult, error) {
	j, err := h.deps.Repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	now := h.deps.now()
	result := &GetReviewQueueResult{}

	for _, t := range j.Targets {
		for _, entry := range t.Reviews {
			if entry.Completed {
				continue
			}
			if timeutil.StartOfDay(entry.Date).After(timeutil.EndOfDay(now)) {
				continue
			}
			remaining := murojaahRemaining(len(entry.PeerReviews))
			result.Schedule = append(result.Schedule, ScheduleItem{
				TargetID:    t.ID,
				Range:       t.Range.String(),
				DueDate:     timeutil.DayKey(entry.Date),
				Overdue:     !timeutil.SameDay(entry.Date, now),
				PeerReviews: len(entry.PeerReviews),
				Remaining:   remaining,
			})
		}
	}
	sort.Slice(result.Schedule, func(i, k int) bool {
		return result.Schedule[i].DueDate < result.Schedule[k].DueDate
	})

	for _, d := range j.SurahDetails {
		days, everReviewed := d.DaysSinceLastReview(now)
		item := MurojaahItem{
			SurahNumber:     d.SurahNumber,
			SurahName:       surahName(d.SurahNumber),
			Progress:        d.Progress(),
			DaysSinceReview: days,
			EverReviewed:    everReviewed,
			Urgency:         murojaah.UrgencyNormal,
			TodayCount:      d.TodayReviewCount(now),
			RequiredToday:   d.RequiredDailyReviews(now),
			DoneToday:       d.DoneToday(now),
		}
		if h.deps.UrgencyEnabled {
			item.Urgency = d.Urgency(now)
		}
		result.Murojaah = append(result.Murojaah, item)
	}
	h.sortMurojaah(result.Murojaah)

	return result, nil
}

// sortMurojaah orders the chapter queue. With urgency on: most overdue
// first, never-reviewed chapters ahead of everything. With urgency off:
// plain surah order.
func (h *GetReviewQueueHandler) sortMurojaah(items []MurojaahItem) {
	if !h.deps.UrgencyEnabled {
		sort.Slice(items, func(i, k int) bool {
			return items[i].SurahNumber < items[k].SurahNumber
		})
		return
	}

	sort.Slice(items, func(i, k int) bool {
		a, b := items[i], items[k]
		if a.EverReviewed != b.EverReviewed {
			return !a.EverReviewed
		}
		if a.DaysSinceReview != b.DaysSinceReview {
			return a.DaysSinceReview > b.DaysSinceReview
		}
		return a.SurahNumber < b.SurahNumber
	})
}

func murojaahRemaining(recorded int) int {
	remaining := review.RequiredPeerReviews - recorded
	if remaining < 0 {
		return 0
	}
	return remaining
}

func surahName(number int) string {
	s, err := quran.Lookup(number)
	if err != nil {
		return ""
	}
	return s.Name
}
