// Package review implements the post-memorization murojaah cadence: a fixed
// ten-entry schedule generated when a target is first marked memorized, and
// per-entry peer review (mushafahah) collection.
package review

import (
	"strings"
	"time"

	"github.com/hafalan-hub/hafalan-engine/internal/domain/shared"
	"github.com/hafalan-hub/hafalan-engine/pkg/timeutil"
)

// ScheduleOffsets are the day offsets of the murojaah cadence: daily for the
// first week, then weekly through the first month.
var ScheduleOffsets = [10]int{0, 1, 2, 3, 4, 5, 6, 14, 21, 28}

// RequiredPeerReviews is how many peer reviews complete a schedule entry.
const RequiredPeerReviews = 3

// Slot is the optional time-of-day slot a peer review took place in.
type Slot string

const (
	SlotPagi  Slot = "Pagi"
	SlotSiang Slot = "Siang"
	SlotMalam Slot = "Malam"
)

// IsValid reports whether the slot is one of the known values.
// The empty slot is valid; the field is optional.
func (s Slot) IsValid() bool {
	switch s {
	case "", SlotPagi, SlotSiang, SlotMalam:
		return true
	default:
		return false
	}
}

// PeerReview is one mushafahah session recorded against a schedule entry.
type PeerReview struct {
	ID         string    `json:"id"`
	Date       time.Time `json:"date"`
	PeerName   string    `json:"peer_name"`
	Mistakes   int       `json:"mistakes"`
	Feedback   string    `json:"feedback"`
	Mushafahah bool      `json:"mushafahah"`
	Slot       Slot      `json:"slot,omitempty"`
}

// Validate checks the caller-supplied fields. The Date field is ignored on
// input: the engine stamps it at append time.
func (pr PeerReview) Validate() error {
	if strings.TrimSpace(pr.PeerName) == "" {
		return shared.ErrPeerNameRequired
	}
	if pr.Mistakes < 0 {
		return shared.ErrInvalidMistakes
	}
	if !pr.Slot.IsValid() {
		return shared.ErrInvalidSlot
	}
	return nil
}

// Score converts the mistake count into a 0-100 review score.
func (pr PeerReview) Score() int {
	score := 100 - 10*pr.Mistakes
	if score < 0 {
		return 0
	}
	return score
}

// IsPerfect reports a flawless recitation.
func (pr PeerReview) IsPerfect() bool {
	return pr.Mistakes == 0
}

// IsHighQuality reports a recitation with at most two mistakes.
func (pr PeerReview) IsHighQuality() bool {
	return pr.Mistakes <= 2
}

// Schedule is one entry of the murojaah cadence.
type Schedule struct {
	Date        time.Time    `json:"date"`
	Completed   bool         `json:"completed"`
	PeerReviews []PeerReview `json:"peer_reviews"`
}

// Generate produces the full murojaah cadence for a target memorized at
// start. Pure: the same start always yields the same ten calendar days,
// each entry open and empty.
func Generate(start time.Time) []Schedule {
	entries := make([]Schedule, 0, len(ScheduleOffsets))
	for _, offset := range ScheduleOffsets {
		entries = append(entries, Schedule{
			Date:        timeutil.AddDays(start, offset),
			Completed:   false,
			PeerReviews: []PeerReview{},
		})
	}
	return entries
}

// MatchesDay reports whether the entry is scheduled on the calendar day of t.
// Matching full timestamps here would silently miss every review, so the
// comparison is by normalized day key only.
func (s *Schedule) MatchesDay(t time.Time) bool {
	return timeutil.SameDay(s.Date, t)
}

// AddPeerReview appends a peer review stamped with now and recomputes the
// completion flag. Completed is monotonic: once three peer reviews exist the
// entry stays completed because the list only grows.
func (s *Schedule) AddPeerReview(pr PeerReview, now time.Time) {
	pr.Date = now
	s.PeerReviews = append(s.PeerReviews, pr)
	if len(s.PeerReviews) >= RequiredPeerReviews {
		s.Completed = true
	}
}

// FindByDay locates the schedule entry for the calendar day of date.
func FindByDay(entries []Schedule, date time.Time) (int, bool) {
	for i := range entries {
		if entries[i].MatchesDay(date) {
			return i, true
		}
	}
	return -1, false
}
