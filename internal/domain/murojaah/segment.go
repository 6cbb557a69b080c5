// Package murojaah tracks smoothness reviews of already-memorized surahs.
// Long surahs are split into page segments; each segment carries its own
// review history and chapter-level numbers are aggregated across segments
// with a deliberately asymmetric counting rule (see TodayReviewCount).
package murojaah

import (
	"time"

	"github.com/hafalan-hub/hafalan-engine/internal/domain/quran"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/shared"
	"github.com/hafalan-hub/hafalan-engine/pkg/timeutil"
)

// RecentCreationWindow is how long a surah detail counts as freshly added.
// Fresh chapters need one review per day for the "done today" indicator,
// older ones need two.
const RecentCreationWindow = 7 * 24 * time.Hour

// AyahNote pins a reviewer remark to a specific ayah.
type AyahNote struct {
	Ayah int    `json:"ayah"`
	Note string `json:"note"`
}

// SegmentReview is a single smoothness review of one segment.
type SegmentReview struct {
	Date     time.Time  `json:"date"`
	IsSmooth bool       `json:"is_smooth"`
	Notes    []AyahNote `json:"notes"`
}

// Segment is a page range of a surah with its review history.
type Segment struct {
	StartPage  int             `json:"start_page"`
	EndPage    int             `json:"end_page"`
	StartVerse int             `json:"start_verse"`
	EndVerse   int             `json:"end_verse"`
	Reviews    []SegmentReview `json:"reviews"`
}

// Validate checks the segment bounds.
func (s Segment) Validate() error {
	if s.StartPage < 1 || s.EndPage < s.StartPage {
		return shared.ErrInvalidSegment
	}
	if s.StartVerse < 1 || s.EndVerse < s.StartVerse {
		return shared.ErrInvalidSegment
	}
	return nil
}

// Latest returns the most recent review of the segment.
func (s Segment) Latest() (SegmentReview, bool) {
	if len(s.Reviews) == 0 {
		return SegmentReview{}, false
	}
	latest := s.Reviews[0]
	for _, r := range s.Reviews[1:] {
		if r.Date.After(latest.Date) {
			latest = r
		}
	}
	return latest, true
}

// SegmentStatus classifies a segment by its latest review.
type SegmentStatus string

const (
	SegmentUnreviewed SegmentStatus = "unreviewed"
	SegmentSmooth     SegmentStatus = "smooth"
	SegmentNeedsWork  SegmentStatus = "needs-work"
)

// Status returns the segment's classification.
func (s Segment) Status() SegmentStatus {
	latest, ok := s.Latest()
	if !ok {
		return SegmentUnreviewed
	}
	if latest.IsSmooth {
		return SegmentSmooth
	}
	return SegmentNeedsWork
}

// todayCount counts the segment's reviews dated on the calendar day of now.
func (s Segment) todayCount(now time.Time) int {
	count := 0
	for _, r := range s.Reviews {
		if timeutil.SameDay(r.Date, now) {
			count++
		}
	}
	return count
}

// SurahDetail is the memorized-summary aggregate for one surah.
type SurahDetail struct {
	SurahNumber    int       `json:"surah_number"`
	CreatedAt      time.Time `json:"created_at"`
	LastReviewDate time.Time `json:"last_review_date"`
	Segments       []Segment `json:"segments"`
}

// NewSurahDetail validates and initializes a surah detail.
func NewSurahDetail(surahNumber int, segments []Segment, now time.Time) (*SurahDetail, error) {
	if _, err := quran.Lookup(surahNumber); err != nil {
		return nil, err
	}
	for i := range segments {
		if err := segments[i].Validate(); err != nil {
			return nil, err
		}
		if segments[i].Reviews == nil {
			segments[i].Reviews = []SegmentReview{}
		}
	}

	return &SurahDetail{
		SurahNumber: surahNumber,
		CreatedAt:   now,
		Segments:    segments,
	}, nil
}

// AddReview records a smoothness review against the segment at index,
// stamped with now.
func (d *SurahDetail) AddReview(segmentIndex int, r SegmentReview, now time.Time) error {
	if segmentIndex < 0 || segmentIndex >= len(d.Segments) {
		return shared.ErrSegmentNotFound
	}

	r.Date = now
	if r.Notes == nil {
		r.Notes = []AyahNote{}
	}
	d.Segments[segmentIndex].Reviews = append(d.Segments[segmentIndex].Reviews, r)

	if now.After(d.LastReviewDate) {
		d.LastReviewDate = now
	}
	return nil
}

// LastReview returns the maximum review date across all segments.
func (d *SurahDetail) LastReview() (time.Time, bool) {
	var last time.Time
	found := false
	for _, seg := range d.Segments {
		for _, r := range seg.Reviews {
			if !found || r.Date.After(last) {
				last = r.Date
				found = true
			}
		}
	}
	return last, found
}

// DaysSinceLastReview returns the hour-ceiling day count since the last
// review. ok is false when no review was ever recorded; callers treat that
// as infinitely overdue.
func (d *SurahDetail) DaysSinceLastReview(now time.Time) (days int, ok bool) {
	last, found := d.LastReview()
	if !found {
		return 0, false
	}
	return timeutil.CeilDaysSince(last, now), true
}

// Progress computes the chapter smoothness percentage. A chapter with no
// reviews at all is 0. Otherwise the distinct ayah numbers flagged in each
// segment's latest non-smooth review count against the surah's total.
func (d *SurahDetail) Progress() int {
	total := quran.VerseCount(d.SurahNumber)
	if total == 0 {
		return 0
	}

	reviewed := false
	flagged := make(map[int]bool)
	for _, seg := range d.Segments {
		latest, ok := seg.Latest()
		if !ok {
			continue
		}
		reviewed = true
		if latest.IsSmooth {
			continue
		}
		for _, note := range latest.Notes {
			flagged[note.Ayah] = true
		}
	}
	if !reviewed {
		return 0
	}

	return int(float64(total-len(flagged))/float64(total)*100 + 0.5)
}

// TodayReviewCount reports how many full passes over the surah happened
// today. With one segment that is simply its today count. With several, the
// minimum across segments counts only when every segment reached it;
// otherwise the chapter gets minimum-1, floored at 0. Re-reading one easy
// segment all day must not count as covering the whole surah.
func (d *SurahDetail) TodayReviewCount(now time.Time) int {
	if len(d.Segments) == 0 {
		return 0
	}
	if len(d.Segments) == 1 {
		return d.Segments[0].todayCount(now)
	}

	min := d.Segments[0].todayCount(now)
	allEqual := true
	for _, seg := range d.Segments[1:] {
		c := seg.todayCount(now)
		if c != min {
			allEqual = false
		}
		if c < min {
			min = c
		}
	}
	if allEqual {
		return min
	}
	if min <= 0 {
		return 0
	}
	return min - 1
}

// IsRecentlyCreated reports whether the detail is within the fresh window.
func (d *SurahDetail) IsRecentlyCreated(now time.Time) bool {
	return now.Sub(d.CreatedAt) < RecentCreationWindow
}

// RequiredDailyReviews is the number of passes needed for the "done today"
// indicator.
func (d *SurahDetail) RequiredDailyReviews(now time.Time) int {
	if d.IsRecentlyCreated(now) {
		return 1
	}
	return 2
}

// DoneToday reports whether today's required passes are complete.
func (d *SurahDetail) DoneToday(now time.Time) bool {
	return d.TodayReviewCount(now) >= d.RequiredDailyReviews(now)
}

// Urgency classifies how overdue a chapter's murojaah is.
type Urgency string

const (
	UrgencyNormal   Urgency = "normal"
	UrgencyWarning  Urgency = "warning"
	UrgencyCritical Urgency = "critical"
)

// ClassifyUrgency maps days-since-last-review to an urgency level.
// Chapters never reviewed are critical.
func ClassifyUrgency(days int, everReviewed bool) Urgency {
	if !everReviewed {
		return UrgencyCritical
	}
	switch {
	case days > 7:
		return UrgencyCritical
	case days > 3:
		return UrgencyWarning
	default:
		return UrgencyNormal
	}
}

// Urgency returns the chapter's current urgency.
func (d *SurahDetail) Urgency(now time.Time) Urgency {
	days, ok := d.DaysSinceLastReview(now)
	return ClassifyUrgency(days, ok)
}

// Clone creates a deep copy of the surah detail.
func (d *SurahDetail) Clone() *SurahDetail {
	if d == nil {
		return nil
	}

	clone := *d
	clone.Segments = make([]Segment, len(d.Segments))
	for i, seg := range d.Segments {
		reviews := make([]SegmentReview, len(seg.Reviews))
		for j, r := range seg.Reviews {
			r.Notes = append([]AyahNote(nil), r.Notes...)
			reviews[j] = r
		}
		seg.Reviews = reviews
		clone.Segments[i] = seg
	}
	return &clone
}
