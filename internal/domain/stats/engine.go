// Package stats derives the aggregate numbers shown on the hafalan
// dashboard. Everything here is recomputed from targets and surah details on
// every mutation; nothing is independently settable.
package stats

import (
	"sort"
	"time"

	"github.com/hafalan-hub/hafalan-engine/internal/domain/achievement"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/murojaah"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/review"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/target"
	"github.com/hafalan-hub/hafalan-engine/pkg/timeutil"
)

// DayCount is one day of the trailing weekly progress series.
type DayCount struct {
	Date    time.Time `json:"date"`
	Reviews int       `json:"reviews"`
}

// Statistics are the derived aggregate numbers.
type Statistics struct {
	TotalAyahMemorized int        `json:"total_ayah_memorized"`
	AverageReviewScore float64    `json:"average_review_score"`
	CurrentStreak      int        `json:"current_streak"`
	LongestStreak      int        `json:"longest_streak"`
	ReviewCompletion   float64    `json:"review_completion"`
	WeeklyProgress     []DayCount `json:"weekly_progress"`

	// Quality counters feeding the achievement rule table.
	TotalPeerReviews   int `json:"total_peer_reviews"`
	PerfectReviews     int `json:"perfect_reviews"`
	ConsecutiveQuality int `json:"consecutive_quality"`
}

// Engine computes statistics.
type Engine struct {
	// UseApproximateCount reproduces the historical endAyah-only formula
	// for multi-surah ranges. Off by default; kept for comparing against
	// statistics computed by old clients.
	UseApproximateCount bool
}

// NewEngine creates a statistics engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Calculate derives the full statistics set.
func (e *Engine) Calculate(targets []*target.Target, details []*murojaah.SurahDetail, now time.Time) Statistics {
	s := Statistics{}

	var completed, total int
	var peerReviews []review.PeerReview

	for _, t := range targets {
		if t.Status.IsMemorized() {
			if e.UseApproximateCount {
				s.TotalAyahMemorized += t.Range.ApproximateAyahCount()
			} else {
				s.TotalAyahMemorized += t.Range.AyahCount()
			}
		}
		for _, entry := range t.Reviews {
			total++
			if entry.Completed {
				completed++
			}
			peerReviews = append(peerReviews, entry.PeerReviews...)
		}
	}

	if total > 0 {
		s.ReviewCompletion = float64(completed) / float64(total) * 100
	}

	sort.Slice(peerReviews, func(i, j int) bool {
		return peerReviews[i].Date.Before(peerReviews[j].Date)
	})

	s.TotalPeerReviews = len(peerReviews)
	scoreSum := 0
	for _, pr := range peerReviews {
		scoreSum += pr.Score()
		if pr.IsPerfect() {
			s.PerfectReviews++
		}
	}
	if len(peerReviews) > 0 {
		s.AverageReviewScore = float64(scoreSum) / float64(len(peerReviews))
	}

	// Trailing run of high-quality peer reviews, newest backwards.
	for i := len(peerReviews) - 1; i >= 0; i-- {
		if !peerReviews[i].IsHighQuality() {
			break
		}
		s.ConsecutiveQuality++
	}

	activityDays := activityDayKeys(peerReviews, details)
	s.CurrentStreak, s.LongestStreak = streaks(activityDays, now)
	s.WeeklyProgress = weekly(peerReviews, details, now)

	return s
}

// activityDayKeys collects the distinct calendar days with any review
// activity, peer or segment.
func activityDayKeys(peerReviews []review.PeerReview, details []*murojaah.SurahDetail) map[string]time.Time {
	days := make(map[string]time.Time)
	for _, pr := range peerReviews {
		days[timeutil.DayKey(pr.Date)] = timeutil.StartOfDay(pr.Date)
	}
	for _, d := range details {
		for _, seg := range d.Segments {
			for _, r := range seg.Reviews {
				days[timeutil.DayKey(r.Date)] = timeutil.StartOfDay(r.Date)
			}
		}
	}
	return days
}

// streaks computes the current and longest runs of consecutive active days.
// The current streak survives until a full day is missed: activity yesterday
// keeps it alive, activity only before that breaks it.
func streaks(days map[string]time.Time, now time.Time) (current, longest int) {
	if len(days) == 0 {
		return 0, 0
	}

	sorted := make([]time.Time, 0, len(days))
	for _, day := range days {
		sorted = append(sorted, day)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	run := 1
	longest = 1
	for i := 1; i < len(sorted); i++ {
		if timeutil.DaysBetween(sorted[i-1], sorted[i]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	lastGap := timeutil.DaysBetween(sorted[len(sorted)-1], now)
	if lastGap <= 1 {
		current = run
	}
	return current, longest
}

// weekly builds the trailing 7-day review-count series, oldest first.
func weekly(peerReviews []review.PeerReview, details []*murojaah.SurahDetail, now time.Time) []DayCount {
	counts := make(map[string]int)
	for _, pr := range peerReviews {
		counts[timeutil.DayKey(pr.Date)]++
	}
	for _, d := range details {
		for _, seg := range d.Segments {
			for _, r := range seg.Reviews {
				counts[timeutil.DayKey(r.Date)]++
			}
		}
	}

	week := make([]DayCount, 0, 7)
	for offset := -6; offset <= 0; offset++ {
		day := timeutil.AddDays(now, offset)
		week = append(week, DayCount{
			Date:    day,
			Reviews: counts[timeutil.DayKey(day)],
		})
	}
	return week
}

// Metrics maps statistics onto the achievement rule inputs.
func (s Statistics) Metrics() achievement.Metrics {
	return achievement.Metrics{
		StreakDays:         s.CurrentStreak,
		AyahsMemorized:     s.TotalAyahMemorized,
		TotalPeerReviews:   s.TotalPeerReviews,
		PerfectReviews:     s.PerfectReviews,
		ConsecutiveQuality: s.ConsecutiveQuality,
	}
}
