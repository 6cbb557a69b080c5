package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hafalan-hub/hafalan-engine/internal/domain/murojaah"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/quran"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/review"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/target"
	"github.com/hafalan-hub/hafalan-engine/pkg/timeutil"
)

func memorizedTarget(t *testing.T, id string, r quran.AyahRange, now time.Time) *target.Target {
	t.Helper()
	tgt, err := target.New(id, r, now)
	require.NoError(t, err)
	_, err = tgt.ChangeStatus(target.StatusInProgress, now)
	require.NoError(t, err)
	_, err = tgt.ChangeStatus(target.StatusSelfReview, now)
	require.NoError(t, err)
	return tgt
}

func TestCalculate_AyahCountMultiSurah(t *testing.T) {
	now := timeutil.Date(2025, 3, 10)
	// 112:1 through 114:6 spans three surahs: 4 + 5 + 6 = 15 ayahs.
	tgt := memorizedTarget(t, "t1", quran.AyahRange{
		StartSurah: 112, StartAyah: 1, EndSurah: 114, EndAyah: 6,
	}, now)

	s := NewEngine().Calculate([]*target.Target{tgt}, nil, now)
	assert.Equal(t, 15, s.TotalAyahMemorized)
}

func TestCalculate_ApproximateCountMode(t *testing.T) {
	now := timeutil.Date(2025, 3, 10)
	tgt := memorizedTarget(t, "t1", quran.AyahRange{
		StartSurah: 112, StartAyah: 1, EndSurah: 114, EndAyah: 6,
	}, now)

	engine := NewEngine()
	engine.UseApproximateCount = true
	s := engine.Calculate([]*target.Target{tgt}, nil, now)
	assert.Equal(t, 6, s.TotalAyahMemorized) // legacy endAyah-startAyah+1
}

func TestCalculate_PlannedTargetsDoNotCount(t *testing.T) {
	now := timeutil.Date(2025, 3, 10)
	tgt, err := target.New("t1", quran.AyahRange{StartSurah: 1, StartAyah: 1, EndSurah: 1, EndAyah: 7}, now)
	require.NoError(t, err)

	s := NewEngine().Calculate([]*target.Target{tgt}, nil, now)
	assert.Equal(t, 0, s.TotalAyahMemorized)
}

func TestCalculate_ReviewCompletion(t *testing.T) {
	now := timeutil.Date(2025, 3, 10)
	tgt := memorizedTarget(t, "t1", quran.AyahRange{StartSurah: 1, StartAyah: 1, EndSurah: 1, EndAyah: 7}, now)
	require.Len(t, tgt.Reviews, 10)

	for i := 0; i < 3; i++ {
		pr := review.PeerReview{PeerName: "Ahmad"}
		_, err := tgt.RecordPeerReview(now, pr, now)
		require.NoError(t, err)
	}

	s := NewEngine().Calculate([]*target.Target{tgt}, nil, now)
	assert.InDelta(t, 10.0, s.ReviewCompletion, 0.001) // 1 of 10 entries
	assert.Equal(t, 3, s.TotalPeerReviews)
}

func TestCalculate_AverageScoreAndQuality(t *testing.T) {
	now := timeutil.Date(2025, 3, 10)
	tgt := memorizedTarget(t, "t1", quran.AyahRange{StartSurah: 1, StartAyah: 1, EndSurah: 1, EndAyah: 7}, now)

	mistakes := []int{0, 2, 5}
	for _, m := range mistakes {
		_, err := tgt.RecordPeerReview(now, review.PeerReview{PeerName: "Ahmad", Mistakes: m}, now)
		require.NoError(t, err)
	}

	s := NewEngine().Calculate([]*target.Target{tgt}, nil, now)
	assert.InDelta(t, (100.0+80.0+50.0)/3.0, s.AverageReviewScore, 0.001)
	assert.Equal(t, 1, s.PerfectReviews)
	assert.Equal(t, 0, s.ConsecutiveQuality) // last review had 5 mistakes
}

func TestCalculate_ConsecutiveQualityTrailingRun(t *testing.T) {
	base := timeutil.Date(2025, 3, 10)
	tgt := memorizedTarget(t, "t1", quran.AyahRange{StartSurah: 1, StartAyah: 1, EndSurah: 1, EndAyah: 7}, base)

	days := []struct {
		offset   int
		mistakes int
	}{{0, 5}, {1, 1}, {2, 0}}
	for _, d := range days {
		when := timeutil.AddDays(base, d.offset)
		_, err := tgt.RecordPeerReview(when, review.PeerReview{PeerName: "Ahmad", Mistakes: d.mistakes}, when)
		require.NoError(t, err)
	}

	s := NewEngine().Calculate([]*target.Target{tgt}, nil, timeutil.AddDays(base, 2))
	assert.Equal(t, 2, s.ConsecutiveQuality)
}

func TestCalculate_Streaks(t *testing.T) {
	base := timeutil.Date(2025, 3, 10)
	tgt := memorizedTarget(t, "t1", quran.AyahRange{StartSurah: 1, StartAyah: 1, EndSurah: 1, EndAyah: 7}, base)

	// Reviews on days 0,1,2 then a gap, then days 5,6.
	for _, offset := range []int{0, 1, 2, 5, 6} {
		when := timeutil.AddDays(base, offset)
		_, err := tgt.RecordPeerReview(when, review.PeerReview{PeerName: "Ahmad"}, when)
		require.NoError(t, err)
	}

	s := NewEngine().Calculate([]*target.Target{tgt}, nil, timeutil.AddDays(base, 6))
	assert.Equal(t, 2, s.CurrentStreak)
	assert.Equal(t, 3, s.LongestStreak)
}

func TestCalculate_StreakSurvivesOneDayGap(t *testing.T) {
	base := timeutil.Date(2025, 3, 10)
	tgt := memorizedTarget(t, "t1", quran.AyahRange{StartSurah: 1, StartAyah: 1, EndSurah: 1, EndAyah: 7}, base)

	for _, offset := range []int{0, 1, 2} {
		when := timeutil.AddDays(base, offset)
		_, err := tgt.RecordPeerReview(when, review.PeerReview{PeerName: "Ahmad"}, when)
		require.NoError(t, err)
	}

	// Evaluated the day after the last activity: streak still alive.
	s := NewEngine().Calculate([]*target.Target{tgt}, nil, timeutil.AddDays(base, 3))
	assert.Equal(t, 3, s.CurrentStreak)

	// Two days after: broken.
	s = NewEngine().Calculate([]*target.Target{tgt}, nil, timeutil.AddDays(base, 4))
	assert.Equal(t, 0, s.CurrentStreak)
	assert.Equal(t, 3, s.LongestStreak)
}

func TestCalculate_SegmentReviewsCountTowardStreak(t *testing.T) {
	base := timeutil.Date(2025, 3, 10)

	detail, err := murojaah.NewSurahDetail(112, []murojaah.Segment{
		{StartPage: 604, EndPage: 604, StartVerse: 1, EndVerse: 4},
	}, base)
	require.NoError(t, err)
	require.NoError(t, detail.AddReview(0, murojaah.SegmentReview{IsSmooth: true}, base))

	s := NewEngine().Calculate(nil, []*murojaah.SurahDetail{detail}, base)
	assert.Equal(t, 1, s.CurrentStreak)
}

func TestCalculate_WeeklyProgress(t *testing.T) {
	base := timeutil.Date(2025, 3, 10)
	tgt := memorizedTarget(t, "t1", quran.AyahRange{StartSurah: 1, StartAyah: 1, EndSurah: 1, EndAyah: 7}, base)

	_, err := tgt.RecordPeerReview(base, review.PeerReview{PeerName: "Ahmad"}, base)
	require.NoError(t, err)

	s := NewEngine().Calculate([]*target.Target{tgt}, nil, base)
	require.Len(t, s.WeeklyProgress, 7)
	assert.Equal(t, 1, s.WeeklyProgress[6].Reviews) // today is the last bucket
	assert.Equal(t, 0, s.WeeklyProgress[0].Reviews)
}

func TestMetrics_Mapping(t *testing.T) {
	s := Statistics{
		CurrentStreak:      4,
		TotalAyahMemorized: 21,
		TotalPeerReviews:   9,
		PerfectReviews:     2,
		ConsecutiveQuality: 3,
	}
	m := s.Metrics()
	assert.Equal(t, 4, m.StreakDays)
	assert.Equal(t, 21, m.AyahsMemorized)
	assert.Equal(t, 9, m.TotalPeerReviews)
	assert.Equal(t, 2, m.PerfectReviews)
	assert.Equal(t, 3, m.ConsecutiveQuality)
}
