package target

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hafalan-hub/hafalan-engine/internal/domain/quran"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/review"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/shared"
	"github.com/hafalan-hub/hafalan-engine/pkg/timeutil"
)

var fatihah = quran.AyahRange{StartSurah: 1, StartAyah: 1, EndSurah: 1, EndAyah: 7}

func newTarget(t *testing.T) *Target {
	t.Helper()
	tgt, err := New("t1", fatihah, timeutil.Date(2025, 3, 10))
	require.NoError(t, err)
	return tgt
}

func TestNew(t *testing.T) {
	tgt := newTarget(t)
	assert.Equal(t, StatusPlanned, tgt.Status)
	assert.Equal(t, 7, tgt.AyahCount())
	assert.Empty(t, tgt.Reviews)
	require.Len(t, tgt.Logs, 1)
	assert.Equal(t, LogCreated, tgt.Logs[0].Kind)
}

func TestNew_Invalid(t *testing.T) {
	_, err := New("", fatihah, timeutil.Date(2025, 3, 10))
	assert.ErrorIs(t, err, shared.ErrInvalidID)

	_, err = New("t1", quran.AyahRange{StartSurah: 1, StartAyah: 1, EndSurah: 1, EndAyah: 8}, timeutil.Date(2025, 3, 10))
	assert.ErrorIs(t, err, shared.ErrInvalidAyahRange)
}

func TestChangeStatus_AdjacentOnly(t *testing.T) {
	tgt := newTarget(t)
	now := timeutil.Date(2025, 3, 11)

	// Skipping a state is rejected.
	_, err := tgt.ChangeStatus(StatusSelfReview, now)
	assert.ErrorIs(t, err, shared.ErrInvalidTargetStatus)

	// Moving backwards is rejected.
	changed, err := tgt.ChangeStatus(StatusInProgress, now)
	require.NoError(t, err)
	assert.True(t, changed)
	_, err = tgt.ChangeStatus(StatusPlanned, now)
	assert.ErrorIs(t, err, shared.ErrInvalidTargetStatus)
}

func TestChangeStatus_SameStateIsNoOp(t *testing.T) {
	tgt := newTarget(t)
	changed, err := tgt.ChangeStatus(StatusPlanned, timeutil.Date(2025, 3, 11))
	assert.NoError(t, err)
	assert.False(t, changed)
}

func TestChangeStatus_GeneratesScheduleOnMemorized(t *testing.T) {
	tgt := newTarget(t)
	now := timeutil.Date(2025, 3, 11)

	_, err := tgt.ChangeStatus(StatusInProgress, now)
	require.NoError(t, err)
	assert.Empty(t, tgt.Reviews)

	_, err = tgt.ChangeStatus(StatusSelfReview, now)
	require.NoError(t, err)
	require.Len(t, tgt.Reviews, 10)
	assert.True(t, tgt.Reviews[0].Date.Equal(timeutil.StartOfDay(now)))
	assert.True(t, tgt.Reviews[9].Date.Equal(timeutil.AddDays(now, 28)))
}

func TestChangeStatus_FullLifecycle(t *testing.T) {
	tgt := newTarget(t)
	now := timeutil.Date(2025, 3, 11)

	for _, next := range []Status{StatusInProgress, StatusSelfReview, StatusTeacherReview, StatusMutqin} {
		changed, err := tgt.ChangeStatus(next, now)
		require.NoError(t, err)
		assert.True(t, changed)
	}
	assert.True(t, tgt.Status.IsTerminal())

	_, ok := tgt.Status.Next()
	assert.False(t, ok)
}

func TestActivate(t *testing.T) {
	tgt := newTarget(t)
	now := timeutil.Date(2025, 3, 11)

	changed, err := tgt.Activate(now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, StatusInProgress, tgt.Status)

	// Activating again is a no-op, not an error.
	changed, err = tgt.Activate(now)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestSetPreparation_AbsoluteValues(t *testing.T) {
	tgt := newTarget(t)
	now := timeutil.Date(2025, 3, 11)

	require.NoError(t, tgt.SetPreparation(PrepListening, 4, now))
	require.NoError(t, tgt.SetPreparation(PrepListening, 10, now))
	assert.Equal(t, 10, tgt.Preparation.ListeningCount)
	assert.False(t, tgt.Preparation.Ready())

	require.NoError(t, tgt.SetPreparation(PrepReading, 40, now))
	require.NoError(t, tgt.SetPreparation(PrepMemorization, 20, now))
	assert.True(t, tgt.Preparation.Ready())
}

func TestSetPreparation_Invalid(t *testing.T) {
	tgt := newTarget(t)
	now := timeutil.Date(2025, 3, 11)

	assert.ErrorIs(t, tgt.SetPreparation("tilawah", 1, now), shared.ErrInvalidInput)
	assert.ErrorIs(t, tgt.SetPreparation(PrepReading, -1, now), shared.ErrValueOutOfRange)
}

func TestRecordPeerReview(t *testing.T) {
	tgt := newTarget(t)
	now := timeutil.Date(2025, 3, 11)
	_, err := tgt.ChangeStatus(StatusInProgress, now)
	require.NoError(t, err)
	_, err = tgt.ChangeStatus(StatusSelfReview, now)
	require.NoError(t, err)

	for i, name := range []string{"Ahmad", "Budi"} {
		completedNow, err := tgt.RecordPeerReview(now, review.PeerReview{PeerName: name}, now)
		require.NoError(t, err)
		assert.False(t, completedNow, "review %d", i)
	}

	completedNow, err := tgt.RecordPeerReview(now, review.PeerReview{PeerName: "Citra"}, now)
	require.NoError(t, err)
	assert.True(t, completedNow)

	// The fourth review does not re-report completion.
	completedNow, err = tgt.RecordPeerReview(now, review.PeerReview{PeerName: "Dian"}, now)
	require.NoError(t, err)
	assert.False(t, completedNow)
}

func TestRecordPeerReview_NoEntryForDay(t *testing.T) {
	tgt := newTarget(t)
	now := timeutil.Date(2025, 3, 11)
	_, err := tgt.ChangeStatus(StatusInProgress, now)
	require.NoError(t, err)
	_, err = tgt.ChangeStatus(StatusSelfReview, now)
	require.NoError(t, err)

	// Day 10 falls in the gap between offsets 6 and 14.
	_, err = tgt.RecordPeerReview(timeutil.AddDays(now, 10), review.PeerReview{PeerName: "Ahmad"}, now)
	assert.ErrorIs(t, err, shared.ErrReviewNotFound)
}

func TestClone_Independent(t *testing.T) {
	tgt := newTarget(t)
	now := timeutil.Date(2025, 3, 11)
	_, err := tgt.ChangeStatus(StatusInProgress, now)
	require.NoError(t, err)
	_, err = tgt.ChangeStatus(StatusSelfReview, now)
	require.NoError(t, err)

	clone := tgt.Clone()
	_, err = clone.RecordPeerReview(now, review.PeerReview{PeerName: "Ahmad"}, now)
	require.NoError(t, err)

	assert.Empty(t, tgt.Reviews[0].PeerReviews)
	assert.Len(t, clone.Reviews[0].PeerReviews, 1)
}
