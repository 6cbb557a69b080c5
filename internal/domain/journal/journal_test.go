package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hafalan-hub/hafalan-engine/internal/domain/murojaah"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/quran"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/shared"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/stats"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/target"
	"github.com/hafalan-hub/hafalan-engine/pkg/timeutil"
)

func addTarget(t *testing.T, j *Journal, id string) *target.Target {
	t.Helper()
	now := timeutil.Date(2025, 3, 10)
	tgt, err := target.New(id, quran.AyahRange{StartSurah: 1, StartAyah: 1, EndSurah: 1, EndAyah: 7}, now)
	require.NoError(t, err)
	require.NoError(t, j.AddTarget(tgt, now))
	return tgt
}

func TestAddTarget_DuplicateID(t *testing.T) {
	j := New()
	tgt := addTarget(t, j, "t1")
	err := j.AddTarget(tgt, timeutil.Date(2025, 3, 10))
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestFindTarget_Missing(t *testing.T) {
	j := New()
	_, err := j.FindTarget("nope")
	assert.ErrorIs(t, err, shared.ErrTargetNotFound)
}

func TestSetActive_StartsPlannedTarget(t *testing.T) {
	j := New()
	addTarget(t, j, "t1")
	now := timeutil.Date(2025, 3, 11)

	started, err := j.SetActive("t1", now)
	require.NoError(t, err)
	assert.True(t, started)

	active := j.ActiveTarget()
	require.NotNil(t, active)
	assert.Equal(t, target.StatusInProgress, active.Status)
}

func TestSetActive_SwitchLeavesPreviousAlone(t *testing.T) {
	j := New()
	addTarget(t, j, "t1")
	addTarget(t, j, "t2")
	now := timeutil.Date(2025, 3, 11)

	_, err := j.SetActive("t1", now)
	require.NoError(t, err)
	_, err = j.SetActive("t2", now)
	require.NoError(t, err)

	assert.Equal(t, "t2", j.ActiveTargetID)
	t1, err := j.FindTarget("t1")
	require.NoError(t, err)
	assert.Equal(t, target.StatusInProgress, t1.Status) // not reverted
}

func TestSetActive_EmptyClears(t *testing.T) {
	j := New()
	addTarget(t, j, "t1")
	now := timeutil.Date(2025, 3, 11)

	_, err := j.SetActive("t1", now)
	require.NoError(t, err)
	_, err = j.SetActive("", now)
	require.NoError(t, err)
	assert.Nil(t, j.ActiveTarget())
}

func TestSetActive_TerminalRejected(t *testing.T) {
	j := New()
	tgt := addTarget(t, j, "t1")
	now := timeutil.Date(2025, 3, 11)

	for _, next := range []target.Status{
		target.StatusInProgress, target.StatusSelfReview,
		target.StatusTeacherReview, target.StatusMutqin,
	} {
		_, err := tgt.ChangeStatus(next, now)
		require.NoError(t, err)
	}

	_, err := j.SetActive("t1", now)
	assert.ErrorIs(t, err, shared.ErrTargetTerminal)
}

func TestRemoveTarget_ClearsActivePointer(t *testing.T) {
	j := New()
	addTarget(t, j, "t1")
	now := timeutil.Date(2025, 3, 11)

	_, err := j.SetActive("t1", now)
	require.NoError(t, err)
	require.NoError(t, j.RemoveTarget("t1", now))

	assert.Empty(t, j.ActiveTargetID)
	assert.Empty(t, j.Targets)
	assert.ErrorIs(t, j.RemoveTarget("t1", now), shared.ErrTargetNotFound)
}

func TestAddSurahDetail_OnePerSurah(t *testing.T) {
	j := New()
	now := timeutil.Date(2025, 3, 10)

	detail, err := murojaah.NewSurahDetail(112, []murojaah.Segment{
		{StartPage: 604, EndPage: 604, StartVerse: 1, EndVerse: 4},
	}, now)
	require.NoError(t, err)
	require.NoError(t, j.AddSurahDetail(detail, now))

	dup, err := murojaah.NewSurahDetail(112, []murojaah.Segment{
		{StartPage: 604, EndPage: 604, StartVerse: 1, EndVerse: 4},
	}, now)
	require.NoError(t, err)
	assert.ErrorIs(t, j.AddSurahDetail(dup, now), shared.ErrSurahDetailExists)
}

func TestRecalculate(t *testing.T) {
	j := New()
	tgt := addTarget(t, j, "t1")
	now := timeutil.Date(2025, 3, 11)

	_, err := tgt.ChangeStatus(target.StatusInProgress, now)
	require.NoError(t, err)
	_, err = tgt.ChangeStatus(target.StatusSelfReview, now)
	require.NoError(t, err)

	j.Recalculate(stats.NewEngine(), now)
	assert.Equal(t, 7, j.Statistics.TotalAyahMemorized)
}

func TestClone_DeepCopy(t *testing.T) {
	j := New()
	addTarget(t, j, "t1")
	now := timeutil.Date(2025, 3, 11)

	clone := j.Clone()
	_, err := clone.SetActive("t1", now)
	require.NoError(t, err)

	assert.Empty(t, j.ActiveTargetID)
	orig, err := j.FindTarget("t1")
	require.NoError(t, err)
	assert.Equal(t, target.StatusPlanned, orig.Status)
}
