package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hafalan-hub/hafalan-engine/internal/domain/shared"
	"github.com/hafalan-hub/hafalan-engine/pkg/timeutil"
)

func TestGenerate_Offsets(t *testing.T) {
	start := timeutil.Date(2025, 3, 10)
	entries := Generate(start)

	assert.Len(t, entries, 10)
	for i, offset := range ScheduleOffsets {
		assert.Equal(t, timeutil.AddDays(start, offset), entries[i].Date)
		assert.False(t, entries[i].Completed)
		assert.Empty(t, entries[i].PeerReviews)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	start := time.Date(2025, 3, 10, 22, 45, 0, 0, timeutil.WIB)

	a := Generate(start)
	b := Generate(start)
	for i := range a {
		assert.True(t, a[i].Date.Equal(b[i].Date))
	}
}

func TestSchedule_MatchesDay_IgnoresTimeOfDay(t *testing.T) {
	entry := Schedule{Date: timeutil.Date(2025, 3, 10)}

	morning := time.Date(2025, 3, 10, 6, 0, 0, 0, timeutil.WIB)
	night := time.Date(2025, 3, 10, 23, 59, 0, 0, timeutil.WIB)
	nextDay := time.Date(2025, 3, 11, 0, 1, 0, 0, timeutil.WIB)

	assert.True(t, entry.MatchesDay(morning))
	assert.True(t, entry.MatchesDay(night))
	assert.False(t, entry.MatchesDay(nextDay))
}

func TestSchedule_AddPeerReview_CompletesAtThree(t *testing.T) {
	entry := Schedule{Date: timeutil.Date(2025, 3, 10)}
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, timeutil.WIB)

	entry.AddPeerReview(PeerReview{PeerName: "Ahmad"}, now)
	assert.False(t, entry.Completed)
	entry.AddPeerReview(PeerReview{PeerName: "Budi"}, now)
	assert.False(t, entry.Completed)
	entry.AddPeerReview(PeerReview{PeerName: "Citra"}, now)
	assert.True(t, entry.Completed)

	// Completion is monotonic; a fourth review keeps it completed.
	entry.AddPeerReview(PeerReview{PeerName: "Dian"}, now)
	assert.True(t, entry.Completed)
	assert.Len(t, entry.PeerReviews, 4)
}

func TestSchedule_AddPeerReview_StampsDate(t *testing.T) {
	entry := Schedule{Date: timeutil.Date(2025, 3, 10)}
	now := time.Date(2025, 3, 12, 9, 0, 0, 0, timeutil.WIB)

	entry.AddPeerReview(PeerReview{PeerName: "Ahmad", Date: timeutil.Date(2020, 1, 1)}, now)
	assert.True(t, entry.PeerReviews[0].Date.Equal(now))
}

func TestFindByDay(t *testing.T) {
	entries := Generate(timeutil.Date(2025, 3, 10))

	idx, ok := FindByDay(entries, time.Date(2025, 3, 24, 15, 0, 0, 0, timeutil.WIB))
	assert.True(t, ok)
	assert.Equal(t, 7, idx) // day offset 14

	_, ok = FindByDay(entries, timeutil.Date(2025, 3, 20))
	assert.False(t, ok) // gap between day 6 and day 14
}

func TestPeerReview_Validate(t *testing.T) {
	assert.ErrorIs(t, PeerReview{PeerName: "  "}.Validate(), shared.ErrPeerNameRequired)
	assert.ErrorIs(t, PeerReview{PeerName: "Ahmad", Mistakes: -1}.Validate(), shared.ErrInvalidMistakes)
	assert.ErrorIs(t, PeerReview{PeerName: "Ahmad", Slot: "Sore"}.Validate(), shared.ErrInvalidSlot)
	assert.NoError(t, PeerReview{PeerName: "Ahmad", Slot: SlotPagi}.Validate())
	assert.NoError(t, PeerReview{PeerName: "Ahmad"}.Validate()) // empty slot is fine
}

func TestPeerReview_Score(t *testing.T) {
	assert.Equal(t, 100, PeerReview{Mistakes: 0}.Score())
	assert.Equal(t, 70, PeerReview{Mistakes: 3}.Score())
	assert.Equal(t, 0, PeerReview{Mistakes: 10}.Score())
	assert.Equal(t, 0, PeerReview{Mistakes: 25}.Score()) // floored, never negative
}

func TestPeerReview_Quality(t *testing.T) {
	assert.True(t, PeerReview{Mistakes: 0}.IsPerfect())
	assert.False(t, PeerReview{Mistakes: 1}.IsPerfect())
	assert.True(t, PeerReview{Mistakes: 2}.IsHighQuality())
	assert.False(t, PeerReview{Mistakes: 3}.IsHighQuality())
}
