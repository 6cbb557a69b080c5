package achievement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func TestCheck_UnlocksMetRules(t *testing.T) {
	m := Metrics{StreakDays: 3, AyahsMemorized: 7, TotalPeerReviews: 1}

	fresh := Check(m, nil, testNow)

	ids := ruleIDs(fresh)
	assert.Contains(t, ids, "streak_1")
	assert.Contains(t, ids, "streak_3")
	assert.Contains(t, ids, "ayah_7")
	assert.Contains(t, ids, "quality_first_review")
	assert.NotContains(t, ids, "streak_7")
	assert.NotContains(t, ids, "ayah_21")
}

func TestCheck_Idempotent(t *testing.T) {
	m := Metrics{StreakDays: 7, AyahsMemorized: 30, TotalPeerReviews: 5, PerfectReviews: 5}

	first := Check(m, nil, testNow)
	assert.NotEmpty(t, first)

	second := Check(m, first, testNow.Add(time.Hour))
	assert.Empty(t, second)
}

func TestCheck_DedupeByRuleID_NotName(t *testing.T) {
	// An achievement stored under an older display name still blocks
	// re-unlocking as long as the rule id matches.
	existing := []Achievement{{RuleID: "streak_1", Name: "Old Display Name", Type: TypeStreak}}

	fresh := Check(Metrics{StreakDays: 1}, existing, testNow)
	assert.NotContains(t, ruleIDs(fresh), "streak_1")
}

func TestCheck_GrowsIncrementally(t *testing.T) {
	existing := Check(Metrics{StreakDays: 1}, nil, testNow)
	assert.Equal(t, []string{"streak_1"}, ruleIDs(existing))

	fresh := Check(Metrics{StreakDays: 3}, existing, testNow)
	assert.Equal(t, []string{"streak_3"}, ruleIDs(fresh))
}

func TestCheck_QualityRules(t *testing.T) {
	m := Metrics{TotalPeerReviews: 12, PerfectReviews: 5, ConsecutiveQuality: 10}

	ids := ruleIDs(Check(m, nil, testNow))
	assert.Contains(t, ids, "quality_first_review")
	assert.Contains(t, ids, "quality_perfect_5")
	assert.Contains(t, ids, "quality_streak_10")
}

func TestRules_StableIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, rule := range Rules() {
		assert.NotEmpty(t, rule.ID)
		assert.False(t, seen[rule.ID], "duplicate rule id %s", rule.ID)
		seen[rule.ID] = true
	}
	assert.Len(t, seen, 21)
}

func TestCheck_StampsUnlockedAt(t *testing.T) {
	fresh := Check(Metrics{StreakDays: 1}, nil, testNow)
	assert.Len(t, fresh, 1)
	assert.True(t, fresh[0].UnlockedAt.Equal(testNow))
}

func ruleIDs(list []Achievement) []string {
	ids := make([]string, 0, len(list))
	for _, a := range list {
		ids = append(ids, a.RuleID)
	}
	return ids
}
