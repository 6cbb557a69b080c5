// Package achievement evaluates a declarative rule table against derived
// hafalan metrics. Unlocks are deduplicated by stable rule ID, never by
// display name, so evaluation is idempotent by construction.
package achievement

import (
	"fmt"
	"strconv"
	"time"
)

// Type categorizes an achievement rule.
type Type string

const (
	TypeStreak    Type = "STREAK"
	TypeMilestone Type = "MILESTONE"
	TypeQuality   Type = "QUALITY"
)

// Achievement is one unlocked rule, appended to a target and never removed.
type Achievement struct {
	RuleID      string    `json:"rule_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Type        Type      `json:"type"`
	UnlockedAt  time.Time `json:"unlocked_at"`
}

// Metrics are the inputs the rule table is evaluated against. They are
// derived numbers; the engine never mutates them.
type Metrics struct {
	StreakDays         int
	AyahsMemorized     int
	TotalPeerReviews   int
	PerfectReviews     int
	ConsecutiveQuality int
}

// Rule is a single row of the rule table.
type Rule struct {
	ID          string
	Name        string
	Description string
	Type        Type
	Met         func(m Metrics) bool
}

// streakThresholds and milestoneThresholds are the fixed ladders from the
// product rule table.
var (
	streakThresholds    = []int{1, 3, 7, 21, 30, 50, 100, 250, 500, 1000}
	milestoneThresholds = []int{7, 21, 30, 50, 100, 250, 500, 1000}
)

// Rules returns the full rule table.
func Rules() []Rule {
	rules := make([]Rule, 0, len(streakThresholds)+len(milestoneThresholds)+3)

	for _, days := range streakThresholds {
		days := days
		rules = append(rules, Rule{
			ID:          ruleID("streak", days),
			Name:        name("Istiqomah %d Hari", days),
			Description: description("Reviewed hafalan %d day(s) in a row", days),
			Type:        TypeStreak,
			Met:         func(m Metrics) bool { return m.StreakDays >= days },
		})
	}

	for _, ayahs := range milestoneThresholds {
		ayahs := ayahs
		rules = append(rules, Rule{
			ID:          ruleID("ayah", ayahs),
			Name:        name("Hafal %d Ayat", ayahs),
			Description: description("Memorized %d ayah(s)", ayahs),
			Type:        TypeMilestone,
			Met:         func(m Metrics) bool { return m.AyahsMemorized >= ayahs },
		})
	}

	rules = append(rules,
		Rule{
			ID:          "quality_first_review",
			Name:        "Setoran Pertama",
			Description: "Completed the first peer review",
			Type:        TypeQuality,
			Met:         func(m Metrics) bool { return m.TotalPeerReviews >= 1 },
		},
		Rule{
			ID:          "quality_perfect_5",
			Name:        "Lima Kali Lancar",
			Description: "Five peer reviews without a single mistake",
			Type:        TypeQuality,
			Met:         func(m Metrics) bool { return m.PerfectReviews >= 5 },
		},
		Rule{
			ID:          "quality_streak_10",
			Name:        "Sepuluh Setoran Berkualitas",
			Description: "Ten consecutive high-quality peer reviews",
			Type:        TypeQuality,
			Met:         func(m Metrics) bool { return m.ConsecutiveQuality >= 10 },
		},
	)

	return rules
}

// Check evaluates the rule table and returns the achievements whose rules
// are met and not yet present on the target. Calling it again with the same
// metrics and the grown achievement list returns nothing.
func Check(m Metrics, existing []Achievement, now time.Time) []Achievement {
	unlocked := make(map[string]bool, len(existing))
	for _, a := range existing {
		unlocked[a.RuleID] = true
	}

	var fresh []Achievement
	for _, rule := range Rules() {
		if unlocked[rule.ID] || !rule.Met(m) {
			continue
		}
		fresh = append(fresh, Achievement{
			RuleID:      rule.ID,
			Name:        rule.Name,
			Description: rule.Description,
			Type:        rule.Type,
			UnlockedAt:  now,
		})
	}
	return fresh
}

func ruleID(prefix string, threshold int) string {
	return prefix + "_" + strconv.Itoa(threshold)
}

func name(format string, n int) string {
	return fmt.Sprintf(format, n)
}

func description(format string, n int) string {
	return fmt.Sprintf(format, n)
}
