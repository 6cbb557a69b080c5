package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
)

// FeatureFlags manages runtime feature toggles. Flags gate behaviors that
// changed between journal schema generations, so an operator can pin the old
// behavior while migrating historical data.
type FeatureFlags struct {
	mu       sync.RWMutex
	features map[string]*Feature
}

// Feature represents a single feature flag.
type Feature struct {
	Name        string
	Description string
	Enabled     bool
}

// Predefined feature flag names.
const (
	// FeatureApproximateAyahCount restores the legacy ayah-counting formula
	// that ignored surah boundaries in multi-surah ranges. Off by default;
	// only useful for reproducing statistics computed by old clients.
	FeatureApproximateAyahCount = "stats.approximate_ayah_count"

	// FeatureAchievementQualityRules enables the review-quality achievement
	// rules on top of the streak and milestone tables.
	FeatureAchievementQualityRules = "achievement.quality_rules"

	// FeatureMurojaahUrgency enables urgency classification in the review
	// queue. Disabling it lists chapters in plain surah order.
	FeatureMurojaahUrgency = "murojaah.urgency"
)

// LoadFeatureFlags loads feature flags from environment variables.
func LoadFeatureFlags() *FeatureFlags {
	ff := &FeatureFlags{features: make(map[string]*Feature)}
	ff.initializeDefaults()
	ff.loadFromEnvironment()
	return ff
}

func (ff *FeatureFlags) initializeDefaults() {
	ff.features[FeatureApproximateAyahCount] = &Feature{
		Name:        FeatureApproximateAyahCount,
		Description: "Use the legacy endAyah-startAyah formula for multi-surah ranges",
		Enabled:     false,
	}

	ff.features[FeatureAchievementQualityRules] = &Feature{
		Name:        FeatureAchievementQualityRules,
		Description: "Evaluate review-quality achievement rules",
		Enabled:     true,
	}

	ff.features[FeatureMurojaahUrgency] = &Feature{
		Name:        FeatureMurojaahUrgency,
		Description: "Classify murojaah queue entries by overdue urgency",
		Enabled:     true,
	}
}

// loadFromEnvironment applies FEATURE_* overrides. The variable name is the
// flag name uppercased with separators replaced, e.g.
// FEATURE_STATS_APPROXIMATE_AYAH_COUNT=true.
func (ff *FeatureFlags) loadFromEnvironment() {
	for name, feature := range ff.features {
		envKey := "FEATURE_" + strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(name))
		val := os.Getenv(envKey)
		if val == "" {
			continue
		}
		if enabled, err := strconv.ParseBool(val); err == nil {
			feature.Enabled = enabled
		}
	}
}

// IsEnabled reports whether a feature is on. Unknown flags are off.
func (ff *FeatureFlags) IsEnabled(name string) bool {
	ff.mu.RLock()
	defer ff.mu.RUnlock()

	feature, ok := ff.features[name]
	return ok && feature.Enabled
}

// Set toggles a feature at runtime.
func (ff *FeatureFlags) Set(name string, enabled bool) {
	ff.mu.Lock()
	defer ff.mu.Unlock()

	if feature, ok := ff.features[name]; ok {
		feature.Enabled = enabled
	}
}

// All returns a snapshot of every flag's state.
func (ff *FeatureFlags) All() map[string]bool {
	ff.mu.RLock()
	defer ff.mu.RUnlock()

	out := make(map[string]bool, len(ff.features))
	for name, feature := range ff.features {
		out[name] = feature.Enabled
	}
	return out
}
