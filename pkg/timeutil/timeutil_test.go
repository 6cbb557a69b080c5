package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSameDay_AcrossZones(t *testing.T) {
	// 17:30 UTC is 00:30 the next day in WIB.
	utcEvening := time.Date(2025, 3, 10, 17, 30, 0, 0, time.UTC)
	wibMorning := time.Date(2025, 3, 11, 8, 0, 0, 0, WIB)

	assert.True(t, SameDay(utcEvening, wibMorning))
	assert.False(t, SameDay(utcEvening, Date(2025, 3, 10)))
}

func TestDayKey(t *testing.T) {
	assert.Equal(t, "2025-03-10", DayKey(time.Date(2025, 3, 10, 23, 59, 0, 0, WIB)))
	assert.Equal(t, "2025-03-11", DayKey(time.Date(2025, 3, 10, 17, 30, 0, 0, time.UTC)))
}

func TestStartEndOfDay(t *testing.T) {
	ts := time.Date(2025, 3, 10, 15, 42, 7, 0, WIB)
	assert.Equal(t, Date(2025, 3, 10), StartOfDay(ts))
	assert.Equal(t, "2025-03-10", DayKey(EndOfDay(ts)))
}

func TestDaysBetween(t *testing.T) {
	a := Date(2025, 3, 10)
	assert.Equal(t, 0, DaysBetween(a, a.Add(23*time.Hour)))
	assert.Equal(t, 1, DaysBetween(a, Date(2025, 3, 11)))
	assert.Equal(t, -2, DaysBetween(a, Date(2025, 3, 8)))
}

func TestCeilDaysSince(t *testing.T) {
	base := Date(2025, 3, 10)
	assert.Equal(t, 0, CeilDaysSince(base, base))
	assert.Equal(t, 1, CeilDaysSince(base, base.Add(2*time.Hour)))
	assert.Equal(t, 1, CeilDaysSince(base, base.Add(24*time.Hour)))
	assert.Equal(t, 2, CeilDaysSince(base, base.Add(25*time.Hour)))
}

func TestAddDays_NormalizesToStartOfDay(t *testing.T) {
	ts := time.Date(2025, 3, 10, 22, 0, 0, 0, WIB)
	assert.Equal(t, Date(2025, 3, 17), AddDays(ts, 7))
}

func TestStartOfWeek(t *testing.T) {
	// 2025-03-13 is a Thursday; the week starts Monday 2025-03-10.
	assert.Equal(t, Date(2025, 3, 10), StartOfWeek(Date(2025, 3, 13)))
	// Sunday belongs to the week that started the previous Monday.
	assert.Equal(t, Date(2025, 3, 10), StartOfWeek(Date(2025, 3, 16)))
}
