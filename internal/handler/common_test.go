package handler

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
)

func TestDayBoundsFor(t *testing.T) {
    start, end := dayBoundsFor("2026-03-14")

    assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), start)
    assert.Equal(t, time.Date(2026, 3, 14, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC), end)
}

func TestDayBoundsForBadDateFallsBackToToday(t *testing.T) {
    start, end := dayBoundsFor("not-a-date")

    now := time.Now().UTC()
    assert.Equal(t, now.Truncate(24*time.Hour), start)
    assert.True(t, end.After(start))
    assert.Equal(t, 24*time.Hour-time.Nanosecond, end.Sub(start))
}
