package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCurrentDay(t *testing.T) {
	start := int64(1700000000)
	pool := &Pool{ActualStartTime: start, DurationDays: 7}

	require.Equal(t, 0, pool.CurrentDay(start-1))
	require.Equal(t, 1, pool.CurrentDay(start))
	require.Equal(t, 1, pool.CurrentDay(start+86399))
	require.Equal(t, 2, pool.CurrentDay(start+86400))
	require.Equal(t, 7, pool.CurrentDay(start+86400*6))

	// Capped at the pool duration
	require.Equal(t, 7, pool.CurrentDay(start+86400*100))
}

func TestCurrentDayBeforeActivation(t *testing.T) {
	pool := &Pool{DurationDays: 7}
	require.Equal(t, 0, pool.CurrentDay(1700000000))
}

func TestDayWindow(t *testing.T) {
	start := int64(1700000000)
	pool := &Pool{ActualStartTime: start, DurationDays: 7}

	from, to := pool.DayWindow(1)
	require.Equal(t, start, from)
	require.Equal(t, start+86400, to)

	// Windows tile without gaps
	from2, to2 := pool.DayWindow(2)
	require.Equal(t, to, from2)
	require.Equal(t, start+2*86400, to2)
}
