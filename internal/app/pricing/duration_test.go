package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinutes(t *testing.T) {
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, Minutes(start, start))
	assert.Equal(t, 0, Minutes(start, start.Add(-time.Hour)))
	assert.Equal(t, 60, Minutes(start, start.Add(time.Hour)))
	// Неполная минута считается целой
	assert.Equal(t, 61, Minutes(start, start.Add(time.Hour+30*time.Second)))
}

func TestBilledPeriods(t *testing.T) {
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	// Минимум один период даже для короткого интервала
	periods, err := BilledPeriods(start, start.Add(10*time.Minute), ModeHour)
	require.NoError(t, err)
	assert.Equal(t, 1, periods)

	// Ровно два периода
	periods, err = BilledPeriods(start, start.Add(2*time.Hour), ModeHour)
	require.NoError(t, err)
	assert.Equal(t, 2, periods)

	// Округление вверх: 25 часов = 2 дня
	periods, err = BilledPeriods(start, start.Add(25*time.Hour), ModeDay)
	require.NoError(t, err)
	assert.Equal(t, 2, periods)

	// 8 дней = 2 недели
	periods, err = BilledPeriods(start, start.AddDate(0, 0, 8), ModeWeek)
	require.NoError(t, err)
	assert.Equal(t, 2, periods)

	_, err = BilledPeriods(start, start, ModeHour)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = BilledPeriods(start, start.Add(time.Hour), Mode("year"))
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestLocalClock(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	// 8:30 UTC летом = 10:30 в Париже
	utc := time.Date(2025, 6, 2, 8, 30, 0, 0, time.UTC)
	day, minute := LocalClock(utc, paris)
	assert.Equal(t, time.Monday, day)
	assert.Equal(t, 10*60+30, minute)

	// Переход через полночь меняет день недели
	utc = time.Date(2025, 6, 2, 23, 0, 0, 0, time.UTC)
	day, minute = LocalClock(utc, paris)
	assert.Equal(t, time.Tuesday, day)
	assert.Equal(t, 60, minute)
}
