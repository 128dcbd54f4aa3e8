package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModePeriodMinutes(t *testing.T) {
	assert.Equal(t, 60, ModeHour.PeriodMinutes())
	assert.Equal(t, 1440, ModeDay.PeriodMinutes())
	assert.Equal(t, 10080, ModeWeek.PeriodMinutes())
	assert.Equal(t, 0, Mode("month").PeriodMinutes())

	assert.True(t, ModeDay.Valid())
	assert.False(t, Mode("").Valid())
}

func TestBestRate(t *testing.T) {
	// Дневной тариф дешевле в пересчете на минуту:
	// 10/час = 240/день эквивалент, а день стоит 50
	rates := []Rate{
		{Mode: ModeHour, Amount: 10},
		{Mode: ModeDay, Amount: 50},
	}
	best, ok := BestRate(rates)
	require.True(t, ok)
	assert.Equal(t, ModeDay, best.Mode)

	// При равной цене за минуту выигрывает более короткий период
	rates = []Rate{
		{Mode: ModeWeek, Amount: 7 * 240},
		{Mode: ModeDay, Amount: 240},
		{Mode: ModeHour, Amount: 10},
	}
	best, ok = BestRate(rates)
	require.True(t, ok)
	assert.Equal(t, ModeHour, best.Mode)

	// Невалидные режимы пропускаются
	rates = []Rate{
		{Mode: Mode("month"), Amount: 1},
		{Mode: ModeHour, Amount: 100},
	}
	best, ok = BestRate(rates)
	require.True(t, ok)
	assert.Equal(t, ModeHour, best.Mode)

	_, ok = BestRate(nil)
	assert.False(t, ok)
}

func TestApplicableTier(t *testing.T) {
	tiers := []Tier{
		{MinPeriods: 3, DiscountPercent: 10},
		{MinPeriods: 7, DiscountPercent: 20},
	}

	_, ok := ApplicableTier(tiers, 2)
	assert.False(t, ok)

	tier, ok := ApplicableTier(tiers, 3)
	require.True(t, ok)
	assert.Equal(t, 10.0, tier.DiscountPercent)

	tier, ok = ApplicableTier(tiers, 5)
	require.True(t, ok)
	assert.Equal(t, 10.0, tier.DiscountPercent)

	// Выбирается порог с наибольшим подходящим MinPeriods
	tier, ok = ApplicableTier(tiers, 10)
	require.True(t, ok)
	assert.Equal(t, 20.0, tier.DiscountPercent)
}

func TestRateAfterTier(t *testing.T) {
	assert.Equal(t, 90.0, RateAfterTier(100, Tier{MinPeriods: 1, DiscountPercent: 10}))
	assert.Equal(t, 0.0, RateAfterTier(100, Tier{MinPeriods: 1, DiscountPercent: 100}))
	// Скидка больше 100% не дает отрицательную ставку
	assert.Equal(t, 0.0, RateAfterTier(100, Tier{MinPeriods: 1, DiscountPercent: 150}))
}

func TestStartingFrom(t *testing.T) {
	tiers := []Tier{
		{MinPeriods: 3, DiscountPercent: 10},
		{MinPeriods: 7, DiscountPercent: 25},
	}
	// Цена "от" — базовая ставка с максимальной скидкой
	assert.Equal(t, 75.0, StartingFrom(100, tiers))
	assert.Equal(t, 100.0, StartingFrom(100, nil))
}

func TestQuoteLine(t *testing.T) {
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	// 5 часов ровно, без скидки
	q, err := QuoteLine(10, ModeHour, nil, start, start.Add(5*time.Hour), 1)
	require.NoError(t, err)
	assert.Equal(t, 5, q.Periods)
	assert.Equal(t, 10.0, q.PeriodRate)
	assert.Equal(t, 0.0, q.DiscountPercent)
	assert.Equal(t, 50.0, q.SubTotal)

	// Неполный период округляется вверх: 5ч30м = 6 периодов
	q, err = QuoteLine(10, ModeHour, nil, start, start.Add(5*time.Hour+30*time.Minute), 1)
	require.NoError(t, err)
	assert.Equal(t, 6, q.Periods)
	assert.Equal(t, 60.0, q.SubTotal)

	// Скидочный порог и количество
	tiers := []Tier{{MinPeriods: 3, DiscountPercent: 10}}
	q, err = QuoteLine(100, ModeDay, tiers, start, start.Add(72*time.Hour), 2)
	require.NoError(t, err)
	assert.Equal(t, 3, q.Periods)
	assert.Equal(t, 90.0, q.PeriodRate)
	assert.Equal(t, 10.0, q.DiscountPercent)
	assert.Equal(t, 540.0, q.SubTotal)

	// Количество меньше единицы приводится к единице
	q, err = QuoteLine(10, ModeHour, nil, start, start.Add(time.Hour), 0)
	require.NoError(t, err)
	assert.Equal(t, 10.0, q.SubTotal)

	// Ошибки
	_, err = QuoteLine(10, Mode("month"), nil, start, start.Add(time.Hour), 1)
	assert.ErrorIs(t, err, ErrUnknownMode)

	_, err = QuoteLine(10, ModeHour, nil, start, start, 1)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}
