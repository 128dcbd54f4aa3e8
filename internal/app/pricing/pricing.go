package pricing

import (
	"errors"
	"math"
	"time"
)

// Режим тарификации оборудования
type Mode string

const (
	ModeHour Mode = "hour"
	ModeDay  Mode = "day"
	ModeWeek Mode = "week"
)

var ErrUnknownMode = errors.New("неизвестный режим тарификации")

// PeriodMinutes возвращает длину одного периода тарификации в минутах
func (m Mode) PeriodMinutes() int {
	switch m {
	case ModeHour:
		return 60
	case ModeDay:
		return 24 * 60
	case ModeWeek:
		return 7 * 24 * 60
	}
	return 0
}

func (m Mode) Valid() bool {
	return m.PeriodMinutes() > 0
}

// Tier — скидочный порог: при длительности от MinPeriods периодов
// ставка за период уменьшается на DiscountPercent процентов
type Tier struct {
	MinPeriods      int
	DiscountPercent float64
}

// Rate — кандидатная строка тарифа (период + ставка за период)
type Rate struct {
	Mode   Mode
	Amount float64
}

// PerMinute возвращает цену за минуту аренды по данной строке тарифа
func (r Rate) PerMinute() float64 {
	minutes := r.Mode.PeriodMinutes()
	if minutes == 0 {
		return math.Inf(1)
	}
	return r.Amount / float64(minutes)
}

// BestRate выбирает строку с минимальной ценой за минуту.
// При равенстве выигрывает более короткий период.
func BestRate(rates []Rate) (Rate, bool) {
	var best Rate
	found := false
	for _, r := range rates {
		if !r.Mode.Valid() {
			continue
		}
		if !found {
			best = r
			found = true
			continue
		}
		pm, bestPM := r.PerMinute(), best.PerMinute()
		if pm < bestPM || (pm == bestPM && r.Mode.PeriodMinutes() < best.Mode.PeriodMinutes()) {
			best = r
		}
	}
	return best, found
}

// ApplicableTier возвращает порог с наибольшим MinPeriods <= periods
func ApplicableTier(tiers []Tier, periods int) (Tier, bool) {
	var best Tier
	found := false
	for _, t := range tiers {
		if t.MinPeriods > periods {
			continue
		}
		if !found || t.MinPeriods > best.MinPeriods {
			best = t
			found = true
		}
	}
	return best, found
}

// RateAfterTier применяет скидку порога к базовой ставке
func RateAfterTier(base float64, t Tier) float64 {
	rate := base * (1 - t.DiscountPercent/100)
	if rate < 0 {
		return 0
	}
	return rate
}

// StartingFrom возвращает минимально возможную ставку за период
// (базовая ставка с максимальной скидкой) — цена "от" для витрины
func StartingFrom(base float64, tiers []Tier) float64 {
	best := base
	for _, t := range tiers {
		if rate := RateAfterTier(base, t); rate < best {
			best = rate
		}
	}
	return best
}

// Quote — результат расчета одной позиции брони
type Quote struct {
	Periods         int
	PeriodRate      float64 // ставка за период после скидки
	DiscountPercent float64
	SubTotal        float64 // PeriodRate × Periods × Quantity
}

// QuoteLine считает стоимость позиции: длительность округляется вверх
// до целых периодов, затем подбирается скидочный порог
func QuoteLine(base float64, mode Mode, tiers []Tier, start, end time.Time, quantity int) (Quote, error) {
	periods, err := BilledPeriods(start, end, mode)
	if err != nil {
		return Quote{}, err
	}
	if quantity < 1 {
		quantity = 1
	}

	rate := base
	discount := 0.0
	if tier, ok := ApplicableTier(tiers, periods); ok {
		rate = RateAfterTier(base, tier)
		discount = tier.DiscountPercent
	}

	return Quote{
		Periods:         periods,
		PeriodRate:      rate,
		DiscountPercent: discount,
		SubTotal:        rate * float64(periods) * float64(quantity),
	}, nil
}
