package pricing

import (
	"errors"
	"time"
)

var ErrInvalidInterval = errors.New("окончание аренды должно быть позже начала")

// Minutes возвращает длительность интервала в минутах (неполная минута
// считается целой)
func Minutes(start, end time.Time) int {
	d := end.Sub(start)
	if d <= 0 {
		return 0
	}
	minutes := int(d / time.Minute)
	if d%time.Minute != 0 {
		minutes++
	}
	return minutes
}

// BilledPeriods округляет длительность вверх до целых периодов тарификации,
// минимум один период
func BilledPeriods(start, end time.Time, mode Mode) (int, error) {
	if !mode.Valid() {
		return 0, ErrUnknownMode
	}
	if !end.After(start) {
		return 0, ErrInvalidInterval
	}

	minutes := Minutes(start, end)
	period := mode.PeriodMinutes()

	periods := minutes / period
	if minutes%period != 0 {
		periods++
	}
	if periods < 1 {
		periods = 1
	}
	return periods, nil
}

// LocalClock возвращает день недели и количество минут от полуночи
// в указанной временной зоне
func LocalClock(t time.Time, loc *time.Location) (time.Weekday, int) {
	local := t.In(loc)
	return local.Weekday(), local.Hour()*60 + local.Minute()
}
