package rental

import (
	"fmt"
	"time"

	"github.com/Synapsr/Louez-sub011/internal/app/pricing"
)

// Коды нарушений правил аренды
const (
	WarnEndBeforeStart = "end_before_start"
	WarnOutsideHours   = "outside_business_hours"
	WarnClosedDay      = "closed_day"
	WarnAdvanceNotice  = "advance_notice"
	WarnTooShort       = "below_min_duration"
	WarnTooLong        = "above_max_duration"
	WarnNoStock        = "insufficient_stock"
)

// Warning — нарушенное правило. Это предупреждение, а не ошибка:
// сотрудник магазина может оформить бронь несмотря на него.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StorePolicy — настройки магазина, влияющие на проверку правил
type StorePolicy struct {
	Location      *time.Location
	OpenMinute    int                // минуты от полуночи
	CloseMinute   int                // минуты от полуночи, > OpenMinute
	OpenDays      map[time.Weekday]bool
	AdvanceNotice time.Duration // минимальное время до начала аренды
}

// ProductRule — ограничения длительности для конкретного оборудования
// (нулевое значение = без ограничения)
type ProductRule struct {
	MinDuration time.Duration
	MaxDuration time.Duration
}

// withinHours проверяет, что момент попадает в часы работы магазина
func (p StorePolicy) withinHours(t time.Time) (bool, bool) {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	day, minute := pricing.LocalClock(t, loc)

	if p.OpenDays != nil && !p.OpenDays[day] {
		return false, false // день закрыт
	}
	if p.CloseMinute <= p.OpenMinute {
		return true, true // часы не настроены — не проверяем
	}
	return true, minute >= p.OpenMinute && minute <= p.CloseMinute
}

// CheckRules возвращает список нарушенных правил для предложенного
// интервала аренды. Пустой список означает, что все правила соблюдены.
func CheckRules(now, start, end time.Time, policy StorePolicy, rule ProductRule) []Warning {
	warnings := []Warning{}

	if !end.After(start) {
		warnings = append(warnings, Warning{
			Code:    WarnEndBeforeStart,
			Message: "окончание аренды должно быть позже начала",
		})
		return warnings // остальные проверки не имеют смысла
	}

	// Предварительное уведомление
	if policy.AdvanceNotice > 0 && start.Before(now.Add(policy.AdvanceNotice)) {
		warnings = append(warnings, Warning{
			Code:    WarnAdvanceNotice,
			Message: fmt.Sprintf("бронь должна оформляться минимум за %d мин. до начала", int(policy.AdvanceNotice.Minutes())),
		})
	}

	// Часы работы: выдача и возврат должны попадать в рабочее время
	for _, point := range []struct {
		label string
		t     time.Time
	}{
		{"выдача", start},
		{"возврат", end},
	} {
		dayOpen, inHours := policy.withinHours(point.t)
		if !dayOpen {
			warnings = append(warnings, Warning{
				Code:    WarnClosedDay,
				Message: fmt.Sprintf("%s: магазин закрыт в этот день", point.label),
			})
			continue
		}
		if !inHours {
			warnings = append(warnings, Warning{
				Code:    WarnOutsideHours,
				Message: fmt.Sprintf("%s: вне часов работы магазина", point.label),
			})
		}
	}

	// Ограничения длительности
	duration := end.Sub(start)
	if rule.MinDuration > 0 && duration < rule.MinDuration {
		warnings = append(warnings, Warning{
			Code:    WarnTooShort,
			Message: fmt.Sprintf("минимальная длительность аренды %d мин.", int(rule.MinDuration.Minutes())),
		})
	}
	if rule.MaxDuration > 0 && duration > rule.MaxDuration {
		warnings = append(warnings, Warning{
			Code:    WarnTooLong,
			Message: fmt.Sprintf("максимальная длительность аренды %d мин.", int(rule.MaxDuration.Minutes())),
		})
	}

	return warnings
}

// ParseClock разбирает строку "ЧЧ:ММ" в минуты от полуночи (-1 при ошибке)
func ParseClock(s string) int {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return -1
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return -1
	}
	return h*60 + m
}

// ParseOpenDays разбирает маску дней недели вида "1111110" (Пн..Вс)
func ParseOpenDays(mask string) map[time.Weekday]bool {
	// Порядок в маске: понедельник..воскресенье
	order := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}

	days := make(map[time.Weekday]bool, 7)
	if len(mask) != 7 {
		// Маска не настроена — считаем все дни рабочими
		for _, d := range order {
			days[d] = true
		}
		return days
	}
	for i, d := range order {
		days[d] = mask[i] == '1'
	}
	return days
}
