package rental

import (
	"fmt"
	"time"
)

// Hold — существующая бронь, удерживающая количество единиц оборудования
type Hold struct {
	Start    time.Time
	End      time.Time
	Quantity int
	Status   string
}

// blocks сообщает, удерживает ли бронь склад. Отмененные и отклоненные
// брони склад не занимают.
func (h Hold) blocks() bool {
	switch h.Status {
	case "pending", "confirmed", "ongoing":
		return true
	}
	return false
}

// overlaps — пересечение полуоткрытых интервалов [a, b) и [c, d)
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// PeakUsage считает максимальное одновременно занятое количество единиц
// на интервале [start, end). Перебираем границы броней как кандидатов
// на точку максимума.
func PeakUsage(start, end time.Time, holds []Hold) int {
	active := make([]Hold, 0, len(holds))
	for _, h := range holds {
		if h.blocks() && overlaps(start, end, h.Start, h.End) {
			active = append(active, h)
		}
	}
	if len(active) == 0 {
		return 0
	}

	// Точки-кандидаты: начало окна и начала броней внутри окна
	points := []time.Time{start}
	for _, h := range active {
		if h.Start.After(start) && h.Start.Before(end) {
			points = append(points, h.Start)
		}
	}

	peak := 0
	for _, p := range points {
		used := 0
		for _, h := range active {
			// Полуоткрытый интервал: в момент h.End единица уже свободна
			if !p.Before(h.Start) && p.Before(h.End) {
				used += h.Quantity
			}
		}
		if used > peak {
			peak = used
		}
	}
	return peak
}

// CheckAvailability предупреждает, если запрошенное количество превышает
// остаток склада с учетом пересекающихся броней
func CheckAvailability(start, end time.Time, quantity, stock int, holds []Hold) []Warning {
	warnings := []Warning{}
	if quantity < 1 {
		quantity = 1
	}

	used := PeakUsage(start, end, holds)
	available := stock - used
	if quantity > available {
		if available < 0 {
			available = 0
		}
		warnings = append(warnings, Warning{
			Code:    WarnNoStock,
			Message: fmt.Sprintf("недостаточно единиц на выбранные даты: запрошено %d, доступно %d", quantity, available),
		})
	}
	return warnings
}
