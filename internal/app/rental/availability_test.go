package rental

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d, hour int) time.Time {
	return time.Date(2025, 6, d, hour, 0, 0, 0, time.UTC)
}

func TestPeakUsage_Empty(t *testing.T) {
	assert.Equal(t, 0, PeakUsage(day(2, 10), day(2, 15), nil))
}

func TestPeakUsage_NonOverlapping(t *testing.T) {
	holds := []Hold{
		{Start: day(1, 10), End: day(2, 10), Quantity: 2, Status: "confirmed"},
		{Start: day(3, 10), End: day(4, 10), Quantity: 3, Status: "confirmed"},
	}
	// Окно между бронями
	assert.Equal(t, 0, PeakUsage(day(2, 11), day(3, 9), holds))
}

func TestPeakUsage_HalfOpenBoundary(t *testing.T) {
	// Возврат и выдача в один момент не пересекаются
	holds := []Hold{
		{Start: day(1, 10), End: day(2, 10), Quantity: 1, Status: "confirmed"},
		{Start: day(2, 10), End: day(3, 10), Quantity: 1, Status: "confirmed"},
	}
	assert.Equal(t, 1, PeakUsage(day(1, 10), day(3, 10), holds))
}

func TestPeakUsage_Stacking(t *testing.T) {
	holds := []Hold{
		{Start: day(1, 10), End: day(3, 10), Quantity: 1, Status: "confirmed"},
		{Start: day(2, 10), End: day(4, 10), Quantity: 2, Status: "pending"},
		{Start: day(2, 12), End: day(2, 18), Quantity: 1, Status: "ongoing"},
	}
	// Максимум в окне 2 июня 12:00-18:00: 1+2+1
	assert.Equal(t, 4, PeakUsage(day(1, 10), day(4, 10), holds))
	// Узкое окно до наложения
	assert.Equal(t, 1, PeakUsage(day(1, 10), day(2, 9), holds))
}

func TestPeakUsage_IgnoresReleasedHolds(t *testing.T) {
	holds := []Hold{
		{Start: day(1, 10), End: day(3, 10), Quantity: 5, Status: "cancelled"},
		{Start: day(1, 10), End: day(3, 10), Quantity: 5, Status: "rejected"},
		{Start: day(1, 10), End: day(3, 10), Quantity: 5, Status: "completed"},
		{Start: day(1, 10), End: day(3, 10), Quantity: 1, Status: "pending"},
	}
	assert.Equal(t, 1, PeakUsage(day(1, 10), day(3, 10), holds))
}

func TestCheckAvailability(t *testing.T) {
	holds := []Hold{
		{Start: day(2, 10), End: day(3, 10), Quantity: 2, Status: "confirmed"},
	}

	// Достаточно: склад 3, занято 2, запрошено 1
	warnings := CheckAvailability(day(2, 12), day(2, 18), 1, 3, holds)
	assert.Empty(t, warnings)

	// Недостаточно: склад 3, занято 2, запрошено 2
	warnings = CheckAvailability(day(2, 12), day(2, 18), 2, 3, holds)
	require.Len(t, warnings, 1)
	assert.Equal(t, WarnNoStock, warnings[0].Code)

	// Непересекающееся окно свободно
	warnings = CheckAvailability(day(4, 10), day(4, 18), 3, 3, holds)
	assert.Empty(t, warnings)

	// Нулевое количество приводится к единице
	warnings = CheckAvailability(day(2, 12), day(2, 18), 0, 3, holds)
	assert.Empty(t, warnings)

	// Пересбронированный склад не дает отрицательный остаток в сообщении
	over := []Hold{
		{Start: day(2, 10), End: day(3, 10), Quantity: 5, Status: "confirmed"},
	}
	warnings = CheckAvailability(day(2, 12), day(2, 18), 1, 3, over)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "доступно 0")
}
