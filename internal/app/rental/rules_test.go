package rental

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codes(warnings []Warning) []string {
	out := make([]string, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, w.Code)
	}
	return out
}

// будний день с 9:00 до 18:00, без предварительного уведомления
func weekdayPolicy() StorePolicy {
	return StorePolicy{
		Location:    time.UTC,
		OpenMinute:  9 * 60,
		CloseMinute: 18 * 60,
		OpenDays:    ParseOpenDays("1111100"),
	}
}

func TestParseClock(t *testing.T) {
	assert.Equal(t, 9*60, ParseClock("09:00"))
	assert.Equal(t, 18*60+30, ParseClock("18:30"))
	assert.Equal(t, 0, ParseClock("00:00"))
	assert.Equal(t, -1, ParseClock("24:00"))
	assert.Equal(t, -1, ParseClock("10:61"))
	assert.Equal(t, -1, ParseClock("abc"))
}

func TestParseOpenDays(t *testing.T) {
	days := ParseOpenDays("1111100")
	assert.True(t, days[time.Monday])
	assert.True(t, days[time.Friday])
	assert.False(t, days[time.Saturday])
	assert.False(t, days[time.Sunday])

	// Неверная маска — все дни рабочие
	days = ParseOpenDays("")
	for d := time.Sunday; d <= time.Saturday; d++ {
		assert.True(t, days[d])
	}
}

func TestCheckRules_EndBeforeStart(t *testing.T) {
	now := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	start := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	warnings := CheckRules(now, start, start.Add(-time.Hour), weekdayPolicy(), ProductRule{})
	require.Len(t, warnings, 1)
	assert.Equal(t, WarnEndBeforeStart, warnings[0].Code)

	// Равные даты тоже невалидны
	warnings = CheckRules(now, start, start, weekdayPolicy(), ProductRule{})
	require.Len(t, warnings, 1)
	assert.Equal(t, WarnEndBeforeStart, warnings[0].Code)
}

func TestCheckRules_Valid(t *testing.T) {
	now := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC) // понедельник
	end := time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)

	warnings := CheckRules(now, start, end, weekdayPolicy(), ProductRule{})
	assert.Empty(t, warnings)
}

func TestCheckRules_AdvanceNotice(t *testing.T) {
	policy := weekdayPolicy()
	policy.AdvanceNotice = 24 * time.Hour

	now := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)

	warnings := CheckRules(now, start, end, policy, ProductRule{})
	assert.Contains(t, codes(warnings), WarnAdvanceNotice)

	// За сутки и более — предупреждения нет
	warnings = CheckRules(now.AddDate(0, 0, -2), start, end, policy, ProductRule{})
	assert.NotContains(t, codes(warnings), WarnAdvanceNotice)
}

func TestCheckRules_ClosedDay(t *testing.T) {
	now := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	// Суббота — магазин закрыт
	start := time.Date(2025, 6, 7, 10, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 7, 15, 0, 0, 0, time.UTC)

	warnings := CheckRules(now, start, end, weekdayPolicy(), ProductRule{})
	// Закрыты и выдача, и возврат
	assert.Equal(t, []string{WarnClosedDay, WarnClosedDay}, codes(warnings))
}

func TestCheckRules_OutsideHours(t *testing.T) {
	now := time.Date(2025, 6, 2, 6, 0, 0, 0, time.UTC)

	// Выдача до открытия
	start := time.Date(2025, 6, 2, 7, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	warnings := CheckRules(now, start, end, weekdayPolicy(), ProductRule{})
	assert.Equal(t, []string{WarnOutsideHours}, codes(warnings))

	// Возврат после закрытия
	start = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	end = time.Date(2025, 6, 2, 20, 0, 0, 0, time.UTC)
	warnings = CheckRules(now, start, end, weekdayPolicy(), ProductRule{})
	assert.Equal(t, []string{WarnOutsideHours}, codes(warnings))

	// Часы не настроены — проверка пропускается
	policy := weekdayPolicy()
	policy.OpenMinute = 0
	policy.CloseMinute = 0
	warnings = CheckRules(now, start, end, policy, ProductRule{})
	assert.Empty(t, warnings)
}

func TestCheckRules_Timezone(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	policy := weekdayPolicy()
	policy.Location = paris

	now := time.Date(2025, 6, 2, 6, 0, 0, 0, time.UTC)
	// 16:30 UTC = 18:30 в Париже, после закрытия
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 2, 16, 30, 0, 0, time.UTC)

	warnings := CheckRules(now, start, end, policy, ProductRule{})
	assert.Equal(t, []string{WarnOutsideHours}, codes(warnings))
}

func TestCheckRules_Duration(t *testing.T) {
	now := time.Date(2025, 6, 2, 6, 0, 0, 0, time.UTC)
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	rule := ProductRule{MinDuration: 2 * time.Hour, MaxDuration: 6 * time.Hour}

	// Слишком коротко
	warnings := CheckRules(now, start, start.Add(time.Hour), weekdayPolicy(), rule)
	assert.Equal(t, []string{WarnTooShort}, codes(warnings))

	// Слишком долго
	warnings = CheckRules(now, start, start.Add(7*time.Hour), weekdayPolicy(), rule)
	assert.Equal(t, []string{WarnTooLong}, codes(warnings))

	// В пределах ограничений
	warnings = CheckRules(now, start, start.Add(4*time.Hour), weekdayPolicy(), rule)
	assert.Empty(t, warnings)

	// Нулевые ограничения не проверяются
	warnings = CheckRules(now, start, start.Add(5*time.Hour), weekdayPolicy(), ProductRule{})
	assert.Empty(t, warnings)
}
