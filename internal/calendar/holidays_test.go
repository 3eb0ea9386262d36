package calendar

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolidayGate(t *testing.T) {
	table := Bulgaria2026()

	t.Run("weekend indices", func(t *testing.T) {
		for day := 0; day < DaysPerWeek; day++ {
			assert.Equal(t, day >= 5, IsWeekend(day), day)
		}
	})

	t.Run("observed compensation day is not bookable", func(t *testing.T) {
		holiday, ok := table.Lookup("2026-05-25")
		require.True(t, ok)
		assert.Equal(t, "ED+", holiday.Short)
		assert.False(t, table.IsBookable("2026-05-25", 0))
		assert.False(t, table.IsBookableKey("2026-05-25"))
	})

	t.Run("ordinary weekday is bookable", func(t *testing.T) {
		_, ok := table.Lookup("2026-05-26")
		assert.False(t, ok)
		assert.True(t, table.IsBookable("2026-05-26", 1))
	})

	t.Run("weekend is not bookable without a holiday", func(t *testing.T) {
		assert.False(t, table.IsBookableKey("2026-05-30"))
	})

	t.Run("malformed key is not bookable", func(t *testing.T) {
		assert.False(t, table.IsBookableKey("2026/05/26"))
	})

	t.Run("keys are sorted", func(t *testing.T) {
		keys := table.Keys()
		require.Len(t, keys, 17)
		assert.Equal(t, "2026-01-01", keys[0])
		assert.Equal(t, "2026-12-28", keys[len(keys)-1])
	})
}

func TestDecodeHolidays(t *testing.T) {
	t.Run("valid table", func(t *testing.T) {
		table, err := DecodeHolidays(strings.NewReader(`{"2027-01-01":{"name":"New Year","short":"NY","description":"d"}}`))
		require.NoError(t, err)
		assert.False(t, table.IsBookableKey("2027-01-01"))
	})

	t.Run("rejects bad keys", func(t *testing.T) {
		_, err := DecodeHolidays(strings.NewReader(`{"Jan 1":{"name":"x"}}`))
		assert.Error(t, err)
	})

	t.Run("rejects unnamed holidays", func(t *testing.T) {
		_, err := DecodeHolidays(strings.NewReader(`{"2027-01-01":{"short":"NY"}}`))
		assert.Error(t, err)
	})

	t.Run("loads from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "holidays.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"2027-03-03":{"name":"Liberation Day"}}`), 0o600))
		table, err := LoadHolidaysFile(path)
		require.NoError(t, err)
		_, ok := table.Lookup("2027-03-03")
		assert.True(t, ok)
	})
}
