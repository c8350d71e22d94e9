package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeToMinutes(t *testing.T) {
	assert.Equal(t, 0, TimeToMinutes("00:00"))
	assert.Equal(t, 510, TimeToMinutes("08:30"))
	assert.Equal(t, 1439, TimeToMinutes("23:59"))
}

func TestValidTimeOfDay(t *testing.T) {
	valid := []string{"00:00", "08:30", "23:59"}
	for _, s := range valid {
		assert.True(t, ValidTimeOfDay(s), s)
	}

	invalid := []string{"", "8:30", "24:00", "12:60", "8am", "12:3", "noon", "12:30:00"}
	for _, s := range invalid {
		assert.False(t, ValidTimeOfDay(s), s)
	}
}

func TestSortTimes(t *testing.T) {
	times := []string{"20:00", "08:00", "12:30", "00:15"}
	SortTimes(times)
	assert.Equal(t, []string{"00:15", "08:00", "12:30", "20:00"}, times)
}
