package utils

import (
	"sort"
	"time"
)

// TimeToMinutes converts an "HH:MM" string to minutes since midnight
func TimeToMinutes(timeStr string) int {
	t, _ := time.Parse("15:04", timeStr)
	return t.Hour()*60 + t.Minute()
}

// ValidTimeOfDay reports whether s is a well-formed "HH:MM" time
func ValidTimeOfDay(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil && len(s) == 5
}

// SortTimes orders "HH:MM" strings chronologically in place
func SortTimes(times []string) {
	sort.Slice(times, func(i, j int) bool {
		return TimeToMinutes(times[i]) < TimeToMinutes(times[j])
	})
}
