package ui

import "fmt"

func truncate(s string, length int) string {
	if length <= 3 {
		return "..."
	}
	if len(s) > length {
		return s[:length-3] + "..."
	}
	return s
}

// formatTime renders whole seconds as M:SS, or H:MM:SS past the hour.
func formatTime(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
