package repository

import (
	"fmt"
	"time"
)

var timeLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ParseTime parses a stored date in "2006-01-02", RFC3339 or SQLite CURRENT_TIMESTAMP format.
func ParseTime(str string) (time.Time, error) {
	var lastErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, str)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("failed to parse date: %w", lastErr)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
