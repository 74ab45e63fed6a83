package utils

import (
	"fmt"
	"time"
)

func parseClock(value string) (time.Time, error) {
	t, err := time.Parse("15:04:05", value)
	if err != nil {
		t, err = time.Parse("15:04", value)
	}
	return t, err
}

// FormatReservedDate renders a reservation as "2006-01-02 10:00AM ~ 11:00AM".
func FormatReservedDate(date time.Time, startTime string, endTime string) (string, error) {
	start, err := parseClock(startTime)
	if err != nil {
		return "", fmt.Errorf("invalid start time %q: %w", startTime, err)
	}
	end, err := parseClock(endTime)
	if err != nil {
		return "", fmt.Errorf("invalid end time %q: %w", endTime, err)
	}

	return fmt.Sprintf("%s %s ~ %s",
		date.Format("2006-01-02"),
		start.Format("03:04PM"),
		end.Format("03:04PM"),
	), nil
}
