package services

import "time"

const DayLayout = "2006-01-02"

// ParseDay validates a YYYY-MM-DD calendar day.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, invalidf("invalid date %q, use YYYY-MM-DD", s)
	}
	return t, nil
}

// ValidateRange checks both ends and that end is on/after start.
func ValidateRange(start, end string) error {
	from, err := ParseDay(start)
	if err != nil {
		return err
	}
	to, err := ParseDay(end)
	if err != nil {
		return err
	}
	if to.Before(from) {
		return invalidf("end date %s is before start date %s", end, start)
	}
	return nil
}
