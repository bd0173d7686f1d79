// Package dateutils provides the date handling shared by the ledger,
// analytics and report packages.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Display layouts
const (
	DateLayoutISO     = "2006-01-02"
	DateLayoutDisplay = "2 Jan 2006"
	DateLayoutFull    = "2006-01-02 15:04:05"
)

// Day is the fixed length used for window cutoffs. Windows are measured in
// elapsed time, not calendar days.
const Day = 24 * time.Hour

// LoadLocation resolves a configured time zone name. "" and "Local" map to
// the process local zone, "UTC" to UTC, anything else to the IANA database.
func LoadLocation(name string) (*time.Location, error) {
	switch strings.TrimSpace(name) {
	case "", "Local", "local":
		return time.Local, nil
	case "UTC", "utc":
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown time zone %q: %w", name, err)
	}
	return loc, nil
}

// Cutoff returns the instant days*24h before now.
func Cutoff(now time.Time, days int) time.Time {
	return now.Add(-time.Duration(days) * Day)
}

// EntryTimestamp normalises a clock reading to the precision stored on
// transactions: UTC, milliseconds.
func EntryTimestamp(now time.Time) time.Time {
	return now.UTC().Truncate(time.Millisecond)
}

// MonthAbbrev returns the three-letter English month name ("Jan").
func MonthAbbrev(m time.Month) string {
	name := m.String()
	if len(name) < 3 {
		return name
	}
	return name[:3]
}

// FormatDate formats date in loc with layout, defaulting to DateLayoutDisplay.
func FormatDate(date time.Time, loc *time.Location, layout string) string {
	if layout == "" {
		layout = DateLayoutDisplay
	}
	if loc != nil {
		date = date.In(loc)
	}
	return date.Format(layout)
}
