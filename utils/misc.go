package utils

import (
	"fmt"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"github.com/tribunen/billettvakt/constant"
)

var osloLocation = mustLoadOslo()

func mustLoadOslo() *time.Location {
	loc, err := time.LoadLocation("Europe/Oslo")
	if err != nil {
		panic("cannot load Europe/Oslo timezone: " + err.Error())
	}
	return loc
}

// FileTimestamp returns the current Oslo time formatted for filenames.
func FileTimestamp() string {
	return time.Now().In(osloLocation).Format(constant.FILE_TIME_LAYOUT)
}

// HumanTimestamp returns the current Oslo time formatted for display.
func HumanTimestamp() string {
	return time.Now().In(osloLocation).Format(constant.HUMAN_TIME_LAYOUT)
}

var invalidDirChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// SanitizeEventDir turns an event title into a filesystem-safe directory
// name by stripping reserved characters, spaces and newlines.
func SanitizeEventDir(eventTitle string) string {
	name := invalidDirChars.ReplaceAllString(eventTitle, "")
	name = strings.ReplaceAll(name, " ", "")
	return strings.ReplaceAll(name, "\n", "")
}

// VenueFromPlaceTime extracts the venue from a "date time @ venue" string.
func VenueFromPlaceTime(placeTime string) string {
	idx := strings.Index(placeTime, "@")
	return strings.TrimSpace(placeTime[idx+1:])
}

// IsEuropeanFixture reports whether the event title names a UEFA competition.
// Away-ticket blocks in those fixtures make the extrapolated stand's real
// capacity unpredictable, so the correction is skipped for them.
func IsEuropeanFixture(eventTitle string) bool {
	title := strings.ToLower(eventTitle)
	return strings.Contains(title, "conference") ||
		strings.Contains(title, "europa") ||
		strings.Contains(title, "champions")
}

// ReportProgress prints a progress line every second until stop is closed.
func ReportProgress(completed *int64, total int64, stop chan struct{}) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	print := func() {
		current := atomic.LoadInt64(completed)
		percent := float64(current) / float64(total) * 100
		fmt.Printf("\rProgress: %d/%d (%.2f%%) completed", current, total, percent)
	}

	for {
		select {
		case <-ticker.C:
			print()
		case <-stop:
			// Final progress update
			print()
			return
		}
	}
}
