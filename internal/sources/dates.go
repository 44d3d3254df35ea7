package sources

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	isoPrefix = regexp.MustCompile(`^\s*(\d{4})-(\d{2})-(\d{2})`)
	dayFirst  = regexp.MustCompile(`(\d{1,2})[-/](\d{1,2})[-/](\d{4})`)
	yearFirst = regexp.MustCompile(`(\d{4})[-/](\d{1,2})[-/](\d{1,2})`)
	clockTime = regexp.MustCompile(`(?:^|\D)([01]?\d|2[0-3])[:h]([0-5]\d)(?:\D|$)`)
)

// ParseDate normalises date text to YYYY-MM-DD.
//
// Accepted forms, tried in order: a leading YYYY-MM-DD (ISO timestamps
// included), DD/MM/YYYY or DD-MM-YYYY anywhere in the text, and
// YYYY/MM/DD or YYYY-M-D. Anything else, including impossible calendar
// dates, yields "".
func ParseDate(text string) string {
	if m := isoPrefix.FindStringSubmatch(text); m != nil {
		return calendarDate(m[1], m[2], m[3])
	}
	if m := dayFirst.FindStringSubmatch(text); m != nil {
		return calendarDate(m[3], m[2], m[1])
	}
	if m := yearFirst.FindStringSubmatch(text); m != nil {
		return calendarDate(m[1], m[2], m[3])
	}
	return ""
}

func calendarDate(year, month, day string) string {
	y, _ := strconv.Atoi(year)
	mo, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	if mo < 1 || mo > 12 || d < 1 {
		return ""
	}
	t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, mo, d)
}

// ParseTime extracts the first HH:MM clock time from text, or "".
// "18:30", "9:00" and "18h30" are recognised, including the time part
// of an ISO timestamp.
func ParseTime(text string) string {
	m := clockTime.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	h, _ := strconv.Atoi(m[1])
	return fmt.Sprintf("%02d:%s", h, m[2])
}
