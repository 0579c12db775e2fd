// Package timestamp finds date/time tokens embedded in note text and exposes
// temporal predicates over them.
package timestamp

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Matches tokens like "3/5/26", "12/31/2026 11:59 PM" or "1/2/26 8:05:30 am".
// The time portion only counts when it carries an AM/PM marker.
var tokenPattern = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{2,4})(?:\s+(\d{1,2}):(\d{2})(?::(\d{2}))?\s*([AaPp][Mm]))?`)

const millisPerDay = 24 * 60 * 60 * 1000

// Extract returns the first embedded date token in text as epoch milliseconds
// in local time, or 0 when no token is present. A missing time portion
// defaults to midnight. Callers must treat 0 as "absent", not as the epoch.
func Extract(text string) int64 {
	groups := tokenPattern.FindStringSubmatch(text)
	if groups == nil {
		return 0
	}

	month := mustAtoi(groups[1])
	day := mustAtoi(groups[2])
	year := mustAtoi(groups[3])
	if year < 100 {
		year += 2000
	}

	var hour, minute, second int
	if groups[7] != "" {
		hour = mustAtoi(groups[4])
		minute = mustAtoi(groups[5])
		if groups[6] != "" {
			second = mustAtoi(groups[6])
		}
		hour = to24Hour(hour, groups[7])
	}

	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.Local).UnixMilli()
}

// Past reports whether ts is strictly before now. A lookback window (in days)
// additionally requires ts to fall within that many days before now.
func Past(ts int64, now time.Time, lookbackDays ...float64) bool {
	if ts == 0 {
		return false
	}

	nowMillis := now.UnixMilli()
	if ts >= nowMillis {
		return false
	}

	if len(lookbackDays) > 0 && ts < nowMillis-int64(lookbackDays[0]*millisPerDay) {
		return false
	}

	return true
}

// Future reports whether ts is strictly after now. A lookahead window (in
// days) additionally requires ts to fall within that many days after now.
func Future(ts int64, now time.Time, lookaheadDays ...float64) bool {
	if ts == 0 {
		return false
	}

	nowMillis := now.UnixMilli()
	if ts <= nowMillis {
		return false
	}

	if len(lookaheadDays) > 0 && ts > nowMillis+int64(lookaheadDays[0]*millisPerDay) {
		return false
	}

	return true
}

// Today reports whether ts falls on the same local calendar date as now.
func Today(ts int64, now time.Time) bool {
	if ts == 0 {
		return false
	}

	y1, m1, d1 := time.UnixMilli(ts).Local().Date()
	y2, m2, d2 := now.Local().Date()

	return y1 == y2 && m1 == m2 && d1 == d2
}

// to24Hour converts a 12-hour clock value: "12 AM" is hour 0, "12 PM" stays 12.
func to24Hour(hour int, meridiem string) int {
	if strings.EqualFold(meridiem, "pm") {
		if hour != 12 {
			hour += 12
		}
		return hour
	}
	if hour == 12 {
		return 0
	}
	return hour
}

// mustAtoi is only called on strings the token pattern already verified as digits.
func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
