package normalize

import (
	"strings"

	"github.com/McNamara84/ernie-sub013/datacite"
)

// SerializeDateRange renders a date entry in the DataCite interval
// convention: 'start', '/end' for open-started ranges, and 'start/end' for
// closed ranges. An entry with neither date serializes to the empty string.
func SerializeDateRange(entry datacite.DateEntry) string {
	start := strings.TrimSpace(entry.StartDate)
	end := strings.TrimSpace(entry.EndDate)
	switch {
	case start != "" && end != "":
		return start + "/" + end
	case start != "":
		return start
	case end != "":
		return "/" + end
	}
	return ""
}

// ParseDateRange splits a date value in the DataCite interval convention
// back into its start and end dates. A value without a slash is a single
// start date.
func ParseDateRange(value string) (start, end string) {
	value = strings.TrimSpace(value)
	if slash := strings.Index(value, "/"); slash != -1 {
		return value[:slash], value[slash+1:]
	}
	return value, ""
}

// a date-time split into its submitted parts
type DateTimeParts struct {
	Date     string
	Time     string
	Timezone string
}

// BuildDateTime combines a date, an optional time and an optional IANA
// timezone into a single string, using the RFC 9557 suffix form for the
// timezone: '2024-01-01T10:30:00[Europe/Berlin]'.
func BuildDateTime(date, timeOfDay, timezone string) string {
	date = strings.TrimSpace(date)
	timeOfDay = strings.TrimSpace(timeOfDay)
	timezone = strings.TrimSpace(timezone)
	if date == "" {
		return ""
	}
	s := date
	if timeOfDay != "" {
		s += "T" + timeOfDay
	}
	if timezone != "" {
		s += "[" + timezone + "]"
	}
	return s
}

// ParseDateTime splits a string produced by BuildDateTime back into its
// parts. Parsing is shape-based, not calendar-aware; it inverts
// BuildDateTime for all well-formed inputs.
func ParseDateTime(s string) DateTimeParts {
	var parts DateTimeParts
	s = strings.TrimSpace(s)
	if s == "" {
		return parts
	}
	if open := strings.Index(s, "["); open != -1 && strings.HasSuffix(s, "]") {
		parts.Timezone = s[open+1 : len(s)-1]
		s = s[:open]
	}
	if t := strings.Index(s, "T"); t != -1 {
		parts.Time = s[t+1:]
		s = s[:t]
	}
	parts.Date = s
	return parts
}
