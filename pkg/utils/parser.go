package utils

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

var (
	dayOffCodes      = map[string]bool{"OUV": true, "UW": true, "W": true, "V": true, "C": true}
	preAssignedCodes = map[string]bool{"GND": true, "S1E": true, "LSE": true, "ESE": true}

	flightNumberRe = regexp.MustCompile(`^[A-Z0-9]{2}[A-Z]?\d{1,4}[A-Z]?$`)
	clockRe        = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// NormalizeCode upper-cases a roster code and drops its blanks
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.Join(strings.Fields(code), ""))
}

// ClassifyRosterCode tells what a roster code stands for
func ClassifyRosterCode(code string) RosterCodeKind {
	code = NormalizeCode(code)
	switch {
	case code == "":
		return CodeUnknown
	case dayOffCodes[code]:
		return CodeDayOff
	case preAssignedCodes[code]:
		return CodePreAssigned
	case flightNumberRe.MatchString(code):
		return CodeFlight
	}
	return CodeUnknown
}

// SplitList splits a comma or semicolon separated cell, dropping empty items
func SplitList(value string) []string {
	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ';'
	})
	list := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			list = append(list, part)
		}
	}
	return list
}

// ParseDaysOfWeek reads availability strings such as "1357" where 1 is
// Monday and 7 is Sunday
func ParseDaysOfWeek(value string) ([]time.Weekday, error) {
	seen := make(map[time.Weekday]bool)
	var days []time.Weekday
	for _, r := range strings.TrimSpace(value) {
		if r < '1' || r > '7' {
			return nil, fmt.Errorf("invalid day of week %q in %q", r, value)
		}
		day := time.Weekday((r - '0') % 7)
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	return days, nil
}

// FormatDaysOfWeek is the inverse of ParseDaysOfWeek
func FormatDaysOfWeek(days []time.Weekday) string {
	digits := make([]int, 0, len(days))
	for _, day := range days {
		digit := int(day)
		if day == time.Sunday {
			digit = 7
		}
		digits = append(digits, digit)
	}
	sort.Ints(digits)

	var b strings.Builder
	for _, digit := range digits {
		b.WriteString(strconv.Itoa(digit))
	}
	return b.String()
}

// ParseClock reads a "15:04" time of day
func ParseClock(value string) (civil.Time, error) {
	matches := clockRe.FindStringSubmatch(strings.TrimSpace(value))
	if len(matches) < 3 {
		return civil.Time{}, fmt.Errorf("invalid time format: %s", value)
	}
	hour, _ := strconv.Atoi(matches[1])
	minute, _ := strconv.Atoi(matches[2])
	if hour > 23 || minute > 59 {
		return civil.Time{}, fmt.Errorf("invalid time: %s", value)
	}
	return civil.Time{Hour: hour, Minute: minute}, nil
}

// FormatClock writes a time of day as "15:04"
func FormatClock(t civil.Time) string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ParseDate reads a "2006-01-02" date
func ParseDate(value string) (civil.Date, error) {
	t, err := time.Parse(DATE_LAYOUT, strings.TrimSpace(value))
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid date format: %s", value)
	}
	return civil.DateOf(t), nil
}

// ParseDateTime reads a "2006-01-02 15:04" instant in UTC
func ParseDateTime(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DATETIME_LAYOUT, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date time format: %s", value)
	}
	return t, nil
}

// ParseDuration reads a maximum duty period either as "13:30" or as a
// number of minutes
func ParseDuration(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if matches := clockRe.FindStringSubmatch(value); len(matches) == 3 {
		hours, _ := strconv.Atoi(matches[1])
		minutes, _ := strconv.Atoi(matches[2])
		return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute, nil
	}
	minutes, err := strconv.Atoi(value)
	if err != nil || minutes < 0 {
		return 0, fmt.Errorf("invalid duration: %s", value)
	}
	return time.Duration(minutes) * time.Minute, nil
}
