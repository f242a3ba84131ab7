package entity

import (
	"time"

	"cloud.google.com/go/civil"
)

const (
	// MaxFDPSegments is the number of per-segment maxima a rule can hold
	MaxFDPSegments = 10
	// DefaultMaxFDP applies when the segment count is beyond the rule's table
	DefaultMaxFDP = 9 * time.Hour
)

// MaxFDPRule maps a local start-time bucket to the maximum flight duty
// period allowed for each segment count. Both bucket bounds are inclusive.
type MaxFDPRule struct {
	Start        civil.Time
	End          civil.Time
	MaxBySegment [MaxFDPSegments]time.Duration
}

// MaxFDPTable is the ordered list of rules. The first rule is the fallback
// when no bucket matches.
type MaxFDPTable []MaxFDPRule

func segmentIndex(segments int) int {
	if segments <= 2 {
		return 0
	}
	return segments - 2
}

// SetMax stores the maximum for a segment count. Counts outside the table
// are ignored.
func (r *MaxFDPRule) SetMax(segments int, max time.Duration) {
	i := segmentIndex(segments)
	if i < 0 || i >= MaxFDPSegments {
		return
	}
	r.MaxBySegment[i] = max
}

// Max returns the maximum for a segment count. Counts beyond the table get
// DefaultMaxFDP; a slot that was never filled reports false.
func (r *MaxFDPRule) Max(segments int) (time.Duration, bool) {
	i := segmentIndex(segments)
	if i < 0 || i >= MaxFDPSegments {
		return DefaultMaxFDP, true
	}
	max := r.MaxBySegment[i]
	return max, max > 0
}

// Match reports whether the local time falls in the rule's bucket
func (r *MaxFDPRule) Match(local civil.Time) bool {
	t := nanosOfDay(local)
	return nanosOfDay(r.Start) <= t && t <= nanosOfDay(r.End)
}

// RuleFor returns the first rule whose bucket contains the local time, or
// the first rule of the table. It reports false only for an empty table.
func (t MaxFDPTable) RuleFor(local civil.Time) (*MaxFDPRule, bool) {
	if len(t) == 0 {
		return nil, false
	}
	for i := range t {
		if t[i].Match(local) {
			return &t[i], true
		}
	}
	return &t[0], true
}

func nanosOfDay(t civil.Time) int64 {
	return int64(t.Hour)*int64(time.Hour) +
		int64(t.Minute)*int64(time.Minute) +
		int64(t.Second)*int64(time.Second) +
		int64(t.Nanosecond)
}
