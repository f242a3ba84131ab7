package entity

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
)

func TestMaxFDPRule(t *testing.T) {
	rule := MaxFDPRule{
		Start: civil.Time{Hour: 6},
		End:   civil.Time{Hour: 13, Minute: 29},
	}
	rule.SetMax(1, 13*time.Hour)
	rule.SetMax(3, 12*time.Hour+30*time.Minute)
	rule.SetMax(42, time.Hour)

	max, ok := rule.Max(2)
	assert.True(t, ok)
	assert.Equal(t, 13*time.Hour, max)

	max, ok = rule.Max(3)
	assert.True(t, ok)
	assert.Equal(t, 12*time.Hour+30*time.Minute, max)

	_, ok = rule.Max(4)
	assert.False(t, ok)

	max, ok = rule.Max(12)
	assert.True(t, ok)
	assert.Equal(t, DefaultMaxFDP, max)

	assert.True(t, rule.Match(civil.Time{Hour: 6}))
	assert.True(t, rule.Match(civil.Time{Hour: 13, Minute: 29}))
	assert.False(t, rule.Match(civil.Time{Hour: 13, Minute: 30}))
}

func TestMaxFDPTableRuleFor(t *testing.T) {
	table := MaxFDPTable{
		{Start: civil.Time{Hour: 6}, End: civil.Time{Hour: 13, Minute: 29}},
		{Start: civil.Time{Hour: 13, Minute: 30}, End: civil.Time{Hour: 21, Minute: 59}},
	}

	rule, ok := table.RuleFor(civil.Time{Hour: 15})
	assert.True(t, ok)
	assert.Same(t, &table[1], rule)

	// no bucket covers the night, the first rule applies
	rule, ok = table.RuleFor(civil.Time{Hour: 23})
	assert.True(t, ok)
	assert.Same(t, &table[0], rule)

	_, ok = MaxFDPTable(nil).RuleFor(civil.Time{Hour: 8})
	assert.False(t, ok)
}

func TestIataFlightIsAvailable(t *testing.T) {
	f := IataFlight{DaysOfWeek: []time.Weekday{time.Monday, time.Friday}}

	assert.True(t, f.IsAvailable(civil.Date{Year: 2024, Month: time.March, Day: 4}))
	assert.False(t, f.IsAvailable(civil.Date{Year: 2024, Month: time.March, Day: 5}))
	assert.True(t, f.IsAvailable(civil.Date{Year: 2024, Month: time.March, Day: 8}))
}
