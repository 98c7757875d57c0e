package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPeriodsPerYearFor(t *testing.T) {
	assert.Equal(t, 12, PeriodsPerYearFor(FrequencyMonthly))
	assert.Equal(t, 4, PeriodsPerYearFor(FrequencyQuarterly))
	assert.Equal(t, 2, PeriodsPerYearFor(FrequencyBiannually))
	assert.Equal(t, 1, PeriodsPerYearFor(FrequencyAnnually))
	assert.Equal(t, 12, PeriodsPerYearFor("weekly"), "unknown frequency falls back to monthly")
}

func TestMortgagePeriodsNormalizedToMonths(t *testing.T) {
	m := &Mortgage{TermYears: 20}
	assert.Equal(t, 240, m.Periods())
}

func TestPlanPeriodsFollowFrequency(t *testing.T) {
	p := &InternalMortgagePlan{TermMonths: 12, Frequency: FrequencyQuarterly}
	assert.Equal(t, 4, p.Periods())

	p = &InternalMortgagePlan{TermMonths: 24, Frequency: FrequencyAnnually}
	assert.Equal(t, 2, p.Periods())

	// a term shorter than one period still yields one payment
	p = &InternalMortgagePlan{TermMonths: 2, Frequency: FrequencyAnnually}
	assert.Equal(t, 1, p.Periods())
}
