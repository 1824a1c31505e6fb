package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestYearConversionRoundTrip(t *testing.T) {
	for g := 1990; g <= 2040; g++ {
		assert.Equal(t, g, ToGregorian(ToEthiopian(g)))
	}
	assert.Equal(t, 2017, ToEthiopian(2024))
	assert.Equal(t, 2025, ToGregorian(2018))
}

func TestCurrentEthiopianYear_AroundNewYear(t *testing.T) {
	// 2025 is not a Gregorian leap year: new year falls on 11 September.
	before := time.Date(2025, time.September, 10, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 2017, CurrentEthiopianYear(before))

	onDay := time.Date(2025, time.September, 11, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2018, CurrentEthiopianYear(onDay))

	after := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2018, CurrentEthiopianYear(after))
}

func TestCurrentEthiopianYear_LeapYearCutover(t *testing.T) {
	// 2024 is a Gregorian leap year: cutover shifts to 12 September.
	onEleventh := time.Date(2024, time.September, 11, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 2016, CurrentEthiopianYear(onEleventh))

	onTwelfth := time.Date(2024, time.September, 12, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2017, CurrentEthiopianYear(onTwelfth))
}

func TestCurrentEthiopianYear_EarlyInYear(t *testing.T) {
	jan := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2017, CurrentEthiopianYear(jan))
}
