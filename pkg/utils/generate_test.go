package utils

import (
	"regexp"
	"testing"
	"time"

	"travel-booking/internal/data/entity"

	"github.com/stretchr/testify/assert"
)

func fixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

func TestGenerateFormat(t *testing.T) {
	now := time.Date(2025, 8, 1, 15, 4, 5, 0, time.UTC)
	gen := NewIdentifierGenerator(fixedClock(now))

	tests := []struct {
		kind    entity.RecordKind
		pattern string
	}{
		{entity.KindBooking, `^BK-20250801-\d{4}$`},
		{entity.KindCustomTourRequest, `^CTR-20250801-\d{4}$`},
		{entity.KindCustomBooking, `^CB-20250801-\d{4}$`},
	}

	for _, tt := range tests {
		for i := 0; i < 50; i++ {
			assert.Regexp(t, regexp.MustCompile(tt.pattern), gen.Generate(tt.kind))
		}
	}
}

func TestGenerateZeroPadsRandomPart(t *testing.T) {
	now := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	values := []int{0, 7, 9999}
	i := 0
	gen := NewIdentifierGeneratorWithSource(fixedClock(now), func(n int) int {
		v := values[i%len(values)]
		i++
		return v
	})

	assert.Equal(t, "BK-20250801-0000", gen.Generate(entity.KindBooking))
	assert.Equal(t, "BK-20250801-0007", gen.Generate(entity.KindBooking))
	assert.Equal(t, "BK-20250801-9999", gen.Generate(entity.KindBooking))
}

func TestGenerateUsesClockDateInItsLocation(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	// 20:00 UTC on the 14th is already the 15th in UTC+7.
	now := time.Date(2025, 8, 14, 20, 0, 0, 0, time.UTC).In(jakarta)
	gen := NewIdentifierGeneratorWithSource(fixedClock(now), func(int) int { return 42 })

	assert.Equal(t, "CTR-20250815-0042", gen.Generate(entity.KindCustomTourRequest))
}

func TestCompactFormat(t *testing.T) {
	now := time.UnixMilli(1723700000000)
	gen := NewIdentifierGeneratorWithSource(fixedClock(now), func(int) int { return 0 })

	code := gen.Compact(entity.KindBooking)
	assert.Regexp(t, `^BK[0-9A-Z]+AAA$`, code)
	assert.NotContains(t, code, "-")
}
