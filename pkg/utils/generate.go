package utils

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"travel-booking/internal/data/entity"

	"github.com/google/uuid"
)

// ==================== UUID ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(uuidStr))
}

// ==================== TRACKING CODE ====================

const compactSuffixChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// IdentifierGenerator builds human-readable tracking codes. It performs no
// existence check; uniqueness is enforced by the store and a retry in the caller.
type IdentifierGenerator struct {
	clock Clock
	intn  func(n int) int
}

func NewIdentifierGenerator(clock Clock) *IdentifierGenerator {
	return NewIdentifierGeneratorWithSource(clock, rand.IntN)
}

// NewIdentifierGeneratorWithSource uses intn as the random source; intn must
// return a value in [0, n) and be safe for concurrent use.
func NewIdentifierGeneratorWithSource(clock Clock, intn func(n int) int) *IdentifierGenerator {
	return &IdentifierGenerator{clock: clock, intn: intn}
}

// Generate returns PREFIX-YYYYMMDD-NNNN using today's date.
func (g *IdentifierGenerator) Generate(kind entity.RecordKind) string {
	datePart := g.clock.Now().Format("20060102")
	return fmt.Sprintf("%s-%s-%04d", kind.Prefix(), datePart, g.intn(10000))
}

// Compact returns PREFIX + base36 millisecond timestamp + 3 random characters,
// the legacy alias format still printed on older booking confirmations.
func (g *IdentifierGenerator) Compact(kind entity.RecordKind) string {
	ts := strings.ToUpper(strconv.FormatInt(g.clock.Now().UnixMilli(), 36))

	var suffix strings.Builder
	for i := 0; i < 3; i++ {
		suffix.WriteByte(compactSuffixChars[g.intn(len(compactSuffixChars))])
	}

	return kind.Prefix() + ts + suffix.String()
}
