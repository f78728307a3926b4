package benchmark

import (
	"fmt"
	"math/rand"
	"strings"

	herrors "github.com/23skdu/hamming/internal/errors"
)

// Pattern describes how a harness buffer is filled.
type Pattern string

const (
	PatternRandom      Pattern = "random"
	PatternZeros       Pattern = "zeros"
	PatternOnes        Pattern = "ones"
	PatternAlternating Pattern = "alternating"
	// PatternMisaligned is random data starting 1..7 bytes past a 64-byte
	// boundary, so no word load is aligned.
	PatternMisaligned Pattern = "misaligned"
)

// AllPatterns returns every pattern in a stable order.
func AllPatterns() []Pattern {
	return []Pattern{PatternRandom, PatternZeros, PatternOnes, PatternAlternating, PatternMisaligned}
}

// ParsePatterns parses a comma separated pattern list. "all" or "" selects
// every pattern.
func ParsePatterns(s string) ([]Pattern, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "all" {
		return AllPatterns(), nil
	}

	var out []Pattern
	for _, field := range strings.Split(s, ",") {
		p := Pattern(strings.TrimSpace(field))
		switch p {
		case PatternRandom, PatternZeros, PatternOnes, PatternAlternating, PatternMisaligned:
			out = append(out, p)
		default:
			return nil, herrors.NewConfigurationError("parse_patterns", fmt.Sprintf("unknown pattern %q", field)).
				WithContext("pattern", field)
		}
	}
	return out, nil
}

// fill writes the pattern into buf. The complement of a pattern is used for
// the second operand of distance so that fixed patterns produce a non-zero
// distance.
func fill(buf []byte, p Pattern, complement bool, rng *rand.Rand) {
	var v byte
	switch p {
	case PatternZeros:
		v = 0x00
	case PatternOnes:
		v = 0xFF
	case PatternAlternating:
		v = 0xAA
	default:
		rng.Read(buf)
		return
	}
	if complement {
		v = ^v
	}
	for i := range buf {
		buf[i] = v
	}
}
