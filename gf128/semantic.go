package gf128

import (
	"fmt"
	"strings"
)

// Semantic selects the bit order used to encode an element as a
// block.
type Semantic int

const (
	// GCM is the bit-reflected order mandated by GCM: within
	// each byte the most significant bit is the lowest power.
	GCM Semantic = iota
	// XEX is the natural little-endian order used by XEX and
	// XTS.
	XEX
)

// ParseSemantic parses "gcm" or "xex", ignoring case.
func ParseSemantic(s string) (Semantic, error) {
	switch strings.ToLower(s) {
	case "gcm":
		return GCM, nil
	case "xex":
		return XEX, nil
	default:
		return 0, fmt.Errorf("gf128: unknown semantic %q", s)
	}
}

func (s Semantic) String() string {
	switch s {
	case GCM:
		return "gcm"
	case XEX:
		return "xex"
	default:
		return fmt.Sprintf("Semantic(%d)", int(s))
	}
}

// Encode encodes x using the bit order s.
func (x Element) Encode(s Semantic) [Size]byte {
	if s == XEX {
		return x.Natural()
	}
	return x.Block()
}

// Decode decodes b using the bit order s.
func Decode(s Semantic, b [Size]byte) Element {
	if s == XEX {
		return FromNatural(b)
	}
	return FromBlock(b)
}
