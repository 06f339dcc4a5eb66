package tradebook

import (
	"fmt"
	"strings"
)

// MatchingPolicy defines the order in which sells consume lots.
type MatchingPolicy int

const (
	// FIFO (First-In, First-Out) consumes the oldest lots first.
	FIFO MatchingPolicy = iota
	// LIFO (Last-In, First-Out) consumes the newest lots first.
	LIFO
)

func (m MatchingPolicy) String() string {
	switch m {
	case FIFO:
		return "fifo"
	case LIFO:
		return "lifo"
	default:
		return "unknown"
	}
}

// ParseMatchingPolicy parses a string into a MatchingPolicy.
func ParseMatchingPolicy(s string) (MatchingPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fifo":
		return FIFO, nil
	case "lifo":
		return LIFO, nil
	default:
		return 0, fmt.Errorf("unknown matching policy: %q", s)
	}
}
