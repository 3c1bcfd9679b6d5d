package vertexpath

import (
	"fmt"
	gomath "math"
	"strings"

	"github.com/Faultbox/vertexpath/pkg/math"
)

// EndOfPath decides how a time outside [0, 1] maps back onto the path.
type EndOfPath uint8

// End-of-path policies.
const (
	Loop    EndOfPath = iota // wrap around to the start
	Reverse                  // bounce back and forth
	Stop                     // clamp at the ends
)

// String returns the policy name.
func (e EndOfPath) String() string {
	switch e {
	case Loop:
		return "loop"
	case Reverse:
		return "reverse"
	case Stop:
		return "stop"
	default:
		return fmt.Sprintf("Unknown(%d)", e)
	}
}

// ParseEndOfPath parses a policy name (case-insensitive).
func ParseEndOfPath(name string) (EndOfPath, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "loop":
		return Loop, nil
	case "reverse", "pingpong":
		return Reverse, nil
	case "stop", "clamp":
		return Stop, nil
	default:
		return 0, fmt.Errorf("unknown end-of-path policy %q", name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (e EndOfPath) MarshalText() ([]byte, error) {
	if e > Stop {
		return nil, fmt.Errorf("invalid end-of-path policy %d", e)
	}
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *EndOfPath) UnmarshalText(text []byte) error {
	v, err := ParseEndOfPath(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// Normalize maps t into the path's time range.
// Loop wraps into [0, 1), Reverse ping-pongs within [0, 1], Stop clamps.
func (e EndOfPath) Normalize(t float64) (float64, error) {
	if gomath.IsNaN(t) || gomath.IsInf(t, 0) {
		return 0, fmt.Errorf("%w: %v", ErrNonFiniteTime, t)
	}

	switch e {
	case Loop:
		if t < 0 {
			t += gomath.Ceil(gomath.Abs(t))
		}
		return gomath.Mod(t, 1), nil
	case Reverse:
		return math.PingPong(t, 1), nil
	default:
		return math.Clamp01(t), nil
	}
}
