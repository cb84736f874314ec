package histogram

import (
	"fmt"
	"math"
	"strings"
)

// Scale selects how a bucket count is normalized against the maximum.
type Scale int

const (
	// Linear maps a count to count/max.
	Linear Scale = iota
	// Logarithmic maps a count to log(count)/log(max), i.e. the logarithm
	// of count in base max.
	Logarithmic
)

// ParseScale accepts "linear"/"lin" and "log"/"logarithmic", case-insensitive.
func ParseScale(s string) (Scale, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear", "lin":
		return Linear, nil
	case "log", "logarithmic":
		return Logarithmic, nil
	default:
		return Linear, fmt.Errorf("unknown scale %q (want linear or log)", s)
	}
}

func (s Scale) String() string {
	switch s {
	case Linear:
		return "linear"
	case Logarithmic:
		return "log"
	default:
		return fmt.Sprintf("Scale(%d)", int(s))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Scale) UnmarshalText(b []byte) error {
	v, err := ParseScale(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Scale) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Ratio returns v normalized to [0,1] against peak. Degenerate inputs map
// to 0: peak <= 0 in linear mode, and v <= 0 or peak <= 1 in log mode
// (log base 1 is undefined).
func (s Scale) Ratio(v, peak float64) float64 {
	var r float64
	switch s {
	case Logarithmic:
		if v <= 0 || peak <= 1 {
			return 0
		}
		r = math.Log(v) / math.Log(peak)
	default:
		if peak <= 0 {
			return 0
		}
		r = v / peak
	}
	if math.IsNaN(r) || r < 0 {
		return 0
	}
	return min(r, 1)
}

// Brightness maps v to an 8-bit intensity: floor(Ratio*255).
func (s Scale) Brightness(v, peak float64) uint8 {
	return uint8(math.Floor(s.Ratio(v, peak) * 255))
}

// BarHeight maps v to a bar of round(Ratio*height) pixels.
func (s Scale) BarHeight(v, peak float64, height int) int {
	return int(math.Round(s.Ratio(v, peak) * float64(height)))
}
