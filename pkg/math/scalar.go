package math

import "math"

// Lerp interpolates linearly between a and b. t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// InverseLerp returns where v lies between a and b as a fraction clamped to
// [0, 1]. Equal endpoints yield 0.
func InverseLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	return Clamp01((v - a) / (b - a))
}

// Clamp01 clamps v to [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Repeat wraps t into [0, length).
func Repeat(t, length float64) float64 {
	return Clamp(t-math.Floor(t/length)*length, 0, length)
}

// PingPong bounces t back and forth between 0 and length.
func PingPong(t, length float64) float64 {
	t = Repeat(t, length*2)
	return length - math.Abs(t-length)
}

// Clamp clamps v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
