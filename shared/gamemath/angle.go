package gamemath

import "math"

// TwoPi is a full turn in radians.
const TwoPi = 2 * math.Pi

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// NormalizeRadians maps a into [0, 2π).
func NormalizeRadians(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	if a >= TwoPi {
		a = 0
	}
	return a
}

// WrapDegrees keeps a rotation inside (-360, 360).
func WrapDegrees(deg float64) float64 {
	return math.Mod(deg, 360)
}

// NormalizeDegrees maps deg into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
