package gamemath

import "math"

// SnapThreshold is the speed below which a decaying value is snapped to zero.
const SnapThreshold = 0.1

// ApplyDrag scales speed by drag and snaps it to zero once it falls below
// SnapThreshold, so exponential decay never leaves a creeping tail.
func ApplyDrag(speed, drag float64) float64 {
	speed *= drag
	if math.Abs(speed) < SnapThreshold {
		return 0
	}
	return speed
}

// ClampSpeed clamps a value to [-max, max].
func ClampSpeed(speed, max float64) float64 {
	if speed > max {
		return max
	}
	if speed < -max {
		return -max
	}
	return speed
}

// ClampMagnitude rescales (x, y) so its length does not exceed max, keeping
// its direction.
func ClampMagnitude(x, y, max float64) (float64, float64) {
	if math.Hypot(x, y) <= max {
		return x, y
	}
	theta := math.Atan2(y, x)
	return math.Cos(theta) * max, math.Sin(theta) * max
}

// Wrap teleports pos to the opposite edge once it leaves [-margin, bound+margin].
func Wrap(pos, bound, margin float64) float64 {
	if pos < -margin {
		return bound
	}
	if pos > bound+margin {
		return 0
	}
	return pos
}
