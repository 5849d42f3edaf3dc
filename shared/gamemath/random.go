package gamemath

import "math/rand/v2"

// Jitter draws uniformly from [v - spread/2, v + spread/2]. A zero spread
// returns v without consuming randomness.
func Jitter(r *rand.Rand, v, spread float64) float64 {
	if spread == 0 {
		return v
	}
	return v - spread/2 + r.Float64()*spread
}
