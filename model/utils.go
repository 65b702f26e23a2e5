package model

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

const epsilon = 0.004

// Comparef64 returns true if |f1-f2| < tol. Uses a default tolerance
// when tol is not positive.
func Comparef64(f1, f2, tol float64) bool {
	if tol <= 0 {
		tol = epsilon
	}
	return math.Abs(f2-f1) < tol
}

// Generates a random number given a discrete prob distribution.
// This is not optimal but should work for testing
func RandIntFromDist(dist []float64, r *rand.Rand) (int, error) {
	N := len(dist)
	if N == 0 {
		return -1, fmt.Errorf("Error prob distribution has len 0")
	}
	ran := r.Float64()
	cum := 0.0
	for i := 0; i < N; i++ {
		cum = cum + dist[i]
		if ran < cum {
			return i, nil
		}
	}
	if !Comparef64(floats.Sum(dist), 1.0, 0.001) {
		return -1, fmt.Errorf("Distribution doesn't sum to 1")
	}

	// Rounding left ran above cum. Return the last state with mass.
	for i := N - 1; i >= 0; i-- {
		if dist[i] > 0 {
			return i, nil
		}
	}
	return N - 1, nil
}
