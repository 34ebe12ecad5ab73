package utils

import "golang.org/x/exp/constraints"

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// Clamp bounds v to [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// AtLeast returns v, or floor when v is below it.
func AtLeast[T constraints.Ordered](v, floor T) T {
	if v < floor {
		return floor
	}
	return v
}

// Fraction applies a fractional rate to an integer amount, rounding down.
func Fraction[T constraints.Integer](amount T, rate float64) T {
	return T(float64(amount) * rate)
}
