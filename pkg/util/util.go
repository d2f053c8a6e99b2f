package util

import (
	"golang.org/x/exp/constraints"
)

func Min[T constraints.Ordered](a T, b T) T {
	if a < b {
		return a
	}
	return b
}

func Max[T constraints.Ordered](a T, b T) T {
	if a > b {
		return a
	}
	return b
}

// Clamp limits v to the closed interval [lo, hi]
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	return Max(lo, Min(v, hi))
}

// Mod is a modulo that works properly with negative numbers
func Mod[T constraints.Integer](a, b T) T {
	return ((a % b) + b) % b
}
