package math

import (
	m "math"
)

const (
	K_PI      float32 = 3.14159265358979323846
	K_HALF_PI float32 = 0.5 * K_PI
)

func ksin(x float32) float32 {
	return float32(m.Sin(float64(x)))
}

func kcos(x float32) float32 {
	return float32(m.Cos(float64(x)))
}

func ksqrt(x float32) float32 {
	return float32(m.Sqrt(float64(x)))
}

func kabs(x float32) float32 {
	return Abs(x)
}
