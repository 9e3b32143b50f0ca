package common

import "github.com/go-gl/mathgl/mgl64"

func Lerp(a, b, t float64) float64 {
	return a + mgl64.Clamp(t, 0, 1)*(b-a)
}
