package infrastructure

import "math/rand/v2"

// MathRandom implements the RandomSource port with the runtime's shared generator
type MathRandom struct{}

func NewMathRandom() MathRandom {
	return MathRandom{}
}

func (MathRandom) Float64() float64 {
	return rand.Float64()
}
