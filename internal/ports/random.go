package ports

// RandomSource yields uniform values in [0, 1)
type RandomSource interface {
	Float64() float64
}
