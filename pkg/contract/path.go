package contract

import (
	"fmt"
	"math"
)

// Path is an ordered sequence of underlying prices sampled at equally spaced
// times. Index 0 is the first fixing and the last element is the expiry price.
// Contracts only read a Path; they never modify or retain it.
type Path []float64

// Validate checks that the path is non-empty and every observation is finite
// and strictly positive.
func (p Path) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("empty path: %w", ErrDomain)
	}
	for i, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("observation %d is not finite: %w", i, ErrDomain)
		}
		if v <= 0 {
			return fmt.Errorf("observation %d is %g, must be positive: %w", i, v, ErrDomain)
		}
	}
	return nil
}

// Last returns the terminal (expiry) price.
func (p Path) Last() float64 {
	return p[len(p)-1]
}

// At returns the observation at index i.
func (p Path) At(i int) (float64, error) {
	if i < 0 || i >= len(p) {
		return 0, fmt.Errorf("index %d outside path of length %d: %w", i, len(p), ErrIndexOutOfRange)
	}
	return p[i], nil
}

func (p Path) Max() float64 {
	m := p[0]
	for _, v := range p[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func (p Path) Min() float64 {
	m := p[0]
	for _, v := range p[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// Mean is the arithmetic mean of all observations.
func (p Path) Mean() float64 {
	var sum float64
	for _, v := range p {
		sum += v
	}
	return sum / float64(len(p))
}

// GeometricMean is exp(mean(ln x)) over all observations.
func (p Path) GeometricMean() (float64, error) {
	var sum float64
	for i, v := range p {
		if v <= 0 {
			return 0, fmt.Errorf("geometric mean of non-positive observation %d (%g): %w", i, v, ErrDomain)
		}
		sum += math.Log(v)
	}
	return math.Exp(sum / float64(len(p))), nil
}
