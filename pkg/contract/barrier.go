package contract

import "fmt"

// Barrier is a vanilla contract switched on (knock-in) or off (knock-out)
// by the path touching a barrier level from above or below.
type Barrier struct {
	base
	strike  float64
	isCall  bool
	barrier float64
	knockIn bool
	up      bool
}

func NewBarrier(t Terms, isCall bool, barrier float64, knockIn, up bool) (*Barrier, error) {
	b, k, err := requireStrike(t)
	if err != nil {
		return nil, err
	}
	if !isFinite(barrier) || barrier <= 0 {
		return nil, fmt.Errorf("barrier %g: %w", barrier, ErrInvalidParameter)
	}
	return &Barrier{
		base:    b,
		strike:  k,
		isCall:  isCall,
		barrier: barrier,
		knockIn: knockIn,
		up:      up,
	}, nil
}

// Touched reports whether the path reaches the barrier. Touching the level
// exactly counts.
func (b *Barrier) Touched(path Path) bool {
	if b.up {
		return path.Max() >= b.barrier
	}
	return path.Min() <= b.barrier
}

func (b *Barrier) Payoff(path Path) (float64, error) {
	if err := path.Validate(); err != nil {
		return 0, err
	}

	active := b.Touched(path)
	if !b.knockIn {
		active = !active
	}
	if !active {
		return 0, nil
	}
	return intrinsic(b.isCall, path.Last(), b.strike), nil
}
