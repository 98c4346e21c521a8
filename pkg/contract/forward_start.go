package contract

import "fmt"

// ForwardStart fixes its strike at the price observed at fixingIndex. The
// fixing must happen strictly before expiry.
type ForwardStart struct {
	base
	fixingIndex int
	isCall      bool
}

func NewForwardStart(expiry, premium float64, fixingIndex int, isCall bool) (*ForwardStart, error) {
	b, err := newBase(expiry, premium)
	if err != nil {
		return nil, err
	}
	if fixingIndex < 0 {
		return nil, fmt.Errorf("fixing index %d: %w: %w", fixingIndex, ErrInvalidParameter, ErrIndexOutOfRange)
	}
	return &ForwardStart{base: b, fixingIndex: fixingIndex, isCall: isCall}, nil
}

func (f *ForwardStart) Payoff(path Path) (float64, error) {
	if err := path.Validate(); err != nil {
		return 0, err
	}
	if f.fixingIndex >= len(path)-1 {
		return 0, fmt.Errorf("fixing index %d leaves no observation after it in path of length %d: %w",
			f.fixingIndex, len(path), ErrIndexOutOfRange)
	}
	strike := path[f.fixingIndex]
	return intrinsic(f.isCall, path.Last(), strike), nil
}
