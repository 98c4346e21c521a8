package contract

import "fmt"

// Chooser commits to call or put treatment from the price observed at
// choiceIndex: call when that price is at or above the strike, put otherwise.
type Chooser struct {
	base
	strike      float64
	choiceIndex int
}

func NewChooser(t Terms, choiceIndex int) (*Chooser, error) {
	b, k, err := requireStrike(t)
	if err != nil {
		return nil, err
	}
	if choiceIndex < 0 {
		return nil, fmt.Errorf("choice index %d: %w: %w", choiceIndex, ErrInvalidParameter, ErrIndexOutOfRange)
	}
	return &Chooser{base: b, strike: k, choiceIndex: choiceIndex}, nil
}

func (c *Chooser) Payoff(path Path) (float64, error) {
	if err := path.Validate(); err != nil {
		return 0, err
	}
	observed, err := path.At(c.choiceIndex)
	if err != nil {
		return 0, fmt.Errorf("chooser: %w", err)
	}
	return intrinsic(observed >= c.strike, path.Last(), c.strike), nil
}
