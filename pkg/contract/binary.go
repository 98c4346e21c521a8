package contract

import "fmt"

// Binary pays a fixed amount when the terminal price finishes strictly in
// the money, and nothing otherwise.
type Binary struct {
	base
	strike float64
	isCall bool
	payout float64
}

func NewBinary(t Terms, isCall bool, payout float64) (*Binary, error) {
	b, k, err := requireStrike(t)
	if err != nil {
		return nil, err
	}
	if !isFinite(payout) || payout < 0 {
		return nil, fmt.Errorf("payout %g: %w", payout, ErrInvalidParameter)
	}
	return &Binary{base: b, strike: k, isCall: isCall, payout: payout}, nil
}

func (b *Binary) Payoff(path Path) (float64, error) {
	if err := path.Validate(); err != nil {
		return 0, err
	}

	s := path.Last()
	if (b.isCall && s > b.strike) || (!b.isCall && s < b.strike) {
		return b.payout, nil
	}
	return 0, nil
}
