package contract

import "fmt"

// LookbackType selects whether a lookback keeps its strike or replaces it
// with a path extreme.
type LookbackType string

const (
	Fixed    LookbackType = "fixed"
	Floating LookbackType = "floating"
)

// Lookback pays against the most favourable path extreme with a fixed strike.
type Lookback struct {
	base
	strike float64
	isCall bool
}

// FloatingLookback replaces the strike by the path extreme. It has no strike.
type FloatingLookback struct {
	base
	isCall bool
}

// NewLookback builds a fixed or floating lookback. A floating lookback
// ignores t.Strike, which may be absent.
func NewLookback(t Terms, isCall bool, typ LookbackType) (Contract, error) {
	switch typ {
	case Fixed:
		l, err := NewFixedLookback(t, isCall)
		if err != nil {
			return nil, err
		}
		return l, nil
	case Floating:
		l, err := NewFloatingLookback(t.Expiry, t.Premium, isCall)
		if err != nil {
			return nil, err
		}
		return l, nil
	}
	return nil, fmt.Errorf("lookback type %q: %w", typ, ErrInvalidParameter)
}

func NewFixedLookback(t Terms, isCall bool) (*Lookback, error) {
	b, k, err := requireStrike(t)
	if err != nil {
		return nil, err
	}
	return &Lookback{base: b, strike: k, isCall: isCall}, nil
}

func NewFloatingLookback(expiry, premium float64, isCall bool) (*FloatingLookback, error) {
	b, err := newBase(expiry, premium)
	if err != nil {
		return nil, err
	}
	return &FloatingLookback{base: b, isCall: isCall}, nil
}

func (l *Lookback) Payoff(path Path) (float64, error) {
	if err := path.Validate(); err != nil {
		return 0, err
	}
	if l.isCall {
		return intrinsic(true, path.Max(), l.strike), nil
	}
	return intrinsic(false, path.Min(), l.strike), nil
}

// Payoff is never floored: a negative result means the path itself is
// inconsistent and is reported as ErrDomain.
func (l *FloatingLookback) Payoff(path Path) (float64, error) {
	if err := path.Validate(); err != nil {
		return 0, err
	}

	var payoff float64
	if l.isCall {
		payoff = path.Last() - path.Min()
	} else {
		payoff = path.Max() - path.Last()
	}
	if payoff < 0 {
		return 0, fmt.Errorf("floating lookback payoff %g is negative: %w", payoff, ErrDomain)
	}
	return payoff, nil
}
