package contract

import "fmt"

// AverageType selects how an Asian contract reduces the path to one price.
type AverageType string

const (
	Arithmetic AverageType = "arithmetic"
	Geometric  AverageType = "geometric"
)

// Asian compares the average of the whole path, not just the terminal
// price, against the strike.
type Asian struct {
	base
	strike  float64
	isCall  bool
	average AverageType
}

func NewAsian(t Terms, isCall bool, average AverageType) (*Asian, error) {
	b, k, err := requireStrike(t)
	if err != nil {
		return nil, err
	}
	switch average {
	case Arithmetic, Geometric:
	default:
		return nil, fmt.Errorf("average type %q: %w", average, ErrInvalidParameter)
	}
	return &Asian{base: b, strike: k, isCall: isCall, average: average}, nil
}

func (a *Asian) Payoff(path Path) (float64, error) {
	if err := path.Validate(); err != nil {
		return 0, err
	}

	var avg float64
	switch a.average {
	case Geometric:
		gm, err := path.GeometricMean()
		if err != nil {
			return 0, err
		}
		avg = gm
	default:
		avg = path.Mean()
	}
	return intrinsic(a.isCall, avg, a.strike), nil
}
