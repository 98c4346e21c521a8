package contract

// Vanilla is a European call or put settled on the terminal price.
type Vanilla struct {
	base
	strike float64
	isCall bool
}

func NewVanilla(t Terms, isCall bool) (*Vanilla, error) {
	b, k, err := requireStrike(t)
	if err != nil {
		return nil, err
	}
	return &Vanilla{base: b, strike: k, isCall: isCall}, nil
}

func NewCall(t Terms) (*Vanilla, error) { return NewVanilla(t, true) }

func NewPut(t Terms) (*Vanilla, error) { return NewVanilla(t, false) }

func (v *Vanilla) IsCall() bool { return v.isCall }

func (v *Vanilla) Payoff(path Path) (float64, error) {
	if err := path.Validate(); err != nil {
		return 0, err
	}
	return intrinsic(v.isCall, path.Last(), v.strike), nil
}
