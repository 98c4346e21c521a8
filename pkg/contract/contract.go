// Package contract values option contracts against a price path of the
// underlying. Every variant implements Contract; net P&L is derived once by
// NetResult for all of them.
package contract

import (
	"fmt"
	"math"
)

// Contract is the capability shared by every option variant.
type Contract interface {
	// Payoff returns the gross payoff for the path, before premium.
	Payoff(path Path) (float64, error)
	Premium() float64
	Expiry() float64
}

// NetResult returns the payoff of c over path minus its premium.
func NetResult(c Contract, path Path) (float64, error) {
	payoff, err := c.Payoff(path)
	if err != nil {
		return 0, err
	}
	return payoff - c.Premium(), nil
}

// Strike is an optional reference price. The zero value is an absent strike.
type Strike struct {
	value float64
	set   bool
}

// StrikeAt returns a present strike with value k.
func StrikeAt(k float64) Strike {
	return Strike{value: k, set: true}
}

// NoStrike is the absent strike, used by floating-strike contracts.
var NoStrike = Strike{}

func (s Strike) Value() (float64, bool) {
	return s.value, s.set
}

func (s Strike) String() string {
	if !s.set {
		return "none"
	}
	return fmt.Sprintf("%g", s.value)
}

// Terms are the fields common to every contract.
type Terms struct {
	Strike  Strike
	Expiry  float64
	Premium float64
}

// base carries expiry and premium for every variant.
type base struct {
	expiry  float64
	premium float64
}

func (b base) Premium() float64 { return b.premium }
func (b base) Expiry() float64  { return b.expiry }

func newBase(expiry, premium float64) (base, error) {
	if !isFinite(expiry) || expiry < 0 {
		return base{}, fmt.Errorf("expiry %g: %w", expiry, ErrInvalidParameter)
	}
	if !isFinite(premium) || premium < 0 {
		return base{}, fmt.Errorf("premium %g: %w", premium, ErrInvalidParameter)
	}
	return base{expiry: expiry, premium: premium}, nil
}

// requireStrike validates terms for a variant that reads a fixed strike.
func requireStrike(t Terms) (base, float64, error) {
	b, err := newBase(t.Expiry, t.Premium)
	if err != nil {
		return base{}, 0, err
	}
	k, ok := t.Strike.Value()
	if !ok {
		return base{}, 0, fmt.Errorf("strike is required: %w", ErrInvalidParameter)
	}
	if !isFinite(k) || k < 0 {
		return base{}, 0, fmt.Errorf("strike %g: %w", k, ErrInvalidParameter)
	}
	return b, k, nil
}

// intrinsic is the vanilla payoff of a call or put struck at k with terminal price s.
func intrinsic(isCall bool, s, k float64) float64 {
	if isCall {
		return math.Max(0, s-k)
	}
	return math.Max(0, k-s)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
