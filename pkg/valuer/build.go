package valuer

import (
	"fmt"

	"github.com/gregtusar/exotics/pkg/contract"
	"github.com/gregtusar/exotics/pkg/models"
)

// Build constructs the contract described by spec.
func Build(spec models.ContractSpec) (contract.Contract, error) {
	terms := contract.Terms{
		Strike:  contract.NoStrike,
		Expiry:  spec.Expiry,
		Premium: spec.Premium,
	}
	if spec.Strike != nil {
		terms.Strike = contract.StrikeAt(*spec.Strike)
	}

	switch spec.Kind {
	case models.KindCall:
		return built(contract.NewCall(terms))
	case models.KindPut:
		return built(contract.NewPut(terms))
	case models.KindAsian:
		avg := contract.AverageType(spec.AverageType)
		if avg == "" {
			avg = contract.Arithmetic
		}
		return built(contract.NewAsian(terms, spec.Call(), avg))
	case models.KindBarrier:
		return built(contract.NewBarrier(terms, spec.Call(), spec.Barrier, spec.KnockInBarrier(), spec.UpBarrier()))
	case models.KindLookback:
		typ := contract.LookbackType(spec.LookbackType)
		if typ == "" {
			typ = contract.Floating
		}
		return contract.NewLookback(terms, spec.Call(), typ)
	case models.KindChooser:
		return built(contract.NewChooser(terms, spec.ChoiceIndex))
	case models.KindBinary:
		return built(contract.NewBinary(terms, spec.Call(), spec.Payout))
	case models.KindForwardStart:
		if spec.Strike != nil {
			return nil, fmt.Errorf("forward start strike is fixed from the path: %w", contract.ErrInvalidParameter)
		}
		return built(contract.NewForwardStart(spec.Expiry, spec.Premium, spec.FixingIndex, spec.Call()))
	}
	return nil, fmt.Errorf("contract kind %q: %w", spec.Kind, contract.ErrInvalidParameter)
}

// built drops the typed nil returned alongside a constructor error.
func built[T contract.Contract](c T, err error) (contract.Contract, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}
