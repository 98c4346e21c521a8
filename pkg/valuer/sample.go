package valuer

import "github.com/gregtusar/exotics/pkg/models"

// SamplePath is a ten-step demonstration path; 115 at index 6 is its maximum.
var SamplePath = []float64{100, 102, 104, 108, 107, 112, 115, 113, 110, 112}

// SamplePortfolio is one contract of every kind struck at 105 with expiry 1,
// used when no portfolio is configured.
func SamplePortfolio() []models.ContractSpec {
	k := 105.0
	yes, no := true, false
	return []models.ContractSpec{
		{Name: "Vanilla Call", Kind: models.KindCall, Strike: &k, Expiry: 1, Premium: 5},
		{Name: "Vanilla Put", Kind: models.KindPut, Strike: &k, Expiry: 1, Premium: 5},
		{Name: "Asian Arithmetic", Kind: models.KindAsian, Strike: &k, Expiry: 1, AverageType: "arithmetic"},
		{Name: "Asian Geometric", Kind: models.KindAsian, Strike: &k, Expiry: 1, AverageType: "geometric"},
		{Name: "Up-and-Out Call", Kind: models.KindBarrier, Strike: &k, Expiry: 1, Barrier: 114, KnockIn: &no, Up: &yes},
		{Name: "Lookback Fixed", Kind: models.KindLookback, Strike: &k, Expiry: 1, LookbackType: "fixed"},
		{Name: "Lookback Floating", Kind: models.KindLookback, Expiry: 1, LookbackType: "floating"},
		{Name: "Chooser", Kind: models.KindChooser, Strike: &k, Expiry: 1, ChoiceIndex: 4},
		{Name: "Binary Call", Kind: models.KindBinary, Strike: &k, Expiry: 1, Payout: 50},
		{Name: "Forward Start", Kind: models.KindForwardStart, Expiry: 1, FixingIndex: 2},
	}
}
