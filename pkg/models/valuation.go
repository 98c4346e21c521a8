package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Valuation is one contract evaluated over one path. Error is set and the
// amounts are zero when evaluation failed.
type Valuation struct {
	Name      string          `json:"name"`
	Kind      ContractKind    `json:"kind"`
	Category  Category        `json:"category"`
	Payoff    decimal.Decimal `json:"payoff"`
	NetResult decimal.Decimal `json:"net_result"`
	Error     string          `json:"error,omitempty"`
}

func (v Valuation) Failed() bool {
	return v.Error != ""
}

// Report is the result of evaluating a portfolio over one path.
type Report struct {
	ID         string      `json:"id"`
	Path       []float64   `json:"path"`
	Valuations []Valuation `json:"valuations"`
	Failed     int         `json:"failed"`
	CreatedAt  time.Time   `json:"created_at"`
}

// TotalNet sums the net result of every successful valuation.
func (r *Report) TotalNet() decimal.Decimal {
	total := decimal.Zero
	for _, v := range r.Valuations {
		if !v.Failed() {
			total = total.Add(v.NetResult)
		}
	}
	return total
}
