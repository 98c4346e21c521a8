package valuer

import (
	"context"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/gregtusar/exotics/pkg/contract"
	"github.com/gregtusar/exotics/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Places is the number of decimal places kept in reported amounts.
const Places = 4

// Valuer evaluates portfolios over a price path. One contract failing is
// recorded in its row and never stops the others.
type Valuer struct {
	workers int
	logger  *logrus.Logger
}

// New returns a Valuer running at most workers evaluations at once. A
// non-positive workers uses GOMAXPROCS.
func New(workers int, logger *logrus.Logger) *Valuer {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Valuer{workers: workers, logger: logger}
}

type item struct {
	spec     models.ContractSpec
	contract contract.Contract
	buildErr error
}

// Evaluate values every entry over path. Rows keep the order of entries.
// The only error returned is ctx's.
func (v *Valuer) Evaluate(ctx context.Context, path []float64, entries []Entry) (*models.Report, error) {
	items := make([]item, len(entries))
	for i, e := range entries {
		items[i] = item{spec: e.Spec, contract: e.Contract}
	}
	return v.run(ctx, path, items)
}

// EvaluateSpecs builds each spec and values it over path. A spec that fails
// to build is reported in its row like any evaluation failure.
func (v *Valuer) EvaluateSpecs(ctx context.Context, path []float64, specs []models.ContractSpec) (*models.Report, error) {
	items := make([]item, len(specs))
	for i, spec := range specs {
		c, err := Build(spec)
		items[i] = item{spec: spec, contract: c, buildErr: err}
	}
	return v.run(ctx, path, items)
}

func (v *Valuer) run(ctx context.Context, path []float64, items []item) (*models.Report, error) {
	report := &models.Report{
		ID:         uuid.New().String(),
		Path:       append([]float64(nil), path...),
		Valuations: make([]models.Valuation, len(items)),
		CreatedAt:  time.Now().UTC(),
	}
	p := contract.Path(path)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(v.workers)
	for i := range items {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report.Valuations[i] = v.value(items[i], p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, val := range report.Valuations {
		if val.Failed() {
			report.Failed++
		}
	}

	v.logger.WithFields(logrus.Fields{
		"report_id": report.ID,
		"contracts": len(items),
		"failed":    report.Failed,
		"path_len":  len(path),
	}).Info("Portfolio evaluated")
	return report, nil
}

func (v *Valuer) value(it item, path contract.Path) models.Valuation {
	val := models.Valuation{
		Name:      it.spec.DisplayName(),
		Kind:      it.spec.Kind,
		Category:  it.spec.Kind.Category(),
		Payoff:    decimal.Zero,
		NetResult: decimal.Zero,
	}

	err := it.buildErr
	if err == nil {
		var payoff, net float64
		if payoff, err = it.contract.Payoff(path); err == nil {
			net, err = contract.NetResult(it.contract, path)
		}
		if err == nil {
			val.Payoff = decimal.NewFromFloat(payoff).Round(Places)
			val.NetResult = decimal.NewFromFloat(net).Round(Places)
		}
	}
	if err != nil {
		val.Error = err.Error()
		v.logger.WithError(err).WithFields(logrus.Fields{
			"contract": val.Name,
			"kind":     val.Kind,
		}).Warn("Contract evaluation failed")
	}
	return val
}
