package contract

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var samplePath = Path{100, 102, 104, 108, 107, 112, 115, 113, 110, 112}

func terms(k float64) Terms {
	return Terms{Strike: StrikeAt(k), Expiry: 1}
}

func mustPayoff(t *testing.T, c Contract, p Path) float64 {
	t.Helper()
	v, err := c.Payoff(p)
	require.NoError(t, err)
	return v
}

func TestSampleScenarios(t *testing.T) {
	upAndOut, err := NewBarrier(terms(105), true, 114, false, true)
	require.NoError(t, err)
	asian, err := NewAsian(terms(105), true, Arithmetic)
	require.NoError(t, err)
	lookback, err := NewFixedLookback(terms(105), true)
	require.NoError(t, err)
	chooser, err := NewChooser(terms(105), 4)
	require.NoError(t, err)
	forward, err := NewForwardStart(1, 0, 2, true)
	require.NoError(t, err)

	// 115 at index 6 touches the 114 barrier
	assert.Equal(t, 0.0, mustPayoff(t, upAndOut, samplePath))
	assert.InDelta(t, 3.3, mustPayoff(t, asian, samplePath), 1e-9)
	assert.Equal(t, 10.0, mustPayoff(t, lookback, samplePath))
	// 107 >= 105 at index 4 selects the call
	assert.Equal(t, 7.0, mustPayoff(t, chooser, samplePath))
	// strike fixed at 104
	assert.Equal(t, 8.0, mustPayoff(t, forward, samplePath))
}

func TestNetResultSubtractsPremium(t *testing.T) {
	tm := Terms{Strike: StrikeAt(105), Expiry: 1, Premium: 5}

	var contracts []Contract
	add := func(c Contract, err error) {
		require.NoError(t, err)
		contracts = append(contracts, c)
	}
	add(NewCall(tm))
	add(NewPut(tm))
	add(NewAsian(tm, true, Arithmetic))
	add(NewAsian(tm, false, Geometric))
	add(NewBarrier(tm, true, 114, true, true))
	add(NewBarrier(tm, false, 101, false, false))
	add(NewLookback(tm, true, Fixed))
	add(NewLookback(Terms{Expiry: 1, Premium: 5}, false, Floating))
	add(NewChooser(tm, 0))
	add(NewBinary(tm, true, 50))
	add(NewForwardStart(1, 5, 3, false))

	for _, c := range contracts {
		payoff := mustPayoff(t, c, samplePath)
		net, err := NetResult(c, samplePath)
		require.NoError(t, err)
		assert.Equal(t, payoff-5, net, "%T", c)
	}
}

func TestNetResultPropagatesError(t *testing.T) {
	c, err := NewChooser(terms(105), 20)
	require.NoError(t, err)

	_, err = NetResult(c, samplePath)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestVanillaPutCallSymmetry(t *testing.T) {
	const k = 105.0
	call, err := NewCall(terms(k))
	require.NoError(t, err)
	put, err := NewPut(terms(k))
	require.NoError(t, err)

	for _, s := range []float64{1, 50, 104.5, 105, 105.5, 200, 1e6} {
		p := Path{100, s}
		c := mustPayoff(t, call, p)
		q := mustPayoff(t, put, p)
		assert.InDelta(t, s-k, c-q, 1e-9, "terminal %g", s)
	}
}

func TestVanillaUsesTerminalPriceOnly(t *testing.T) {
	call, err := NewCall(terms(105))
	require.NoError(t, err)
	put, err := NewPut(terms(105))
	require.NoError(t, err)

	assert.Equal(t, 7.0, mustPayoff(t, call, samplePath))
	assert.Equal(t, 0.0, mustPayoff(t, put, samplePath))
	assert.Equal(t, 0.0, mustPayoff(t, call, Path{200, 90}))
	assert.Equal(t, 15.0, mustPayoff(t, put, Path{200, 90}))
}

func TestAsianGeometricBelowArithmetic(t *testing.T) {
	paths := []Path{
		samplePath,
		{1, 2},
		{50, 150, 75, 300},
		{99.9, 100.1},
	}
	for _, p := range paths {
		gm, err := p.GeometricMean()
		require.NoError(t, err)
		assert.Less(t, gm, p.Mean(), "path %v", p)
	}

	// equal observations collapse both means
	flat := Path{42, 42, 42}
	gm, err := flat.GeometricMean()
	require.NoError(t, err)
	assert.InDelta(t, 42.0, gm, 1e-9)
	assert.InDelta(t, 42.0, flat.Mean(), 1e-9)
}

func TestAsianPayoff(t *testing.T) {
	geoCall, err := NewAsian(terms(105), true, Geometric)
	require.NoError(t, err)
	arithPut, err := NewAsian(terms(110), false, Arithmetic)
	require.NoError(t, err)

	gm, err := samplePath.GeometricMean()
	require.NoError(t, err)
	assert.InDelta(t, gm-105, mustPayoff(t, geoCall, samplePath), 1e-9)
	assert.InDelta(t, 110-108.3, mustPayoff(t, arithPut, samplePath), 1e-9)
}

func TestGeometricMeanRejectsNonPositive(t *testing.T) {
	_, err := Path{100, 0, 102}.GeometricMean()
	assert.ErrorIs(t, err, ErrDomain)

	asian, err := NewAsian(terms(105), true, Geometric)
	require.NoError(t, err)
	_, err = asian.Payoff(Path{100, -1, 102})
	assert.ErrorIs(t, err, ErrDomain)
}

func TestAsianRejectsUnknownAverage(t *testing.T) {
	_, err := NewAsian(terms(105), true, AverageType("harmonic"))
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestBarrierCombinations(t *testing.T) {
	tests := []struct {
		name    string
		barrier float64
		knockIn bool
		up      bool
		want    float64
	}{
		{"up-and-in touched", 114, true, true, 7},
		{"up-and-out touched", 114, false, true, 0},
		{"up-and-in exact touch", 115, true, true, 7},
		{"up-and-in not touched", 116, true, true, 0},
		{"up-and-out not touched", 116, false, true, 7},
		{"down-and-in touched", 101, true, false, 7},
		{"down-and-in exact touch", 100, true, false, 7},
		{"down-and-out touched", 100, false, false, 0},
		{"down-and-in not touched", 99, true, false, 0},
		{"down-and-out not touched", 99, false, false, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBarrier(terms(105), true, tt.barrier, tt.knockIn, tt.up)
			require.NoError(t, err)
			assert.Equal(t, tt.want, mustPayoff(t, b, samplePath))
		})
	}
}

func TestBarrierInPlusOutEqualsVanilla(t *testing.T) {
	paths := []Path{
		samplePath,
		{100, 90, 95, 80},
		{100, 120},
		{100},
	}
	for _, isCall := range []bool{true, false} {
		vanilla, err := NewVanilla(terms(100), isCall)
		require.NoError(t, err)
		for _, up := range []bool{true, false} {
			for _, h := range []float64{80, 95, 100, 110, 115, 130} {
				in, err := NewBarrier(terms(100), isCall, h, true, up)
				require.NoError(t, err)
				out, err := NewBarrier(terms(100), isCall, h, false, up)
				require.NoError(t, err)

				for _, p := range paths {
					sum := mustPayoff(t, in, p) + mustPayoff(t, out, p)
					assert.Equal(t, mustPayoff(t, vanilla, p), sum,
						"call=%v up=%v barrier=%g path=%v", isCall, up, h, p)
				}
			}
		}
	}
}

func TestBarrierRejectsInvalidLevel(t *testing.T) {
	for _, h := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		_, err := NewBarrier(terms(105), true, h, true, true)
		assert.ErrorIs(t, err, ErrInvalidParameter, "barrier %g", h)
	}
}

func TestLookback(t *testing.T) {
	fixedPut, err := NewLookback(terms(105), false, Fixed)
	require.NoError(t, err)
	floatCall, err := NewLookback(Terms{Strike: NoStrike, Expiry: 1}, true, Floating)
	require.NoError(t, err)
	floatPut, err := NewFloatingLookback(1, 0, false)
	require.NoError(t, err)

	assert.Equal(t, 5.0, mustPayoff(t, fixedPut, samplePath))
	assert.Equal(t, 12.0, mustPayoff(t, floatCall, samplePath))
	assert.Equal(t, 3.0, mustPayoff(t, floatPut, samplePath))
}

func TestFloatingLookbackNonNegative(t *testing.T) {
	paths := []Path{
		samplePath,
		{100},
		{100, 50},
		{50, 100},
		{3, 1, 4, 1, 5, 9, 2, 6},
	}
	for _, isCall := range []bool{true, false} {
		l, err := NewFloatingLookback(1, 0, isCall)
		require.NoError(t, err)
		for _, p := range paths {
			assert.GreaterOrEqual(t, mustPayoff(t, l, p), 0.0)
		}
	}
}

func TestFixedLookbackRequiresStrike(t *testing.T) {
	_, err := NewLookback(Terms{Expiry: 1}, true, Fixed)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = NewLookback(terms(105), true, LookbackType("hybrid"))
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestChooser(t *testing.T) {
	// 102 < 105 at index 1 selects the put, which finishes out of the money
	put, err := NewChooser(terms(105), 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, mustPayoff(t, put, samplePath))

	// exactly at the strike selects the call
	atStrike, err := NewChooser(terms(104), 2)
	require.NoError(t, err)
	assert.Equal(t, 8.0, mustPayoff(t, atStrike, samplePath))

	last, err := NewChooser(terms(105), len(samplePath)-1)
	require.NoError(t, err)
	assert.Equal(t, 7.0, mustPayoff(t, last, samplePath))
}

func TestChooserIndexBounds(t *testing.T) {
	_, err := NewChooser(terms(105), -1)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	c, err := NewChooser(terms(105), len(samplePath))
	require.NoError(t, err)
	_, err = c.Payoff(samplePath)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestBinaryIsStepFunction(t *testing.T) {
	call, err := NewBinary(terms(105), true, 50)
	require.NoError(t, err)
	put, err := NewBinary(terms(105), false, 50)
	require.NoError(t, err)

	assert.Equal(t, 50.0, mustPayoff(t, call, samplePath))
	assert.Equal(t, 0.0, mustPayoff(t, put, samplePath))
	assert.Equal(t, 50.0, mustPayoff(t, call, Path{100, 105.01}))
	assert.Equal(t, 50.0, mustPayoff(t, call, Path{100, 500}))

	// at the strike neither side pays
	assert.Equal(t, 0.0, mustPayoff(t, call, Path{100, 105}))
	assert.Equal(t, 0.0, mustPayoff(t, put, Path{100, 105}))
	assert.Equal(t, 50.0, mustPayoff(t, put, Path{100, 104.99}))

	_, err = NewBinary(terms(105), true, -1)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestForwardStart(t *testing.T) {
	put, err := NewForwardStart(1, 0, 6, false)
	require.NoError(t, err)
	assert.Equal(t, 3.0, mustPayoff(t, put, samplePath))

	first, err := NewForwardStart(1, 0, 0, true)
	require.NoError(t, err)
	assert.Equal(t, 12.0, mustPayoff(t, first, samplePath))
}

func TestForwardStartIndexBounds(t *testing.T) {
	_, err := NewForwardStart(1, 0, -1, true)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	for _, idx := range []int{len(samplePath) - 1, len(samplePath), 100} {
		f, err := NewForwardStart(1, 0, idx, true)
		require.NoError(t, err)
		_, err = f.Payoff(samplePath)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "index %d", idx)
	}

	// a single observation leaves no room for any fixing
	f, err := NewForwardStart(1, 0, 0, true)
	require.NoError(t, err)
	_, err = f.Payoff(Path{100})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestConstructorValidation(t *testing.T) {
	tests := []struct {
		name  string
		terms Terms
	}{
		{"missing strike", Terms{Expiry: 1}},
		{"negative strike", Terms{Strike: StrikeAt(-1), Expiry: 1}},
		{"NaN strike", Terms{Strike: StrikeAt(math.NaN()), Expiry: 1}},
		{"negative expiry", Terms{Strike: StrikeAt(100), Expiry: -1}},
		{"NaN expiry", Terms{Strike: StrikeAt(100), Expiry: math.NaN()}},
		{"negative premium", Terms{Strike: StrikeAt(100), Expiry: 1, Premium: -2}},
		{"infinite premium", Terms{Strike: StrikeAt(100), Expiry: 1, Premium: math.Inf(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCall(tt.terms)
			assert.ErrorIs(t, err, ErrInvalidParameter)
		})
	}

	_, err := NewFloatingLookback(-1, 0, true)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = NewForwardStart(1, math.NaN(), 1, true)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestInvalidPathRejected(t *testing.T) {
	call, err := NewCall(terms(105))
	require.NoError(t, err)

	for _, p := range []Path{nil, {}, {100, 0}, {100, -3}, {math.NaN()}, {100, math.Inf(1)}} {
		_, err := call.Payoff(p)
		assert.True(t, errors.Is(err, ErrDomain), "path %v: %v", p, err)
	}
}

func TestPayoffDoesNotMutatePath(t *testing.T) {
	p := append(Path(nil), samplePath...)
	c, err := NewAsian(terms(105), false, Geometric)
	require.NoError(t, err)

	_ = mustPayoff(t, c, p)
	assert.Equal(t, samplePath, p)
}

func TestStrike(t *testing.T) {
	_, ok := NoStrike.Value()
	assert.False(t, ok)
	assert.Equal(t, "none", NoStrike.String())

	v, ok := StrikeAt(105).Value()
	assert.True(t, ok)
	assert.Equal(t, 105.0, v)
	assert.Equal(t, "105", StrikeAt(105).String())
}
