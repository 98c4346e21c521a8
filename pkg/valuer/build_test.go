package valuer

import (
	"testing"

	"github.com/gregtusar/exotics/pkg/contract"
	"github.com/gregtusar/exotics/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildKinds(t *testing.T) {
	for _, spec := range SamplePortfolio() {
		c, err := Build(spec)
		require.NoError(t, err, spec.Name)
		assert.Equal(t, spec.Premium, c.Premium())
		assert.Equal(t, spec.Expiry, c.Expiry())
	}
}

func TestBuildTypes(t *testing.T) {
	k := 100.0
	put := false

	c, err := Build(models.ContractSpec{Kind: models.KindLookback, Expiry: 1, LookbackType: "floating"})
	require.NoError(t, err)
	assert.IsType(t, &contract.FloatingLookback{}, c)

	c, err = Build(models.ContractSpec{Kind: models.KindLookback, Strike: &k, Expiry: 1, LookbackType: "fixed"})
	require.NoError(t, err)
	assert.IsType(t, &contract.Lookback{}, c)

	c, err = Build(models.ContractSpec{Kind: models.KindPut, Strike: &k, Expiry: 1})
	require.NoError(t, err)
	assert.False(t, c.(*contract.Vanilla).IsCall())

	c, err = Build(models.ContractSpec{Kind: models.KindAsian, Strike: &k, Expiry: 1, IsCall: &put})
	require.NoError(t, err)
	payoff, err := c.Payoff(contract.Path{90, 100, 80})
	require.NoError(t, err)
	assert.InDelta(t, 10.0, payoff, 1e-9)
}

func TestBuildErrors(t *testing.T) {
	k := 100.0
	tests := []struct {
		name string
		spec models.ContractSpec
	}{
		{"unknown kind", models.ContractSpec{Kind: "rainbow"}},
		{"missing strike", models.ContractSpec{Kind: models.KindBinary, Expiry: 1, Payout: 1}},
		{"forward start with strike", models.ContractSpec{Kind: models.KindForwardStart, Strike: &k, Expiry: 1, FixingIndex: 1}},
		{"bad average", models.ContractSpec{Kind: models.KindAsian, Strike: &k, Expiry: 1, AverageType: "median"}},
		{"bad lookback", models.ContractSpec{Kind: models.KindLookback, Strike: &k, Expiry: 1, LookbackType: "partial"}},
		{"negative premium", models.ContractSpec{Kind: models.KindCall, Strike: &k, Expiry: 1, Premium: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Build(tt.spec)
			assert.ErrorIs(t, err, contract.ErrInvalidParameter)
			assert.Nil(t, c)
		})
	}
}

func TestBuildDefaults(t *testing.T) {
	k := 105.0
	path := contract.Path(SamplePath)

	// omitted flags give an up-and-in barrier; 115 touches 114
	barrier, err := Build(models.ContractSpec{Kind: models.KindBarrier, Strike: &k, Expiry: 1, Barrier: 114})
	require.NoError(t, err)
	payoff, err := barrier.Payoff(path)
	require.NoError(t, err)
	assert.Equal(t, 7.0, payoff)

	no := false
	out, err := Build(models.ContractSpec{Kind: models.KindBarrier, Strike: &k, Expiry: 1, Barrier: 114, KnockIn: &no})
	require.NoError(t, err)
	payoff, err = out.Payoff(path)
	require.NoError(t, err)
	assert.Equal(t, 0.0, payoff)

	// omitted lookback type is floating and ignores the strike
	lookback, err := Build(models.ContractSpec{Kind: models.KindLookback, Strike: &k, Expiry: 1})
	require.NoError(t, err)
	assert.IsType(t, &contract.FloatingLookback{}, lookback)
	payoff, err = lookback.Payoff(path)
	require.NoError(t, err)
	assert.Equal(t, 12.0, payoff)

	// omitted averaging is arithmetic
	asian, err := Build(models.ContractSpec{Kind: models.KindAsian, Strike: &k, Expiry: 1})
	require.NoError(t, err)
	payoff, err = asian.Payoff(path)
	require.NoError(t, err)
	assert.InDelta(t, 3.3, payoff, 1e-9)
}
