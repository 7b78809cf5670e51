package tokenswap

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPool(t *testing.T, reserveA, reserveB uint64) *Pool {
	t.Helper()
	newKey := func() solana.PublicKey {
		key, err := solana.NewRandomPrivateKey()
		require.NoError(t, err)
		return key.PublicKey()
	}
	return &Pool{
		Address:    newKey(),
		Authority:  newKey(),
		MintA:      newKey(),
		MintB:      newKey(),
		VaultA:     newKey(),
		VaultB:     newKey(),
		PoolMint:   newKey(),
		FeeAccount: newKey(),
		Fees: Fees{
			TradeFeeNumerator:        25,
			TradeFeeDenominator:      10000,
			OwnerTradeFeeNumerator:   5,
			OwnerTradeFeeDenominator: 10000,
		},
		ReserveA: reserveA,
		ReserveB: reserveB,
	}
}

func TestMinimumReceiveAmountEmptyPool(t *testing.T) {
	pool := testPool(t, 0, 1_000_000)
	_, err := pool.MinimumReceiveAmount(1000, 0.01, true, pool.MintA)
	assert.ErrorIs(t, err, ErrEmptyPool)

	pool = testPool(t, 1_000_000, 0)
	_, err = pool.MinimumReceiveAmount(1000, 0.01, true, pool.MintA)
	assert.ErrorIs(t, err, ErrEmptyPool)
}

func TestMinimumReceiveAmountUnknownMint(t *testing.T) {
	pool := testPool(t, 1_000_000, 2_000_000)
	other, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	_, err = pool.MinimumReceiveAmount(1000, 0.01, true, other.PublicKey())
	assert.Error(t, err)
}

func TestMinimumReceiveAmountMonotonicInSlippage(t *testing.T) {
	pool := testPool(t, 1_000_000_000, 2_000_000_000)

	previous, err := pool.MinimumReceiveAmount(1_000_000, 0, true, pool.MintA)
	require.NoError(t, err)
	for _, slippage := range []float64{0.001, 0.01, 0.05, 0.25, 0.5, 0.99} {
		current, err := pool.MinimumReceiveAmount(1_000_000, slippage, true, pool.MintA)
		require.NoError(t, err)
		assert.LessOrEqual(t, current, previous, "slippage %f", slippage)
		previous = current
	}
}

func TestMinimumReceiveAmountMonotonicInAmount(t *testing.T) {
	pool := testPool(t, 1_000_000_000, 2_000_000_000)

	previous := uint64(0)
	for _, amount := range []uint64{1_000, 10_000, 100_000, 1_000_000, 10_000_000} {
		current, err := pool.MinimumReceiveAmount(amount, 0.01, true, pool.MintA)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, current, previous, "amount %d", amount)
		previous = current
	}
}

func TestMinimumReceiveAmountZeroSlippageEqualsExpected(t *testing.T) {
	pool := testPool(t, 1_000_000_000, 2_000_000_000)

	expected, err := pool.ExpectedOutput(500_000, pool.MintA, true)
	require.NoError(t, err)
	minimum, err := pool.MinimumReceiveAmount(500_000, 0, true, pool.MintA)
	require.NoError(t, err)
	assert.Equal(t, expected, minimum)
}

func TestExpectedOutputFeesReduceOutput(t *testing.T) {
	pool := testPool(t, 1_000_000_000, 2_000_000_000)

	gross, err := pool.ExpectedOutput(1_000_000, pool.MintA, false)
	require.NoError(t, err)
	net, err := pool.ExpectedOutput(1_000_000, pool.MintA, true)
	require.NoError(t, err)
	assert.Less(t, net, gross)
}

func TestExpectedOutputReverseDirection(t *testing.T) {
	pool := testPool(t, 1_000_000_000, 2_000_000_000)

	// Drawing from the deeper reserve yields more than the shallower one.
	fromA, err := pool.ExpectedOutput(1_000_000, pool.MintA, true)
	require.NoError(t, err)
	fromB, err := pool.ExpectedOutput(1_000_000, pool.MintB, true)
	require.NoError(t, err)
	assert.Greater(t, fromA, fromB)
}

func TestInputAmountForCoversDesiredOutput(t *testing.T) {
	pool := testPool(t, 1_000_000_000, 2_000_000_000)

	for _, desired := range []uint64{1_000, 50_000, 5_000_000} {
		input, err := pool.InputAmountFor(desired, pool.MintA)
		require.NoError(t, err)

		output, err := pool.ExpectedOutput(input, pool.MintA, true)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, output, desired)
	}
}

func TestInputAmountForRejectsDrainingPool(t *testing.T) {
	pool := testPool(t, 1_000_000, 2_000_000)
	_, err := pool.InputAmountFor(2_000_000, pool.MintA)
	assert.ErrorIs(t, err, ErrUnquotable)
}
