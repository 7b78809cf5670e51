package tokenswap

import (
	"errors"
	"math/big"

	"github.com/gagliardetto/solana-go"
)

var (
	// ErrEmptyPool means one of the pool reserves is zero, so no quote
	// can be produced.
	ErrEmptyPool = errors.New("pool reserves are empty")
	// ErrInsufficientAmount means fees consume the whole input.
	ErrInsufficientAmount = errors.New("amount is insufficient")
	// ErrUnquotable means the pool cannot express the requested amount.
	ErrUnquotable = errors.New("amount is not representable by pool")
)

func feePart(amount *big.Int, numerator, denominator uint64) *big.Int {
	if numerator == 0 || denominator == 0 || amount.Sign() == 0 {
		return new(big.Int)
	}
	fee := new(big.Int).Mul(amount, new(big.Int).SetUint64(numerator))
	fee.Div(fee, new(big.Int).SetUint64(denominator))
	if fee.Sign() == 0 {
		// The program always charges at least one base unit.
		return big.NewInt(1)
	}
	return fee
}

// tradingFees returns the combined trade and owner fee for an input amount.
func (p *Pool) tradingFees(amount *big.Int) *big.Int {
	total := feePart(amount, p.Fees.TradeFeeNumerator, p.Fees.TradeFeeDenominator)
	total.Add(total, feePart(amount, p.Fees.OwnerTradeFeeNumerator, p.Fees.OwnerTradeFeeDenominator))
	return total
}

// ExpectedOutput quotes the constant-product output for swapping
// inputAmount of sourceMint through the pool, optionally net of fees.
func (p *Pool) ExpectedOutput(inputAmount uint64, sourceMint solana.PublicKey, includeFees bool) (uint64, error) {
	reserveIn, reserveOut, _, _, err := p.orient(sourceMint)
	if err != nil {
		return 0, err
	}
	if reserveIn == 0 || reserveOut == 0 {
		return 0, ErrEmptyPool
	}

	amount := new(big.Int).SetUint64(inputAmount)
	if includeFees {
		amount.Sub(amount, p.tradingFees(amount))
		if amount.Sign() <= 0 {
			return 0, ErrInsufficientAmount
		}
	}

	// out = reserveOut * in / (reserveIn + in)
	x := new(big.Int).SetUint64(reserveIn)
	y := new(big.Int).SetUint64(reserveOut)
	numerator := new(big.Int).Mul(y, amount)
	denominator := new(big.Int).Add(x, amount)
	out := numerator.Div(numerator, denominator)
	if !out.IsUint64() {
		return 0, ErrUnquotable
	}
	return out.Uint64(), nil
}

// MinimumReceiveAmount is the slippage-guarded floor for a swap: the
// expected output reduced by the slippage fraction. slippage must be in
// [0, 1).
func (p *Pool) MinimumReceiveAmount(inputAmount uint64, slippage float64, includeFees bool, sourceMint solana.PublicKey) (uint64, error) {
	if slippage < 0 || slippage >= 1 {
		return 0, ErrUnquotable
	}
	expected, err := p.ExpectedOutput(inputAmount, sourceMint, includeFees)
	if err != nil {
		return 0, err
	}

	scaled := new(big.Float).Mul(
		new(big.Float).SetUint64(expected),
		big.NewFloat(1.0-slippage),
	)
	minimum, _ := scaled.Uint64()
	return minimum, nil
}

// InputAmountFor inverts the curve: the amount of sourceMint that must
// enter the pool so the output covers desiredOutput, fees included. The
// result errs on the high side; the paired minimum-out guard keeps the
// execution honest.
func (p *Pool) InputAmountFor(desiredOutput uint64, sourceMint solana.PublicKey) (uint64, error) {
	reserveIn, reserveOut, _, _, err := p.orient(sourceMint)
	if err != nil {
		return 0, err
	}
	if reserveIn == 0 || reserveOut == 0 {
		return 0, ErrEmptyPool
	}
	if desiredOutput == 0 || desiredOutput >= reserveOut {
		return 0, ErrUnquotable
	}

	// in = ceil(reserveIn * out / (reserveOut - out))
	x := new(big.Int).SetUint64(reserveIn)
	y := new(big.Int).SetUint64(reserveOut)
	b := new(big.Int).SetUint64(desiredOutput)
	numerator := new(big.Int).Mul(x, b)
	denominator := new(big.Int).Sub(y, b)
	net, remainder := new(big.Int).QuoRem(numerator, denominator, new(big.Int))
	if remainder.Sign() != 0 {
		net.Add(net, big.NewInt(1))
	}

	gross := new(big.Int).Add(net, p.tradingFees(net))
	gross.Add(gross, big.NewInt(1))
	if !gross.IsUint64() {
		return 0, ErrUnquotable
	}
	return gross.Uint64(), nil
}
