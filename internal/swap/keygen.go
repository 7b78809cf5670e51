package swap

import "github.com/gagliardetto/solana-go"

// KeyGenerator supplies fresh keypairs for ephemeral authorities and
// temporary accounts. Injected so tests can use deterministic fixtures.
type KeyGenerator interface {
	NewKey() (solana.PrivateKey, error)
}

// RandomKeyGenerator is the production generator.
type RandomKeyGenerator struct{}

// NewKey returns a new random keypair.
func (RandomKeyGenerator) NewKey() (solana.PrivateKey, error) {
	return solana.NewRandomPrivateKey()
}
