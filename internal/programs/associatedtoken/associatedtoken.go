// Package associatedtoken derives and creates canonical associated token
// accounts for an (owner, mint) pair.
package associatedtoken

import (
	"github.com/gagliardetto/solana-go"

	"github.com/datmassdevs/solana-swift/internal/programs/token"
)

// ProgramID is the associated token account program.
var ProgramID = solana.MustPublicKeyFromBase58("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")

// Derive returns the deterministic associated token address for the
// (wallet, mint) pair.
func Derive(wallet, mint solana.PublicKey) (solana.PublicKey, error) {
	ata, _, err := solana.FindAssociatedTokenAddress(wallet, mint)
	return ata, err
}

// Create builds the instruction materializing the associated account for
// (wallet, mint), rent paid by payer. The derived address is returned
// alongside the instruction.
func Create(payer, wallet, mint solana.PublicKey) (solana.Instruction, solana.PublicKey, error) {
	ata, err := Derive(wallet, mint)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}

	ix := solana.NewInstruction(ProgramID, []*solana.AccountMeta{
		{PublicKey: payer, IsSigner: true, IsWritable: true},
		{PublicKey: ata, IsSigner: false, IsWritable: true},
		{PublicKey: wallet, IsSigner: false, IsWritable: false},
		{PublicKey: mint, IsSigner: false, IsWritable: false},
		{PublicKey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: token.ProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: solana.SysVarRentPubkey, IsSigner: false, IsWritable: false},
	}, []byte{})

	return ix, ata, nil
}
