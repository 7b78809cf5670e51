// Package system builds the system-program instructions needed for
// temporary account allocation.
package system

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

// ProgramID is the system program.
var ProgramID = solana.SystemProgramID

const opCreateAccount = 0

// CreateAccount allocates a new account of the given size, funds it with
// lamports from funder and assigns it to the owner program. The new account
// must co-sign the transaction.
func CreateAccount(funder, newAccount solana.PublicKey, lamports, space uint64, owner solana.PublicKey) solana.Instruction {
	data := make([]byte, 52)
	binary.LittleEndian.PutUint32(data[0:], opCreateAccount)
	binary.LittleEndian.PutUint64(data[4:], lamports)
	binary.LittleEndian.PutUint64(data[12:], space)
	copy(data[20:], owner.Bytes())

	return solana.NewInstruction(ProgramID, []*solana.AccountMeta{
		{PublicKey: funder, IsSigner: true, IsWritable: true},
		{PublicKey: newAccount, IsSigner: true, IsWritable: true},
	}, data)
}
