package token

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

// InitializeMint creates the instruction that turns a freshly allocated
// account into a token mint. The freeze authority is optional; the payload
// keeps its fixed width either way, with a presence flag and a zero-filled
// slot when absent.
func InitializeMint(mint solana.PublicKey, decimals uint8, mintAuthority solana.PublicKey, freezeAuthority *solana.PublicKey) solana.Instruction {
	data := make([]byte, 1+1+32+1+32)
	data[0] = opInitializeMint
	data[1] = decimals
	copy(data[2:34], mintAuthority.Bytes())
	if freezeAuthority != nil {
		data[34] = 1
		copy(data[35:67], freezeAuthority.Bytes())
	}

	return solana.NewInstruction(ProgramID, []*solana.AccountMeta{
		{PublicKey: mint, IsSigner: false, IsWritable: true},
		{PublicKey: solana.SysVarRentPubkey, IsSigner: false, IsWritable: false},
	}, data)
}

// InitializeAccount binds a newly created account to a mint and an owner.
func InitializeAccount(account, mint, owner solana.PublicKey) solana.Instruction {
	return solana.NewInstruction(ProgramID, []*solana.AccountMeta{
		{PublicKey: account, IsSigner: false, IsWritable: true},
		{PublicKey: mint, IsSigner: false, IsWritable: false},
		{PublicKey: owner, IsSigner: false, IsWritable: false},
		{PublicKey: solana.SysVarRentPubkey, IsSigner: false, IsWritable: false},
	}, []byte{opInitializeAccount})
}

// Transfer moves amount tokens between two accounts of the same mint.
func Transfer(source, destination, owner solana.PublicKey, amount uint64) solana.Instruction {
	data := make([]byte, 9)
	data[0] = opTransfer
	binary.LittleEndian.PutUint64(data[1:], amount)

	return solana.NewInstruction(ProgramID, []*solana.AccountMeta{
		{PublicKey: source, IsSigner: false, IsWritable: true},
		{PublicKey: destination, IsSigner: false, IsWritable: true},
		{PublicKey: owner, IsSigner: true, IsWritable: true},
	}, data)
}

// Approve delegates the right to move up to amount tokens out of account.
func Approve(account, delegate, owner solana.PublicKey, amount uint64) solana.Instruction {
	data := make([]byte, 9)
	data[0] = opApprove
	binary.LittleEndian.PutUint64(data[1:], amount)

	return solana.NewInstruction(ProgramID, []*solana.AccountMeta{
		{PublicKey: account, IsSigner: false, IsWritable: true},
		{PublicKey: delegate, IsSigner: false, IsWritable: false},
		{PublicKey: owner, IsSigner: true, IsWritable: true},
	}, data)
}

// MintTo mints amount new tokens to destination.
func MintTo(mint, destination, authority solana.PublicKey, amount uint64) solana.Instruction {
	data := make([]byte, 9)
	data[0] = opMintTo
	binary.LittleEndian.PutUint64(data[1:], amount)

	return solana.NewInstruction(ProgramID, []*solana.AccountMeta{
		{PublicKey: mint, IsSigner: false, IsWritable: true},
		{PublicKey: destination, IsSigner: false, IsWritable: true},
		{PublicKey: authority, IsSigner: true, IsWritable: true},
	}, data)
}

// CloseAccount closes a token account and credits its lamports to
// destination. For wrapped-native accounts this is what unwraps the SOL.
func CloseAccount(account, destination, owner solana.PublicKey) solana.Instruction {
	return solana.NewInstruction(ProgramID, []*solana.AccountMeta{
		{PublicKey: account, IsSigner: false, IsWritable: true},
		{PublicKey: destination, IsSigner: false, IsWritable: true},
		{PublicKey: owner, IsSigner: false, IsWritable: false},
	}, []byte{opCloseAccount})
}
