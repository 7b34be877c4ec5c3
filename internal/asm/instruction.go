package asm

// Instruction is the mnemonic -> encoding-row spec table entry (C4): a
// mnemonic plus every legal encoding alternative for it. Row selection
// against concrete operands happens in the architecture package (see
// architecture/x86_64/instruction.go), which walks Forms directly; this
// type carries no selection logic of its own.
type Instruction struct {
	Mnemonic string
	Forms    []InstructionForm
}
