package x86_64

import (
	"strings"

	"github.com/ironforge-labs/x86asm/internal/asm"
)

// Assembler implements asm.Architecture for 64-bit Intel-64 encoding. It
// carries no parsed-source state of its own (spec §1: the textual
// front-end is out of scope); callers build programs by constructing an
// AssemblyUnit directly and calling Emit/Label on it.
type Assembler struct {
	ctx *asm.Context
}

// New returns an Assembler bound to ctx. ctx.Mode() should normally be
// asm.Mode64; a Mode32 context still works here (the encoding tables carry
// Legal32 rows for exactly this reason) but architecture/x86.Assembler is
// the intended entry point for 32-bit programs.
func New(ctx *asm.Context) *Assembler {
	return &Assembler{ctx: ctx}
}

// Name returns the architecture's name.
func (a *Assembler) Name() string { return a.ctx.Mode().String() }

// Mode returns the underlying architecture context's mode.
func (a *Assembler) Mode() asm.Mode { return a.ctx.Mode() }

// Instructions returns the full mnemonic -> spec table.
func (a *Assembler) Instructions() map[string]asm.Instruction { return Instructions }

// IsInstruction reports whether mnemonic names a known instruction,
// case-insensitively (spec §4.1).
func (a *Assembler) IsInstruction(mnemonic string) bool {
	_, ok := Instructions[strings.ToUpper(mnemonic)]
	return ok
}

// RegisterSet returns every register name this architecture recognizes.
func (a *Assembler) RegisterSet() []string {
	names := make([]string, 0, len(RegistersByName))
	for name := range RegistersByName {
		names = append(names, name)
	}
	return names
}

// IsRegister reports whether name is a recognized register, case-
// insensitively.
func (a *Assembler) IsRegister(name string) bool {
	_, ok := RegisterByName(strings.ToLower(name))
	return ok
}

// OperandTypes returns the operand-type catalog this architecture matches
// instruction rows against.
func (a *Assembler) OperandTypes() []asm.OperandType {
	return []asm.OperandType{
		OperandNone,
		OperandReg8, OperandReg16, OperandReg32, OperandReg64,
		OperandImm8, OperandImm16, OperandImm32, OperandImm64,
		OperandMem, OperandMem8, OperandMem16, OperandMem32, OperandMem64,
		OperandRel8, OperandRel32,
		OperandRegMem8, OperandRegMem16, OperandRegMem32, OperandRegMem64,
	}
}

// NewUnit builds an empty AssemblyUnit bound to this architecture's
// instruction table and context.
func (a *Assembler) NewUnit() *AssemblyUnit {
	return NewAssemblyUnit(a.ctx, Instructions)
}
