// Package x86 adapts the x86_64 encoding engine to 32-bit (IA-32) mode. It
// introduces no encoding logic of its own: every opcode table, ModR/M/SIB
// routine, and two-pass resolution algorithm lives in architecture/x86_64
// and is reused here under asm.Mode32, which the shared InstructionForm
// rows already carry a Legal32 flag for.
package x86

import (
	"github.com/ironforge-labs/x86asm/architecture/x86_64"
	"github.com/ironforge-labs/x86asm/internal/asm"
)

// Assembler implements asm.Architecture for 32-bit protected mode by
// delegating to the x86_64 package's instruction table and row-selection
// logic with a Mode32 context.
type Assembler struct {
	*x86_64.Assembler
	ctx *asm.Context
}

// New returns an Assembler bound to a fresh 32-bit context.
func New() *Assembler {
	ctx := asm.NewContext(asm.Mode32)
	return &Assembler{Assembler: x86_64.New(ctx), ctx: ctx}
}

// NewUnit builds an empty AssemblyUnit scoped to 32-bit mode.
func (a *Assembler) NewUnit() *x86_64.AssemblyUnit {
	return x86_64.NewAssemblyUnit(a.ctx, x86_64.Instructions)
}
