package asm

// Architecture defines the interface a concrete instruction-set package
// (x86, x86_64, ...) implements so the rest of the core can work with any
// of them uniformly: look up registers and instruction forms without caring
// which concrete ISA backs the lookup.
type Architecture interface {
	// Name returns the name of the architecture (e.g., "x86", "x86_64").
	Name() string
	// Mode returns the addressing/operand-size mode this architecture
	// instance was constructed with.
	Mode() Mode
	// Instructions returns the mnemonic -> Instruction spec table.
	Instructions() map[string]Instruction
	// IsInstruction reports whether mnemonic names a known instruction.
	IsInstruction(mnemonic string) bool
	// RegisterSet returns the names of every register this architecture
	// recognizes.
	RegisterSet() []string
	// IsRegister reports whether name is a recognized register.
	IsRegister(name string) bool
	// OperandTypes returns the operand-type catalog for this architecture.
	OperandTypes() []OperandType
}
