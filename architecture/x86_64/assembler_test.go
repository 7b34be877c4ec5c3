package x86_64_test

import (
	"testing"

	"github.com/ironforge-labs/x86asm/architecture/x86_64"
	"github.com/ironforge-labs/x86asm/internal/asm"
)

func TestAssembler_IsInstruction(t *testing.T) {
	scenarios := []struct {
		name        string
		instruction string
		expected    bool
	}{
		{"Valid instruction MOV", "MOV", true},
		{"Valid instruction MOVZX", "MOVZX", true},
		{"Valid instruction MOVSX", "MOVSX", true},
		{"Valid instruction LEA", "LEA", true},
		{"Valid instruction PUSH", "PUSH", true},
		{"Valid instruction POP", "POP", true},
		{"Valid instruction XCHG", "XCHG", true},
		{"Valid instruction ADD", "ADD", true},
		{"Valid instruction SUB", "SUB", true},
		{"Valid instruction MUL", "MUL", true},
		{"Valid instruction IMUL", "IMUL", true},
		{"Valid instruction DIV", "DIV", true},
		{"Valid instruction IDIV", "IDIV", true},
		{"Valid instruction INC", "INC", true},
		{"Valid instruction DEC", "DEC", true},
		{"Valid instruction NEG", "NEG", true},
		{"Valid instruction CMP", "CMP", true},
		{"Valid instruction AND", "AND", true},
		{"Valid instruction OR", "OR", true},
		{"Valid instruction XOR", "XOR", true},
		{"Valid instruction NOT", "NOT", true},
		{"Valid instruction TEST", "TEST", true},
		{"Valid instruction SHL", "SHL", true},
		{"Valid instruction SHR", "SHR", true},
		{"Valid instruction SAR", "SAR", true},
		{"Valid instruction ROL", "ROL", true},
		{"Valid instruction ROR", "ROR", true},
		{"Valid instruction JMP", "JMP", true},
		{"Valid instruction JE", "JE", true},
		{"Valid instruction JNE", "JNE", true},
		{"Valid instruction CALL", "CALL", true},
		{"Valid instruction RET", "RET", true},
		{"Valid instruction NOP", "NOP", true},
		{"Valid instruction SYSCALL", "SYSCALL", true},
		{"Valid instruction lowercase", "mov", true},
		{"Invalid instruction empty", "", false},
		{"Invalid instruction random", "INVALID_INSTR", false},
		{"Invalid instruction typo", "MOVA", false},
		{"Invalid instruction partial", "MO", false},
	}

	a := x86_64.New(asm.NewContext(asm.Mode64))

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			result := a.IsInstruction(scenario.instruction)
			if result != scenario.expected {
				t.Errorf("IsInstruction(%q) = %v, want %v", scenario.instruction, result, scenario.expected)
			}
		})
	}
}

func TestAssembler_IsRegister(t *testing.T) {
	scenarios := []struct {
		name     string
		register string
		expected bool
	}{
		{"lowercase rax", "rax", true},
		{"uppercase RAX", "RAX", true},
		{"r15d", "r15d", true},
		{"spl", "spl", true},
		{"unknown", "notareg", false},
		{"empty", "", false},
	}

	a := x86_64.New(asm.NewContext(asm.Mode64))

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			result := a.IsRegister(scenario.register)
			if result != scenario.expected {
				t.Errorf("IsRegister(%q) = %v, want %v", scenario.register, result, scenario.expected)
			}
		})
	}
}

func TestAssembler_NameAndMode(t *testing.T) {
	a := x86_64.New(asm.NewContext(asm.Mode64))
	if a.Mode() != asm.Mode64 {
		t.Errorf("Mode() = %v, want Mode64", a.Mode())
	}
	if a.Name() == "" {
		t.Errorf("Name() returned empty string")
	}
}

func TestAssembler_RegisterSetCoversGeneralPurpose(t *testing.T) {
	a := x86_64.New(asm.NewContext(asm.Mode64))
	set := a.RegisterSet()

	want := map[string]bool{"rax": false, "r15": false, "eax": false, "al": false}
	for _, name := range set {
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("RegisterSet() missing %q", name)
		}
	}
}

func TestAssembler_OperandTypesNonEmpty(t *testing.T) {
	a := x86_64.New(asm.NewContext(asm.Mode64))
	types := a.OperandTypes()
	if len(types) == 0 {
		t.Fatalf("OperandTypes() returned no entries")
	}
}
