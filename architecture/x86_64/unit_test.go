package x86_64_test

import (
	"testing"

	"github.com/ironforge-labs/x86asm/architecture/x86_64"
	"github.com/ironforge-labs/x86asm/internal/asm"
	"github.com/ironforge-labs/x86asm/internal/diagnostics"
)

func TestAssemble_ForwardShortJumpShrinksToRel8(t *testing.T) {
	ctx := asm.NewContext(asm.Mode64)
	u := x86_64.NewAssemblyUnit(ctx, x86_64.Instructions)

	if err := u.Emit("JMP", x86_64.LabelOperand("done")); err != nil {
		t.Fatalf("Emit(JMP): %v", err)
	}
	if err := u.Emit("NOP"); err != nil {
		t.Fatalf("Emit(NOP): %v", err)
	}
	if err := u.Label("done"); err != nil {
		t.Fatalf("Label(done): %v", err)
	}
	if err := u.Emit("RET"); err != nil {
		t.Fatalf("Emit(RET): %v", err)
	}

	code, labels, relocs, err := u.Assemble()
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(relocs) != 0 {
		t.Fatalf("relocs = %v, want none", relocs)
	}

	// The target is well within rel8 range, so pass 1's fixpoint should
	// shrink the jump from the provisional rel32 form (0xE9 + 4 bytes)
	// down to rel8 (0xEB + 1 byte): JMP(2) NOP(1) done: RET(1), disp=1.
	want := []byte{0xEB, 0x01, 0x90, 0xC3}
	if len(code) != len(want) {
		t.Fatalf("code = % X, want % X", code, want)
	}
	for i := range want {
		if code[i] != want[i] {
			t.Errorf("code[%d] = %#02x, want %#02x", i, code[i], want[i])
		}
	}
	if labels["done"] != 3 {
		t.Errorf("labels[done] = %d, want 3", labels["done"])
	}
}

func TestAssemble_BackwardJumpUsesRel8WhenItFits(t *testing.T) {
	ctx := asm.NewContext(asm.Mode64)
	u := x86_64.NewAssemblyUnit(ctx, x86_64.Instructions)

	if err := u.Label("top"); err != nil {
		t.Fatalf("Label(top): %v", err)
	}
	if err := u.Emit("NOP"); err != nil {
		t.Fatalf("Emit(NOP): %v", err)
	}
	if err := u.Emit("JMP", x86_64.LabelOperand("top")); err != nil {
		t.Fatalf("Emit(JMP): %v", err)
	}

	code, _, _, err := u.Assemble()
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	// NOP (1 byte) then JMP rel8 (2 bytes): displacement is -(1+2) = -3.
	want := []byte{0x90, 0xEB, 0xFD}
	if len(code) != len(want) {
		t.Fatalf("code = % X, want % X", code, want)
	}
	for i := range want {
		if code[i] != want[i] {
			t.Errorf("code[%d] = %#02x, want %#02x", i, code[i], want[i])
		}
	}
}

func TestAssemble_UndefinedLabelFails(t *testing.T) {
	ctx := asm.NewContext(asm.Mode64)
	u := x86_64.NewAssemblyUnit(ctx, x86_64.Instructions)
	if err := u.Emit("JMP", x86_64.LabelOperand("nowhere")); err != nil {
		t.Fatalf("Emit(JMP): %v", err)
	}
	if _, _, _, err := u.Assemble(); err == nil {
		t.Fatalf("Assemble with an undefined label: want error, got nil")
	}
}

func TestLabel_DuplicateDefinitionFails(t *testing.T) {
	ctx := asm.NewContext(asm.Mode64)
	u := x86_64.NewAssemblyUnit(ctx, x86_64.Instructions)
	if err := u.Label("start"); err != nil {
		t.Fatalf("Label(start): %v", err)
	}
	if err := u.Label("start"); err == nil {
		t.Fatalf("Label(start) redefined: want error, got nil")
	}
}

func TestAssemble_AbsoluteLabelReferenceProducesReloc(t *testing.T) {
	ctx := asm.NewContext(asm.Mode64)
	u := x86_64.NewAssemblyUnit(ctx, x86_64.Instructions)

	if err := u.Emit("MOV", x86_64.RegOperand(x86_64.RAX), x86_64.LabelOperand("payload")); err != nil {
		t.Fatalf("Emit(MOV, rax, payload): %v", err)
	}
	if err := u.Emit("RET"); err != nil {
		t.Fatalf("Emit(RET): %v", err)
	}
	if err := u.Label("payload"); err != nil {
		t.Fatalf("Label(payload): %v", err)
	}

	code, labels, relocs, err := u.Assemble()
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(relocs) != 1 {
		t.Fatalf("relocs = %v, want exactly one", relocs)
	}
	r := relocs[0]
	if r.Width != 64 {
		t.Errorf("reloc width = %d, want 64", r.Width)
	}
	if r.TargetLabel != "payload" {
		t.Errorf("reloc target = %q, want payload", r.TargetLabel)
	}
	if r.TargetAt != labels["payload"] {
		t.Errorf("reloc TargetAt = %d, want %d", r.TargetAt, labels["payload"])
	}
	if r.Offset+8 > len(code) {
		t.Errorf("reloc offset %d + 8 bytes exceeds code length %d", r.Offset, len(code))
	}
}

func TestAggregate_CollectsMultipleFaultsInsteadOfFailingFast(t *testing.T) {
	ctx := asm.NewContext(asm.Mode64)
	u := x86_64.NewAssemblyUnit(ctx, x86_64.Instructions)

	if err := u.Emit("JMP", x86_64.LabelOperand("missing1")); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if err := u.Emit("JMP", x86_64.LabelOperand("missing2")); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	c := diagnostics.NewCollector()
	u.Aggregate(c)

	if _, _, _, err := u.Assemble(); err == nil {
		t.Fatalf("Assemble with two undefined labels: want error, got nil")
	}
	if !c.HasFaults() {
		t.Errorf("collector recorded no faults, want at least one")
	}
	if c.Count() != 2 {
		t.Errorf("collector recorded %d faults, want 2", c.Count())
	}
}
