package x86_test

import (
	"testing"

	"github.com/ironforge-labs/x86asm/architecture/x86"
	"github.com/ironforge-labs/x86asm/architecture/x86_64"
	"github.com/ironforge-labs/x86asm/internal/asm"
)

func TestAssembler_ModeIs32Bit(t *testing.T) {
	a := x86.New()
	if a.Mode() != asm.Mode32 {
		t.Errorf("Mode() = %v, want Mode32", a.Mode())
	}
}

func TestAssembler_RejectsOnly64Registers(t *testing.T) {
	u := x86.New().NewUnit()
	err := u.Emit("PUSH", x86_64.RegOperand(x86_64.R8))
	if err == nil {
		t.Fatalf("Emit(PUSH, r8) in 32-bit mode: want error, got nil")
	}
}

func TestAssembler_EncodesLegal32BitForm(t *testing.T) {
	u := x86.New().NewUnit()
	if err := u.Emit("PUSH", x86_64.RegOperand(x86_64.EBP)); err != nil {
		t.Fatalf("Emit(PUSH, ebp): %v", err)
	}
	if err := u.Emit("POP", x86_64.RegOperand(x86_64.EBP)); err != nil {
		t.Fatalf("Emit(POP, ebp): %v", err)
	}

	code, _, _, err := u.Assemble()
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	want := []byte{0x55, 0x5D}
	if len(code) != len(want) {
		t.Fatalf("code = % X, want % X", code, want)
	}
	for i := range want {
		if code[i] != want[i] {
			t.Errorf("code[%d] = %#x, want %#x", i, code[i], want[i])
		}
	}
}
