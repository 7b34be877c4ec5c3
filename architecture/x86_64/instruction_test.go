package x86_64_test

import (
	"testing"

	"github.com/ironforge-labs/x86asm/architecture/x86_64"
	"github.com/ironforge-labs/x86asm/internal/asm"
)

func assembleOne(t *testing.T, mnemonic string, ops ...x86_64.Operand) []byte {
	t.Helper()
	ctx := asm.NewContext(asm.Mode64)
	u := x86_64.NewAssemblyUnit(ctx, x86_64.Instructions)
	if err := u.Emit(mnemonic, ops...); err != nil {
		t.Fatalf("Emit(%s): %v", mnemonic, err)
	}
	code, _, _, err := u.Assemble()
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	return code
}

func requireBytes(t *testing.T, got []byte, want ...byte) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("code = % X, want % X", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("code[%d] = %#02x, want %#02x (full: % X vs % X)", i, got[i], want[i], got, want)
		}
	}
}

func TestEmit_MovReg64Imm64UsesREXWAndOIOpcode(t *testing.T) {
	code := assembleOne(t, "MOV", x86_64.RegOperand(x86_64.RAX), x86_64.Imm(5))
	requireBytes(t, code, 0x48, 0xB8, 0x05, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00)
}

func TestEmit_MovReg64Imm64EmbedsExtendedRegisterIndexAndREXB(t *testing.T) {
	code := assembleOne(t, "MOV", x86_64.RegOperand(x86_64.R9), x86_64.Imm(1))
	// REX.WB (0x49), opcode 0xB8 | (R9.Index()=1) = 0xB9, then imm64.
	requireBytes(t, code, 0x49, 0xB9, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00)
}

func TestEmit_AddReg64Reg64PrefersMRForm(t *testing.T) {
	code := assembleOne(t, "ADD", x86_64.RegOperand(x86_64.RCX), x86_64.RegOperand(x86_64.RDX))
	// REX.W (0x48), MR opcode 0x01, ModRM mod=11 reg=RDX(2) rm=RCX(1) = 0xD1.
	requireBytes(t, code, 0x48, 0x01, 0xD1)
}

func TestEmit_PushReg64NoREXNeeded(t *testing.T) {
	code := assembleOne(t, "PUSH", x86_64.RegOperand(x86_64.RBP))
	requireBytes(t, code, 0x55)
}

func TestEmit_PushExtendedReg64NeedsREXB(t *testing.T) {
	code := assembleOne(t, "PUSH", x86_64.RegOperand(x86_64.R15))
	// REX.B (0x41), opcode 0x50 | (R15.Index()=7) = 0x57.
	requireBytes(t, code, 0x41, 0x57)
}

func TestEmit_RetIsZeroOperandOpcode(t *testing.T) {
	code := assembleOne(t, "RET")
	requireBytes(t, code, 0xC3)
}

func TestEmit_CmpRegMemImm8UsesSignExtendedForm(t *testing.T) {
	code := assembleOne(t, "CMP", x86_64.RegOperand(x86_64.RAX), x86_64.Imm(1))
	// REX.W (0x48), opcode 0x83 /7, ModRM mod=11 reg=7(digit) rm=RAX(0) = 0xF8, imm8=0x01.
	requireBytes(t, code, 0x48, 0x83, 0xF8, 0x01)
}

func TestEmit_IncReg32NoRex(t *testing.T) {
	code := assembleOne(t, "INC", x86_64.RegOperand(x86_64.ECX))
	// opcode 0xFF /0, ModRM mod=11 reg=0(digit) rm=ECX(1) = 0xC1.
	requireBytes(t, code, 0xFF, 0xC1)
}

func TestEmit_UnknownMnemonicFails(t *testing.T) {
	ctx := asm.NewContext(asm.Mode64)
	u := x86_64.NewAssemblyUnit(ctx, x86_64.Instructions)
	if err := u.Emit("FROB", x86_64.RegOperand(x86_64.RAX)); err == nil {
		t.Fatalf("Emit(FROB): want error, got nil")
	}
}

func TestEmit_NoMatchingFormFails(t *testing.T) {
	ctx := asm.NewContext(asm.Mode64)
	u := x86_64.NewAssemblyUnit(ctx, x86_64.Instructions)
	// PUSH takes exactly one operand.
	if err := u.Emit("PUSH", x86_64.RegOperand(x86_64.RAX), x86_64.RegOperand(x86_64.RBX)); err == nil {
		t.Fatalf("Emit(PUSH, rax, rbx): want error, got nil")
	}
}

func TestEmit_NoMatchingFormWhenImmediateExceedsOnlyAvailableWidth(t *testing.T) {
	ctx := asm.NewContext(asm.Mode64)
	u := x86_64.NewAssemblyUnit(ctx, x86_64.Instructions)
	// MOV r8, imm8 is the only form for an 8-bit register destination; 1000
	// does not fit 8 bits either signed or unsigned.
	if err := u.Emit("MOV", x86_64.RegOperand(x86_64.AL), x86_64.Imm(1000)); err == nil {
		t.Fatalf("Emit(MOV, al, 1000): want error, got nil")
	}
}

func TestEmit_CmpReg32Imm32PicksWiderFormWhenValueExceedsImm8(t *testing.T) {
	code := assembleOne(t, "CMP", x86_64.RegOperand(x86_64.ECX), x86_64.Imm(1000))
	// opcode 0x81 /7, ModRM mod=11 reg=7 rm=ECX(1) = 0xF9, imm32 le.
	requireBytes(t, code, 0x81, 0xF9, 0xE8, 0x03, 0x00, 0x00)
}

func TestEmit_RejectsOnly64RegisterUnderMode32(t *testing.T) {
	ctx := asm.NewContext(asm.Mode32)
	u := x86_64.NewAssemblyUnit(ctx, x86_64.Instructions)
	if err := u.Emit("PUSH", x86_64.RegOperand(x86_64.R8)); err == nil {
		t.Fatalf("Emit(PUSH, r8) under Mode32: want error, got nil")
	}
}
