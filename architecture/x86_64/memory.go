package x86_64

import "github.com/ironforge-labs/x86asm/internal/asm"

// Mem is a memory reference operand (spec §3 "Memory reference"): an
// optional base and index register, a scale, a 32-bit signed displacement,
// and the *pointer size* of the value living at that address — not the
// size of the address computation itself.
type Mem struct {
	Base  *Register
	Index *Register
	Scale byte // 1, 2, 4, or 8; only meaningful when Index is set.
	Disp  int32

	// Width is the pointer size ("byte/word/dword/qword ptr [...]"): 0
	// means unspecified, to be resolved later via Sized.
	Width int

	// RIPRelative marks a `[rip + disp32]`-style reference, valid only in
	// Mode64, where r/m=101,mod=00 means RIP-relative instead of the
	// 32-bit-mode meaning of "absolute displacement, no base".
	RIPRelative bool
}

// NewMem builds a memory reference with no pointer-size tag; call Sized to
// attach one, matching the `byte/word/dword/qword ptr […]` syntax the
// spec's "pointer sizer" operation models (spec §4.2).
func NewMem(base, index *Register, scale byte, disp int32) Mem {
	return Mem{Base: base, Index: index, Scale: scale, Disp: disp}
}

// Sized returns a copy of m tagged with an explicit operand pointer width.
func (m Mem) Sized(width int) Mem {
	m.Width = width
	return m
}

// AddressWidth returns the width, in bits, that base/index registers must
// share: 64 when either is a 64-bit GPR, 32 when either is a 32-bit GPR, or
// 0 when neither is present (pure RIP-relative/absolute).
func (m Mem) AddressWidth() int {
	if m.Base != nil {
		return m.Base.Width
	}
	if m.Index != nil {
		return m.Index.Width
	}
	return 0
}

// Validate checks the invariants spec §3 places on memory references:
// base/index width agreement with each other and with mode, scale only
// meaningful with an index, and rsp/esp never used as the index register.
func (m Mem) Validate(ctx *asm.Context) error {
	if m.Base != nil && m.Index != nil && m.Base.Width != m.Index.Width {
		return errMemWidthMismatch
	}
	if m.Index != nil && (m.Index.Encoding&0x7) == RSP.Index() && !m.Index.NeedsExtensionBit() {
		return errIndexIsSP
	}
	aw := m.AddressWidth()
	if aw != 0 {
		if ctx.Mode() == asm.Mode64 && aw != 32 && aw != 64 {
			return errAddressWidthMode
		}
		if ctx.Mode() == asm.Mode32 && aw != 16 && aw != 32 {
			return errAddressWidthMode
		}
	}
	if m.RIPRelative && ctx.Mode() != asm.Mode64 {
		return errRIPRelativeMode
	}
	return nil
}

// forcesDisp8 reports whether this reference needs a mandatory one-byte
// zero displacement because its base is rbp/ebp/r13 with no displacement
// (spec §3: "rbp/ebp/r13 as base with no displacement forces a one-byte
// zero displacement", since mod=00,r/m=101 is reserved for RIP-relative /
// displacement-only addressing).
func (m Mem) forcesDisp8() bool {
	if m.Base == nil || m.Disp != 0 {
		return false
	}
	return m.Base.Index() == RBP.Index()
}

// needsSIB reports whether this reference must use a SIB byte: an index is
// present, or the base is rsp/r12 (whose encoding index collides with the
// SIB-escape value in ModR/M's r/m field). A Scale set without an Index is
// ignored and does not by itself produce a SIB byte.
func (m Mem) needsSIB() bool {
	if m.Index != nil {
		return true
	}
	if m.Base != nil && m.Base.Index() == RSP.Index() {
		return true
	}
	return false
}
