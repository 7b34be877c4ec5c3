package x86_64

import "github.com/ironforge-labs/x86asm/internal/asm"

// This file implements spec component C3 (Encoding primitives): pure,
// side-effect-free functions that produce the five classic x86 field
// groups. None of them consult an assembly unit or a label table; they
// operate purely on the registers/values handed to them.

// REXBits accumulates the four REX bits as the caller discovers it needs
// them, then Byte() renders the final optional prefix byte.
type REXBits struct {
	W, R, X, B bool
	Force      bool // Set when a zero-bit REX is still mandatory (spl/bpl/sil/dil).
}

// Required reports whether a REX prefix must be emitted at all: spec §4.3
// "REX" - "a single optional byte 0100WRXB emitted when any of (a) ...W,
// (b) ...R, (c) ...X, (d) ...B, or (e) accessing spl/bpl/sil/dil".
func (b REXBits) Required() bool {
	return b.W || b.R || b.X || b.B || b.Force
}

// Byte renders the REX prefix byte. Callers must first check Required(),
// since byte 0x40 alone ("no bits set") is only valid output when Force is
// set (spl/bpl/sil/dil); otherwise a zero-bit REX should not be emitted.
func (b REXBits) Byte() byte {
	var v byte = 0x40
	if b.W {
		v |= 0x08
	}
	if b.R {
		v |= 0x04
	}
	if b.X {
		v |= 0x02
	}
	if b.B {
		v |= 0x01
	}
	return v
}

// EncodeREX builds the REX bits for a ModR/M-based encoding: reg is the
// register occupying the ModR/M reg field (or nil for opcode-extension
// rows), rm/base and index describe the r/m or SIB operand side.
// forceW selects a 64-bit operand size (REX.W); it is independent of which
// registers are in play.
func EncodeREX(reg *Register, rm *Register, index *Register, forceW bool) (REXBits, error) {
	var bits REXBits
	bits.W = forceW

	highByte := false
	anyRequiresREX := false

	consider := func(r *Register) error {
		if r == nil {
			return nil
		}
		if r.HighByteAlias {
			highByte = true
		}
		if r.RequiresREX {
			anyRequiresREX = true
		}
		return nil
	}
	if err := consider(reg); err != nil {
		return bits, err
	}
	if err := consider(rm); err != nil {
		return bits, err
	}
	if err := consider(index); err != nil {
		return bits, err
	}

	if reg != nil && reg.NeedsExtensionBit() {
		bits.R = true
	}
	if index != nil && index.NeedsExtensionBit() {
		bits.X = true
	}
	if rm != nil && rm.NeedsExtensionBit() {
		bits.B = true
	}
	bits.Force = anyRequiresREX

	if highByte && (bits.Required() || anyRequiresREX) {
		return bits, errHighByteWithREX
	}
	return bits, nil
}

// ModRM bit-field positions.
const (
	ModIndirect    byte = 0b00
	ModDisp8       byte = 0b01
	ModDisp32      byte = 0b10
	ModRegDirect   byte = 0b11
	sibEscapeRM    byte = 0b100
	dispOnlyBaseRM byte = 0b101
)

// EncodeModRM packs mod/reg/rm into a single byte. reg and rm are already
// truncated to their 3-bit encoding index (REX extension bits travel
// separately in the REX byte).
func EncodeModRM(mod, reg, rm byte) byte {
	return (mod&0x3)<<6 | (reg&0x7)<<3 | (rm & 0x7)
}

// EncodeSIB packs scale/index/base into a single byte. scale is already
// log2-encoded (0..3 for 1/2/4/8); index=0b100 means "no index".
func EncodeSIB(scale, index, base byte) byte {
	return (scale&0x3)<<6 | (index&0x7)<<3 | (base & 0x7)
}

// scaleLog2 converts a scale factor of 1/2/4/8 into its 2-bit SIB encoding.
func scaleLog2(scale byte) byte {
	switch scale {
	case 2:
		return 1
	case 4:
		return 2
	case 8:
		return 3
	default:
		return 0
	}
}

// EncodeDisplacement renders a signed displacement as 0, 1, or 4
// little-endian bytes. size must be 0, 1, or 4; any other value is a
// programmer error in the caller, not a user-facing fault.
func EncodeDisplacement(disp int32, size int) []byte {
	switch size {
	case 0:
		return nil
	case 1:
		return []byte{byte(int8(disp))}
	case 4:
		return encodeLE32(disp)
	default:
		panic("x86_64: invalid displacement size")
	}
}

// FitsSigned8 reports whether disp fits in a signed 8-bit field.
func FitsSigned8(disp int64) bool {
	return disp >= -128 && disp <= 127
}

// FitsSigned32 reports whether disp fits in a signed 32-bit field.
func FitsSigned32(disp int64) bool {
	return disp >= -2147483648 && disp <= 2147483647
}

// EncodeImmediate renders an immediate value as 1, 2, 4, or 8 little-endian
// bytes, per the width the selected encoding row dictates (spec §4.3
// "Immediate"). The value has already been range/sign validated by the row
// selector before this is called.
func EncodeImmediate(value int64, width int) []byte {
	switch width {
	case 8:
		return []byte{byte(value)}
	case 16:
		return encodeLE16(int16(value))
	case 32:
		return encodeLE32(int32(value))
	case 64:
		return encodeLE64(value)
	default:
		panic("x86_64: invalid immediate width")
	}
}

func encodeLE16(v int16) []byte {
	return []byte{byte(v), byte(v >> 8)}
}

func encodeLE32(v int32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func encodeLE64(v int64) []byte {
	return []byte{
		byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24),
		byte(v >> 32), byte(v >> 40), byte(v >> 48), byte(v >> 56),
	}
}

// LegacyPrefixes computes the optional 0x66/0x67 override bytes. operandIs16
// reports whether the instruction's operand width is 16 bits in a mode whose
// default is wider; addressWidth is the effective-address width (0 when
// there is no memory operand), and 0x67 is emitted when it differs from
// the mode's default address width.
func LegacyPrefixes(mode asm.Mode, operandIs16 bool, addressWidth int) []Prefix {
	var out []Prefix
	if operandIs16 {
		out = append(out, PrefixOperandSize)
	}
	if addressWidth != 0 && addressWidth != mode.DefaultAddressWidth() {
		out = append(out, PrefixAddressSize)
	}
	return out
}

// sixteenBitAddressHook exists so C3 has an explicit extension point for
// 16-bit addressing forms, per spec §9 Open Question ("leave a hook in C3
// but do not specify"). It is never called by any row in this cut.
func sixteenBitAddressHook(Mem) ([]byte, error) {
	return nil, errSixteenBitAddress
}
