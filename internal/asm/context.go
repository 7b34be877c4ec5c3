package asm

// Mode selects whether the core encodes for IA-32 (32-bit) or Intel-64
// (64-bit) semantics. It governs default operand/address width, which
// registers are addressable, and whether REX prefixes are legal at all.
//
// See spec component C8 (Architecture context).
type Mode int

const (
	// Mode32 is legacy/protected 32-bit mode: 32-bit default operand and
	// address size, no REX prefixes, no r8-r15/spl/bpl/sil/dil/r8d-r15d.
	Mode32 Mode = iota
	// Mode64 is long/64-bit mode: 64-bit default address size, 32-bit
	// default operand size (REX.W selects 64-bit), full register file.
	Mode64
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	if m == Mode64 {
		return "x86_64"
	}
	return "x86"
}

// PointerWidth returns the native pointer width, in bits, for the mode.
func (m Mode) PointerWidth() int {
	if m == Mode64 {
		return 64
	}
	return 32
}

// DefaultOperandWidth returns the operand width instructions assume when
// no prefix or REX.W overrides it.
func (m Mode) DefaultOperandWidth() int {
	return 32
}

// DefaultAddressWidth returns the address width used to compute effective
// addresses when no 0x67 address-size override is present.
func (m Mode) DefaultAddressWidth() int {
	return m.PointerWidth()
}

// Context is the architecture context (C8): the process-wide selection of
// mode, threaded explicitly into operand validation and row selection
// rather than read from global state, per spec Design Note "Global mode
// state". A Context's mode is fixed once constructed; changing the desired
// mode means constructing a new Context (and a new assembly unit, since a
// unit is bound to the one Context it was created with). StrictParity is
// an exported field the caller may set after construction.
type Context struct {
	mode Mode
	// StrictParity disables the one permitted encoding divergence named in
	// spec §6: choosing the shortest of several equally legal encodings.
	// When true, ties among matching rows are broken purely by declaration
	// order, matching the reference assembler's own behavior exactly for
	// regression/parity testing.
	StrictParity bool
}

// NewContext returns a Context for the given mode.
func NewContext(mode Mode) *Context {
	return &Context{mode: mode}
}

// Mode returns the context's addressing mode.
func (c *Context) Mode() Mode { return c.mode }
