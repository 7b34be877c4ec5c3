package x86_64

// OperandKind tags which variant of Operand is populated.
type OperandKind int

const (
	KindRegister OperandKind = iota
	KindImmediate
	KindMemory
	KindLabel
)

// Operand is the tagged variant spec §3/§9 calls for: "model operands as a
// tagged variant with per-variant validation". Exactly one of the
// kind-specific fields is meaningful, selected by Kind.
type Operand struct {
	Kind OperandKind

	Reg Register // valid when Kind == KindRegister

	ImmValue int64 // valid when Kind == KindImmediate
	ImmWidth int   // not set by row selection; the encoded width comes from the selected row

	Mem Mem // valid when Kind == KindMemory

	Label string // valid when Kind == KindLabel
}

// RegOperand builds a register operand.
func RegOperand(r Register) Operand { return Operand{Kind: KindRegister, Reg: r} }

// Imm builds an immediate operand with no width of its own; the encoded
// width is the immediate width of whichever row selection picks, and
// ImmWidth stays 0.
func Imm(value int64) Operand { return Operand{Kind: KindImmediate, ImmValue: value} }

// MemOperand builds a memory operand.
func MemOperand(m Mem) Operand { return Operand{Kind: KindMemory, Mem: m} }

// LabelOperand builds a label-reference operand (spec §3 "Label ... may be
// referenced as a jump/call target (relative displacement) or as an
// immediate (absolute address once the page base is known)").
func LabelOperand(name string) Operand { return Operand{Kind: KindLabel, Label: name} }

// width returns the operand's natural bit width for signature matching:
// the register's width, the memory reference's tagged pointer width (0 if
// untagged), or 0 for immediates/labels (whose width is row-dependent).
func (o Operand) width() int {
	switch o.Kind {
	case KindRegister:
		return o.Reg.Width
	case KindMemory:
		return o.Mem.Width
	default:
		return 0
	}
}
