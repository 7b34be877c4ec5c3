package asm

// EncodingTag names how an InstructionForm's operand slots map into the
// encoded fields, using the same vocabulary as the Intel reference's
// encoding column. See spec §4.4.
type EncodingTag int

const (
	// TagZO - no operands in fields (opcode only).
	TagZO EncodingTag = iota
	// TagRM - reg field <- operand 0, r/m field <- operand 1.
	TagRM
	// TagMR - r/m field <- operand 0, reg field <- operand 1.
	TagMR
	// TagMI - r/m field <- operand 0, immediate <- operand 1.
	TagMI
	// TagOI - opcode low 3 bits <- operand 0 register index, immediate <- operand 1.
	TagOI
	// TagM - r/m field <- operand 0, reg field holds a fixed opcode extension (Digit).
	TagM
	// TagI - immediate <- operand 0.
	TagI
	// TagD - relative displacement <- operand 0.
	TagD
)

// InstructionEncoding names the instruction-encoding family a form belongs
// to. Only EncodingLegacy rows are populated in this cut; the others are
// hooks for the VEX/EVEX/XOP extension spec §1 calls for without
// specifying (spec Non-goals).
type InstructionEncoding int

// Prefix is a single legacy prefix byte (segment override, LOCK, REP/REPNE,
// operand-size or address-size override, or the REX prefix family).
type Prefix byte

// InstructionForm represents one legal encoding alternative (a "row", per
// spec §4.4) for a mnemonic: an operand signature plus the opcode bytes and
// field-mapping tag needed to emit it.
type InstructionForm struct {
	Operands []OperandType // Operand signature, in declaration order.
	Opcode   []byte        // Opcode bytes, emitted verbatim after any prefixes.
	Tag      EncodingTag   // How operands map into ModR/M/SIB/immediate fields.
	Digit    *byte         // Opcode extension 0-7 for the ModR/M reg field (TagM/TagMI), nil if unused.

	ModRM bool // Whether a ModR/M byte is required (derivable from Tag, kept explicit for the teacher's row-authoring style).
	Imm   bool // Whether an immediate/displacement follows the ModR/M+SIB+disp fields.

	Encoding InstructionEncoding // Encoding family; EncodingLegacy for every row in this cut.

	ForceREXW bool // Forces REX.W=1 regardless of operand width (64-bit operand size override).

	Legal64 bool // Legal when the enclosing Context is Mode64.
	Legal32 bool // Legal when the enclosing Context is Mode32.

	// PreferShortest marks a row as eligible for the "choose the shortest
	// of several equally legal encodings" divergence named in spec §6 item
	// 3. Row selection only shortens across rows that both set this flag;
	// otherwise ties are broken strictly by declaration order, matching
	// the reference assembler exactly (required under StrictParity).
	PreferShortest bool
}
