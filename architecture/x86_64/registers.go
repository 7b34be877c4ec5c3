package x86_64

// RegisterClass groups registers that share an encoding space and operand
// semantics. See spec §3 "Register".
type RegisterClass int

const (
	ClassGeneral  RegisterClass = iota // General-purpose integer registers.
	ClassSegment                       // Segment registers (cs, ds, es, fs, gs, ss).
	ClassX87                           // x87 FPU stack registers.
	ClassMMX                           // MMX (64-bit) registers.
	ClassXMM                           // SSE 128-bit registers.
	ClassControl                       // Control registers (cr0-cr8).
	ClassDebug                         // Debug registers (dr0-dr7).
)

// Register is an immutable, process-wide constant describing one named
// register: its class, bit width, ModR/M/SIB encoding index, and the
// special-case flags spec §3 calls out explicitly.
type Register struct {
	Name     string
	Class    RegisterClass
	Width    int  // Bit width: 8, 16, 32, 64, or 80.
	Encoding byte // 0-15; encoding index, pre-REX-extension.

	// Only64 marks registers that exist only in 64-bit mode: r8-r15 and
	// their 8/16/32-bit sub-registers, plus spl/bpl/sil/dil (the low-byte
	// forms of rsp/rbp/rsi/rdi, which only become addressable once a REX
	// prefix is present) and rax..rdi when used at 64-bit width.
	Only64 bool

	// HighByteAlias marks ah/bh/ch/dh: legacy high-byte registers that
	// cannot be addressed once any REX prefix is present (spec §4.3
	// "Combining REX with ah/bh/ch/dh is an encoding error").
	HighByteAlias bool

	// RequiresREX marks spl/bpl/sil/dil: their encoding index collides
	// with ah/bh/ch/dh, so a (possibly all-zero) REX prefix is mandatory
	// to select the low-byte meaning instead of the high-byte one.
	RequiresREX bool
}

// Index returns the 3-bit encoding index used directly in ModR/M/SIB
// fields; the 4th bit (8-15) is carried by a REX extension bit instead.
func (r Register) Index() byte { return r.Encoding & 0x7 }

// NeedsExtensionBit reports whether addressing this register requires
// setting a REX extension bit (R, X, or B) to reach encodings 8-15.
func (r Register) NeedsExtensionBit() bool { return r.Encoding >= 8 }

// General Purpose Registers - 64-bit
var (
	RAX = Register{Name: "rax", Class: ClassGeneral, Width: 64, Encoding: 0, Only64: true}
	RCX = Register{Name: "rcx", Class: ClassGeneral, Width: 64, Encoding: 1, Only64: true}
	RDX = Register{Name: "rdx", Class: ClassGeneral, Width: 64, Encoding: 2, Only64: true}
	RBX = Register{Name: "rbx", Class: ClassGeneral, Width: 64, Encoding: 3, Only64: true}
	RSP = Register{Name: "rsp", Class: ClassGeneral, Width: 64, Encoding: 4, Only64: true}
	RBP = Register{Name: "rbp", Class: ClassGeneral, Width: 64, Encoding: 5, Only64: true}
	RSI = Register{Name: "rsi", Class: ClassGeneral, Width: 64, Encoding: 6, Only64: true}
	RDI = Register{Name: "rdi", Class: ClassGeneral, Width: 64, Encoding: 7, Only64: true}
	R8  = Register{Name: "r8", Class: ClassGeneral, Width: 64, Encoding: 8, Only64: true}
	R9  = Register{Name: "r9", Class: ClassGeneral, Width: 64, Encoding: 9, Only64: true}
	R10 = Register{Name: "r10", Class: ClassGeneral, Width: 64, Encoding: 10, Only64: true}
	R11 = Register{Name: "r11", Class: ClassGeneral, Width: 64, Encoding: 11, Only64: true}
	R12 = Register{Name: "r12", Class: ClassGeneral, Width: 64, Encoding: 12, Only64: true}
	R13 = Register{Name: "r13", Class: ClassGeneral, Width: 64, Encoding: 13, Only64: true}
	R14 = Register{Name: "r14", Class: ClassGeneral, Width: 64, Encoding: 14, Only64: true}
	R15 = Register{Name: "r15", Class: ClassGeneral, Width: 64, Encoding: 15, Only64: true}
)

// General Purpose Registers - 32-bit
var (
	EAX  = Register{Name: "eax", Class: ClassGeneral, Width: 32, Encoding: 0}
	ECX  = Register{Name: "ecx", Class: ClassGeneral, Width: 32, Encoding: 1}
	EDX  = Register{Name: "edx", Class: ClassGeneral, Width: 32, Encoding: 2}
	EBX  = Register{Name: "ebx", Class: ClassGeneral, Width: 32, Encoding: 3}
	ESP  = Register{Name: "esp", Class: ClassGeneral, Width: 32, Encoding: 4}
	EBP  = Register{Name: "ebp", Class: ClassGeneral, Width: 32, Encoding: 5}
	ESI  = Register{Name: "esi", Class: ClassGeneral, Width: 32, Encoding: 6}
	EDI  = Register{Name: "edi", Class: ClassGeneral, Width: 32, Encoding: 7}
	R8D  = Register{Name: "r8d", Class: ClassGeneral, Width: 32, Encoding: 8, Only64: true}
	R9D  = Register{Name: "r9d", Class: ClassGeneral, Width: 32, Encoding: 9, Only64: true}
	R10D = Register{Name: "r10d", Class: ClassGeneral, Width: 32, Encoding: 10, Only64: true}
	R11D = Register{Name: "r11d", Class: ClassGeneral, Width: 32, Encoding: 11, Only64: true}
	R12D = Register{Name: "r12d", Class: ClassGeneral, Width: 32, Encoding: 12, Only64: true}
	R13D = Register{Name: "r13d", Class: ClassGeneral, Width: 32, Encoding: 13, Only64: true}
	R14D = Register{Name: "r14d", Class: ClassGeneral, Width: 32, Encoding: 14, Only64: true}
	R15D = Register{Name: "r15d", Class: ClassGeneral, Width: 32, Encoding: 15, Only64: true}
)

// General Purpose Registers - 16-bit
var (
	AX   = Register{Name: "ax", Class: ClassGeneral, Width: 16, Encoding: 0}
	CX   = Register{Name: "cx", Class: ClassGeneral, Width: 16, Encoding: 1}
	DX   = Register{Name: "dx", Class: ClassGeneral, Width: 16, Encoding: 2}
	BX   = Register{Name: "bx", Class: ClassGeneral, Width: 16, Encoding: 3}
	SP   = Register{Name: "sp", Class: ClassGeneral, Width: 16, Encoding: 4}
	BP   = Register{Name: "bp", Class: ClassGeneral, Width: 16, Encoding: 5}
	SI   = Register{Name: "si", Class: ClassGeneral, Width: 16, Encoding: 6}
	DI   = Register{Name: "di", Class: ClassGeneral, Width: 16, Encoding: 7}
	R8W  = Register{Name: "r8w", Class: ClassGeneral, Width: 16, Encoding: 8, Only64: true}
	R9W  = Register{Name: "r9w", Class: ClassGeneral, Width: 16, Encoding: 9, Only64: true}
	R10W = Register{Name: "r10w", Class: ClassGeneral, Width: 16, Encoding: 10, Only64: true}
	R11W = Register{Name: "r11w", Class: ClassGeneral, Width: 16, Encoding: 11, Only64: true}
	R12W = Register{Name: "r12w", Class: ClassGeneral, Width: 16, Encoding: 12, Only64: true}
	R13W = Register{Name: "r13w", Class: ClassGeneral, Width: 16, Encoding: 13, Only64: true}
	R14W = Register{Name: "r14w", Class: ClassGeneral, Width: 16, Encoding: 14, Only64: true}
	R15W = Register{Name: "r15w", Class: ClassGeneral, Width: 16, Encoding: 15, Only64: true}
)

// General Purpose Registers - 8-bit (low byte; spl/bpl/sil/dil need REX present)
var (
	AL   = Register{Name: "al", Class: ClassGeneral, Width: 8, Encoding: 0}
	CL   = Register{Name: "cl", Class: ClassGeneral, Width: 8, Encoding: 1}
	DL   = Register{Name: "dl", Class: ClassGeneral, Width: 8, Encoding: 2}
	BL   = Register{Name: "bl", Class: ClassGeneral, Width: 8, Encoding: 3}
	SPL  = Register{Name: "spl", Class: ClassGeneral, Width: 8, Encoding: 4, Only64: true, RequiresREX: true}
	BPL  = Register{Name: "bpl", Class: ClassGeneral, Width: 8, Encoding: 5, Only64: true, RequiresREX: true}
	SIL  = Register{Name: "sil", Class: ClassGeneral, Width: 8, Encoding: 6, Only64: true, RequiresREX: true}
	DIL  = Register{Name: "dil", Class: ClassGeneral, Width: 8, Encoding: 7, Only64: true, RequiresREX: true}
	R8B  = Register{Name: "r8b", Class: ClassGeneral, Width: 8, Encoding: 8, Only64: true}
	R9B  = Register{Name: "r9b", Class: ClassGeneral, Width: 8, Encoding: 9, Only64: true}
	R10B = Register{Name: "r10b", Class: ClassGeneral, Width: 8, Encoding: 10, Only64: true}
	R11B = Register{Name: "r11b", Class: ClassGeneral, Width: 8, Encoding: 11, Only64: true}
	R12B = Register{Name: "r12b", Class: ClassGeneral, Width: 8, Encoding: 12, Only64: true}
	R13B = Register{Name: "r13b", Class: ClassGeneral, Width: 8, Encoding: 13, Only64: true}
	R14B = Register{Name: "r14b", Class: ClassGeneral, Width: 8, Encoding: 14, Only64: true}
	R15B = Register{Name: "r15b", Class: ClassGeneral, Width: 8, Encoding: 15, Only64: true}
)

// General Purpose Registers - 8-bit (high byte, legacy; mutually exclusive with REX)
var (
	AH = Register{Name: "ah", Class: ClassGeneral, Width: 8, Encoding: 4, HighByteAlias: true}
	CH = Register{Name: "ch", Class: ClassGeneral, Width: 8, Encoding: 5, HighByteAlias: true}
	DH = Register{Name: "dh", Class: ClassGeneral, Width: 8, Encoding: 6, HighByteAlias: true}
	BH = Register{Name: "bh", Class: ClassGeneral, Width: 8, Encoding: 7, HighByteAlias: true}
)

// Segment Registers
var (
	ES = Register{Name: "es", Class: ClassSegment, Width: 16, Encoding: 0}
	CS = Register{Name: "cs", Class: ClassSegment, Width: 16, Encoding: 1}
	SS = Register{Name: "ss", Class: ClassSegment, Width: 16, Encoding: 2}
	DS = Register{Name: "ds", Class: ClassSegment, Width: 16, Encoding: 3}
	FS = Register{Name: "fs", Class: ClassSegment, Width: 16, Encoding: 4}
	GS = Register{Name: "gs", Class: ClassSegment, Width: 16, Encoding: 5}
)

// x87 FPU Stack Registers
var (
	ST0 = Register{Name: "st(0)", Class: ClassX87, Width: 80, Encoding: 0}
	ST1 = Register{Name: "st(1)", Class: ClassX87, Width: 80, Encoding: 1}
	ST2 = Register{Name: "st(2)", Class: ClassX87, Width: 80, Encoding: 2}
	ST3 = Register{Name: "st(3)", Class: ClassX87, Width: 80, Encoding: 3}
	ST4 = Register{Name: "st(4)", Class: ClassX87, Width: 80, Encoding: 4}
	ST5 = Register{Name: "st(5)", Class: ClassX87, Width: 80, Encoding: 5}
	ST6 = Register{Name: "st(6)", Class: ClassX87, Width: 80, Encoding: 6}
	ST7 = Register{Name: "st(7)", Class: ClassX87, Width: 80, Encoding: 7}
)

// MMX Registers
var (
	MM0 = Register{Name: "mm0", Class: ClassMMX, Width: 64, Encoding: 0}
	MM1 = Register{Name: "mm1", Class: ClassMMX, Width: 64, Encoding: 1}
	MM2 = Register{Name: "mm2", Class: ClassMMX, Width: 64, Encoding: 2}
	MM3 = Register{Name: "mm3", Class: ClassMMX, Width: 64, Encoding: 3}
	MM4 = Register{Name: "mm4", Class: ClassMMX, Width: 64, Encoding: 4}
	MM5 = Register{Name: "mm5", Class: ClassMMX, Width: 64, Encoding: 5}
	MM6 = Register{Name: "mm6", Class: ClassMMX, Width: 64, Encoding: 6}
	MM7 = Register{Name: "mm7", Class: ClassMMX, Width: 64, Encoding: 7}
)

// Control Registers
var (
	CR0 = Register{Name: "cr0", Class: ClassControl, Width: 64, Encoding: 0}
	CR2 = Register{Name: "cr2", Class: ClassControl, Width: 64, Encoding: 2}
	CR3 = Register{Name: "cr3", Class: ClassControl, Width: 64, Encoding: 3}
	CR4 = Register{Name: "cr4", Class: ClassControl, Width: 64, Encoding: 4}
	CR8 = Register{Name: "cr8", Class: ClassControl, Width: 64, Encoding: 8, Only64: true}
)

// Debug Registers
var (
	DR0 = Register{Name: "dr0", Class: ClassDebug, Width: 64, Encoding: 0}
	DR1 = Register{Name: "dr1", Class: ClassDebug, Width: 64, Encoding: 1}
	DR2 = Register{Name: "dr2", Class: ClassDebug, Width: 64, Encoding: 2}
	DR3 = Register{Name: "dr3", Class: ClassDebug, Width: 64, Encoding: 3}
	DR6 = Register{Name: "dr6", Class: ClassDebug, Width: 64, Encoding: 6}
	DR7 = Register{Name: "dr7", Class: ClassDebug, Width: 64, Encoding: 7}
)

// RegistersByName maps every recognized register name (as it would be
// written in Intel-syntax assembly) to its Register constant.
var RegistersByName = map[string]Register{
	"rax": RAX, "rcx": RCX, "rdx": RDX, "rbx": RBX,
	"rsp": RSP, "rbp": RBP, "rsi": RSI, "rdi": RDI,
	"r8": R8, "r9": R9, "r10": R10, "r11": R11,
	"r12": R12, "r13": R13, "r14": R14, "r15": R15,

	"eax": EAX, "ecx": ECX, "edx": EDX, "ebx": EBX,
	"esp": ESP, "ebp": EBP, "esi": ESI, "edi": EDI,
	"r8d": R8D, "r9d": R9D, "r10d": R10D, "r11d": R11D,
	"r12d": R12D, "r13d": R13D, "r14d": R14D, "r15d": R15D,

	"ax": AX, "cx": CX, "dx": DX, "bx": BX,
	"sp": SP, "bp": BP, "si": SI, "di": DI,
	"r8w": R8W, "r9w": R9W, "r10w": R10W, "r11w": R11W,
	"r12w": R12W, "r13w": R13W, "r14w": R14W, "r15w": R15W,

	"al": AL, "cl": CL, "dl": DL, "bl": BL,
	"spl": SPL, "bpl": BPL, "sil": SIL, "dil": DIL,
	"r8b": R8B, "r9b": R9B, "r10b": R10B, "r11b": R11B,
	"r12b": R12B, "r13b": R13B, "r14b": R14B, "r15b": R15B,

	"ah": AH, "ch": CH, "dh": DH, "bh": BH,

	"es": ES, "cs": CS, "ss": SS, "ds": DS, "fs": FS, "gs": GS,

	"st(0)": ST0, "st(1)": ST1, "st(2)": ST2, "st(3)": ST3,
	"st(4)": ST4, "st(5)": ST5, "st(6)": ST6, "st(7)": ST7,

	"mm0": MM0, "mm1": MM1, "mm2": MM2, "mm3": MM3,
	"mm4": MM4, "mm5": MM5, "mm6": MM6, "mm7": MM7,

	"cr0": CR0, "cr2": CR2, "cr3": CR3, "cr4": CR4, "cr8": CR8,

	"dr0": DR0, "dr1": DR1, "dr2": DR2, "dr3": DR3, "dr6": DR6, "dr7": DR7,
}

// RegisterByName looks up a register by its Intel-syntax name (callers
// normalize case before calling; the catalog is lowercase-keyed). The
// second return value is false when name is not a recognized register.
func RegisterByName(name string) (Register, bool) {
	reg, ok := RegistersByName[name]
	return reg, ok
}

// GeneralPurposeByWidth returns the general-purpose register in the given
// Register's "family" (same encoding index) at the requested width, used
// when an encoding form needs to reinterpret an operand at a different
// width (e.g. OperandSize override bookkeeping).
func GeneralPurposeByWidth(encoding byte, width int) (Register, bool) {
	for _, reg := range RegistersByName {
		if reg.Class == ClassGeneral && !reg.HighByteAlias && reg.Encoding == encoding && reg.Width == width {
			return reg, true
		}
	}
	return Register{}, false
}
