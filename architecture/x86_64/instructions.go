package x86_64

import "github.com/ironforge-labs/x86asm/internal/asm"

// This file is spec component C4: the mnemonic -> encoding-row table.
// Adding a new instruction is a data entry here, not a design change (spec
// §9). Rows within a mnemonic are declaration-ordered per spec §4.4: the
// first row whose signature every operand satisfies wins, except where a
// row is marked PreferShortest (see rows.go's chooseRow).

func digit(b byte) *byte { return &b }

// arithGroup builds the ten-row shape every binary ALU mnemonic shares:
// r/m,reg and reg,r/m in both directions at 8/32/64 bits, plus r/m,imm8
// (sign-extended) and r/m,imm32 immediate forms at 32/64 bits. base is the
// Intel opcode base byte; base and the three values after it give r/m8,r8 /
// r/m32,r32 / r8,r/m8 / r32,r/m32 (e.g. 0x00 for ADD, 0x28 for SUB, 0x38 for CMP).
func arithGroup(mnemonic string, base byte, extDigit byte) asm.Instruction {
	mr8, mr32, rm8, rm32 := base, base+1, base+2, base+3
	d := digit(extDigit)
	return asm.Instruction{
		Mnemonic: mnemonic,
		Forms: []asm.InstructionForm{
			{Operands: []asm.OperandType{OperandRegMem8, OperandReg8}, Opcode: []byte{mr8}, Tag: asm.TagMR, ModRM: true, Legal64: true, Legal32: true},
			{Operands: []asm.OperandType{OperandRegMem32, OperandReg32}, Opcode: []byte{mr32}, Tag: asm.TagMR, ModRM: true, Legal64: true, Legal32: true},
			{Operands: []asm.OperandType{OperandRegMem64, OperandReg64}, Opcode: []byte{mr32}, Tag: asm.TagMR, ModRM: true, ForceREXW: true, Legal64: true},
			{Operands: []asm.OperandType{OperandReg8, OperandRegMem8}, Opcode: []byte{rm8}, Tag: asm.TagRM, ModRM: true, Legal64: true, Legal32: true},
			{Operands: []asm.OperandType{OperandReg32, OperandRegMem32}, Opcode: []byte{rm32}, Tag: asm.TagRM, ModRM: true, Legal64: true, Legal32: true},
			{Operands: []asm.OperandType{OperandReg64, OperandRegMem64}, Opcode: []byte{rm32}, Tag: asm.TagRM, ModRM: true, ForceREXW: true, Legal64: true},
			{Operands: []asm.OperandType{OperandRegMem32, OperandImm8}, Opcode: []byte{0x83}, Tag: asm.TagMI, Digit: d, ModRM: true, Legal64: true, Legal32: true, PreferShortest: true},
			{Operands: []asm.OperandType{OperandRegMem64, OperandImm8}, Opcode: []byte{0x83}, Tag: asm.TagMI, Digit: d, ModRM: true, ForceREXW: true, Legal64: true, PreferShortest: true},
			{Operands: []asm.OperandType{OperandRegMem32, OperandImm32}, Opcode: []byte{0x81}, Tag: asm.TagMI, Digit: d, ModRM: true, Legal64: true, Legal32: true, PreferShortest: true},
			{Operands: []asm.OperandType{OperandRegMem64, OperandImm32}, Opcode: []byte{0x81}, Tag: asm.TagMI, Digit: d, ModRM: true, ForceREXW: true, Legal64: true, PreferShortest: true},
		},
	}
}

// unaryGroup builds the three-row shape a /digit-extended single-operand
// ALU mnemonic shares (NOT, NEG, MUL, IMUL, DIV, IDIV, and the INC/DEC
// pair, which use a different opcode pair but the same shape).
func unaryGroup(mnemonic string, opcode8, opcode32 byte, extDigit byte) asm.Instruction {
	d := digit(extDigit)
	return asm.Instruction{
		Mnemonic: mnemonic,
		Forms: []asm.InstructionForm{
			{Operands: []asm.OperandType{OperandRegMem8}, Opcode: []byte{opcode8}, Tag: asm.TagM, Digit: d, ModRM: true, Legal64: true, Legal32: true},
			{Operands: []asm.OperandType{OperandRegMem32}, Opcode: []byte{opcode32}, Tag: asm.TagM, Digit: d, ModRM: true, Legal64: true, Legal32: true},
			{Operands: []asm.OperandType{OperandRegMem64}, Opcode: []byte{opcode32}, Tag: asm.TagM, Digit: d, ModRM: true, ForceREXW: true, Legal64: true},
		},
	}
}

// shiftGroup builds the r/m,imm8 shape SHL/SHR/SAR/ROL/ROR share. Intel's
// shift-count immediate is always one byte regardless of the operand
// width being shifted.
func shiftGroup(mnemonic string, extDigit byte) asm.Instruction {
	d := digit(extDigit)
	return asm.Instruction{
		Mnemonic: mnemonic,
		Forms: []asm.InstructionForm{
			{Operands: []asm.OperandType{OperandRegMem8, OperandImm8}, Opcode: []byte{0xC0}, Tag: asm.TagMI, Digit: d, ModRM: true, Legal64: true, Legal32: true},
			{Operands: []asm.OperandType{OperandRegMem32, OperandImm8}, Opcode: []byte{0xC1}, Tag: asm.TagMI, Digit: d, ModRM: true, Legal64: true, Legal32: true},
			{Operands: []asm.OperandType{OperandRegMem64, OperandImm8}, Opcode: []byte{0xC1}, Tag: asm.TagMI, Digit: d, ModRM: true, ForceREXW: true, Legal64: true},
		},
	}
}

// condJump builds the rel8/rel32 pair for one conditional jump mnemonic.
// cc is the Intel condition-code nibble shared by the 0x70+cc short form
// and the 0x0F,0x80+cc near form.
func condJump(mnemonic string, cc byte) asm.Instruction {
	return asm.Instruction{
		Mnemonic: mnemonic,
		Forms: []asm.InstructionForm{
			{Operands: []asm.OperandType{OperandRel8}, Opcode: []byte{0x70 + cc}, Tag: asm.TagD, Legal64: true, Legal32: true},
			{Operands: []asm.OperandType{OperandRel32}, Opcode: []byte{0x0F, 0x80 + cc}, Tag: asm.TagD, Legal64: true, Legal32: true},
		},
	}
}

var (
	//
	// Data Movement Instructions
	//
	MOV = asm.Instruction{
		Mnemonic: "MOV",
		Forms: []asm.InstructionForm{
			{Operands: []asm.OperandType{OperandRegMem8, OperandReg8}, Opcode: []byte{0x88}, Tag: asm.TagMR, ModRM: true, Legal64: true, Legal32: true},
			{Operands: []asm.OperandType{OperandRegMem32, OperandReg32}, Opcode: []byte{0x89}, Tag: asm.TagMR, ModRM: true, Legal64: true, Legal32: true},
			{Operands: []asm.OperandType{OperandRegMem64, OperandReg64}, Opcode: []byte{0x89}, Tag: asm.TagMR, ModRM: true, ForceREXW: true, Legal64: true},
			{Operands: []asm.OperandType{OperandReg8, OperandRegMem8}, Opcode: []byte{0x8A}, Tag: asm.TagRM, ModRM: true, Legal64: true, Legal32: true},
			{Operands: []asm.OperandType{OperandReg32, OperandRegMem32}, Opcode: []byte{0x8B}, Tag: asm.TagRM, ModRM: true, Legal64: true, Legal32: true},
			{Operands: []asm.OperandType{OperandReg64, OperandRegMem64}, Opcode: []byte{0x8B}, Tag: asm.TagRM, ModRM: true, ForceREXW: true, Legal64: true},
			{Operands: []asm.OperandType{OperandReg8, OperandImm8}, Opcode: []byte{0xB0}, Tag: asm.TagOI, Legal64: true, Legal32: true},
			{Operands: []asm.OperandType{OperandReg32, OperandImm32}, Opcode: []byte{0xB8}, Tag: asm.TagOI, Legal64: true, Legal32: true},
			{Operands: []asm.OperandType{OperandReg64, OperandImm64}, Opcode: []byte{0xB8}, Tag: asm.TagOI, ForceREXW: true, Legal64: true},
		},
	}

	MOVZX = asm.Instruction{
		Mnemonic: "MOVZX",
		Forms: []asm.InstructionForm{
			{Operands: []asm.OperandType{OperandReg32, OperandRegMem8}, Opcode: []byte{0x0F, 0xB6}, Tag: asm.TagRM, ModRM: true, Legal64: true, Legal32: true},
			{Operands: []asm.OperandType{OperandReg32, OperandRegMem16}, Opcode: []byte{0x0F, 0xB7}, Tag: asm.TagRM, ModRM: true, Legal64: true, Legal32: true},
			{Operands: []asm.OperandType{OperandReg64, OperandRegMem8}, Opcode: []byte{0x0F, 0xB6}, Tag: asm.TagRM, ModRM: true, ForceREXW: true, Legal64: true},
			{Operands: []asm.OperandType{OperandReg64, OperandRegMem16}, Opcode: []byte{0x0F, 0xB7}, Tag: asm.TagRM, ModRM: true, ForceREXW: true, Legal64: true},
		},
	}

	MOVSX = asm.Instruction{
		Mnemonic: "MOVSX",
		Forms: []asm.InstructionForm{
			{Operands: []asm.OperandType{OperandReg32, OperandRegMem8}, Opcode: []byte{0x0F, 0xBE}, Tag: asm.TagRM, ModRM: true, Legal64: true, Legal32: true},
			{Operands: []asm.OperandType{OperandReg32, OperandRegMem16}, Opcode: []byte{0x0F, 0xBF}, Tag: asm.TagRM, ModRM: true, Legal64: true, Legal32: true},
			{Operands: []asm.OperandType{OperandReg64, OperandRegMem8}, Opcode: []byte{0x0F, 0xBE}, Tag: asm.TagRM, ModRM: true, ForceREXW: true, Legal64: true},
			{Operands: []asm.OperandType{OperandReg64, OperandRegMem16}, Opcode: []byte{0x0F, 0xBF}, Tag: asm.TagRM, ModRM: true, ForceREXW: true, Legal64: true},
		},
	}

	// MOVSXD sign-extends a 32-bit r/m into a 64-bit register; it has no
	// 8/16-bit analogue.
	MOVSXD = asm.Instruction{
		Mnemonic: "MOVSXD",
		Forms: []asm.InstructionForm{
			{Operands: []asm.OperandType{OperandReg64, OperandRegMem32}, Opcode: []byte{0x63}, Tag: asm.TagRM, ModRM: true, ForceREXW: true, Legal64: true},
		},
	}

	LEA = asm.Instruction{
		Mnemonic: "LEA",
		Forms: []asm.InstructionForm{
			{Operands: []asm.OperandType{OperandReg32, OperandMem}, Opcode: []byte{0x8D}, Tag: asm.TagRM, ModRM: true, Legal64: true, Legal32: true},
			{Operands: []asm.OperandType{OperandReg64, OperandMem}, Opcode: []byte{0x8D}, Tag: asm.TagRM, ModRM: true, ForceREXW: true, Legal64: true},
		},
	}

	XCHG = asm.Instruction{
		Mnemonic: "XCHG",
		Forms: []asm.InstructionForm{
			{Operands: []asm.OperandType{OperandRegMem8, OperandReg8}, Opcode: []byte{0x86}, Tag: asm.TagMR, ModRM: true, Legal64: true, Legal32: true},
			{Operands: []asm.OperandType{OperandRegMem32, OperandReg32}, Opcode: []byte{0x87}, Tag: asm.TagMR, ModRM: true, Legal64: true, Legal32: true},
			{Operands: []asm.OperandType{OperandRegMem64, OperandReg64}, Opcode: []byte{0x87}, Tag: asm.TagMR, ModRM: true, ForceREXW: true, Legal64: true},
		},
	}

	//
	// Stack Instructions
	//
	PUSH = asm.Instruction{
		Mnemonic: "PUSH",
		Forms: []asm.InstructionForm{
			{Operands: []asm.OperandType{OperandImm8}, Opcode: []byte{0x6A}, Tag: asm.TagI, Legal64: true, Legal32: true, PreferShortest: true},
			{Operands: []asm.OperandType{OperandImm32}, Opcode: []byte{0x68}, Tag: asm.TagI, Legal64: true, Legal32: true, PreferShortest: true},
			{Operands: []asm.OperandType{OperandReg64}, Opcode: []byte{0x50}, Tag: asm.TagOI, Legal64: true},
			{Operands: []asm.OperandType{OperandReg32}, Opcode: []byte{0x50}, Tag: asm.TagOI, Legal32: true},
			{Operands: []asm.OperandType{OperandRegMem64}, Opcode: []byte{0xFF}, Tag: asm.TagM, Digit: digit(6), ModRM: true, Legal64: true},
		},
	}

	POP = asm.Instruction{
		Mnemonic: "POP",
		Forms: []asm.InstructionForm{
			{Operands: []asm.OperandType{OperandReg64}, Opcode: []byte{0x58}, Tag: asm.TagOI, Legal64: true},
			{Operands: []asm.OperandType{OperandReg32}, Opcode: []byte{0x58}, Tag: asm.TagOI, Legal32: true},
			{Operands: []asm.OperandType{OperandRegMem64}, Opcode: []byte{0x8F}, Tag: asm.TagM, Digit: digit(0), ModRM: true, Legal64: true},
		},
	}

	//
	// Arithmetic and Logical Instructions
	//
	ADD = arithGroup("ADD", 0x00, 0)
	OR  = arithGroup("OR", 0x08, 1)
	AND = arithGroup("AND", 0x20, 4)
	SUB = arithGroup("SUB", 0x28, 5)
	XOR = arithGroup("XOR", 0x30, 6)
	CMP = arithGroup("CMP", 0x38, 7)

	TEST = asm.Instruction{
		Mnemonic: "TEST",
		Forms: []asm.InstructionForm{
			{Operands: []asm.OperandType{OperandRegMem8, OperandReg8}, Opcode: []byte{0x84}, Tag: asm.TagMR, ModRM: true, Legal64: true, Legal32: true},
			{Operands: []asm.OperandType{OperandRegMem32, OperandReg32}, Opcode: []byte{0x85}, Tag: asm.TagMR, ModRM: true, Legal64: true, Legal32: true},
			{Operands: []asm.OperandType{OperandRegMem64, OperandReg64}, Opcode: []byte{0x85}, Tag: asm.TagMR, ModRM: true, ForceREXW: true, Legal64: true},
			{Operands: []asm.OperandType{OperandRegMem8, OperandImm8}, Opcode: []byte{0xF6}, Tag: asm.TagMI, Digit: digit(0), ModRM: true, Legal64: true, Legal32: true},
			{Operands: []asm.OperandType{OperandRegMem32, OperandImm32}, Opcode: []byte{0xF7}, Tag: asm.TagMI, Digit: digit(0), ModRM: true, Legal64: true, Legal32: true},
			{Operands: []asm.OperandType{OperandRegMem64, OperandImm32}, Opcode: []byte{0xF7}, Tag: asm.TagMI, Digit: digit(0), ModRM: true, ForceREXW: true, Legal64: true},
		},
	}

	NOT  = unaryGroup("NOT", 0xF6, 0xF7, 2)
	NEG  = unaryGroup("NEG", 0xF6, 0xF7, 3)
	MUL  = unaryGroup("MUL", 0xF6, 0xF7, 4)
	IMUL = unaryGroup("IMUL", 0xF6, 0xF7, 5)
	DIV  = unaryGroup("DIV", 0xF6, 0xF7, 6)
	IDIV = unaryGroup("IDIV", 0xF6, 0xF7, 7)
	INC  = unaryGroup("INC", 0xFE, 0xFF, 0)
	DEC  = unaryGroup("DEC", 0xFE, 0xFF, 1)

	//
	// Shift and Rotate Instructions
	//
	ROL = shiftGroup("ROL", 0)
	ROR = shiftGroup("ROR", 1)
	SHL = shiftGroup("SHL", 4)
	SHR = shiftGroup("SHR", 5)
	SAR = shiftGroup("SAR", 7)

	//
	// Control Flow Instructions
	//
	JMP = asm.Instruction{
		Mnemonic: "JMP",
		Forms: []asm.InstructionForm{
			{Operands: []asm.OperandType{OperandRel8}, Opcode: []byte{0xEB}, Tag: asm.TagD, Legal64: true, Legal32: true},
			{Operands: []asm.OperandType{OperandRel32}, Opcode: []byte{0xE9}, Tag: asm.TagD, Legal64: true, Legal32: true},
			{Operands: []asm.OperandType{OperandRegMem64}, Opcode: []byte{0xFF}, Tag: asm.TagM, Digit: digit(4), ModRM: true, Legal64: true},
			{Operands: []asm.OperandType{OperandRegMem32}, Opcode: []byte{0xFF}, Tag: asm.TagM, Digit: digit(4), ModRM: true, Legal32: true},
		},
	}

	CALL = asm.Instruction{
		Mnemonic: "CALL",
		Forms: []asm.InstructionForm{
			{Operands: []asm.OperandType{OperandRel32}, Opcode: []byte{0xE8}, Tag: asm.TagD, Legal64: true, Legal32: true},
			{Operands: []asm.OperandType{OperandRegMem64}, Opcode: []byte{0xFF}, Tag: asm.TagM, Digit: digit(2), ModRM: true, Legal64: true},
			{Operands: []asm.OperandType{OperandRegMem32}, Opcode: []byte{0xFF}, Tag: asm.TagM, Digit: digit(2), ModRM: true, Legal32: true},
		},
	}

	RET = asm.Instruction{
		Mnemonic: "RET",
		Forms: []asm.InstructionForm{
			{Operands: []asm.OperandType{}, Opcode: []byte{0xC3}, Tag: asm.TagZO, Legal64: true, Legal32: true},
			{Operands: []asm.OperandType{OperandImm16}, Opcode: []byte{0xC2}, Tag: asm.TagI, Legal64: true, Legal32: true},
		},
	}

	NOP = asm.Instruction{
		Mnemonic: "NOP",
		Forms: []asm.InstructionForm{
			{Operands: []asm.OperandType{}, Opcode: []byte{0x90}, Tag: asm.TagZO, Legal64: true, Legal32: true},
		},
	}

	LEAVE = asm.Instruction{
		Mnemonic: "LEAVE",
		Forms: []asm.InstructionForm{
			{Operands: []asm.OperandType{}, Opcode: []byte{0xC9}, Tag: asm.TagZO, Legal64: true, Legal32: true},
		},
	}

	SYSCALL = asm.Instruction{
		Mnemonic: "SYSCALL",
		Forms: []asm.InstructionForm{
			{Operands: []asm.OperandType{}, Opcode: []byte{0x0F, 0x05}, Tag: asm.TagZO, Legal64: true},
		},
	}

	INT3 = asm.Instruction{
		Mnemonic: "INT3",
		Forms: []asm.InstructionForm{
			{Operands: []asm.OperandType{}, Opcode: []byte{0xCC}, Tag: asm.TagZO, Legal64: true, Legal32: true},
		},
	}

	JE  = condJump("JE", 0x4)
	JZ  = condJump("JZ", 0x4)
	JNE = condJump("JNE", 0x5)
	JNZ = condJump("JNZ", 0x5)
	JL  = condJump("JL", 0xC)
	JGE = condJump("JGE", 0xD)
	JLE = condJump("JLE", 0xE)
	JG  = condJump("JG", 0xF)
	JB  = condJump("JB", 0x2)
	JAE = condJump("JAE", 0x3)
	JBE = condJump("JBE", 0x6)
	JA  = condJump("JA", 0x7)
	JS  = condJump("JS", 0x8)
	JNS = condJump("JNS", 0x9)
	JO  = condJump("JO", 0x0)
	JNO = condJump("JNO", 0x1)
	JP  = condJump("JP", 0xA)
	JNP = condJump("JNP", 0xB)
)

// Instructions is the full mnemonic -> spec table this package exposes,
// keyed the way the assembler looks mnemonics up (upper-case, per spec
// §4.1 "mnemonics are matched case-insensitively").
var Instructions = map[string]asm.Instruction{
	"MOV": MOV, "MOVZX": MOVZX, "MOVSX": MOVSX, "MOVSXD": MOVSXD, "LEA": LEA, "XCHG": XCHG,
	"PUSH": PUSH, "POP": POP,
	"ADD": ADD, "OR": OR, "AND": AND, "SUB": SUB, "XOR": XOR, "CMP": CMP, "TEST": TEST,
	"NOT": NOT, "NEG": NEG, "MUL": MUL, "IMUL": IMUL, "DIV": DIV, "IDIV": IDIV, "INC": INC, "DEC": DEC,
	"ROL": ROL, "ROR": ROR, "SHL": SHL, "SAL": SHL, "SHR": SHR, "SAR": SAR,
	"JMP": JMP, "CALL": CALL, "RET": RET, "NOP": NOP, "LEAVE": LEAVE, "SYSCALL": SYSCALL, "INT3": INT3,
	"JE": JE, "JZ": JZ, "JNE": JNE, "JNZ": JNZ, "JL": JL, "JGE": JGE, "JLE": JLE, "JG": JG,
	"JB": JB, "JAE": JAE, "JBE": JBE, "JA": JA, "JS": JS, "JNS": JNS, "JO": JO, "JNO": JNO,
	"JP": JP, "JNP": JNP,
}
