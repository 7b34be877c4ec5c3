package x86_64

import (
	"sort"
	"strings"

	"github.com/ironforge-labs/x86asm/internal/asm"
)

// This file implements the row-selection and field-layout logic that sits
// between the Instruction spec table (instructions.go) and the byte-level
// primitives (encode.go): deciding which row a given operand tuple
// satisfies, and deciding which concrete register/memory piece occupies
// each ModR/M/SIB/REX field for a chosen row.

// inferMemoryWidths fills in an unspecified memory pointer width (spec
// §4.2's "pointer sizer") from a same-instruction register operand when the
// signature is otherwise unambiguous, mirroring how `mov eax, [ebx]` needs
// no explicit `dword ptr` because the register operand already pins the
// size.
func inferMemoryWidths(operands []Operand) []Operand {
	out := append([]Operand(nil), operands...)
	memIdx, memCount := -1, 0
	regIdx, regCount := -1, 0
	for i, o := range out {
		if o.Kind == KindMemory && o.Mem.Width == 0 {
			memIdx, memCount = i, memCount+1
		}
		if o.Kind == KindRegister {
			regIdx, regCount = i, regCount+1
		}
	}
	if memCount == 1 && regCount == 1 {
		out[memIdx].Mem.Width = out[regIdx].Reg.Width
	}
	return out
}

func formLegalInMode(form *asm.InstructionForm, mode asm.Mode) bool {
	if mode == asm.Mode64 {
		return form.Legal64
	}
	return form.Legal32
}

func registerLegal(reg Register, ctx *asm.Context) bool {
	if reg.Only64 && ctx.Mode() != asm.Mode64 {
		return false
	}
	return true
}

// matchOperand reports whether operand satisfies opType's signature (spec
// §4.4 "a form matches when every operand type in its signature is
// satisfied by the corresponding concrete operand").
func matchOperand(opType asm.OperandType, operand Operand, ctx *asm.Context) bool {
	switch opType.Type {
	case "register":
		return operand.Kind == KindRegister && operand.Reg.Width == opType.Size && registerLegal(operand.Reg, ctx)
	case "register/memory":
		switch operand.Kind {
		case KindRegister:
			return operand.Reg.Width == opType.Size && registerLegal(operand.Reg, ctx)
		case KindMemory:
			return operand.Mem.Width == opType.Size
		default:
			return false
		}
	case "memory":
		return operand.Kind == KindMemory
	case "immediate":
		if operand.Kind == KindLabel {
			return true // width/range only decidable once the label resolves.
		}
		return operand.Kind == KindImmediate && fitsWidth(operand.ImmValue, opType.Size)
	case "relative":
		return operand.Kind == KindLabel
	default:
		return false
	}
}

func signatureString(ops []asm.OperandType) string {
	names := make([]string, len(ops))
	for i, o := range ops {
		names[i] = o.Identifier
	}
	return strings.Join(names, ",")
}

// chooseRow picks among statically-matching rows: declaration order under
// strict parity, or the shortest PreferShortest-eligible row otherwise
// (spec §6 item 3, the one permitted encoding divergence).
func chooseRow(matches []*asm.InstructionForm, ctx *asm.Context) *asm.InstructionForm {
	best := matches[0]
	if ctx.StrictParity {
		return best
	}
	for _, m := range matches[1:] {
		if m.PreferShortest && best.PreferShortest && formStaticLength(m) < formStaticLength(best) {
			best = m
		}
	}
	return best
}

// sortByEncodedLengthDesc orders size-variable branch candidates widest
// first, matching pass 1's rule of provisionally using the longest legal
// form (spec §4.6).
func sortByEncodedLengthDesc(matches []*asm.InstructionForm) []*asm.InstructionForm {
	out := append([]*asm.InstructionForm(nil), matches...)
	sort.SliceStable(out, func(i, j int) bool {
		return formStaticLength(out[i]) > formStaticLength(out[j])
	})
	return out
}

// formStaticLength estimates a row's length from its declared shape alone
// (opcode + ModR/M + declared immediate/relative width), without reference
// to concrete operands. It is only used to compare rows of the very same
// instruction that differ solely in declared operand width.
func formStaticLength(form *asm.InstructionForm) int {
	n := len(form.Opcode)
	if modrmTag(form.Tag) {
		n++
	}
	for _, o := range form.Operands {
		if o.Type == "immediate" || o.Type == "relative" {
			n += o.Size / 8
		}
	}
	return n
}

func modrmTag(tag asm.EncodingTag) bool {
	switch tag {
	case asm.TagRM, asm.TagMR, asm.TagMI, asm.TagM:
		return true
	default:
		return false
	}
}

// relWidth returns the byte width (1 or 4) of a form's relative-displacement
// operand, defaulting to 4 for forms that have none (should not be called
// in that case).
func relWidth(form *asm.InstructionForm) int {
	for _, o := range form.Operands {
		if o.Type == "relative" {
			return o.Size / 8
		}
	}
	return 4
}

func relativeFormFits(form *asm.InstructionForm, displacement int64) bool {
	switch relWidth(form) {
	case 1:
		return FitsSigned8(displacement)
	case 4:
		return FitsSigned32(displacement)
	default:
		return false
	}
}

// regRMIndices reports which operand slots (if any) feed the ModR/M reg
// and r/m fields for a given tag.
func regRMIndices(form *asm.InstructionForm) (regIdx, rmIdx int, ok bool) {
	switch form.Tag {
	case asm.TagRM:
		return 0, 1, true
	case asm.TagMR:
		return 1, 0, true
	case asm.TagMI, asm.TagM:
		return -1, 0, true
	case asm.TagOI:
		// The register operand is embedded in the opcode's low 3 bits, but
		// still needs REX.B to reach encodings 8-15; route it through the
		// same "rm" slot fieldOperands uses for REX.B bookkeeping.
		return -1, 0, true
	default:
		return -1, -1, false
	}
}

// fieldOperands extracts the concrete registers that feed REX/ModR/M/SIB
// encoding: reg is the ModR/M reg-field register (nil for opcode-extension
// rows), rm is the register contributing to REX.B (either the register-
// direct r/m operand or a memory reference's base), and index is the
// register contributing to REX.X (a memory reference's index).
func fieldOperands(form *asm.InstructionForm, operands []Operand) (reg *Register, rm *Register, index *Register, memDisp int32) {
	regIdx, rmIdx, ok := regRMIndices(form)
	if !ok {
		return nil, nil, nil, 0
	}
	if regIdx >= 0 && regIdx < len(operands) && operands[regIdx].Kind == KindRegister {
		r := operands[regIdx].Reg
		reg = &r
	}
	if rmIdx >= 0 && rmIdx < len(operands) {
		switch operands[rmIdx].Kind {
		case KindRegister:
			r := operands[rmIdx].Reg
			rm = &r
		case KindMemory:
			mem := operands[rmIdx].Mem
			if mem.Base != nil {
				b := *mem.Base
				rm = &b
			}
			if mem.Index != nil {
				ix := *mem.Index
				index = &ix
			}
			memDisp = mem.Disp
		}
	}
	return
}

// operandIs16 reports whether a row's operand size is 16 bits. The first
// operand carries the operand size, so a 16-bit source (MOVZX/MOVSX r/m16)
// does not count.
func operandIs16(form *asm.InstructionForm, operands []Operand) bool {
	if len(form.Operands) == 0 {
		return false
	}
	o := form.Operands[0]
	return o.Size == 16 && (o.Type == "register" || o.Type == "register/memory")
}

func addressWidthOf(operands []Operand) int {
	for _, o := range operands {
		if o.Kind == KindMemory {
			return o.Mem.AddressWidth()
		}
	}
	return 0
}

// memDispSize reports how many displacement bytes a memory reference needs:
// 0 (no displacement byte at all), 1 (fits signed 8-bit, or forced by the
// rbp/ebp/r13-base-no-disp rule), or 4 (everything else, including the
// base-less disp32-only and RIP-relative forms).
func memDispSize(mem Mem) int {
	if mem.RIPRelative || mem.Base == nil {
		return 4
	}
	if mem.forcesDisp8() {
		return 1
	}
	if mem.Disp == 0 {
		return 0
	}
	if FitsSigned8(int64(mem.Disp)) {
		return 1
	}
	return 4
}

// encodeMemoryOrReg renders the ModR/M byte, an optional SIB byte, and the
// displacement bytes for a row's r/m-side operand (register-direct or
// memory). regField is the reg-field's contents (the Digit opcode
// extension when set, otherwise the ModR/M-reg register's index).
func encodeMemoryOrReg(form *asm.InstructionForm, operands []Operand, reg *Register, rm *Register, memDisp int32) (byte, *byte, []byte, error) {
	_, rmIdx, ok := regRMIndices(form)
	if !ok || rmIdx < 0 || rmIdx >= len(operands) {
		return 0, nil, nil, nil
	}

	var regField byte
	switch {
	case form.Digit != nil:
		regField = *form.Digit
	case reg != nil:
		regField = reg.Index()
	}

	operand := operands[rmIdx]
	switch operand.Kind {
	case KindRegister:
		modrm := EncodeModRM(ModRegDirect, regField, operand.Reg.Index())
		return modrm, nil, nil, nil
	case KindMemory:
		return encodeMemOperand(operand.Mem, regField)
	default:
		return 0, nil, nil, errNoMatchingForm
	}
}

func encodeMemOperand(mem Mem, regField byte) (byte, *byte, []byte, error) {
	if mem.RIPRelative || mem.Base == nil {
		if !mem.RIPRelative && mem.Index != nil {
			// No base but an index: SIB base=101 with mod=00 means disp32 plus
			// the scaled index.
			modrm := EncodeModRM(ModIndirect, regField, sibEscapeRM)
			sib := EncodeSIB(scaleLog2(mem.Scale), mem.Index.Index(), dispOnlyBaseRM)
			return modrm, &sib, EncodeDisplacement(mem.Disp, 4), nil
		}
		modrm := EncodeModRM(ModIndirect, regField, dispOnlyBaseRM)
		return modrm, nil, EncodeDisplacement(mem.Disp, 4), nil
	}

	dispSize := memDispSize(mem)
	var mod byte
	switch dispSize {
	case 0:
		mod = ModIndirect
	case 1:
		mod = ModDisp8
	default:
		mod = ModDisp32
	}

	if mem.needsSIB() {
		modrm := EncodeModRM(mod, regField, sibEscapeRM)
		var indexIdx byte = 0b100 // SIB "no index" encoding.
		if mem.Index != nil {
			indexIdx = mem.Index.Index()
		}
		sib := EncodeSIB(scaleLog2(mem.Scale), indexIdx, mem.Base.Index())
		return modrm, &sib, EncodeDisplacement(mem.Disp, dispSize), nil
	}

	modrm := EncodeModRM(mod, regField, mem.Base.Index())
	return modrm, nil, EncodeDisplacement(mem.Disp, dispSize), nil
}

func immOperandIndex(form *asm.InstructionForm) (int, bool) {
	switch form.Tag {
	case asm.TagMI, asm.TagOI:
		return 1, true
	case asm.TagI:
		return 0, true
	default:
		return -1, false
	}
}

func immWidthOf(form *asm.InstructionForm) int {
	idx, ok := immOperandIndex(form)
	if !ok || idx >= len(form.Operands) {
		return 0
	}
	return form.Operands[idx].Size
}

// immediateOperand extracts a row's immediate operand (if any): its
// numeric value, the declared encoding width, and whether it is actually a
// not-yet-resolved label used in an absolute-address context.
func immediateOperand(form *asm.InstructionForm, operands []Operand) (value int64, width int, isLabel bool) {
	idx, ok := immOperandIndex(form)
	if !ok || idx >= len(operands) {
		return 0, 0, false
	}
	width = immWidthOf(form)
	op := operands[idx]
	if op.Kind == KindLabel {
		return 0, width, true
	}
	return op.ImmValue, width, false
}

func relativeDisplacement(form *asm.InstructionForm, labelOperand Operand, selfOffset int, tailLen int, resolve LabelResolver) (int64, error) {
	if labelOperand.Kind != KindLabel {
		return 0, errUndefinedLabel
	}
	target, ok := resolve.Offset(labelOperand.Label)
	if !ok {
		return 0, errUndefinedLabel
	}
	disp := int64(target) - int64(selfOffset+tailLen)
	if !relativeFormFits(form, disp) {
		return 0, errDisplacementRange
	}
	return disp, nil
}

func fitsWidth(value int64, width int) bool {
	switch width {
	case 8:
		return value >= -128 && value <= 255
	case 16:
		return value >= -32768 && value <= 65535
	case 32:
		return value >= -2147483648 && value <= 4294967295
	case 64:
		return true
	default:
		return false
	}
}

// formEncodedLength computes a row's exact byte length against concrete
// operands: real REX necessity, real SIB/displacement sizing, real
// immediate width. Used by Instruction.Size and the two-pass fixpoint.
func formEncodedLength(form *asm.InstructionForm, operands []Operand) int {
	reg, rm, index, _ := fieldOperands(form, operands)
	rexBits, _ := EncodeREX(reg, rm, index, form.ForceREXW)

	n := 0
	if operandIs16(form, operands) {
		n++
	}
	if rexBits.Required() {
		n++
	}
	n += len(form.Opcode)

	if modrmTag(form.Tag) {
		n++
		if _, rmIdx, ok := regRMIndices(form); ok && rmIdx < len(operands) && operands[rmIdx].Kind == KindMemory {
			mem := operands[rmIdx].Mem
			if mem.needsSIB() {
				n++
			}
			n += memDispSize(mem)
		}
	}

	if form.Tag == asm.TagD {
		n += relWidth(form)
		return n
	}
	if w := immWidthOf(form); w > 0 {
		n += w / 8
	}
	return n
}
