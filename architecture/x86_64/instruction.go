package x86_64

import (
	"github.com/ironforge-labs/x86asm/internal/asm"
	"github.com/ironforge-labs/x86asm/internal/diagnostics"
)

// Instruction is spec component C5: the bound triple (mnemonic, concrete
// operands, selected encoding row). It is created once the caller supplies
// a mnemonic and operand tuple, and is mutated at most once during size
// resolution (spec §3 "Instruction"): a size-variable jump/call may shrink
// from its provisional rel32 form to a rel8 form as label distances become
// known.
type Instruction struct {
	Mnemonic string
	Operands []Operand

	ctx *asm.Context

	// candidates holds every row that matches once label-dependent operand
	// widths are set aside; for ordinary instructions this has exactly one
	// entry. For a size-variable branch with a Label operand it holds every
	// relative-class row (rel8, rel32, ...), widest first.
	candidates []*asm.InstructionForm
	selected   int // index into candidates currently in effect.

	labelOperandIndex int // index into Operands naming the Label, or -1.
}

// pos builds a diagnostics.Position for this instruction, for use by
// callers (the assembly unit) that know the entry index.
func (in *Instruction) pos(entryIndex, operandIndex int) diagnostics.Position {
	if operandIndex < 0 {
		return diagnostics.At(entryIndex, in.Mnemonic)
	}
	return diagnostics.AtOperand(entryIndex, in.Mnemonic, operandIndex)
}

// NewInstruction binds mnemonic+operands to a matching row from table,
// performing the full row-selection algorithm of spec §4.4 except for the
// part that genuinely cannot be decided until label offsets are known
// (handled by deferring to multiple candidates, see DependsOnLabel).
func NewInstruction(ctx *asm.Context, table map[string]asm.Instruction, mnemonic string, operands ...Operand) (*Instruction, error) {
	spec, ok := table[mnemonic]
	if !ok {
		return nil, diagnostics.New(diagnostics.UnknownMnemonic, diagnostics.At(-1, mnemonic), "mnemonic not found in instruction spec table", mnemonic)
	}

	operands = inferMemoryWidths(operands)

	labelIdx := -1
	for i, op := range operands {
		if op.Kind == KindLabel {
			labelIdx = i
		}
		if op.Kind == KindMemory {
			if err := op.Mem.Validate(ctx); err != nil {
				return nil, diagnostics.New(diagnostics.OperandMisuse, diagnostics.AtOperand(-1, mnemonic, i), err.Error(), op.Mem)
			}
		}
	}

	var matches []*asm.InstructionForm
	for i := range spec.Forms {
		form := &spec.Forms[i]
		if !formLegalInMode(form, ctx.Mode()) {
			continue
		}
		if len(form.Operands) != len(operands) {
			continue
		}
		ok := true
		for j, opType := range form.Operands {
			if !matchOperand(opType, operands[j], ctx) {
				ok = false
				break
			}
		}
		if ok {
			matches = append(matches, form)
		}
	}

	if len(matches) == 0 {
		tried := make([]string, 0, len(spec.Forms))
		for i := range spec.Forms {
			tried = append(tried, signatureString(spec.Forms[i].Operands))
		}
		return nil, diagnostics.New(diagnostics.NoMatchingForm, diagnostics.At(-1, mnemonic),
			"no instruction form matches the given operands", tried)
	}

	in := &Instruction{
		Mnemonic:          mnemonic,
		Operands:          operands,
		ctx:               ctx,
		labelOperandIndex: labelIdx,
	}

	if labelIdx >= 0 && operands[labelIdx].width() == 0 {
		// Size-variable: every relative-class match is a live candidate
		// until label distances are known. Order widest-first so pass 1
		// can use the longest legal form (spec §4.6 pass 1).
		in.candidates = sortByEncodedLengthDesc(matches)
		in.selected = 0
		return in, nil
	}

	in.candidates = []*asm.InstructionForm{chooseRow(matches, ctx)}
	in.selected = 0
	return in, nil
}

// Row returns the currently selected encoding row.
func (in *Instruction) Row() *asm.InstructionForm { return in.candidates[in.selected] }

// DependsOnLabel reports whether this instruction references a label at
// all, and if so, which operand names it (spec §4.5). This covers both
// size-variable branches and fixed-size absolute-address users (e.g. `mov
// rax, label`): both need their label resolved before Emit can run.
func (in *Instruction) DependsOnLabel() (operandIndex int, ok bool) {
	if in.labelOperandIndex < 0 {
		return -1, false
	}
	return in.labelOperandIndex, true
}

// LabelIsAbsolute reports whether this instruction's label operand is used
// as an absolute address (an immediate load) rather than a relative
// branch displacement.
func (in *Instruction) LabelIsAbsolute() bool {
	return in.labelOperandIndex >= 0 && in.Row().Tag != asm.TagD
}

// Size returns this instruction's current byte length under the
// currently-selected row.
func (in *Instruction) Size() int {
	return formEncodedLength(in.Row(), in.Operands)
}

// TryShrink attempts to pick a smaller candidate row now that the target
// label's offset is known (spec §4.6: "attempt a shorter form if the
// signed displacement, computed against that candidate's own length, fits
// into 8 bits"). It returns true if a smaller row was selected, meaning
// the unit must re-run its fixpoint loop since this instruction's size
// just changed.
func (in *Instruction) TryShrink(selfOffset, targetOffset int) bool {
	if len(in.candidates) <= 1 {
		return false
	}
	best := in.selected
	bestLen := formEncodedLength(in.candidates[best], in.Operands)
	for i, cand := range in.candidates {
		if i == best {
			continue
		}
		candLen := formEncodedLength(cand, in.Operands)
		disp := int64(targetOffset) - int64(selfOffset+candLen)
		if !relativeFormFits(cand, disp) {
			continue
		}
		if candLen < bestLen {
			best, bestLen = i, candLen
		}
	}
	if best == in.selected {
		return false
	}
	in.selected = best
	return true
}

// LabelResolver is supplied by the assembly unit at emission time. It gives
// a label's resolved byte offset, with ok=false when the label is unknown
// or not yet resolved. Whether a reference is absolute is not decided here;
// Emit receives that separately as relocAbsolute.
type LabelResolver interface {
	Offset(name string) (offset int, ok bool)
}

// Emit renders this instruction's final bytes. selfOffset is this
// instruction's own byte offset in the unit; it is needed to compute
// relative displacements. relocAbsolute reports whether the label operand
// (if any) is used in an absolute-address context (true) or a
// relative-displacement context (false); it is only consulted when a label
// operand is present.
//
// When the label operand is absolute, Emit writes a zero placeholder into
// the immediate slot and returns its buffer offset and width via
// absRelocOffset/absRelocWidth (width 0 means "no absolute relocation").
func (in *Instruction) Emit(selfOffset int, resolve LabelResolver, relocAbsolute bool) (code []byte, absRelocOffset int, absRelocWidth int, err error) {
	row := in.Row()
	operands := in.Operands

	reg, rm, index, memDisp := fieldOperands(row, operands)

	forceW := row.ForceREXW
	legacy := LegacyPrefixes(in.ctx.Mode(), operandIs16(row, operands), addressWidthOf(operands))

	rexBits, rexErr := EncodeREX(reg, rm, index, forceW)
	if rexErr != nil {
		return nil, 0, 0, diagnostics.New(diagnostics.OperandMisuse, diagnostics.At(-1, in.Mnemonic), rexErr.Error(), in.Operands)
	}

	for _, p := range legacy {
		code = append(code, byte(p))
	}
	if rexBits.Required() {
		code = append(code, rexBits.Byte())
	}
	code = append(code, row.Opcode...)

	switch row.Tag {
	case asm.TagOI:
		code[len(code)-1] += operands[0].Reg.Index()
	case asm.TagD:
		// opcode already complete; relative displacement follows below.
	}

	if row.ModRM || row.Tag == asm.TagM || row.Tag == asm.TagMI || row.Tag == asm.TagMR || row.Tag == asm.TagRM {
		modrmByte, sibByte, dispBytes, mErr := encodeMemoryOrReg(row, operands, reg, rm, memDisp)
		if mErr != nil {
			return nil, 0, 0, mErr
		}
		code = append(code, modrmByte)
		if sibByte != nil {
			code = append(code, *sibByte)
		}
		code = append(code, dispBytes...)
	}

	immOperand, immWidth, isLabel := immediateOperand(row, operands)
	switch {
	case row.Tag == asm.TagD:
		disp, dErr := relativeDisplacement(row, operands[0], selfOffset, len(code)+relWidth(row), resolve)
		if dErr != nil {
			return nil, 0, 0, dErr
		}
		code = append(code, EncodeDisplacement(int32(disp), relWidth(row))...)
	case isLabel:
		if relocAbsolute {
			absRelocOffset = len(code)
			absRelocWidth = immWidth
			code = append(code, make([]byte, immWidth/8)...)
		} else {
			disp, dErr := relativeDisplacement(row, operands[in.labelOperandIndex], selfOffset, len(code)+immWidth/8, resolve)
			if dErr != nil {
				return nil, 0, 0, dErr
			}
			code = append(code, EncodeDisplacement(int32(disp), immWidth/8)...)
		}
	case immWidth > 0:
		if !fitsWidth(immOperand, immWidth) {
			return nil, 0, 0, diagnostics.New(diagnostics.ImmediateOutOfRange, diagnostics.At(-1, in.Mnemonic),
				"immediate does not fit the selected encoding width", immOperand)
		}
		code = append(code, EncodeImmediate(immOperand, immWidth)...)
	}

	return code, absRelocOffset, absRelocWidth, nil
}
