package x86_64

import (
	"strings"

	"github.com/ironforge-labs/x86asm/internal/asm"
	"github.com/ironforge-labs/x86asm/internal/diagnostics"
)

// Label is spec component's named anchor, re-exported from internal/asm so
// callers of this package never need to import it directly.
type Label = asm.Label

// AssemblyUnit is spec component C6: an ordered sequence of labels and
// instructions that resolves to a single contiguous byte buffer plus a
// label table, via the two-pass algorithm of spec §4.6.
type AssemblyUnit struct {
	ctx   *asm.Context
	table map[string]asm.Instruction

	entries []unitEntry
	labels  map[string]*Label

	collector *diagnostics.Collector // nil: fail fast on the first fault.
}

type unitEntry struct {
	label *Label       // set when this entry only defines a label.
	instr *Instruction // set when this entry carries an instruction.
}

// AbsoluteReloc names a byte range in the assembled buffer that still
// needs a page-base-relative patch once the code page's load address is
// known (spec §4.7 "absolute address: patch page_base + target_offset
// into the pre-reserved immediate slot").
type AbsoluteReloc struct {
	Offset      int // byte offset into the assembled buffer.
	Width       int // field width in bits: 32 or 64.
	TargetLabel string
	TargetAt    int // the label's resolved offset within the same buffer.
}

// NewAssemblyUnit creates an empty unit bound to table (normally
// x86_64.Instructions) and ctx.
func NewAssemblyUnit(ctx *asm.Context, table map[string]asm.Instruction) *AssemblyUnit {
	return &AssemblyUnit{ctx: ctx, table: table, labels: map[string]*Label{}}
}

// Aggregate switches the unit from fail-fast (the default, spec §7) to
// collecting every fault into c instead of stopping at the first one.
func (u *AssemblyUnit) Aggregate(c *diagnostics.Collector) { u.collector = c }

func (u *AssemblyUnit) fail(f *diagnostics.Fault) error {
	if u.collector != nil {
		u.collector.Record(f)
		return nil
	}
	return f
}

// Label declares a named anchor at the current position in the unit.
// Declaring the same name twice is a DuplicateLabel fault.
func (u *AssemblyUnit) Label(name string) error {
	if _, exists := u.labels[name]; exists {
		return u.fail(diagnostics.New(diagnostics.DuplicateLabel, diagnostics.At(len(u.entries), name),
			"label already defined in this unit", name))
	}
	lbl := &Label{Identifier: name}
	u.labels[name] = lbl
	u.entries = append(u.entries, unitEntry{label: lbl})
	return nil
}

// Emit appends an instruction built from mnemonic and operands. Unknown
// mnemonics and operand-signature mismatches surface immediately (they
// never depend on anything this unit resolves later).
func (u *AssemblyUnit) Emit(mnemonic string, operands ...Operand) error {
	instr, err := NewInstruction(u.ctx, u.table, strings.ToUpper(mnemonic), operands...)
	if err != nil {
		if fault, ok := err.(*diagnostics.Fault); ok {
			fault.Position = diagnostics.At(len(u.entries), fault.Position.Mnemonic)
			return u.fail(fault)
		}
		return err
	}
	u.entries = append(u.entries, unitEntry{instr: instr})
	return nil
}

// resolver adapts the unit's label table to the Instruction.LabelResolver
// interface used during emission.
type resolver struct{ u *AssemblyUnit }

func (r *resolver) Offset(name string) (int, bool) {
	l, ok := r.u.labels[name]
	if !ok || !l.Resolved {
		return 0, false
	}
	return l.Offset, true
}

// Assemble runs the two-pass fixpoint of spec §4.6 and renders the final
// byte buffer, label table, and any outstanding absolute-address
// relocations for a code page loader to patch once it knows its base
// address.
func (u *AssemblyUnit) Assemble() ([]byte, map[string]int, []AbsoluteReloc, error) {
	offsets := make([]int, len(u.entries))

	sizeVariable := 0
	for _, e := range u.entries {
		if e.instr != nil {
			if _, ok := e.instr.DependsOnLabel(); ok && !e.instr.LabelIsAbsolute() {
				sizeVariable++
			}
		}
	}

	// Pass 1: fix every instruction's size to a monotonically-shrinking
	// fixpoint. A size-variable branch starts at its longest legal form and
	// may shrink once its target's offset stabilizes; shrinking an earlier
	// instruction can only ever shrink or hold later offsets steady, never
	// grow them, so sizeVariable+1 iterations is always enough. A forward
	// reference's target is only resolved at the end of the iteration that
	// first reaches it, so the loop cannot stop merely because one
	// iteration made no shrink: the next iteration is what lets that
	// instruction see the now-resolved offset and retry.
	for iter := 0; iter <= sizeVariable; iter++ {
		offset := 0
		for i, e := range u.entries {
			offsets[i] = offset
			if e.label != nil {
				e.label.Offset = offset
				e.label.Resolved = true
			}
			if e.instr == nil {
				continue
			}
			if idx, ok := e.instr.DependsOnLabel(); ok && !e.instr.LabelIsAbsolute() {
				targetName := e.instr.Operands[idx].Label
				if target, known := u.labels[targetName]; known && target.Resolved {
					e.instr.TryShrink(offset, target.Offset)
				}
			}
			offset += e.instr.Size()
		}
	}

	// Pass 2: emit final bytes and patch relative references; absolute
	// references become relocations for the caller (a code page) to
	// resolve once a load address exists.
	var code []byte
	var relocs []AbsoluteReloc
	res := &resolver{u: u}

	for i, e := range u.entries {
		if e.instr == nil {
			continue
		}
		if idx, ok := e.instr.DependsOnLabel(); ok {
			targetName := e.instr.Operands[idx].Label
			if _, known := u.labels[targetName]; !known {
				if err := u.fail(diagnostics.New(diagnostics.UndefinedLabel, diagnostics.AtOperand(i, e.instr.Mnemonic, idx),
					"reference to a label that was never defined", targetName)); err != nil {
					return nil, nil, nil, err
				}
				continue
			}
		}

		bytes, relocOffset, relocWidth, err := e.instr.Emit(offsets[i], res, e.instr.LabelIsAbsolute())
		if err != nil {
			if fault, ok := err.(*diagnostics.Fault); ok {
				fault.Position = diagnostics.At(i, e.instr.Mnemonic)
			}
			if ferr := u.fail(asFault(err, i, e.instr.Mnemonic)); ferr != nil {
				return nil, nil, nil, ferr
			}
			continue
		}

		if relocWidth > 0 {
			idx, _ := e.instr.DependsOnLabel()
			targetName := e.instr.Operands[idx].Label
			relocs = append(relocs, AbsoluteReloc{
				Offset:      len(code) + relocOffset,
				Width:       relocWidth,
				TargetLabel: targetName,
				TargetAt:    u.labels[targetName].Offset,
			})
		}
		code = append(code, bytes...)
	}

	labelOffsets := make(map[string]int, len(u.labels))
	for name, l := range u.labels {
		labelOffsets[name] = l.Offset
	}

	if u.collector != nil && u.collector.HasFaults() {
		return code, labelOffsets, relocs, u.collector.Faults()[0]
	}
	return code, labelOffsets, relocs, nil
}

func asFault(err error, entryIndex int, mnemonic string) *diagnostics.Fault {
	if f, ok := err.(*diagnostics.Fault); ok {
		return f
	}
	return diagnostics.New(diagnostics.OperandMisuse, diagnostics.At(entryIndex, mnemonic), err.Error(), nil)
}
