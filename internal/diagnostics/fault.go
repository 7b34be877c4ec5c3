package diagnostics

import "fmt"

// Kind enumerates the error kinds spec §7 names. Every one is fatal to the
// current assembly unit unless the caller opted into a Collector.
type Kind string

const (
	UnknownMnemonic        Kind = "unknown_mnemonic"
	NoMatchingForm         Kind = "no_matching_form"
	OperandMisuse          Kind = "operand_misuse"
	ImmediateOutOfRange    Kind = "immediate_out_of_range"
	DisplacementOutOfRange Kind = "displacement_out_of_range"
	UndefinedLabel         Kind = "undefined_label"
	DuplicateLabel         Kind = "duplicate_label"
	ArchMismatch           Kind = "arch_mismatch"
	PageAllocFailed        Kind = "page_alloc_failed"
)

// Fault is a structured error value. It always carries the offending
// mnemonic/operand index/value (spec §7: "All errors are structured values
// carrying the offending mnemonic/operand index/value; none are silently
// recovered").
type Fault struct {
	Kind     Kind
	Position Position
	Message  string
	Value    any // The offending operand value, tried signature list, etc.
}

// New builds a Fault.
func New(kind Kind, pos Position, message string, value any) *Fault {
	return &Fault{Kind: kind, Position: pos, Message: message, Value: value}
}

// Error implements the error interface.
func (f *Fault) Error() string {
	if f.Value != nil {
		return fmt.Sprintf("%s at %s: %s (%v)", f.Kind, f.Position, f.Message, f.Value)
	}
	return fmt.Sprintf("%s at %s: %s", f.Kind, f.Position, f.Message)
}
