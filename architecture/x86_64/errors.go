package x86_64

import "errors"

// Low-level validation errors. Callers that need the structured form spec
// §7 requires (mnemonic/operand index/value) wrap these with a
// diagnostics.Fault at the point where that context is available (see
// instruction.go and unit.go).
var (
	errMemWidthMismatch  = errors.New("base and index registers disagree in width")
	errIndexIsSP         = errors.New("rsp/esp cannot be used as the index register")
	errAddressWidthMode  = errors.New("address width is illegal for the current architecture mode")
	errRIPRelativeMode   = errors.New("rip-relative addressing is only legal in 64-bit mode")
	errHighByteWithREX   = errors.New("ah/bh/ch/dh cannot be combined with a REX prefix")
	errRegisterWrongMode = errors.New("register is not addressable in the current architecture mode")
	errNoMatchingForm    = errors.New("no instruction form matches the given operands")
	errUnknownMnemonic   = errors.New("unknown mnemonic")
	errImmediateRange    = errors.New("immediate value does not fit the required width/sign")
	errDisplacementRange = errors.New("displacement does not fit a signed 32-bit field")
	errUndefinedLabel    = errors.New("reference to a label that was never defined")
	errDuplicateLabel    = errors.New("label defined more than once")
	errSixteenBitAddress = errors.New("16-bit address forms are not implemented")
)
