package codepage

import "fmt"

// CallingConvention selects the argument-passing and stack-cleanup rules a
// Callable's trampoline must follow (spec §4.7 "parameterized by calling
// convention"). Only the conventions a hand-written trampoline exists for
// are declared; see call_amd64.s and call_386.s.
type CallingConvention int

const (
	SysV      CallingConvention = iota // System V AMD64: integer args in RDI,RSI,RDX,RCX,R8,R9.
	Win64                              // Microsoft x64: integer args in RCX,RDX,R8,R9 plus 32-byte shadow space.
	Cdecl32                            // 32-bit cdecl: args pushed right-to-left, caller cleans the stack.
	Stdcall32                          // 32-bit stdcall: args pushed right-to-left, callee cleans the stack.
)

func (c CallingConvention) String() string {
	switch c {
	case SysV:
		return "sysv"
	case Win64:
		return "win64"
	case Cdecl32:
		return "cdecl"
	case Stdcall32:
		return "stdcall"
	default:
		return fmt.Sprintf("CallingConvention(%d)", int(c))
	}
}

// Callable is an opaque handle to one entry point inside a Page (spec §6
// "make callable"). It shares ownership of the backing Page: the page's
// memory stays mapped as long as any Callable derived from it is open.
type Callable struct {
	page       *Page
	offset     int
	convention CallingConvention
}

// NewCallable derives a callable entry point at byte offset into page,
// using convention for argument passing. It retains page; Close releases
// that reference.
func NewCallable(page *Page, offset int, convention CallingConvention) *Callable {
	page.retain()
	return &Callable{page: page, offset: offset, convention: convention}
}

// Close drops this handle's reference to its backing page. After Close,
// the Callable must not be used again.
func (c *Callable) Close() {
	if c.page == nil {
		return
	}
	c.page.release()
	c.page = nil
}

// Call invokes the entry point with up to the convention's supported
// number of integer/pointer-width arguments and returns the callee's
// return-register value. Extra args beyond what the convention's
// trampoline accepts is a caller error, not a silent truncation.
func (c *Callable) Call(args ...uint64) (uint64, error) {
	if c.page == nil {
		return 0, fmt.Errorf("codepage: Call on a closed Callable")
	}
	return dispatch(c.page.entry(c.offset), c.convention, args)
}
