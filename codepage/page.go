// Package codepage turns a finalized instruction buffer into executable
// memory (spec component C7). It allocates OS pages, copies the buffer in,
// patches any absolute-address relocations left by architecture/x86_64's
// two-pass assembler, flips the mapping from writable to executable, and
// hands back Callable entry points a Go program can invoke directly.
package codepage

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ironforge-labs/x86asm/architecture/x86_64"
	"github.com/ironforge-labs/x86asm/internal/diagnostics"
)

var pageSize = detectPageSize()

// trapByte (INT3) fills the tail of a page past the real code so that a stray
// fall-through raises a breakpoint trap (SIGTRAP) instead of running whatever garbage
// follows (spec §4.7 "padding past the end of the code").
const trapByte = 0xCC

// Page is one or more OS pages holding finalized, executable machine code.
// It is reference-counted: every Callable derived from it (via NewCallable)
// holds a reference, and the mapping is only unmapped once the last
// reference is dropped (spec §9 "Executable memory lifetime").
type Page struct {
	mu    sync.Mutex
	mem   []byte
	used  int
	refs  int32
	freed bool
}

// New allocates a page sized to hold code, copies code in, patches relocs
// against the page's own base address, and re-protects the mapping
// read+execute. The returned Page carries one reference, owned by the
// caller; call Release once it (and any Callables derived from it) are no
// longer needed.
func New(code []byte, relocs []x86_64.AbsoluteReloc) (*Page, error) {
	size := alignUp(len(code), pageSize)
	if size == 0 {
		size = pageSize
	}

	mem, err := allocRW(size)
	if err != nil {
		return nil, allocFault(size, err)
	}

	copy(mem, code)
	for i := len(code); i < size; i++ {
		mem[i] = trapByte
	}

	base := addrOf(mem)
	for _, r := range relocs {
		if err := patchAddress(mem, r.Offset, r.Width, base+uintptr(r.TargetAt)); err != nil {
			_ = freeMem(mem)
			return nil, allocFault(size, err)
		}
	}

	if err := protectRX(mem); err != nil {
		_ = freeMem(mem)
		return nil, allocFault(size, err)
	}

	p := &Page{mem: mem, used: len(code), refs: 1}
	register(p)
	return p, nil
}

// Release drops the caller's own reference to the page, obtained implicitly
// from New. Call it once the page is no longer needed directly; any
// Callable handles derived from it (via NewCallable) hold independent
// references and keep the mapping alive until they are Closed too.
func (p *Page) Release() { p.release() }

func allocFault(size int, err error) *diagnostics.Fault {
	return diagnostics.New(diagnostics.PageAllocFailed, diagnostics.Position{EntryIndex: -1, OperandIndex: -1}, err.Error(), size)
}

// Base returns the page's load address. Valid for the page's entire
// lifetime; it never moves once allocated.
func (p *Page) Base() uintptr { return addrOf(p.mem) }

// Size returns the total mapped size in bytes, a multiple of the host page
// size.
func (p *Page) Size() int { return len(p.mem) }

// entry returns the absolute address of byte offset into the mapping.
func (p *Page) entry(offset int) uintptr { return p.Base() + uintptr(offset) }

func (p *Page) retain() { atomic.AddInt32(&p.refs, 1) }

func (p *Page) release() {
	if atomic.AddInt32(&p.refs, -1) > 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.freed {
		return
	}
	p.freed = true
	deregister(p)
	_ = freeMem(p.mem)
}

func alignUp(n, align int) int {
	if align <= 0 {
		return n
	}
	return (n + align - 1) / align * align
}

// patchAddress writes target, truncated to width bits, little-endian into
// mem at offset (spec §4.7 "patch page_base + target_offset into the
// pre-reserved immediate slot").
func patchAddress(mem []byte, offset, width int, target uintptr) error {
	bytes := width / 8
	if offset < 0 || bytes <= 0 || offset+bytes > len(mem) {
		return fmt.Errorf("codepage: relocation at offset %d width %d bits out of bounds (page size %d)", offset, width, len(mem))
	}
	v := uint64(target)
	for i := 0; i < bytes; i++ {
		mem[offset+i] = byte(v >> (8 * i))
	}
	return nil
}
