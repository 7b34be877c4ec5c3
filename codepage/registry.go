package codepage

import "sync"

// registryMu guards the only shared mutable state in this package: the
// bookkeeping set of live pages. Everything else a Page does is either
// immutable after New or scoped to that one Page's own mutex.
var (
	registryMu sync.Mutex
	registry   = map[*Page]struct{}{}
)

func register(p *Page) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[p] = struct{}{}
}

func deregister(p *Page) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, p)
}

// Live returns the number of code pages currently allocated and not yet
// released. Intended for tests and diagnostics, not for production control
// flow.
func Live() int {
	registryMu.Lock()
	defer registryMu.Unlock()
	return len(registry)
}
