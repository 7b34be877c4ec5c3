package diagnostics

import "sync"

// Collector is a passive, append-only ledger of Faults. It is thread-safe
// for concurrent writes, following the same shape as the teacher's
// DebugContext, but records Faults instead of free-text log entries.
//
// The assembler core itself is fail-fast by default (spec §7 "Policy: fail
// fast at the first error per assembly unit"): Assemble and Emit return the
// first Fault they hit. A Collector exists for the documented escape hatch
// — "the front-end may aggregate" — so a caller assembling many units, or a
// future parser front-end, can keep going and report every fault found in
// one pass instead of one-at-a-time.
type Collector struct {
	mu     sync.Mutex
	faults []*Fault
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Record appends a Fault to the ledger.
func (c *Collector) Record(f *Fault) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.faults = append(c.faults, f)
}

// Faults returns every recorded Fault in insertion order.
func (c *Collector) Faults() []*Fault {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Fault, len(c.faults))
	copy(out, c.faults)
	return out
}

// HasFaults reports whether any Fault has been recorded.
func (c *Collector) HasFaults() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.faults) > 0
}

// Count returns the number of recorded Faults.
func (c *Collector) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.faults)
}
