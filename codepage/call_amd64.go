//go:build amd64

package codepage

import "fmt"

// callSysV and callWin64 are hand-written Plan 9 assembly trampolines (see
// call_amd64.s) that load fn into a register and jump to it with arguments
// placed per each ABI's register assignment.

//go:noescape
func callSysV(fn uintptr, a0, a1, a2, a3, a4, a5 uint64) uint64

//go:noescape
func callWin64(fn uintptr, a0, a1, a2, a3 uint64) uint64

func dispatch(fn uintptr, conv CallingConvention, args []uint64) (uint64, error) {
	switch conv {
	case SysV:
		if len(args) > 6 {
			return 0, fmt.Errorf("codepage: sysv convention takes at most 6 arguments, got %d", len(args))
		}
		var a [6]uint64
		copy(a[:], args)
		return callSysV(fn, a[0], a[1], a[2], a[3], a[4], a[5]), nil
	case Win64:
		if len(args) > 4 {
			return 0, fmt.Errorf("codepage: win64 convention takes at most 4 register arguments, got %d", len(args))
		}
		var a [4]uint64
		copy(a[:], args)
		return callWin64(fn, a[0], a[1], a[2], a[3]), nil
	default:
		return 0, fmt.Errorf("codepage: calling convention %s has no amd64 trampoline", conv)
	}
}
