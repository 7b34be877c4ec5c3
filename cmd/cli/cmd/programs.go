package cmd

import (
	"fmt"

	"github.com/ironforge-labs/x86asm/architecture/x86_64"
	"github.com/ironforge-labs/x86asm/examples"
	"github.com/ironforge-labs/x86asm/internal/asm"
)

// builtinPrograms maps a CLI-facing program name to its builder. There is
// no text parser front-end (spec §1 out of scope); every demo/dump target
// is one of these hand-built example units.
var builtinPrograms = map[string]func(ctx *asm.Context) (*x86_64.AssemblyUnit, error){
	"sumofsquares": examples.SumOfSquares,
	"fibonacci":    examples.Fibonacci,
}

func lookupProgram(name string) (func(ctx *asm.Context) (*x86_64.AssemblyUnit, error), error) {
	build, ok := builtinPrograms[name]
	if !ok {
		return nil, fmt.Errorf("unknown built-in program %q (want sumofsquares or fibonacci)", name)
	}
	return build, nil
}

func parseMode(s string) (asm.Mode, error) {
	switch s {
	case "x86":
		return asm.Mode32, nil
	case "x86_64":
		return asm.Mode64, nil
	default:
		return 0, fmt.Errorf("unknown architecture %q (want x86 or x86_64)", s)
	}
}
