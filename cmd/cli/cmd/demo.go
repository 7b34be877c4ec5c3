package cmd

import (
	"fmt"

	"github.com/ironforge-labs/x86asm/codepage"
	"github.com/ironforge-labs/x86asm/internal/asm"
	"github.com/spf13/cobra"
)

var (
	demoArch         string
	demoProgram      string
	demoN            int64
	demoStrictParity bool
	demoConvention   string
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "assemble a built-in program, load it into an executable page, run it, and print the result",
	RunE:  runDemo,
}

func init() {
	demoCmd.Flags().StringVar(&demoArch, "arch", "x86_64", "target architecture: x86 or x86_64")
	demoCmd.Flags().StringVar(&demoProgram, "program", "sumofsquares", "built-in program: sumofsquares or fibonacci")
	demoCmd.Flags().Int64Var(&demoN, "n", 10, "argument passed to the program")
	demoCmd.Flags().BoolVar(&demoStrictParity, "strict-parity", false, "break ties between equally legal encodings by declaration order instead of preferring the shortest")
	demoCmd.Flags().StringVar(&demoConvention, "cc", "sysv", "calling convention: sysv, win64, cdecl, or stdcall")
}

func runDemo(c *cobra.Command, args []string) error {
	mode, err := parseMode(demoArch)
	if err != nil {
		return err
	}
	build, err := lookupProgram(demoProgram)
	if err != nil {
		return err
	}
	conv, err := parseConvention(demoConvention)
	if err != nil {
		return err
	}

	ctx := asm.NewContext(mode)
	ctx.StrictParity = demoStrictParity

	unit, err := build(ctx)
	if err != nil {
		return fmt.Errorf("building %s: %w", demoProgram, err)
	}
	code, _, relocs, err := unit.Assemble()
	if err != nil {
		return fmt.Errorf("assembling %s: %w", demoProgram, err)
	}

	page, err := codepage.New(code, relocs)
	if err != nil {
		return fmt.Errorf("loading %s: %w", demoProgram, err)
	}
	defer page.Release()

	fn := codepage.NewCallable(page, 0, conv)
	defer fn.Close()

	result, err := fn.Call(uint64(demoN))
	if err != nil {
		return fmt.Errorf("calling %s: %w", demoProgram, err)
	}

	c.Printf("%s(%d) = %d\n", demoProgram, demoN, result)
	return nil
}
