package cmd

import (
	"fmt"

	"github.com/ironforge-labs/x86asm/internal/asm"
	"github.com/spf13/cobra"
)

var (
	dumpArch         string
	dumpProgram      string
	dumpStrictParity bool
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "assemble a built-in program and print its encoded bytes, label table, and relocations",
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().StringVar(&dumpArch, "arch", "x86_64", "target architecture: x86 or x86_64")
	dumpCmd.Flags().StringVar(&dumpProgram, "program", "sumofsquares", "built-in program: sumofsquares or fibonacci")
	dumpCmd.Flags().BoolVar(&dumpStrictParity, "strict-parity", false, "break ties between equally legal encodings by declaration order instead of preferring the shortest")
}

func runDump(c *cobra.Command, args []string) error {
	mode, err := parseMode(dumpArch)
	if err != nil {
		return err
	}
	build, err := lookupProgram(dumpProgram)
	if err != nil {
		return err
	}

	ctx := asm.NewContext(mode)
	ctx.StrictParity = dumpStrictParity

	unit, err := build(ctx)
	if err != nil {
		return fmt.Errorf("building %s: %w", dumpProgram, err)
	}
	code, labels, relocs, err := unit.Assemble()
	if err != nil {
		return fmt.Errorf("assembling %s: %w", dumpProgram, err)
	}

	c.Printf("%s: %d bytes\n", dumpProgram, len(code))
	for i := 0; i < len(code); i += 16 {
		end := i + 16
		if end > len(code) {
			end = len(code)
		}
		c.Printf("%04x  % x\n", i, code[i:end])
	}

	if len(labels) > 0 {
		c.Println("labels:")
		for name, offset := range labels {
			c.Printf("  %-10s %#04x\n", name, offset)
		}
	}

	if len(relocs) > 0 {
		c.Println("relocations:")
		for _, r := range relocs {
			c.Printf("  offset %#04x width %d -> %s (+%#04x)\n", r.Offset, r.Width, r.TargetLabel, r.TargetAt)
		}
	}
	return nil
}
