package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "x86asm",
	Short: "x86asm assembles and runs small x86/x86-64 programs at runtime",
	Long:  `x86asm builds machine code directly from Go, loads it into an executable page, and can run or dump it. There is no text source format; programs are built against the architecture/x86_64 API.`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {

	rootCmd.AddGroup(&cobra.Group{
		ID:    "arch",
		Title: "Architectures",
	})

	rootCmd.AddCommand(x8664Cmd)
}
