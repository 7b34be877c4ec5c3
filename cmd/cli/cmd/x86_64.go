package cmd

import "github.com/spf13/cobra"

var x8664Cmd = &cobra.Command{
	Use:     "x86_64",
	GroupID: "arch",
	Short:   "x86_64 architecture",
	Long:    `Commands that build and run built-in example programs for 32- and 64-bit Intel encoding.`,
}

func init() {
	x8664Cmd.AddCommand(demoCmd)
	x8664Cmd.AddCommand(dumpCmd)
}
