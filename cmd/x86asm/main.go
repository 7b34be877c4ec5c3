package main

import "github.com/ironforge-labs/x86asm/cmd/cli/cmd"

func main() {
	cmd.Execute()
}
