package cmd

import (
	"fmt"

	"github.com/ironforge-labs/x86asm/codepage"
)

func parseConvention(s string) (codepage.CallingConvention, error) {
	switch s {
	case "sysv":
		return codepage.SysV, nil
	case "win64":
		return codepage.Win64, nil
	case "cdecl":
		return codepage.Cdecl32, nil
	case "stdcall":
		return codepage.Stdcall32, nil
	default:
		return 0, fmt.Errorf("unknown calling convention %q (want sysv, win64, cdecl, or stdcall)", s)
	}
}
