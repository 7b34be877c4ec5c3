//go:build windows

package codepage

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

func detectPageSize() int {
	var info windows.SystemInfo
	windows.GetSystemInfo(&info)
	return int(info.PageSize)
}

func allocRW(size int) ([]byte, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

func protectRX(mem []byte) error {
	var old uint32
	return windows.VirtualProtect(addrOf(mem), uintptr(len(mem)), windows.PAGE_EXECUTE_READ, &old)
}

func freeMem(mem []byte) error {
	return windows.VirtualFree(addrOf(mem), 0, windows.MEM_RELEASE)
}

func addrOf(mem []byte) uintptr {
	if len(mem) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&mem[0]))
}
