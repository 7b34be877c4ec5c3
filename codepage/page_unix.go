//go:build unix

package codepage

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

func detectPageSize() int { return unix.Getpagesize() }

func allocRW(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
}

func protectRX(mem []byte) error {
	return unix.Mprotect(mem, unix.PROT_READ|unix.PROT_EXEC)
}

func freeMem(mem []byte) error {
	return unix.Munmap(mem)
}

func addrOf(mem []byte) uintptr {
	if len(mem) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&mem[0]))
}
