package codepage

import "testing"

func TestAlignUp(t *testing.T) {
	tests := []struct {
		n, align, want int
	}{
		{0, 4096, 0},
		{1, 4096, 4096},
		{4096, 4096, 4096},
		{4097, 4096, 8192},
		{10, 0, 10},
	}
	for _, tt := range tests {
		if got := alignUp(tt.n, tt.align); got != tt.want {
			t.Errorf("alignUp(%d, %d) = %d, want %d", tt.n, tt.align, got, tt.want)
		}
	}
}

func TestPatchAddressWritesLittleEndian(t *testing.T) {
	mem := make([]byte, 16)
	if err := patchAddress(mem, 4, 32, 0x11223344); err != nil {
		t.Fatalf("patchAddress: %v", err)
	}
	want := []byte{0x44, 0x33, 0x22, 0x11}
	for i, b := range want {
		if mem[4+i] != b {
			t.Errorf("mem[%d] = %#x, want %#x", 4+i, mem[4+i], b)
		}
	}
}

func TestPatchAddressRejectsOutOfBounds(t *testing.T) {
	mem := make([]byte, 8)
	if err := patchAddress(mem, 6, 32, 0); err == nil {
		t.Fatalf("patchAddress at offset 6 width 32 into an 8-byte buffer: want error, got nil")
	}
}

func TestPatchAddressTruncatesTo64Bits(t *testing.T) {
	mem := make([]byte, 16)
	if err := patchAddress(mem, 0, 64, 0x1122334455667788); err != nil {
		t.Fatalf("patchAddress: %v", err)
	}
	want := []byte{0x88, 0x77, 0x66, 0x55, 0x44, 0x33, 0x22, 0x11}
	for i, b := range want {
		if mem[i] != b {
			t.Errorf("mem[%d] = %#x, want %#x", i, mem[i], b)
		}
	}
}
