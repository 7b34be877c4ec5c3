//go:build amd64 && unix

package codepage_test

import (
	"testing"

	"github.com/ironforge-labs/x86asm/codepage"
	"github.com/ironforge-labs/x86asm/examples"
	"github.com/ironforge-labs/x86asm/internal/asm"
)

func TestPage_RunsSumOfSquares(t *testing.T) {
	unit, err := examples.SumOfSquares(asm.NewContext(asm.Mode64))
	if err != nil {
		t.Fatalf("SumOfSquares: %v", err)
	}
	code, _, relocs, err := unit.Assemble()
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	page, err := codepage.New(code, relocs)
	if err != nil {
		t.Fatalf("codepage.New: %v", err)
	}
	defer page.Release()

	fn := codepage.NewCallable(page, 0, codepage.SysV)
	defer fn.Close()

	scenarios := []struct {
		n, want uint64
	}{
		{0, 0},
		{1, 1},
		{2, 5},
		{3, 14},
		{4, 30},
	}
	for _, s := range scenarios {
		got, err := fn.Call(s.n)
		if err != nil {
			t.Fatalf("Call(%d): %v", s.n, err)
		}
		if got != s.want {
			t.Errorf("sum_of_squares(%d) = %d, want %d", s.n, got, s.want)
		}
	}
}

func TestPage_RunsFibonacci(t *testing.T) {
	unit, err := examples.Fibonacci(asm.NewContext(asm.Mode64))
	if err != nil {
		t.Fatalf("Fibonacci: %v", err)
	}
	code, _, relocs, err := unit.Assemble()
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	page, err := codepage.New(code, relocs)
	if err != nil {
		t.Fatalf("codepage.New: %v", err)
	}
	defer page.Release()

	fn := codepage.NewCallable(page, 0, codepage.SysV)
	defer fn.Close()

	scenarios := []struct {
		n, want uint64
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 2},
		{10, 55},
	}
	for _, s := range scenarios {
		got, err := fn.Call(s.n)
		if err != nil {
			t.Fatalf("Call(%d): %v", s.n, err)
		}
		if got != s.want {
			t.Errorf("fibonacci(%d) = %d, want %d", s.n, got, s.want)
		}
	}
}

func TestPage_RegistryTracksLivePages(t *testing.T) {
	before := codepage.Live()

	unit, err := examples.Fibonacci(asm.NewContext(asm.Mode64))
	if err != nil {
		t.Fatalf("Fibonacci: %v", err)
	}
	code, _, relocs, err := unit.Assemble()
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	page, err := codepage.New(code, relocs)
	if err != nil {
		t.Fatalf("codepage.New: %v", err)
	}

	if got := codepage.Live(); got != before+1 {
		t.Errorf("Live() after New = %d, want %d", got, before+1)
	}

	page.Release()
	if got := codepage.Live(); got != before {
		t.Errorf("Live() after Release = %d, want %d", got, before)
	}
}

func TestCallable_ErrorsAfterClose(t *testing.T) {
	unit, err := examples.Fibonacci(asm.NewContext(asm.Mode64))
	if err != nil {
		t.Fatalf("Fibonacci: %v", err)
	}
	code, _, relocs, err := unit.Assemble()
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	page, err := codepage.New(code, relocs)
	if err != nil {
		t.Fatalf("codepage.New: %v", err)
	}
	defer page.Release()

	fn := codepage.NewCallable(page, 0, codepage.SysV)
	fn.Close()

	if _, err := fn.Call(5); err == nil {
		t.Fatalf("Call after Close: want error, got nil")
	}
}

func TestCallable_RejectsTooManyArguments(t *testing.T) {
	unit, err := examples.Fibonacci(asm.NewContext(asm.Mode64))
	if err != nil {
		t.Fatalf("Fibonacci: %v", err)
	}
	code, _, relocs, err := unit.Assemble()
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	page, err := codepage.New(code, relocs)
	if err != nil {
		t.Fatalf("codepage.New: %v", err)
	}
	defer page.Release()

	fn := codepage.NewCallable(page, 0, codepage.SysV)
	defer fn.Close()

	_, err = fn.Call(1, 2, 3, 4, 5, 6, 7)
	if err == nil {
		t.Fatalf("Call with 7 args under sysv: want error, got nil")
	}
}
