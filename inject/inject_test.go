package inject

import (
	"errors"
	"testing"
)

func TestInjectTypesEachCharacter(t *testing.T) {
	f := NewFake()
	if err := f.Inject("Hi"); err != nil {
		t.Fatalf("inject: %v", err)
	}
	if len(f.Tapped) != 2 || f.Tapped[0] != "H" || f.Tapped[1] != "i" {
		t.Fatalf("tapped = %v, want [H i]", f.Tapped)
	}
}

func TestInjectEmptyTextIsNoOp(t *testing.T) {
	f := NewFake()
	if err := f.Inject(""); err != nil {
		t.Fatalf("inject: %v", err)
	}
	if len(f.Tapped) != 0 {
		t.Fatalf("tapped = %v, want none", f.Tapped)
	}
}

func TestInjectSkipsFailedCharacters(t *testing.T) {
	f := NewFake()
	f.Fail['€'] = errors.New("no key mapping")

	if err := f.Inject("a€b"); err != nil {
		t.Fatalf("inject should not fail on a skipped character: %v", err)
	}
	if len(f.Tapped) != 2 || f.Tapped[0] != "a" || f.Tapped[1] != "b" {
		t.Fatalf("tapped = %v, want [a b]", f.Tapped)
	}
}

func TestInjectPreservesCaseAndSpaces(t *testing.T) {
	f := NewFake()
	if err := f.Inject("Go 2!"); err != nil {
		t.Fatalf("inject: %v", err)
	}
	want := []string{"G", "o", " ", "2", "!"}
	if len(f.Tapped) != len(want) {
		t.Fatalf("tapped = %v, want %v", f.Tapped, want)
	}
	for i := range want {
		if f.Tapped[i] != want[i] {
			t.Errorf("tapped[%d] = %q, want %q", i, f.Tapped[i], want[i])
		}
	}
}
