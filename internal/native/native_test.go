//go:build (linux || darwin) && (amd64 || arm64)

package native

import (
	"path/filepath"
	"testing"
)

func TestLoadRejectsEmptyPath(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestLoadMissingLibrary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "libFRSDK.so")
	lib, err := Load(path)
	if err == nil {
		_ = lib.Close()
		t.Fatal("expected dlopen error for missing library")
	}
}

func TestBufPtr(t *testing.T) {
	for _, empty := range [][]byte{nil, {}} {
		p, n := bufPtr(empty)
		if p == nil || n != 0 {
			t.Fatalf("bufPtr(%#v) = %v, %d; want non-nil pointer and length 0", empty, p, n)
		}
	}
	b := []byte{1, 2, 3}
	p, n := bufPtr(b)
	if p != &b[0] || n != 3 {
		t.Fatalf("bufPtr = %v, %d", p, n)
	}
}
