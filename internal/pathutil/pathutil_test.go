package pathutil

import (
	"path/filepath"
	"runtime"
	"testing"

	"golang.org/x/text/unicode/norm"
)

func TestNormalize(t *testing.T) {
	// "é" decomposed: 'e' + combining acute accent.
	decomposed := "café"
	composed := "café"

	got := Normalize(decomposed)
	if runtime.GOOS == "darwin" {
		if got != composed {
			t.Errorf("expected composed form %q, got %q", composed, got)
		}
	} else {
		if got != decomposed {
			t.Errorf("expected identity on %s, got %q", runtime.GOOS, got)
		}
	}

	// Already-composed names are stable everywhere.
	if !norm.NFC.IsNormalString(Normalize(composed)) {
		t.Error("normalized output should be NFC")
	}
}

func TestNormalizePlainASCII(t *testing.T) {
	if got := Normalize("readme.txt"); got != "readme.txt" {
		t.Errorf("expected identity for ASCII, got %q", got)
	}
}

func TestJoin(t *testing.T) {
	got := Join("/a/b", "c.txt")
	want := filepath.Join("/a/b", "c.txt")
	if got != want {
		t.Errorf("Join = %q, want %q", got, want)
	}
}
