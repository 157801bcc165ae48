package skk

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

func TestReadFileUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dict.utf8")
	content := ";; okuri-nasi entries.\nあ /阿/\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, _, err := ReadFile(path, UTF8)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got != content {
		t.Errorf("ReadFile = %q, want %q", got, content)
	}
}

func TestReadFileEUCJP(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dict.euc")

	content := ";; okuri-nasi entries.\nあ /阿/\n"
	encoded, _, err := transform.String(japanese.EUCJP.NewEncoder(), content)
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	if err := os.WriteFile(path, []byte(encoded), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, _, err := ReadFile(path, EUCJP)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got != content {
		t.Errorf("ReadFile = %q, want %q", got, content)
	}
}
