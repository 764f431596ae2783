package extract

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExtractText_MissingFile(t *testing.T) {
	e := NewPDFExtractor()

	_, err := e.ExtractText(filepath.Join(t.TempDir(), "does-not-exist.pdf"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestExtractText_NotAPDF(t *testing.T) {
	e := NewPDFExtractor()

	path := filepath.Join(t.TempDir(), "garbage.pdf")
	if err := os.WriteFile(path, []byte("this is not a pdf document"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := e.ExtractText(path)
	if err == nil {
		t.Fatal("Expected error for non-PDF content")
	}
}

func TestCleanPageText(t *testing.T) {
	got := cleanPageText("  hello\x00 world \n")
	if got != "hello world" {
		t.Errorf("cleanPageText = %q, want %q", got, "hello world")
	}
}
