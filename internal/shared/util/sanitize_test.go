package util

import (
	"strings"
	"testing"
)

func TestSanitizeFileNameReplacesSeparators(t *testing.T) {
	got, err := SanitizeFileName("dir/sub\\acme rfp.pdf")
	if err != nil {
		t.Fatalf("SanitizeFileName: %v", err)
	}
	if got != "dir_sub_acme rfp.pdf" {
		t.Fatalf("SanitizeFileName = %q", got)
	}
}

func TestSanitizeFileNameRejectsTraversal(t *testing.T) {
	if _, err := SanitizeFileName("../../etc/passwd"); err == nil {
		t.Fatal("expected error for traversal pattern")
	}
}

func TestSanitizeFileNameStripsControlChars(t *testing.T) {
	got, err := SanitizeFileName("rfp\x00\x1f.txt")
	if err != nil {
		t.Fatalf("SanitizeFileName: %v", err)
	}
	if got != "rfp__.txt" {
		t.Fatalf("SanitizeFileName = %q", got)
	}
}

func TestSanitizeFileNameBoundsLength(t *testing.T) {
	long := strings.Repeat("a", 300) + ".pdf"
	got, err := SanitizeFileName(long)
	if err != nil {
		t.Fatalf("SanitizeFileName: %v", err)
	}
	if len(got) != 255 {
		t.Fatalf("len = %d, want 255", len(got))
	}
	if !strings.HasSuffix(got, ".pdf") {
		t.Fatalf("extension lost: %q", got)
	}
}

func TestSanitizeFileNameRejectsEmpty(t *testing.T) {
	if _, err := SanitizeFileName("   "); err == nil {
		t.Fatal("expected error for blank name")
	}
}
