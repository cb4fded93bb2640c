package core

import (
	"errors"
	"testing"
)

func TestDocument_SetContentSplitsLines(t *testing.T) {
	doc := NewDocument([]byte("alpha\nbeta\n"), 4)

	if got := doc.LineCount(); got != 3 {
		t.Fatalf("line count: got %d, want %d", got, 3)
	}
	if got := doc.LineContent(2); got != "beta" {
		t.Fatalf("line 2: got %q, want %q", got, "beta")
	}
	// Trailing newline yields a final empty line.
	if got := doc.LineContent(3); got != "" {
		t.Fatalf("line 3: got %q, want empty", got)
	}
	if got := doc.Content(); got != "alpha\nbeta\n" {
		t.Fatalf("content: got %q, want %q", got, "alpha\nbeta\n")
	}
}

func TestDocument_EmptyDocument(t *testing.T) {
	doc := NewDocument(nil, 4)

	if !doc.IsEmpty() {
		t.Fatal("fresh document must be empty")
	}
	if got := doc.LineCount(); got != 1 {
		t.Fatalf("line count: got %d, want %d", got, 1)
	}
}

func TestDocument_EditsBumpVersion(t *testing.T) {
	doc := NewDocument([]byte("one\ntwo"), 4)
	before := doc.Version()

	if err := doc.ReplaceLine(1, "ONE"); err != nil {
		t.Fatalf("ReplaceLine: %v", err)
	}
	if doc.Version() == before {
		t.Fatal("ReplaceLine must bump the version")
	}
	if got := doc.LineContent(1); got != "ONE" {
		t.Fatalf("line 1: got %q, want %q", got, "ONE")
	}
}

func TestDocument_InsertLines(t *testing.T) {
	doc := NewDocument([]byte("one\nfour"), 4)

	if err := doc.InsertLines(2, []string{"two", "three"}); err != nil {
		t.Fatalf("InsertLines: %v", err)
	}
	if got := doc.Content(); got != "one\ntwo\nthree\nfour" {
		t.Fatalf("content: got %q", got)
	}
}

func TestDocument_RemoveLines(t *testing.T) {
	doc := NewDocument([]byte("one\ntwo\nthree"), 4)

	if err := doc.RemoveLines(1, 2); err != nil {
		t.Fatalf("RemoveLines: %v", err)
	}
	if got := doc.Content(); got != "three" {
		t.Fatalf("content: got %q, want %q", got, "three")
	}

	// Removing everything leaves one empty line.
	if err := doc.RemoveLines(1, 1); err != nil {
		t.Fatalf("RemoveLines all: %v", err)
	}
	if !doc.IsEmpty() {
		t.Fatal("document must collapse to a single empty line")
	}
}

func TestDocument_InvalidLineNumbers(t *testing.T) {
	doc := NewDocument([]byte("only"), 4)

	if err := doc.ReplaceLine(0, "x"); !errors.Is(err, ErrInvalidLineNumber) {
		t.Fatalf("ReplaceLine(0): got %v, want ErrInvalidLineNumber", err)
	}
	if err := doc.InsertLines(3, []string{"x"}); !errors.Is(err, ErrInvalidLineNumber) {
		t.Fatalf("InsertLines(3): got %v, want ErrInvalidLineNumber", err)
	}
	if err := doc.RemoveLines(1, 2); !errors.Is(err, ErrInvalidLineNumber) {
		t.Fatalf("RemoveLines(1,2): got %v, want ErrInvalidLineNumber", err)
	}
}

func TestDocument_ContentFlags(t *testing.T) {
	doc := NewDocument([]byte("plain ascii"), 4)

	if doc.MightContainNonBasicASCII() {
		t.Fatal("pure ASCII content must not set the non-ASCII flag")
	}
	if doc.MightContainRTL() {
		t.Fatal("pure ASCII content must not set the RTL flag")
	}

	if err := doc.ReplaceLine(1, "héllo"); err != nil {
		t.Fatalf("ReplaceLine: %v", err)
	}
	if !doc.MightContainNonBasicASCII() {
		t.Fatal("accented content must set the non-ASCII flag")
	}

	if err := doc.ReplaceLine(1, "שלום"); err != nil {
		t.Fatalf("ReplaceLine: %v", err)
	}
	if !doc.MightContainRTL() {
		t.Fatal("Hebrew content must set the RTL flag")
	}

	// SetContent recomputes the flags from scratch.
	doc.SetContent([]byte("back to ascii"))
	if doc.MightContainNonBasicASCII() || doc.MightContainRTL() {
		t.Fatal("SetContent must reset stale content flags")
	}
}
