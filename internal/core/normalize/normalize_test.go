package normalize

import "testing"

func TestNormalize_PreservesCase(t *testing.T) {
	t.Parallel()

	n := New()
	got := n.Normalize("John Smith, Ford Focus")
	if got != "John Smith, Ford Focus" {
		t.Fatalf("case must survive normalization, got %q", got)
	}
}

func TestNormalize_NFKCAndWidthFold(t *testing.T) {
	t.Parallel()

	n := New()
	// fullwidth digits and letters fold to ASCII
	if got := n.Normalize("０７７１２３４５６７８"); got != "07712345678" {
		t.Fatalf("width fold: got %q", got)
	}
	// zero-width joiner is dropped
	if got := n.Normalize("YA19‍ABC"); got != "YA19ABC" {
		t.Fatalf("format char: got %q", got)
	}
}

func TestNormalize_WhitespaceCollapse(t *testing.T) {
	t.Parallel()

	n := New()
	if got := n.Normalize("  a \t b  "); got != "a b" {
		t.Fatalf("collapse: got %q", got)
	}
	// newlines inside a run win over spaces
	if got := n.Normalize("line one \n  line two"); got != "line one\nline two" {
		t.Fatalf("newline run: got %q", got)
	}
	if got := n.Normalize(""); got != "" {
		t.Fatalf("empty: got %q", got)
	}
}

func TestNormalize_DropsControlsAndInvalidUTF8(t *testing.T) {
	t.Parallel()

	n := New()
	if got := n.Normalize("ab\x00cd"); got != "abcd" {
		t.Fatalf("NUL: got %q", got)
	}
	if got := n.Normalize("ab\xffcd"); got != "abcd" {
		t.Fatalf("invalid byte: got %q", got)
	}
}

func TestSanitize_FastPathReturnsSameString(t *testing.T) {
	t.Parallel()

	in := "clean ascii text\nwith newline"
	if got := Sanitize(in); got != in {
		t.Fatalf("clean input changed: %q", got)
	}
}
