package core

import "testing"

func TestSingleLineInlineDecoration_ToInlineDecoration(t *testing.T) {
	deco := SingleLineInlineDecoration{
		StartOffset:     5,
		EndOffset:       10,
		InlineClassName: "bold",
	}

	got := deco.ToInlineDecoration(3)

	want := NewRange(3, 6, 3, 11)
	if got.Range != want {
		t.Fatalf("range: got %+v, want %+v", got.Range, want)
	}
	if got.InlineClassName != "bold" {
		t.Fatalf("class: got %q, want %q", got.InlineClassName, "bold")
	}
	if got.Type != InlineDecorationRegular {
		t.Fatalf("type: got %v, want %v", got.Type, InlineDecorationRegular)
	}
}

func TestSingleLineInlineDecoration_AffectsLetterSpacing(t *testing.T) {
	deco := SingleLineInlineDecoration{
		StartOffset:                         0,
		EndOffset:                           4,
		InlineClassName:                     "ghost",
		InlineClassNameAffectsLetterSpacing: true,
	}

	got := deco.ToInlineDecoration(1)
	if got.Type != InlineDecorationRegularAffectingLetterSpacing {
		t.Fatalf("type: got %v, want %v", got.Type, InlineDecorationRegularAffectingLetterSpacing)
	}
}

func TestRange_Basics(t *testing.T) {
	r := NewRange(2, 3, 4, 1)

	if r.IsEmpty() {
		t.Fatal("multi-line range must not be empty")
	}
	if got := r.Start(); got != (Position{LineNumber: 2, Column: 3}) {
		t.Fatalf("start: got %+v", got)
	}
	if got := r.End(); got != (Position{LineNumber: 4, Column: 1}) {
		t.Fatalf("end: got %+v", got)
	}
	if !r.ContainsPosition(Position{LineNumber: 3, Column: 99}) {
		t.Fatal("interior line must be contained")
	}
	if r.ContainsPosition(Position{LineNumber: 4, Column: 2}) {
		t.Fatal("position past the end must not be contained")
	}
}

func TestRangeFromPositions_SwapsReversedEndpoints(t *testing.T) {
	got := RangeFromPositions(
		Position{LineNumber: 5, Column: 2},
		Position{LineNumber: 3, Column: 7},
	)
	want := NewRange(3, 7, 5, 2)
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestRange_IntersectsRange(t *testing.T) {
	a := NewRange(1, 1, 2, 5)
	b := NewRange(2, 5, 3, 1)
	c := NewRange(2, 6, 3, 1)

	if !a.IntersectsRange(b) {
		t.Fatal("touching ranges must intersect")
	}
	if a.IntersectsRange(c) {
		t.Fatal("disjoint ranges must not intersect")
	}
}

func TestNewViewport_TruncatesFractions(t *testing.T) {
	vp := NewViewport(1.9, 2.5, 80.7, 24.2)

	want := Viewport{Top: 1, Left: 2, Width: 80, Height: 24}
	if vp != want {
		t.Fatalf("got %+v, want %+v", vp, want)
	}
}
