package core

import "testing"

func wrappedData(breaks ...int) *LineBreakData {
	return &LineBreakData{
		BreakOffsets:              breaks,
		BreakOffsetsVisibleColumn: breaks,
	}
}

func TestCache_ViewLineAccounting(t *testing.T) {
	cache := NewLineBreaksCache(4)
	cache.Set(2, wrappedData(5, 10, 15))

	if got := cache.TotalViewLineCount(); got != 6 {
		t.Fatalf("total view lines: got %d, want %d", got, 6)
	}
	if got := cache.FirstViewLineNumber(2); got != 2 {
		t.Fatalf("first view line of 2: got %d, want %d", got, 2)
	}
	if got := cache.FirstViewLineNumber(3); got != 5 {
		t.Fatalf("first view line of 3: got %d, want %d", got, 5)
	}

	modelLine, outputIndex := cache.ModelLineOfViewLine(4)
	if modelLine != 2 || outputIndex != 2 {
		t.Fatalf("view line 4: got (%d,%d), want (2,2)", modelLine, outputIndex)
	}

	modelLine, outputIndex = cache.ModelLineOfViewLine(6)
	if modelLine != 4 || outputIndex != 0 {
		t.Fatalf("view line 6: got (%d,%d), want (4,0)", modelLine, outputIndex)
	}
}

func TestCache_ClampsOutOfRangeViewLines(t *testing.T) {
	cache := NewLineBreaksCache(2)

	modelLine, outputIndex := cache.ModelLineOfViewLine(0)
	if modelLine != 1 || outputIndex != 0 {
		t.Fatalf("view line 0: got (%d,%d), want (1,0)", modelLine, outputIndex)
	}
	modelLine, _ = cache.ModelLineOfViewLine(99)
	if modelLine != 2 {
		t.Fatalf("view line 99: got model line %d, want %d", modelLine, 2)
	}
}

func TestCache_GenerationBumps(t *testing.T) {
	cache := NewLineBreaksCache(3)
	gen := cache.Generation()

	cache.Set(1, wrappedData(3, 6))
	if cache.Generation() == gen {
		t.Fatal("Set must bump the generation")
	}

	gen = cache.Generation()
	cache.InvalidateAll()
	if cache.Generation() == gen {
		t.Fatal("InvalidateAll must bump the generation")
	}
}

func TestCache_OnLinesInserted(t *testing.T) {
	cache := NewLineBreaksCache(3)
	cache.Set(2, wrappedData(5, 9))

	cache.OnLinesInserted(2, 2)

	if got := cache.LineCount(); got != 5 {
		t.Fatalf("line count: got %d, want %d", got, 5)
	}
	if cache.Get(2) != nil {
		t.Fatal("inserted line 2 must have no entry")
	}
	if cache.Get(4) == nil {
		t.Fatal("entry must shift from line 2 to line 4")
	}
}

func TestCache_OnLinesDeleted(t *testing.T) {
	cache := NewLineBreaksCache(5)
	cache.Set(2, wrappedData(5, 9))
	cache.Set(4, wrappedData(3, 7))

	cache.OnLinesDeleted(1, 2)

	if got := cache.LineCount(); got != 3 {
		t.Fatalf("line count: got %d, want %d", got, 3)
	}
	if cache.Get(2) == nil {
		t.Fatal("entry must shift from line 4 to line 2")
	}
	if got := cache.TotalViewLineCount(); got != 4 {
		t.Fatalf("total view lines: got %d, want %d", got, 4)
	}
}

func TestCache_InvalidateRange(t *testing.T) {
	cache := NewLineBreaksCache(3)
	cache.Set(1, wrappedData(2, 4))
	cache.Set(3, wrappedData(2, 4))

	cache.Invalidate(1, 2)

	if cache.Get(1) != nil {
		t.Fatal("line 1 entry must be gone")
	}
	if cache.Get(3) == nil {
		t.Fatal("line 3 entry must survive")
	}
}
