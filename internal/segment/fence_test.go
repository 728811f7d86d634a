package segment

import "testing"

func TestLocateFences_PairedBlocks(t *testing.T) {
	text := "before\n```\ncode\n```\nmiddle\n```go\nmore\n```\nafter"
	spans := LocateFences(text)

	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d: %v", len(spans), spans)
	}
	for i, s := range spans {
		if text[s.Start:s.Start+3] != "```" {
			t.Errorf("span %d does not start at a fence: %q", i, text[s.Start:s.Start+3])
		}
		if text[s.End-3:s.End] != "```" {
			t.Errorf("span %d does not end at a fence: %q", i, text[s.End-3:s.End])
		}
	}
	if spans[0].End > spans[1].Start {
		t.Errorf("spans overlap: %v", spans)
	}
}

func TestLocateFences_NoFences(t *testing.T) {
	if spans := LocateFences("# Title\nplain text\n"); len(spans) != 0 {
		t.Errorf("expected no spans, got %v", spans)
	}
}

func TestLocateFences_UnterminatedExtendsToEOF(t *testing.T) {
	text := "intro\n```\n# trapped comment\nno closer"
	spans := LocateFences(text)

	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].End != len(text) {
		t.Errorf("unterminated fence should extend to end of text: got end %d, want %d", spans[0].End, len(text))
	}
}

func TestNeutralize_DemotesMarkersInsideFences(t *testing.T) {
	text := "# Real\n```\n# comment in code\n## nested comment\nx = 1\n```\n# Also Real\n"
	out := Neutralize(text, LocateFences(text))

	if len(out) != len(text) {
		t.Fatalf("neutralization changed length: %d -> %d", len(text), len(out))
	}
	if got := findPlain(out); len(got) != 2 {
		t.Fatalf("expected 2 plain boundaries after neutralization, got %d", len(got))
	}
	if got := findMultiLevel(out); len(got) != 2 {
		t.Fatalf("expected 2 multi-level boundaries after neutralization, got %d", len(got))
	}
}

func TestNeutralize_LeavesOutsideTextIdentical(t *testing.T) {
	text := "# One\nbody\n```\n# two\n```\ntail\n# Three\n"
	spans := LocateFences(text)
	out := Neutralize(text, spans)

	if out[:spans[0].Start] != text[:spans[0].Start] {
		t.Error("text before fence was modified")
	}
	if out[spans[0].End:] != text[spans[0].End:] {
		t.Error("text after fence was modified")
	}
}

func TestNeutralize_NoFencesReturnsInput(t *testing.T) {
	text := "# Just a header\ncontent\n"
	if out := Neutralize(text, nil); out != text {
		t.Errorf("expected input unchanged, got %q", out)
	}
}

func TestNeutralize_FenceOpenerMidLine(t *testing.T) {
	// A fence that does not begin at a line start must not demote the
	// marker at the start of that same line.
	text := "# Header ```\n# inside\n``` trailing\n"
	out := Neutralize(text, LocateFences(text))

	if out[:len("# Header")] != "# Header" {
		t.Errorf("marker before the fence opener was demoted: %q", out[:len("# Header")])
	}
	if got := findPlain(out); len(got) != 1 {
		t.Errorf("expected 1 boundary, got %d", len(got))
	}
}
