package vectordb

import "testing"

func TestPointID_StableAndDistinct(t *testing.T) {
	a := PointID("Anthropic", 0)
	b := PointID("Anthropic", 0)
	if a != b {
		t.Error("same page must map to the same point id")
	}

	if PointID("Anthropic", 1) == a {
		t.Error("different page index must map to a different id")
	}
	if PointID("LangChain", 0) == a {
		t.Error("different source must map to a different id")
	}

	// 36-char RFC 4122 string form.
	if len(a) != 36 {
		t.Errorf("unexpected id format: %q", a)
	}
}

func TestAllOK(t *testing.T) {
	if !AllOK([]Check{{OK: true}, {OK: true}}) {
		t.Error("all passing checks should be OK")
	}
	if AllOK([]Check{{OK: true}, {OK: false}}) {
		t.Error("one failing check should not be OK")
	}
	if !AllOK(nil) {
		t.Error("no checks is vacuously OK")
	}
}
