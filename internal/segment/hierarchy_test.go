package segment

import "testing"

func trackPages(t *testing.T, levels []int) []Page {
	t.Helper()
	pages := make([]Page, len(levels))
	var tracker hierarchyTracker
	for i, lvl := range levels {
		pages[i] = Page{Index: i, Title: title(i), MarkerLevel: lvl}
		tracker.next(&pages[i])
	}
	return pages
}

func title(i int) string {
	return string(rune('A' + i))
}

func TestHierarchy_RepeatedTopLevel(t *testing.T) {
	pages := trackPages(t, []int{1, 1, 1})
	for i, p := range pages {
		if p.ParentTitle != nil || p.ParentIndex != nil {
			t.Errorf("page %d: expected top-level, got parent %v", i, p.ParentTitle)
		}
		if p.SectionPath != p.Title {
			t.Errorf("page %d: path %q", i, p.SectionPath)
		}
	}
}

func TestHierarchy_NestedChain(t *testing.T) {
	// A(1) B(2) under A, C(2) sibling of B, D(1) new top.
	pages := trackPages(t, []int{1, 2, 2, 1})

	if pages[1].ParentIndex == nil || *pages[1].ParentIndex != 0 {
		t.Errorf("B parent index: %v", pages[1].ParentIndex)
	}
	if pages[2].ParentIndex == nil || *pages[2].ParentIndex != 0 {
		t.Errorf("C parent index: %v (siblings must share a parent)", pages[2].ParentIndex)
	}
	if pages[3].ParentIndex != nil {
		t.Errorf("D should be top-level, parent index %v", pages[3].ParentIndex)
	}
}

func TestHierarchy_DocumentStartsAtDeepLevel(t *testing.T) {
	// A document may open with a nested marker; it is top-level by default.
	pages := trackPages(t, []int{2, 1, 2})

	if pages[0].ParentTitle != nil {
		t.Errorf("leading deep page should have no parent, got %v", *pages[0].ParentTitle)
	}
	if pages[2].ParentTitle == nil || *pages[2].ParentTitle != pages[1].Title {
		t.Errorf("page 2 parent: %v, want %q", pages[2].ParentTitle, pages[1].Title)
	}
}

// Every non-nil parent reference points at an earlier page with a strictly
// shallower level, and no page in between has a level at or below the
// parent's.
func TestHierarchy_ParentInvariant(t *testing.T) {
	levels := []int{1, 2, 2, 1, 2, 1, 2, 2}
	pages := trackPages(t, levels)

	for _, p := range pages {
		if p.ParentIndex == nil {
			continue
		}
		pi := *p.ParentIndex
		if pi >= p.Index {
			t.Errorf("page %d: parent index %d is not earlier", p.Index, pi)
		}
		if pages[pi].MarkerLevel >= p.MarkerLevel {
			t.Errorf("page %d: parent level %d not shallower than %d", p.Index, pages[pi].MarkerLevel, p.MarkerLevel)
		}
		for j := pi + 1; j < p.Index; j++ {
			if pages[j].MarkerLevel <= pages[pi].MarkerLevel {
				t.Errorf("page %d: page %d between parent and child has level %d <= parent level %d",
					p.Index, j, pages[j].MarkerLevel, pages[pi].MarkerLevel)
			}
		}
	}
}
