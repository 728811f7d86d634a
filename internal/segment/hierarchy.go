package segment

import "strings"

// SectionPathSeparator joins ancestor titles in a page's SectionPath.
const SectionPathSeparator = " > "

// hierFrame is one open ancestor on the tracker stack.
type hierFrame struct {
	level int
	title string
	index int
}

// hierarchyTracker assigns parent and breadcrumb fields to multi-level
// pages. The stack holds the currently open ancestor chain, shallowest
// level at the bottom. Feeding it boundaries in document order gives each
// page exactly one parent: the nearest preceding marker with a strictly
// shallower level, or none.
type hierarchyTracker struct {
	stack []hierFrame
}

// next consumes one page in document order and fills its SectionPath,
// ParentTitle and ParentIndex from the current ancestor chain.
func (t *hierarchyTracker) next(page *Page) {
	// Pop frames at the same or a deeper level. Consecutive markers at the
	// same level are siblings, not parent and child.
	for len(t.stack) > 0 && t.stack[len(t.stack)-1].level >= page.MarkerLevel {
		t.stack = t.stack[:len(t.stack)-1]
	}

	if len(t.stack) > 0 {
		parent := t.stack[len(t.stack)-1]
		title := parent.title
		index := parent.index
		page.ParentTitle = &title
		page.ParentIndex = &index

		titles := make([]string, 0, len(t.stack)+1)
		for _, f := range t.stack {
			titles = append(titles, f.title)
		}
		titles = append(titles, page.Title)
		page.SectionPath = strings.Join(titles, SectionPathSeparator)
	} else {
		page.SectionPath = page.Title
	}

	t.stack = append(t.stack, hierFrame{
		level: page.MarkerLevel,
		title: page.Title,
		index: page.Index,
	})
}
