package segment

import (
	"errors"
	"fmt"
)

// ErrNoBoundaries is returned when a source document yields zero matches
// for its configured strategy. Callers treat this as a per-source failure
// and keep processing other sources.
var ErrNoBoundaries = errors.New("no page boundaries found")

// Process segments one source document into pages and builds its manifest.
// Boundaries are located in a neutralized copy of the text (so markers
// inside fenced code blocks cannot split a page) but content is always
// extracted from the original bytes; the neutralization is
// length-preserving, which keeps the offsets exact. Process is pure:
// identical input yields identical output.
func Process(sourceName string, strategy Strategy, text string) ([]Page, *SourceManifest, error) {
	neutralized := Neutralize(text, LocateFences(text))
	boundaries, err := FindBoundaries(neutralized, strategy)
	if err != nil {
		return nil, nil, fmt.Errorf("source %s: %w", sourceName, err)
	}
	if len(boundaries) == 0 {
		return nil, nil, fmt.Errorf("source %s: %w", sourceName, ErrNoBoundaries)
	}

	pages := buildPages(text, boundaries, strategy)
	return pages, buildManifest(sourceName, strategy, pages), nil
}

func buildManifest(sourceName string, strategy Strategy, pages []Page) *SourceManifest {
	m := &SourceManifest{
		Source:      sourceName,
		PatternType: strategy,
		PageCount:   len(pages),
		Pages:       make([]PageSummary, 0, len(pages)),
	}
	for _, p := range pages {
		m.TotalContentChars += p.ContentLength
		m.Pages = append(m.Pages, PageSummary{
			Index:         p.Index,
			Title:         p.Title,
			SourceURL:     p.SourceURL,
			MarkerLevel:   p.MarkerLevel,
			SectionPath:   p.SectionPath,
			ParentTitle:   p.ParentTitle,
			ParentIndex:   p.ParentIndex,
			ContentLength: p.ContentLength,
		})
	}
	if m.PageCount > 0 {
		m.AvgPageSize = float64(m.TotalContentChars) / float64(m.PageCount)
	}
	return m
}
