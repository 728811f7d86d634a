package segment

import "strings"

// buildPages converts boundary tuples plus the original (non-neutralized)
// text into ordered pages. The content of page i is the original text
// strictly between boundary i's end and boundary i+1's start (or
// end-of-text), with leading and trailing whitespace trimmed. Text before
// the first boundary is document preamble and is discarded.
func buildPages(text string, boundaries []Boundary, strategy Strategy) []Page {
	pages := make([]Page, 0, len(boundaries))
	var tracker hierarchyTracker

	for i, b := range boundaries {
		end := len(text)
		if i+1 < len(boundaries) {
			end = boundaries[i+1].Start
		}
		content := strings.TrimSpace(text[b.End:end])

		page := Page{
			Index:         i,
			Title:         b.Title,
			Content:       content,
			ContentLength: len(content),
		}
		switch strategy {
		case StrategyTagged:
			page.SourceURL = b.SourceURL
		case StrategyMultiLevel:
			page.MarkerLevel = b.Level
			tracker.next(&page)
		}
		pages = append(pages, page)
	}
	return pages
}
