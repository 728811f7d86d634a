package segment

// Strategy selects the boundary convention a documentation source follows.
type Strategy string

const (
	// StrategyTagged matches "# Title" immediately followed by a
	// "Source: <url>" line (LangChain, Anthropic, Prefect, ...).
	StrategyTagged Strategy = "with_url"
	// StrategyPlain matches bare "# Title" lines (PydanticAI, Zep).
	StrategyPlain Strategy = "header_only"
	// StrategyMultiLevel matches "# Title" and "## Title" lines and
	// reconstructs the section hierarchy from the marker depth.
	StrategyMultiLevel Strategy = "multi_level"
)

// Valid reports whether s is one of the known strategies.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyTagged, StrategyPlain, StrategyMultiLevel:
		return true
	}
	return false
}

// Page is one independently addressable section extracted from a source
// document. Index is the page's zero-based, gap-free position within its
// source and matches document order.
type Page struct {
	Index         int    `json:"index"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	ContentLength int    `json:"content_length"`

	// SourceURL is set only under StrategyTagged.
	SourceURL string `json:"source_url,omitempty"`

	// The fields below are set only under StrategyMultiLevel. ParentTitle
	// and ParentIndex are nil for top-level pages.
	MarkerLevel int     `json:"marker_level,omitempty"`
	SectionPath string  `json:"section_path,omitempty"`
	ParentTitle *string `json:"parent_title,omitempty"`
	ParentIndex *int    `json:"parent_index,omitempty"`
}

// PageSummary is the lightweight page entry carried by a SourceManifest:
// everything but the full content.
type PageSummary struct {
	Index         int     `json:"index"`
	Title         string  `json:"title"`
	SourceURL     string  `json:"source_url,omitempty"`
	MarkerLevel   int     `json:"marker_level,omitempty"`
	SectionPath   string  `json:"section_path,omitempty"`
	ParentTitle   *string `json:"parent_title,omitempty"`
	ParentIndex   *int    `json:"parent_index,omitempty"`
	ContentLength int     `json:"content_length"`
}

// SourceManifest summarizes segmentation output for one source.
type SourceManifest struct {
	Source            string        `json:"source"`
	PatternType       Strategy      `json:"pattern_type"`
	PageCount         int           `json:"page_count"`
	TotalContentChars int           `json:"total_content_chars"`
	AvgPageSize       float64       `json:"avg_page_size"`
	Pages             []PageSummary `json:"pages"`
}
