package source

import (
	"fmt"

	"github.com/dgallion1/llmsplit/internal/segment"
)

// Source is one documentation site: where to fetch its llms.txt index and
// llms-full.txt blob, and which segmentation strategy the blob follows.
type Source struct {
	Name     string
	IndexURL string
	FullURL  string
	Strategy segment.Strategy
}

// Defaults returns the built-in source table. It is plain data handed to
// the pipeline; nothing in the segmentation engine consults it implicitly,
// and callers may filter or replace it wholesale.
func Defaults() []Source {
	return []Source{
		{
			Name:     "LangChain",
			IndexURL: "https://docs.langchain.com/llms.txt",
			FullURL:  "https://docs.langchain.com/llms-full.txt",
			Strategy: segment.StrategyTagged,
		},
		{
			Name:     "Anthropic",
			IndexURL: "https://docs.anthropic.com/llms.txt",
			FullURL:  "https://docs.anthropic.com/llms-full.txt",
			Strategy: segment.StrategyTagged,
		},
		{
			Name:     "Prefect",
			IndexURL: "https://docs.prefect.io/llms.txt",
			FullURL:  "https://docs.prefect.io/llms-full.txt",
			Strategy: segment.StrategyTagged,
		},
		{
			Name:     "FastMCP",
			IndexURL: "https://gofastmcp.com/llms.txt",
			FullURL:  "https://gofastmcp.com/llms-full.txt",
			Strategy: segment.StrategyTagged,
		},
		{
			Name:     "McpProtocol",
			IndexURL: "https://modelcontextprotocol.io/llms.txt",
			FullURL:  "https://modelcontextprotocol.io/llms-full.txt",
			Strategy: segment.StrategyTagged,
		},
		{
			Name:     "PydanticAI",
			IndexURL: "https://ai.pydantic.dev/llms.txt",
			FullURL:  "https://ai.pydantic.dev/llms-full.txt",
			Strategy: segment.StrategyPlain,
		},
		{
			Name:     "Zep",
			IndexURL: "https://help.getzep.com/llms.txt",
			FullURL:  "https://help.getzep.com/llms-full.txt",
			Strategy: segment.StrategyPlain,
		},
		{
			Name:     "Cursor",
			IndexURL: "https://docs.cursor.com/llms.txt",
			FullURL:  "https://docs.cursor.com/llms-full.txt",
			Strategy: segment.StrategyMultiLevel,
		},
	}
}

// Filter returns the sources whose names appear in names, preserving table
// order. An empty names slice selects everything. Unknown names are an
// error so a typo never silently processes nothing.
func Filter(all []Source, names []string) ([]Source, error) {
	if len(names) == 0 {
		return all, nil
	}
	byName := make(map[string]Source, len(all))
	for _, s := range all {
		byName[s.Name] = s
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := byName[n]; !ok {
			return nil, fmt.Errorf("unknown source %q", n)
		}
		seen[n] = true
	}
	var out []Source
	for _, s := range all {
		if seen[s.Name] {
			out = append(out, s)
		}
	}
	return out, nil
}
