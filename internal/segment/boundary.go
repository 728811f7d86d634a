package segment

import (
	"fmt"
	"regexp"
	"strings"
)

// Boundary is one structural marker located in a neutralized document.
// Start and End delimit the matched marker line(s); page content begins at
// End and runs to the next boundary's Start.
type Boundary struct {
	Start int
	End   int
	// Level is the marker depth under StrategyMultiLevel, 0 otherwise.
	Level int
	Title string
	// SourceURL is the annotation captured by the tagged pattern.
	SourceURL string
}

var (
	// "# Title" followed immediately by a "Source: <url>" line.
	taggedPattern = regexp.MustCompile(`(?m)^# (.+)$\nSource: (https?://[^\n]+)`)
	// Bare "# Title". Only safe to apply after neutralization.
	plainPattern = regexp.MustCompile(`(?m)^# (.+)$`)
	// "# Title" or "## Title"; the marker length is the level.
	multiLevelPattern = regexp.MustCompile(`(?m)^(#{1,2}) (.+)$`)
)

// FindBoundaries applies the strategy's boundary pattern against
// neutralized text and returns matches strictly ordered by offset.
func FindBoundaries(neutralized string, strategy Strategy) ([]Boundary, error) {
	switch strategy {
	case StrategyTagged:
		return findTagged(neutralized), nil
	case StrategyPlain:
		return findPlain(neutralized), nil
	case StrategyMultiLevel:
		return findMultiLevel(neutralized), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", strategy)
	}
}

func findTagged(text string) []Boundary {
	var out []Boundary
	for _, m := range taggedPattern.FindAllStringSubmatchIndex(text, -1) {
		out = append(out, Boundary{
			Start:     m[0],
			End:       m[1],
			Title:     strings.TrimSpace(text[m[2]:m[3]]),
			SourceURL: strings.TrimSpace(text[m[4]:m[5]]),
		})
	}
	return out
}

func findPlain(text string) []Boundary {
	var out []Boundary
	for _, m := range plainPattern.FindAllStringSubmatchIndex(text, -1) {
		out = append(out, Boundary{
			Start: m[0],
			End:   m[1],
			Title: strings.TrimSpace(text[m[2]:m[3]]),
		})
	}
	return out
}

func findMultiLevel(text string) []Boundary {
	var out []Boundary
	for _, m := range multiLevelPattern.FindAllStringSubmatchIndex(text, -1) {
		out = append(out, Boundary{
			Start: m[0],
			End:   m[1],
			Level: m[3] - m[2],
			Title: strings.TrimSpace(text[m[4]:m[5]]),
		})
	}
	return out
}
