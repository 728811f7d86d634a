package segment

import "strings"

const fenceDelim = "```"

// Span is a half-open [Start, End) byte range within a document.
type Span struct {
	Start int
	End   int
}

// LocateFences returns the spans of every fenced literal block in text,
// non-overlapping and ordered by start. A span covers the opening delimiter
// through the end of the closing delimiter. An unterminated fence extends
// to the end of the text rather than being dropped.
func LocateFences(text string) []Span {
	var spans []Span
	pos := 0
	for {
		open := strings.Index(text[pos:], fenceDelim)
		if open < 0 {
			return spans
		}
		open += pos
		rest := open + len(fenceDelim)
		closing := strings.Index(text[rest:], fenceDelim)
		if closing < 0 {
			return append(spans, Span{Start: open, End: len(text)})
		}
		end := rest + closing + len(fenceDelim)
		spans = append(spans, Span{Start: open, End: end})
		pos = end
	}
}

// Neutralize returns a copy of text where any line inside a fenced region
// that begins with a run of '#' followed by a space has that space
// overwritten with another '#', so the line no longer matches any boundary
// pattern. The output has the same length as the input, which is what lets
// boundary offsets found in the neutralized copy be reused against the
// original text. Everything outside the fence spans is byte-identical.
func Neutralize(text string, fences []Span) string {
	if len(fences) == 0 {
		return text
	}
	buf := []byte(text)
	for _, f := range fences {
		// Markers are line-anchored: start from the first line that begins
		// at or after the fence opener.
		ls := f.Start
		if ls > 0 && text[ls-1] != '\n' {
			nl := strings.IndexByte(text[ls:f.End], '\n')
			if nl < 0 {
				continue
			}
			ls += nl + 1
		}
		for ls < f.End {
			demoteMarker(buf, ls, f.End)
			nl := strings.IndexByte(text[ls:f.End], '\n')
			if nl < 0 {
				break
			}
			ls += nl + 1
		}
	}
	return string(buf)
}

// demoteMarker rewrites a leading "#... " prefix in place, within
// buf[lineStart:limit].
func demoteMarker(buf []byte, lineStart, limit int) {
	i := lineStart
	for i < limit && buf[i] == '#' {
		i++
	}
	if i > lineStart && i < limit && buf[i] == ' ' {
		buf[i] = '#'
	}
}
