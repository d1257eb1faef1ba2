package tagscan

import "strings"

// Verdict is a heuristic judgement on whether a diagnostic points at a real
// structural problem.
type Verdict string

// Verdict constants.
const (
	VerdictLikely   Verdict = "likely"
	VerdictPossible Verdict = "possible"
	VerdictUnknown  Verdict = "unknown"
)

// Excerpt is the input surrounding a byte offset.
type Excerpt struct {
	Offset int
	Before string
	At     string
	After  string

	// Tag is the complete tag enclosing Offset, if one was found nearby.
	Tag     string
	Verdict Verdict
}

// ExcerptAt returns up to radius bytes either side of offset. Offsets outside
// input are clamped. When a tag encloses offset, a closing tag is judged a
// likely error and an opening tag a possible false positive.
func ExcerptAt(input string, offset, radius int) Excerpt {
	offset = max(0, min(offset, len(input)))
	start := max(0, offset-radius)
	end := min(len(input), offset+radius)

	e := Excerpt{
		Offset:  offset,
		Before:  input[start:offset],
		Verdict: VerdictUnknown,
	}
	if offset < len(input) {
		e.At = input[offset : offset+1]
		e.After = input[offset+1 : max(offset+1, end)]
	}

	// Scanner offsets point at '<'; other callers may land a few bytes
	// inside the tag.
	from := max(0, offset-10)
	lt := strings.LastIndexByte(input[from:min(offset+1, len(input))], '<')
	if lt < 0 {
		return e
	}
	lt += from
	if strings.IndexByte(input[lt:offset], '>') >= 0 {
		return e
	}
	gt := strings.IndexByte(input[offset:], '>')
	if gt < 0 {
		return e
	}
	gt += offset

	e.Tag = input[lt : gt+1]
	if strings.HasPrefix(e.Tag, "</") {
		e.Verdict = VerdictLikely
	} else {
		e.Verdict = VerdictPossible
	}
	return e
}
