package tagscan

import "strings"

// TagToken is a tag recognised at a '<' in the input.
type TagToken struct {
	// Name is the raw tag name, compared case-sensitively.
	Name string

	// Closing is true for "</name>" tokens.
	Closing bool

	// Start is the offset of the '<'.
	Start int

	// End is the offset of the terminating '>'.
	End int
}

// ScanTag classifies the '<' at offset lt. It returns false when the bytes
// there do not form a tag: '<' as the final byte, comments, doctypes and
// processing instructions ("<!", "<?"), or no '>' before end of input.
func ScanTag(input string, lt int) (TagToken, bool) {
	next := lt + 1
	if next >= len(input) {
		return TagToken{}, false
	}

	switch input[next] {
	case '!', '?':
		return TagToken{}, false
	}

	closing := input[next] == '/'
	nameStart := next
	if closing {
		nameStart++
	}

	nameEnd := nameStart
	for nameEnd < len(input) && !isNameTerminator(input[nameEnd]) {
		nameEnd++
	}

	gt := strings.IndexByte(input[nameEnd:], '>')
	if gt < 0 {
		return TagToken{}, false
	}

	return TagToken{
		Name:    input[nameStart:nameEnd],
		Closing: closing,
		Start:   lt,
		End:     nameEnd + gt,
	}, true
}

func isNameTerminator(c byte) bool {
	switch c {
	case '>', ' ', '\n', '\r', '\t':
		return true
	}
	return false
}
