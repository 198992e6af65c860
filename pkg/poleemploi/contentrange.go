package poleemploi

import (
	"regexp"
	"strconv"
)

// The header looks like "offres 0-149/300749". The label token is not pinned
// down: the service has shipped both "offres" and "offresEmploi", so any
// single word is accepted. Anything else is a parse failure, never a guess.
var contentRangeRE = regexp.MustCompile(`^\s*\S+ (\d+)-(\d+)/(\d+)\s*$`)

// ParseContentRange decomposes a Content-Range header value of the form
// "<label> <first>-<last>/<max>" into its numeric parts. It is a pure
// function of the header string.
func ParseContentRange(header string) (ContentRange, error) {
	m := contentRangeRE.FindStringSubmatch(header)
	if m == nil {
		return ContentRange{}, &ParseError{
			Reason: "malformed Content-Range header " + strconv.Quote(header),
		}
	}

	first, err := strconv.Atoi(m[1])
	if err != nil {
		return ContentRange{}, &ParseError{Reason: "Content-Range first index", Err: err}
	}
	last, err := strconv.Atoi(m[2])
	if err != nil {
		return ContentRange{}, &ParseError{Reason: "Content-Range last index", Err: err}
	}
	max, err := strconv.Atoi(m[3])
	if err != nil {
		return ContentRange{}, &ParseError{Reason: "Content-Range max results", Err: err}
	}

	return ContentRange{FirstIndex: first, LastIndex: last, MaxResults: max}, nil
}
