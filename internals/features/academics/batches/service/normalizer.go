package service

import (
	"net/url"
	"regexp"
	"strings"
)

var dashRun = regexp.MustCompile(`\s*-\s*`)

// NormalizeBatchName canonicalizes a free-text batch identifier:
// URL-decode first ("+" to space, then percent-decoding, falling back to the
// raw string when decoding fails), trim, then collapse any whitespace run
// around a literal dash into a single dash ("Batch - 7" -> "Batch-7").
//
// Matching against stored batch names is exact and case-sensitive after
// normalization. Every batch call site in this service goes through this one
// function; the lookup silently returns an empty set, not an error, when the
// caller's spelling still differs from what was stored.
//
// The decode step means a literal "+" must arrive percent-encoded ("A%2B"
// normalizes to "A+"), and the result of that decode is not a fixed point:
// each call decodes exactly once, so callers must not re-normalize already
// normalized values containing "+".
func NormalizeBatchName(raw string) string {
	s := raw
	if decoded, err := url.QueryUnescape(s); err == nil {
		s = decoded
	}
	s = strings.TrimSpace(s)
	s = dashRun.ReplaceAllString(s, "-")
	return s
}
