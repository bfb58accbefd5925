// This package classifies raw identifier strings into persistent identifier
// schemes and normalizes decorated forms (resolver URLs, 'doi:' prefixes)
// to their canonical bare representation.
package identifiers

import (
	"net/url"
	"regexp"
	"strings"
)

// the scheme of a classified identifier
type Type string

const (
	TypeDOI    Type = "DOI"
	TypeHandle Type = "Handle"
	TypeURL    Type = "URL"
	TypeOther  Type = "Other"
)

var (
	// a bare DOI: '10.' followed by a 4-9 digit registrant code, a slash, and
	// a non-empty suffix
	doiRegex = regexp.MustCompile(`^10\.\d{4,9}/\S+$`)
	// a bare Handle: numeric prefix, slash, non-whitespace suffix
	handleRegex = regexp.MustCompile(`^\d+/\S+$`)
	// resolver/scheme decorations accepted in front of a bare DOI
	doiPrefixRegex = regexp.MustCompile(`(?i)^(doi:|https?://doi\.org/|https?://dx\.doi\.org/)`)
	// resolver decoration accepted in front of a bare Handle
	handlePrefixRegex = regexp.MustCompile(`(?i)^https?://hdl\.handle\.net/`)
)

// Detect classifies a raw identifier string, accepting decorated forms
// ('doi:10.x/y', 'https://doi.org/10.x/y', 'https://hdl.handle.net/123/abc')
// as well as bare ones.
func Detect(raw string) Type {
	s := strings.TrimSpace(raw)
	if s == "" {
		return TypeOther
	}

	if doiRegex.MatchString(doiPrefixRegex.ReplaceAllString(s, "")) {
		return TypeDOI
	}
	if handleRegex.MatchString(handlePrefixRegex.ReplaceAllString(s, "")) {
		return TypeHandle
	}
	if isHTTPURL(s) {
		return TypeURL
	}
	return TypeOther
}

// Normalize strips the recognized resolver/scheme decoration from a DOI,
// yielding its bare '10.xxxx/suffix' form. Handles, URLs and unclassified
// identifiers pass through unchanged.
func Normalize(raw string, idType Type) string {
	s := strings.TrimSpace(raw)
	if idType == TypeDOI {
		return doiPrefixRegex.ReplaceAllString(s, "")
	}
	return s
}

// reports whether the given string is a syntactically valid http(s) URL
func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}
