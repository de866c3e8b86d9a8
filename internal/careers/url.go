// Package careers builds search URLs against the Google Careers results
// endpoint from a filter model.
package careers

import (
	"net/url"
	"strings"

	"github.com/hyperifyio/gojobsearch/internal/filter"
)

// DefaultBaseURL is the careers search results endpoint.
const DefaultBaseURL = "https://www.google.com/about/careers/applications/jobs/results/"

// BuildURL serializes the model into a search URL. Parameters appear in the
// model's insertion order so identical inputs produce identical URLs. An
// empty model yields the bare base with no trailing '?'.
func BuildURL(base string, m filter.Model) string {
	if base == "" {
		base = DefaultBaseURL
	}
	var b strings.Builder
	b.WriteString(base)
	sep := "?"
	for _, p := range m.Pairs() {
		v := p.Value
		if p.Key == filter.KeyHasRemote {
			v = normalizeRemote(v)
		}
		if v == "" {
			continue
		}
		b.WriteString(sep)
		sep = "&"
		b.WriteString(encodeParam(p.Key))
		b.WriteByte('=')
		b.WriteString(encodeParam(v))
	}
	return b.String()
}

// normalizeRemote collapses any truthy spelling to the literal "true" the
// endpoint expects, and everything else to "false".
func normalizeRemote(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes":
		return "true"
	default:
		return "false"
	}
}

// encodeParam percent-encodes a query component but keeps commas literal;
// canonical locations like "Bangalore, India" must survive unescaped.
func encodeParam(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "%2C", ",")
}
