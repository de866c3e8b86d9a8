package scrape

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// JobEntry is one discovered posting. Entries are rebuilt on every search;
// nothing persists between runs.
type JobEntry struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Location string `json:"location,omitempty"`
	Snippet  string `json:"snippet,omitempty"`
}

const snippetLimit = 300

// jobPathMarkers identify anchor targets that look like job links.
// Matching is case-sensitive.
var jobPathMarkers = []string{"/careers", "/about/careers", "/jobs/results"}

// locationHints mark a sibling text fragment as a likely location.
var locationHints = []string{",", "India", "USA", "UK", "Remote"}

// Parse extracts job entries from a results page. Anchors are tried first
// and deduplicated by query-stripped link; when that yields nothing, the
// page's JSON-LD JobPosting blocks are used instead. Malformed but
// parseable HTML degrades to zero results rather than an error.
func Parse(r io.Reader, base *url.URL) ([]JobEntry, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse results html: %w", err)
	}
	entries := dedupe(parseAnchors(doc, base))
	if len(entries) == 0 {
		entries = parseJSONLD(doc, base)
	}
	return entries, nil
}

func parseAnchors(doc *goquery.Document, base *url.URL) []JobEntry {
	var entries []JobEntry
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")

		title := strings.TrimSpace(a.Text())
		if len([]rune(title)) < 3 {
			if h := strings.TrimSpace(a.Find("h1, h2, h3, h4, h5, h6").First().Text()); h != "" {
				title = h
			}
		}
		if title == "" {
			return
		}
		if !isJobHref(href) {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		link := base.ResolveReference(ref).String()
		location, snippet := containerContext(a, title)
		entries = append(entries, JobEntry{
			Title:    title,
			Link:     link,
			Location: location,
			Snippet:  snippet,
		})
	})
	return entries
}

func isJobHref(href string) bool {
	if !strings.Contains(href, "/") {
		return false
	}
	for _, marker := range jobPathMarkers {
		if strings.Contains(href, marker) {
			return true
		}
	}
	return false
}

// containerContext inspects the anchor's immediate container: the first
// short fragment that looks like a place becomes the location, and the
// first fragment becomes the snippet regardless of the location pick.
func containerContext(a *goquery.Selection, title string) (location, snippet string) {
	parent := a.Parent()
	if parent.Length() == 0 {
		return "", ""
	}
	var fragments []string
	for _, n := range parent.Nodes {
		collectFragments(n, title, &fragments)
	}
	if len(fragments) == 0 {
		return "", ""
	}
	for _, f := range fragments {
		if len([]rune(f)) < 100 && containsAny(f, locationHints) {
			location = f
			break
		}
	}
	return location, truncate(fragments[0], snippetLimit)
}

// collectFragments gathers trimmed text nodes in document order, skipping
// blanks and the title itself.
func collectFragments(n *html.Node, title string, out *[]string) {
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" && t != title {
			*out = append(*out, t)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectFragments(c, title, out)
	}
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// dedupe keeps the first entry per link with any query string stripped.
func dedupe(entries []JobEntry) []JobEntry {
	seen := make(map[string]struct{}, len(entries))
	out := make([]JobEntry, 0, len(entries))
	for _, e := range entries {
		norm := e.Link
		if i := strings.IndexByte(norm, '?'); i >= 0 {
			norm = norm[:i]
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, e)
	}
	return out
}

// parseJSONLD scans application/ld+json blocks for JobPosting objects. This
// path keeps the structured objects' natural order and distinctness.
func parseJSONLD(doc *goquery.Document, base *url.URL) []JobEntry {
	var entries []JobEntry
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var payload any
		if err := json.Unmarshal([]byte(s.Text()), &payload); err != nil {
			return
		}
		for _, posting := range jobPostings(payload) {
			entries = append(entries, entryFromPosting(posting, base))
		}
	})
	return entries
}

func jobPostings(payload any) []map[string]any {
	var out []map[string]any
	switch v := payload.(type) {
	case []any:
		for _, item := range v {
			if obj, ok := item.(map[string]any); ok && obj["@type"] == "JobPosting" {
				out = append(out, obj)
			}
		}
	case map[string]any:
		if v["@type"] == "JobPosting" {
			out = append(out, v)
		}
	}
	return out
}

func entryFromPosting(posting map[string]any, base *url.URL) JobEntry {
	title := stringField(posting, "title")
	if title == "" {
		title = stringField(posting, "name")
	}
	link := stringField(posting, "url")
	if link == "" {
		link = base.String()
	}
	var location string
	if jl, ok := posting["jobLocation"].(map[string]any); ok {
		if addr, ok := jl["address"].(map[string]any); ok {
			for _, field := range []string{"addressLocality", "addressRegion", "addressCountry"} {
				if location = stringField(addr, field); location != "" {
					break
				}
			}
		}
	}
	return JobEntry{
		Title:    title,
		Link:     link,
		Location: location,
		Snippet:  truncate(stringField(posting, "description"), snippetLimit),
	}
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
