package extract

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/hyperifyio/gojobsearch/internal/filter"
)

// keywordEntry maps one lowercase keyword phrase to a filter key and value.
type keywordEntry struct {
	phrase string
	key    string
	value  string
}

// The four keyword tables, applied in this order. Within a table entries are
// applied in listed order and a later match overwrites an earlier one.
var keywordTables = [][]keywordEntry{
	// Locations. "remote" flips has_remote instead of naming a place.
	{
		{"bangalore", filter.KeyLocation, "Bangalore, India"},
		{"bengaluru", filter.KeyLocation, "Bangalore, India"},
		{"hyderabad", filter.KeyLocation, "Hyderabad, India"},
		{"new york", filter.KeyLocation, "New York"},
		{"london", filter.KeyLocation, "London"},
		{"remote", filter.KeyHasRemote, "true"},
		{"india", filter.KeyLocation, "India"},
		{"usa", filter.KeyLocation, "USA"},
		{"uk", filter.KeyLocation, "UK"},
	},
	// Target level.
	{
		{"intern", filter.KeyTargetLevel, "INTERN_AND_APPRENTICE"},
		{"apprentice", filter.KeyTargetLevel, "INTERN_AND_APPRENTICE"},
		{"early", filter.KeyTargetLevel, "EARLY"},
		{"entry", filter.KeyTargetLevel, "EARLY"},
		{"experienced", filter.KeyTargetLevel, "EXPERIENCED"},
	},
	// Degree. The two-word phrase comes first so it can consume both words
	// before the bare keyword is tried.
	{
		{"pursuing degree", filter.KeyDegree, "PURSUING_DEGREE"},
		{"pursuing", filter.KeyDegree, "PURSUING_DEGREE"},
		{"bachelor", filter.KeyDegree, "BACHELORS"},
		{"bachelors", filter.KeyDegree, "BACHELORS"},
		{"master", filter.KeyDegree, "MASTERS"},
		{"masters", filter.KeyDegree, "MASTERS"},
		{"phd", filter.KeyDegree, "DOCTORATE"},
		{"doctorate", filter.KeyDegree, "DOCTORATE"},
	},
	// Employment type.
	{
		{"full time", filter.KeyEmploymentType, "FULL_TIME"},
		{"full-time", filter.KeyEmploymentType, "FULL_TIME"},
		{"intern", filter.KeyEmploymentType, "INTERN"},
		{"internship", filter.KeyEmploymentType, "INTERN"},
	},
}

// tolerantSuffixes are the token continuations a keyword may leave behind,
// so "internships" satisfies both "intern" and "internship" while
// "international" satisfies neither.
var tolerantSuffixes = []string{"s", "es", "ship", "ships"}

var (
	residualJunk = regexp.MustCompile(`[^A-Za-z0-9,.\s-]`)
	spaceRuns    = regexp.MustCompile(`\s{2,}`)
)

// Heuristic extracts filters with ordered keyword tables. It needs no
// configuration or network access and never fails.
type Heuristic struct{}

// Extract implements Extractor over the keyword tables.
func (Heuristic) Extract(_ context.Context, query string) (filter.Model, error) {
	return extractKeywords(query), nil
}

// token is one whitespace-delimited word of the query. A consumed token was
// matched exactly and is invisible to later tables; a matched token still
// participates in later tables but is excluded from the residual q.
type token struct {
	raw      string
	core     string
	consumed bool
	matched  bool
}

// extractKeywords is the pure core: immutable input, fresh model out.
func extractKeywords(query string) filter.Model {
	tokens := tokenize(query)
	var m filter.Model
	for _, table := range keywordTables {
		for _, entry := range table {
			applyEntry(&m, tokens, entry)
		}
	}
	if q := residual(tokens); q != "" {
		m.Set(filter.KeyQuery, q)
	}
	return m
}

func tokenize(query string) []*token {
	fields := strings.Fields(query)
	tokens := make([]*token, 0, len(fields))
	for _, f := range fields {
		core := strings.TrimFunc(strings.ToLower(f), func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		tokens = append(tokens, &token{raw: f, core: core})
	}
	return tokens
}

// applyEntry records the entry's value for every occurrence of its phrase,
// marking matched tokens and consuming exact ones.
func applyEntry(m *filter.Model, tokens []*token, entry keywordEntry) {
	words := strings.Split(entry.phrase, " ")
	for i := 0; i+len(words) <= len(tokens); i++ {
		run := tokens[i : i+len(words)]
		exacts, ok := matchRun(run, words)
		if !ok {
			continue
		}
		m.Set(entry.key, entry.value)
		for j, tok := range run {
			tok.matched = true
			if exacts[j] {
				tok.consumed = true
			}
		}
		i += len(words) - 1
	}
}

func matchRun(run []*token, words []string) ([]bool, bool) {
	exacts := make([]bool, len(words))
	for j, word := range words {
		tok := run[j]
		if tok.consumed {
			return nil, false
		}
		switch {
		case tok.core == word:
			exacts[j] = true
		case hasTolerantSuffix(tok.core, word):
		default:
			return nil, false
		}
	}
	return exacts, true
}

func hasTolerantSuffix(core, word string) bool {
	if !strings.HasPrefix(core, word) {
		return false
	}
	rest := core[len(word):]
	for _, s := range tolerantSuffixes {
		if rest == s {
			return true
		}
	}
	return false
}

// residual joins the untouched tokens and strips characters outside
// letters, digits, comma, period, hyphen and whitespace.
func residual(tokens []*token) string {
	var kept []string
	for _, tok := range tokens {
		if !tok.matched {
			kept = append(kept, tok.raw)
		}
	}
	s := residualJunk.ReplaceAllString(strings.Join(kept, " "), " ")
	s = spaceRuns.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
