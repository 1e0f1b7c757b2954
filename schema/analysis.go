// Package schema holds the text-analysis configuration of the photo
// index. It is built once at startup and consumed in two places: the
// search engine driver applies its settings at index-creation time, and
// the index gateway runs its analyzers over documents before they are
// indexed. It is never invoked per query, but it shapes every query's
// relevance.
package schema

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ignoreChars are stripped from keyword and full-text input before
// tokenization so "don't" and "dont" index identically. Covers both
// apostrophe variants and backticks.
var ignoreChars = strings.NewReplacer("'", "", "’", "", "`", "")

// Analysis bundles the analyzer pipelines for every indexed field kind:
// keyword fields (exact, case-insensitive), full-text fields (stopwords,
// minimal stemming, synonyms), the bigram companion field and tag
// fields.
type Analysis struct {
	stopwords map[string]struct{}
	groups    [][]string
	// synonyms maps a stemmed term to the stemmed other members of its
	// group. Stemmed forms are the matching keys: stopword removal and
	// stemming run before synonym expansion.
	synonyms map[string][]string
}

// NewAnalysis builds the analysis configuration from the loaded synonym
// groups.
func NewAnalysis(groups [][]string) *Analysis {
	a := &Analysis{
		stopwords: make(map[string]struct{}, len(EnglishStopwords)),
		groups:    groups,
		synonyms:  make(map[string][]string),
	}
	for _, w := range EnglishStopwords {
		a.stopwords[w] = struct{}{}
	}

	for _, group := range groups {
		stemmed := make([]string, len(group))
		for i, term := range group {
			stemmed[i] = StemMinimalEnglish(term)
		}
		for i, key := range stemmed {
			for j, other := range stemmed {
				if i == j || other == key {
					continue
				}
				a.synonyms[key] = append(a.synonyms[key], other)
			}
		}
	}

	return a
}

// foldASCII strips diacritics so "café" matches "cafe".
func foldASCII(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeKeyword normalizes a structured field (owner id, profile
// type) into a single opaque token: punctuation stripped, ASCII-folded,
// lowercased. Enables exact, case-insensitive matching.
func (a *Analysis) NormalizeKeyword(s string) string {
	return strings.ToLower(foldASCII(ignoreChars.Replace(strings.TrimSpace(s))))
}

// NormalizeTag normalizes a tag into a near-literal label: whitespace
// removed, ASCII-folded, lowercased. No stemming; tags are not prose.
func (a *Analysis) NormalizeTag(s string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	return strings.ToLower(foldASCII(stripped))
}

// Tokenize splits prose into normalized word tokens: punctuation
// stripped, ASCII-folded, lowercased, split on non-alphanumeric runes.
func (a *Analysis) Tokenize(s string) []string {
	normalized := strings.ToLower(foldASCII(ignoreChars.Replace(s)))
	return strings.FieldsFunc(normalized, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// AnalyzeText runs the full-text pipeline over prose: tokenize, drop
// stopwords, stem, then expand synonyms keyed on the stemmed forms.
// The order is load-bearing; synonym groups are declared in their
// surface form but matched post-stemming.
func (a *Analysis) AnalyzeText(s string) []string {
	tokens := a.Tokenize(s)
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, stop := a.stopwords[tok]; stop {
			continue
		}
		stemmed := StemMinimalEnglish(tok)
		out = append(out, stemmed)
		out = append(out, a.synonyms[stemmed]...)
	}
	return out
}

// Bigrams produces adjacent-token shingles from prose, without stemming
// or synonym expansion. They feed the companion bigram field used for
// phrase-level relevance boosting, distinct from the stemmed field.
func (a *Analysis) Bigrams(s string) []string {
	tokens := a.Tokenize(s)
	if len(tokens) < 2 {
		return nil
	}
	shingles := make([]string, 0, len(tokens)-1)
	for i := 0; i+1 < len(tokens); i++ {
		shingles = append(shingles, tokens[i]+" "+tokens[i+1])
	}
	return shingles
}

// StopwordSettings returns the stopword list pushed to the engine at
// index creation.
func (a *Analysis) StopwordSettings() []string {
	return append([]string(nil), EnglishStopwords...)
}

// SynonymSettings returns the synonym map pushed to the engine at
// index creation. The engine does not stem query terms, so every group
// member is keyed under both its surface and stemmed form, each
// expanding to all the other forms in its group; a query for
// "pictures" and one for "picture" both reach the "photos" documents.
func (a *Analysis) SynonymSettings() map[string][]string {
	out := make(map[string][]string)
	for _, group := range a.groups {
		forms := make([]string, 0, len(group)*2)
		seen := make(map[string]struct{}, len(group)*2)
		for _, term := range group {
			for _, form := range []string{term, StemMinimalEnglish(term)} {
				if _, dup := seen[form]; dup {
					continue
				}
				seen[form] = struct{}{}
				forms = append(forms, form)
			}
		}
		for _, key := range forms {
			for _, other := range forms {
				if other != key {
					out[key] = append(out[key], other)
				}
			}
		}
	}
	return out
}

// Index attribute declarations consumed by the driver at index-creation
// time. Searchable order matters: it doubles as relevance priority.
var (
	SearchableAttributes = []string{"title", "caption", "description", "bigram", "tags"}
	FilterableAttributes = []string{"owner", "profile_type", "source_type", "album"}
	SortableAttributes   = []string{"taken_at", "popularity"}
)
