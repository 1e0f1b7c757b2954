package schema

// EnglishStopwords is the fixed stopword list applied to full-text
// fields. It is deliberately small and frozen: changing it silently
// changes relevance for every indexed document.
var EnglishStopwords = []string{
	"a", "an", "and", "are", "as", "at", "be", "but", "by",
	"for", "if", "in", "into", "is", "no", "not", "of", "on",
	"or", "s", "such", "t", "that", "the", "their", "then",
	"there", "these", "they", "this", "to", "was", "with",
}
