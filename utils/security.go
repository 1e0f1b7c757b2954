// Package utils provides sanitization and validation for user-supplied
// search queries before they reach the search engine.
package utils

import (
	"context"
	"net/url"
	"regexp"
	"strings"
)

// SecurityConfig holds the policies applied during query processing.
type SecurityConfig struct {
	// MaxQueryLength defines the maximum allowed length for search queries
	MaxQueryLength int

	// DisallowedPatterns contains regex patterns that are not allowed in queries
	DisallowedPatterns []string

	// AllowedSpecialChars contains special characters that are permitted in queries
	AllowedSpecialChars []string

	// StripHTMLTags enables removal of HTML tags from queries
	StripHTMLTags bool

	// NormalizeWhitespace enables whitespace normalization
	NormalizeWhitespace bool
}

const (
	// DefaultMaxQueryLength is the default maximum query length
	DefaultMaxQueryLength = 1000
)

// DefaultSecurityConfig returns the default query policy. The allowed
// character set keeps "@" so source-native owner ids like
// "61913304@N07" stay searchable.
func DefaultSecurityConfig() *SecurityConfig {
	return &SecurityConfig{
		MaxQueryLength:      DefaultMaxQueryLength,
		DisallowedPatterns:  []string{},
		AllowedSpecialChars: []string{"-", "_", ".", "!", "?", "&", "+", "@", "#"},
		StripHTMLTags:       true,
		NormalizeWhitespace: true,
	}
}

// QuerySanitizer validates and sanitizes search queries.
type QuerySanitizer struct {
	config *SecurityConfig
}

// Common dangerous characters that may be used in injection attacks
var dangerousChars = []string{"<", ">", "'", "\"", ";", "\\", "/", "*"}

// NewQuerySanitizer creates a new query sanitizer
func NewQuerySanitizer(config *SecurityConfig) *QuerySanitizer {
	if config == nil {
		config = DefaultSecurityConfig()
	}
	return &QuerySanitizer{config: config}
}

// SanitizeQuery sanitizes a search query to prevent injection attacks:
// URL decoding, zero-width character removal, HTML tag stripping,
// script content removal, pattern checks and whitespace normalization.
func (s *QuerySanitizer) SanitizeQuery(ctx context.Context, query string) (string, error) {
	if query == "" {
		return "", nil
	}

	// URL decode the query to handle encoded attack vectors
	if decoded, err := url.QueryUnescape(query); err == nil {
		query = decoded
	}

	query = s.removeZeroWidthChars(query)

	if s.config.StripHTMLTags {
		query = s.stripHTMLTags(query)
	}

	query = s.removeScriptContent(query)

	for _, pattern := range s.config.DisallowedPatterns {
		if matched, _ := regexp.MatchString(pattern, strings.ToLower(query)); matched {
			return "", &SecurityError{
				Type:    "disallowed_pattern",
				Message: "Query contains disallowed pattern",
				Query:   query,
			}
		}
	}

	if s.config.NormalizeWhitespace {
		query = s.normalizeWhitespace(query)
	}

	return query, nil
}

// stripHTMLTags removes HTML tags from the query
func (s *QuerySanitizer) stripHTMLTags(input string) string {
	// Remove script tags and their content first
	for {
		start := strings.Index(strings.ToLower(input), "<script")
		if start == -1 {
			break
		}
		end := strings.Index(strings.ToLower(input[start:]), "</script>")
		if end == -1 {
			input = input[:start]
			break
		}
		end += start + len("</script>")
		input = input[:start] + input[end:]
	}

	// Remove any remaining HTML tags
	for {
		start := strings.Index(input, "<")
		if start == -1 {
			break
		}
		end := strings.Index(input[start:], ">")
		if end == -1 {
			input = input[:start]
			break
		}
		end += start + 1
		input = input[:start] + input[end:]
	}

	return input
}

// removeScriptContent removes script content from the query
func (s *QuerySanitizer) removeScriptContent(input string) string {
	patterns := []string{
		"javascript:",
		"data:",
		"vbscript:",
		"onload=",
		"onerror=",
		"onclick=",
		"onmouseover=",
	}

	for _, pattern := range patterns {
		input = strings.ReplaceAll(strings.ToLower(input), pattern, "")
	}

	return input
}

// normalizeWhitespace normalizes whitespace in the query
func (s *QuerySanitizer) normalizeWhitespace(input string) string {
	input = strings.ReplaceAll(input, "\t", " ")
	input = strings.ReplaceAll(input, "\r", " ")
	input = strings.ReplaceAll(input, "\n", " ")

	input = strings.TrimSpace(input)
	return strings.Join(strings.Fields(input), " ")
}

// removeZeroWidthChars removes zero-width characters from the query
func (s *QuerySanitizer) removeZeroWidthChars(input string) string {
	zeroWidthChars := []rune{
		'\u200B', // Zero width space
		'\u200C', // Zero width non-joiner
		'\u200D', // Zero width joiner
		'\uFEFF', // Zero width no-break space (BOM)
		'\u200E', // Left-to-right mark
		'\u200F', // Right-to-left mark
	}

	for _, char := range zeroWidthChars {
		input = strings.ReplaceAll(input, string(char), "")
	}

	return input
}

// ValidateQuery checks length limits, control characters and dangerous
// characters. Called before sanitization to reject malicious input
// early.
func (s *QuerySanitizer) ValidateQuery(ctx context.Context, query string) error {
	if len(query) > s.config.MaxQueryLength {
		return &SecurityError{
			Type:    "query_too_long",
			Message: "Query exceeds maximum length",
			Query:   query,
		}
	}

	for _, r := range query {
		if r == 0 || (r < 32 && r != 9 && r != 10 && r != 13) {
			return &SecurityError{
				Type:    "dangerous_character",
				Message: "Query contains null byte or control character",
				Query:   query,
			}
		}
	}

	for _, char := range dangerousChars {
		if strings.Contains(query, char) {
			allowed := false
			for _, allowedChar := range s.config.AllowedSpecialChars {
				if char == allowedChar {
					allowed = true
					break
				}
			}
			if !allowed {
				return &SecurityError{
					Type:    "dangerous_character",
					Message: "Query contains potentially dangerous character: " + char,
					Query:   query,
				}
			}
		}
	}

	return nil
}

// SecurityError represents a security-related error
type SecurityError struct {
	Type    string
	Message string
	Query   string
}

func (e *SecurityError) Error() string {
	return e.Message
}
