package extractor

import (
	"regexp"
	"strings"
)

// Thresholds of the meaningfulness gate: extracted text is usable for
// prompting only when it carries at least minMeaningfulWords words longer
// than 3 characters and minContentLength characters overall.
const (
	minSentenceLength  = 10
	minContentLength   = 100
	minMeaningfulWords = 20
)

// noiseRules classify a line as document structure or metadata rather than
// content. The rules are ordered, independent and combined with OR: any
// match discards the line.
var noiseRules = []*regexp.Regexp{
	regexp.MustCompile(`^[\d.\s]+$`),
	regexp.MustCompile(`(?i)^(Page|PDF|Version|Size|Encrypted|Protected)\b[\d\s]*$`),
	regexp.MustCompile(`(?i)^\d{1,3}\s*(KB|MB|Bytes?)$`),
	regexp.MustCompile(`^\d{1,2}:\d{2}`),
	regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2,4}`),
	regexp.MustCompile(`^[-_=+*]{3,}$`),
	regexp.MustCompile(`(?i)^(Created|Modified|Author|Title|Subject|Keywords):`),
	regexp.MustCompile(`(?i)^(Helvetica|Arial|Times New Roman|Times|Courier New|Courier|Georgia|Verdana|Trebuchet MS|Bookman Old Style)\b`),
}

var (
	pureNumeric   = regexp.MustCompile(`^\d+$`)
	pureUppercase = regexp.MustCompile(`^[A-Z\s]+$`)
)

// IsNoise reports whether a single line or fragment is structural noise.
func IsNoise(line string) bool {
	s := strings.TrimSpace(line)
	if s == "" {
		return true
	}
	for _, rule := range noiseRules {
		if rule.MatchString(s) {
			return true
		}
	}
	return false
}

var sentenceTerminators = regexp.MustCompile(`[.!?]+`)

// FilterContent strips structural noise from raw concatenated text and
// reports whether what survives is meaningful enough to build a quiz from.
// Noise rules run per line; a sentence-level pass then drops fragments that
// are too short, purely numeric or purely uppercase.
func FilterContent(text string) (string, bool) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if IsNoise(line) {
			continue
		}
		lines = append(lines, strings.TrimSpace(line))
	}
	collapsed := strings.Join(strings.Fields(strings.Join(lines, " ")), " ")

	var kept []string
	for _, sentence := range sentenceTerminators.Split(collapsed, -1) {
		trimmed := strings.TrimSpace(sentence)
		if len(trimmed) <= minSentenceLength {
			continue
		}
		if IsNoise(trimmed) || pureNumeric.MatchString(trimmed) || pureUppercase.MatchString(trimmed) {
			continue
		}
		kept = append(kept, trimmed)
	}

	cleaned := strings.Join(kept, ". ")
	return cleaned, IsReadable(cleaned)
}

// IsReadable applies the meaningfulness gate to cleaned text.
func IsReadable(text string) bool {
	if len(text) < minContentLength {
		return false
	}
	meaningful := 0
	for _, word := range strings.Fields(text) {
		if len(word) > 3 {
			meaningful++
		}
	}
	return meaningful >= minMeaningfulWords
}
