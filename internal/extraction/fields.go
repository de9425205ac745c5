package extraction

import (
	"regexp"
	"strings"
)

// Stateless regex extractors for contact and date fields. Each returns a
// deduplicated list in regex scan order.

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

	// Phone formats seen across regions: international with country code,
	// US-style parenthesized area code, dashed/dotted groups, and local
	// 7-digit numbers.
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\+\d{1,3}[\s.\-]?\(?\d{1,4}\)?[\s.\-]?\d{2,4}[\s.\-]?\d{3,6}`),
		regexp.MustCompile(`\(\d{3}\)[\s.\-]?\d{3}[\s.\-]?\d{4}`),
		regexp.MustCompile(`\b\d{3}[\s.\-]\d{3}[\s.\-]\d{4}\b`),
		regexp.MustCompile(`\b01\d{9}\b`), // BD mobile format
		regexp.MustCompile(`\b\d{3}[.\-]\d{4}\b`),
	}

	urlPattern      = regexp.MustCompile(`(?:https?://|www\.)[^\s<>"']+`)
	linkedinPattern = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/in/[A-Za-z0-9_\-%]+`)
	githubPattern   = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/[A-Za-z0-9_\-]+(?:/[A-Za-z0-9_.\-]+)?`)

	// Date-like substrings: month-name, slash, ISO, and bare-year formats
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)[\s.,]+\d{4}\b`),
		regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`),
		regexp.MustCompile(`\b\d{1,2}/\d{4}\b`),
		regexp.MustCompile(`\b\d{4}-\d{2}(?:-\d{2})?\b`),
		regexp.MustCompile(`\b(?:19|20)\d{2}\b`),
	}
)

// dedupe keeps the first occurrence of each value
func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// ExtractEmails returns every email address found in the text
func ExtractEmails(text string) []string {
	return dedupe(emailPattern.FindAllString(text, -1))
}

// ExtractPhones returns every phone-number-like substring found in the text
func ExtractPhones(text string) []string {
	var found []string
	for _, re := range phonePatterns {
		found = append(found, re.FindAllString(text, -1)...)
	}
	return dedupe(found)
}

// ExtractURLs returns every URL found in the text
func ExtractURLs(text string) []string {
	matches := urlPattern.FindAllString(text, -1)
	for i, m := range matches {
		matches[i] = strings.TrimRight(m, ".,;)")
	}
	return dedupe(matches)
}

// ExtractLinkedIn returns LinkedIn profile URLs found in the text
func ExtractLinkedIn(text string) []string {
	return dedupe(linkedinPattern.FindAllString(text, -1))
}

// ExtractGitHub returns GitHub profile or repository URLs found in the text
func ExtractGitHub(text string) []string {
	return dedupe(githubPattern.FindAllString(text, -1))
}

// ExtractDates returns date-like substrings found in the text. Overlapping
// matches from different formats are deduplicated by exact string value only.
func ExtractDates(text string) []string {
	var found []string
	for _, re := range datePatterns {
		found = append(found, re.FindAllString(text, -1)...)
	}
	return dedupe(found)
}
