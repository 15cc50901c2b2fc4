package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// similarityThreshold is the largest edit distance, as a fraction of the
// longer answer, still accepted as the same answer
const similarityThreshold = 0.2

// minContainedShare is the smallest fraction of the longer answer a
// contained answer must cover unless it matches whole words
const minContainedShare = 0.5

// minContainedWord is the shortest whole-word match accepted on its own
const minContainedWord = 3

var articles = []string{"the ", "a ", "an "}

// NormalizeAnswer lowercases an answer, drops a leading article, strips
// punctuation and collapses whitespace
func NormalizeAnswer(answer string) string {
	answer = strings.ToLower(strings.TrimSpace(answer))
	for _, article := range articles {
		if strings.HasPrefix(answer, article) {
			answer = answer[len(article):]
			break
		}
	}

	answer = strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return -1
		}
		return r
	}, answer)

	return strings.Join(strings.Fields(answer), " ")
}

// IsSimilarAnswer reports whether a submitted answer matches the expected one
func IsSimilarAnswer(submitted, expected string) bool {
	got := NormalizeAnswer(submitted)
	want := NormalizeAnswer(expected)

	if got == "" || want == "" {
		return got == want
	}
	if got == want {
		return true
	}
	if contains(got, want) || contains(want, got) {
		return true
	}

	a, b := []rune(got), []rune(want)
	distance := levenshteinDistance(a, b)
	return float64(distance)/float64(max(len(a), len(b))) < similarityThreshold
}

// contains reports whether short is part of long and is either a
// whole-word run of at least minContainedWord runes or covers
// minContainedShare of long
func contains(long, short string) bool {
	if !strings.Contains(long, short) {
		return false
	}
	n, m := utf8.RuneCountInString(short), utf8.RuneCountInString(long)
	if float64(n) >= minContainedShare*float64(m) {
		return true
	}
	return n >= minContainedWord && strings.Contains(" "+long+" ", " "+short+" ")
}

// levenshteinDistance calculates the edit distance between two rune slices
func levenshteinDistance(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
