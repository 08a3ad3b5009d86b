package utils

import (
	"regexp"
	"strings"
)

var numericTokenRe = regexp.MustCompile(`^\d+$`)

// SpellCorrector corrects tokens against the dictionary's known-word
// list using Damerau-Levenshtein distance. Candidates are bucketed by
// first letter and filtered by length so the scan stays cheap.
type SpellCorrector struct {
	dict    *MedicalDictionary
	buckets map[byte][]string
}

// NewSpellCorrector builds first-letter buckets from the dictionary.
// The dictionary word list is sorted, so bucket order (and therefore
// tie-breaking) is deterministic.
func NewSpellCorrector(dict *MedicalDictionary) *SpellCorrector {
	buckets := make(map[byte][]string)
	for _, w := range dict.KnownWords {
		if w == "" {
			continue
		}
		first := w[0]
		buckets[first] = append(buckets[first], w)
	}
	return &SpellCorrector{dict: dict, buckets: buckets}
}

// Correct returns the best dictionary match for a token, or the token
// unchanged when no candidate is within distance 2. Short tokens,
// stopwords, numbers and email-like tokens are never corrected.
func (sc *SpellCorrector) Correct(token string) string {
	token = strings.ToLower(token)
	if len(token) <= 3 {
		return token
	}
	if sc.dict.IsStopWord(token) {
		return token
	}
	if numericTokenRe.MatchString(token) || strings.Contains(token, "@") {
		return token
	}

	best := token
	bestDist := maxEditDistance + 1
	for _, candidate := range sc.candidates(token) {
		dist := editDistance(token, candidate)
		if dist < bestDist {
			bestDist = dist
			best = candidate
		}
	}
	if bestDist <= maxEditDistance {
		return best
	}
	return token
}

// CorrectSentence corrects every token of a whitespace-separated
// sentence, preserving token order.
func (sc *SpellCorrector) CorrectSentence(sentence string) string {
	if sentence == "" {
		return sentence
	}
	tokens := strings.Fields(sentence)
	for i, t := range tokens {
		tokens[i] = sc.Correct(t)
	}
	return strings.Join(tokens, " ")
}

const maxEditDistance = 2

// candidates returns known words starting with the token's first letter
// whose length differs by at most 3.
func (sc *SpellCorrector) candidates(token string) []string {
	bucket := sc.buckets[token[0]]
	if len(bucket) == 0 {
		return nil
	}
	out := make([]string, 0, len(bucket))
	for _, c := range bucket {
		delta := len(c) - len(token)
		if delta < 0 {
			delta = -delta
		}
		if delta <= 3 {
			out = append(out, c)
		}
	}
	return out
}

// editDistance computes Damerau-Levenshtein distance (insert, delete,
// substitute, transpose adjacent) between two lowercase tokens.
func editDistance(a, b string) int {
	la, lb := len(a), len(b)
	dp := make([][]int, la+1)
	for i := range dp {
		dp[i] = make([]int, lb+1)
		dp[i][0] = i
	}
	for j := 0; j <= lb; j++ {
		dp[0][j] = j
	}

	for i := 1; i <= la; i++ {
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			d := min3(
				dp[i-1][j]+1,
				dp[i][j-1]+1,
				dp[i-1][j-1]+cost,
			)
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				if t := dp[i-2][j-2] + 1; t < d {
					d = t
				}
			}
			dp[i][j] = d
		}
	}
	return dp[la][lb]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
