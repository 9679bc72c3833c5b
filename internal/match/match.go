// Package match scores candidate person names against search queries.
package match

import "strings"

// Tier scores. The tiers form a strict ordering that the search ranking
// relies on: exact > prefix > word boundary > substring > initials, with
// the fuzzy and word-overlap fallbacks capped beneath the initials floor.
const (
	scoreExact           = 1.0
	scoreExactFold       = 0.95
	scorePrefix          = 0.8
	scoreWordBoundary    = 0.7
	scoreSubstring       = 0.6
	scoreInitials        = 0.5
	scoreAllWordsMatched = 0.4
	fuzzyFloor           = 0.3
)

// Score rates how well candidate matches query, returning a value in
// [0, 1]. Higher is better. The checks are ordered and the first
// qualifying tier wins, so callers get a stable ranking across tiers.
func Score(candidate, query string) float64 {
	if query == "" {
		return 0
	}

	if candidate == query {
		return scoreExact
	}

	lowerCandidate := strings.ToLower(candidate)
	lowerQuery := strings.ToLower(query)

	if lowerCandidate == lowerQuery {
		return scoreExactFold
	}

	if strings.HasPrefix(lowerCandidate, lowerQuery) {
		return scorePrefix
	}

	if strings.Contains(lowerCandidate, " "+lowerQuery) ||
		strings.Contains(lowerCandidate, lowerQuery+" ") {
		return scoreWordBoundary
	}

	if strings.Contains(lowerCandidate, lowerQuery) {
		return scoreSubstring
	}

	if initials(lowerCandidate) == lowerQuery {
		return scoreInitials
	}

	if score := subsequenceScore(lowerCandidate, lowerQuery); score > fuzzyFloor {
		return score
	}

	return wordOverlapScore(lowerCandidate, lowerQuery)
}

// initials concatenates the first rune of each whitespace-delimited word.
func initials(s string) string {
	var b strings.Builder
	for _, word := range strings.Fields(s) {
		for _, r := range word {
			b.WriteRune(r)
			break
		}
	}
	return b.String()
}

// subsequenceScore counts query runes matched in order (not necessarily
// contiguously) against the candidate, then applies a length-proportion
// penalty so very short queries against long names score lower.
func subsequenceScore(candidate, query string) float64 {
	candidateRunes := []rune(candidate)
	queryRunes := []rune(query)

	matched := 0
	ci := 0
	for _, qr := range queryRunes {
		for ci < len(candidateRunes) {
			if candidateRunes[ci] == qr {
				matched++
				ci++
				break
			}
			ci++
		}
	}

	ratio := float64(matched) / float64(len(queryRunes))

	penalty := float64(len(queryRunes)) / float64(len(candidateRunes))
	if penalty > 1 {
		penalty = 1
	}

	return ratio * penalty
}

// wordOverlapScore counts query words that have a containment relation,
// in either direction, with some candidate word.
func wordOverlapScore(candidate, query string) float64 {
	queryWords := strings.Fields(query)
	if len(queryWords) == 0 {
		return 0
	}
	candidateWords := strings.Fields(candidate)

	matched := 0
	for _, qw := range queryWords {
		for _, cw := range candidateWords {
			if strings.Contains(cw, qw) || strings.Contains(qw, cw) {
				matched++
				break
			}
		}
	}

	if matched == 0 {
		return 0
	}
	if matched == len(queryWords) {
		return scoreAllWordsMatched
	}
	return 0.2 + float64(matched)/float64(len(queryWords))*0.2
}
