package analysis

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/21jritz/SocailSentiment-Real-Time-Sentiment-Analysis-on-Socail-Media/internal/domain"
)

// maxKeywords caps the returned ranking.
const maxKeywords = 10

// minTokenLength drops short tokens; only tokens of three or more
// characters count as keywords.
const minTokenLength = 3

var stopWords = map[string]struct{}{
	"the": {}, "be": {}, "to": {}, "of": {}, "and": {},
	"a": {}, "in": {}, "that": {}, "have": {},
}

// ExtractTopKeywords pools tokens across all texts into one multiset and
// returns the ten most frequent, most frequent first. Tokenization is
// whitespace-only: punctuation attached to a word stays part of the token.
// Ties are broken by first appearance in the pooled token stream, which
// keeps the ranking deterministic for identical input.
func ExtractTopKeywords(texts []string) []domain.KeywordCount {
	counts := make(map[string]int)
	var order []string

	for _, text := range texts {
		for _, token := range strings.Fields(strings.ToLower(text)) {
			if _, stop := stopWords[token]; stop {
				continue
			}
			if utf8.RuneCountInString(token) < minTokenLength {
				continue
			}
			if counts[token] == 0 {
				order = append(order, token)
			}
			counts[token]++
		}
	}

	ranked := make([]domain.KeywordCount, 0, len(order))
	for _, token := range order {
		ranked = append(ranked, domain.KeywordCount{Keyword: token, Count: counts[token]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > maxKeywords {
		ranked = ranked[:maxKeywords]
	}
	return ranked
}
