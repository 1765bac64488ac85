package analytics

import (
	"sort"
	"strings"
	"unicode"

	"github.com/dtnitsch/legaldoc/models"
)

type Analytics struct{}

// commonWords are ignored in frequency analysis: English function words and
// the boilerplate vocabulary every legal document shares.
var commonWords = map[string]struct{}{
	"a": {}, "about": {}, "after": {}, "all": {}, "also": {}, "an": {}, "and": {},
	"any": {}, "are": {}, "as": {}, "at": {}, "be": {}, "been": {}, "before": {},
	"being": {}, "between": {}, "both": {}, "but": {}, "by": {}, "can": {},
	"could": {}, "did": {}, "do": {}, "does": {}, "each": {}, "either": {},
	"for": {}, "from": {}, "had": {}, "has": {}, "have": {}, "he": {}, "her": {},
	"his": {}, "how": {}, "i": {}, "if": {}, "in": {}, "into": {}, "is": {},
	"it": {}, "its": {}, "may": {}, "more": {}, "most": {}, "must": {}, "no": {},
	"nor": {}, "not": {}, "of": {}, "on": {}, "only": {}, "or": {}, "other": {},
	"our": {}, "out": {}, "over": {}, "own": {}, "same": {}, "she": {},
	"should": {}, "so": {}, "some": {}, "such": {}, "than": {}, "that": {},
	"the": {}, "their": {}, "them": {}, "then": {}, "there": {}, "these": {},
	"they": {}, "this": {}, "those": {}, "through": {}, "to": {}, "under": {},
	"until": {}, "upon": {}, "us": {}, "was": {}, "we": {}, "were": {},
	"what": {}, "when": {}, "where": {}, "whether": {}, "which": {}, "while": {},
	"who": {}, "whom": {}, "will": {}, "with": {}, "within": {}, "without": {},
	"would": {}, "you": {}, "your": {},

	// Legal boilerplate
	"shall": {}, "hereby": {}, "herein": {}, "hereof": {}, "hereto": {},
	"hereunder": {}, "thereof": {}, "therein": {}, "thereto": {},
	"whereas": {}, "pursuant": {}, "including": {}, "applicable": {},
	"section": {}, "article": {}, "clause": {}, "paragraph": {},
}

// IsStopword checks if a word is a common stopword that should be filtered out.
func IsStopword(word string) bool {
	_, exists := commonWords[strings.ToLower(word)]
	return exists
}

// WordFrequency counts the content words of text. Words are lowercased and
// stripped of surrounding punctuation; digits-only tokens are dropped.
func (a *Analytics) WordFrequency(text string) map[string]int {
	frequencies := make(map[string]int)

	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if word == "" || IsStopword(word) || isNumeric(word) {
			continue
		}
		frequencies[word]++
	}

	return frequencies
}

// TopKeywords returns the n most frequent words, ties broken alphabetically.
func TopKeywords(frequencies map[string]int, n int) []models.Keyword {
	counts := make([]models.Keyword, 0, len(frequencies))
	for k, v := range frequencies {
		counts = append(counts, models.Keyword{Word: k, Count: v})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Word < counts[j].Word
	})

	if n < 0 {
		n = 0
	}
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

func isNumeric(word string) bool {
	for _, r := range word {
		if !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}
