package engine

import (
	"fmt"

	"github.com/spigell/resume-scorer/internal/rules"
)

const (
	TierNone         = 0
	TierBasic        = 1
	TierIntermediate = 2
	TierAdvanced     = 3
)

// Skills returns every vocabulary keyword present in text. A keyword listed in
// several vocabularies appears once. The order is detection order and carries no meaning.
func (e *Engine) Skills(text string) []string {
	seen := make(map[string]struct{})
	var skills []string
	for _, vocab := range e.rules.Vocabularies {
		for _, kw := range vocab.Keywords {
			if _, ok := seen[kw.Term]; ok {
				continue
			}
			if kw.Pattern.MatchString(text) {
				seen[kw.Term] = struct{}{}
				skills = append(skills, kw.Term)
			}
		}
	}
	return skills
}

// MatchCount counts the keywords of one category present in text.
func (e *Engine) MatchCount(text, category string) (int, error) {
	vocab, ok := e.rules.Vocabulary(category)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return countMatches(text, vocab), nil
}

// Tier classifies the experience level of one category.
func (e *Engine) Tier(text, category string) (int, error) {
	count, err := e.MatchCount(text, category)
	if err != nil {
		return TierNone, err
	}
	return TierFor(count), nil
}

// TierFor maps a keyword match count to a tier.
func TierFor(count int) int {
	switch {
	case count >= 4:
		return TierAdvanced
	case count >= 2:
		return TierIntermediate
	case count >= 1:
		return TierBasic
	default:
		return TierNone
	}
}

// tier is used with category names validated at compile time.
func (e *Engine) tier(text, category string) int {
	vocab, _ := e.rules.Vocabulary(category)
	return TierFor(countMatches(text, vocab))
}

func countMatches(text string, vocab rules.CompiledVocabulary) int {
	count := 0
	for _, kw := range vocab.Keywords {
		if kw.Pattern.MatchString(text) {
			count++
		}
	}
	return count
}
