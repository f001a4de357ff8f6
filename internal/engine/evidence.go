package engine

import (
	"strings"

	"github.com/spigell/resume-scorer/internal/candidate"
)

// Evidence collects supporting evidence kind by kind, in rule order, keeping
// text order within a kind, and truncates to the configured limit.
func (e *Engine) Evidence(text string) []candidate.Evidence {
	limit := e.rules.EvidenceLimit
	var out []candidate.Evidence
	for _, rule := range e.rules.Evidence {
		for _, m := range rule.Pattern.FindAllStringSubmatch(text, -1) {
			if len(out) == limit {
				return out
			}
			out = append(out, candidate.Evidence{Kind: rule.Kind, Text: strings.TrimSpace(m[1])})
		}
	}
	return out
}
