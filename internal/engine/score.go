package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/spigell/resume-scorer/internal/candidate"
)

const (
	InstitutionPoints = 10
	CoursePoints      = 5
	GradeCap          = 10

	SkillPoints = 2
	SkillCap    = 25

	// The experience cap applies to the sum of both tiers, not to each tier.
	TierPoints    = 10
	ExperienceCap = 40

	EvidencePoints = 2
	EvidenceCap    = 10

	MaxScore = 100
)

// Breakdown is the contribution of every score component.
type Breakdown struct {
	Education  float64 `json:"education"`
	Skills     int     `json:"skills"`
	Experience int     `json:"experience"`
	Evidence   int     `json:"evidence"`
	Total      int     `json:"total"`
}

// Compose computes the weighted score. Each component is capped before
// summing, so Total is within [0, MaxScore]. The sum is rounded half to even.
func Compose(skills []string, edu candidate.Education, nextGenTier, classicalTier int, evidence []candidate.Evidence) Breakdown {
	var b Breakdown

	if edu.Institution != "" {
		b.Education += InstitutionPoints
	}
	if edu.Course != "" {
		b.Education += CoursePoints
	}
	if edu.GradeValue > 0 {
		b.Education += math.Min(edu.GradeValue, GradeCap)
	}

	b.Skills = min(distinct(skills)*SkillPoints, SkillCap)
	b.Experience = min((nextGenTier+classicalTier)*TierPoints, ExperienceCap)

	if n := evidenceItems(evidence); n > 0 {
		b.Evidence = min(n*EvidencePoints, EvidenceCap)
	}

	b.Total = int(math.RoundToEven(b.Education + float64(b.Skills+b.Experience+b.Evidence)))
	if b.Total < 0 || b.Total > MaxScore {
		panic(fmt.Sprintf("score %d out of range [0, %d]: %+v", b.Total, MaxScore, b))
	}

	return b
}

// Score returns the total score used for ranking.
func Score(skills []string, edu candidate.Education, nextGenTier, classicalTier int, evidence []candidate.Evidence) int {
	return Compose(skills, edu, nextGenTier, classicalTier, evidence).Total
}

func distinct(values []string) int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}

// evidenceItems counts the pipe-delimited pieces of the joined evidence list.
// A fragment that itself contains pipes counts as several items.
func evidenceItems(evidence []candidate.Evidence) int {
	if len(evidence) == 0 {
		return 0
	}
	n := len(evidence)
	for _, e := range evidence {
		n += strings.Count(e.String(), "|")
	}
	return n
}
