// Package candidate holds the scorecard produced for every resume and the
// collection helpers used by filtering, reporting and export.
package candidate

import (
	"sort"
	"strings"
)

const (
	// ListSeparator joins contact fragments and supporting evidence for display.
	ListSeparator = " | "
	// SkillSeparator joins the sorted skill set for display.
	SkillSeparator = ", "
)

// Education is the education block extracted from a resume.
// GradeValue is always on a 0-10 scale.
type Education struct {
	Institution  string  `json:"institution"`
	Year         string  `json:"year"`
	Course       string  `json:"course"`
	Discipline   string  `json:"discipline"`
	GradeDisplay string  `json:"grade"`
	GradeValue   float64 `json:"grade_value"`
}

// Evidence is one supporting evidence fragment.
type Evidence struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

func (e Evidence) String() string {
	return e.Kind + ": " + e.Text
}

// Record is the scorecard of a single document. It is built once and not modified afterwards.
type Record struct {
	Name           string     `json:"name"`
	Contact        string     `json:"contact"`
	Education      Education  `json:"education"`
	Skills         []string   `json:"skills"`
	NextGenTier    int        `json:"next_gen_tier"`
	ClassicalTier  int        `json:"classical_tier"`
	Evidence       []Evidence `json:"evidence"`
	TotalScore     int        `json:"total_score"`
	RulesVersion   string     `json:"rules_version,omitempty"`
	SourcePath     string     `json:"source_path,omitempty"`
	ExtractedChars int        `json:"extracted_chars,omitempty"`
}

// SkillList returns the skill set sorted and joined for display.
func (r *Record) SkillList() string {
	skills := append([]string(nil), r.Skills...)
	sort.Strings(skills)
	return strings.Join(skills, SkillSeparator)
}

// EvidenceList returns the supporting evidence joined for display.
func (r *Record) EvidenceList() string {
	parts := make([]string, 0, len(r.Evidence))
	for _, e := range r.Evidence {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, ListSeparator)
}

// HasSkill reports whether the skill set contains skill.
func (r *Record) HasSkill(skill string) bool {
	skill = strings.ToLower(strings.TrimSpace(skill))
	for _, s := range r.Skills {
		if s == skill {
			return true
		}
	}
	return false
}
