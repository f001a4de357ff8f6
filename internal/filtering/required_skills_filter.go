package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-scorer/internal/candidate"
)

type requiredSkillsFilter struct {
	skills   []string
	disabled bool
	reason   string
	logger   *zap.Logger
}

// NewRequiredSkills creates a filter keeping only candidates that have every listed skill.
func NewRequiredSkills(skills []string, logger *zap.Logger) Filter {
	if logger == nil {
		logger = zap.NewNop()
	}

	normalized := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			normalized = append(normalized, s)
		}
	}

	f := &requiredSkillsFilter{skills: normalized, logger: logger}
	if len(normalized) == 0 {
		f.Disable("no required skills configured")
	}
	return f
}

func (f *requiredSkillsFilter) Name() string { return "required_skills" }

func (f *requiredSkillsFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *requiredSkillsFilter) IsEnabled() bool { return !f.disabled }

func (f *requiredSkillsFilter) Validate() error { return nil }

func (f *requiredSkillsFilter) Apply(_ context.Context, r *candidate.Records) (*candidate.Records, Step, error) {
	initial := r.Len()

	removed := r.RemoveFunc(func(rec *candidate.Record) bool {
		for _, skill := range f.skills {
			if !rec.HasSkill(skill) {
				return true
			}
		}
		return false
	})
	if len(removed) > 0 {
		f.logger.Info("excluding candidates missing required skills",
			zap.Strings("required_skills", f.skills),
			zap.Strings("excluded_candidates", removed),
			zap.Int("candidates_left", r.Len()),
		)
	}

	return r, Step{Initial: initial, Dropped: len(removed), Left: r.Len()}, nil
}

func (f *requiredSkillsFilter) Status() Status {
	details := map[string]string{}
	if len(f.skills) > 0 {
		details["skills"] = strings.Join(f.skills, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
