package engine

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/resume-scorer/internal/candidate"
	"github.com/spigell/resume-scorer/internal/rules"
)

func evidenceOf(n int) []candidate.Evidence {
	out := make([]candidate.Evidence, n)
	for i := range out {
		out[i] = candidate.Evidence{Kind: rules.KindProject, Text: "x"}
	}
	return out
}

func skillsOf(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strings.Repeat("s", i+1)
	}
	return out
}

func TestComposeWeights(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		skills    []string
		edu       candidate.Education
		nextGen   int
		classical int
		evidence  []candidate.Evidence
		want      Breakdown
	}{
		{
			name: "nothing",
			want: Breakdown{},
		},
		{
			name: "education pieces",
			edu:  candidate.Education{Institution: "mit", Course: "Bachelor of Technology", GradeValue: 9},
			want: Breakdown{Education: 24, Total: 24},
		},
		{
			name: "grade capped at ten",
			edu:  candidate.Education{GradeValue: 12},
			want: Breakdown{Education: 10, Total: 10},
		},
		{
			name:   "skills capped",
			skills: skillsOf(13),
			want:   Breakdown{Skills: 25, Total: 25},
		},
		{
			name:   "duplicate skills counted once",
			skills: []string{"sql", "sql", "aws"},
			want:   Breakdown{Skills: 4, Total: 4},
		},
		{
			name:      "experience summed then capped",
			nextGen:   TierAdvanced,
			classical: TierAdvanced,
			want:      Breakdown{Experience: 40, Total: 40},
		},
		{
			name:    "single advanced tier",
			nextGen: TierAdvanced,
			want:    Breakdown{Experience: 30, Total: 30},
		},
		{
			name:     "evidence per item",
			evidence: evidenceOf(2),
			want:     Breakdown{Evidence: 4, Total: 4},
		},
		{
			name:     "pipes inside a fragment count as items",
			evidence: []candidate.Evidence{{Kind: rules.KindProject, Text: "chatbot | search engine|recommender"}},
			want:     Breakdown{Evidence: 6, Total: 6},
		},
		{
			name:     "evidence capped",
			evidence: evidenceOf(7),
			want:     Breakdown{Evidence: 10, Total: 10},
		},
		{
			name:      "maximum",
			skills:    skillsOf(20),
			edu:       candidate.Education{Institution: "iit", Course: "Master of Technology", GradeValue: 10},
			nextGen:   TierAdvanced,
			classical: TierAdvanced,
			evidence:  evidenceOf(5),
			want:      Breakdown{Education: 25, Skills: 25, Experience: 40, Evidence: 10, Total: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Compose(tt.skills, tt.edu, tt.nextGen, tt.classical, tt.evidence)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Total, Score(tt.skills, tt.edu, tt.nextGen, tt.classical, tt.evidence))
		})
	}
}

func TestEvidenceScoreCountsJoinedItems(t *testing.T) {
	e := newEngine(t)

	rec, ok := e.Analyze("p", "project: chatbot | search engine | recommender\n")
	require.True(t, ok)

	require.Len(t, rec.Evidence, 1)
	assert.Equal(t, "Project: chatbot | search engine | recommender", rec.EvidenceList())

	b := Compose(rec.Skills, rec.Education, rec.NextGenTier, rec.ClassicalTier, rec.Evidence)
	assert.Equal(t, 6, b.Evidence)
	assert.Equal(t, b.Total, rec.TotalScore)
}

func TestComposeRoundsHalfToEven(t *testing.T) {
	assert.Equal(t, 18, Score(nil, candidate.Education{Institution: "x", GradeValue: 8.5}, 0, 0, nil))
	assert.Equal(t, 20, Score(nil, candidate.Education{Institution: "x", GradeValue: 9.5}, 0, 0, nil))
	assert.Equal(t, 19, Score(nil, candidate.Education{Institution: "x", GradeValue: 8.7}, 0, 0, nil))
}

func TestScoreBoundOverSyntheticDocuments(t *testing.T) {
	e := newEngine(t)
	rng := rand.New(rand.NewSource(42))

	var pool []string
	for _, v := range rules.Default().Vocabularies {
		pool = append(pool, v.Keywords...)
	}
	pool = append(pool,
		"email: x@y.z\n", "phone: 123\n", "cgpa: 9.9/10", "99.99%", "100%",
		"certification: a\n", "certified: b\n", "internship: c\n", "project: d\n",
		"developed: e\n", "implemented: f\n", "iit", "nit college", "stanford university",
		"b.tech", "m.tech", "ph.d", "computer science", "2024", "1999", "\n", " ", "|", "\"",
	)

	for i := 0; i < 500; i++ {
		var b strings.Builder
		for j := rng.Intn(80); j >= 0; j-- {
			b.WriteString(pool[rng.Intn(len(pool))])
			b.WriteByte(' ')
		}

		rec, ok := e.Analyze("synthetic", b.String())
		if !ok {
			continue
		}
		assert.GreaterOrEqual(t, rec.TotalScore, 0)
		assert.LessOrEqual(t, rec.TotalScore, MaxScore)
		assert.LessOrEqual(t, len(rec.Evidence), 5)
	}
}
