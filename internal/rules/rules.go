// Package rules holds the rule tables driving resume extraction: contact and
// education patterns, course and discipline dictionaries, supporting evidence
// indicators and the skill vocabularies. A RuleSet is plain data that can be
// loaded from YAML; Compile turns it into the immutable form used by the engine.
package rules

const (
	// DefaultVersion names the built-in rule set.
	DefaultVersion = "builtin-1"

	// VocabularyNextGen is the built-in assistant/LLM-era vocabulary.
	VocabularyNextGen = "gen_ai"
	// VocabularyClassical is the built-in classical AI/ML vocabulary.
	VocabularyClassical = "ai_ml"
	// VocabularyGeneral is the built-in general tech vocabulary. It never feeds a tier.
	VocabularyGeneral = "general"

	KindCertification = "Certification"
	KindInternship    = "Internship"
	KindProject       = "Project"
)

// RuleSet is the swappable configuration of the extraction engine.
// Order matters for Courses, Disciplines, Evidence and Vocabularies.
type RuleSet struct {
	Version       string           `mapstructure:"version" yaml:"version"`
	Contact       ContactRules     `mapstructure:"contact" yaml:"contact"`
	Institution   InstitutionRules `mapstructure:"institution" yaml:"institution"`
	Year          YearRules        `mapstructure:"year" yaml:"year"`
	Courses       []Course         `mapstructure:"courses" yaml:"courses"`
	Disciplines   []string         `mapstructure:"disciplines" yaml:"disciplines"`
	Grade         GradeRules       `mapstructure:"grade" yaml:"grade"`
	Evidence      []EvidenceRule   `mapstructure:"evidence" yaml:"evidence"`
	EvidenceLimit int              `mapstructure:"evidence-limit" yaml:"evidence-limit"`
	Vocabularies  []Vocabulary     `mapstructure:"vocabularies" yaml:"vocabularies"`
	Tiers         TierRules        `mapstructure:"tiers" yaml:"tiers"`
}

// ContactRules lists regex fragments of words introducing contact details.
type ContactRules struct {
	Indicators []string `mapstructure:"indicators" yaml:"indicators"`
}

// InstitutionRules lists regex fragments recognizing institution names.
// Each marker may be preceded by one word in the text.
type InstitutionRules struct {
	Markers []string `mapstructure:"markers" yaml:"markers"`
}

type YearRules struct {
	Pattern string `mapstructure:"pattern" yaml:"pattern"`
}

// Course maps an abbreviation found in text to the full course name.
type Course struct {
	Abbreviation string `mapstructure:"abbreviation" yaml:"abbreviation"`
	Name         string `mapstructure:"name" yaml:"name"`
}

// GradeRules holds the two grade patterns. Each must have one capture group
// holding the numeric value. CGPA is tried first.
type GradeRules struct {
	CGPAPattern       string `mapstructure:"cgpa-pattern" yaml:"cgpa-pattern"`
	PercentagePattern string `mapstructure:"percentage-pattern" yaml:"percentage-pattern"`
}

// EvidenceRule describes one kind of supporting evidence and the words introducing it.
type EvidenceRule struct {
	Kind       string   `mapstructure:"kind" yaml:"kind"`
	Indicators []string `mapstructure:"indicators" yaml:"indicators"`
}

// Vocabulary is a named list of literal skill keywords.
type Vocabulary struct {
	Name     string   `mapstructure:"name" yaml:"name"`
	Keywords []string `mapstructure:"keywords" yaml:"keywords"`
}

// TierRules names the vocabularies scored as experience tiers.
type TierRules struct {
	NextGen   string `mapstructure:"next-gen" yaml:"next-gen"`
	Classical string `mapstructure:"classical" yaml:"classical"`
}

// Default returns a fresh copy of the built-in rule set.
func Default() *RuleSet {
	return &RuleSet{
		Version: DefaultVersion,
		Contact: ContactRules{
			Indicators: []string{`e?[,-]?mail`, `contact`, `phone`, `mobile`, `tel`, `e-mail`},
		},
		Institution: InstitutionRules{
			Markers: []string{`IIT`, `NIT`, `SVNIT`, `[A-Za-z]+ University`, `Institute of Technology`, `College`},
		},
		Year: YearRules{
			Pattern: `\b(19|20)\d{2}\b`,
		},
		Courses: []Course{
			{Abbreviation: "b.tech", Name: "Bachelor of Technology"},
			{Abbreviation: "b.e", Name: "Bachelor of Engineering"},
			{Abbreviation: "m.tech", Name: "Master of Technology"},
			{Abbreviation: "bca", Name: "Bachelor of Computer Applications"},
			{Abbreviation: "mca", Name: "Master of Computer Applications"},
			{Abbreviation: "ph.d", Name: "Doctor of Philosophy"},
		},
		Disciplines: []string{
			"computer science", "information technology", "electronics",
			"mechanical", "electrical", "civil", "computer engineering",
			"data science", "artificial intelligence",
		},
		Grade: GradeRules{
			CGPAPattern:       `\b([0-9]\.[0-9]{1,2})/10\b`,
			PercentagePattern: `\b([0-9]{1,2}(?:\.[0-9]{1,2})?)%`,
		},
		Evidence: []EvidenceRule{
			{Kind: KindCertification, Indicators: []string{"certification", "certified", "certificate"}},
			{Kind: KindInternship, Indicators: []string{"internship", "intern"}},
			{Kind: KindProject, Indicators: []string{"project", "developed", "implemented"}},
		},
		EvidenceLimit: 5,
		Vocabularies: []Vocabulary{
			{
				Name: VocabularyNextGen,
				Keywords: []string{
					"llm", "chatgpt", "gpt-4", "claude", "anthropic", "transformers",
					"langchain", "llamaindex", "vector database", "embeddings",
					"prompt engineering", "rag", "semantic search",
				},
			},
			{
				Name: VocabularyClassical,
				Keywords: []string{
					"tensorflow", "pytorch", "keras", "scikit-learn", "machine learning",
					"deep learning", "neural networks", "computer vision", "nlp",
					"natural language processing", "pandas", "numpy", "opencv",
				},
			},
			{
				Name: VocabularyGeneral,
				Keywords: []string{
					"python", "java", "javascript", "sql", "aws", "azure",
					"docker", "kubernetes", "react", "node.js", "html", "css",
				},
			},
		},
		Tiers: TierRules{
			NextGen:   VocabularyNextGen,
			Classical: VocabularyClassical,
		},
	}
}

// Vocabulary returns the vocabulary with the given name.
func (r *RuleSet) Vocabulary(name string) (Vocabulary, bool) {
	for _, v := range r.Vocabularies {
		if v.Name == name {
			return v, true
		}
	}
	return Vocabulary{}, false
}
