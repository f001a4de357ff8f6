package rules

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidRules is returned for rule sets the engine cannot run with.
var ErrInvalidRules = errors.New("invalid rule set")

// Compiled is the immutable, ready-to-match form of a RuleSet.
// It is safe for concurrent use.
type Compiled struct {
	Version string

	Contact     *regexp.Regexp
	Institution *regexp.Regexp
	Year        *regexp.Regexp
	CGPA        *regexp.Regexp
	Percentage  *regexp.Regexp

	Courses     []Course
	Disciplines []string

	Evidence      []CompiledEvidence
	EvidenceLimit int

	Vocabularies []CompiledVocabulary
	NextGen      string
	Classical    string
}

type CompiledEvidence struct {
	Kind    string
	Pattern *regexp.Regexp
}

type CompiledVocabulary struct {
	Name     string
	Keywords []Keyword
}

// Keyword is a vocabulary term with its word-boundary literal pattern.
type Keyword struct {
	Term    string
	Pattern *regexp.Regexp
}

// Vocabulary returns the compiled vocabulary with the given name.
func (c *Compiled) Vocabulary(name string) (CompiledVocabulary, bool) {
	for _, v := range c.Vocabularies {
		if v.Name == name {
			return v, true
		}
	}
	return CompiledVocabulary{}, false
}

// Validate checks the structural constraints of the rule set without compiling patterns.
func (r *RuleSet) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: rule set is nil", ErrInvalidRules)
	}
	if len(nonEmpty(r.Contact.Indicators)) == 0 {
		return fmt.Errorf("%w: contact indicators are empty", ErrInvalidRules)
	}
	if len(nonEmpty(r.Institution.Markers)) == 0 {
		return fmt.Errorf("%w: institution markers are empty", ErrInvalidRules)
	}
	for i, c := range r.Courses {
		if strings.TrimSpace(c.Abbreviation) == "" || strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("%w: course #%d needs both abbreviation and name", ErrInvalidRules, i)
		}
	}
	if r.EvidenceLimit <= 0 {
		return fmt.Errorf("%w: evidence limit must be positive, got %d", ErrInvalidRules, r.EvidenceLimit)
	}
	for _, e := range r.Evidence {
		if strings.TrimSpace(e.Kind) == "" {
			return fmt.Errorf("%w: evidence kind is empty", ErrInvalidRules)
		}
		if len(nonEmpty(e.Indicators)) == 0 {
			return fmt.Errorf("%w: evidence %q has no indicators", ErrInvalidRules, e.Kind)
		}
	}

	seen := make(map[string]struct{}, len(r.Vocabularies))
	for _, v := range r.Vocabularies {
		if strings.TrimSpace(v.Name) == "" {
			return fmt.Errorf("%w: vocabulary name is empty", ErrInvalidRules)
		}
		if _, dup := seen[v.Name]; dup {
			return fmt.Errorf("%w: duplicate vocabulary %q", ErrInvalidRules, v.Name)
		}
		seen[v.Name] = struct{}{}
		if len(nonEmpty(v.Keywords)) == 0 {
			return fmt.Errorf("%w: vocabulary %q has no keywords", ErrInvalidRules, v.Name)
		}
	}

	for _, name := range []string{r.Tiers.NextGen, r.Tiers.Classical} {
		if _, ok := seen[name]; !ok {
			return fmt.Errorf("%w: tier vocabulary %q is not defined", ErrInvalidRules, name)
		}
	}

	return nil
}

// Compile validates the rule set and compiles every pattern.
func (r *RuleSet) Compile() (*Compiled, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	c := &Compiled{
		Version:       r.Version,
		Courses:       append([]Course(nil), r.Courses...),
		Disciplines:   append([]string(nil), r.Disciplines...),
		EvidenceLimit: r.EvidenceLimit,
		NextGen:       r.Tiers.NextGen,
		Classical:     r.Tiers.Classical,
	}

	var err error
	if c.Contact, err = compileGroup("contact", `(?:`+alternation(r.Contact.Indicators)+`)(?:[:\s]+)?([^"\n\r\t]*)`, 1); err != nil {
		return nil, err
	}
	if c.Institution, err = compileGroup("institution", `(?i)\b(?:[A-Za-z]*\s)?(?:`+alternation(r.Institution.Markers)+`)\b`, 0); err != nil {
		return nil, err
	}
	if c.Year, err = compileGroup("year", r.Year.Pattern, 0); err != nil {
		return nil, err
	}
	if c.CGPA, err = compileGroup("cgpa", r.Grade.CGPAPattern, 1); err != nil {
		return nil, err
	}
	if c.Percentage, err = compileGroup("percentage", r.Grade.PercentagePattern, 1); err != nil {
		return nil, err
	}

	for _, e := range r.Evidence {
		pattern, err := compileGroup("evidence "+e.Kind, `(?i)(?:`+alternation(e.Indicators)+`)[:\s]+([^"\n\r\t]*)`, 1)
		if err != nil {
			return nil, err
		}
		c.Evidence = append(c.Evidence, CompiledEvidence{Kind: e.Kind, Pattern: pattern})
	}

	for _, v := range r.Vocabularies {
		compiled := CompiledVocabulary{Name: v.Name}
		for _, term := range nonEmpty(v.Keywords) {
			pattern, err := KeywordPattern(term)
			if err != nil {
				return nil, fmt.Errorf("%w: vocabulary %q keyword %q: %w", ErrInvalidRules, v.Name, term, err)
			}
			compiled.Keywords = append(compiled.Keywords, Keyword{Term: term, Pattern: pattern})
		}
		c.Vocabularies = append(c.Vocabularies, compiled)
	}

	return c, nil
}

const (
	wordClass    = `[\p{L}\p{N}_]`
	nonWordClass = `[^\p{L}\p{N}_]`
)

// KeywordPattern matches term literally, anchored on word boundaries.
// Letters and digits of any script count as word characters, so "java" does
// not match inside "javaé". RE2 has no lookaround: the boundaries consume the
// neighbouring rune, which is fine for membership tests.
func KeywordPattern(term string) (*regexp.Regexp, error) {
	if term == "" {
		return nil, errors.New("empty keyword")
	}
	first, _ := utf8.DecodeRuneInString(term)
	last, _ := utf8.DecodeLastRuneInString(term)

	prefix := wordClass
	if isWordRune(first) {
		prefix = `(?:^|` + nonWordClass + `)`
	}
	suffix := wordClass
	if isWordRune(last) {
		suffix = `(?:$|` + nonWordClass + `)`
	}

	return regexp.Compile(prefix + regexp.QuoteMeta(term) + suffix)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func compileGroup(name, pattern string, minGroups int) (*regexp.Regexp, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("%w: %s pattern is empty", ErrInvalidRules, name)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %s pattern: %w", ErrInvalidRules, name, err)
	}
	if re.NumSubexp() < minGroups {
		return nil, fmt.Errorf("%w: %s pattern needs %d capture group(s)", ErrInvalidRules, name, minGroups)
	}
	return re, nil
}

func alternation(fragments []string) string {
	return strings.Join(nonEmpty(fragments), "|")
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
