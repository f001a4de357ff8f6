// Package engine turns normalized resume text into a scored candidate record.
//
// Every method of Engine is a pure function of its input: an Engine holds only
// the compiled rule set and can be shared by any number of goroutines.
package engine

import (
	"errors"
	"strings"

	"github.com/spigell/resume-scorer/internal/candidate"
	"github.com/spigell/resume-scorer/internal/rules"
)

var ErrUnknownCategory = errors.New("unknown vocabulary category")

type Engine struct {
	rules *rules.Compiled
}

// New creates an engine bound to the compiled rule set.
func New(compiled *rules.Compiled) (*Engine, error) {
	if compiled == nil {
		return nil, errors.New("compiled rules are required")
	}
	return &Engine{rules: compiled}, nil
}

// NewDefault creates an engine with the built-in rule set.
func NewDefault() (*Engine, error) {
	compiled, err := rules.Default().Compile()
	if err != nil {
		return nil, err
	}
	return New(compiled)
}

func (e *Engine) RulesVersion() string {
	return e.rules.Version
}

// Analyze extracts and scores one document. Empty text means the extractor
// produced nothing: the returned record is blank and ok is false, so callers
// must not emit it.
func (e *Engine) Analyze(name, text string) (rec *candidate.Record, ok bool) {
	return e.AnalyzeDocument(name, "", text)
}

// AnalyzeDocument is Analyze for text extracted from the file at path, which is
// recorded on the returned record.
func (e *Engine) AnalyzeDocument(name, path, text string) (rec *candidate.Record, ok bool) {
	if text == "" {
		return &candidate.Record{Name: name, SourcePath: path}, false
	}

	text = strings.ToLower(text)

	education := e.Education(text)
	skills := e.Skills(text)
	nextGen := e.tier(text, e.rules.NextGen)
	classical := e.tier(text, e.rules.Classical)
	evidence := e.Evidence(text)

	return &candidate.Record{
		Name:           name,
		Contact:        e.Contact(text),
		Education:      education,
		Skills:         skills,
		NextGenTier:    nextGen,
		ClassicalTier:  classical,
		Evidence:       evidence,
		TotalScore:     Score(skills, education, nextGen, classical, evidence),
		RulesVersion:   e.rules.Version,
		SourcePath:     path,
		ExtractedChars: len([]rune(text)),
	}, true
}
