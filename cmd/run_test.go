package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resume-scorer/internal/candidate"
	"github.com/spigell/resume-scorer/internal/extract"
)

func testRecords() *candidate.Records {
	return &candidate.Records{Items: []*candidate.Record{
		{Name: "alice", TotalScore: 40},
		{Name: "bob", TotalScore: 70},
	}}
}

func TestMenuItems(t *testing.T) {
	assert.NotContains(t, menuItems(&Config{}), PromptAppendToExcludeFile)
	assert.Contains(t, menuItems(&Config{ExcludeFile: "excluded.json"}), PromptAppendToExcludeFile)
}

func TestHandleActionYesExportsAndExits(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out", "result.json")
	config := &Config{Output: output, Filters: &FiltersConfig{}, Report: &ReportConfig{}}

	err := handleAction(PromptYes, zap.NewNop(), config, testRecords())
	assert.ErrorIs(t, err, errExit)

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	var got candidate.Records
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, []string{"bob", "alice"}, got.Names())
}

func TestHandleActionRejectsUnknownOutput(t *testing.T) {
	config := &Config{Output: "result.csv", Report: &ReportConfig{}}

	err := handleAction(PromptYes, zap.NewNop(), config, testRecords())
	assert.Error(t, err)
	assert.False(t, errors.Is(err, errExit))
}

func TestHandleActionNoAndReport(t *testing.T) {
	config := &Config{Report: &ReportConfig{Top: 1}}

	assert.ErrorIs(t, handleAction(PromptNo, zap.NewNop(), config, testRecords()), errExit)
	assert.NoError(t, handleAction(PromptReportTop, zap.NewNop(), config, testRecords()))
	assert.Error(t, handleAction("bogus", zap.NewNop(), config, testRecords()))
}

func TestAppendToExcludeFile(t *testing.T) {
	excludeFile := filepath.Join(t.TempDir(), "excluded.json")
	records := testRecords()

	err := appendToExcludeFile(zap.NewNop(), excludeFile, records)
	assert.ErrorIs(t, err, errExit)
	assert.Zero(t, records.Len())

	excluded, err := candidate.GetExcludedFromFile(excludeFile)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, excluded.Names())
	assert.Equal(t, candidate.ExcludeActorUser, excluded.Items[0].Actor)

	assert.Error(t, appendToExcludeFile(zap.NewNop(), "", testRecords()))
}

func TestNewEngineWithRulesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: campus-2026\nevidence-limit: 2\n"), 0o644))

	scorer, ruleSet, err := newEngine(path)
	require.NoError(t, err)
	assert.Equal(t, "campus-2026", scorer.RulesVersion())
	assert.Equal(t, 2, ruleSet.EvidenceLimit)

	_, _, err = newEngine(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	resume := filepath.Join(dir, "jane_doe.txt")
	require.NoError(t, os.WriteFile(resume, []byte("Skills: Python, SQL\nCGPA: 9.0/10"), 0o644))

	scorer, _, err := newEngine("")
	require.NoError(t, err)

	var out bytes.Buffer
	paths := []string{resume, filepath.Join(dir, "scan.jpg")}
	require.NoError(t, inspect(context.Background(), &out, extract.NewRegistry(nil), scorer, paths, zap.NewNop()))

	dec := json.NewDecoder(&out)

	var first candidate.Record
	require.NoError(t, dec.Decode(&first))
	assert.Equal(t, "jane_doe", first.Name)
	assert.ElementsMatch(t, []string{"python", "sql"}, first.Skills)
	assert.Equal(t, "CGPA: 9.0/10", first.Education.GradeDisplay)
	assert.Equal(t, resume, first.SourcePath)

	var second candidate.Record
	require.NoError(t, dec.Decode(&second))
	assert.Equal(t, "scan", second.Name)
	assert.Zero(t, second.TotalScore)
}

func TestValidateExtensions(t *testing.T) {
	registry := extract.NewRegistry(nil)

	assert.NoError(t, validateExtensions(registry, []string{".pdf", "DOCX", "txt"}))
	assert.ErrorIs(t, validateExtensions(registry, []string{".pdf", ".rtf"}), extract.ErrUnsupportedFormat)
	assert.Error(t, validateExtensions(registry, nil))
}

func TestPrepareFiltersSkip(t *testing.T) {
	config := &Config{Filters: &FiltersConfig{
		MinimumScore: 50,
		Skip:         []string{"minimum_score", "unknown"},
	}}

	records, err := prepareFilters(config, zap.NewNop()).RunFilters(context.Background(), testRecords())
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, records.Names())

	for _, status := range prepareFilters(config, zap.NewNop()).Describe() {
		if status.Name == "minimum_score" {
			assert.False(t, status.Enabled)
			assert.Equal(t, "disabled via --skip-filter", status.Reason)
		}
	}
}

func TestAnalyzeLogsPartialCountsWhenInterrupted(t *testing.T) {
	dir := t.TempDir()
	resume := filepath.Join(dir, "jane_doe.txt")
	require.NoError(t, os.WriteFile(resume, []byte("Skills: Python"), 0o644))

	scorer, _, err := newEngine("")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	core, observed := observer.New(zapcore.InfoLevel)
	config := &Config{Workers: 1}

	records, err := analyze(ctx, config, extract.NewRegistry(nil), scorer, []string{resume}, zap.New(core))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, records)

	entries := observed.FilterMessage("processing interrupted, partial results are discarded").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(0), fields["analyzed"])
	assert.Equal(t, int64(1), fields["total"])
}
