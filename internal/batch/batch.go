// Package batch runs the extractor and the engine over many documents with
// bounded parallelism. A failing document never affects the others.
package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-scorer/internal/candidate"
	"github.com/spigell/resume-scorer/internal/extract"
	"github.com/spigell/resume-scorer/internal/logger"
)

const DefaultWorkers = 10

var ErrPanicked = errors.New("document processing panicked")

// Document is one resume file. Name is used as the candidate name.
type Document struct {
	Name string
	Path string
}

// Documents turns file paths into documents named after the file stem.
func Documents(paths []string) []Document {
	docs := make([]Document, 0, len(paths))
	for _, path := range paths {
		base := filepath.Base(path)
		docs = append(docs, Document{
			Name: strings.TrimSuffix(base, filepath.Ext(base)),
			Path: path,
		})
	}
	return docs
}

// Analyzer is satisfied by *engine.Engine.
type Analyzer interface {
	AnalyzeDocument(name, path, text string) (*candidate.Record, bool)
}

type Progress struct {
	Done  int
	Total int
}

type Failure struct {
	Document Document
	Err      error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Document.Name, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

type Result struct {
	Records  *candidate.Records
	Skipped  []Document
	Failures []Failure
}

type Processor struct {
	Extractor extract.Extractor
	Engine    Analyzer
	// Workers caps parallelism; the effective value is min(Workers, len(docs)).
	Workers  int
	Logger   *zap.Logger
	Progress func(Progress)
}

type outcome struct {
	done    bool
	record  *candidate.Record
	skipped bool
	err     error
}

// Run processes docs and returns records in document order. When ctx is
// cancelled no new documents are started and the partial result is returned
// together with ctx.Err().
func (p *Processor) Run(ctx context.Context, docs []Document) (*Result, error) {
	if p.Extractor == nil || p.Engine == nil {
		return nil, errors.New("processor requires an extractor and an engine")
	}

	runID := uuid.NewString()
	log := logger.WithFields(p.Logger, zap.String(logger.FieldRunID, runID))

	result := &Result{Records: &candidate.Records{RunID: runID}}
	if len(docs) == 0 {
		log.Info("no documents to process")
		return result, nil
	}

	workers := p.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	workers = min(workers, len(docs))

	log.Info("processing documents", zap.Int("count", len(docs)), zap.Int("workers", workers))
	started := time.Now()

	outcomes := make([]outcome, len(docs))

	var (
		mu   sync.Mutex
		done int
	)
	report := func() {
		mu.Lock()
		defer mu.Unlock()
		done++
		log.Debug("progress", zap.Int("done", done), zap.Int("total", len(docs)))
		if p.Progress != nil {
			p.Progress(Progress{Done: done, Total: len(docs)})
		}
	}

	var g errgroup.Group
	g.SetLimit(workers)

	for i, doc := range docs {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			outcomes[i] = p.process(ctx, doc, log)
			report()
			return nil
		})
	}
	// jobs never return errors
	_ = g.Wait()

	for i, o := range outcomes {
		switch {
		case !o.done:
		case o.err != nil:
			result.Failures = append(result.Failures, Failure{Document: docs[i], Err: o.err})
		case o.skipped:
			result.Skipped = append(result.Skipped, docs[i])
		default:
			result.Records.Items = append(result.Records.Items, o.record)
		}
	}

	log.Info("documents processed",
		zap.Int("analyzed", result.Records.Len()),
		zap.Int("skipped", len(result.Skipped)),
		zap.Int("failed", len(result.Failures)),
		zap.Duration("elapsed", time.Since(started)),
	)

	return result, ctx.Err()
}

func (p *Processor) process(ctx context.Context, doc Document, log *zap.Logger) (o outcome) {
	log = logger.WithDocument(log, doc.Name, doc.Path)

	defer func() {
		if r := recover(); r != nil {
			log.Error("recovered from panic", zap.Any("panic", r))
			o = outcome{done: true, err: fmt.Errorf("%w: %v", ErrPanicked, r)}
		}
	}()

	text, err := p.Extractor.Extract(ctx, doc.Path)
	if err != nil {
		log.Warn("extracting text failed, skipping", zap.Error(err))
		return outcome{done: true, err: err}
	}

	record, ok := p.Engine.AnalyzeDocument(doc.Name, doc.Path, text)
	if !ok {
		log.Info("skipping document", zap.String("reason", "no text extracted"))
		return outcome{done: true, skipped: true}
	}

	log.Debug("document analyzed",
		zap.Int("total_score", record.TotalScore),
		zap.Int("skills", len(record.Skills)),
	)

	return outcome{done: true, record: record}
}
