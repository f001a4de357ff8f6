package filtering

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/resume-scorer/internal/candidate"
	"github.com/spigell/resume-scorer/internal/engine"
)

type minimumScoreFilter struct {
	minimum  int
	disabled bool
	reason   string
	logger   *zap.Logger
}

// NewMinimumScore creates a filter dropping candidates scored below minimum.
// A non-positive minimum leaves the filter disabled.
func NewMinimumScore(minimum int, logger *zap.Logger) Filter {
	if logger == nil {
		logger = zap.NewNop()
	}

	f := &minimumScoreFilter{minimum: minimum, logger: logger}
	if minimum <= 0 {
		f.Disable("minimum score is not set")
	}
	return f
}

func (f *minimumScoreFilter) Name() string { return "minimum_score" }

func (f *minimumScoreFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *minimumScoreFilter) IsEnabled() bool { return !f.disabled }

func (f *minimumScoreFilter) Validate() error {
	if f.minimum > engine.MaxScore {
		return fmt.Errorf("minimum score %d is above the maximum of %d", f.minimum, engine.MaxScore)
	}
	return nil
}

func (f *minimumScoreFilter) Apply(_ context.Context, r *candidate.Records) (*candidate.Records, Step, error) {
	initial := r.Len()

	removed := r.RemoveFunc(func(rec *candidate.Record) bool {
		return rec.TotalScore < f.minimum
	})
	if len(removed) > 0 {
		f.logger.Info("excluding candidates below minimum score",
			zap.Int("minimum_score", f.minimum),
			zap.Strings("excluded_candidates", removed),
			zap.Int("candidates_left", r.Len()),
		)
	}

	return r, Step{Initial: initial, Dropped: len(removed), Left: r.Len()}, nil
}

func (f *minimumScoreFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"minimum_score": strconv.Itoa(f.minimum)},
	}
}
