// Package session holds the dataset a dashboard run works against. A Session
// is opened once and shared read-only by every view it serves.
package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/KaramelBytes/mbtiboard/internal/analysis"
	"github.com/KaramelBytes/mbtiboard/internal/dataset"
	"github.com/KaramelBytes/mbtiboard/internal/query"
)

// Session is one loaded table plus the identity used to tag its log lines.
type Session struct {
	ID       string
	Source   string
	Table    *dataset.Table
	OpenedAt time.Time

	log *zap.Logger
}

// Open loads path through cache and wraps the result. A nil logger is
// replaced with a no-op logger.
func Open(cache *dataset.Cache, path string, log *zap.Logger) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}
	start := time.Now()
	tbl, err := cache.Get(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	s := &Session{
		ID:       uuid.NewString(),
		Source:   tbl.Source(),
		Table:    tbl,
		OpenedAt: time.Now().UTC(),
	}
	s.log = log.With(zap.String("session", s.ID))
	s.log.Debug("dataset loaded",
		zap.String("source", s.Source),
		zap.Int("rows", tbl.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return s, nil
}

// Types returns the 16 type labels in declaration order.
func (s *Session) Types() []string { return dataset.Labels() }

// Countries returns every country name sorted ascending.
func (s *Session) Countries() []string { return s.Table.SortedCountries() }

// Preview returns up to n leading rows.
func (s *Session) Preview(n int) []dataset.Row {
	s.log.Debug("preview", zap.Int("limit", n))
	return s.Table.Head(n)
}

// Rank runs the top-N query for a type label.
func (s *Session) Rank(label string, n int, order query.Order) ([]query.RankedEntry, error) {
	s.log.Debug("rank", zap.String("type", label), zap.Int("limit", n), zap.Stringer("order", order))
	out, err := query.TopNLabel(s.Table, label, n, order)
	if err != nil {
		s.log.Debug("rank failed", zap.Error(err))
		return nil, err
	}
	return out, nil
}

// Profile runs the per-country distribution query.
func (s *Session) Profile(country string, sortDescending bool) ([]query.ProfileEntry, error) {
	s.log.Debug("profile", zap.String("country", country), zap.Bool("descending", sortDescending))
	out, err := query.Profile(s.Table, country, sortDescending)
	if err != nil {
		s.log.Debug("profile failed", zap.Error(err))
		return nil, err
	}
	return out, nil
}

// Summary builds the data-quality report for the loaded table.
func (s *Session) Summary(opt analysis.Options) *analysis.Report {
	s.log.Debug("summary", zap.Int("sample_rows", opt.SampleRows))
	return analysis.Summarize(s.Table, opt)
}
