// Package classification resolves whole datasets against a theme's color
// rules, producing one result row per data point.
package classification

import (
	"context"
	"fmt"
	"sync"

	tracing "github.com/jamesrr39/go-tracing"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/mappaint-app/mappaint"
	"github.com/jamesrr39/mappaint-app/mappaintdal/valuesparquet"
	"github.com/jamesrr39/mappaint-app/styling"
	"github.com/jamesrr39/semaphore"
)

const DefaultBatchSize = 4096

// DatasetSource feeds rows into a classification run. Batches must come back
// in dataset order; results are written in the same order.
type DatasetSource interface {
	TotalRows() int64
	ReadBatch(batchSize int) ([]*valuesparquet.DatasetRow, errorsx.Error)
}

// ResultSink receives one result row per classified dataset row.
type ResultSink interface {
	WriteRow(row *valuesparquet.ResultRow) errorsx.Error
}

// Summary counts the outcomes of a classification run. PerRule holds the
// match count for each rule, indexed by rule position in the theme.
type Summary struct {
	Total   int   `json:"total"`
	Matched int   `json:"matched"`
	NoMatch int   `json:"noMatch"`
	PerRule []int `json:"perRule"`
}

func (s *Summary) String() string {
	return fmt.Sprintf("%d rows (%d matched, %d without a match)", s.Total, s.Matched, s.NoMatch)
}

type Classifier struct {
	logger *logpkg.Logger
	sema   *semaphore.Semaphore
}

func NewClassifier(logger *logpkg.Logger, maxConcurrentOps uint) *Classifier {
	return &Classifier{logger, semaphore.NewSemaphore(maxConcurrentOps)}
}

// ClassifyDataset streams source through theme's rules into sink. Rows are
// resolved concurrently inside each batch, bounded by the classifier's
// semaphore, and written back in dataset order. batchSize <= 0 falls back to
// DefaultBatchSize.
func (c *Classifier) ClassifyDataset(ctx context.Context, theme *styling.Theme, source DatasetSource, sink ResultSink, batchSize int) (*Summary, errorsx.Error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	resolver, err := theme.NewResolver()
	if err != nil {
		return nil, errorsx.Wrap(err, "themeID", theme.ID)
	}

	span := tracing.StartSpan(ctx, fmt.Sprintf("classify dataset against theme %q", theme.ID))

	summary := &Summary{PerRule: make([]int, len(theme.Rules))}

	totalRows := source.TotalRows()
	batchIndex := 0
	for {
		err := ctx.Err()
		if err != nil {
			return nil, errorsx.Wrap(err, "themeID", theme.ID)
		}

		batch, errx := source.ReadBatch(batchSize)
		if errx != nil {
			return nil, errx
		}
		if len(batch) == 0 {
			break
		}

		results := c.classifyBatch(ctx, resolver, batch, batchIndex)

		for _, result := range results {
			errx = sink.WriteRow(result)
			if errx != nil {
				return nil, errx
			}
			summary.tally(result)
		}

		c.logger.Debug("classified %d/%d rows of the dataset", summary.Total, totalRows)
		batchIndex++
	}

	span.End(ctx)

	c.logger.Info("classification finished: %s", summary)

	return summary, nil
}

// ClassifyRows resolves rows already held in memory, in order. It is the
// in-process variant of ClassifyDataset used for request-sized inputs.
func (c *Classifier) ClassifyRows(ctx context.Context, theme *styling.Theme, rows []*valuesparquet.DatasetRow) ([]*valuesparquet.ResultRow, *Summary, errorsx.Error) {
	resolver, err := theme.NewResolver()
	if err != nil {
		return nil, nil, errorsx.Wrap(err, "themeID", theme.ID)
	}

	results := c.classifyBatch(ctx, resolver, rows, 0)

	summary := &Summary{PerRule: make([]int, len(theme.Rules))}
	for _, result := range results {
		summary.tally(result)
	}

	return results, summary, nil
}

// classifyBatch resolves one batch. Each row goes to its own goroutine slot;
// the indexed results slice keeps the output in batch order no matter which
// goroutine finishes first.
func (c *Classifier) classifyBatch(ctx context.Context, resolver *mappaint.RuleResolver, batch []*valuesparquet.DatasetRow, batchIndex int) []*valuesparquet.ResultRow {
	span := tracing.StartSpan(ctx, fmt.Sprintf("classify batch %d (%d rows)", batchIndex, len(batch)))

	results := make([]*valuesparquet.ResultRow, len(batch))

	var wg sync.WaitGroup
	for i, row := range batch {
		wg.Add(1)
		c.sema.Add()
		go func(i int, row *valuesparquet.DatasetRow) {
			defer wg.Done()
			defer c.sema.Done()

			results[i] = resultRowFor(row, resolver.Resolve(row.ToValue()))
		}(i, row)
	}
	wg.Wait()

	span.End(ctx)

	return results
}

func (s *Summary) tally(result *valuesparquet.ResultRow) {
	s.Total++
	if !result.Matched {
		s.NoMatch++
		return
	}

	s.Matched++
	if int(result.RuleIndex) < len(s.PerRule) {
		s.PerRule[result.RuleIndex]++
	}
}

func resultRowFor(row *valuesparquet.DatasetRow, match *mappaint.Match) *valuesparquet.ResultRow {
	if match == nil {
		return &valuesparquet.ResultRow{
			Key:       row.Key,
			Matched:   false,
			RuleIndex: -1,
		}
	}

	return &valuesparquet.ResultRow{
		Key:        row.Key,
		Matched:    true,
		RuleIndex:  int32(match.RuleIndex),
		Color:      mappaint.HexString(match.Color),
		OpacitySet: match.Opacity.Set,
		Opacity:    match.Opacity.Fraction,
		Label:      match.LegendLabel,
	}
}
