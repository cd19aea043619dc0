package valuesparquet

import (
	"github.com/jamesrr39/goutil/errorsx"
)

// Filter decides whether a dataset row takes part in a classification run.
// Implementations must be side-effect free; the same filter is applied to
// every row, possibly from several goroutines.
type Filter interface {
	MatchesRow(row *DatasetRow) (bool, errorsx.Error)
	Validate() errorsx.Error
}

// FilterRows applies filter to each row and keeps the matching ones, in the
// original order. A nil filter keeps everything.
func FilterRows(rows []*DatasetRow, filter Filter) ([]*DatasetRow, errorsx.Error) {
	if filter == nil {
		return rows, nil
	}

	var kept []*DatasetRow
	for _, row := range rows {
		matches, err := filter.MatchesRow(row)
		if err != nil {
			return nil, errorsx.Wrap(err, "key", row.Key)
		}
		if matches {
			kept = append(kept, row)
		}
	}

	return kept, nil
}
