package valuesparquet

import (
	"fmt"
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
)

type LogicalFilterOperator string

const (
	LogicalFilterOperatorAnd LogicalFilterOperator = "AND"
	LogicalFilterOperatorOr  LogicalFilterOperator = "OR"
)

// LogicalFilter combines child filters with AND or OR.
type LogicalFilter struct {
	Operator     LogicalFilterOperator
	ChildFilters []Filter
}

func (lf *LogicalFilter) Validate() errorsx.Error {
	if len(lf.ChildFilters) == 0 {
		return errorsx.Errorf("no child filters supplied")
	}

	switch lf.Operator {
	case LogicalFilterOperatorAnd, LogicalFilterOperatorOr:
		// ok
	default:
		return errorsx.Errorf("unrecognised operator: %q", lf.Operator)
	}

	for _, childFilter := range lf.ChildFilters {
		err := childFilter.Validate()
		if err != nil {
			return err
		}
	}

	return nil
}

func (lf *LogicalFilter) MatchesRow(row *DatasetRow) (bool, errorsx.Error) {
	if len(lf.ChildFilters) == 0 {
		return false, errorsx.Errorf("no child filters supplied")
	}

	switch lf.Operator {
	case LogicalFilterOperatorAnd:
		for _, childFilter := range lf.ChildFilters {
			matches, err := childFilter.MatchesRow(row)
			if err != nil {
				return false, err
			}
			if !matches {
				return false, nil
			}
		}
		return true, nil
	case LogicalFilterOperatorOr:
		for _, childFilter := range lf.ChildFilters {
			matches, err := childFilter.MatchesRow(row)
			if err != nil {
				return false, err
			}
			if matches {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, errorsx.Errorf("unrecognised operator: %q", lf.Operator)
	}
}

func (lf *LogicalFilter) String() string {
	var s []string
	for _, childFilter := range lf.ChildFilters {
		s = append(s, fmt.Sprintf("(%s)", childFilter))
	}

	return strings.Join(s, fmt.Sprintf(" %s ", lf.Operator))
}
