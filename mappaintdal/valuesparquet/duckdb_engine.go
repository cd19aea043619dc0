package valuesparquet

import (
	"context"
	"fmt"
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jmoiron/sqlx"
	_ "github.com/marcboeker/go-duckdb"
)

// DuckDBEngine reads dataset files through an in-memory DuckDB instance,
// pushing filters down into the query instead of scanning row by row.
// Good for picking a small slice out of a large dataset.
type DuckDBEngine struct {
	dbConn *sqlx.DB
}

func NewDuckDBEngine() (*DuckDBEngine, errorsx.Error) {
	dbConn, err := sqlx.Open("duckdb", "")
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	return &DuckDBEngine{dbConn: dbConn}, nil
}

// ReadDataset fetches rows from a dataset file, narrowed by filter. A nil
// filter fetches every row. Rows come back ordered by key, so results are
// stable across runs regardless of the row group layout.
func (e *DuckDBEngine) ReadDataset(ctx context.Context, filePath string, filter Filter) ([]*DatasetRow, errorsx.Error) {
	var args []interface{}
	whereClause := ""
	if filter != nil {
		err := filter.Validate()
		if err != nil {
			return nil, err
		}

		fragment, err := filterToSQL(filter, &args)
		if err != nil {
			return nil, err
		}
		whereClause = fmt.Sprintf("\nWHERE %s", fragment)
	}

	query := fmt.Sprintf(`
		SELECT key, value, is_text, text
		FROM read_parquet('%s')%s
		ORDER BY key`,
		strings.ReplaceAll(filePath, "'", "''"),
		whereClause)

	var rows []*DatasetRow
	err := e.dbConn.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, errorsx.Wrap(err, "filepath", filePath)
	}

	return rows, nil
}

func (e *DuckDBEngine) Close() errorsx.Error {
	err := e.dbConn.Close()
	if err != nil {
		return errorsx.Wrap(err)
	}
	return nil
}

// filterToSQL renders a filter as a WHERE fragment with $N placeholders,
// appending the placeholder values to args. The guards on is_text mirror
// MatchesRow: a number comparison never picks up a text row and vice versa.
func filterToSQL(filter Filter, args *[]interface{}) (string, errorsx.Error) {
	switch f := filter.(type) {
	case *ComparativeFilter:
		return comparativeFilterToSQL(f, args)
	case *LogicalFilter:
		var parts []string
		for _, childFilter := range f.ChildFilters {
			part, err := filterToSQL(childFilter, args)
			if err != nil {
				return "", err
			}
			parts = append(parts, part)
		}

		switch f.Operator {
		case LogicalFilterOperatorAnd, LogicalFilterOperatorOr:
			// ok
		default:
			return "", errorsx.Errorf("unrecognised operator: %q", f.Operator)
		}

		return fmt.Sprintf("(%s)", strings.Join(parts, fmt.Sprintf(" %s ", f.Operator))), nil
	default:
		return "", errorsx.Errorf("unsupported filter type: %T", filter)
	}
}

func comparativeFilterToSQL(cf *ComparativeFilter, args *[]interface{}) (string, errorsx.Error) {
	operator := string(cf.Operator)
	if cf.Operator == ComparativeOperatorEqualTo {
		operator = "="
	}

	switch operand := cf.Operand.(type) {
	case Float64Operand:
		*args = append(*args, float64(operand))
	case StringOperand:
		*args = append(*args, string(operand))
	default:
		return "", errorsx.Errorf("unsupported operand type: %T", cf.Operand)
	}

	fragment := fmt.Sprintf("%s %s $%d", cf.FieldName, operator, len(*args))
	switch cf.FieldName {
	case DatasetFieldValue:
		fragment = fmt.Sprintf("(%s AND NOT is_text)", fragment)
	case DatasetFieldText:
		fragment = fmt.Sprintf("(%s AND is_text)", fragment)
	}

	return fragment, nil
}
