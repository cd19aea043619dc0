package valuesparquet

import (
	"fmt"

	"github.com/jamesrr39/goutil/errorsx"
)

type ComparativeOperator string

const (
	ComparativeOperatorEqualTo              ComparativeOperator = "=="
	ComparativeOperatorGreaterThan          ComparativeOperator = ">"
	ComparativeOperatorLessThan             ComparativeOperator = "<"
	ComparativeOperatorLessThanOrEqualTo    ComparativeOperator = "<="
	ComparativeOperatorGreaterThanOrEqualTo ComparativeOperator = ">="
)

// ComparativeFilter compares one dataset field against a fixed operand.
// A number comparison never matches a text row, and a text comparison never
// matches a number row; the key field matches both kinds.
type ComparativeFilter struct {
	FieldName string
	Operator  ComparativeOperator
	Operand   Operand
}

func (cf *ComparativeFilter) Validate() errorsx.Error {
	if cf.Operand == nil {
		return errorsx.Errorf("operand is nil")
	}

	switch cf.FieldName {
	case DatasetFieldKey, DatasetFieldText:
		_, ok := cf.Operand.(StringOperand)
		if !ok {
			return errorsx.Errorf("field %q holds strings, but the operand is %T", cf.FieldName, cf.Operand)
		}
	case DatasetFieldValue:
		_, ok := cf.Operand.(Float64Operand)
		if !ok {
			return errorsx.Errorf("field %q holds numbers, but the operand is %T", cf.FieldName, cf.Operand)
		}
	default:
		return errorsx.Errorf("unknown dataset field: %q (expected %q, %q or %q)", cf.FieldName, DatasetFieldKey, DatasetFieldValue, DatasetFieldText)
	}

	switch cf.Operator {
	case ComparativeOperatorEqualTo,
		ComparativeOperatorGreaterThan,
		ComparativeOperatorLessThan,
		ComparativeOperatorLessThanOrEqualTo,
		ComparativeOperatorGreaterThanOrEqualTo:
		return nil
	default:
		return errorsx.Errorf("unrecognised operator: %q", cf.Operator)
	}
}

func (cf *ComparativeFilter) MatchesRow(row *DatasetRow) (bool, errorsx.Error) {
	if cf.Operand == nil {
		return false, errorsx.Errorf("operand is nil")
	}

	var rowOperand Operand
	switch cf.FieldName {
	case DatasetFieldKey:
		rowOperand = StringOperand(row.Key)
	case DatasetFieldValue:
		if row.IsText {
			return false, nil
		}
		rowOperand = Float64Operand(row.Value)
	case DatasetFieldText:
		if !row.IsText {
			return false, nil
		}
		rowOperand = StringOperand(row.Text)
	default:
		return false, errorsx.Errorf("unknown dataset field: %q (expected %q, %q or %q)", cf.FieldName, DatasetFieldKey, DatasetFieldValue, DatasetFieldText)
	}

	switch cf.Operator {
	case ComparativeOperatorEqualTo:
		return rowOperand.EqualTo(cf.Operand)
	case ComparativeOperatorGreaterThan:
		return rowOperand.IsGreaterThan(cf.Operand)
	case ComparativeOperatorLessThan:
		return rowOperand.IsLessThan(cf.Operand)
	case ComparativeOperatorLessThanOrEqualTo:
		return rowOperand.IsLessThanOrEqualTo(cf.Operand)
	case ComparativeOperatorGreaterThanOrEqualTo:
		return rowOperand.IsGreaterThanOrEqualTo(cf.Operand)
	default:
		return false, errorsx.Errorf("unrecognised operator: %q", cf.Operator)
	}
}

func (cf *ComparativeFilter) String() string {
	return fmt.Sprintf("%s %s %v", cf.FieldName, cf.Operator, cf.Operand)
}
