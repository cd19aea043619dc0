package valuesparquet

import (
	"github.com/jamesrr39/goutil/errorsx"
)

type Operand interface {
	IsGreaterThan(val Operand) (bool, errorsx.Error)
	IsLessThan(val Operand) (bool, errorsx.Error)
	IsGreaterThanOrEqualTo(val Operand) (bool, errorsx.Error)
	IsLessThanOrEqualTo(val Operand) (bool, errorsx.Error)
	EqualTo(val Operand) (bool, errorsx.Error)
}

type Float64Operand float64

func (f Float64Operand) IsGreaterThan(val Operand) (bool, errorsx.Error) {
	other, ok := val.(Float64Operand)
	if !ok {
		return false, errorsx.Errorf("can't compare a number with %T", val)
	}
	return float64(f) > float64(other), nil
}

func (f Float64Operand) IsLessThan(val Operand) (bool, errorsx.Error) {
	other, ok := val.(Float64Operand)
	if !ok {
		return false, errorsx.Errorf("can't compare a number with %T", val)
	}
	return float64(f) < float64(other), nil
}

func (f Float64Operand) IsGreaterThanOrEqualTo(val Operand) (bool, errorsx.Error) {
	other, ok := val.(Float64Operand)
	if !ok {
		return false, errorsx.Errorf("can't compare a number with %T", val)
	}
	return float64(f) >= float64(other), nil
}

func (f Float64Operand) IsLessThanOrEqualTo(val Operand) (bool, errorsx.Error) {
	other, ok := val.(Float64Operand)
	if !ok {
		return false, errorsx.Errorf("can't compare a number with %T", val)
	}
	return float64(f) <= float64(other), nil
}

func (f Float64Operand) EqualTo(val Operand) (bool, errorsx.Error) {
	other, ok := val.(Float64Operand)
	if !ok {
		return false, errorsx.Errorf("can't compare a number with %T", val)
	}
	return float64(f) == float64(other), nil
}

type StringOperand string

func (s StringOperand) IsGreaterThan(val Operand) (bool, errorsx.Error) {
	return false, errorsx.Errorf("string operands only support the %q operator", ComparativeOperatorEqualTo)
}

func (s StringOperand) IsLessThan(val Operand) (bool, errorsx.Error) {
	return false, errorsx.Errorf("string operands only support the %q operator", ComparativeOperatorEqualTo)
}

func (s StringOperand) IsGreaterThanOrEqualTo(val Operand) (bool, errorsx.Error) {
	return false, errorsx.Errorf("string operands only support the %q operator", ComparativeOperatorEqualTo)
}

func (s StringOperand) IsLessThanOrEqualTo(val Operand) (bool, errorsx.Error) {
	return false, errorsx.Errorf("string operands only support the %q operator", ComparativeOperatorEqualTo)
}

func (s StringOperand) EqualTo(val Operand) (bool, errorsx.Error) {
	other, ok := val.(StringOperand)
	if !ok {
		return false, errorsx.Errorf("can't compare a string with %T", val)
	}
	return string(s) == string(other), nil
}
