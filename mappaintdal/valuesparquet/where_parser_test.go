package valuesparquet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWhereClause(t *testing.T) {
	tests := []struct {
		name            string
		clause          string
		want            Filter
		wantErrContains string
	}{
		{
			name:   "single comparison",
			clause: "value >= 10",
			want: &ComparativeFilter{
				FieldName: DatasetFieldValue,
				Operator:  ComparativeOperatorGreaterThanOrEqualTo,
				Operand:   Float64Operand(10),
			},
		},
		{
			name:   "and group",
			clause: "value >= 10 and value < 100",
			want: &LogicalFilter{
				Operator: LogicalFilterOperatorAnd,
				ChildFilters: []Filter{
					&ComparativeFilter{
						FieldName: DatasetFieldValue,
						Operator:  ComparativeOperatorGreaterThanOrEqualTo,
						Operand:   Float64Operand(10),
					},
					&ComparativeFilter{
						FieldName: DatasetFieldValue,
						Operator:  ComparativeOperatorLessThan,
						Operand:   Float64Operand(100),
					},
				},
			},
		},
		{
			name:   "or with mixed quote styles",
			clause: `key == "NO-03" or text == 'closed'`,
			want: &LogicalFilter{
				Operator: LogicalFilterOperatorOr,
				ChildFilters: []Filter{
					&ComparativeFilter{
						FieldName: DatasetFieldKey,
						Operator:  ComparativeOperatorEqualTo,
						Operand:   StringOperand("NO-03"),
					},
					&ComparativeFilter{
						FieldName: DatasetFieldText,
						Operator:  ComparativeOperatorEqualTo,
						Operand:   StringOperand("closed"),
					},
				},
			},
		},
		{
			name:   "and binds tighter than or",
			clause: "value >= 10 and value < 100 or text == 'closed'",
			want: &LogicalFilter{
				Operator: LogicalFilterOperatorOr,
				ChildFilters: []Filter{
					&LogicalFilter{
						Operator: LogicalFilterOperatorAnd,
						ChildFilters: []Filter{
							&ComparativeFilter{
								FieldName: DatasetFieldValue,
								Operator:  ComparativeOperatorGreaterThanOrEqualTo,
								Operand:   Float64Operand(10),
							},
							&ComparativeFilter{
								FieldName: DatasetFieldValue,
								Operator:  ComparativeOperatorLessThan,
								Operand:   Float64Operand(100),
							},
						},
					},
					&ComparativeFilter{
						FieldName: DatasetFieldText,
						Operator:  ComparativeOperatorEqualTo,
						Operand:   StringOperand("closed"),
					},
				},
			},
		},
		{
			name:   "negative number operand",
			clause: "value < -0.5",
			want: &ComparativeFilter{
				FieldName: DatasetFieldValue,
				Operator:  ComparativeOperatorLessThan,
				Operand:   Float64Operand(-0.5),
			},
		},
		{
			name:            "empty clause",
			clause:          "   ",
			wantErrContains: "empty filter expression",
		},
		{
			name:            "missing operand",
			clause:          "value >=",
			wantErrContains: `expected a number or a quoted string after ">="`,
		},
		{
			name:            "bare word operand",
			clause:          "value >= banana",
			wantErrContains: `expected a number or a quoted string but got "banana"`,
		},
		{
			name:            "unknown operator",
			clause:          "value => 10",
			wantErrContains: `unrecognised operator: "=>"`,
		},
		{
			name:            "unexpected character",
			clause:          "value ?? 10",
			wantErrContains: `unexpected character "?"`,
		},
		{
			name:            "unterminated string",
			clause:          `text == "closed`,
			wantErrContains: "unterminated string literal",
		},
		{
			name:            "unknown field rejected by validation",
			clause:          `wibble == "x"`,
			wantErrContains: `unknown dataset field: "wibble"`,
		},
		{
			name:            "string literal on a number field rejected by validation",
			clause:          `value == "10"`,
			wantErrContains: `field "value" holds numbers`,
		},
		{
			name:            "trailing connective",
			clause:          "value >= 10 and",
			wantErrContains: "expected a field name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWhereClause(tt.clause)
			if tt.wantErrContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
