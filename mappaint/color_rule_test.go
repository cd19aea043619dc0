package mappaint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExactValueRule_Validate(t *testing.T) {
	assert.NoError(t, ExactValueRule{Value: "Low", Color: testGreen}.Validate())

	err := ExactValueRule{Color: testGreen}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-empty value")
}

func TestRangeRule_Validate(t *testing.T) {
	type args struct {
		rule RangeRule
	}
	tests := []struct {
		name    string
		args    args
		wantErr bool
	}{
		{
			"valid range without opacities",
			args{RangeRule{From: 0, To: 100, Color: testGreen}},
			false,
		},
		{
			"valid range with opacities",
			args{RangeRule{From: 0, To: 100, Color: testGreen, MinOpacity: NewOpacity(0.2), MaxOpacity: NewOpacity(0.8)}},
			false,
		},
		{
			"valid range with negative bounds",
			args{RangeRule{From: -40, To: -10, Color: testGreen}},
			false,
		},
		{
			"inverted bounds",
			args{RangeRule{From: 100, To: 50, Color: testGreen}},
			true,
		},
		{
			"equal bounds",
			args{RangeRule{From: 50, To: 50, Color: testGreen}},
			true,
		},
		{
			"only min opacity set",
			args{RangeRule{From: 0, To: 100, Color: testGreen, MinOpacity: NewOpacity(0.2)}},
			true,
		},
		{
			"only max opacity set",
			args{RangeRule{From: 0, To: 100, Color: testGreen, MaxOpacity: NewOpacity(0.8)}},
			true,
		},
		{
			"zero opacity",
			args{RangeRule{From: 0, To: 100, Color: testGreen, MinOpacity: NewOpacity(0), MaxOpacity: NewOpacity(0.8)}},
			true,
		},
		{
			"opacity above 1",
			args{RangeRule{From: 0, To: 100, Color: testGreen, MinOpacity: NewOpacity(0.2), MaxOpacity: NewOpacity(1.2)}},
			true,
		},
		{
			"descending opacity is allowed",
			args{RangeRule{From: 0, To: 100, Color: testGreen, MinOpacity: NewOpacity(0.8), MaxOpacity: NewOpacity(0.2)}},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.args.rule.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRules(t *testing.T) {
	assert.NoError(t, ValidateRules(nil))
	assert.NoError(t, ValidateRules([]ColorRule{
		ExactValueRule{Value: "Low", Color: testGreen},
		RangeRule{From: 0, To: 1, Color: testRed},
	}))

	err := ValidateRules([]ColorRule{
		ExactValueRule{Value: "Low", Color: testGreen},
		nil,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rule 1")

	err = ValidateRules([]ColorRule{
		ExactValueRule{Value: "Low", Color: testGreen},
		RangeRule{From: 10, To: 5, Color: testRed},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ruleIndex")
}

func TestColorRuleEquality(t *testing.T) {
	// rules are plain values; identical fields compare equal through the
	// interface too
	a := ColorRule(ExactValueRule{Value: "Low", Color: testGreen, Label: "low"})
	b := ColorRule(ExactValueRule{Value: "Low", Color: testGreen, Label: "low"})
	assert.True(t, a == b)

	c := ColorRule(RangeRule{From: 0, To: 100, Color: testGreen, MinOpacity: NewOpacity(0.2), MaxOpacity: NewOpacity(0.8)})
	d := ColorRule(RangeRule{
		MaxOpacity: NewOpacity(0.8),
		MinOpacity: NewOpacity(0.2),
		Color:      testGreen,
		To:         100,
		From:       0,
	})
	assert.True(t, c == d)

	assert.False(t, a == c)
	assert.False(t, a == ColorRule(ExactValueRule{Value: "Low", Color: testRed, Label: "low"}))
}

func TestOpacity_Validate(t *testing.T) {
	assert.NoError(t, Opacity{}.Validate())
	assert.NoError(t, NewOpacity(0.5).Validate())
	assert.NoError(t, NewOpacity(1).Validate())
	assert.Error(t, NewOpacity(0).Validate())
	assert.Error(t, NewOpacity(-0.1).Validate())
	assert.Error(t, NewOpacity(1.1).Validate())
}
