package mappaint

import (
	"fmt"
	"image/color"

	"github.com/jamesrr39/goutil/errorsx"
)

// ColorRule is one entry in a theme's ordered color mapping. A rule is
// exactly one of two kinds: ExactValueRule matches a single discrete value,
// RangeRule matches a continuous numeric range. Rules are immutable plain
// values; two rules with the same fields compare equal with ==.
type ColorRule interface {
	// RuleColor is the fill color applied when this rule matches.
	RuleColor() color.RGBA
	Validate() errorsx.Error

	isColorRule()
}

// ExactValueRule matches when the string form of a value equals Value.
type ExactValueRule struct {
	Value string
	Color color.RGBA
	Label string // legend text override. If empty, the legend shows Value.
}

func (r ExactValueRule) RuleColor() color.RGBA {
	return r.Color
}

func (r ExactValueRule) Validate() errorsx.Error {
	if r.Value == "" {
		return errorsx.Errorf("exact value rule must have a non-empty value")
	}

	return nil
}

func (r ExactValueRule) String() string {
	return fmt.Sprintf("value %q -> %s", r.Value, HexString(r.Color))
}

func (r ExactValueRule) isColorRule() {}

// RangeRule matches numeric values between From and To, both ends inclusive.
type RangeRule struct {
	From, To float64
	Color    color.RGBA
	// MinOpacity and MaxOpacity, when set, interpolate the matched opacity
	// linearly across [From, To]. They must be set together.
	MinOpacity, MaxOpacity Opacity
	Label                  string // legend text override
}

func (r RangeRule) RuleColor() color.RGBA {
	return r.Color
}

func (r RangeRule) Validate() errorsx.Error {
	if r.From >= r.To {
		return errorsx.Errorf("range rule: 'from' (%v) must be smaller than 'to' (%v)", r.From, r.To)
	}

	if r.MinOpacity.Set != r.MaxOpacity.Set {
		return errorsx.Errorf("range rule [%v, %v]: min and max opacity must be set together", r.From, r.To)
	}

	for _, opacity := range []Opacity{r.MinOpacity, r.MaxOpacity} {
		err := opacity.Validate()
		if err != nil {
			return errorsx.Wrap(err, "range", fmt.Sprintf("[%v, %v]", r.From, r.To))
		}
	}

	return nil
}

func (r RangeRule) String() string {
	return fmt.Sprintf("range [%v, %v] -> %s", r.From, r.To, HexString(r.Color))
}

func (r RangeRule) isColorRule() {}

// opacityAt interpolates the opacity bounds at v, which must be inside
// [From, To]. The range ends map to exactly MinOpacity and MaxOpacity.
// Unset bounds give an unset opacity.
func (r RangeRule) opacityAt(v float64) Opacity {
	if !r.MinOpacity.Set || !r.MaxOpacity.Set {
		return Opacity{}
	}

	ratio := (v - r.From) / (r.To - r.From)
	if ratio <= 0 {
		return r.MinOpacity
	}
	if ratio >= 1 {
		return r.MaxOpacity
	}

	return NewOpacity(r.MinOpacity.Fraction + ratio*(r.MaxOpacity.Fraction-r.MinOpacity.Fraction))
}

// ValidateRules checks every rule of an ordered rule list.
func ValidateRules(rules []ColorRule) errorsx.Error {
	for i, rule := range rules {
		if rule == nil {
			return errorsx.Errorf("rule %d: rule is nil", i)
		}

		err := rule.Validate()
		if err != nil {
			return errorsx.Wrap(err, "ruleIndex", i)
		}
	}

	return nil
}
