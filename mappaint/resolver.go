package mappaint

import (
	"image/color"

	"github.com/jamesrr39/goutil/errorsx"
)

// NumberFormatFunc renders a numeric value as the string compared against
// exact value rules. There is deliberately no built-in default; the
// application decides precision and locale handling.
type NumberFormatFunc func(float64) string

// RangeLabelFunc renders the legend text for a range rule with no label.
type RangeLabelFunc func(from, to float64) string

// Match describes the rule a value resolved to.
type Match struct {
	Rule        ColorRule
	RuleIndex   int
	Color       color.RGBA
	Opacity     Opacity // set only for range rules carrying opacity bounds
	LegendLabel string
}

// LegendEntry is one swatch of a legend. Laying entries out is up to the
// consumer.
type LegendEntry struct {
	Color     color.RGBA
	Label     string
	RuleIndex int
}

// RuleResolver resolves runtime values against an ordered list of color
// rules. The first matching rule wins; later rules are not inspected. A
// resolver is immutable after construction and safe for concurrent use.
type RuleResolver struct {
	rules        []ColorRule
	formatNumber NumberFormatFunc
	rangeLabel   RangeLabelFunc
}

type ResolverOption func(*RuleResolver)

// WithRangeLabel overrides the default legend text for unlabelled range
// rules.
func WithRangeLabel(fn RangeLabelFunc) ResolverOption {
	return func(r *RuleResolver) {
		r.rangeLabel = fn
	}
}

// NewRuleResolver validates the rules and builds a resolver over them.
// formatNumber is required: numeric values are passed through it before
// comparing against exact value rules.
func NewRuleResolver(rules []ColorRule, formatNumber NumberFormatFunc, options ...ResolverOption) (*RuleResolver, errorsx.Error) {
	if formatNumber == nil {
		return nil, errorsx.Errorf("a number format function must be supplied")
	}

	err := ValidateRules(rules)
	if err != nil {
		return nil, err
	}

	resolver := &RuleResolver{
		rules:        rules,
		formatNumber: formatNumber,
	}

	for _, option := range options {
		option(resolver)
	}

	if resolver.rangeLabel == nil {
		resolver.rangeLabel = func(from, to float64) string {
			return formatNumber(from) + " - " + formatNumber(to)
		}
	}

	return resolver, nil
}

// Resolve returns the first rule matching value, or nil when no rule
// matches. No match is a normal outcome; the caller applies its fallback
// color.
func (r *RuleResolver) Resolve(value Value) *Match {
	valueAsString := value.Str()
	if value.Kind() == ValueKindNumber {
		valueAsString = r.formatNumber(value.Num())
	}

	for i, rule := range r.rules {
		switch rule := rule.(type) {
		case ExactValueRule:
			if valueAsString != rule.Value {
				continue
			}

			return &Match{
				Rule:        rule,
				RuleIndex:   i,
				Color:       rule.Color,
				LegendLabel: r.legendLabel(rule),
			}
		case RangeRule:
			if value.Kind() != ValueKindNumber {
				continue
			}

			v := value.Num()
			if v < rule.From || v > rule.To {
				continue
			}

			return &Match{
				Rule:        rule,
				RuleIndex:   i,
				Color:       rule.Color,
				Opacity:     rule.opacityAt(v),
				LegendLabel: r.legendLabel(rule),
			}
		}
	}

	return nil
}

// LegendEntries lists one entry per rule, in rule order.
func (r *RuleResolver) LegendEntries() []LegendEntry {
	var entries []LegendEntry
	for i, rule := range r.rules {
		entries = append(entries, LegendEntry{
			Color:     rule.RuleColor(),
			Label:     r.legendLabel(rule),
			RuleIndex: i,
		})
	}

	return entries
}

func (r *RuleResolver) legendLabel(rule ColorRule) string {
	switch rule := rule.(type) {
	case ExactValueRule:
		if rule.Label != "" {
			return rule.Label
		}

		return rule.Value
	case RangeRule:
		if rule.Label != "" {
			return rule.Label
		}

		return r.rangeLabel(rule.From, rule.To)
	default:
		return ""
	}
}
