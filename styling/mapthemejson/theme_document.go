package mapthemejson

import (
	"github.com/jamesrr39/goutil/errorsx"
)

// DocumentVersion is the theme document version this package understands.
const DocumentVersion = 1

// ThemeDocument is the JSON form of a theme. Optional objects and fields are
// pointers; absent settings fall back to the built-in defaults.
type ThemeDocument struct {
	Version    int              `json:"version"`
	ID         string           `json:"id"`
	Name       string           `json:"name,omitempty"`
	Background string           `json:"background,omitempty"`
	Fallback   string           `json:"fallback,omitempty"`
	Rules      []*Rule          `json:"rules"`
	DataLabel  *DataLabelObject `json:"dataLabel,omitempty"`
	Bubble     *BubbleObject    `json:"bubble,omitempty"`
	Selection  *SelectionObject `json:"selection,omitempty"`
	Tooltip    *TooltipObject   `json:"tooltip,omitempty"`
	Toolbar    *ToolbarObject   `json:"toolbar,omitempty"`
}

func (d *ThemeDocument) Validate() errorsx.Error {
	if d.Version != DocumentVersion {
		return errorsx.Errorf("unsupported theme document version: %d (supported: %d)", d.Version, DocumentVersion)
	}

	if d.ID == "" {
		return errorsx.Errorf("theme document must have an id")
	}

	for i, rule := range d.Rules {
		if rule == nil {
			return errorsx.Errorf("rule %d: rule is null", i)
		}

		err := rule.Validate()
		if err != nil {
			return errorsx.Wrap(err, "ruleIndex", i)
		}
	}

	return nil
}

// Rule is the JSON form of a color rule. A rule is either an exact value
// rule ("value" set) or a range rule ("from" and "to" set); it must not be
// both or neither.
type Rule struct {
	Value      *string  `json:"value,omitempty"`
	From       *float64 `json:"from,omitempty"`
	To         *float64 `json:"to,omitempty"`
	Color      string   `json:"color"`
	MinOpacity *float64 `json:"minOpacity,omitempty"`
	MaxOpacity *float64 `json:"maxOpacity,omitempty"`
	Label      string   `json:"label,omitempty"`
}

func (r *Rule) Validate() errorsx.Error {
	hasValue := r.Value != nil
	hasFrom := r.From != nil
	hasTo := r.To != nil

	if hasFrom != hasTo {
		return errorsx.Errorf("'from' and 'to' must be set together")
	}

	hasRange := hasFrom && hasTo

	if hasValue && hasRange {
		return errorsx.Errorf("a rule must have either 'value' or 'from'/'to', not both")
	}

	if !hasValue && !hasRange {
		return errorsx.Errorf("a rule must have either 'value' or 'from'/'to'")
	}

	if hasRange && *r.From >= *r.To {
		return errorsx.Errorf("'from' (%v) must be smaller than 'to' (%v)", *r.From, *r.To)
	}

	if hasValue && (r.MinOpacity != nil || r.MaxOpacity != nil) {
		return errorsx.Errorf("opacity bounds are only allowed on range rules")
	}

	if (r.MinOpacity != nil) != (r.MaxOpacity != nil) {
		return errorsx.Errorf("'minOpacity' and 'maxOpacity' must be set together")
	}

	if r.Color == "" {
		return errorsx.Errorf("a rule must have a color")
	}

	return nil
}

type DataLabelObject struct {
	Visible          *bool    `json:"visible,omitempty"`
	TextColor        string   `json:"textColor,omitempty"`
	FontSizeFraction *float64 `json:"fontSizeFraction,omitempty"`
	Overflow         string   `json:"overflow,omitempty"`
}

type BubbleObject struct {
	MinRadiusFraction *float64 `json:"minRadiusFraction,omitempty"`
	MaxRadiusFraction *float64 `json:"maxRadiusFraction,omitempty"`
	Color             string   `json:"color,omitempty"`
	StrokeColor       string   `json:"strokeColor,omitempty"`
	StrokeWidth       *float64 `json:"strokeWidth,omitempty"`
	Opacity           *float64 `json:"opacity,omitempty"`
}

type SelectionObject struct {
	FillColor      string   `json:"fillColor,omitempty"`
	StrokeColor    string   `json:"strokeColor,omitempty"`
	StrokeWidth    *float64 `json:"strokeWidth,omitempty"`
	DimNonSelected *bool    `json:"dimNonSelected,omitempty"`
	DimOpacity     *float64 `json:"dimOpacity,omitempty"`
}

type TooltipObject struct {
	Visible              *bool    `json:"visible,omitempty"`
	BackgroundColor      string   `json:"backgroundColor,omitempty"`
	TextColor            string   `json:"textColor,omitempty"`
	CornerRadiusFraction *float64 `json:"cornerRadiusFraction,omitempty"`
}

type ToolbarObject struct {
	Visible             *bool  `json:"visible,omitempty"`
	IconColor           string `json:"iconColor,omitempty"`
	ItemBackgroundColor string `json:"itemBackgroundColor,omitempty"`
	ItemHoverColor      string `json:"itemHoverColor,omitempty"`
	Direction           string `json:"direction,omitempty"`
	Position            string `json:"position,omitempty"`
}
