package mapthemejson

import (
	"encoding/json"
	"io"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/mappaint-app/mappaint"
	"github.com/jamesrr39/mappaint-app/styling"
)

// Parse reads a JSON theme document and converts it into a validated theme.
func Parse(r io.Reader) (*styling.Theme, errorsx.Error) {
	document := new(ThemeDocument)

	err := json.NewDecoder(r).Decode(document)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	return document.ToTheme()
}

// ToTheme converts the document into a theme, applying built-in defaults
// for absent settings, and validates the result.
func (d *ThemeDocument) ToTheme() (*styling.Theme, errorsx.Error) {
	err := d.Validate()
	if err != nil {
		return nil, err
	}

	// the built-in theme supplies every default
	theme := styling.NewBuiltinTheme()
	theme.ID = d.ID
	theme.Name = d.Name
	if theme.Name == "" {
		theme.Name = d.ID
	}
	theme.Rules = nil

	if d.Background != "" {
		theme.BackgroundColor, err = parseColor(d.Background, "background")
		if err != nil {
			return nil, err
		}
	}

	if d.Fallback != "" {
		theme.FallbackColor, err = parseColor(d.Fallback, "fallback")
		if err != nil {
			return nil, err
		}
	}

	for i, documentRule := range d.Rules {
		rule, err := documentRule.toColorRule()
		if err != nil {
			return nil, errorsx.Wrap(err, "ruleIndex", i)
		}

		theme.Rules = append(theme.Rules, rule)
	}

	err = d.DataLabel.apply(&theme.DataLabel)
	if err != nil {
		return nil, err
	}

	err = d.Bubble.apply(&theme.Bubble)
	if err != nil {
		return nil, err
	}

	err = d.Selection.apply(&theme.Selection)
	if err != nil {
		return nil, err
	}

	err = d.Tooltip.apply(&theme.Tooltip)
	if err != nil {
		return nil, err
	}

	err = d.Toolbar.apply(&theme.Toolbar)
	if err != nil {
		return nil, err
	}

	err = theme.Validate()
	if err != nil {
		return nil, err
	}

	return theme, nil
}

func (r *Rule) toColorRule() (mappaint.ColorRule, errorsx.Error) {
	ruleColor, err := parseColor(r.Color, "color")
	if err != nil {
		return nil, err
	}

	if r.Value != nil {
		return mappaint.ExactValueRule{
			Value: *r.Value,
			Color: ruleColor,
			Label: r.Label,
		}, nil
	}

	rule := mappaint.RangeRule{
		From:  *r.From,
		To:    *r.To,
		Color: ruleColor,
		Label: r.Label,
	}

	if r.MinOpacity != nil {
		rule.MinOpacity = mappaint.NewOpacity(*r.MinOpacity)
	}

	if r.MaxOpacity != nil {
		rule.MaxOpacity = mappaint.NewOpacity(*r.MaxOpacity)
	}

	return rule, nil
}

func (o *DataLabelObject) apply(settings *mappaint.DataLabelSettings) errorsx.Error {
	if o == nil {
		return nil
	}

	if o.Visible != nil {
		settings.Visible = *o.Visible
	}

	if o.TextColor != "" {
		c, err := parseColor(o.TextColor, "dataLabel.textColor")
		if err != nil {
			return err
		}
		settings.TextColor = c
	}

	if o.FontSizeFraction != nil {
		settings.FontSizeFraction = *o.FontSizeFraction
	}

	if o.Overflow != "" {
		overflow, err := parseLabelOverflow(o.Overflow)
		if err != nil {
			return err
		}
		settings.Overflow = overflow
	}

	return nil
}

func (o *BubbleObject) apply(settings *mappaint.BubbleSettings) errorsx.Error {
	if o == nil {
		return nil
	}

	if o.MinRadiusFraction != nil {
		settings.MinRadiusFraction = *o.MinRadiusFraction
	}

	if o.MaxRadiusFraction != nil {
		settings.MaxRadiusFraction = *o.MaxRadiusFraction
	}

	if o.Color != "" {
		c, err := parseColor(o.Color, "bubble.color")
		if err != nil {
			return err
		}
		settings.Color = c
	}

	if o.StrokeColor != "" {
		c, err := parseColor(o.StrokeColor, "bubble.strokeColor")
		if err != nil {
			return err
		}
		settings.StrokeColor = c
	}

	if o.StrokeWidth != nil {
		settings.StrokeWidth = *o.StrokeWidth
	}

	if o.Opacity != nil {
		settings.Opacity = mappaint.NewOpacity(*o.Opacity)
	}

	return nil
}

func (o *SelectionObject) apply(settings *mappaint.SelectionSettings) errorsx.Error {
	if o == nil {
		return nil
	}

	if o.FillColor != "" {
		c, err := parseColor(o.FillColor, "selection.fillColor")
		if err != nil {
			return err
		}
		settings.FillColor = c
	}

	if o.StrokeColor != "" {
		c, err := parseColor(o.StrokeColor, "selection.strokeColor")
		if err != nil {
			return err
		}
		settings.StrokeColor = c
	}

	if o.StrokeWidth != nil {
		settings.StrokeWidth = *o.StrokeWidth
	}

	if o.DimNonSelected != nil {
		settings.DimNonSelected = *o.DimNonSelected
	}

	if o.DimOpacity != nil {
		settings.DimOpacity = mappaint.NewOpacity(*o.DimOpacity)
	}

	return nil
}

func (o *TooltipObject) apply(settings *mappaint.TooltipSettings) errorsx.Error {
	if o == nil {
		return nil
	}

	if o.Visible != nil {
		settings.Visible = *o.Visible
	}

	if o.BackgroundColor != "" {
		c, err := parseColor(o.BackgroundColor, "tooltip.backgroundColor")
		if err != nil {
			return err
		}
		settings.BackgroundColor = c
	}

	if o.TextColor != "" {
		c, err := parseColor(o.TextColor, "tooltip.textColor")
		if err != nil {
			return err
		}
		settings.TextColor = c
	}

	if o.CornerRadiusFraction != nil {
		settings.CornerRadiusFraction = *o.CornerRadiusFraction
	}

	return nil
}

func (o *ToolbarObject) apply(settings *mappaint.ToolbarSettings) errorsx.Error {
	if o == nil {
		return nil
	}

	if o.Visible != nil {
		settings.Visible = *o.Visible
	}

	if o.IconColor != "" {
		c, err := parseColor(o.IconColor, "toolbar.iconColor")
		if err != nil {
			return err
		}
		settings.IconColor = c
	}

	if o.ItemBackgroundColor != "" {
		c, err := parseColor(o.ItemBackgroundColor, "toolbar.itemBackgroundColor")
		if err != nil {
			return err
		}
		settings.ItemBackgroundColor = c
	}

	if o.ItemHoverColor != "" {
		c, err := parseColor(o.ItemHoverColor, "toolbar.itemHoverColor")
		if err != nil {
			return err
		}
		settings.ItemHoverColor = c
	}

	if o.Direction != "" {
		direction, err := parseToolbarDirection(o.Direction)
		if err != nil {
			return err
		}
		settings.Direction = direction
	}

	if o.Position != "" {
		position, err := parseToolbarPosition(o.Position)
		if err != nil {
			return err
		}
		settings.Position = position
	}

	return nil
}
