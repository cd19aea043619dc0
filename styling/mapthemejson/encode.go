package mapthemejson

import (
	"encoding/json"
	"io"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/mappaint-app/mappaint"
	"github.com/jamesrr39/mappaint-app/styling"
)

// ToDocument renders a theme as its canonical document: every setting
// explicit, colors in hex form.
func ToDocument(theme *styling.Theme) *ThemeDocument {
	document := &ThemeDocument{
		Version:    DocumentVersion,
		ID:         theme.ID,
		Name:       theme.Name,
		Background: mappaint.HexString(theme.BackgroundColor),
		Fallback:   mappaint.HexString(theme.FallbackColor),
		DataLabel: &DataLabelObject{
			Visible:          boolPtr(theme.DataLabel.Visible),
			TextColor:        mappaint.HexString(theme.DataLabel.TextColor),
			FontSizeFraction: float64Ptr(theme.DataLabel.FontSizeFraction),
			Overflow:         theme.DataLabel.Overflow.String(),
		},
		Bubble: &BubbleObject{
			MinRadiusFraction: float64Ptr(theme.Bubble.MinRadiusFraction),
			MaxRadiusFraction: float64Ptr(theme.Bubble.MaxRadiusFraction),
			Color:             mappaint.HexString(theme.Bubble.Color),
			StrokeColor:       mappaint.HexString(theme.Bubble.StrokeColor),
			StrokeWidth:       float64Ptr(theme.Bubble.StrokeWidth),
			Opacity:           opacityPtr(theme.Bubble.Opacity),
		},
		Selection: &SelectionObject{
			FillColor:      mappaint.HexString(theme.Selection.FillColor),
			StrokeColor:    mappaint.HexString(theme.Selection.StrokeColor),
			StrokeWidth:    float64Ptr(theme.Selection.StrokeWidth),
			DimNonSelected: boolPtr(theme.Selection.DimNonSelected),
			DimOpacity:     opacityPtr(theme.Selection.DimOpacity),
		},
		Tooltip: &TooltipObject{
			Visible:              boolPtr(theme.Tooltip.Visible),
			BackgroundColor:      mappaint.HexString(theme.Tooltip.BackgroundColor),
			TextColor:            mappaint.HexString(theme.Tooltip.TextColor),
			CornerRadiusFraction: float64Ptr(theme.Tooltip.CornerRadiusFraction),
		},
		Toolbar: &ToolbarObject{
			Visible:             boolPtr(theme.Toolbar.Visible),
			IconColor:           mappaint.HexString(theme.Toolbar.IconColor),
			ItemBackgroundColor: mappaint.HexString(theme.Toolbar.ItemBackgroundColor),
			ItemHoverColor:      mappaint.HexString(theme.Toolbar.ItemHoverColor),
			Direction:           theme.Toolbar.Direction.String(),
			Position:            theme.Toolbar.Position.String(),
		},
	}

	for _, rule := range theme.Rules {
		document.Rules = append(document.Rules, ruleToDocumentRule(rule))
	}

	return document
}

func ruleToDocumentRule(rule mappaint.ColorRule) *Rule {
	switch rule := rule.(type) {
	case mappaint.ExactValueRule:
		return &Rule{
			Value: stringPtr(rule.Value),
			Color: mappaint.HexString(rule.Color),
			Label: rule.Label,
		}
	case mappaint.RangeRule:
		return &Rule{
			From:       float64Ptr(rule.From),
			To:         float64Ptr(rule.To),
			Color:      mappaint.HexString(rule.Color),
			MinOpacity: opacityPtr(rule.MinOpacity),
			MaxOpacity: opacityPtr(rule.MaxOpacity),
			Label:      rule.Label,
		}
	default:
		return nil
	}
}

// Encode writes the document as indented JSON.
func (d *ThemeDocument) Encode(w io.Writer) errorsx.Error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(d)
	if err != nil {
		return errorsx.Wrap(err)
	}

	return nil
}

func boolPtr(v bool) *bool {
	return &v
}

func float64Ptr(v float64) *float64 {
	return &v
}

func stringPtr(v string) *string {
	return &v
}

func opacityPtr(o mappaint.Opacity) *float64 {
	if !o.Set {
		return nil
	}

	return float64Ptr(o.Fraction)
}
