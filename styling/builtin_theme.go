package styling

import (
	"image/color"

	"github.com/jamesrr39/mappaint-app/mappaint"
)

// builtin theme palette, a diverging green-to-red ramp
var (
	builtinGreen      = color.RGBA{0x1a, 0x98, 0x50, 0xff}
	builtinLightGreen = color.RGBA{0x91, 0xcf, 0x60, 0xff}
	builtinYellow     = color.RGBA{0xfe, 0xe0, 0x8b, 0xff}
	builtinOrange     = color.RGBA{0xfc, 0x8d, 0x59, 0xff}
	builtinRed        = color.RGBA{0xd7, 0x30, 0x27, 0xff}
)

// NewBuiltinTheme returns the theme served when no other theme is
// configured. It expects values between 0 and 100 (e.g. percentages) plus a
// few common status categories.
func NewBuiltinTheme() *Theme {
	return &Theme{
		ID:              BUILTIN_THEMEID,
		Name:            "Built-in",
		BackgroundColor: color.RGBA{0xfa, 0xfa, 0xfa, 0xff},
		FallbackColor:   color.RGBA{0xbd, 0xbd, 0xbd, 0xff},
		Rules: []mappaint.ColorRule{
			mappaint.ExactValueRule{Value: "no data", Color: color.RGBA{0xe0, 0xe0, 0xe0, 0xff}, Label: "No data"},
			mappaint.RangeRule{From: 0, To: 20, Color: builtinGreen, MinOpacity: mappaint.NewOpacity(0.4), MaxOpacity: mappaint.NewOpacity(1)},
			mappaint.RangeRule{From: 20, To: 40, Color: builtinLightGreen},
			mappaint.RangeRule{From: 40, To: 60, Color: builtinYellow},
			mappaint.RangeRule{From: 60, To: 80, Color: builtinOrange},
			mappaint.RangeRule{From: 80, To: 100, Color: builtinRed},
		},
		DataLabel: mappaint.DefaultDataLabelSettings(),
		Bubble:    mappaint.DefaultBubbleSettings(),
		Selection: mappaint.DefaultSelectionSettings(),
		Tooltip:   mappaint.DefaultTooltipSettings(),
		Toolbar:   mappaint.DefaultToolbarSettings(),
	}
}
