package mappaint

import (
	"fmt"
	"image/color"

	"github.com/jamesrr39/goutil/errorsx"
)

type LabelOverflow int

const (
	LabelOverflowEllipsis LabelOverflow = 0
	LabelOverflowVisible  LabelOverflow = 1
	LabelOverflowHide     LabelOverflow = 2
)

func (o LabelOverflow) String() string {
	switch o {
	case LabelOverflowEllipsis:
		return "ellipsis"
	case LabelOverflowVisible:
		return "visible"
	case LabelOverflowHide:
		return "hide"
	default:
		return fmt.Sprintf("unknown (%d)", int(o))
	}
}

// DataLabelSettings styles the text labels drawn over shapes and bubbles.
type DataLabelSettings struct {
	Visible          bool
	TextColor        color.RGBA
	FontSizeFraction float64 // of the shortest widget side
	Overflow         LabelOverflow
}

func DefaultDataLabelSettings() DataLabelSettings {
	return DataLabelSettings{
		Visible:          true,
		TextColor:        color.RGBA{0x21, 0x21, 0x21, 0xff},
		FontSizeFraction: 0.03,
		Overflow:         LabelOverflowEllipsis,
	}
}

func (s DataLabelSettings) Validate() errorsx.Error {
	if s.FontSizeFraction <= 0 || s.FontSizeFraction > 1 {
		return errorsx.Errorf("data label font size fraction must be between 0 (exclusive) and 1 but was %v", s.FontSizeFraction)
	}

	switch s.Overflow {
	case LabelOverflowEllipsis, LabelOverflowVisible, LabelOverflowHide:
	default:
		return errorsx.Errorf("unknown data label overflow: %d", int(s.Overflow))
	}

	return nil
}

func (s DataLabelSettings) String() string {
	return fmt.Sprintf("data labels (visible: %t, color: %s, font size: %v, overflow: %s)",
		s.Visible, HexString(s.TextColor), s.FontSizeFraction, s.Overflow)
}

// BubbleSettings styles the proportional circles drawn for point data.
type BubbleSettings struct {
	MinRadiusFraction float64 // of the shortest widget side
	MaxRadiusFraction float64
	Color             color.RGBA
	StrokeColor       color.RGBA
	StrokeWidth       float64
	Opacity           Opacity
}

func DefaultBubbleSettings() BubbleSettings {
	return BubbleSettings{
		MinRadiusFraction: 0.01,
		MaxRadiusFraction: 0.05,
		Color:             color.RGBA{0x2a, 0x6f, 0xdb, 0xff},
		StrokeColor:       color.RGBA{0xff, 0xff, 0xff, 0xff},
		StrokeWidth:       1,
		Opacity:           NewOpacity(0.75),
	}
}

func (s BubbleSettings) Validate() errorsx.Error {
	if s.MinRadiusFraction <= 0 {
		return errorsx.Errorf("bubble min radius fraction must be greater than 0 but was %v", s.MinRadiusFraction)
	}

	if s.MaxRadiusFraction < s.MinRadiusFraction {
		return errorsx.Errorf("bubble max radius fraction (%v) must not be smaller than the min radius fraction (%v)", s.MaxRadiusFraction, s.MinRadiusFraction)
	}

	if s.MaxRadiusFraction > 0.5 {
		return errorsx.Errorf("bubble max radius fraction must not be greater than 0.5 but was %v", s.MaxRadiusFraction)
	}

	if s.StrokeWidth < 0 {
		return errorsx.Errorf("bubble stroke width must not be negative but was %v", s.StrokeWidth)
	}

	err := s.Opacity.Validate()
	if err != nil {
		return errorsx.Wrap(err, "setting", "bubble")
	}

	return nil
}

func (s BubbleSettings) String() string {
	return fmt.Sprintf("bubbles (radius: %v to %v, color: %s, stroke: %s width %v, %s)",
		s.MinRadiusFraction, s.MaxRadiusFraction, HexString(s.Color), HexString(s.StrokeColor), s.StrokeWidth, s.Opacity)
}

// SelectionSettings styles the shape or bubble the user selected.
type SelectionSettings struct {
	FillColor   color.RGBA
	StrokeColor color.RGBA
	StrokeWidth float64
	// DimNonSelected fades everything else out while something is selected.
	// DimOpacity is the opacity applied to the faded items.
	DimNonSelected bool
	DimOpacity     Opacity
}

func DefaultSelectionSettings() SelectionSettings {
	return SelectionSettings{
		FillColor:      color.RGBA{0xff, 0xc1, 0x07, 0xff},
		StrokeColor:    color.RGBA{0x21, 0x21, 0x21, 0xff},
		StrokeWidth:    2,
		DimNonSelected: true,
		DimOpacity:     NewOpacity(0.3),
	}
}

func (s SelectionSettings) Validate() errorsx.Error {
	if s.StrokeWidth < 0 {
		return errorsx.Errorf("selection stroke width must not be negative but was %v", s.StrokeWidth)
	}

	err := s.DimOpacity.Validate()
	if err != nil {
		return errorsx.Wrap(err, "setting", "selection")
	}

	return nil
}

func (s SelectionSettings) String() string {
	return fmt.Sprintf("selection (fill: %s, stroke: %s width %v, dim others: %t)",
		HexString(s.FillColor), HexString(s.StrokeColor), s.StrokeWidth, s.DimNonSelected)
}

// TooltipSettings styles the hover tooltip box.
type TooltipSettings struct {
	Visible              bool
	BackgroundColor      color.RGBA
	TextColor            color.RGBA
	CornerRadiusFraction float64 // of the tooltip height
}

func DefaultTooltipSettings() TooltipSettings {
	return TooltipSettings{
		Visible:              true,
		BackgroundColor:      color.RGBA{0x32, 0x32, 0x32, 0xe6},
		TextColor:            color.RGBA{0xff, 0xff, 0xff, 0xff},
		CornerRadiusFraction: 0.2,
	}
}

func (s TooltipSettings) Validate() errorsx.Error {
	if s.CornerRadiusFraction < 0 || s.CornerRadiusFraction > 0.5 {
		return errorsx.Errorf("tooltip corner radius fraction must be between 0 and 0.5 but was %v", s.CornerRadiusFraction)
	}

	return nil
}

func (s TooltipSettings) String() string {
	return fmt.Sprintf("tooltip (visible: %t, background: %s, text: %s)",
		s.Visible, HexString(s.BackgroundColor), HexString(s.TextColor))
}

type ToolbarDirection int

const (
	ToolbarDirectionHorizontal ToolbarDirection = 0
	ToolbarDirectionVertical   ToolbarDirection = 1
)

func (d ToolbarDirection) String() string {
	switch d {
	case ToolbarDirectionHorizontal:
		return "horizontal"
	case ToolbarDirectionVertical:
		return "vertical"
	default:
		return fmt.Sprintf("unknown (%d)", int(d))
	}
}

type ToolbarPosition int

const (
	ToolbarPositionTopLeft     ToolbarPosition = 0
	ToolbarPositionTopRight    ToolbarPosition = 1
	ToolbarPositionBottomLeft  ToolbarPosition = 2
	ToolbarPositionBottomRight ToolbarPosition = 3
)

func (p ToolbarPosition) String() string {
	switch p {
	case ToolbarPositionTopLeft:
		return "topLeft"
	case ToolbarPositionTopRight:
		return "topRight"
	case ToolbarPositionBottomLeft:
		return "bottomLeft"
	case ToolbarPositionBottomRight:
		return "bottomRight"
	default:
		return fmt.Sprintf("unknown (%d)", int(p))
	}
}

// ToolbarSettings styles the zoom/pan toolbar overlaid on the widget.
type ToolbarSettings struct {
	Visible             bool
	IconColor           color.RGBA
	ItemBackgroundColor color.RGBA
	ItemHoverColor      color.RGBA
	Direction           ToolbarDirection
	Position            ToolbarPosition
}

func DefaultToolbarSettings() ToolbarSettings {
	return ToolbarSettings{
		Visible:             true,
		IconColor:           color.RGBA{0x42, 0x42, 0x42, 0xff},
		ItemBackgroundColor: color.RGBA{0xfa, 0xfa, 0xfa, 0xff},
		ItemHoverColor:      color.RGBA{0xe0, 0xe0, 0xe0, 0xff},
		Direction:           ToolbarDirectionHorizontal,
		Position:            ToolbarPositionTopRight,
	}
}

func (s ToolbarSettings) Validate() errorsx.Error {
	switch s.Direction {
	case ToolbarDirectionHorizontal, ToolbarDirectionVertical:
	default:
		return errorsx.Errorf("unknown toolbar direction: %d", int(s.Direction))
	}

	switch s.Position {
	case ToolbarPositionTopLeft, ToolbarPositionTopRight, ToolbarPositionBottomLeft, ToolbarPositionBottomRight:
	default:
		return errorsx.Errorf("unknown toolbar position: %d", int(s.Position))
	}

	return nil
}

func (s ToolbarSettings) String() string {
	return fmt.Sprintf("toolbar (visible: %t, %s at %s)", s.Visible, s.Direction, s.Position)
}
