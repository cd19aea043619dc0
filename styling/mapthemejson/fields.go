package mapthemejson

import (
	"image/color"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/mappaint-app/mappaint"
)

func parseColor(text, fieldName string) (color.RGBA, errorsx.Error) {
	c, err := mappaint.ParseHexColor(text)
	if err != nil {
		return color.RGBA{}, errorsx.Wrap(err, "field", fieldName)
	}

	return c, nil
}

func parseLabelOverflow(text string) (mappaint.LabelOverflow, errorsx.Error) {
	switch text {
	case "ellipsis":
		return mappaint.LabelOverflowEllipsis, nil
	case "visible":
		return mappaint.LabelOverflowVisible, nil
	case "hide":
		return mappaint.LabelOverflowHide, nil
	default:
		return 0, errorsx.Errorf("couldn't understand label overflow %q (known: ellipsis, visible, hide)", text)
	}
}

func parseToolbarDirection(text string) (mappaint.ToolbarDirection, errorsx.Error) {
	switch text {
	case "horizontal":
		return mappaint.ToolbarDirectionHorizontal, nil
	case "vertical":
		return mappaint.ToolbarDirectionVertical, nil
	default:
		return 0, errorsx.Errorf("couldn't understand toolbar direction %q (known: horizontal, vertical)", text)
	}
}

func parseToolbarPosition(text string) (mappaint.ToolbarPosition, errorsx.Error) {
	switch text {
	case "topLeft":
		return mappaint.ToolbarPositionTopLeft, nil
	case "topRight":
		return mappaint.ToolbarPositionTopRight, nil
	case "bottomLeft":
		return mappaint.ToolbarPositionBottomLeft, nil
	case "bottomRight":
		return mappaint.ToolbarPositionBottomRight, nil
	default:
		return 0, errorsx.Errorf("couldn't understand toolbar position %q (known: topLeft, topRight, bottomLeft, bottomRight)", text)
	}
}
