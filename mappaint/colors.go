package mappaint

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
)

// ParseHexColor parses a "#rgb", "#rrggbb" or "#rrggbbaa" color string.
func ParseHexColor(text string) (color.RGBA, errorsx.Error) {
	if !strings.HasPrefix(text, "#") {
		return color.RGBA{}, errorsx.Errorf("color must start with '#' but was %q", text)
	}

	hexPart := strings.ToLower(text[1:])

	if len(hexPart) == 3 {
		// short form, "abc" means "aabbcc"
		var expanded strings.Builder
		for _, r := range hexPart {
			expanded.WriteRune(r)
			expanded.WriteRune(r)
		}
		hexPart = expanded.String()
	}

	alpha := uint64(0xff)
	switch len(hexPart) {
	case 6:
	case 8:
		var err error
		alpha, err = strconv.ParseUint(hexPart[6:], 16, 8)
		if err != nil {
			return color.RGBA{}, errorsx.Errorf("couldn't understand color %q", text)
		}
		hexPart = hexPart[:6]
	default:
		return color.RGBA{}, errorsx.Errorf("color must have 3, 6 or 8 hex digits but was %q", text)
	}

	val, err := strconv.ParseUint(hexPart, 16, 32)
	if err != nil {
		return color.RGBA{}, errorsx.Errorf("couldn't understand color %q", text)
	}

	return color.RGBA{
		R: uint8(val >> 16),
		G: uint8(val >> 8),
		B: uint8(val),
		A: uint8(alpha),
	}, nil
}

// HexString renders c as "#rrggbb", or "#rrggbbaa" when not fully opaque.
func HexString(c color.RGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}

	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
