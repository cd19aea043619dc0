package paintscript

import "github.com/jamesrr39/mappaint-app/styling/mapthemejson"

type blockKind int

const (
	blockKindTheme blockKind = iota
	blockKindRule
	blockKindDataLabel
	blockKindBubble
	blockKindSelection
	blockKindTooltip
	blockKindToolbar
)

func (k blockKind) String() string {
	switch k {
	case blockKindTheme:
		return "theme"
	case blockKindRule:
		return "rule"
	case blockKindDataLabel:
		return "data-label"
	case blockKindBubble:
		return "bubble"
	case blockKindSelection:
		return "selection"
	case blockKindTooltip:
		return "tooltip"
	case blockKindToolbar:
		return "toolbar"
	}
	return "unknown"
}

// block is one entry on the parser's open-block stack. Rule is only set for
// blockKindRule.
type block struct {
	Kind blockKind
	Rule *mapthemejson.Rule
}

type parser struct {
	variables map[string]string
	document  *mapthemejson.ThemeDocument
	blocks    []*block
	line      int
}
