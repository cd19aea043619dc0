package paintscript

import (
	"strconv"
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/mappaint-app/styling"
	"github.com/jamesrr39/mappaint-app/styling/mapthemejson"
)

// Parse reads a paint script and builds the theme it describes.
func Parse(script string) (*styling.Theme, errorsx.Error) {
	document, err := ParseDocument(script)
	if err != nil {
		return nil, err
	}

	return document.ToTheme()
}

// ParseDocument reads a paint script into the document form shared with the
// JSON theme format. A script defines variables at the top level and exactly
// one theme block:
//
//	@heavy: #d73027;
//
//	theme "traffic" {
//		name: "Traffic";
//		background: #fafafa;
//
//		rule [value = "closed"] {
//			color: @heavy;
//			label: "Closed";
//		}
//
//		rule [0 <= value <= 30] {
//			color: #1a9850;
//			opacity: 0.2, 0.8;
//		}
//
//		toolbar {
//			position: bottomRight;
//		}
//	}
//
// Variables must be defined before the statement that uses them.
func ParseDocument(script string) (*mapthemejson.ThemeDocument, errorsx.Error) {
	p := &parser{
		variables: make(map[string]string),
		line:      1,
	}

	var currentStatement string
	var inQuote, escaped bool
	scriptLen := len(script)
	var nextChar rune
	for i := 0; i < scriptLen; i++ {
		thisChar := rune(script[i])
		if thisChar == TokenNewLine {
			p.line++
		}

		if inQuote {
			// inside a string, spaces are kept and comment and block tokens
			// have no meaning
			switch {
			case escaped:
				escaped = false
			case thisChar == TokenEscape:
				escaped = true
			case thisChar == TokenQuote:
				inQuote = false
			case thisChar == TokenNewLine:
				return nil, errorsx.Errorf("line %d: unterminated string", p.line-1)
			}
			currentStatement += string(thisChar)
			continue
		}

		hasNextChar := i != scriptLen-1
		if hasNextChar {
			// handle 2 character sequences

			nextChar = rune(script[i+1])
			next2Chars := string(thisChar) + string(nextChar)
			switch next2Chars {
			case TokenOpenBlockComment:
				// skip to end of comment
				closeIdx := strings.Index(script[i:], TokenCloseBlockComment)
				if closeIdx == -1 {
					return nil, errorsx.Errorf("line %d: unclosed block comment", p.line)
				}
				p.line += strings.Count(script[i:i+closeIdx], string(TokenNewLine))
				i += closeIdx + 1
				continue
			case TokenOpenLineComment:
				// skip to just before the newline, so it is still counted
				newLineIdx := strings.Index(script[i:], string(TokenNewLine))
				if newLineIdx == -1 {
					i = scriptLen - 1
					continue
				}
				i += newLineIdx - 1
				continue
			}
		}

		// now we have dealt with 2-char sequences, deal with this char
		switch thisChar {
		case TokenQuote:
			inQuote = true
			currentStatement += string(thisChar)
		case TokenOpenBlock:
			err := p.openBlock(currentStatement)
			if err != nil {
				return nil, err
			}
			currentStatement = ""
		case TokenCloseBlock:
			if currentStatement != "" {
				return nil, errorsx.Errorf("line %d: missing '%c' after %q", p.line, TokenEndStatement, currentStatement)
			}
			if len(p.blocks) == 0 {
				return nil, errorsx.Errorf("line %d: unexpected '%c'", p.line, TokenCloseBlock)
			}
			p.blocks = p.blocks[:len(p.blocks)-1]
		case TokenEndStatement:
			// process and reset statement
			err := p.processStatement(currentStatement)
			if err != nil {
				return nil, err
			}
			currentStatement = ""
		case TokenSpace, TokenTab, TokenNewLine, TokenCarriage:
		// do nothing
		default:
			currentStatement += string(thisChar)
		}
	}

	if inQuote {
		return nil, errorsx.Errorf("unexpected end of script: unterminated string")
	}

	if len(p.blocks) != 0 {
		return nil, errorsx.Errorf("unexpected end of script: %d unclosed block(s)", len(p.blocks))
	}

	if currentStatement != "" {
		return nil, errorsx.Errorf("unexpected end of script: missing '%c' after %q", TokenEndStatement, currentStatement)
	}

	if p.document == nil {
		return nil, errorsx.Errorf("script has no theme block")
	}

	return p.document, nil
}

const (
	themeBlockPrefix = "theme"
	ruleBlockPrefix  = "rule["
)

func (p *parser) openBlock(header string) errorsx.Error {
	if len(p.blocks) == 0 {
		// top level: only a theme block may open here
		if !strings.HasPrefix(header, themeBlockPrefix) {
			return errorsx.Errorf("line %d: unexpected block %q (expected: theme \"my theme id\")", p.line, header)
		}

		if p.document != nil {
			return errorsx.Errorf("line %d: only one theme block is allowed per script", p.line)
		}

		id, err := unquote(strings.TrimPrefix(header, themeBlockPrefix))
		if err != nil {
			return errorsx.Wrap(err, "line", p.line)
		}

		p.document = &mapthemejson.ThemeDocument{
			Version: mapthemejson.DocumentVersion,
			ID:      id,
		}
		p.blocks = append(p.blocks, &block{Kind: blockKindTheme})

		return nil
	}

	parentKind := p.blocks[len(p.blocks)-1].Kind
	if parentKind != blockKindTheme {
		return errorsx.Errorf("line %d: a %s block may not contain other blocks", p.line, parentKind)
	}

	if strings.HasPrefix(header, ruleBlockPrefix) {
		return p.openRuleBlock(header)
	}

	newBlock := new(block)
	switch header {
	case blockKindDataLabel.String():
		if p.document.DataLabel != nil {
			return p.duplicateBlockErr(blockKindDataLabel)
		}
		p.document.DataLabel = new(mapthemejson.DataLabelObject)
		newBlock.Kind = blockKindDataLabel
	case blockKindBubble.String():
		if p.document.Bubble != nil {
			return p.duplicateBlockErr(blockKindBubble)
		}
		p.document.Bubble = new(mapthemejson.BubbleObject)
		newBlock.Kind = blockKindBubble
	case blockKindSelection.String():
		if p.document.Selection != nil {
			return p.duplicateBlockErr(blockKindSelection)
		}
		p.document.Selection = new(mapthemejson.SelectionObject)
		newBlock.Kind = blockKindSelection
	case blockKindTooltip.String():
		if p.document.Tooltip != nil {
			return p.duplicateBlockErr(blockKindTooltip)
		}
		p.document.Tooltip = new(mapthemejson.TooltipObject)
		newBlock.Kind = blockKindTooltip
	case blockKindToolbar.String():
		if p.document.Toolbar != nil {
			return p.duplicateBlockErr(blockKindToolbar)
		}
		p.document.Toolbar = new(mapthemejson.ToolbarObject)
		newBlock.Kind = blockKindToolbar
	default:
		return errorsx.Errorf("line %d: unknown block %q", p.line, header)
	}

	p.blocks = append(p.blocks, newBlock)

	return nil
}

func (p *parser) openRuleBlock(header string) errorsx.Error {
	if !strings.HasSuffix(header, "]") {
		return errorsx.Errorf("line %d: missing ']' in rule condition %q", p.line, header)
	}

	cond, err := parseCondition(header[len(ruleBlockPrefix) : len(header)-1])
	if err != nil {
		return errorsx.Wrap(err, "line", p.line)
	}

	rule := new(mapthemejson.Rule)
	switch c := cond.(type) {
	case exactCondition:
		rule.Value = &c.Value
	case rangeCondition:
		rule.From = &c.From
		rule.To = &c.To
	}

	p.document.Rules = append(p.document.Rules, rule)
	p.blocks = append(p.blocks, &block{Kind: blockKindRule, Rule: rule})

	return nil
}

func (p *parser) duplicateBlockErr(kind blockKind) errorsx.Error {
	return errorsx.Errorf("line %d: duplicate %s block", p.line, kind)
}

func (p *parser) processStatement(statement string) errorsx.Error {
	if statement == "" {
		// tolerate a stray ';'
		return nil
	}

	idxColon := strings.Index(statement, ":")
	if idxColon == -1 {
		return errorsx.Errorf("line %d: unprocessable statement: %q", p.line, statement)
	}
	key := statement[:idxColon]
	rawValue := statement[idxColon+1:]

	if len(p.blocks) == 0 {
		// top level: only variable assignments live here. Values are kept
		// unresolved so a variable may alias another variable.
		if !strings.HasPrefix(key, string(TokenVariable)) {
			return errorsx.Errorf("line %d: unexpected statement outside a theme block: %q", p.line, statement)
		}
		p.variables[strings.TrimPrefix(key, string(TokenVariable))] = rawValue
		return nil
	}

	value, err := p.resolveValue(rawValue)
	if err != nil {
		return err
	}

	currentBlock := p.blocks[len(p.blocks)-1]
	switch currentBlock.Kind {
	case blockKindTheme:
		return p.processThemeStatement(key, value)
	case blockKindRule:
		return p.processRuleStatement(currentBlock.Rule, key, value)
	case blockKindDataLabel:
		return p.processDataLabelStatement(key, value)
	case blockKindBubble:
		return p.processBubbleStatement(key, value)
	case blockKindSelection:
		return p.processSelectionStatement(key, value)
	case blockKindTooltip:
		return p.processTooltipStatement(key, value)
	case blockKindToolbar:
		return p.processToolbarStatement(key, value)
	}

	return errorsx.Errorf("line %d: unhandled block kind: %v", p.line, currentBlock.Kind)
}

// resolveValue follows variable references until a literal value is reached.
func (p *parser) resolveValue(value string) (string, errorsx.Error) {
	const maxChainDepth = 10

	for depth := 0; strings.HasPrefix(value, string(TokenVariable)); depth++ {
		if depth == maxChainDepth {
			return "", errorsx.Errorf("line %d: variable chain deeper than %d resolving %q", p.line, maxChainDepth, value)
		}

		name := strings.TrimPrefix(value, string(TokenVariable))
		resolved, ok := p.variables[name]
		if !ok {
			return "", errorsx.Errorf("line %d: undefined variable: @%s", p.line, name)
		}
		value = resolved
	}

	return value, nil
}

func (p *parser) processThemeStatement(key, value string) errorsx.Error {
	switch key {
	case "name":
		name, err := unquote(value)
		if err != nil {
			return errorsx.Wrap(err, "line", p.line)
		}
		p.document.Name = name
	case "background":
		p.document.Background = value
	case "fallback":
		p.document.Fallback = value
	default:
		return p.unknownKeyErr(blockKindTheme, key)
	}

	return nil
}

func (p *parser) processRuleStatement(rule *mapthemejson.Rule, key, value string) errorsx.Error {
	switch key {
	case "color":
		rule.Color = value
	case "label":
		label, err := unquote(value)
		if err != nil {
			return errorsx.Wrap(err, "line", p.line)
		}
		rule.Label = label
	case "opacity":
		minOpacity, maxOpacity, err := p.parseOpacityPair(value)
		if err != nil {
			return err
		}
		rule.MinOpacity = &minOpacity
		rule.MaxOpacity = &maxOpacity
	default:
		return p.unknownKeyErr(blockKindRule, key)
	}

	return nil
}

func (p *parser) processDataLabelStatement(key, value string) errorsx.Error {
	object := p.document.DataLabel
	switch key {
	case "visible":
		visible, err := p.parseBoolValue(value)
		if err != nil {
			return err
		}
		object.Visible = visible
	case "text-color":
		object.TextColor = value
	case "font-size":
		fraction, err := p.parseFloatValue(value)
		if err != nil {
			return err
		}
		object.FontSizeFraction = fraction
	case "overflow":
		object.Overflow = value
	default:
		return p.unknownKeyErr(blockKindDataLabel, key)
	}

	return nil
}

func (p *parser) processBubbleStatement(key, value string) errorsx.Error {
	object := p.document.Bubble
	switch key {
	case "min-radius":
		fraction, err := p.parseFloatValue(value)
		if err != nil {
			return err
		}
		object.MinRadiusFraction = fraction
	case "max-radius":
		fraction, err := p.parseFloatValue(value)
		if err != nil {
			return err
		}
		object.MaxRadiusFraction = fraction
	case "color":
		object.Color = value
	case "stroke-color":
		object.StrokeColor = value
	case "stroke-width":
		width, err := p.parseFloatValue(value)
		if err != nil {
			return err
		}
		object.StrokeWidth = width
	case "opacity":
		opacity, err := p.parseFloatValue(value)
		if err != nil {
			return err
		}
		object.Opacity = opacity
	default:
		return p.unknownKeyErr(blockKindBubble, key)
	}

	return nil
}

func (p *parser) processSelectionStatement(key, value string) errorsx.Error {
	object := p.document.Selection
	switch key {
	case "fill-color":
		object.FillColor = value
	case "stroke-color":
		object.StrokeColor = value
	case "stroke-width":
		width, err := p.parseFloatValue(value)
		if err != nil {
			return err
		}
		object.StrokeWidth = width
	case "dim-non-selected":
		dim, err := p.parseBoolValue(value)
		if err != nil {
			return err
		}
		object.DimNonSelected = dim
	case "dim-opacity":
		opacity, err := p.parseFloatValue(value)
		if err != nil {
			return err
		}
		object.DimOpacity = opacity
	default:
		return p.unknownKeyErr(blockKindSelection, key)
	}

	return nil
}

func (p *parser) processTooltipStatement(key, value string) errorsx.Error {
	object := p.document.Tooltip
	switch key {
	case "visible":
		visible, err := p.parseBoolValue(value)
		if err != nil {
			return err
		}
		object.Visible = visible
	case "background-color":
		object.BackgroundColor = value
	case "text-color":
		object.TextColor = value
	case "corner-radius":
		fraction, err := p.parseFloatValue(value)
		if err != nil {
			return err
		}
		object.CornerRadiusFraction = fraction
	default:
		return p.unknownKeyErr(blockKindTooltip, key)
	}

	return nil
}

func (p *parser) processToolbarStatement(key, value string) errorsx.Error {
	object := p.document.Toolbar
	switch key {
	case "visible":
		visible, err := p.parseBoolValue(value)
		if err != nil {
			return err
		}
		object.Visible = visible
	case "icon-color":
		object.IconColor = value
	case "item-background-color":
		object.ItemBackgroundColor = value
	case "item-hover-color":
		object.ItemHoverColor = value
	case "direction":
		object.Direction = value
	case "position":
		object.Position = value
	default:
		return p.unknownKeyErr(blockKindToolbar, key)
	}

	return nil
}

// parseOpacityPair reads "min, max", e.g. "0.2, 0.8".
func (p *parser) parseOpacityPair(value string) (float64, float64, errorsx.Error) {
	fragments := strings.Split(value, ",")
	if len(fragments) != 2 {
		return 0, 0, errorsx.Errorf("line %d: opacity needs two values (min, max) but got %q", p.line, value)
	}

	minOpacity, err := strconv.ParseFloat(fragments[0], 64)
	if err != nil {
		return 0, 0, errorsx.Errorf("line %d: couldn't understand opacity value %q", p.line, fragments[0])
	}

	maxOpacity, err := strconv.ParseFloat(fragments[1], 64)
	if err != nil {
		return 0, 0, errorsx.Errorf("line %d: couldn't understand opacity value %q", p.line, fragments[1])
	}

	return minOpacity, maxOpacity, nil
}

func (p *parser) parseBoolValue(value string) (*bool, errorsx.Error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil, errorsx.Errorf("line %d: couldn't understand boolean value %q", p.line, value)
	}

	return &b, nil
}

func (p *parser) parseFloatValue(value string) (*float64, errorsx.Error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, errorsx.Errorf("line %d: couldn't understand numeric value %q", p.line, value)
	}

	return &f, nil
}

func (p *parser) unknownKeyErr(kind blockKind, key string) errorsx.Error {
	return errorsx.Errorf("line %d: unknown %s property: %q", p.line, kind, key)
}
