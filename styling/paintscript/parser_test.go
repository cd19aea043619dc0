package paintscript

import (
	"image/color"
	"testing"

	"github.com/jamesrr39/mappaint-app/mappaint"
	"github.com/jamesrr39/mappaint-app/styling/mapthemejson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rawTestSheet = `// traffic flow theme
@heavy: #d73027;
@calm: #1a9850;
@panel-grey: #424242;

/* Opacity pairs are written "min, max" and apply
   across the rule's value range. */

theme "traffic" {
	name: "Traffic flow";
	background: #fafafa;
	fallback: #bdbdbd;

	rule [value = "closed"] {
		color: @heavy;
		label: "Road closed";
	}

	rule [0 <= value <= 30] {
		color: @calm;
		opacity: 0.2, 0.8;
	}

	rule [30 <= value <= 100] {
		color: @heavy;
		label: "Heavy";
	}

	bubble {
		min-radius: 0.02;
		opacity: 0.5;
	}

	toolbar {
		icon-color: @panel-grey;
		direction: vertical;
		position: bottomRight;
	}
}
`

func stringPtr(s string) *string    { return &s }
func float64Ptr(f float64) *float64 { return &f }

func TestParseDocument(t *testing.T) {
	document, err := ParseDocument(rawTestSheet)
	require.NoError(t, err)

	want := &mapthemejson.ThemeDocument{
		Version:    mapthemejson.DocumentVersion,
		ID:         "traffic",
		Name:       "Traffic flow",
		Background: "#fafafa",
		Fallback:   "#bdbdbd",
		Rules: []*mapthemejson.Rule{
			{Value: stringPtr("closed"), Color: "#d73027", Label: "Road closed"},
			{From: float64Ptr(0), To: float64Ptr(30), Color: "#1a9850", MinOpacity: float64Ptr(0.2), MaxOpacity: float64Ptr(0.8)},
			{From: float64Ptr(30), To: float64Ptr(100), Color: "#d73027", Label: "Heavy"},
		},
		Bubble: &mapthemejson.BubbleObject{
			MinRadiusFraction: float64Ptr(0.02),
			Opacity:           float64Ptr(0.5),
		},
		Toolbar: &mapthemejson.ToolbarObject{
			IconColor: "#424242",
			Direction: "vertical",
			Position:  "bottomRight",
		},
	}
	assert.Equal(t, want, document)
}

func TestParse(t *testing.T) {
	theme, err := Parse(rawTestSheet)
	require.NoError(t, err)

	assert.Equal(t, "traffic", theme.ID)
	assert.Equal(t, "Traffic flow", theme.Name)
	assert.Equal(t, color.RGBA{0xfa, 0xfa, 0xfa, 0xff}, theme.BackgroundColor)
	assert.Equal(t, color.RGBA{0xbd, 0xbd, 0xbd, 0xff}, theme.FallbackColor)

	resolver, err := theme.NewResolver()
	require.NoError(t, err)

	match := resolver.Resolve(mappaint.StringValue("closed"))
	require.NotNil(t, match)
	assert.Equal(t, 0, match.RuleIndex)
	assert.Equal(t, "Road closed", match.LegendLabel)

	match = resolver.Resolve(mappaint.NumberValue(15))
	require.NotNil(t, match)
	assert.Equal(t, 1, match.RuleIndex)
	assert.Equal(t, color.RGBA{0x1a, 0x98, 0x50, 0xff}, match.Color)
	assert.InDelta(t, 0.5, match.Opacity.Fraction, 1e-9)
	assert.Equal(t, "0 - 30", match.LegendLabel)

	// settings blocks not in the script keep the built-in defaults
	assert.Equal(t, mappaint.DefaultDataLabelSettings(), theme.DataLabel)
	assert.Equal(t, mappaint.DefaultSelectionSettings(), theme.Selection)
	assert.Equal(t, mappaint.DefaultTooltipSettings(), theme.Tooltip)

	// partially filled blocks override only the supplied properties
	assert.InDelta(t, 0.02, theme.Bubble.MinRadiusFraction, 1e-9)
	assert.InDelta(t, mappaint.DefaultBubbleSettings().MaxRadiusFraction, theme.Bubble.MaxRadiusFraction, 1e-9)
	assert.Equal(t, mappaint.NewOpacity(0.5), theme.Bubble.Opacity)
	assert.Equal(t, mappaint.ToolbarDirectionVertical, theme.Toolbar.Direction)
	assert.Equal(t, mappaint.ToolbarPositionBottomRight, theme.Toolbar.Position)
	assert.Equal(t, mappaint.DefaultToolbarSettings().ItemBackgroundColor, theme.Toolbar.ItemBackgroundColor)
}

func TestParseDocument_variableAliases(t *testing.T) {
	document, err := ParseDocument(`@base: #112233;
@alias: @base;

theme "t" {
	background: @alias;
}
// trailing comment without a newline`)
	require.NoError(t, err)

	assert.Equal(t, "#112233", document.Background)
}

func TestParseDocument_quotedStrings(t *testing.T) {
	document, err := ParseDocument(`theme "spaced out id" {
	rule [value = "no data"] {
		color: #e0e0e0;
		label: "says \"n/a\"";
	}
}
`)
	require.NoError(t, err)

	assert.Equal(t, "spaced out id", document.ID)
	require.Len(t, document.Rules, 1)
	require.NotNil(t, document.Rules[0].Value)
	assert.Equal(t, "no data", *document.Rules[0].Value)
	assert.Equal(t, `says "n/a"`, document.Rules[0].Label)
}

func TestParseDocument_errors(t *testing.T) {
	type args struct {
		script string
	}
	tests := []struct {
		name    string
		args    args
		wantErr string
	}{
		{
			name:    "no theme block",
			args:    args{script: "@a: #fff;\n"},
			wantErr: "script has no theme block",
		},
		{
			name: "missing statement terminator",
			args: args{script: `theme "t" {
	background: #fff
}`},
			wantErr: `line 3: missing ';' after "background:#fff"`,
		},
		{
			name: "unknown rule property",
			args: args{script: `theme "t" {
	rule [value = "x"] {
		colour: #fff;
	}
}`},
			wantErr: `line 3: unknown rule property: "colour"`,
		},
		{
			name: "undefined variable",
			args: args{script: `theme "t" {
	background: @missing;
}`},
			wantErr: "line 2: undefined variable: @missing",
		},
		{
			name: "second theme block",
			args: args{script: `theme "a" {
}
theme "b" {
}`},
			wantErr: "line 3: only one theme block is allowed per script",
		},
		{
			name:    "statement outside any block",
			args:    args{script: "background: #fff;\n"},
			wantErr: `line 1: unexpected statement outside a theme block: "background:#fff"`,
		},
		{
			name: "unsupported condition",
			args: args{script: `theme "t" {
	rule [value > 5] {
	}
}`},
			wantErr: "couldn't understand condition",
		},
		{
			name:    "unterminated string",
			args:    args{script: "theme \"t\n"},
			wantErr: "line 1: unterminated string",
		},
		{
			name: "unclosed block at end of script",
			args: args{script: `theme "t" {
	background: #fff;
`},
			wantErr: "unexpected end of script: 1 unclosed block(s)",
		},
		{
			name: "block nested inside a rule",
			args: args{script: `theme "t" {
	rule [0 <= value <= 1] {
		bubble {
		}
	}
}`},
			wantErr: "line 3: a rule block may not contain other blocks",
		},
		{
			name: "opacity needs a pair",
			args: args{script: `theme "t" {
	rule [0 <= value <= 1] {
		opacity: 0.2;
	}
}`},
			wantErr: "opacity needs two values (min, max)",
		},
		{
			name: "variable alias loop",
			args: args{script: `@a: @b;
@b: @a;
theme "t" {
	background: @a;
}`},
			wantErr: "variable chain deeper than 10",
		},
		{
			name: "duplicate toolbar block",
			args: args{script: `theme "t" {
	toolbar {
	}
	toolbar {
	}
}`},
			wantErr: "line 4: duplicate toolbar block",
		},
		{
			name: "unknown block",
			args: args{script: `theme "t" {
	legend {
	}
}`},
			wantErr: `line 2: unknown block "legend"`,
		},
		{
			name:    "theme id must be quoted",
			args:    args{script: "theme t {\n}"},
			wantErr: `expected a quoted string but got "t"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument(tt.args.script)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
