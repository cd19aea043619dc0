package styling

import (
	"testing"

	"github.com/jamesrr39/mappaint-app/mappaint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewThemeSet(t *testing.T) {
	theme1 := NewBuiltinTheme()
	theme2 := NewBuiltinTheme()
	theme2.ID = "other"

	themeSet, err := NewThemeSet([]*Theme{theme1, theme2}, "other")
	require.NoError(t, err)

	assert.Equal(t, theme2, themeSet.GetDefaultTheme())
	assert.Equal(t, "other", themeSet.GetDefaultThemeID())
	assert.Equal(t, theme1, themeSet.GetThemeByID(BUILTIN_THEMEID))
	assert.Nil(t, themeSet.GetThemeByID("nonexistent"))
	assert.Equal(t, []string{BUILTIN_THEMEID, "other"}, themeSet.GetAllThemeIDs())
}

func TestNewThemeSet_duplicateID(t *testing.T) {
	_, err := NewThemeSet([]*Theme{NewBuiltinTheme(), NewBuiltinTheme()}, BUILTIN_THEMEID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate theme ID")
}

func TestNewThemeSet_defaultNotFound(t *testing.T) {
	_, err := NewThemeSet([]*Theme{NewBuiltinTheme()}, "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `default ID "missing" not found`)
}

func TestBuiltinTheme(t *testing.T) {
	theme := NewBuiltinTheme()
	require.NoError(t, theme.Validate())

	resolver, err := theme.NewResolver()
	require.NoError(t, err)

	match := resolver.Resolve(mappaint.StringValue("no data"))
	require.NotNil(t, match)
	assert.Equal(t, "No data", match.LegendLabel)

	match = resolver.Resolve(mappaint.NumberValue(10))
	require.NotNil(t, match)
	assert.Equal(t, builtinGreen, match.Color)
	assert.True(t, match.Opacity.Set)

	// boundary values belong to the earlier range (first match wins)
	match = resolver.Resolve(mappaint.NumberValue(20))
	require.NotNil(t, match)
	assert.Equal(t, builtinGreen, match.Color)

	assert.Nil(t, resolver.Resolve(mappaint.NumberValue(-1)))
	assert.Nil(t, resolver.Resolve(mappaint.NumberValue(100.5)))
}

func TestTheme_Validate(t *testing.T) {
	theme := NewBuiltinTheme()
	require.NoError(t, theme.Validate())

	theme.ID = ""
	assert.Error(t, theme.Validate())

	theme = NewBuiltinTheme()
	theme.Rules = append(theme.Rules, mappaint.RangeRule{From: 5, To: 5})
	assert.Error(t, theme.Validate())

	theme = NewBuiltinTheme()
	theme.Bubble.MinRadiusFraction = -1
	assert.Error(t, theme.Validate())
}

func TestTheme_Equal(t *testing.T) {
	a := NewBuiltinTheme()
	b := NewBuiltinTheme()
	assert.True(t, a.Equal(b))

	b.Rules[2] = mappaint.RangeRule{From: 20, To: 45, Color: builtinLightGreen}
	assert.False(t, a.Equal(b))

	b = NewBuiltinTheme()
	b.Toolbar.Position = mappaint.ToolbarPositionBottomLeft
	assert.False(t, a.Equal(b))

	b = NewBuiltinTheme()
	b.Rules = b.Rules[:len(b.Rules)-1]
	assert.False(t, a.Equal(b))

	var nilTheme *Theme
	assert.False(t, a.Equal(nilTheme))
	assert.True(t, nilTheme.Equal(nil))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "42", FormatNumber(42))
	assert.Equal(t, "42.5", FormatNumber(42.5))
	assert.Equal(t, "-0.25", FormatNumber(-0.25))
	assert.Equal(t, "0", FormatNumber(0))
}
