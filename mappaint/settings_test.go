package mappaint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettingsAreValid(t *testing.T) {
	assert.NoError(t, DefaultDataLabelSettings().Validate())
	assert.NoError(t, DefaultBubbleSettings().Validate())
	assert.NoError(t, DefaultSelectionSettings().Validate())
	assert.NoError(t, DefaultTooltipSettings().Validate())
	assert.NoError(t, DefaultToolbarSettings().Validate())
}

func TestDataLabelSettings_Validate(t *testing.T) {
	settings := DefaultDataLabelSettings()

	settings.FontSizeFraction = 0
	assert.Error(t, settings.Validate())

	settings.FontSizeFraction = 1.5
	assert.Error(t, settings.Validate())

	settings = DefaultDataLabelSettings()
	settings.Overflow = LabelOverflow(99)
	assert.Error(t, settings.Validate())
}

func TestBubbleSettings_Validate(t *testing.T) {
	settings := DefaultBubbleSettings()

	settings.MinRadiusFraction = 0
	assert.Error(t, settings.Validate())

	settings = DefaultBubbleSettings()
	settings.MinRadiusFraction = 0.1
	settings.MaxRadiusFraction = 0.05
	assert.Error(t, settings.Validate())

	settings = DefaultBubbleSettings()
	settings.MaxRadiusFraction = 0.6
	assert.Error(t, settings.Validate())

	settings = DefaultBubbleSettings()
	settings.StrokeWidth = -1
	assert.Error(t, settings.Validate())

	settings = DefaultBubbleSettings()
	settings.Opacity = NewOpacity(0)
	assert.Error(t, settings.Validate())
}

func TestSelectionSettings_Validate(t *testing.T) {
	settings := DefaultSelectionSettings()

	settings.StrokeWidth = -0.5
	assert.Error(t, settings.Validate())

	settings = DefaultSelectionSettings()
	settings.DimOpacity = NewOpacity(2)
	assert.Error(t, settings.Validate())
}

func TestTooltipSettings_Validate(t *testing.T) {
	settings := DefaultTooltipSettings()

	settings.CornerRadiusFraction = -0.1
	assert.Error(t, settings.Validate())

	settings.CornerRadiusFraction = 0.6
	assert.Error(t, settings.Validate())
}

func TestToolbarSettings_Validate(t *testing.T) {
	settings := DefaultToolbarSettings()

	settings.Direction = ToolbarDirection(7)
	assert.Error(t, settings.Validate())

	settings = DefaultToolbarSettings()
	settings.Position = ToolbarPosition(-1)
	assert.Error(t, settings.Validate())
}

func TestSettingsEquality(t *testing.T) {
	// settings are comparable value types, so a re-render skip check is a
	// plain == comparison
	assert.True(t, DefaultBubbleSettings() == DefaultBubbleSettings())
	assert.True(t, DefaultToolbarSettings() == DefaultToolbarSettings())

	changed := DefaultBubbleSettings()
	changed.StrokeWidth++
	assert.False(t, DefaultBubbleSettings() == changed)
}

func TestSettingsString(t *testing.T) {
	assert.Equal(t,
		"toolbar (visible: true, horizontal at topRight)",
		DefaultToolbarSettings().String())
	assert.Equal(t,
		"bubbles (radius: 0.01 to 0.05, color: #2a6fdb, stroke: #ffffff width 1, opacity 0.75)",
		DefaultBubbleSettings().String())
}
