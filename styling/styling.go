package styling

import (
	"image/color"
	"sort"
	"strconv"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/mappaint-app/mappaint"
)

const BUILTIN_THEMEID = "__mappaint_builtin"

// FormatNumber is the number rendering used for the themes in this
// repository: plain decimal, trailing zeros trimmed. Resolvers still take it
// explicitly; a widget with other precision or locale needs supplies its
// own.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Theme bundles everything a map widget needs to paint itself: the ordered
// color rules plus the widget style settings.
type Theme struct {
	ID              string
	Name            string
	BackgroundColor color.RGBA
	// FallbackColor fills shapes whose value matches no rule.
	FallbackColor color.RGBA
	Rules         []mappaint.ColorRule
	DataLabel     mappaint.DataLabelSettings
	Bubble        mappaint.BubbleSettings
	Selection     mappaint.SelectionSettings
	Tooltip       mappaint.TooltipSettings
	Toolbar       mappaint.ToolbarSettings
}

func (t *Theme) Validate() errorsx.Error {
	if t.ID == "" {
		return errorsx.Errorf("theme must have an ID")
	}

	err := mappaint.ValidateRules(t.Rules)
	if err != nil {
		return errorsx.Wrap(err, "themeID", t.ID)
	}

	for _, validate := range []func() errorsx.Error{
		t.DataLabel.Validate,
		t.Bubble.Validate,
		t.Selection.Validate,
		t.Tooltip.Validate,
		t.Toolbar.Validate,
	} {
		err := validate()
		if err != nil {
			return errorsx.Wrap(err, "themeID", t.ID)
		}
	}

	return nil
}

// Equal reports whether two themes would paint identically. Widgets use it
// to skip re-rendering when a configuration rebuild produced the same theme.
func (t *Theme) Equal(other *Theme) bool {
	if t == nil || other == nil {
		return t == other
	}

	if t.ID != other.ID ||
		t.Name != other.Name ||
		t.BackgroundColor != other.BackgroundColor ||
		t.FallbackColor != other.FallbackColor ||
		t.DataLabel != other.DataLabel ||
		t.Bubble != other.Bubble ||
		t.Selection != other.Selection ||
		t.Tooltip != other.Tooltip ||
		t.Toolbar != other.Toolbar {
		return false
	}

	if len(t.Rules) != len(other.Rules) {
		return false
	}

	for i := range t.Rules {
		if t.Rules[i] != other.Rules[i] {
			return false
		}
	}

	return true
}

// NewResolver builds a rule resolver over the theme's rules, using the
// repository's number format.
func (t *Theme) NewResolver(options ...mappaint.ResolverOption) (*mappaint.RuleResolver, errorsx.Error) {
	return mappaint.NewRuleResolver(t.Rules, FormatNumber, options...)
}

type ThemeSet struct {
	themesMap      map[string]*Theme // map[Theme ID]Theme
	defaultThemeID string
}

func NewThemeSet(themes []*Theme, defaultThemeID string) (*ThemeSet, errorsx.Error) {
	themeSet := &ThemeSet{
		themesMap:      make(map[string]*Theme),
		defaultThemeID: defaultThemeID,
	}

	defaultIDFound := false

	for _, theme := range themes {
		_, ok := themeSet.themesMap[theme.ID]
		if ok {
			return nil, errorsx.Errorf("duplicate theme ID found: %q", theme.ID)
		}

		themeSet.themesMap[theme.ID] = theme

		if defaultThemeID == theme.ID {
			defaultIDFound = true
		}
	}

	if !defaultIDFound {
		return nil, errorsx.Errorf("default ID %q not found in any supplied themes", defaultThemeID)
	}

	return themeSet, nil
}

func (s *ThemeSet) GetThemeByID(id string) *Theme {
	return s.themesMap[id]
}

func (s *ThemeSet) GetDefaultTheme() *Theme {
	return s.themesMap[s.defaultThemeID]
}

func (s *ThemeSet) GetDefaultThemeID() string {
	return s.defaultThemeID
}

func (s *ThemeSet) GetAllThemeIDs() []string {
	var themeIDs []string

	for id := range s.themesMap {
		themeIDs = append(themeIDs, id)
	}

	sort.Strings(themeIDs)

	return themeIDs
}
