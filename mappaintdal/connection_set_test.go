package mappaintdal

import (
	"context"
	"sort"
	"testing"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/mappaint-app/styling"
	"github.com/jamesrr39/mappaint-app/styling/mapthemejson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockThemeSource struct {
	name   string
	themes map[string]*styling.Theme
}

func (m *mockThemeSource) Name() string {
	return m.name
}

func (m *mockThemeSource) SourceInfo() (*SourceInfo, errorsx.Error) {
	return &SourceInfo{ThemeCount: len(m.themes)}, nil
}

func (m *mockThemeSource) GetAllThemeIDs(ctx context.Context) ([]string, errorsx.Error) {
	var ids []string
	for id := range m.themes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *mockThemeSource) GetThemeByID(ctx context.Context, id string) (*styling.Theme, errorsx.Error) {
	theme, ok := m.themes[id]
	if !ok {
		return nil, errorsx.Wrap(errorsx.ObjectNotFound, "themeID", id)
	}
	return theme, nil
}

func (m *mockThemeSource) GetThemeDocument(ctx context.Context, id string) (*mapthemejson.ThemeDocument, errorsx.Error) {
	theme, ok := m.themes[id]
	if !ok {
		return nil, errorsx.Wrap(errorsx.ObjectNotFound, "themeID", id)
	}
	return mapthemejson.ToDocument(theme), nil
}

func newTestTheme(id, name string) *styling.Theme {
	theme := styling.NewBuiltinTheme()
	theme.ID = id
	theme.Name = name
	return theme
}

func TestThemeConnSet_GetAllThemeIDs(t *testing.T) {
	connSet := NewThemeConnSet([]ThemeSourceConn{
		&mockThemeSource{name: "dir", themes: map[string]*styling.Theme{
			"traffic":    newTestTheme("traffic", "Traffic"),
			"population": newTestTheme("population", "Population"),
		}},
		&mockThemeSource{name: "pack", themes: map[string]*styling.Theme{
			"traffic":     newTestTheme("traffic", "Traffic (pack copy)"),
			"air-quality": newTestTheme("air-quality", "Air quality"),
		}},
	})

	ids, err := connSet.GetAllThemeIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"air-quality", "population", "traffic"}, ids)
}

func TestThemeConnSet_GetThemeByID(t *testing.T) {
	dirSource := &mockThemeSource{name: "dir", themes: map[string]*styling.Theme{
		"traffic": newTestTheme("traffic", "Traffic from dir"),
	}}
	packSource := &mockThemeSource{name: "pack", themes: map[string]*styling.Theme{
		"traffic":    newTestTheme("traffic", "Traffic from pack"),
		"population": newTestTheme("population", "Population"),
	}}

	connSet := NewThemeConnSet([]ThemeSourceConn{dirSource, packSource})

	// first connection wins for duplicated IDs
	theme, err := connSet.GetThemeByID(context.Background(), "traffic")
	require.NoError(t, err)
	assert.Equal(t, "Traffic from dir", theme.Name)

	theme, err = connSet.GetThemeByID(context.Background(), "population")
	require.NoError(t, err)
	assert.Equal(t, "Population", theme.Name)

	_, err = connSet.GetThemeByID(context.Background(), "not-here")
	require.Error(t, err)
	assert.Equal(t, errorsx.ObjectNotFound, errorsx.Cause(err))
}

func TestThemeConnSet_AddConn(t *testing.T) {
	connSet := NewThemeConnSet(nil)

	_, err := connSet.GetThemeByID(context.Background(), "traffic")
	require.Error(t, err)

	connSet.AddConn(&mockThemeSource{name: "dir", themes: map[string]*styling.Theme{
		"traffic": newTestTheme("traffic", "Traffic"),
	}})

	theme, err := connSet.GetThemeByID(context.Background(), "traffic")
	require.NoError(t, err)
	assert.Equal(t, "Traffic", theme.Name)

	document, err := connSet.GetThemeDocument(context.Background(), "traffic")
	require.NoError(t, err)
	assert.Equal(t, "traffic", document.ID)
	assert.Equal(t, mapthemejson.DocumentVersion, document.Version)
}
