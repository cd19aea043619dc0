package daltestutil

import (
	"context"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/mappaint-app/mappaintdal"
	"github.com/jamesrr39/mappaint-app/styling"
	"github.com/jamesrr39/mappaint-app/styling/mapthemejson"
)

// MockThemeSourceConn implements mappaintdal.ThemeSourceConn with
// per-method override functions, for tests of code that takes a conn.
type MockThemeSourceConn struct {
	NameFunc             func() string
	SourceInfoFunc       func() (*mappaintdal.SourceInfo, errorsx.Error)
	GetAllThemeIDsFunc   func(ctx context.Context) ([]string, errorsx.Error)
	GetThemeByIDFunc     func(ctx context.Context, id string) (*styling.Theme, errorsx.Error)
	GetThemeDocumentFunc func(ctx context.Context, id string) (*mapthemejson.ThemeDocument, errorsx.Error)
}

func (c *MockThemeSourceConn) Name() string {
	return c.NameFunc()
}

func (c *MockThemeSourceConn) SourceInfo() (*mappaintdal.SourceInfo, errorsx.Error) {
	return c.SourceInfoFunc()
}

func (c *MockThemeSourceConn) GetAllThemeIDs(ctx context.Context) ([]string, errorsx.Error) {
	return c.GetAllThemeIDsFunc(ctx)
}

func (c *MockThemeSourceConn) GetThemeByID(ctx context.Context, id string) (*styling.Theme, errorsx.Error) {
	return c.GetThemeByIDFunc(ctx, id)
}

func (c *MockThemeSourceConn) GetThemeDocument(ctx context.Context, id string) (*mapthemejson.ThemeDocument, errorsx.Error) {
	return c.GetThemeDocumentFunc(ctx, id)
}

// NewConnWithThemes builds a mock conn serving the given themes, for tests
// that just need a populated source.
func NewConnWithThemes(name string, themes ...*styling.Theme) *MockThemeSourceConn {
	themesByID := make(map[string]*styling.Theme)
	for _, theme := range themes {
		themesByID[theme.ID] = theme
	}

	return &MockThemeSourceConn{
		NameFunc: func() string {
			return name
		},
		SourceInfoFunc: func() (*mappaintdal.SourceInfo, errorsx.Error) {
			return &mappaintdal.SourceInfo{ThemeCount: len(themesByID)}, nil
		},
		GetAllThemeIDsFunc: func(ctx context.Context) ([]string, errorsx.Error) {
			var ids []string
			for id := range themesByID {
				ids = append(ids, id)
			}
			return ids, nil
		},
		GetThemeByIDFunc: func(ctx context.Context, id string) (*styling.Theme, errorsx.Error) {
			theme, ok := themesByID[id]
			if !ok {
				return nil, errorsx.Wrap(errorsx.ObjectNotFound, "themeID", id)
			}
			return theme, nil
		},
		GetThemeDocumentFunc: func(ctx context.Context, id string) (*mapthemejson.ThemeDocument, errorsx.Error) {
			theme, ok := themesByID[id]
			if !ok {
				return nil, errorsx.Wrap(errorsx.ObjectNotFound, "themeID", id)
			}
			return mapthemejson.ToDocument(theme), nil
		},
	}
}
