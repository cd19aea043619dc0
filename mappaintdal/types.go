package mappaintdal

import (
	"context"
	"strings"
	"time"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/mappaint-app/styling"
	"github.com/jamesrr39/mappaint-app/styling/mapthemejson"
)

// ThemeSourceConn is a connection to one store of themes.
type ThemeSourceConn interface {
	// Info methods
	Name() string
	SourceInfo() (*SourceInfo, errorsx.Error)

	// Theme fetch methods. Lookups for an unknown ID return an error caused
	// by errorsx.ObjectNotFound.
	GetAllThemeIDs(ctx context.Context) ([]string, errorsx.Error)
	GetThemeByID(ctx context.Context, id string) (*styling.Theme, errorsx.Error)
	GetThemeDocument(ctx context.Context, id string) (*mapthemejson.ThemeDocument, errorsx.Error)
}

type SourceInfo struct {
	ThemeCount  int       `json:"themeCount"`
	LastUpdated time.Time `json:"lastUpdated"`
}

type ThemeSourceType string

const (
	ThemeSourceTypeThemeDir   ThemeSourceType = "themedir"
	ThemeSourceTypeThemePack  ThemeSourceType = "themepack"
	ThemeSourceTypePostgresql ThemeSourceType = "postgresql"
)

type ThemeSourceURL struct {
	Type           ThemeSourceType
	ConnectionPath string
}

const ConnectionPathSeparator = "://"

func ParseThemeSourcePath(str string) (ThemeSourceURL, errorsx.Error) {
	idx := strings.Index(str, ConnectionPathSeparator)
	if idx < 0 {
		return ThemeSourceURL{}, errorsx.Errorf("couldn't find connection path separator %q in theme source path", ConnectionPathSeparator)
	}

	return ThemeSourceURL{
		Type:           ThemeSourceType(str[:idx]),
		ConnectionPath: str[idx+len(ConnectionPathSeparator):],
	}, nil
}
