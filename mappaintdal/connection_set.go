package mappaintdal

import (
	"context"
	"sort"
	"sync"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/mappaint-app/styling"
	"github.com/jamesrr39/mappaint-app/styling/mapthemejson"
)

type ThemeConnSet struct {
	conns []ThemeSourceConn
	mu    *sync.RWMutex
}

func NewThemeConnSet(conns []ThemeSourceConn) *ThemeConnSet {
	return &ThemeConnSet{conns, new(sync.RWMutex)}
}

func (cs *ThemeConnSet) GetConns() []ThemeSourceConn {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.conns
}

func (cs *ThemeConnSet) AddConn(conn ThemeSourceConn) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.conns = append(cs.conns, conn)
}

// GetAllThemeIDs lists the theme IDs over all connections, deduplicated and
// sorted.
func (cs *ThemeConnSet) GetAllThemeIDs(ctx context.Context) ([]string, errorsx.Error) {
	seen := make(map[string]bool)
	var themeIDs []string

	for _, conn := range cs.GetConns() {
		ids, err := conn.GetAllThemeIDs(ctx)
		if err != nil {
			return nil, errorsx.Wrap(err, "source", conn.Name())
		}

		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true
			themeIDs = append(themeIDs, id)
		}
	}

	sort.Strings(themeIDs)

	return themeIDs, nil
}

// GetThemeByID asks each connection in turn. The first connection that knows
// the ID wins, so connection order decides which source shadows which.
func (cs *ThemeConnSet) GetThemeByID(ctx context.Context, id string) (*styling.Theme, errorsx.Error) {
	for _, conn := range cs.GetConns() {
		theme, err := conn.GetThemeByID(ctx, id)
		if err != nil {
			if errorsx.Cause(err) == errorsx.ObjectNotFound {
				continue
			}
			return nil, errorsx.Wrap(err, "source", conn.Name())
		}

		return theme, nil
	}

	return nil, errorsx.Wrap(errorsx.ObjectNotFound, "themeID", id)
}

func (cs *ThemeConnSet) GetThemeDocument(ctx context.Context, id string) (*mapthemejson.ThemeDocument, errorsx.Error) {
	for _, conn := range cs.GetConns() {
		document, err := conn.GetThemeDocument(ctx, id)
		if err != nil {
			if errorsx.Cause(err) == errorsx.ObjectNotFound {
				continue
			}
			return nil, errorsx.Wrap(err, "source", conn.Name())
		}

		return document, nil
	}

	return nil, errorsx.Wrap(errorsx.ObjectNotFound, "themeID", id)
}
