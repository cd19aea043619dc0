package webservices

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/mappaint-app/mappaintdal"
	"github.com/jamesrr39/mappaint-app/styling"
)

// AppVersion is reported by the info endpoint and the CLI.
const AppVersion = "0.1.0"

func NewInfoService(logger *logpkg.Logger, connSet *mappaintdal.ThemeConnSet, themeSet *styling.ThemeSet) *InfoService {
	ws := &InfoService{logger, connSet, themeSet, chi.NewRouter()}
	ws.Get("/", ws.handleGet)

	return ws
}

type InfoService struct {
	logger   *logpkg.Logger
	connSet  *mappaintdal.ThemeConnSet
	themeSet *styling.ThemeSet
	chi.Router
}

type sourceInfoType struct {
	Name string `json:"name"`
	*mappaintdal.SourceInfo
}

type infoType struct {
	Version        string            `json:"version"`
	DefaultThemeID string            `json:"defaultThemeId"`
	ThemeIDs       []string          `json:"themeIds"`
	Sources        []*sourceInfoType `json:"sources"`
}

func (ws *InfoService) handleGet(w http.ResponseWriter, r *http.Request) {
	storedThemeIDs, err := ws.connSet.GetAllThemeIDs(r.Context())
	if err != nil {
		errorsx.HTTPError(w, ws.logger, err, http.StatusInternalServerError)
		return
	}

	seen := make(map[string]bool)
	var themeIDs []string
	for _, id := range append(ws.themeSet.GetAllThemeIDs(), storedThemeIDs...) {
		if seen[id] {
			continue
		}
		seen[id] = true
		themeIDs = append(themeIDs, id)
	}
	sort.Strings(themeIDs)

	var sources []*sourceInfoType
	for _, conn := range ws.connSet.GetConns() {
		info, err := conn.SourceInfo()
		if err != nil {
			errorsx.HTTPError(w, ws.logger, err, http.StatusInternalServerError)
			return
		}

		sources = append(sources, &sourceInfoType{conn.Name(), info})
	}

	render.JSON(w, r, infoType{
		Version:        AppVersion,
		DefaultThemeID: ws.themeSet.GetDefaultThemeID(),
		ThemeIDs:       themeIDs,
		Sources:        sources,
	})
}
