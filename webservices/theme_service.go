package webservices

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/mappaint-app/classification"
	"github.com/jamesrr39/mappaint-app/mappaint"
	"github.com/jamesrr39/mappaint-app/mappaintdal"
	"github.com/jamesrr39/mappaint-app/mappaintdal/valuesparquet"
	"github.com/jamesrr39/mappaint-app/styling"
	"github.com/jamesrr39/mappaint-app/styling/mapthemejson"
	"github.com/jamesrr39/semaphore"
	"github.com/pkg/profile"
)

// maxClassifyRequestBytes bounds the classify request body. Bigger datasets
// go through the classify CLI command instead.
const maxClassifyRequestBytes = 8 * 1024 * 1024

type ThemeService struct {
	logger        *logpkg.Logger
	connSet       *mappaintdal.ThemeConnSet
	themeSet      *styling.ThemeSet
	classifier    *classification.Classifier
	sema          *semaphore.Semaphore
	shouldProfile bool
	chi.Router
}

func NewThemeService(logger *logpkg.Logger, connSet *mappaintdal.ThemeConnSet, themeSet *styling.ThemeSet, classifier *classification.Classifier, shouldProfile bool) *ThemeService {
	ts := &ThemeService{logger, connSet, themeSet, classifier, semaphore.NewSemaphore(4), shouldProfile, chi.NewRouter()}

	ts.Get("/", ts.handleGetAll)
	ts.Get("/{themeID}", ts.handleGetDocument)
	ts.Get("/{themeID}/legend", ts.handleGetLegend)
	ts.Get("/{themeID}/resolve", ts.handleResolve)
	ts.Post("/{themeID}/classify", ts.handleClassify)

	return ts
}

// getTheme looks the ID up in the in-process theme set first, then in the
// connected sources.
func (ts *ThemeService) getTheme(ctx context.Context, id string) (*styling.Theme, errorsx.Error) {
	theme := ts.themeSet.GetThemeByID(id)
	if theme != nil {
		return theme, nil
	}

	return ts.connSet.GetThemeByID(ctx, id)
}

func (ts *ThemeService) getThemeDocument(ctx context.Context, id string) (*mapthemejson.ThemeDocument, errorsx.Error) {
	theme := ts.themeSet.GetThemeByID(id)
	if theme != nil {
		return mapthemejson.ToDocument(theme), nil
	}

	return ts.connSet.GetThemeDocument(ctx, id)
}

func statusCodeForError(err errorsx.Error) int {
	if errorsx.Cause(err) == errorsx.ObjectNotFound {
		return http.StatusNotFound
	}

	return http.StatusInternalServerError
}

type themeSummaryType struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	RuleCount int    `json:"ruleCount"`
}

func (ts *ThemeService) handleGetAll(w http.ResponseWriter, r *http.Request) {
	storedThemeIDs, err := ts.connSet.GetAllThemeIDs(r.Context())
	if err != nil {
		errorsx.HTTPError(w, ts.logger, err, http.StatusInternalServerError)
		return
	}

	seen := make(map[string]bool)
	var themeIDs []string
	for _, id := range append(ts.themeSet.GetAllThemeIDs(), storedThemeIDs...) {
		if seen[id] {
			continue
		}
		seen[id] = true
		themeIDs = append(themeIDs, id)
	}
	sort.Strings(themeIDs)

	summaries := []*themeSummaryType{}
	for _, id := range themeIDs {
		theme, err := ts.getTheme(r.Context(), id)
		if err != nil {
			errorsx.HTTPError(w, ts.logger, err, statusCodeForError(err))
			return
		}

		summaries = append(summaries, &themeSummaryType{theme.ID, theme.Name, len(theme.Rules)})
	}

	render.JSON(w, r, summaries)
}

// handleGetDocument serves the canonical JSON encoding of a theme, whatever
// format it was stored in, with an ETag over the encoded bytes.
func (ts *ThemeService) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	themeID := chi.URLParam(r, "themeID")

	document, err := ts.getThemeDocument(r.Context(), themeID)
	if err != nil {
		errorsx.HTTPError(w, ts.logger, err, statusCodeForError(err))
		return
	}

	buf := bytes.NewBuffer(nil)
	err = document.Encode(buf)
	if err != nil {
		errorsx.HTTPError(w, ts.logger, err, http.StatusInternalServerError)
		return
	}

	etag := fmt.Sprintf("%q", strconv.FormatUint(xxhash.Sum64(buf.Bytes()), 16))
	w.Header().Set("ETag", etag)

	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(buf.Bytes())
}

type legendEntryType struct {
	Color string `json:"color"`
	Label string `json:"label"`
	Index int    `json:"index"`
}

func (ts *ThemeService) handleGetLegend(w http.ResponseWriter, r *http.Request) {
	themeID := chi.URLParam(r, "themeID")

	theme, err := ts.getTheme(r.Context(), themeID)
	if err != nil {
		errorsx.HTTPError(w, ts.logger, err, statusCodeForError(err))
		return
	}

	resolver, err := theme.NewResolver()
	if err != nil {
		errorsx.HTTPError(w, ts.logger, err, http.StatusInternalServerError)
		return
	}

	entries := []*legendEntryType{}
	for _, entry := range resolver.LegendEntries() {
		entries = append(entries, &legendEntryType{mappaint.HexString(entry.Color), entry.Label, entry.RuleIndex})
	}

	render.JSON(w, r, entries)
}

type matchResultType struct {
	Matched   bool     `json:"matched"`
	RuleIndex *int     `json:"ruleIndex,omitempty"`
	Color     string   `json:"color,omitempty"`
	Opacity   *float64 `json:"opacity,omitempty"`
	Label     string   `json:"label,omitempty"`
}

func matchToResultType(match *mappaint.Match) matchResultType {
	if match == nil {
		return matchResultType{Matched: false}
	}

	result := matchResultType{
		Matched:   true,
		RuleIndex: &match.RuleIndex,
		Color:     mappaint.HexString(match.Color),
		Label:     match.LegendLabel,
	}

	if match.Opacity.Set {
		opacity := match.Opacity.Fraction
		result.Opacity = &opacity
	}

	return result
}

func (ts *ThemeService) handleResolve(w http.ResponseWriter, r *http.Request) {
	themeID := chi.URLParam(r, "themeID")

	value, err := parseValueParams(r.URL.Query().Get("type"), r.URL.Query().Get("value"))
	if err != nil {
		errorsx.HTTPError(w, ts.logger, err, http.StatusBadRequest)
		return
	}

	theme, err := ts.getTheme(r.Context(), themeID)
	if err != nil {
		errorsx.HTTPError(w, ts.logger, err, statusCodeForError(err))
		return
	}

	resolver, err := theme.NewResolver()
	if err != nil {
		errorsx.HTTPError(w, ts.logger, err, http.StatusInternalServerError)
		return
	}

	render.JSON(w, r, matchToResultType(resolver.Resolve(value)))
}

type classifyResponseType struct {
	Summary *classification.Summary    `json:"summary"`
	Results []*valuesparquet.ResultRow `json:"results"`
}

// handleClassify resolves a JSON array of values in one request. JSON's own
// types carry the value union: strings match exact value rules, numbers
// match both rule kinds.
func (ts *ThemeService) handleClassify(w http.ResponseWriter, r *http.Request) {
	if ts.shouldProfile {
		defer profile.Start().Stop()
	}

	themeID := chi.URLParam(r, "themeID")

	theme, err := ts.getTheme(r.Context(), themeID)
	if err != nil {
		errorsx.HTTPError(w, ts.logger, err, statusCodeForError(err))
		return
	}

	var rawValues []interface{}
	decodeErr := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxClassifyRequestBytes)).Decode(&rawValues)
	if decodeErr != nil {
		errorsx.HTTPError(w, ts.logger, errorsx.Wrap(decodeErr), http.StatusBadRequest)
		return
	}

	rows := make([]*valuesparquet.DatasetRow, 0, len(rawValues))
	for i, rawValue := range rawValues {
		key := strconv.Itoa(i)
		switch v := rawValue.(type) {
		case string:
			rows = append(rows, valuesparquet.TextRow(key, v))
		case float64:
			rows = append(rows, valuesparquet.NumberRow(key, v))
		default:
			errorsx.HTTPError(w, ts.logger, errorsx.Errorf("value at index %d must be a string or a number (got %T)", i, rawValue), http.StatusBadRequest)
			return
		}
	}

	ts.sema.Add()
	defer ts.sema.Done()

	results, summary, err := ts.classifier.ClassifyRows(r.Context(), theme, rows)
	if err != nil {
		errorsx.HTTPError(w, ts.logger, err, http.StatusInternalServerError)
		return
	}

	render.JSON(w, r, classifyResponseType{summary, results})
}
