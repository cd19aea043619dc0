package themedirdb

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jamesrr39/goutil/dirtraversal"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/mappaint-app/mappaintdal"
	"github.com/jamesrr39/mappaint-app/styling"
	"github.com/jamesrr39/mappaint-app/styling/mapthemejson"
)

const themeCacheSize = 64

// themeFileInfo is what the last rescan knew about one theme file.
type themeFileInfo struct {
	fileName string
	format   mappaintdal.ThemeFormat
	modTime  time.Time
	size     int64
}

type cachedTheme struct {
	theme   *styling.Theme
	modTime time.Time
	size    int64
}

// ThemeDirDB serves themes straight from a directory of theme files, so the
// directory can be edited by hand while the app runs. Edited files are picked
// up on the next fetch; added or removed files are picked up by Rescan.
type ThemeDirDB struct {
	fs      gofs.Fs
	dirPath string

	mu           *sync.RWMutex
	themeFileMap map[string]themeFileInfo // keyed by theme ID
	cache        *lru.Cache[string, cachedTheme]
}

func NewThemeDirDBConn(fs gofs.Fs, dirPath string) (*ThemeDirDB, errorsx.Error) {
	cache, err := lru.New[string, cachedTheme](themeCacheSize)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	conn := &ThemeDirDB{
		fs:           fs,
		dirPath:      dirPath,
		mu:           new(sync.RWMutex),
		themeFileMap: make(map[string]themeFileInfo),
		cache:        cache,
	}

	_, errx := conn.Rescan()
	if errx != nil {
		return nil, errx
	}

	return conn, nil
}

func (db *ThemeDirDB) Name() string {
	return fmt.Sprintf("%s%s%s", mappaintdal.ThemeSourceTypeThemeDir, mappaintdal.ConnectionPathSeparator, db.dirPath)
}

func (db *ThemeDirDB) SourceInfo() (*mappaintdal.SourceInfo, errorsx.Error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	info := &mappaintdal.SourceInfo{
		ThemeCount: len(db.themeFileMap),
	}

	for _, fileInfo := range db.themeFileMap {
		if fileInfo.modTime.After(info.LastUpdated) {
			info.LastUpdated = fileInfo.modTime
		}
	}

	return info, nil
}

func (db *ThemeDirDB) GetAllThemeIDs(ctx context.Context) ([]string, errorsx.Error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var themeIDs []string
	for id := range db.themeFileMap {
		themeIDs = append(themeIDs, id)
	}

	sort.Strings(themeIDs)

	return themeIDs, nil
}

func (db *ThemeDirDB) GetThemeByID(ctx context.Context, id string) (*styling.Theme, errorsx.Error) {
	db.mu.RLock()
	fileInfo, ok := db.themeFileMap[id]
	db.mu.RUnlock()
	if !ok {
		return nil, errorsx.Wrap(errorsx.ObjectNotFound, "themeID", id)
	}

	filePath := filepath.Join(db.dirPath, fileInfo.fileName)

	// stat the file so edits are picked up without a rescan
	stat, err := db.fs.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errorsx.Wrap(errorsx.ObjectNotFound, "themeID", id)
		}
		return nil, errorsx.Wrap(err)
	}

	cached, ok := db.cache.Get(id)
	if ok && cached.modTime.Equal(stat.ModTime()) && cached.size == stat.Size() {
		return cached.theme, nil
	}

	theme, errx := db.parseThemeFile(fileInfo.fileName, fileInfo.format)
	if errx != nil {
		return nil, errx
	}

	db.cache.Add(id, cachedTheme{
		theme:   theme,
		modTime: stat.ModTime(),
		size:    stat.Size(),
	})

	return theme, nil
}

func (db *ThemeDirDB) GetThemeDocument(ctx context.Context, id string) (*mapthemejson.ThemeDocument, errorsx.Error) {
	db.mu.RLock()
	fileInfo, ok := db.themeFileMap[id]
	db.mu.RUnlock()
	if !ok {
		return nil, errorsx.Wrap(errorsx.ObjectNotFound, "themeID", id)
	}

	data, err := db.fs.ReadFile(filepath.Join(db.dirPath, fileInfo.fileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errorsx.Wrap(errorsx.ObjectNotFound, "themeID", id)
		}
		return nil, errorsx.Wrap(err)
	}

	return mappaintdal.ParseThemeDocument(data, fileInfo.format)
}

// InstallThemeFile validates and writes a theme file into the directory. An
// existing file of the same name is replaced.
func (db *ThemeDirDB) InstallThemeFile(fileName string, data []byte) (*styling.Theme, errorsx.Error) {
	tryingToGoUp := dirtraversal.IsTryingToTraverseUp(fileName)
	if tryingToGoUp {
		return nil, errorsx.Errorf("not allowed to traverse up with filename %q", fileName)
	}

	format, err := mappaintdal.ThemeFormatForFileName(fileName)
	if err != nil {
		return nil, err
	}

	// reject broken files before they land in the directory
	theme, err := mappaintdal.ParseTheme(data, format)
	if err != nil {
		return nil, err
	}

	writeErr := db.fs.WriteFile(filepath.Join(db.dirPath, filepath.Base(fileName)), data, 0644)
	if writeErr != nil {
		return nil, errorsx.Wrap(writeErr)
	}

	_, err = db.Rescan()
	if err != nil {
		return nil, err
	}

	return theme, nil
}

func (db *ThemeDirDB) parseThemeFile(fileName string, format mappaintdal.ThemeFormat) (*styling.Theme, errorsx.Error) {
	data, err := db.fs.ReadFile(filepath.Join(db.dirPath, fileName))
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	theme, errx := mappaintdal.ParseTheme(data, format)
	if errx != nil {
		return nil, errorsx.Wrap(errx, "fileName", fileName)
	}

	return theme, nil
}

// RescanSummary says how the directory changed since the previous scan.
type RescanSummary struct {
	Added   []string `json:"added"`
	Updated []string `json:"updated"`
	Removed []string `json:"removed"`
}

func (s RescanSummary) String() string {
	return fmt.Sprintf("%d added, %d updated, %d removed", len(s.Added), len(s.Updated), len(s.Removed))
}

// Rescan walks the directory and rebuilds the theme index. Files that fail to
// parse are skipped with a log line, so one broken file doesn't take down the
// whole directory.
func (db *ThemeDirDB) Rescan() (*RescanSummary, errorsx.Error) {
	dirEntries, err := db.fs.ReadDir(db.dirPath)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	db.mu.RLock()
	previousFileMap := make(map[string]themeFileInfo, len(db.themeFileMap))
	fileNameToID := make(map[string]string, len(db.themeFileMap))
	for id, fileInfo := range db.themeFileMap {
		previousFileMap[id] = fileInfo
		fileNameToID[fileInfo.fileName] = id
	}
	db.mu.RUnlock()

	summary := new(RescanSummary)
	newFileMap := make(map[string]themeFileInfo)

	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() || strings.HasPrefix(dirEntry.Name(), ".") {
			continue
		}

		format, errx := mappaintdal.ThemeFormatForFileName(dirEntry.Name())
		if errx != nil {
			// not a theme file
			continue
		}

		fileInfo := themeFileInfo{
			fileName: dirEntry.Name(),
			format:   format,
			modTime:  dirEntry.ModTime(),
			size:     dirEntry.Size(),
		}

		// an unchanged file keeps its ID from the previous scan, saving a
		// reparse
		previousID, seenBefore := fileNameToID[dirEntry.Name()]
		if seenBefore {
			previousInfo := previousFileMap[previousID]
			if previousInfo.modTime.Equal(fileInfo.modTime) && previousInfo.size == fileInfo.size {
				newFileMap[previousID] = fileInfo
				continue
			}
		}

		theme, errx := db.parseThemeFile(dirEntry.Name(), format)
		if errx != nil {
			log.Printf("ERROR: skipping theme file %q: %s\n", dirEntry.Name(), errx.Error())
			continue
		}

		existing, alreadyMapped := newFileMap[theme.ID]
		if alreadyMapped {
			log.Printf("ERROR: skipping theme file %q: theme ID %q already provided by %q\n", dirEntry.Name(), theme.ID, existing.fileName)
			continue
		}

		newFileMap[theme.ID] = fileInfo
		db.cache.Add(theme.ID, cachedTheme{
			theme:   theme,
			modTime: fileInfo.modTime,
			size:    fileInfo.size,
		})

		if seenBefore && previousID == theme.ID {
			summary.Updated = append(summary.Updated, theme.ID)
		} else {
			summary.Added = append(summary.Added, theme.ID)
		}
	}

	for id := range previousFileMap {
		_, stillThere := newFileMap[id]
		if !stillThere {
			summary.Removed = append(summary.Removed, id)
			db.cache.Remove(id)
		}
	}

	sort.Strings(summary.Added)
	sort.Strings(summary.Updated)
	sort.Strings(summary.Removed)

	db.mu.Lock()
	db.themeFileMap = newFileMap
	db.mu.Unlock()

	return summary, nil
}
