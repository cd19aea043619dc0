package mappaintdal

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/jamesrr39/goutil/dirtraversal"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/mappaint-app/styling"
)

type ImportStatus int

const (
	ImportStatusQueued     ImportStatus = 1
	ImportStatusInProgress ImportStatus = 2
	ImportStatusDone       ImportStatus = 3
	ImportStatusFailed     ImportStatus = 4
)

var importStatusNames = []string{
	"",
	"Queued",
	"In Progress",
	"Done",
	"Failed",
}

func (i ImportStatus) String() string {
	return importStatusNames[i]
}

type OnImportedSuccessfullyFunc func(theme *styling.Theme)

// ProcessImportFunc parses the uploaded file and installs the theme into a
// destination source.
type ProcessImportFunc func(themeFilePath string, format ThemeFormat) (*styling.Theme, errorsx.Error)

type ImportQueueItem struct {
	FileName        string
	RawDataFilePath string
	Format          ThemeFormat
	Status          ImportStatus
	ThemeID         string
	FailureMessage  string
	TimeInProgress  time.Duration
	processFunc     ProcessImportFunc
}

type ImportQueue struct {
	items       []*ImportQueueItem
	mu          *sync.RWMutex
	pathsConfig *PathsConfig
}

func NewImportQueue(pathsConfig *PathsConfig) *ImportQueue {
	return &ImportQueue{[]*ImportQueueItem{}, new(sync.RWMutex), pathsConfig}
}

func (q *ImportQueue) GetItems() []*ImportQueueItem {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.items
}

func (q *ImportQueue) AddItemToQueue(rawData io.Reader, fileName string, processFunc ProcessImportFunc, onImportedSuccessfully OnImportedSuccessfullyFunc) errorsx.Error {
	tryingToGoUp := dirtraversal.IsTryingToTraverseUp(fileName)
	if tryingToGoUp {
		return errorsx.Errorf("not allowed to traverse up with filename %q", fileName)
	}

	format, err := ThemeFormatForFileName(fileName)
	if err != nil {
		return err
	}

	suffix := filepath.Ext(fileName)
	baseName := strings.TrimSuffix(filepath.Base(fileName), suffix)

	rawDataFilePath, err := GenerateFilePathForNewDiskFile(q.pathsConfig.RawUploadsDir, baseName, suffix)
	if err != nil {
		return err
	}

	f, createErr := os.Create(rawDataFilePath)
	if createErr != nil {
		return errorsx.Wrap(createErr)
	}
	defer f.Close()

	_, copyErr := io.Copy(f, rawData)
	if copyErr != nil {
		return errorsx.Wrap(copyErr)
	}

	item := &ImportQueueItem{
		FileName:        fileName,
		RawDataFilePath: rawDataFilePath,
		Format:          format,
		Status:          ImportStatusQueued,
		processFunc:     processFunc,
	}

	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()

	go q.processQueue(onImportedSuccessfully)

	return nil
}

// processQueue drains the queue. Only one import runs at a time; extra
// goroutines see an item in progress and back off.
func (q *ImportQueue) processQueue(onImportedSuccessfully OnImportedSuccessfullyFunc) {
	for {
		item := q.takeNextItemToProcess()
		if item == nil {
			return
		}

		theme, err := q.importQueueItem(item)
		if err != nil {
			log.Printf(
				"ERROR: failed to import queue item. Raw data file: %q.\nError: %q\nStack: %s\n",
				item.RawDataFilePath, err.Error(), err.Stack())

			q.mu.Lock()
			item.Status = ImportStatusFailed
			item.FailureMessage = err.Error()
			q.mu.Unlock()

			continue
		}

		onImportedSuccessfully(theme)
	}
}

func (q *ImportQueue) takeNextItemToProcess() *ImportQueueItem {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, item := range q.items {
		if item.Status == ImportStatusInProgress {
			// there is already an import in progress. Wait.
			return nil
		}
	}

	// no imports in progress. Now go through the list and pick the first
	// queued one.
	for _, item := range q.items {
		if item.Status == ImportStatusQueued {
			item.Status = ImportStatusInProgress
			return item
		}
	}

	// all imports are finished
	return nil
}

func (q *ImportQueue) importQueueItem(item *ImportQueueItem) (*styling.Theme, errorsx.Error) {
	startTime := time.Now()

	theme, err := item.processFunc(item.RawDataFilePath, item.Format)

	q.mu.Lock()
	item.TimeInProgress = time.Since(startTime)
	q.mu.Unlock()

	if err != nil {
		return nil, err
	}

	q.mu.Lock()
	item.Status = ImportStatusDone
	item.ThemeID = theme.ID
	q.mu.Unlock()

	return theme, nil
}

func GenerateFilePathForNewDiskFile(dirPath, fileName, suffix string) (string, errorsx.Error) {
	var err error
	for i := 0; i < 1000000; i++ {
		var id string
		if i != 0 {
			id = fmt.Sprintf("_%d", i)
		}

		fileName := fmt.Sprintf("%s%s%s", fileName, id, suffix)
		filePath := filepath.Join(dirPath, fileName)

		_, err = os.Stat(filePath)
		if err != nil {
			if !os.IsNotExist(err) {
				return "", errorsx.Wrap(err)
			}
		}

		if err == nil {
			// file already exists
			continue
		}

		return filePath, nil
	}

	return "", errorsx.Errorf("ran out of numbers for suffix")
}
