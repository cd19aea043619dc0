package themepackdb

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"io"
	"sort"
	"time"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/mappaint-app/mappaintdal"
	"github.com/jamesrr39/mappaint-app/styling"
	"github.com/jamesrr39/mappaint-app/styling/mapthemejson"
	"golang.org/x/exp/errors/fmt"
)

const (
	// PackFormatVersion is the pack layout version this build reads and writes.
	PackFormatVersion = 1

	// HeaderSizeContainerSize is the size of the container that holds the amount of bytes that must be read to read the header
	HeaderSizeContainerSize = 4

	// PackFileSuffix is the conventional file extension for theme packs.
	PackFileSuffix = ".mppk"
)

// packMagic is the first thing in a pack file.
var packMagic = []byte("MPPK")

// PackHeader describes the themes inside a pack. It sits at the start of the
// file, JSON-encoded, after the magic and the header size container.
type PackHeader struct {
	Version   uint32            `json:"version"`
	CreatedAt time.Time         `json:"createdAt"`
	Index     []*PackIndexEntry `json:"index"`
}

// PackIndexEntry locates one theme document in the pack payload.
// Offset is measured from the start of the payload, not the start of the file.
type PackIndexEntry struct {
	ThemeID string                  `json:"themeId"`
	Offset  int64                   `json:"offset"`
	Length  int64                   `json:"length"`
	Format  mappaintdal.ThemeFormat `json:"format"`
}

func (e *PackIndexEntry) String() string {
	return fmt.Sprintf("%s (%s, %d bytes at offset %d)", e.ThemeID, e.Format, e.Length, e.Offset)
}

type OpenFileFunc func() (gofs.File, errorsx.Error)

type FileHandlerPool struct {
	freeHandlers chan gofs.File
}

func NewFileHandlerPool(openFileFunc OpenFileFunc, limit uint) (*FileHandlerPool, errorsx.Error) {
	freeHandlersChan := make(chan gofs.File, limit)
	for i := 0; i < int(limit); i++ {
		handler, err := openFileFunc()
		if err != nil {
			return nil, errorsx.Wrap(err)
		}
		freeHandlersChan <- handler
	}
	return &FileHandlerPool{freeHandlersChan}, nil
}

func (p *FileHandlerPool) Get() gofs.File {
	return <-p.freeHandlers
}

func (p *FileHandlerPool) Release(handler gofs.File) {
	p.freeHandlers <- handler
}

// ThemePackDB serves themes out of a single pack file. A pack is immutable
// once built, so the header is read once up-front and theme documents are
// fetched on demand through a bounded pool of file handles.
type ThemePackDB struct {
	name            string
	header          *PackHeader
	payloadOffset   int64
	entriesByID     map[string]*PackIndexEntry
	fileHandlerPool *FileHandlerPool
}

func NewThemePackDBConn(openFileFunc OpenFileFunc, name string, fileHandlerLimit uint) (*ThemePackDB, errorsx.Error) {
	var err error
	fileHandlerPool, err := NewFileHandlerPool(openFileFunc, fileHandlerLimit)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}
	file := fileHandlerPool.Get()
	defer fileHandlerPool.Release(file)

	magicBuffer := make([]byte, len(packMagic))
	_, err = io.ReadFull(file, magicBuffer)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	if !bytes.Equal(magicBuffer, packMagic) {
		return nil, errorsx.Errorf("%q is not a theme pack file (wanted magic %q, got %q)", name, packMagic, magicBuffer)
	}

	headerSizeBuffer := make([]byte, HeaderSizeContainerSize)
	_, err = io.ReadFull(file, headerSizeBuffer)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}
	headerSize := binary.LittleEndian.Uint32(headerSizeBuffer)

	headerBuffer := make([]byte, headerSize)
	_, err = io.ReadFull(file, headerBuffer)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	header := new(PackHeader)
	err = json.Unmarshal(headerBuffer, header)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	if header.Version != PackFormatVersion {
		return nil, errorsx.Errorf("theme pack version %d is not supported (this build supports version %d)", header.Version, PackFormatVersion)
	}

	entriesByID := make(map[string]*PackIndexEntry)
	for _, entry := range header.Index {
		_, ok := entriesByID[entry.ThemeID]
		if ok {
			return nil, errorsx.Errorf("corrupt theme pack: theme ID %q appears twice in the index", entry.ThemeID)
		}
		entriesByID[entry.ThemeID] = entry
	}

	return &ThemePackDB{
		name:            name,
		header:          header,
		payloadOffset:   int64(len(packMagic)) + HeaderSizeContainerSize + int64(headerSize),
		entriesByID:     entriesByID,
		fileHandlerPool: fileHandlerPool,
	}, nil
}

func (db *ThemePackDB) Name() string {
	return db.name
}

func (db *ThemePackDB) SourceInfo() (*mappaintdal.SourceInfo, errorsx.Error) {
	return &mappaintdal.SourceInfo{
		ThemeCount:  len(db.header.Index),
		LastUpdated: db.header.CreatedAt,
	}, nil
}

func (db *ThemePackDB) GetAllThemeIDs(ctx context.Context) ([]string, errorsx.Error) {
	var ids []string
	for _, entry := range db.header.Index {
		ids = append(ids, entry.ThemeID)
	}
	sort.Strings(ids)

	return ids, nil
}

func (db *ThemePackDB) GetThemeByID(ctx context.Context, id string) (*styling.Theme, errorsx.Error) {
	entry, data, err := db.readEntry(id)
	if err != nil {
		return nil, err
	}

	theme, err := mappaintdal.ParseTheme(data, entry.Format)
	if err != nil {
		return nil, errorsx.Wrap(err, "themeID", id)
	}

	return theme, nil
}

func (db *ThemePackDB) GetThemeDocument(ctx context.Context, id string) (*mapthemejson.ThemeDocument, errorsx.Error) {
	entry, data, err := db.readEntry(id)
	if err != nil {
		return nil, err
	}

	document, err := mappaintdal.ParseThemeDocument(data, entry.Format)
	if err != nil {
		return nil, errorsx.Wrap(err, "themeID", id)
	}

	return document, nil
}

func (db *ThemePackDB) readEntry(id string) (*PackIndexEntry, []byte, errorsx.Error) {
	entry, ok := db.entriesByID[id]
	if !ok {
		return nil, nil, errorsx.Wrap(errorsx.ObjectNotFound, "themeID", id)
	}

	file := db.fileHandlerPool.Get()
	defer db.fileHandlerPool.Release(file)

	data := make([]byte, entry.Length)
	_, err := io.ReadFull(io.NewSectionReader(file, db.payloadOffset+entry.Offset, entry.Length), data)
	if err != nil {
		return nil, nil, errorsx.Wrap(err, "themeID", id)
	}

	return entry, data, nil
}
