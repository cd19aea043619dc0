package themepackdb

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"io"
	"log"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/goutil/humanise"
	"github.com/jamesrr39/mappaint-app/mappaintdal"
	"github.com/jamesrr39/mappaint-app/styling/mapthemejson"
)

type builderEntry struct {
	themeID string
	format  mappaintdal.ThemeFormat
	data    []byte
}

// PackBuilder collects theme documents and writes them out as a single pack
// file. Documents are stored as given (JSON or paint script), so a pack
// round-trips the exact bytes that went in.
type PackBuilder struct {
	entries       []*builderEntry
	fileNamesByID map[string]string
}

func NewPackBuilder() *PackBuilder {
	return &PackBuilder{
		fileNamesByID: make(map[string]string),
	}
}

// AddThemeFile validates data and adds it to the pack. fileName is used to
// derive the document format and for error messages.
func (b *PackBuilder) AddThemeFile(fileName string, data []byte) errorsx.Error {
	format, err := mappaintdal.ThemeFormatForFileName(fileName)
	if err != nil {
		return errorsx.Wrap(err, "fileName", fileName)
	}

	theme, err := mappaintdal.ParseTheme(data, format)
	if err != nil {
		return errorsx.Wrap(err, "fileName", fileName)
	}

	existingFileName, ok := b.fileNamesByID[theme.ID]
	if ok {
		return errorsx.Errorf("theme ID %q in %q was already added from %q", theme.ID, fileName, existingFileName)
	}
	b.fileNamesByID[theme.ID] = fileName

	b.entries = append(b.entries, &builderEntry{
		themeID: theme.ID,
		format:  format,
		data:    data,
	})

	return nil
}

// AddThemeDocument adds a document in its canonical JSON form.
func (b *PackBuilder) AddThemeDocument(document *mapthemejson.ThemeDocument) errorsx.Error {
	bb := bytes.NewBuffer(nil)

	err := document.Encode(bb)
	if err != nil {
		return errorsx.Wrap(err)
	}

	return b.AddThemeFile(document.ID+mappaintdal.ThemeFileSuffixJSON, bb.Bytes())
}

func (b *PackBuilder) ThemeCount() int {
	return len(b.entries)
}

// WritePack writes out the magic, the header size container, the JSON header
// and then the theme documents back to back.
func (b *PackBuilder) WritePack(w io.Writer) errorsx.Error {
	// deterministic layout: themes sorted by ID
	sort.Slice(b.entries, func(i, j int) bool {
		return b.entries[i].themeID < b.entries[j].themeID
	})

	header := &PackHeader{
		Version:   PackFormatVersion,
		CreatedAt: time.Now(),
	}

	var offset int64
	for _, entry := range b.entries {
		header.Index = append(header.Index, &PackIndexEntry{
			ThemeID: entry.themeID,
			Offset:  offset,
			Length:  int64(len(entry.data)),
			Format:  entry.format,
		})
		offset += int64(len(entry.data))
	}

	headerBytes, err := json.Marshal(header)
	if err != nil {
		return errorsx.Wrap(err)
	}

	headerSizeContainer := make([]byte, HeaderSizeContainerSize)
	binary.LittleEndian.PutUint32(headerSizeContainer, uint32(len(headerBytes)))

	readers := []io.Reader{
		bytes.NewReader(packMagic),
		bytes.NewReader(headerSizeContainer),
		bytes.NewReader(headerBytes),
	}
	for _, entry := range b.entries {
		readers = append(readers, bytes.NewReader(entry.data))
	}

	var bytesWritten int64
	for _, reader := range readers {
		n, err := io.Copy(w, reader)
		if err != nil {
			return errorsx.Wrap(err)
		}
		bytesWritten += n
	}

	log.Printf("theme pack: wrote %d theme(s), %s\n", len(b.entries), humanise.HumaniseBytes(bytesWritten))

	return nil
}

// BuildPackFromDir packs every theme file in dirPath into w. Directories,
// dotfiles and files without a theme extension are skipped. Returns the
// number of themes packed.
func BuildPackFromDir(fs gofs.Fs, dirPath string, w io.Writer) (int, errorsx.Error) {
	dirEntries, err := fs.ReadDir(dirPath)
	if err != nil {
		return 0, errorsx.Wrap(err)
	}

	builder := NewPackBuilder()
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() || strings.HasPrefix(dirEntry.Name(), ".") {
			continue
		}

		_, errx := mappaintdal.ThemeFormatForFileName(dirEntry.Name())
		if errx != nil {
			// not a theme file
			continue
		}

		data, err := fs.ReadFile(filepath.Join(dirPath, dirEntry.Name()))
		if err != nil {
			return 0, errorsx.Wrap(err)
		}

		errx = builder.AddThemeFile(dirEntry.Name(), data)
		if errx != nil {
			return 0, errx
		}
	}

	errx := builder.WritePack(w)
	if errx != nil {
		return 0, errx
	}

	return builder.ThemeCount(), nil
}
