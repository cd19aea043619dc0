package themesqldb

import (
	"fmt"
	"time"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/mappaint-app/mappaintdal"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type toThemeSourceConnFunc func() (mappaintdal.ThemeSourceConn, errorsx.Error)

type importEntry struct {
	themeID, themeName string
	format             mappaintdal.ThemeFormat
	data               []byte
}

// Importer loads theme files into a SQL database inside one transaction.
// Entries are collected with ImportThemeFile and written on Commit; themes
// already in the database are replaced.
type Importer struct {
	tx                *sqlx.Tx
	entries           []*importEntry
	fileNamesByID     map[string]string
	toThemeSourceConn toThemeSourceConnFunc
}

func NewImporter(db *sqlx.DB, toThemeSourceConn toThemeSourceConnFunc) (*Importer, errorsx.Error) {
	tx, err := db.Beginx()
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	return &Importer{
		tx:                tx,
		fileNamesByID:     make(map[string]string),
		toThemeSourceConn: toThemeSourceConn,
	}, nil
}

// ImportThemeFile validates data and queues it for the next Commit. fileName
// is used to derive the document format and for error messages.
func (importer *Importer) ImportThemeFile(fileName string, data []byte) errorsx.Error {
	format, err := mappaintdal.ThemeFormatForFileName(fileName)
	if err != nil {
		return errorsx.Wrap(err, "fileName", fileName)
	}

	theme, err := mappaintdal.ParseTheme(data, format)
	if err != nil {
		return errorsx.Wrap(err, "fileName", fileName)
	}

	existingFileName, ok := importer.fileNamesByID[theme.ID]
	if ok {
		return errorsx.Errorf("theme ID %q in %q was already added from %q", theme.ID, fileName, existingFileName)
	}
	importer.fileNamesByID[theme.ID] = fileName

	importer.entries = append(importer.entries, &importEntry{
		themeID:   theme.ID,
		themeName: theme.Name,
		format:    format,
		data:      data,
	})

	return nil
}

type ImportSummary struct {
	Added   []string `json:"added"`
	Updated []string `json:"updated"`
}

func (s *ImportSummary) String() string {
	return fmt.Sprintf("%d added, %d updated", len(s.Added), len(s.Updated))
}

func (importer *Importer) Rollback() errorsx.Error {
	err := importer.tx.Rollback()
	if err != nil {
		return errorsx.Wrap(err)
	}

	return nil
}

func (importer *Importer) Commit() (mappaintdal.ThemeSourceConn, *ImportSummary, errorsx.Error) {
	var ids []string
	for _, entry := range importer.entries {
		ids = append(ids, entry.themeID)
	}

	existingIDMap := make(map[string]bool)
	if len(ids) != 0 {
		var existingIDs []string
		err := importer.tx.Select(&existingIDs, `SELECT id FROM themes WHERE id = ANY($1)`, pq.Array(ids))
		if err != nil {
			return nil, nil, errorsx.Wrap(err)
		}

		for _, id := range existingIDs {
			existingIDMap[id] = true
		}
	}

	now := time.Now().UTC()

	summary := new(ImportSummary)
	for _, entry := range importer.entries {
		_, err := importer.tx.Exec(`
			INSERT INTO themes (id, name, format, document, updated_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name,
				format = EXCLUDED.format,
				document = EXCLUDED.document,
				updated_at = EXCLUDED.updated_at`,
			entry.themeID, entry.themeName, entry.format, string(entry.data), now)
		if err != nil {
			return nil, nil, errorsx.Wrap(err, "themeID", entry.themeID)
		}

		if existingIDMap[entry.themeID] {
			summary.Updated = append(summary.Updated, entry.themeID)
		} else {
			summary.Added = append(summary.Added, entry.themeID)
		}
	}

	err := importer.tx.Commit()
	if err != nil {
		return nil, nil, errorsx.Wrap(err)
	}

	conn, errx := importer.toThemeSourceConn()
	if errx != nil {
		return nil, nil, errx
	}

	return conn, summary, nil
}
