package themesqldb

import (
	"context"
	"database/sql"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/mappaint-app/mappaintdal"
	"github.com/jamesrr39/mappaint-app/styling"
	"github.com/jamesrr39/mappaint-app/styling/mapthemejson"
	"github.com/jmoiron/sqlx"
)

var _ mappaintdal.ThemeSourceConn = &ThemeSQLDB{}

// ThemeSQLDB serves themes from a SQL database. Documents are stored as they
// were uploaded (JSON or paint script) and parsed on fetch, so the database
// round-trips the exact bytes that went in.
type ThemeSQLDB struct {
	name string
	db   *sqlx.DB
}

func NewThemeSQLDB(db *sqlx.DB, name string) *ThemeSQLDB {
	return &ThemeSQLDB{
		name: name,
		db:   db,
	}
}

func (db *ThemeSQLDB) Name() string {
	return db.name
}

type sourceInfoRowType struct {
	ThemeCount  int          `db:"theme_count"`
	LastUpdated sql.NullTime `db:"last_updated"`
}

func (db *ThemeSQLDB) SourceInfo() (*mappaintdal.SourceInfo, errorsx.Error) {
	tx, err := db.db.Beginx()
	if err != nil {
		return nil, errorsx.Wrap(err)
	}
	defer tx.Rollback()

	var row sourceInfoRowType
	err = tx.Get(&row, `
		SELECT COUNT(id) AS theme_count, MAX(updated_at) AS last_updated
		FROM themes`)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	info := &mappaintdal.SourceInfo{
		ThemeCount: row.ThemeCount,
	}
	if row.LastUpdated.Valid {
		info.LastUpdated = row.LastUpdated.Time
	}

	return info, nil
}

func (db *ThemeSQLDB) GetAllThemeIDs(ctx context.Context) ([]string, errorsx.Error) {
	tx, err := db.db.Beginx()
	if err != nil {
		return nil, errorsx.Wrap(err)
	}
	defer tx.Rollback()

	var ids []string
	err = tx.SelectContext(ctx, &ids, `SELECT id FROM themes ORDER BY id`)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	return ids, nil
}

type themeRowType struct {
	ID       string                  `db:"id"`
	Name     string                  `db:"name"`
	Format   mappaintdal.ThemeFormat `db:"format"`
	Document string                  `db:"document"`
}

func (db *ThemeSQLDB) GetThemeByID(ctx context.Context, id string) (*styling.Theme, errorsx.Error) {
	row, errx := db.getThemeRowByID(ctx, id)
	if errx != nil {
		return nil, errx
	}

	theme, errx := mappaintdal.ParseTheme([]byte(row.Document), row.Format)
	if errx != nil {
		return nil, errorsx.Wrap(errx, "themeID", id)
	}

	return theme, nil
}

func (db *ThemeSQLDB) GetThemeDocument(ctx context.Context, id string) (*mapthemejson.ThemeDocument, errorsx.Error) {
	row, errx := db.getThemeRowByID(ctx, id)
	if errx != nil {
		return nil, errx
	}

	document, errx := mappaintdal.ParseThemeDocument([]byte(row.Document), row.Format)
	if errx != nil {
		return nil, errorsx.Wrap(errx, "themeID", id)
	}

	return document, nil
}

func (db *ThemeSQLDB) getThemeRowByID(ctx context.Context, id string) (*themeRowType, errorsx.Error) {
	tx, err := db.db.Beginx()
	if err != nil {
		return nil, errorsx.Wrap(err)
	}
	defer tx.Rollback()

	row := new(themeRowType)
	err = tx.GetContext(ctx, row, `
		SELECT id, name, format, document
		FROM themes
		WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errorsx.Wrap(errorsx.ObjectNotFound, "themeID", id)
		}

		return nil, errorsx.Wrap(err)
	}

	return row, nil
}
