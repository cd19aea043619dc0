package themepostgresql

import (
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/mappaint-app/mappaintdal"
	"github.com/jamesrr39/mappaint-app/mappaintdal/themesqldb"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// The schema is applied on import, not on serve, so a serving instance never
// needs DDL rights. IF NOT EXISTS keeps re-imports against the same database
// working.
const postgresqlSchema = `
CREATE TABLE IF NOT EXISTS themes (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	format TEXT NOT NULL, -- see mappaintdal.ThemeFormat
	document TEXT NOT NULL,
	updated_at TIMESTAMP WITH TIME ZONE NOT NULL
)`

func NewImporter(connStr string) (*themesqldb.Importer, errorsx.Error) {
	db, err := sqlx.Open("postgres", "postgresql://"+connStr)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	_, err = db.Exec(postgresqlSchema)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	toThemeSourceConnFunc := func() (mappaintdal.ThemeSourceConn, errorsx.Error) {
		return themesqldb.NewThemeSQLDB(db, "postgresql database"), nil
	}

	return themesqldb.NewImporter(db, toThemeSourceConnFunc)
}

func NewDBConn(connStr string) (mappaintdal.ThemeSourceConn, errorsx.Error) {
	db, err := sqlx.Open("postgres", "postgresql://"+connStr)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	return themesqldb.NewThemeSQLDB(db, "postgresql database"), nil
}
