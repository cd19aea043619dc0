package themepackdb

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"testing"
	"time"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/goutil/gofs/mockfs"
	"github.com/jamesrr39/mappaint-app/mappaintdal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trafficJSON = `{
	"version": 1,
	"id": "traffic",
	"name": "Traffic",
	"rules": [
		{"value": "closed", "color": "#d73027", "label": "Closed"},
		{"from": 0, "to": 30, "color": "#1a9850"}
	]
}
`

const populationScript = `theme "population" {
	name: "Population";

	rule [0 <= value <= 1000] {
		color: #2a6fdb;
	}
}
`

func packFileOpenFunc(fs gofs.Fs, path string) OpenFileFunc {
	return func() (gofs.File, errorsx.Error) {
		file, err := fs.Open(path)
		if err != nil {
			return nil, errorsx.Wrap(err)
		}
		return file, nil
	}
}

func TestThemePackDB(t *testing.T) {
	builder := NewPackBuilder()
	require.NoError(t, builder.AddThemeFile("traffic.json", []byte(trafficJSON)))
	require.NoError(t, builder.AddThemeFile("population.mps", []byte(populationScript)))

	bb := bytes.NewBuffer(nil)
	require.NoError(t, builder.WritePack(bb))

	fs := mockfs.NewMockFs()
	require.NoError(t, fs.WriteFile("/themes.mppk", bb.Bytes(), 0644))

	conn, err := NewThemePackDBConn(packFileOpenFunc(fs, "/themes.mppk"), "themepack:///themes.mppk", 2)
	require.NoError(t, err)

	assert.Equal(t, "themepack:///themes.mppk", conn.Name())

	ids, err := conn.GetAllThemeIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"population", "traffic"}, ids)

	theme, err := conn.GetThemeByID(context.Background(), "traffic")
	require.NoError(t, err)
	assert.Equal(t, "Traffic", theme.Name)
	assert.Len(t, theme.Rules, 2)

	// the paint script is stored as-is, so the document is parsed from it on fetch
	document, err := conn.GetThemeDocument(context.Background(), "population")
	require.NoError(t, err)
	assert.Equal(t, "population", document.ID)
	require.Len(t, document.Rules, 1)
	assert.Equal(t, 0.0, *document.Rules[0].From)
	assert.Equal(t, 1000.0, *document.Rules[0].To)

	info, err := conn.SourceInfo()
	require.NoError(t, err)
	assert.Equal(t, 2, info.ThemeCount)
	assert.WithinDuration(t, time.Now(), info.LastUpdated, time.Minute)

	_, err = conn.GetThemeByID(context.Background(), "nope")
	require.Error(t, err)
	assert.Equal(t, errorsx.ObjectNotFound, errorsx.Cause(err))
}

func TestThemePackDB_notAPackFile(t *testing.T) {
	fs := mockfs.NewMockFs()
	require.NoError(t, fs.WriteFile("/notes.txt", []byte("hello world, this is not a pack"), 0644))

	_, err := NewThemePackDBConn(packFileOpenFunc(fs, "/notes.txt"), "notes.txt", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a theme pack file")
}

func TestThemePackDB_unsupportedVersion(t *testing.T) {
	headerBytes, err := json.Marshal(&PackHeader{Version: 99})
	require.NoError(t, err)

	headerSizeContainer := make([]byte, HeaderSizeContainerSize)
	binary.LittleEndian.PutUint32(headerSizeContainer, uint32(len(headerBytes)))

	bb := bytes.NewBuffer(nil)
	bb.Write(packMagic)
	bb.Write(headerSizeContainer)
	bb.Write(headerBytes)

	fs := mockfs.NewMockFs()
	require.NoError(t, fs.WriteFile("/future.mppk", bb.Bytes(), 0644))

	_, errx := NewThemePackDBConn(packFileOpenFunc(fs, "/future.mppk"), "future.mppk", 1)
	require.Error(t, errx)
	assert.Contains(t, errx.Error(), "theme pack version 99 is not supported")
}

func TestPackBuilder_duplicateThemeID(t *testing.T) {
	builder := NewPackBuilder()
	require.NoError(t, builder.AddThemeFile("traffic.json", []byte(trafficJSON)))

	err := builder.AddThemeFile("traffic_again.json", []byte(trafficJSON))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `already added from "traffic.json"`)
}

func TestPackBuilder_rejectsBrokenTheme(t *testing.T) {
	err := NewPackBuilder().AddThemeFile("broken.json", []byte(`{"version": 1}`))
	require.Error(t, err)
}

func TestPackBuilder_AddThemeDocument(t *testing.T) {
	document, err := mappaintdal.ParseThemeDocument([]byte(trafficJSON), mappaintdal.ThemeFormatJSON)
	require.NoError(t, err)

	builder := NewPackBuilder()
	require.NoError(t, builder.AddThemeDocument(document))

	bb := bytes.NewBuffer(nil)
	require.NoError(t, builder.WritePack(bb))

	fs := mockfs.NewMockFs()
	require.NoError(t, fs.WriteFile("/themes.mppk", bb.Bytes(), 0644))

	conn, err := NewThemePackDBConn(packFileOpenFunc(fs, "/themes.mppk"), "themes.mppk", 1)
	require.NoError(t, err)

	theme, err := conn.GetThemeByID(context.Background(), "traffic")
	require.NoError(t, err)
	assert.Equal(t, "Traffic", theme.Name)
}

func TestBuildPackFromDir(t *testing.T) {
	fs := mockfs.NewMockFs()
	require.NoError(t, fs.MkdirAll("/themes", 0755))
	require.NoError(t, fs.WriteFile("/themes/traffic.json", []byte(trafficJSON), 0644))
	require.NoError(t, fs.WriteFile("/themes/population.mps", []byte(populationScript), 0644))
	require.NoError(t, fs.WriteFile("/themes/README.txt", []byte("not a theme"), 0644))

	bb := bytes.NewBuffer(nil)
	count, err := BuildPackFromDir(fs, "/themes", bb)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, fs.WriteFile("/themes.mppk", bb.Bytes(), 0644))

	conn, err := NewThemePackDBConn(packFileOpenFunc(fs, "/themes.mppk"), "themes.mppk", 1)
	require.NoError(t, err)

	ids, err := conn.GetAllThemeIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"population", "traffic"}, ids)
}
