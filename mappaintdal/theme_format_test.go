package mappaintdal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeFormatForFileName(t *testing.T) {
	type args struct {
		fileName string
	}
	tests := []struct {
		name    string
		args    args
		want    ThemeFormat
		wantErr bool
	}{
		{
			name: "json theme",
			args: args{"traffic.json"},
			want: ThemeFormatJSON,
		},
		{
			name: "paint script theme",
			args: args{"traffic.mps"},
			want: ThemeFormatPaintScript,
		},
		{
			name: "upper case extension",
			args: args{"TRAFFIC.JSON"},
			want: ThemeFormatJSON,
		},
		{
			name:    "unsupported extension",
			args:    args{"traffic.yaml"},
			wantErr: true,
		},
		{
			name:    "no extension",
			args:    args{"traffic"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ThemeFormatForFileName(tt.args.fileName)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTheme(t *testing.T) {
	jsonTheme := []byte(`{
		"version": 1,
		"id": "population",
		"rules": [
			{"from": 0, "to": 1000, "color": "#1a9850"}
		]
	}`)

	theme, err := ParseTheme(jsonTheme, ThemeFormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "population", theme.ID)
	require.Len(t, theme.Rules, 1)

	scriptTheme := []byte(`theme "population" {
	rule [0 <= value <= 1000] {
		color: #1a9850;
	}
}
`)

	scriptParsed, err := ParseTheme(scriptTheme, ThemeFormatPaintScript)
	require.NoError(t, err)
	assert.True(t, theme.Equal(scriptParsed), "the JSON and paint script forms should produce the same theme")
}

func TestParseTheme_badFormat(t *testing.T) {
	_, err := ParseTheme([]byte("{}"), ThemeFormat("toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown theme format")
}
