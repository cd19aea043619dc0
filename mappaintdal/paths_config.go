package mappaintdal

import (
	"os"

	"github.com/jamesrr39/goutil/errorsx"
)

type PathsConfig struct {
	ThemesDir     string
	DataDir       string
	RawUploadsDir string
	TempDir       string
}

func (pc *PathsConfig) EnsurePaths() errorsx.Error {
	for _, dirPath := range []string{pc.ThemesDir, pc.DataDir, pc.RawUploadsDir} {
		err := os.MkdirAll(dirPath, 0755)
		if err != nil {
			return errorsx.Wrap(err)
		}
	}

	return nil
}
