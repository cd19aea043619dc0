package valuesparquet

import (
	_ "embed"
	"encoding/json"
	"runtime"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	parquetreader "github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/source"
	parquetwriter "github.com/xitongsys/parquet-go/writer"
)

//go:embed results_schema.json
var resultsSchema string

// ResultRow is the classification outcome for one dataset row. When no rule
// matched, Matched is false, RuleIndex is -1 and the paint fields are empty.
type ResultRow struct {
	Key        string  `json:"key" db:"key" parquet:"name=key, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Matched    bool    `json:"matched" db:"matched" parquet:"name=matched, type=BOOLEAN"`
	RuleIndex  int32   `json:"rule_index" db:"rule_index" parquet:"name=rule_index, type=INT32"`
	Color      string  `json:"color" db:"color" parquet:"name=color, type=BYTE_ARRAY, convertedtype=UTF8"`
	OpacitySet bool    `json:"opacity_set" db:"opacity_set" parquet:"name=opacity_set, type=BOOLEAN"`
	Opacity    float64 `json:"opacity" db:"opacity" parquet:"name=opacity, type=DOUBLE"`
	Label      string  `json:"label" db:"label" parquet:"name=label, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// ResultWriter produces a results parquet file. It has the same lifecycle as
// DatasetWriter: write rows, then Close to flush.
type ResultWriter struct {
	filePath      string
	fileWriter    source.ParquetFile
	parquetWriter *parquetwriter.JSONWriter
	rowsWritten   int64
}

func NewResultWriter(filePath string) (*ResultWriter, errorsx.Error) {
	fileWriter, err := local.NewLocalFileWriter(filePath)
	if err != nil {
		return nil, errorsx.Wrap(err, "filepath", filePath)
	}

	w, err := parquetwriter.NewJSONWriter(resultsSchema, fileWriter, int64(runtime.NumCPU()))
	if err != nil {
		return nil, errorsx.Wrap(err, "filepath", filePath)
	}
	w.RowGroupSize = 128 * 1024 * 1024 * 4 //128M * 4
	w.CompressionType = parquet.CompressionCodec_SNAPPY

	return &ResultWriter{filePath: filePath, fileWriter: fileWriter, parquetWriter: w}, nil
}

func (w *ResultWriter) WriteRow(row *ResultRow) errorsx.Error {
	j, err := json.Marshal(row)
	if err != nil {
		return errorsx.Wrap(err)
	}

	err = w.parquetWriter.Write(string(j))
	if err != nil {
		return errorsx.Wrap(err, "filepath", w.filePath)
	}
	w.rowsWritten++

	return nil
}

func (w *ResultWriter) RowsWritten() int64 {
	return w.rowsWritten
}

func (w *ResultWriter) Close() errorsx.Error {
	err := w.parquetWriter.WriteStop()
	if err != nil {
		return errorsx.Wrap(err, "filepath", w.filePath)
	}

	err = w.fileWriter.Close()
	if err != nil {
		return errorsx.Wrap(err, "filepath", w.filePath)
	}

	return nil
}

// ReadAllResults loads a whole results file back into memory. It is mostly
// useful for inspecting small outputs.
func ReadAllResults(filePath string) ([]*ResultRow, errorsx.Error) {
	fileReader, err := local.NewLocalFileReader(filePath)
	if err != nil {
		return nil, errorsx.Wrap(err, "filepath", filePath)
	}
	defer fileReader.Close()

	pr, err := parquetreader.NewParquetReader(fileReader, new(ResultRow), int64(runtime.NumCPU()))
	if err != nil {
		return nil, errorsx.Wrap(err, "filepath", filePath)
	}
	defer pr.ReadStop()

	rows := make([]ResultRow, pr.GetNumRows())
	err = pr.Read(&rows)
	if err != nil {
		return nil, errorsx.Wrap(err, "filepath", filePath)
	}

	results := make([]*ResultRow, len(rows))
	for i := range rows {
		results[i] = &rows[i]
	}

	return results, nil
}
