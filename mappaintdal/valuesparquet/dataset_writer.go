package valuesparquet

import (
	_ "embed"
	"encoding/json"
	"runtime"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/source"
	parquetwriter "github.com/xitongsys/parquet-go/writer"
)

// JSON writer example: https://github.com/xitongsys/parquet-go/blob/62cf52a8dad4f8b729e6c38809f091cd134c3749/example/json_write.go

//go:embed dataset_schema.json
var datasetSchema string

// DatasetWriter produces a dataset parquet file row by row. Close flushes the
// row groups; a file abandoned before Close is unreadable.
type DatasetWriter struct {
	filePath      string
	fileWriter    source.ParquetFile
	parquetWriter *parquetwriter.JSONWriter
	rowsWritten   int64
}

func NewDatasetWriter(filePath string) (*DatasetWriter, errorsx.Error) {
	fileWriter, err := local.NewLocalFileWriter(filePath)
	if err != nil {
		return nil, errorsx.Wrap(err, "filepath", filePath)
	}

	w, err := parquetwriter.NewJSONWriter(datasetSchema, fileWriter, int64(runtime.NumCPU()))
	if err != nil {
		return nil, errorsx.Wrap(err, "filepath", filePath)
	}
	w.RowGroupSize = 128 * 1024 * 1024 * 4 //128M * 4
	w.CompressionType = parquet.CompressionCodec_SNAPPY

	return &DatasetWriter{filePath: filePath, fileWriter: fileWriter, parquetWriter: w}, nil
}

func (w *DatasetWriter) WriteRow(row *DatasetRow) errorsx.Error {
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

func (w *DatasetWriter) RowsWritten() int64 {
	return w.rowsWritten
}

func (w *DatasetWriter) Close() errorsx.Error {
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
