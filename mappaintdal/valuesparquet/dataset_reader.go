package valuesparquet

import (
	"context"
	"runtime"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/xitongsys/parquet-go-source/local"
	parquetreader "github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/source"
)

const readAllBatchSize = 4096

// DatasetReader streams rows out of a dataset parquet file in file order.
type DatasetReader struct {
	filePath      string
	fileReader    source.ParquetFile
	parquetReader *parquetreader.ParquetReader
	rowsRead      int64
}

func NewDatasetReader(filePath string) (*DatasetReader, errorsx.Error) {
	fileReader, err := local.NewLocalFileReader(filePath)
	if err != nil {
		return nil, errorsx.Wrap(err, "filepath", filePath)
	}

	pr, err := parquetreader.NewParquetReader(fileReader, new(DatasetRow), int64(runtime.NumCPU()))
	if err != nil {
		fileReader.Close()
		return nil, errorsx.Wrap(err, "filepath", filePath)
	}

	return &DatasetReader{
		filePath:      filePath,
		fileReader:    fileReader,
		parquetReader: pr,
	}, nil
}

func (r *DatasetReader) TotalRows() int64 {
	return r.parquetReader.GetNumRows()
}

// ReadBatch fetches up to batchSize rows. It returns an empty batch once the
// file is exhausted.
func (r *DatasetReader) ReadBatch(batchSize int) ([]*DatasetRow, errorsx.Error) {
	if batchSize <= 0 {
		return nil, errorsx.Errorf("batch size must be positive (got %d)", batchSize)
	}

	remaining := r.parquetReader.GetNumRows() - r.rowsRead
	if remaining <= 0 {
		return nil, nil
	}
	if int64(batchSize) > remaining {
		batchSize = int(remaining)
	}

	rows := make([]DatasetRow, batchSize)
	err := r.parquetReader.Read(&rows)
	if err != nil {
		return nil, errorsx.Wrap(err, "filepath", r.filePath)
	}
	r.rowsRead += int64(len(rows))

	batch := make([]*DatasetRow, len(rows))
	for i := range rows {
		batch[i] = &rows[i]
	}

	return batch, nil
}

// ReadAll fetches every remaining row in one go.
func (r *DatasetReader) ReadAll(ctx context.Context) ([]*DatasetRow, errorsx.Error) {
	var all []*DatasetRow
	for {
		err := ctx.Err()
		if err != nil {
			return nil, errorsx.Wrap(err, "filepath", r.filePath)
		}

		batch, errx := r.ReadBatch(readAllBatchSize)
		if errx != nil {
			return nil, errx
		}
		if len(batch) == 0 {
			return all, nil
		}

		all = append(all, batch...)
	}
}

func (r *DatasetReader) Close() errorsx.Error {
	r.parquetReader.ReadStop()

	err := r.fileReader.Close()
	if err != nil {
		return errorsx.Wrap(err, "filepath", r.filePath)
	}

	return nil
}
