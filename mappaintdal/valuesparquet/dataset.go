package valuesparquet

import (
	"github.com/jamesrr39/mappaint-app/mappaint"
)

const DatasetFileSuffix = ".parquet"

// Dataset field names, as they appear in the parquet schema and in filter
// expressions.
const (
	DatasetFieldKey   = "key"
	DatasetFieldValue = "value"
	DatasetFieldText  = "text"
)

// DatasetRow is one data point awaiting classification. IsText says which of
// Value and Text carries the payload; the other one is left at its zero
// value.
type DatasetRow struct {
	Key    string  `json:"key" db:"key" parquet:"name=key, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Value  float64 `json:"value" db:"value" parquet:"name=value, type=DOUBLE"`
	IsText bool    `json:"is_text" db:"is_text" parquet:"name=is_text, type=BOOLEAN"`
	Text   string  `json:"text" db:"text" parquet:"name=text, type=BYTE_ARRAY, convertedtype=UTF8"`
}

func NumberRow(key string, value float64) *DatasetRow {
	return &DatasetRow{Key: key, Value: value}
}

func TextRow(key, text string) *DatasetRow {
	return &DatasetRow{Key: key, IsText: true, Text: text}
}

func (r *DatasetRow) ToValue() mappaint.Value {
	if r.IsText {
		return mappaint.StringValue(r.Text)
	}

	return mappaint.NumberValue(r.Value)
}
