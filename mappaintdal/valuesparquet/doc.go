// Package valuesparquet reads and writes the parquet files used for batch
// classification.
//
// A dataset file holds one row per data point: a key, plus either a numeric
// value or a text value. A results file holds one row per classified data
// point with the matched rule's paint properties. Filters narrow a dataset
// before classification, either row-by-row in Go or pushed down into DuckDB
// as a WHERE clause.
package valuesparquet
