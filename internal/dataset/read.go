package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/xuri/excelize/v2"

	"github.com/i474232898/air-quality-dashboard/internal/airquality"
	"github.com/i474232898/air-quality-dashboard/internal/common"
)

// Compression of a dataset payload, derived from its file extension.
type Compression string

const (
	CompressionNone Compression = ""
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
	CompressionLZ4  Compression = "lz4"
)

// Format of a decompressed dataset payload.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

var compressionSuffixes = map[string]Compression{
	".gz":   CompressionGzip,
	".gzip": CompressionGzip,
	".zst":  CompressionZstd,
	".zstd": CompressionZstd,
	".lz4":  CompressionLZ4,
}

// DetectFormat infers format and compression from a file name or URL path,
// e.g. "all_data.csv.gz" is gzip-compressed CSV. Unknown extensions are read
// as CSV.
func DetectFormat(name string) (Format, Compression) {
	comp := CompressionNone
	base, suffix, ok := common.CutAnySuffix(name, ".gz", ".gzip", ".zst", ".zstd", ".lz4")
	if ok {
		comp = compressionSuffixes[suffix]
	}
	if common.HasAnySuffix(base, ".xlsx", ".xlsm") {
		return FormatXLSX, comp
	}
	return FormatCSV, comp
}

// ReadTable decodes a dataset payload named name (used for format detection
// and log messages).
func ReadTable(r io.Reader, name string) (airquality.Table, error) {
	format, comp := DetectFormat(name)

	dr, err := decompress(r, comp)
	if err != nil {
		return airquality.Table{}, fmt.Errorf("open %s (%s): %w", name, comp, err)
	}
	defer dr.Close()

	switch format {
	case FormatXLSX:
		return ReadXLSX(dr, name)
	default:
		return ReadCSV(dr, name)
	}
}

// ReadCSV decodes a comma-separated dataset with a header row.
func ReadCSV(r io.Reader, name string) (airquality.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return airquality.Table{}, fmt.Errorf("%w: no header row", airquality.ErrInvalidSchema)
	}
	if err != nil {
		return airquality.Table{}, fmt.Errorf("read csv header: %w", err)
	}
	dec, err := newDecoder(append([]string(nil), header...))
	if err != nil {
		return airquality.Table{}, err
	}

	line := 1
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return airquality.Table{}, fmt.Errorf("read csv line %d: %w", line, err)
		}
		dec.add(record)
	}
	return dec.finish(name), nil
}

// ReadXLSX decodes the first sheet of a workbook; its first row is the header.
func ReadXLSX(r io.Reader, name string) (airquality.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return airquality.Table{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return airquality.Table{}, fmt.Errorf("%w: workbook has no sheets", airquality.ErrInvalidSchema)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return airquality.Table{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return decodeRecords(name, rows)
}

func decompress(r io.Reader, comp Compression) (io.ReadCloser, error) {
	switch comp {
	case CompressionGzip:
		return gzip.NewReader(r)
	case CompressionZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return io.NopCloser(r), nil
	}
}
