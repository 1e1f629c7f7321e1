package dataset

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/i474232898/air-quality-dashboard/internal/airquality"
)

const sampleCSV = "\ufeffNo,year,month,day,hour,PM2.5,PM10,SO2,NO2,CO,O3,TEMP,PRES,DEWP,RAIN,wd,WSPM,station\n" +
	"1,2013,3,1,0,4,4,4,7,300,77,-0.7,1023,-18.8,0,NNW,4.4,Aotizhongxin\n" +
	"2,2013,3,1,1,8,8,NA,,400,NaN,-1.1,1023.2,-18.2,0,N,4.7,Aotizhongxin\n" +
	"3,2014.0,12,31,23,12,19,3,45,oops,20,1.5,1019.5,-14,0.2,NW,1.1,Aotizhongxin\n"

func TestReadCSV(t *testing.T) {
	table, err := ReadCSV(strings.NewReader(sampleCSV), "all_data.csv")
	require.NoError(t, err)

	assert.Equal(t, "Aotizhongxin", table.Station)
	require.Len(t, table.Observations, 3)

	first := table.Observations[0]
	assert.Equal(t, 2013, first.Year)
	assert.Equal(t, 3, first.Month)
	assert.Equal(t, 1, first.Day)
	assert.Equal(t, airquality.NullFloat(300), first.CO)
	assert.Equal(t, airquality.NullFloat(-0.7), first.Temp)

	second := table.Observations[1]
	assert.True(t, second.SO2.IsMissing())
	assert.True(t, second.NO2.IsMissing())
	assert.True(t, second.O3.IsMissing())
	assert.Equal(t, airquality.NullFloat(400), second.CO)

	third := table.Observations[2]
	assert.Equal(t, 2014, third.Year)
	assert.Equal(t, 23, third.Hour)
	assert.True(t, third.CO.IsMissing())
	assert.Equal(t, airquality.NullFloat(0.2), third.Rain)
}

func TestReadCSVHeaderCaseInsensitive(t *testing.T) {
	csv := "YEAR,Month,pm2.5,pm10,so2,no2,co,o3,temp,pres,rain\n2015,6,1,2,3,4,5,6,20,1000,0\n"

	table, err := ReadCSV(strings.NewReader(csv), "lower.csv")
	require.NoError(t, err)
	require.Len(t, table.Observations, 1)
	assert.Equal(t, 2015, table.Observations[0].Year)
	assert.Equal(t, airquality.NullFloat(5), table.Observations[0].CO)
	assert.Empty(t, table.Station)
}

func TestReadCSVMissingColumns(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("year,month,CO\n2013,1,10\n"), "partial.csv")
	require.Error(t, err)
	assert.True(t, errors.Is(err, airquality.ErrInvalidSchema))
	assert.Contains(t, err.Error(), "pm2.5")
}

func TestReadCSVEmpty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""), "empty.csv")
	assert.True(t, errors.Is(err, airquality.ErrInvalidSchema))
}

func TestReadCSVHeaderOnly(t *testing.T) {
	header := strings.SplitN(sampleCSV, "\n", 2)[0] + "\n"
	table, err := ReadCSV(strings.NewReader(header), "header.csv")
	require.NoError(t, err)
	assert.NotNil(t, table.Observations)
	assert.Empty(t, table.Observations)
}

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		name   string
		format Format
		comp   Compression
	}{
		{"all_data.csv", FormatCSV, CompressionNone},
		{"all_data.CSV.GZ", FormatCSV, CompressionGzip},
		{"all_data.csv.gzip", FormatCSV, CompressionGzip},
		{"all_data.csv.zst", FormatCSV, CompressionZstd},
		{"all_data.csv.zstd", FormatCSV, CompressionZstd},
		{"all_data.csv.lz4", FormatCSV, CompressionLZ4},
		{"all_data.xlsx", FormatXLSX, CompressionNone},
		{"all_data.xlsx.gz", FormatXLSX, CompressionGzip},
		{"all_data", FormatCSV, CompressionNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			format, comp := DetectFormat(tc.name)
			assert.Equal(t, tc.format, format)
			assert.Equal(t, tc.comp, comp)
		})
	}
}

func compress(t *testing.T, comp Compression, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	var w io.WriteCloser
	switch comp {
	case CompressionGzip:
		w = gzip.NewWriter(&buf)
	case CompressionZstd:
		enc, err := zstd.NewWriter(&buf)
		require.NoError(t, err)
		w = enc
	case CompressionLZ4:
		w = lz4.NewWriter(&buf)
	default:
		t.Fatalf("unsupported compression %q", comp)
	}
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestReadTableCompressed(t *testing.T) {
	cases := map[string]Compression{
		"all_data.csv.gz":  CompressionGzip,
		"all_data.csv.zst": CompressionZstd,
		"all_data.csv.lz4": CompressionLZ4,
	}
	for name, comp := range cases {
		t.Run(name, func(t *testing.T) {
			payload := compress(t, comp, []byte(sampleCSV))

			table, err := ReadTable(bytes.NewReader(payload), name)
			require.NoError(t, err)
			assert.Len(t, table.Observations, 3)
			assert.Equal(t, "Aotizhongxin", table.Station)
		})
	}
}

func TestReadTableCorruptGzip(t *testing.T) {
	_, err := ReadTable(strings.NewReader("not gzip"), "all_data.csv.gz")
	assert.Error(t, err)
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]any{
		{"year", "month", "PM2.5", "PM10", "SO2", "NO2", "CO", "O3", "TEMP", "PRES", "RAIN", "station"},
		{2013, 1, 10, 20, 3, 40, 500, 60, -2.5, 1020, 0, "Dongsi"},
		{2013, 2, 12, 22, "NA", 42, 700, 62, 1.5, 1018, 0.1, "Dongsi"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	table, err := ReadTable(buf, "all_data.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "Dongsi", table.Station)
	require.Len(t, table.Observations, 2)
	assert.Equal(t, 2013, table.Observations[1].Year)
	assert.Equal(t, 2, table.Observations[1].Month)
	assert.Equal(t, airquality.NullFloat(700), table.Observations[1].CO)
	assert.True(t, table.Observations[1].SO2.IsMissing())
	assert.Equal(t, airquality.NullFloat(-2.5), table.Observations[0].Temp)
}

func TestDecodeRecordsShortRows(t *testing.T) {
	records := [][]string{
		{"year", "month", "PM2.5", "PM10", "SO2", "NO2", "CO", "O3", "TEMP", "PRES", "RAIN"},
		{"2013", "1", "1", "2"},
	}
	table, err := decodeRecords("short", records)
	require.NoError(t, err)
	require.Len(t, table.Observations, 1)
	assert.Equal(t, airquality.NullFloat(2), table.Observations[0].PM10)
	assert.True(t, table.Observations[0].CO.IsMissing())
	assert.True(t, table.Observations[0].Rain.IsMissing())
}

func TestDecodeRecordsNoHeader(t *testing.T) {
	_, err := decodeRecords("none", nil)
	assert.True(t, errors.Is(err, airquality.ErrInvalidSchema))
}

func TestReadCSVInfiniteValuesAreMissing(t *testing.T) {
	csv := "year,month,PM2.5,PM10,SO2,NO2,CO,O3,TEMP,PRES,RAIN\n" +
		"2013,1,Inf,+Infinity,-inf,1e400,5,6,20,1000,0\n"

	table, err := ReadCSV(strings.NewReader(csv), "inf.csv")
	require.NoError(t, err)
	require.Len(t, table.Observations, 1)

	o := table.Observations[0]
	assert.True(t, o.PM25.IsMissing())
	assert.True(t, o.PM10.IsMissing())
	assert.True(t, o.SO2.IsMissing())
	assert.True(t, o.NO2.IsMissing())
	assert.Equal(t, airquality.NullFloat(5), o.CO)
}
