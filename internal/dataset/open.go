package dataset

import (
	"errors"
	"net/http"
	"strings"

	"github.com/i474232898/air-quality-dashboard/internal/airquality"
)

// Options configures the sources built by Open.
type Options struct {
	// HTTPClient is used by the HTTP source; nil means http.DefaultClient.
	HTTPClient *http.Client
	// Backoff is used by the HTTP source; zero value means DefaultBackoff.
	Backoff BackoffConfig
	// SQLiteTable is the table read by the SQLite source.
	SQLiteTable string
	// S3 configures the S3 source.
	S3 S3Config
	// S3Client overrides the client built from S3.
	S3Client S3Client
}

// Open returns the source for location:
//
//	s3://bucket/key            object in S3-compatible storage
//	http(s)://host/path        downloaded over HTTP
//	sqlite:///path/to/file.db  table in a SQLite database
//	anything else              local file path
//
// CSV and XLSX payloads are supported, optionally .gz, .zst or .lz4 compressed.
func Open(location string, opts Options) (airquality.Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, errors.New("dataset location is empty")
	}

	switch {
	case strings.HasPrefix(location, "s3://"):
		bucket, key, err := ParseS3Location(location)
		if err != nil {
			return nil, err
		}
		return NewS3Source(bucket, key, opts.S3, opts.S3Client), nil

	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		backoff := opts.Backoff
		if backoff == (BackoffConfig{}) {
			backoff = DefaultBackoff
		}
		return NewHTTPSource(location, opts.HTTPClient, backoff), nil

	case strings.HasPrefix(location, "sqlite://"):
		return NewSQLiteSource(strings.TrimPrefix(location, "sqlite://"), opts.SQLiteTable)

	default:
		return NewFileSource(location), nil
	}
}
