package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"

	_ "github.com/mattn/go-sqlite3"

	"github.com/i474232898/air-quality-dashboard/internal/airquality"
)

// DefaultSQLiteTable is the table read when none is configured.
const DefaultSQLiteTable = "observations"

var tableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteSource reads the dataset from a table of a SQLite database file.
// Column names follow the CSV header names.
type SQLiteSource struct {
	path  string
	table string
}

// NewSQLiteSource creates a SQLiteSource; an empty table selects
// DefaultSQLiteTable.
func NewSQLiteSource(path, table string) (*SQLiteSource, error) {
	if table == "" {
		table = DefaultSQLiteTable
	}
	if !tableNameRe.MatchString(table) {
		return nil, fmt.Errorf("invalid sqlite table name %q", table)
	}
	return &SQLiteSource{path: path, table: table}, nil
}

func (s *SQLiteSource) Name() string {
	return "sqlite://" + s.path + "#" + s.table
}

func (s *SQLiteSource) Load(ctx context.Context) (airquality.Table, error) {
	// The driver would silently create a missing database file.
	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return airquality.Table{}, fmt.Errorf("%w: %s", airquality.ErrDatasetNotFound, s.path)
		}
		return airquality.Table{}, err
	}

	db, err := sql.Open("sqlite3", "file:"+s.path+"?mode=ro")
	if err != nil {
		return airquality.Table{}, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT * FROM "`+s.table+`"`)
	if err != nil {
		return airquality.Table{}, fmt.Errorf("query %s: %w", s.table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return airquality.Table{}, err
	}
	dec, err := newDecoder(cols)
	if err != nil {
		return airquality.Table{}, err
	}

	values := make([]sql.NullString, len(cols))
	dest := make([]any, len(cols))
	for i := range values {
		dest[i] = &values[i]
	}
	record := make([]string, len(cols))
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return airquality.Table{}, fmt.Errorf("scan %s: %w", s.table, err)
		}
		for i, v := range values {
			record[i] = v.String
		}
		dec.add(record)
	}
	if err := rows.Err(); err != nil {
		return airquality.Table{}, err
	}
	return dec.finish(s.Name()), nil
}
