package dataset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/i474232898/air-quality-dashboard/internal/airquality"
)

// FileSource reads the dataset from a local CSV or XLSX file, optionally
// compressed.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string {
	return s.path
}

func (s *FileSource) Load(ctx context.Context) (airquality.Table, error) {
	if err := ctx.Err(); err != nil {
		return airquality.Table{}, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return airquality.Table{}, fmt.Errorf("%w: %s", airquality.ErrDatasetNotFound, s.path)
		}
		return airquality.Table{}, err
	}
	defer f.Close()

	return ReadTable(f, filepath.Base(s.path))
}
