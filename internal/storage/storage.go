package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/ufcstats/internal/dataset"
	"github.com/pfrederiksen/ufcstats/internal/logger"
)

// bom is the UTF-8 byte order mark written at the start of every CSV file.
const bom = "\ufeff"

// Storage writes tables into a single output directory
type Storage struct {
	dir string
}

// New creates a new Storage instance
func New(dir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Storage{
		dir: dir,
	}, nil
}

// Dir returns the resolved output directory.
func (s *Storage) Dir() string {
	return s.dir
}

// Path returns the file path used for a table name.
func (s *Storage) Path(name string) string {
	return filepath.Join(s.dir, name+".csv")
}

// WriteTable writes header and rows as <name>.csv, replacing any existing file.
// The file is written to a temporary name first and renamed into place.
func (s *Storage) WriteTable(name string, header []string, rows [][]string) (string, error) {
	path := s.Path(name)

	tmp, err := os.CreateTemp(s.dir, "."+name+"-*.csv")
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(bom); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing %s: %w", name, err)
	}

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing %s header: %w", name, err)
	}
	if err := w.WriteAll(rows); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing %s rows: %w", name, err)
	}

	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", name, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", fmt.Errorf("setting permissions on %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("saving %s: %w", name, err)
	}

	logger.Info("Saved table", logger.Fields{"table": name, "rows": len(rows), "path": path})
	return path, nil
}

// WriteDataset writes the event and fight tables of ds and returns their paths
// in the same order.
func (s *Storage) WriteDataset(ds *dataset.Dataset) ([]string, error) {
	tables := ds.Tables()
	paths := make([]string, 0, len(tables))
	for _, t := range tables {
		path, err := s.WriteTable(t.Name, t.Header, t.Rows)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// WriteJSON saves v as indented JSON in <name>.json and returns the path.
func (s *Storage) WriteJSON(name string, v interface{}) (string, error) {
	path := filepath.Join(s.dir, name+".json")

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", name, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}

	return path, nil
}
