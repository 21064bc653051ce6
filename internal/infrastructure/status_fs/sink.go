// Package status_fs mirrors each composed snapshot to a JSON file for
// external consumers (status bars, scripts). The file is output only; the
// core never reads it back.
package status_fs

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/avatarneil/stack-status/internal/domain"
)

type FSSink struct {
	path string
}

func New(path string) *FSSink { return &FSSink{path: path} }

func (s *FSSink) Write(_ context.Context, st domain.StackStatus) error {
	if s.path == "" {
		return errors.New("export path is empty")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(st)
}
