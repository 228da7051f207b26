package seed

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-seeds/model"
)

const (
	fileExt        = ".seed"
	fileTimeLayout = "2006.01.02.15.04.05"
)

// Save writes s to dir under a timestamped file name and returns its path
func Save(dir string, s model.Seed, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "[Save] failed to create seed dir: %+v", dir)
	}

	path := filepath.Join(dir, now.Format(fileTimeLayout)+fileExt)
	if err := os.WriteFile(path, Marshal(s), 0o644); err != nil {
		return "", errors.Wrapf(err, "[Save] failed to write file: %+v", path)
	}
	return path, nil
}

// Load reads a seed file written by Save
func Load(path string) (model.Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Seed{}, errors.Wrapf(err, "[Load] failed to read file: %+v", path)
	}

	s, err := Unmarshal(data)
	if err != nil {
		return model.Seed{}, errors.Wrapf(err, "[Load] failed to decode file: %+v", path)
	}
	return s, nil
}
