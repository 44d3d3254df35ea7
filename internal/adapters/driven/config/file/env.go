package file

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
)

// LoadEnv loads KEY=value pairs from the given .env files into the process
// environment. Missing files are skipped. Variables already set in the
// environment are never overwritten.
func LoadEnv(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}
