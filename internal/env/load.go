package env

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
)

// Load reads the given dotenv file (e.g. ".env") and sets environment variables for each
// KEY=VALUE line. Variables already present in the process environment win.
// The file may be missing; that is not an error.
func Load(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Read parses the dotenv file without touching the process environment.
func Read(path string) (map[string]string, error) {
	vals, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	return vals, err
}
