package dotEnvLoader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const defaultPath = ".env"

// DotEnvLoader reads variables from a .env file and the process environment.
// Process environment values win over the file.
type DotEnvLoader struct {
	Path string
}

func (l DotEnvLoader) Load() (map[string]string, error) {
	const op = "dotEnvLoader.Load"

	path := l.Path
	if path == "" {
		path = defaultPath
	}

	envs, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: read %s: %w", op, path, err)
		}
		envs = make(map[string]string)
	}

	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		envs[key] = value
	}
	return envs, nil
}
