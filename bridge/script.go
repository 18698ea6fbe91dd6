package bridge

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"
)

// DefaultBootScript is the boot script path, relative to the working directory.
const DefaultBootScript = "./boot.elv"

// LoadScript reads the whole boot script at path.
func LoadScript(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrScriptMissing, path)
		}
		return "", fmt.Errorf("failed to open boot script %s: %w", path, err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: %s", ErrScriptEmpty, path)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s", ErrScriptNotUTF8, path)
	}
	return string(data), nil
}
