package file

import (
	"errors"
	"os"
	"path/filepath"
)

// DefaultPermissionOctal is the default file and folder permission octal used
// when writing files that may carry credentials
const DefaultPermissionOctal os.FileMode = 0o770

var errNoPath = errors.New("no file path supplied")

// Write writes selected data to a file and creates any missing parent
// directories
func Write(path string, data []byte) error {
	if path == "" {
		return errNoPath
	}
	if err := os.MkdirAll(filepath.Dir(path), DefaultPermissionOctal); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Exists returns whether or not a file or path exists
func Exists(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}
