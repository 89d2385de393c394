package batch

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// pngExt is compared case-insensitively.
const pngExt = ".png"

// IsPNGName reports whether name has a .png extension in any letter case.
func IsPNGName(name string) bool {
	return strings.EqualFold(filepath.Ext(name), pngExt)
}

// Discover walks root and returns every regular file with a .png extension,
// in lexical walk order. Unreadable subdirectories are logged and skipped;
// only a failure on root itself is returned.
func Discover(root string, log logrus.FieldLogger) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			log.WithFields(logrus.Fields{"path": path, "error": err}).Warn("Skipping unreadable entry")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !IsPNGName(d.Name()) {
			return nil
		}
		if isRegular(path, d) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// isRegular accepts regular files and symlinks that resolve to one.
func isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
