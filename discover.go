package xsdnorm

import (
	"fmt"
	"os"
	"path/filepath"
)

// Discover enumerates the files to normalize under root. A file root is
// returned as-is regardless of extension or the recursive flag. For a
// directory root, direct child files with the given extension are
// returned, and child directories are descended into only when recursive
// is set. Order follows the underlying directory listing; callers must
// not depend on it.
func Discover(root string, recursive bool, ext string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}
	return discoverDir(root, recursive, ext, nil)
}

func discoverDir(dir string, recursive bool, ext string, files []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if recursive {
				files, err = discoverDir(path, recursive, ext, files)
				if err != nil {
					return nil, err
				}
			}
			continue
		}
		if filepath.Ext(entry.Name()) == ext {
			files = append(files, path)
		}
	}
	return files, nil
}
