package xsdnorm

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveRoots converts the input and output roots to absolute form and
// enforces the configuration invariants: the two must differ, and a file
// input must not target its own containing directory. Both are user
// mistakes, caught before any file I/O.
func ResolveRoots(input, output string) (absIn, absOut string, err error) {
	absIn, err = filepath.Abs(input)
	if err != nil {
		return "", "", fmt.Errorf("resolving input %q: %w", input, err)
	}
	absOut, err = filepath.Abs(output)
	if err != nil {
		return "", "", fmt.Errorf("resolving output %q: %w", output, err)
	}
	if absIn == absOut {
		return "", "", errors.New("input and output must not be the same")
	}
	if info, statErr := os.Stat(absIn); statErr == nil && !info.IsDir() {
		if out, outErr := os.Stat(absOut); outErr == nil && out.IsDir() && filepath.Dir(absIn) == absOut {
			return "", "", errors.New("input and output must not be in the same directory")
		}
	}
	return absIn, absOut, nil
}

// OutputPath computes where the normalized form of file goes. A file
// input maps to outputRoot/<filename> when outputRoot is an existing
// directory, or to outputRoot itself otherwise (a full destination
// path). A directory input mirrors file's path relative to inputRoot
// under outputRoot.
func OutputPath(inputRoot, outputRoot, file string) (string, error) {
	info, err := os.Stat(inputRoot)
	if err != nil {
		return "", fmt.Errorf("stat input root: %w", err)
	}
	if !info.IsDir() {
		if out, err := os.Stat(outputRoot); err == nil && out.IsDir() {
			return filepath.Join(outputRoot, filepath.Base(file)), nil
		}
		return outputRoot, nil
	}
	rel, err := filepath.Rel(inputRoot, file)
	if err != nil {
		return "", fmt.Errorf("relativizing %s against %s: %w", file, inputRoot, err)
	}
	return filepath.Join(outputRoot, rel), nil
}

// underRoot reports whether path lies at or below root. Both must be
// absolute. Used to skip inputs nested inside the output root, guarding
// against self-overwrite.
func underRoot(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return true
}
