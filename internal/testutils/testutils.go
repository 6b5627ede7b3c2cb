// Package testutils provides helpers for tests.
package testutils

//go:generate go tool mockgen -destination=iomock/reader.go -package=iomock io Reader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ProjectRoot is the directory of the module go.mod file.
var ProjectRoot string

func init() {
	ProjectRoot = findRoot()
}

func findRoot() string {
	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	for dir := cwd; ; {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic(cwd + " is not inside a module")
		}
		dir = parent
	}
}

// Fixture reads the message fixture from the testdata directory of the module root.
// Bare LF line endings are converted to CRLF, so fixtures can be edited as plain text.
func Fixture(tb testing.TB, name string) []byte {
	tb.Helper()

	b, err := os.ReadFile(filepath.Join(ProjectRoot, "testdata", name))
	if err != nil {
		tb.Fatalf("read fixture %q: %v", name, err)
	}
	s := strings.ReplaceAll(string(b), "\r\n", "\n")
	return []byte(strings.ReplaceAll(s, "\n", "\r\n"))
}
