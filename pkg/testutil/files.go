package testutil

import (
	"os"
	"path/filepath"
	"strings"
)

// Dir describes the layout of a directory. The keys are file names, and the
// values are file contents (a string) or subdirectories (a Dir).
type Dir map[string]any

// ApplyDir creates the given filesystem layout in the current directory.
func ApplyDir(dir Dir) {
	ApplyDirIn(dir, "")
}

// ApplyDirIn creates the given filesystem layout in a given directory.
func ApplyDirIn(dir Dir, root string) {
	for name, file := range dir {
		path := filepath.Join(root, name)
		switch file := file.(type) {
		case string:
			if err := os.WriteFile(path, []byte(file), 0o644); err != nil {
				panic(err)
			}
		case Dir:
			if err := os.MkdirAll(path, 0o755); err != nil {
				panic(err)
			}
			ApplyDirIn(file, path)
		default:
			panic("file is neither string nor Dir")
		}
	}
}

// TempDirWith creates a fresh temporary directory, populates it with dir and
// returns its path. The directory is removed when the test finishes.
func TempDirWith(t TempDirer, dir Dir) string {
	root := t.TempDir()
	ApplyDirIn(dir, root)
	return root
}

// Dedent removes the common leading indentation of all non-blank lines and a
// leading newline, so that raw strings can be written indented in tests.
func Dedent(text string) string {
	text = strings.TrimPrefix(text, "\n")
	lines := strings.Split(text, "\n")
	margin := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if margin == -1 || indent < margin {
			margin = indent
		}
	}
	if margin <= 0 {
		return text
	}
	for i, line := range lines {
		if len(line) >= margin {
			lines[i] = line[margin:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.Join(lines, "\n")
}
