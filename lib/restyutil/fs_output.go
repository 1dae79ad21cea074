package restyutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// FilesystemOutput dumps each HTTP exchange to its own file in a
// directory. The directory is wiped on creation so every run starts
// clean.
type FilesystemOutput struct {
	directory string
}

func NewFilesystemOutput(dir string) FilesystemOutput {
	os.RemoveAll(dir)
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		slog.Warn("failed to create http dump directory, dumps disabled", "dir", dir, "err", err)
		return FilesystemOutput{}
	}
	return FilesystemOutput{directory: dir}
}

func (o FilesystemOutput) Write(id string, contents string) {
	if o.directory == "" {
		return
	}
	name := fmt.Sprintf("%s.http", id)
	err := os.WriteFile(filepath.Join(o.directory, name), []byte(contents), 0o600)
	if err != nil {
		slog.Warn("failed to write http dump", "file", name, "err", err)
	}
}
