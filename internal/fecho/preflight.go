package fecho

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
)

// ErrIsDirectory is recorded for inputs that open but cannot be read as lines.
var ErrIsDirectory = errors.New("is a directory")

// Preflight checks that every path can be opened for reading before any
// output is produced. Directories are rejected too. It does not stop at the
// first failure: the returned *InaccessibleInputsError lists every path that failed.
func Preflight(fsys afero.Fs, paths []string) error {
	var failures *multierror.Error

	for _, path := range paths {
		f, err := fsys.Open(path)
		if err != nil {
			slog.Debug("preflight open failed", "path", path, "error", err)
			failures = multierror.Append(failures, &AccessError{Path: path, Err: describe(err)})
			continue
		}
		info, err := f.Stat()
		f.Close()
		switch {
		case err != nil:
			failures = multierror.Append(failures, &AccessError{Path: path, Err: describe(err)})
		case info.IsDir():
			slog.Debug("preflight rejected directory", "path", path)
			failures = multierror.Append(failures, &AccessError{Path: path, Err: ErrIsDirectory})
		}
	}

	if failures == nil {
		slog.Debug("preflight passed", "files", len(paths))
		return nil
	}
	return &InaccessibleInputsError{Failures: failures}
}

// describe strips the "open <path>:" prefix from a path error, since the
// diagnostic line already names the path.
func describe(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}
