// Package sink persists serialized emoji records to one of three
// destinations: a stream, a single file, or one file per record.
package sink

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Writer stores one serialized record per call. The variant is chosen
// once by New from the destination token and never changes afterwards,
// even if the filesystem changes underneath it.
type Writer interface {
	// Write stores text followed by a newline under name and returns
	// the number of payload bytes written, newline included. name is
	// only meaningful for the per-record directory variant.
	Write(name, text string) (int, error)
}

// New selects the destination variant from the token: "-" writes to
// stdout, an existing directory or a token with a trailing path
// separator writes one <name>.json per record, anything else a single
// create-or-truncate file.
func New(token string) (Writer, error) {
	if token == "-" {
		return &stream{out: os.Stdout}, nil
	}

	if info, err := os.Stat(token); (err == nil && info.IsDir()) ||
		strings.HasSuffix(token, string(os.PathSeparator)) {
		return &directory{dir: token}, nil
	}

	f, err := os.OpenFile(token, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open output file %q: %w", token, err)
	}
	return &file{f: f}, nil
}

type stream struct {
	out io.Writer
}

func (s *stream) Write(_, text string) (int, error) {
	return io.WriteString(s.out, text+"\n")
}

type file struct {
	f *os.File
}

func (w *file) Write(_, text string) (int, error) {
	return w.f.WriteString(text + "\n")
}

type directory struct {
	dir string
}

// Write creates the directory on first use; a missing target is not an
// error until something actually has to be written.
func (d *directory) Write(name, text string) (int, error) {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return 0, fmt.Errorf("create output directory %q: %w", d.dir, err)
	}

	path := filepath.Join(d.dir, name+".json")
	if err := os.WriteFile(path, []byte(text+"\n"), 0o644); err != nil {
		return 0, fmt.Errorf("write %q: %w", path, err)
	}
	return len(text) + 1, nil
}
