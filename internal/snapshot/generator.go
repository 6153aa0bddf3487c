package snapshot

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"golang.org/x/sync/errgroup"

	"dirsync/internal/hash"
	"dirsync/internal/progress"
)

// DirectoryAccessError reports a directory that could not be read or created.
type DirectoryAccessError struct {
	Dir string
	Err error
}

func (e *DirectoryAccessError) Error() string {
	return fmt.Sprintf("directory %q: %v", e.Dir, e.Err)
}

func (e *DirectoryAccessError) Unwrap() error { return e.Err }

// FileReadError reports a file that disappeared or became unreadable between
// enumeration and hashing. The whole scan aborts; no partial snapshot is
// produced.
type FileReadError struct {
	Name string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("file %q: %v", e.Name, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// Options controls snapshot generation.
type Options struct {
	// Exclude holds filepath.Match patterns applied to file names.
	// Empty means every direct-child regular file is included.
	Exclude []string
	// Workers enables concurrent hashing when greater than 1.
	// The result is identical to a sequential scan; the first hashing
	// error still aborts the whole generation.
	Workers int
	// Progress, when non-nil, is advanced once per hashed file.
	Progress *progress.Bar
}

// EnsureDirectory creates dir (and parents) if absent. Idempotent.
// Generate deliberately does not do this; callers wanting the best-effort
// never-block-on-missing-target behavior call EnsureDirectory first.
func EnsureDirectory(fsys billy.Filesystem, dir string) error {
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return &DirectoryAccessError{Dir: dir, Err: err}
	}
	return nil
}

// Generate scans the direct children of dir and returns a snapshot with one
// record per regular file. Subdirectories are not descended into. The scan
// is pure: it fails with a DirectoryAccessError if dir is absent rather than
// creating it.
func Generate(fsys billy.Filesystem, dir string, opts Options) (*Snapshot, error) {
	info, err := fsys.Stat(dir)
	if err != nil {
		return nil, &DirectoryAccessError{Dir: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &DirectoryAccessError{Dir: dir, Err: errors.New("not a directory")}
	}

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, &DirectoryAccessError{Dir: dir, Err: err}
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !entry.Mode().IsRegular() {
			continue
		}
		if excluded(entry.Name(), opts.Exclude) {
			continue
		}
		names = append(names, entry.Name())
	}

	// Records land at their enumeration index, so worker count never
	// changes the resulting order.
	records := make([]FileRecord, len(names))
	hashOne := func(i int) error {
		name := names[i]
		digest, err := hash.HashFile(fsys, fsys.Join(dir, name))
		if err != nil {
			return &FileReadError{Name: name, Err: err}
		}
		rec, err := NewFileRecord(name, digest)
		if err != nil {
			return err
		}
		records[i] = rec
		if opts.Progress != nil {
			opts.Progress.SetLabel(name)
			opts.Progress.Increment()
		}
		return nil
	}

	if opts.Workers > 1 {
		g := new(errgroup.Group)
		g.SetLimit(opts.Workers)
		for i := range names {
			i := i
			g.Go(func() error { return hashOne(i) })
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range names {
			if err := hashOne(i); err != nil {
				return nil, err
			}
		}
	}

	return &Snapshot{Dir: dir, Records: records}, nil
}

func excluded(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, err := filepath.Match(pattern, name); err == nil && matched {
			return true
		}
	}
	return false
}
