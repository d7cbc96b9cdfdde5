// Package archive packages a directory into a zip file for upload. Excluded
// names are pruned before their subtrees are visited, so walk cost scales
// with the filtered tree.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/afero"
)

// ErrNotDirectory is returned when the source path exists but is not a
// directory.
var ErrNotDirectory = errors.New("path is not a directory")

// Result describes a produced archive.
type Result struct {
	Path        string
	FileCount   int
	TotalSize   int64 // sum of original file sizes
	ArchiveSize int64
}

// Ratio returns the compression ratio (1 - compressed/original) and whether
// it is defined. It is undefined when no bytes were archived.
func (r *Result) Ratio() (float64, bool) {
	if r.TotalSize == 0 {
		return 0, false
	}
	return 1 - float64(r.ArchiveSize)/float64(r.TotalSize), true
}

// Build zips sourceDir into outPath on the given filesystem. Entries are
// stored relative to sourceDir's parent, so the top-level directory name
// survives extraction. Any file or directory whose base name matches one of
// the glob patterns is skipped; matching directories are never descended
// into. The source tree is not modified.
func Build(fsys afero.Fs, sourceDir, outPath string, patterns []string) (*Result, error) {
	// Resolve relative sources ("." included) so the entry prefix is the
	// real directory name, never "." or "".
	sourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("resolve source directory: %w", err)
	}
	info, err := fsys.Stat(sourceDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("directory not found: %s: %w", sourceDir, err)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", sourceDir, ErrNotDirectory)
	}

	globs, err := compilePatterns(patterns)
	if err != nil {
		return nil, err
	}

	out, err := fsys.Create(outPath)
	if err != nil {
		return nil, fmt.Errorf("create archive: %w", err)
	}

	res := &Result{Path: outPath}
	zw := zip.NewWriter(out)
	base := filepath.Base(sourceDir)

	walkErr := afero.Walk(fsys, sourceDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == sourceDir {
			return nil
		}
		if matchAny(globs, info.Name()) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}
		hdr := &zip.FileHeader{
			Name:     filepath.ToSlash(filepath.Join(base, rel)),
			Method:   zip.Deflate,
			Modified: info.ModTime(),
		}
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return err
		}
		f, err := fsys.Open(path)
		if err != nil {
			return err
		}
		n, err := io.Copy(w, f)
		f.Close()
		if err != nil {
			return fmt.Errorf("archive %s: %w", path, err)
		}
		res.FileCount++
		res.TotalSize += n
		return nil
	})
	if walkErr != nil {
		zw.Close()
		out.Close()
		return nil, walkErr
	}
	if err := zw.Close(); err != nil {
		out.Close()
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}

	outInfo, err := fsys.Stat(outPath)
	if err != nil {
		return nil, err
	}
	res.ArchiveSize = outInfo.Size()
	return res, nil
}

func compilePatterns(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("bad exclude pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func matchAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}
