package extraction

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mholt/archives"
)

// IsArchive reports whether the extension names an archive format we
// unpack on upload.
func IsArchive(ext string) bool {
	switch strings.ToLower(ext) {
	case ".zip", ".rar", ".7z", ".tar", ".gz":
		return true
	}
	return false
}

// shouldSkip filters out entries that are packaging noise rather than
// payload: hidden files, macOS resource forks and Finder metadata,
// Windows thumbnail caches.
func shouldSkip(name string) bool {
	if name == "" || strings.HasPrefix(name, ".") {
		return true
	}
	if strings.HasPrefix(name, "._") || name == ".DS_Store" {
		return true
	}
	return strings.EqualFold(name, "thumbs.db")
}

// Unpack extracts an archive into a fresh temp directory and returns the
// extracted file paths plus the directory, which the caller must remove.
// System junk files inside the archive are dropped.
func Unpack(ctx context.Context, archivePath string) ([]string, string, error) {
	destDir, err := os.MkdirTemp("", "unpack-*")
	if err != nil {
		return nil, "", err
	}

	fsys, err := archives.FileSystem(ctx, archivePath, nil)
	if err != nil {
		os.RemoveAll(destDir)
		return nil, "", err
	}

	var extracted []string
	err = fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || shouldSkip(d.Name()) {
			return nil
		}

		src, err := fsys.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()

		destPath := filepath.Join(destDir, path)
		if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
			return err
		}
		dst, err := os.Create(destPath)
		if err != nil {
			return err
		}
		defer dst.Close()

		if _, err := io.Copy(dst, src); err != nil {
			return err
		}
		extracted = append(extracted, destPath)
		return nil
	})
	if err != nil {
		os.RemoveAll(destDir)
		return nil, "", err
	}
	return extracted, destDir, nil
}
