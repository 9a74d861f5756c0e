package docs

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// stagingPrefix names in-flight upload files. Listings always hide these so
// a concurrent folder fetch never sees a half-written document.
const stagingPrefix = ".upload-"

// UploadResult summarizes a completed upload batch.
type UploadResult struct {
	Count int
	Bytes int64
}

// Message is the success text shown to the user.
func (r UploadResult) Message() string {
	return fmt.Sprintf("synced %d files", r.Count)
}

// SaveUploads writes the uploaded files under targetPath (relative to the
// docs root, "" for the root itself). Each file is staged under a temporary
// name and renamed into place, so a failed write never leaves a partial
// document visible.
func (s *Store) SaveUploads(targetPath string, files []*multipart.FileHeader) (UploadResult, error) {
	var res UploadResult

	rel := normalizeFolderPath(targetPath)
	dir, err := s.secureJoin(rel)
	if err != nil {
		return res, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return res, fmt.Errorf("creating target folder %s: %w", rel, err)
	}

	for _, fh := range files {
		name := filepath.Base(fh.Filename)
		if name == "" || name == "." || name == string(filepath.Separator) {
			return res, fmt.Errorf("invalid file name %q", fh.Filename)
		}
		n, err := s.saveOne(dir, name, fh)
		if err != nil {
			return res, fmt.Errorf("saving %s: %w", name, err)
		}
		res.Count++
		res.Bytes += n
	}

	s.Invalidate()
	slog.Info("upload complete",
		"target", rel,
		"files", res.Count,
		"size", humanize.Bytes(uint64(res.Bytes)))
	return res, nil
}

func (s *Store) saveOne(dir, name string, fh *multipart.FileHeader) (int64, error) {
	src, err := fh.Open()
	if err != nil {
		return 0, err
	}
	defer src.Close()

	staging := filepath.Join(dir, stagingPrefix+uuid.NewString())
	dst, err := os.Create(staging)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(staging)
		return 0, err
	}

	if err := os.Rename(staging, filepath.Join(dir, name)); err != nil {
		os.Remove(staging)
		return 0, err
	}
	return n, nil
}
