package storage

import (
	"io"
	"os"
	"path/filepath"
)

// BackupOriginal copies a raw caption file into the originals directory as
// <videoID><ext> and returns the backup path. An existing backup is never
// overwritten: the original download is the one artifact corrections can be
// diffed against, so the first copy wins.
func BackupOriginal(originalsDir, videoID, captionPath string) (string, error) {
	src, err := os.Open(captionPath)
	if err != nil {
		return "", &StorageError{Op: "backup", Entity: "captions", ID: videoID, Err: err}
	}
	defer src.Close()

	if err := os.MkdirAll(originalsDir, 0755); err != nil {
		return "", &StorageError{Op: "backup", Entity: "captions", ID: videoID, Err: err}
	}

	ext := filepath.Ext(captionPath)
	if ext == "" {
		ext = ".vtt"
	}
	backupPath := filepath.Join(originalsDir, videoID+ext)

	if _, err := os.Stat(backupPath); err == nil {
		return backupPath, nil
	}

	writer, err := NewAtomicWriter(backupPath)
	if err != nil {
		return "", &StorageError{Op: "backup", Entity: "captions", ID: videoID, Err: err}
	}

	if _, err := io.Copy(writer, src); err != nil {
		writer.Abort()
		return "", &StorageError{Op: "backup", Entity: "captions", ID: videoID, Err: err}
	}
	if err := writer.Commit(); err != nil {
		return "", &StorageError{Op: "backup", Entity: "captions", ID: videoID, Err: err}
	}

	return backupPath, nil
}
