package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// AudioFile is an uploaded recording saved for the duration of one request.
type AudioFile struct {
	Path string
	Size int64
}

// Remove deletes the file. Removing an already deleted file is not an error.
func (f *AudioFile) Remove() error {
	if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// AudioStore writes uploads under a directory, one uniquely named file per
// request, so concurrent requests never share a path.
type AudioStore struct {
	dir string
}

// NewAudioStore creates a store rooted at dir. An empty dir means the OS
// temp directory.
func NewAudioStore(dir string) *AudioStore {
	if dir == "" {
		dir = os.TempDir()
	}
	return &AudioStore{dir: dir}
}

// SaveAudio saves the uploaded audio file. The caller owns the returned
// file and must Remove it.
func (s *AudioStore) SaveAudio(file *multipart.FileHeader) (*AudioFile, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		ext = ".wav"
	}
	dst := filepath.Join(s.dir, "audio_"+uuid.NewString()+ext)

	size, err := saveMultipartFile(file, dst)
	if err != nil {
		os.Remove(dst)
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &AudioFile{Path: dst, Size: size}, nil
}

/* helper */
func saveMultipartFile(file *multipart.FileHeader, dst string) (int64, error) {
	src, err := file.Open()
	if err != nil {
		return 0, err
	}
	defer src.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, src)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return n, err
}
