package intake

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// File is a candidate document handed to an upload slot
type File struct {
	Name      string `json:"name"`
	Path      string `json:"path,omitempty"`
	MediaType string `json:"media_type"`
	Size      int64  `json:"size"`

	data []byte
}

// NewFile builds a File from a path on disk, resolving its media type
func NewFile(path string) (File, error) {
	if path == "" {
		return File{}, fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)
	info, err := os.Stat(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, fmt.Errorf("file does not exist: %s", cleanPath)
		}
		return File{}, fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return File{}, fmt.Errorf("path is a directory, not a file: %s", cleanPath)
	}

	mediaType, err := DetectMediaType(cleanPath)
	if err != nil {
		return File{}, err
	}

	return File{
		Name:      filepath.Base(cleanPath),
		Path:      cleanPath,
		MediaType: mediaType,
		Size:      info.Size(),
	}, nil
}

// NewMemoryFile builds a File backed by an in-memory buffer
func NewMemoryFile(name, mediaType string, data []byte) File {
	return File{
		Name:      name,
		MediaType: mediaType,
		Size:      int64(len(data)),
		data:      data,
	}
}

// Open returns a reader over the file contents
func (f File) Open() (io.ReadCloser, error) {
	if f.data != nil || f.Path == "" {
		return io.NopCloser(bytes.NewReader(f.data)), nil
	}
	// #nosec G304 - path was resolved by NewFile
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", f.Name, err)
	}
	return file, nil
}

// DetectMediaType resolves the media type from the extension first and falls
// back to sniffing the first 512 bytes.
func DetectMediaType(path string) (string, error) {
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
		mediaType, _, err := mime.ParseMediaType(byExt)
		if err == nil {
			return mediaType, nil
		}
	}

	// #nosec G304 - caller validated the path
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read file header: %w", err)
	}

	mediaType, _, err := mime.ParseMediaType(http.DetectContentType(head[:n]))
	if err != nil {
		return "application/octet-stream", nil
	}
	return mediaType, nil
}
