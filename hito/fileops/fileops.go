// Package fileops implements the image file actions of the browser:
// loading an image as a data URL, copying or moving it to another
// directory, and sending it to the trash.
package fileops

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/gabriel-vasile/mimetype"
)

var (
	// ErrNotFile is returned when an operation expects a regular file
	ErrNotFile = errors.New("path is not a file")

	// ErrNoParent is returned for paths without a parent directory
	ErrNoParent = errors.New("path has no parent directory")

	// ErrExists is returned when the destination of a copy or move is taken
	ErrExists = errors.New("destination already exists")
)

// DefaultMIMEType is used when neither the extension nor the content identifies the image
const DefaultMIMEType = "image/png"

var mimeByExtension = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
}

// ParentDirectory returns the directory containing path
func ParentDirectory(path string) (string, error) {
	if path == "" {
		return "", ErrNoParent
	}
	clean := filepath.Clean(path)
	parent := filepath.Dir(clean)
	if parent == clean {
		return "", fmt.Errorf("%w: %s", ErrNoParent, path)
	}
	return parent, nil
}

// statFile checks that path exists and is a regular file
func statFile(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("image does not exist: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotFile, path)
	}
	return info, nil
}

// DetectMIMEType picks the MIME type for an image: the extension table
// first, then content sniffing, then DefaultMIMEType
func DetectMIMEType(path string, data []byte) string {
	if mt, ok := mimeByExtension[strings.ToLower(filepath.Ext(path))]; ok {
		return mt
	}
	if detected := mimetype.Detect(data); strings.HasPrefix(detected.String(), "image/") {
		return detected.String()
	}
	return DefaultMIMEType
}

// LoadDataURL reads an image and returns it as data:<mime>;base64,<payload>
func LoadDataURL(path string) (string, error) {
	if _, err := statFile(path); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	return "data:" + DetectMIMEType(path, data) + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Copy copies src into dstDir under the same base name and returns the new path
func Copy(src, dstDir string) (string, error) {
	info, err := statFile(src)
	if err != nil {
		return "", err
	}

	dst := filepath.Join(dstDir, filepath.Base(src))
	if err := copyFile(src, dst, info.Mode().Perm()); err != nil {
		return "", err
	}
	return dst, nil
}

// Move moves src into dstDir under the same base name and returns the new
// path. Moves across filesystems fall back to copy and remove.
func Move(src, dstDir string) (string, error) {
	info, err := statFile(src)
	if err != nil {
		return "", err
	}

	dst := filepath.Join(dstDir, filepath.Base(src))
	if _, err := os.Lstat(dst); err == nil {
		return "", fmt.Errorf("%w: %s", ErrExists, dst)
	}

	if err := moveFile(src, dst, info.Mode().Perm()); err != nil {
		return "", err
	}
	return dst, nil
}

func moveFile(src, dst string, perm os.FileMode) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return fmt.Errorf("failed to move file: %w", err)
	}

	if err := copyFile(src, dst, perm); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("failed to remove source after copy: %w", err)
	}
	return nil
}

// copyFile never overwrites dst
func copyFile(src, dst string, perm os.FileMode) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if errors.Is(err, os.ErrExist) {
		return fmt.Errorf("%w: %s", ErrExists, dst)
	}
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close destination: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(dst)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy data: %w", err)
	}
	return nil
}
