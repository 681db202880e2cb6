package fileops

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// trashInfoTime is the DeletionDate layout of freedesktop.org .trashinfo files
const trashInfoTime = "2006-01-02T15:04:05"

// TrashDir returns the home trash directory: $XDG_DATA_HOME/Trash, or
// ~/.local/share/Trash when XDG_DATA_HOME is unset
func TrashDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "Trash"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "Trash"), nil
}

// Trash moves the file at path into the freedesktop.org home trash so the
// desktop can restore it. It returns the location inside the trash.
func Trash(path string) (string, error) {
	info, err := statFile(path)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	trash, err := TrashDir()
	if err != nil {
		return "", err
	}
	filesDir := filepath.Join(trash, "files")
	infoDir := filepath.Join(trash, "info")
	for _, dir := range []string{filesDir, infoDir} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return "", fmt.Errorf("failed to create trash directory: %w", err)
		}
	}

	name, infoPath, err := reserveTrashName(filesDir, infoDir, filepath.Base(abs), abs)
	if err != nil {
		return "", err
	}

	dst := filepath.Join(filesDir, name)
	if err := moveFile(abs, dst, info.Mode().Perm()); err != nil {
		_ = os.Remove(infoPath)
		return "", err
	}
	return dst, nil
}

// reserveTrashName claims a free name by creating its .trashinfo file
// exclusively, appending .2, .3, ... before the extension on collision
func reserveTrashName(filesDir, infoDir, base, original string) (string, string, error) {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	content := fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n",
		(&url.URL{Path: original}).EscapedPath(),
		time.Now().Format(trashInfoTime))

	for n := 1; n < 10000; n++ {
		name := base
		if n > 1 {
			name = stem + "." + strconv.Itoa(n) + ext
		}
		if _, err := os.Lstat(filepath.Join(filesDir, name)); err == nil {
			continue
		}

		infoPath := filepath.Join(infoDir, name+".trashinfo")
		f, err := os.OpenFile(infoPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", "", fmt.Errorf("failed to create trash info: %w", err)
		}
		_, werr := f.WriteString(content)
		cerr := f.Close()
		if werr != nil || cerr != nil {
			_ = os.Remove(infoPath)
			return "", "", fmt.Errorf("failed to write trash info: %w", errors.Join(werr, cerr))
		}
		return name, infoPath, nil
	}
	return "", "", fmt.Errorf("no free trash name for %s", base)
}
