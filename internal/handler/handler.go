package handler

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Paintersrp/keepnote/internal/pathutil"
)

// TrashDir is the directory under the notes root that deleted notes move to.
// It is hidden so neither rg nor the picker list it.
const TrashDir = ".trash"

type FileHandler struct {
	root string
}

func NewFileHandler(root string) *FileHandler {
	return &FileHandler{root: root}
}

// Root returns the notes directory.
func (h *FileHandler) Root() string {
	return h.root
}

// Trash moves a note file to the trash directory, keeping its subdirectory.
// It returns the new location.
func (h *FileHandler) Trash(path string) (string, error) {
	if err := pathutil.Within(h.root, path); err != nil {
		return "", err
	}

	subDir, err := filepath.Rel(h.root, filepath.Dir(path))
	if err != nil {
		return "", err
	}

	trashDir := filepath.Join(h.root, TrashDir, subDir)
	if err := os.MkdirAll(trashDir, os.ModePerm); err != nil {
		return "", err
	}

	newPath := available(filepath.Join(trashDir, filepath.Base(path)))
	return newPath, os.Rename(path, newPath)
}

// Untrash moves a note file from the trash directory to its original
// location.
func (h *FileHandler) Untrash(path string) (string, error) {
	trash := filepath.Join(h.root, TrashDir)
	if err := pathutil.Within(trash, path); err != nil {
		return "", err
	}

	subDir, err := filepath.Rel(trash, filepath.Dir(path))
	if err != nil {
		return "", err
	}

	originalDir := filepath.Join(h.root, subDir)
	if err := os.MkdirAll(originalDir, os.ModePerm); err != nil {
		return "", err
	}

	newPath := filepath.Join(originalDir, filepath.Base(path))
	if _, err := os.Stat(newPath); err == nil {
		return "", fmt.Errorf("%s already exists", newPath)
	}
	return newPath, os.Rename(path, newPath)
}

// Remove deletes a note file.
func (h *FileHandler) Remove(path string) error {
	if err := pathutil.Within(h.root, path); err != nil {
		return err
	}
	return os.Remove(path)
}

// WalkFiles lists every note under the root. Hidden files and directories,
// the trash included, are skipped.
func (h *FileHandler) WalkFiles() ([]string, error) {
	var files []string

	err := filepath.WalkDir(h.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) && path != h.root {
				return nil
			}
			return err
		}

		if path != h.root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

// available returns path, or path with a timestamp before its extension when
// path is taken.
func available(path string) string {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return path
	}
	ext := filepath.Ext(path)
	stamp := time.Now().Format("20060102-150405.000000000")
	return strings.TrimSuffix(path, ext) + "-" + stamp + ext
}
