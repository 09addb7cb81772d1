package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// Trasher moves files into a reversible-delete location
type Trasher interface {
	Trash(path string) error
}

// FileTrash implements the freedesktop.org trash layout: moved files live
// under <dir>/files/ and each has a matching <dir>/info/<name>.trashinfo
// record, so desktop trash tools can list and restore them.
type FileTrash struct {
	fs  afero.Fs
	dir string
}

// NewFileTrash returns a FileTrash rooted at the user's home trash
// directory ($XDG_DATA_HOME/Trash, falling back to ~/.local/share/Trash)
func NewFileTrash(fsys afero.Fs) *FileTrash {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return &FileTrash{fs: fsys, dir: filepath.Join(dataHome, "Trash")}
}

// NewFileTrashAt returns a FileTrash rooted at an explicit directory
func NewFileTrashAt(fsys afero.Fs, dir string) *FileTrash {
	return &FileTrash{fs: fsys, dir: dir}
}

// Trash moves path into the trash. The .trashinfo record is claimed first
// with O_EXCL, which reserves a unique destination name even when the
// trash already holds a file with the same name.
func (t *FileTrash) Trash(path string) error {
	filesDir := filepath.Join(t.dir, "files")
	infoDir := filepath.Join(t.dir, "info")
	if err := t.fs.MkdirAll(filesDir, 0700); err != nil {
		return err
	}
	if err := t.fs.MkdirAll(infoDir, 0700); err != nil {
		return err
	}

	name, infoFile, err := t.claimName(infoDir, filepath.Base(path))
	if err != nil {
		return err
	}
	infoPath := filepath.Join(infoDir, name+".trashinfo")

	record := fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n",
		escapeTrashPath(path), time.Now().Format("2006-01-02T15:04:05"))
	if _, err := infoFile.WriteString(record); err != nil {
		infoFile.Close()
		t.fs.Remove(infoPath)
		return err
	}
	if err := infoFile.Close(); err != nil {
		t.fs.Remove(infoPath)
		return err
	}

	if err := t.movePath(path, filepath.Join(filesDir, name)); err != nil {
		t.fs.Remove(infoPath)
		return err
	}
	return nil
}

// claimName reserves a destination name by exclusively creating its
// .trashinfo file. Collisions get a numeric suffix before the extension,
// "cat.png" becoming "cat.1.png".
func (t *FileTrash) claimName(infoDir, base string) (string, afero.File, error) {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for i := 0; ; i++ {
		name := base
		if i > 0 {
			name = fmt.Sprintf("%s.%d%s", stem, i, ext)
		}
		f, err := t.fs.OpenFile(filepath.Join(infoDir, name+".trashinfo"),
			os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if err == nil {
			return name, f, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", nil, err
		}
	}
}

// movePath renames src to dst, falling back to copy and delete when the
// rename fails (trash directory on another filesystem)
func (t *FileTrash) movePath(src, dst string) error {
	if err := t.fs.Rename(src, dst); err == nil {
		return nil
	}

	in, err := t.fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := t.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		t.fs.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		t.fs.Remove(dst)
		return err
	}
	return t.fs.Remove(src)
}

// escapeTrashPath percent-encodes a path the way trashinfo records expect
func escapeTrashPath(path string) string {
	u := url.URL{Path: path}
	return u.EscapedPath()
}
