package main

import (
	"archive/zip"
	"io"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode"
	"github.com/spf13/afero"
)

// normalizeArchiveExt maps comic-book extensions onto the underlying
// archive format
func normalizeArchiveExt(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".cbz":
		return ".zip"
	case ".cbr":
		return ".rar"
	case ".cb7":
		return ".7z"
	}
	return ext
}

// listArchiveEntries returns the image entry names inside the archive at
// path, in archive order
func listArchiveEntries(fsys afero.Fs, path string, images ExtensionSet) ([]string, error) {
	switch normalizeArchiveExt(path) {
	case ".zip":
		return listZipEntries(fsys, path, images)
	case ".rar":
		return listRarEntries(fsys, path, images)
	case ".7z":
		return list7zEntries(fsys, path, images)
	default:
		return nil, &UnsupportedFormatError{Path: path}
	}
}

// readArchiveEntry returns the raw bytes of a single named entry
func readArchiveEntry(fsys afero.Fs, archivePath, entry string) ([]byte, error) {
	switch normalizeArchiveExt(archivePath) {
	case ".zip":
		return readZipEntry(fsys, archivePath, entry)
	case ".rar":
		return readRarEntry(fsys, archivePath, entry)
	case ".7z":
		return read7zEntry(fsys, archivePath, entry)
	default:
		return nil, &UnsupportedFormatError{Path: archivePath}
	}
}

// openArchive opens path for random access and reports its size
func openArchive(fsys afero.Fs, path string) (afero.File, int64, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, 0, &IOError{Op: "open archive", Path: path, Err: err}
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, &IOError{Op: "open archive", Path: path, Err: err}
	}
	return f, info.Size(), nil
}

func listZipEntries(fsys afero.Fs, path string, images ExtensionSet) ([]string, error) {
	f, size, err := openArchive(fsys, path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := zip.NewReader(f, size)
	if err != nil {
		return nil, &IOError{Op: "open archive", Path: path, Err: err}
	}

	var entries []string
	for _, entry := range r.File {
		if !entry.FileInfo().IsDir() && images.ContainsPath(entry.Name) {
			entries = append(entries, entry.Name)
		}
	}
	return entries, nil
}

func listRarEntries(fsys afero.Fs, path string, images ExtensionSet) ([]string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open archive", Path: path, Err: err}
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, &IOError{Op: "open archive", Path: path, Err: err}
	}

	var entries []string
	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &IOError{Op: "read archive", Path: path, Err: err}
		}
		if !header.IsDir && images.ContainsPath(header.Name) {
			entries = append(entries, header.Name)
		}
	}
	return entries, nil
}

func list7zEntries(fsys afero.Fs, path string, images ExtensionSet) ([]string, error) {
	f, size, err := openArchive(fsys, path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := sevenzip.NewReader(f, size)
	if err != nil {
		return nil, &IOError{Op: "open archive", Path: path, Err: err}
	}

	var entries []string
	for _, entry := range r.File {
		if !entry.FileInfo().IsDir() && images.ContainsPath(entry.Name) {
			entries = append(entries, entry.Name)
		}
	}
	return entries, nil
}

func readZipEntry(fsys afero.Fs, archivePath, entry string) ([]byte, error) {
	f, size, err := openArchive(fsys, archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := zip.NewReader(f, size)
	if err != nil {
		return nil, &IOError{Op: "open archive", Path: archivePath, Err: err}
	}

	for _, candidate := range r.File {
		if candidate.Name != entry {
			continue
		}
		rc, err := candidate.Open()
		if err != nil {
			return nil, &IOError{Op: "read archive", Path: archivePath, Err: err}
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, &IOError{Op: "read archive", Path: archivePath, Err: err}
		}
		return data, nil
	}
	return nil, &NotFoundError{Path: entry}
}

func readRarEntry(fsys afero.Fs, archivePath, entry string) ([]byte, error) {
	f, err := fsys.Open(archivePath)
	if err != nil {
		return nil, &IOError{Op: "open archive", Path: archivePath, Err: err}
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, &IOError{Op: "open archive", Path: archivePath, Err: err}
	}

	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &IOError{Op: "read archive", Path: archivePath, Err: err}
		}
		if header.Name == entry {
			data, err := io.ReadAll(r)
			if err != nil {
				return nil, &IOError{Op: "read archive", Path: archivePath, Err: err}
			}
			return data, nil
		}
	}
	return nil, &NotFoundError{Path: entry}
}

func read7zEntry(fsys afero.Fs, archivePath, entry string) ([]byte, error) {
	f, size, err := openArchive(fsys, archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := sevenzip.NewReader(f, size)
	if err != nil {
		return nil, &IOError{Op: "open archive", Path: archivePath, Err: err}
	}

	for _, candidate := range r.File {
		if candidate.Name != entry {
			continue
		}
		rc, err := candidate.Open()
		if err != nil {
			return nil, &IOError{Op: "read archive", Path: archivePath, Err: err}
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, &IOError{Op: "read archive", Path: archivePath, Err: err}
		}
		return data, nil
	}
	return nil, &NotFoundError{Path: entry}
}
