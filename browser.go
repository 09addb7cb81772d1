package main

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

var (
	errNoSelection     = errors.New("no image selected")
	errArchiveReadOnly = errors.New("archive entries are read-only")
)

// Forbidden name characters, the union of Windows and POSIX restrictions
const forbiddenNameChars = `/\:*?"<>|`

// LoadResult describes the selection after a successful Load
type LoadResult struct {
	Path  string
	Index int
	Count int
}

// DeleteResult describes the selection after a successful DeleteCurrent
type DeleteResult struct {
	Removed string
	Path    string // new current path, empty when the list became empty
	Index   int
	Count   int
}

// RenameResult describes the selection after a successful RenameCurrent
type RenameResult struct {
	OldPath string
	Path    string
	Index   int
	Count   int
}

// DirectoryBrowser owns the ordered image list and the current index. In
// directory mode the entries are sibling files of the loaded path; in
// archive mode they are entry names inside one archive file.
type DirectoryBrowser struct {
	fs       afero.Fs
	images   ExtensionSet
	archives ExtensionSet
	sorter   SortStrategy
	trash    Trasher

	dir        string
	archive    string
	files      []string
	current    int
	loadedOnce bool
}

// NewDirectoryBrowser creates a browser over fs with the extension sets and
// sort method from config. Deletions go through trash.
func NewDirectoryBrowser(fsys afero.Fs, config Config, trash Trasher) *DirectoryBrowser {
	return &DirectoryBrowser{
		fs:       fsys,
		images:   NewExtensionSet(config.ImageExtensions),
		archives: NewExtensionSet(config.ArchiveExtensions),
		sorter:   GetSortStrategy(config.SortMethod),
		trash:    trash,
		current:  -1,
	}
}

// Load points the browser at path. An image path selects that file among
// its directory siblings, a directory path selects the first image inside
// it, and an archive path opens the archive's entry list.
func (b *DirectoryBrowser) Load(path string) (LoadResult, error) {
	path = filepath.Clean(path)

	info, err := b.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return LoadResult{}, &NotFoundError{Path: path}
		}
		return LoadResult{}, &IOError{Op: "stat", Path: path, Err: err}
	}

	switch {
	case info.IsDir():
		return b.loadDirectory(path, "")
	case b.archives.ContainsPath(path):
		return b.loadArchive(path)
	case b.images.ContainsPath(path):
		return b.loadDirectory(filepath.Dir(path), path)
	default:
		return LoadResult{}, b.failUnsupported(path)
	}
}

func (b *DirectoryBrowser) loadDirectory(dir, target string) (LoadResult, error) {
	files, err := b.listImageFiles(dir)
	if err != nil {
		return LoadResult{}, err
	}

	index := 0
	if target != "" {
		index = indexOfPath(files, target)
		if index < 0 {
			return LoadResult{}, b.failUnsupported(target)
		}
	} else if len(files) == 0 {
		return LoadResult{}, b.failUnsupported(dir)
	}

	b.dir = dir
	b.archive = ""
	b.files = files
	b.current = index
	b.loadedOnce = true

	return b.loadResult(), nil
}

func (b *DirectoryBrowser) loadArchive(path string) (LoadResult, error) {
	entries, err := listArchiveEntries(b.fs, path, b.images)
	if err != nil {
		return LoadResult{}, err
	}
	if len(entries) == 0 {
		return LoadResult{}, b.failUnsupported(path)
	}

	b.dir = ""
	b.archive = path
	b.files = b.sorter.Sort(entries)
	b.current = 0
	b.loadedOnce = true

	return b.loadResult(), nil
}

// failUnsupported applies the reset rule for unrecognized paths: after the
// first successful load a failed load drops the browser back to empty,
// before it the initial empty state is kept as is.
func (b *DirectoryBrowser) failUnsupported(path string) error {
	if b.loadedOnce {
		b.dir = ""
		b.archive = ""
		b.files = nil
		b.current = -1
	}
	return &UnsupportedFormatError{Path: path}
}

// listImageFiles enumerates the image files directly inside dir, sorted
// with the current strategy
func (b *DirectoryBrowser) listImageFiles(dir string) ([]string, error) {
	entries, err := afero.ReadDir(b.fs, dir)
	if err != nil {
		return nil, &IOError{Op: "read directory", Path: dir, Err: err}
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if b.images.Contains(filepath.Ext(entry.Name())) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return b.sorter.Sort(files), nil
}

func (b *DirectoryBrowser) loadResult() LoadResult {
	return LoadResult{Path: b.files[b.current], Index: b.current, Count: len(b.files)}
}

// indexOfPath finds target in files, preferring an exact match and falling
// back to a case-insensitive one
func indexOfPath(files []string, target string) int {
	for i, file := range files {
		if file == target {
			return i
		}
	}
	for i, file := range files {
		if strings.EqualFold(file, target) {
			return i
		}
	}
	return -1
}

// Next advances to the following image, wrapping at the end of the list
func (b *DirectoryBrowser) Next() {
	if len(b.files) == 0 {
		return
	}
	b.current = (b.current + 1) % len(b.files)
}

// Previous steps back to the preceding image, wrapping at the start
func (b *DirectoryBrowser) Previous() {
	if len(b.files) == 0 {
		return
	}
	b.current = (b.current - 1 + len(b.files)) % len(b.files)
}

// JumpFirst selects the first image
func (b *DirectoryBrowser) JumpFirst() {
	if len(b.files) == 0 {
		return
	}
	b.current = 0
}

// JumpLast selects the last image
func (b *DirectoryBrowser) JumpLast() {
	if len(b.files) == 0 {
		return
	}
	b.current = len(b.files) - 1
}

// JumpTo selects the image at index, reporting whether the selection moved
func (b *DirectoryBrowser) JumpTo(index int) bool {
	if index < 0 || index >= len(b.files) || index == b.current {
		return false
	}
	b.current = index
	return true
}

// DeleteCurrent moves the selected image and its companion files to the
// trash and removes the entry from the list. Companions go first; if any
// move fails the list stays untouched. A companion already trashed when a
// later move fails stays in the trash.
func (b *DirectoryBrowser) DeleteCurrent() (DeleteResult, error) {
	if b.current < 0 || b.current >= len(b.files) {
		return DeleteResult{}, errNoSelection
	}
	if b.archive != "" {
		return DeleteResult{}, &IOError{Op: "delete", Path: b.files[b.current], Err: errArchiveReadOnly}
	}

	path := b.files[b.current]
	for _, companion := range b.companionsOf(path) {
		if err := b.trash.Trash(companion); err != nil {
			return DeleteResult{}, &IOError{Op: "trash", Path: companion, Err: err}
		}
	}
	if err := b.trash.Trash(path); err != nil {
		return DeleteResult{}, &IOError{Op: "trash", Path: path, Err: err}
	}

	b.files = append(b.files[:b.current], b.files[b.current+1:]...)
	if len(b.files) == 0 {
		b.current = -1
	} else if b.current >= len(b.files) {
		b.current = len(b.files) - 1
	}

	result := DeleteResult{Removed: path, Index: b.current, Count: len(b.files)}
	if b.current >= 0 {
		result.Path = b.files[b.current]
	}
	return result, nil
}

// RenameCurrent gives the selected image (and its companions) the base name
// newBaseName, keeping each file's extension. The list entry is updated in
// place; the list is not re-sorted, so the selection keeps its position
// until the next reload.
func (b *DirectoryBrowser) RenameCurrent(newBaseName string) (RenameResult, error) {
	if b.current < 0 || b.current >= len(b.files) {
		return RenameResult{}, errNoSelection
	}
	if b.archive != "" {
		return RenameResult{}, &IOError{Op: "rename", Path: b.files[b.current], Err: errArchiveReadOnly}
	}

	oldPath := b.files[b.current]
	dir := filepath.Dir(oldPath)
	oldBase := strings.TrimSuffix(filepath.Base(oldPath), filepath.Ext(oldPath))

	if err := validateNewName(newBaseName, oldBase); err != nil {
		return RenameResult{}, err
	}

	// Plan every move up front so conflicts are caught before anything is
	// touched. The image moves last.
	type move struct{ from, to string }
	var moves []move
	for _, companion := range b.companionsOf(oldPath) {
		moves = append(moves, move{companion, filepath.Join(dir, newBaseName+filepath.Ext(companion))})
	}
	moves = append(moves, move{oldPath, filepath.Join(dir, newBaseName+filepath.Ext(oldPath))})

	for _, m := range moves {
		if strings.EqualFold(m.to, m.from) {
			// A case-only change of the same file is not a conflict
			continue
		}
		exists, err := afero.Exists(b.fs, m.to)
		if err != nil {
			return RenameResult{}, &IOError{Op: "stat", Path: m.to, Err: err}
		}
		if exists {
			return RenameResult{}, &NameConflictError{Path: m.to}
		}
	}

	for _, m := range moves {
		if err := b.fs.Rename(m.from, m.to); err != nil {
			return RenameResult{}, &RenameFailedError{Path: m.from, Err: err}
		}
	}

	newPath := filepath.Join(dir, newBaseName+filepath.Ext(oldPath))
	b.files[b.current] = newPath

	return RenameResult{OldPath: oldPath, Path: newPath, Index: b.current, Count: len(b.files)}, nil
}

// validateNewName checks a proposed base name before any filesystem work.
// A name differing from the current one only by letter case is accepted.
func validateNewName(name, currentBase string) error {
	if name == "" {
		return &InvalidNameError{Name: name, Reason: "name is empty"}
	}
	if strings.TrimSpace(name) != name {
		return &InvalidNameError{Name: name, Reason: "leading or trailing whitespace"}
	}
	if name == currentBase {
		return &InvalidNameError{Name: name, Reason: "name is unchanged"}
	}
	if strings.ContainsAny(name, forbiddenNameChars) {
		return &InvalidNameError{Name: name, Reason: "contains a forbidden character"}
	}
	for _, r := range name {
		if r < 0x20 {
			return &InvalidNameError{Name: name, Reason: "contains a control character"}
		}
	}
	if name == "." || name == ".." {
		return &InvalidNameError{Name: name, Reason: "reserved name"}
	}
	if strings.HasSuffix(name, ".") {
		return &InvalidNameError{Name: name, Reason: "trailing dot"}
	}
	return nil
}

// companionsOf lists files next to path sharing its base name but carrying
// an extension outside the image set, such as a paired video clip. The
// result is sorted for a stable processing order.
func (b *DirectoryBrowser) companionsOf(path string) []string {
	dir := filepath.Dir(path)
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	entries, err := afero.ReadDir(b.fs, dir)
	if err != nil {
		return nil
	}

	var companions []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.EqualFold(name, filepath.Base(path)) {
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if !strings.EqualFold(stem, base) {
			continue
		}
		if b.images.Contains(filepath.Ext(name)) {
			continue
		}
		companions = append(companions, filepath.Join(dir, name))
	}
	sort.Strings(companions)
	return companions
}

// Reload re-enumerates the current directory, keeping the selection on the
// same path when it still exists. Archive contents are static, so archive
// mode is a no-op.
func (b *DirectoryBrowser) Reload() error {
	if b.archive != "" || b.dir == "" {
		return nil
	}

	files, err := b.listImageFiles(b.dir)
	if err != nil {
		return err
	}

	var currentPath string
	if b.current >= 0 && b.current < len(b.files) {
		currentPath = b.files[b.current]
	}

	b.files = files
	if len(files) == 0 {
		b.current = -1
		return nil
	}

	if currentPath != "" {
		if index := indexOfPath(files, currentPath); index >= 0 {
			b.current = index
			return nil
		}
	}
	if b.current < 0 {
		b.current = 0
	} else if b.current >= len(files) {
		b.current = len(files) - 1
	}
	return nil
}

// SetSortStrategy re-sorts the list with the new strategy, following the
// selected path to its new position
func (b *DirectoryBrowser) SetSortStrategy(sorter SortStrategy) {
	b.sorter = sorter
	if len(b.files) == 0 {
		return
	}

	var currentPath string
	if b.current >= 0 {
		currentPath = b.files[b.current]
	}
	b.files = sorter.Sort(b.files)
	if currentPath != "" {
		if index := indexOfPath(b.files, currentPath); index >= 0 {
			b.current = index
		}
	}
}

// Current returns the selected path and whether a selection exists
func (b *DirectoryBrowser) Current() (string, bool) {
	if b.current < 0 || b.current >= len(b.files) {
		return "", false
	}
	return b.files[b.current], true
}

// CurrentSource returns the selected entry as a loadable image source
func (b *DirectoryBrowser) CurrentSource() (ImageSource, bool) {
	path, ok := b.Current()
	if !ok {
		return ImageSource{}, false
	}
	return ImageSource{Path: path, Archive: b.archive}, true
}

func (b *DirectoryBrowser) CurrentIndex() int { return b.current }

func (b *DirectoryBrowser) Count() int { return len(b.files) }

func (b *DirectoryBrowser) Dir() string { return b.dir }

func (b *DirectoryBrowser) Archive() string { return b.archive }

// Files returns a copy of the current file list
func (b *DirectoryBrowser) Files() []string {
	files := make([]string, len(b.files))
	copy(files, b.files)
	return files
}
