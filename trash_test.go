package main

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
)

func TestTrashMovesFileIntoLayout(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/pics/cat.png", []byte("meow"), 0644); err != nil {
		t.Fatalf("Writing file: %v", err)
	}

	trash := NewFileTrashAt(fsys, "/trash")
	if err := trash.Trash("/pics/cat.png"); err != nil {
		t.Fatalf("Trash failed: %v", err)
	}

	if exists, _ := afero.Exists(fsys, "/pics/cat.png"); exists {
		t.Error("Expected source file to be gone")
	}

	data, err := afero.ReadFile(fsys, "/trash/files/cat.png")
	if err != nil {
		t.Fatalf("Reading trashed file: %v", err)
	}
	if string(data) != "meow" {
		t.Errorf("Expected content preserved, got %q", data)
	}

	record, err := afero.ReadFile(fsys, "/trash/info/cat.png.trashinfo")
	if err != nil {
		t.Fatalf("Reading trashinfo: %v", err)
	}
	text := string(record)
	if !strings.HasPrefix(text, "[Trash Info]\n") {
		t.Errorf("Expected [Trash Info] header, got %q", text)
	}
	if !strings.Contains(text, "Path=/pics/cat.png\n") {
		t.Errorf("Expected Path line, got %q", text)
	}

	for _, line := range strings.Split(text, "\n") {
		if value, ok := strings.CutPrefix(line, "DeletionDate="); ok {
			if _, err := time.Parse("2006-01-02T15:04:05", value); err != nil {
				t.Errorf("Unparseable DeletionDate %q: %v", value, err)
			}
			return
		}
	}
	t.Errorf("Expected DeletionDate line, got %q", text)
}

func TestTrashCollisionGetsNumericSuffix(t *testing.T) {
	fsys := afero.NewMemMapFs()
	trash := NewFileTrashAt(fsys, "/trash")

	for i, content := range []string{"first", "second", "third"} {
		if err := afero.WriteFile(fsys, "/pics/cat.png", []byte(content), 0644); err != nil {
			t.Fatalf("Writing file %d: %v", i, err)
		}
		if err := trash.Trash("/pics/cat.png"); err != nil {
			t.Fatalf("Trash %d failed: %v", i, err)
		}
	}

	tests := []struct {
		path    string
		content string
	}{
		{"/trash/files/cat.png", "first"},
		{"/trash/files/cat.1.png", "second"},
		{"/trash/files/cat.2.png", "third"},
	}
	for _, test := range tests {
		data, err := afero.ReadFile(fsys, test.path)
		if err != nil {
			t.Errorf("Reading %s: %v", test.path, err)
			continue
		}
		if string(data) != test.content {
			t.Errorf("%s: expected %q, got %q", test.path, test.content, data)
		}
	}

	for _, info := range []string{
		"/trash/info/cat.png.trashinfo",
		"/trash/info/cat.1.png.trashinfo",
		"/trash/info/cat.2.png.trashinfo",
	} {
		if exists, _ := afero.Exists(fsys, info); !exists {
			t.Errorf("Expected %s to exist", info)
		}
	}
}

func TestTrashEscapesPathInRecord(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/pics/my cat.png", []byte("x"), 0644); err != nil {
		t.Fatalf("Writing file: %v", err)
	}

	trash := NewFileTrashAt(fsys, "/trash")
	if err := trash.Trash("/pics/my cat.png"); err != nil {
		t.Fatalf("Trash failed: %v", err)
	}

	record, err := afero.ReadFile(fsys, "/trash/info/my cat.png.trashinfo")
	if err != nil {
		t.Fatalf("Reading trashinfo: %v", err)
	}
	if !strings.Contains(string(record), "Path=/pics/my%20cat.png\n") {
		t.Errorf("Expected percent-encoded path, got %q", record)
	}
}

func TestTrashMissingFileCleansUpRecord(t *testing.T) {
	fsys := afero.NewMemMapFs()
	trash := NewFileTrashAt(fsys, "/trash")

	if err := trash.Trash("/pics/gone.png"); err == nil {
		t.Fatal("Expected error for missing file")
	}

	// The claimed trashinfo must not leak
	if exists, _ := afero.Exists(fsys, "/trash/info/gone.png.trashinfo"); exists {
		t.Error("Expected trashinfo record to be removed on failure")
	}
}
