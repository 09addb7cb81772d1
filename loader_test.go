package main

import (
	"testing"
	"time"

	"github.com/spf13/afero"
)

func awaitResult(t *testing.T, l *ImageLoader) LoadedImage {
	t.Helper()
	select {
	case result, ok := <-l.Results():
		if !ok {
			t.Fatal("Results channel closed unexpectedly")
		}
		return result
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for load result")
	}
	return LoadedImage{}
}

func TestLoaderDecodesFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/pics/ok.png", tinyPNG(t), 0644); err != nil {
		t.Fatalf("Writing file: %v", err)
	}

	l := NewImageLoader(fsys)
	defer l.Close()

	l.Submit(1, ImageSource{Path: "/pics/ok.png"})
	result := awaitResult(t, l)

	if result.Seq != 1 {
		t.Errorf("Expected seq 1, got %d", result.Seq)
	}
	if result.Err != nil {
		t.Fatalf("Expected successful decode, got %v", result.Err)
	}
	if result.Img == nil {
		t.Fatal("Expected a decoded image")
	}
	bounds := result.Img.Bounds()
	if bounds.Dx() != 1 || bounds.Dy() != 1 {
		t.Errorf("Expected 1x1 image, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestLoaderDecodesArchiveEntry(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeTestZip(t, fsys, "/comic.zip", []zipEntry{
		{"01.png", tinyPNG(t)},
	})

	l := NewImageLoader(fsys)
	defer l.Close()

	l.Submit(7, ImageSource{Path: "01.png", Archive: "/comic.zip"})
	result := awaitResult(t, l)

	if result.Err != nil {
		t.Fatalf("Expected successful decode, got %v", result.Err)
	}
	if result.Src.Archive != "/comic.zip" {
		t.Errorf("Expected source archive preserved, got %+v", result.Src)
	}
}

func TestLoaderReportsDecodeError(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/pics/bad.png", []byte("not an image"), 0644); err != nil {
		t.Fatalf("Writing file: %v", err)
	}

	l := NewImageLoader(fsys)
	defer l.Close()

	l.Submit(1, ImageSource{Path: "/pics/bad.png"})
	result := awaitResult(t, l)

	if !IsDecodeError(result.Err) {
		t.Errorf("Expected DecodeError, got %v", result.Err)
	}
	if result.Img != nil {
		t.Error("Expected nil image on decode failure")
	}
}

func TestLoaderReportsMissingFile(t *testing.T) {
	fsys := afero.NewMemMapFs()

	l := NewImageLoader(fsys)
	defer l.Close()

	l.Submit(1, ImageSource{Path: "/pics/gone.png"})
	result := awaitResult(t, l)

	if !IsNotFound(result.Err) {
		t.Errorf("Expected NotFoundError, got %v", result.Err)
	}
}

func TestLoaderSequencePassthrough(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/pics/ok.png", tinyPNG(t), 0644); err != nil {
		t.Fatalf("Writing file: %v", err)
	}

	l := NewImageLoader(fsys)
	defer l.Close()

	// The receiver drops results whose seq is stale; the loader itself
	// reports each submission under its own seq
	l.Submit(3, ImageSource{Path: "/pics/ok.png"})
	first := awaitResult(t, l)
	l.Submit(4, ImageSource{Path: "/pics/ok.png"})
	second := awaitResult(t, l)

	if first.Seq != 3 || second.Seq != 4 {
		t.Errorf("Expected seqs 3 then 4, got %d then %d", first.Seq, second.Seq)
	}
}

func TestLoaderCloseEndsResults(t *testing.T) {
	l := NewImageLoader(afero.NewMemMapFs())
	l.Close()

	select {
	case _, ok := <-l.Results():
		if ok {
			t.Error("Expected closed results channel")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for results channel to close")
	}
}
