package main

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"

	_ "github.com/biessek/golang-ico"
	"github.com/spf13/afero"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageSource identifies one displayable image: a plain file when Archive
// is empty, otherwise a named entry inside that archive
type ImageSource struct {
	Path    string
	Archive string
}

type loadJob struct {
	seq int
	src ImageSource
}

// LoadedImage is the result of one decode job. Img is a decoded bitmap,
// not a GPU texture; the receiver uploads it on the frame thread.
type LoadedImage struct {
	Seq int
	Src ImageSource
	Img image.Image
	Err error
}

// ImageLoader decodes images on a worker goroutine so navigation stays
// responsive while large files parse. Results carry the submission
// sequence number, letting the consumer discard decodes that were
// superseded by faster navigation.
type ImageLoader struct {
	fs      afero.Fs
	jobs    chan loadJob
	results chan LoadedImage
}

// NewImageLoader creates a loader over fsys and starts its worker
func NewImageLoader(fsys afero.Fs) *ImageLoader {
	l := &ImageLoader{
		fs:      fsys,
		jobs:    make(chan loadJob, 8),
		results: make(chan LoadedImage, 8),
	}
	go l.run()
	return l
}

func (l *ImageLoader) run() {
	for job := range l.jobs {
		img, err := l.decode(job.src)
		l.results <- LoadedImage{Seq: job.seq, Src: job.src, Img: img, Err: err}
	}
	close(l.results)
}

// Submit queues a decode for src under the given sequence number
func (l *ImageLoader) Submit(seq int, src ImageSource) {
	// Drop queued jobs so a burst of navigation only decodes the newest
drain:
	for {
		select {
		case <-l.jobs:
		default:
			break drain
		}
	}

	select {
	case l.jobs <- loadJob{seq: seq, src: src}:
	default:
		debugLog("Load queue full, dropping request for %s", src.Path)
	}
}

// Results returns the channel of finished decodes
func (l *ImageLoader) Results() <-chan LoadedImage {
	return l.results
}

// Close stops the worker after the queued jobs finish. Submit must not be
// called afterwards.
func (l *ImageLoader) Close() {
	close(l.jobs)
}

func (l *ImageLoader) decode(src ImageSource) (image.Image, error) {
	data, err := l.readSource(src)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Path: src.Path, Err: err}
	}
	return img, nil
}

func (l *ImageLoader) readSource(src ImageSource) ([]byte, error) {
	if src.Archive != "" {
		return readArchiveEntry(l.fs, src.Archive, src.Path)
	}

	data, err := afero.ReadFile(l.fs, src.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: src.Path}
		}
		return nil, &IOError{Op: "read", Path: src.Path, Err: err}
	}
	return data, nil
}
