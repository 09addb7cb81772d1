package main

import (
	"bytes"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/spf13/afero"
)

// ImageInfo holds the metadata shown in the info panel. The EXIF fields
// stay empty for formats that carry none.
type ImageInfo struct {
	Path        string
	Width       int
	Height      int
	FileSize    int64
	ModTime     time.Time
	Format      string
	CameraModel string
	TakenAt     string
	FNumber     string
	Exposure    string
}

// probeImageInfo reads dimensions and metadata for src without decoding
// the full bitmap
func probeImageInfo(fsys afero.Fs, src ImageSource) (*ImageInfo, error) {
	if src.Archive != "" {
		data, err := readArchiveEntry(fsys, src.Archive, src.Path)
		if err != nil {
			return nil, err
		}
		return probeImageInfoBytes(src.Path, data, int64(len(data)), time.Time{})
	}

	stat, err := fsys.Stat(src.Path)
	if err != nil {
		return nil, &IOError{Op: "stat", Path: src.Path, Err: err}
	}
	data, err := afero.ReadFile(fsys, src.Path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: src.Path, Err: err}
	}
	return probeImageInfoBytes(src.Path, data, stat.Size(), stat.ModTime())
}

func probeImageInfoBytes(path string, data []byte, size int64, modTime time.Time) (*ImageInfo, error) {
	config, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	info := &ImageInfo{
		Path:     path,
		Width:    config.Width,
		Height:   config.Height,
		FileSize: size,
		ModTime:  modTime,
		Format:   strings.ToUpper(format),
	}

	// EXIF is optional; most files carry none
	if x, err := exif.Decode(bytes.NewReader(data)); err == nil {
		info.CameraModel = exifString(x, exif.Model)
		info.TakenAt = exifString(x, exif.DateTimeOriginal)
		if info.TakenAt == "" {
			info.TakenAt = exifString(x, exif.DateTime)
		}
		if tag, err := x.Get(exif.FNumber); err == nil {
			if numer, denom, err := tag.Rat2(0); err == nil && denom != 0 {
				info.FNumber = fmt.Sprintf("f/%.1f", float64(numer)/float64(denom))
			}
		}
		if tag, err := x.Get(exif.ExposureTime); err == nil {
			if numer, denom, err := tag.Rat2(0); err == nil && denom != 0 {
				info.Exposure = fmt.Sprintf("%d/%d s", numer, denom)
			}
		}
	}

	return info, nil
}

// exifString reads one string field, returning "" when absent
func exifString(x *exif.Exif, field exif.FieldName) string {
	tag, err := x.Get(field)
	if err != nil {
		return ""
	}
	value, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(value)
}

// formatBytes renders a byte count in human-readable form
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
