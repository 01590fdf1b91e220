package debug

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// twoRows is a 1x2 GL read-back: bottom row red, top row blue.
var twoRows = []byte{
	255, 0, 0, 255,
	0, 0, 255, 255,
}

func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)
}

func TestCaptureFromPixelsFlipsRows(t *testing.T) {
	formats := map[string]func(*os.File) (image.Image, error){
		FormatPNG:  func(f *os.File) (image.Image, error) { return png.Decode(f) },
		FormatBMP:  func(f *os.File) (image.Image, error) { return bmp.Decode(f) },
		FormatTIFF: func(f *os.File) (image.Image, error) { return tiff.Decode(f) },
	}

	for format, decode := range formats {
		t.Run(format, func(t *testing.T) {
			sc := NewScreenshotCapture(t.TempDir(), "shot", format)
			sc.now = fixedClock

			path, err := sc.CaptureFromPixels(twoRows, 1, 2)
			require.NoError(t, err)
			assert.Equal(t, "shot_2024-03-01_12-30-45.000."+format, filepath.Base(path))

			f, err := os.Open(path)
			require.NoError(t, err)
			defer f.Close()

			img, err := decode(f)
			require.NoError(t, err)

			r, _, b, _ := img.At(0, 0).RGBA()
			assert.Equal(t, uint32(0), r, "top row should come from the last GL row")
			assert.Equal(t, uint32(0xffff), b)

			r, _, b, _ = img.At(0, 1).RGBA()
			assert.Equal(t, uint32(0xffff), r)
			assert.Equal(t, uint32(0), b)
		})
	}
}

func TestCaptureFromPixelsSizeMismatch(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "shot", "")

	_, err := sc.CaptureFromPixels(twoRows, 2, 2)
	assert.ErrorContains(t, err, "size mismatch")
}

func TestCaptureUnknownFormat(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	sc := NewScreenshotCapture(dir, "shot", "gif")

	_, err := sc.CaptureFromPixels(twoRows, 1, 2)
	assert.ErrorContains(t, err, `"gif"`)

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr), "no directory should be created for a rejected format")
}

func TestCaptureCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	sc := NewScreenshotCapture(dir, "frame", FormatPNG)

	path, err := sc.CaptureFromPixels(twoRows, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.FileExists(t, path)
}
