// Package capture provides screenshot acquisition for the status reader.
//
// A Source produces one BGR Mat per call. The update pass captures exactly
// once and derives every crop from that single frame, so all extracted
// records reflect one visual instant.
package capture

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"runtime"
	"sync"

	_ "golang.org/x/image/tiff"

	"gocv.io/x/gocv"
)

// Source produces a single screenshot per call.
type Source interface {
	Capture(ctx context.Context) (gocv.Mat, error)
}

// FileSource reads a screenshot from an image file on disk. Used by the
// command-line tools and by offline recalibration; live capture is owned
// by the surrounding script runner.
type FileSource struct {
	Path string
}

// NewFileSource creates a Source backed by an image file.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Capture decodes the file into a BGR Mat.
func (s *FileSource) Capture(ctx context.Context) (gocv.Mat, error) {
	if err := ctx.Err(); err != nil {
		return gocv.Mat{}, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("open screenshot: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("decode screenshot: %w", err)
	}

	return MatFromImage(img)
}

// MatFromImage converts a Go image.Image to a BGR gocv.Mat (parallelized).
func MatFromImage(img image.Image) (gocv.Mat, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return gocv.Mat{}, fmt.Errorf("empty image %dx%d", width, height)
	}

	// OpenCV default layout is BGR
	mat := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3)

	// Parallelize by horizontal stripes
	numWorkers := runtime.NumCPU()
	rowsPerWorker := (height + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		startY := w * rowsPerWorker
		endY := startY + rowsPerWorker
		if endY > height {
			endY = height
		}
		if startY >= height {
			break
		}

		wg.Add(1)
		go func(yStart, yEnd int) {
			defer wg.Done()
			for y := yStart; y < yEnd; y++ {
				for x := 0; x < width; x++ {
					r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
					mat.SetUCharAt(y, x*3+0, uint8(b>>8))
					mat.SetUCharAt(y, x*3+1, uint8(g>>8))
					mat.SetUCharAt(y, x*3+2, uint8(r>>8))
				}
			}
		}(startY, endY)
	}
	wg.Wait()

	return mat, nil
}
