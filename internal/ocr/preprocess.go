package ocr

import (
	"image"

	"gocv.io/x/gocv"
)

// preprocess prepares a status-screen crop for OCR. The game renders light
// text on a dark panel at a size Tesseract handles poorly, so crops are
// upscaled, binarized, and inverted to dark-on-light when needed.
func preprocess(region gocv.Mat) gocv.Mat {
	h, w := region.Rows(), region.Cols()

	// Upscale small crops (timer digits are ~40px tall on a 1080p frame)
	var scaled gocv.Mat
	minDim := min(h, w)
	if minDim < 100 {
		scale := 100.0 / float64(minDim)
		scaled = gocv.NewMat()
		gocv.Resize(region, &scaled, image.Point{}, scale, scale, gocv.InterpolationCubic)
	} else {
		scaled = region.Clone()
	}

	gray := gocv.NewMat()
	gocv.CvtColor(scaled, &gray, gocv.ColorBGRToGray)
	scaled.Close()

	// Otsu's threshold for clean text/background separation
	binary := gocv.NewMat()
	gocv.Threshold(gray, &binary, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)
	gray.Close()

	// Tesseract expects dark text on a light background; the status panels
	// are the opposite
	whiteCount := gocv.CountNonZero(binary)
	totalPixels := binary.Rows() * binary.Cols()
	if float64(whiteCount)/float64(totalPixels) < 0.5 {
		gocv.BitwiseNot(binary, &binary)
	}

	result := gocv.NewMat()
	gocv.CvtColor(binary, &result, gocv.ColorGrayToBGR)
	binary.Close()

	return result
}
