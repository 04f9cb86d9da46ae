// Package ocr provides OCR (Optical Character Recognition) for status-screen text.
package ocr

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/arocarlisle/WAI2K/pkg/geometry"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"
)

// Character sets for the fields this system reads. Restricting the
// whitelist keeps Tesseract from hallucinating letters into timers.
const (
	DigitChars  = "0123456789"
	TimerChars  = "0123456789:"
	StatusChars = "0123456789:- Inlogistc"
)

// Config controls a single recognition call.
type Config struct {
	Whitelist  string
	SingleLine bool
}

// Predefined configs for the status-screen fields.
var (
	Digits = Config{Whitelist: DigitChars, SingleLine: true}
	Timer  = Config{Whitelist: TimerChars, SingleLine: true}
	Status = Config{Whitelist: StatusChars, SingleLine: true}
)

// Engine provides OCR using Tesseract. It is safe for concurrent use: each
// in-flight call checks out a dedicated Tesseract client from an internal
// pool that grows on demand, so the caller may fan out an arbitrary number
// of Recognize calls at once.
type Engine struct {
	mu     sync.Mutex
	idle   []*gosseract.Client
	closed bool
}

// NewEngine creates a new OCR engine and verifies Tesseract is usable.
func NewEngine() (*Engine, error) {
	client, err := newClient()
	if err != nil {
		return nil, err
	}
	return &Engine{idle: []*gosseract.Client{client}}, nil
}

func newClient() (*gosseract.Client, error) {
	client := gosseract.NewClient()

	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}

	// Disable dictionary-based word correction - timers and mission codes
	// aren't English words
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")
	_ = client.SetVariable("language_model_penalty_non_dict_word", "0")
	_ = client.SetVariable("language_model_penalty_non_freq_dict_word", "0")

	return client, nil
}

func (e *Engine) get() (*gosseract.Client, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, fmt.Errorf("ocr engine closed")
	}
	if n := len(e.idle); n > 0 {
		client := e.idle[n-1]
		e.idle = e.idle[:n-1]
		return client, nil
	}
	return newClient()
}

func (e *Engine) put(client *gosseract.Client) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		client.Close()
		return
	}
	e.idle = append(e.idle, client)
}

// Close releases all pooled Tesseract clients. Clients still checked out
// are closed when returned.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	for _, client := range e.idle {
		client.Close()
	}
	e.idle = nil
	return nil
}

// Recognize performs OCR on a region of an image and returns the trimmed,
// whitespace-normalized text. Out-of-bounds regions are clipped to the
// image; a region fully outside yields an error.
func (e *Engine) Recognize(ctx context.Context, img gocv.Mat, region geometry.RectInt, cfg Config) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if img.Empty() {
		return "", fmt.Errorf("empty image")
	}

	bounds := region.Clamp(img.Cols(), img.Rows())
	if bounds.Empty() {
		return "", fmt.Errorf("region %+v outside %dx%d image", region, img.Cols(), img.Rows())
	}

	crop := img.Region(bounds.ToImageRect())
	defer crop.Close()

	processed := preprocess(crop)
	defer processed.Close()

	buf, err := gocv.IMEncode(gocv.PNGFileExt, processed)
	if err != nil {
		return "", fmt.Errorf("failed to encode region: %w", err)
	}
	defer buf.Close()

	client, err := e.get()
	if err != nil {
		return "", err
	}
	defer e.put(client)

	psm := gosseract.PSM_SINGLE_BLOCK
	if cfg.SingleLine {
		psm = gosseract.PSM_SINGLE_LINE
	}
	if err := client.SetPageSegMode(psm); err != nil {
		return "", fmt.Errorf("failed to set PSM: %w", err)
	}
	if err := client.SetWhitelist(cfg.Whitelist); err != nil {
		return "", fmt.Errorf("failed to set whitelist: %w", err)
	}
	if err := client.SetImageFromBytes(buf.GetBytes()); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	text = strings.TrimSpace(text)
	text = strings.Join(strings.Fields(text), " ")
	return text, nil
}
