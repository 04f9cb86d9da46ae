package status

import (
	"context"
	"fmt"
	"time"

	"github.com/arocarlisle/WAI2K/internal/capture"
	"github.com/arocarlisle/WAI2K/internal/game"
)

// Navigator brings the status screen into view before a pass. Screen
// navigation (and all UI input) is owned by the surrounding script runner;
// this core only requires the precondition.
type Navigator interface {
	EnsureStatusScreen(ctx context.Context) error
}

// NopNavigator satisfies Navigator without doing anything. Used when the
// screenshot is already known to show the status screen (file-based runs,
// tests).
type NopNavigator struct{}

// EnsureStatusScreen is a no-op.
func (NopNavigator) EnsureStatusScreen(ctx context.Context) error { return nil }

// Updater runs resynchronization passes against a shared game state.
type Updater struct {
	navigator  Navigator
	source     capture.Source
	matcher    Matcher
	recognizer Recognizer
	layout     *Layout
}

// NewUpdater wires an updater from its collaborators. A nil layout selects
// the default calibration.
func NewUpdater(navigator Navigator, source capture.Source, matcher Matcher, recognizer Recognizer, layout *Layout) *Updater {
	if layout == nil {
		layout = DefaultLayout()
	}
	return &Updater{
		navigator:  navigator,
		source:     source,
		matcher:    matcher,
		recognizer: recognizer,
		layout:     layout,
	}
}

// Run executes one update pass: navigate, capture a single screenshot, and
// run the logistics and repair pipelines concurrently over it. The two
// pipelines share only the screenshot and the state, and write disjoint
// state fields, so they need no mutual exclusion.
//
// The freshness flag is cleared only if both pipelines succeed; on any
// failure it stays set and the caller's next invocation retries the whole
// pass. There is no per-call timeout beyond ctx and no cap on concurrent
// recognition work — a hung OCR backend hangs the pass.
func (u *Updater) Run(ctx context.Context, state *game.State) error {
	if err := u.navigator.EnsureStatusScreen(ctx); err != nil {
		return fmt.Errorf("navigate to status screen: %w", err)
	}

	img, err := u.source.Capture(ctx)
	if err != nil {
		return fmt.Errorf("capture screenshot: %w", err)
	}
	defer img.Close()

	done := make(chan error, 2)

	go func() {
		records, err := u.readLogistics(ctx, img)
		if err != nil {
			done <- fmt.Errorf("logistics pipeline: %w", err)
			return
		}
		mergeLogistics(state, records, time.Now())
		done <- nil
	}()

	go func() {
		records, err := u.readRepairs(ctx, img)
		if err != nil {
			done <- fmt.Errorf("repair pipeline: %w", err)
			return
		}
		mergeRepairs(state, records, time.Now())
		done <- nil
	}()

	// Wait for both pipelines unconditionally; report the first failure.
	var firstErr error
	for i := 0; i < 2; i++ {
		if err := <-done; err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return firstErr
	}

	state.SetRequiresUpdate(false)
	return nil
}
