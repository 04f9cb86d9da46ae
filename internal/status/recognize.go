package status

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/arocarlisle/WAI2K/internal/game"
	"github.com/arocarlisle/WAI2K/internal/ocr"
	"github.com/arocarlisle/WAI2K/internal/vision"
	"github.com/arocarlisle/WAI2K/pkg/geometry"

	"gocv.io/x/gocv"
	"golang.org/x/sync/errgroup"
)

// Marker identifiers resolved by the template library. Repairing and
// standby are two visual states of the same repair row.
const (
	MarkerLogistics = "logistics"
	MarkerRepairing = "repairing"
	MarkerStandby   = "standby"
)

// Matcher locates named markers inside a screenshot region.
type Matcher interface {
	FindAll(img gocv.Mat, region geometry.RectInt, name string) ([]vision.Match, error)
}

// Recognizer extracts text from a screenshot region. Implementations must
// be safe for concurrent calls; the pipelines below fan out one call per
// field without waiting on earlier ones.
type Recognizer interface {
	Recognize(ctx context.Context, img gocv.Mat, region geometry.RectInt, cfg ocr.Config) (string, error)
}

// readLogistics runs the logistics half of an update pass: locate markers,
// recognize both fields of every row concurrently, and parse the joined
// text. All recognition goroutines across all rows are spawned before any
// is awaited, so OCR work overlaps across rows as well as across fields.
func (u *Updater) readLogistics(ctx context.Context, img gocv.Mat) ([]logisticsRecord, error) {
	matches, err := u.matcher.FindAll(img, u.layout.SearchRegion, MarkerLogistics)
	if err != nil {
		return nil, fmt.Errorf("find logistics markers: %w", err)
	}

	type rowText struct {
		echelon string
		content string
	}
	rows := make([]rowText, len(matches))

	g, gctx := errgroup.WithContext(ctx)
	for i, m := range matches {
		echelonRect, contentRect := u.layout.Logistics.fields(m.Bounds)
		g.Go(func() error {
			text, err := u.recognizer.Recognize(gctx, img, echelonRect, ocr.Digits)
			if err != nil {
				return fmt.Errorf("logistics echelon field: %w", err)
			}
			rows[i].echelon = text
			return nil
		})
		g.Go(func() error {
			text, err := u.recognizer.Recognize(gctx, img, contentRect, ocr.Status)
			if err != nil {
				return fmt.Errorf("logistics content field: %w", err)
			}
			rows[i].content = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var records []logisticsRecord
	for _, row := range rows {
		joined := strings.TrimSpace(row.echelon + " " + row.content)
		if rec, ok := parseLogistics(joined); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

// readRepairs runs the repair half of an update pass. Rows are anchored by
// either the "repairing" or "standby" marker; both denote a repair entry
// and their detections are concatenated.
func (u *Updater) readRepairs(ctx context.Context, img gocv.Mat) ([]repairRecord, error) {
	var matches []vision.Match
	for _, marker := range []string{MarkerRepairing, MarkerStandby} {
		found, err := u.matcher.FindAll(img, u.layout.SearchRegion, marker)
		if err != nil {
			return nil, fmt.Errorf("find %s markers: %w", marker, err)
		}
		matches = append(matches, found...)
	}

	type rowText struct {
		echelon string
		members [game.MembersPerEchelon]string
	}
	rows := make([]rowText, len(matches))

	g, gctx := errgroup.WithContext(ctx)
	for i, m := range matches {
		echelonRect, memberRects := u.layout.Repair.fields(m.Bounds)
		g.Go(func() error {
			text, err := u.recognizer.Recognize(gctx, img, echelonRect, ocr.Digits)
			if err != nil {
				return fmt.Errorf("repair echelon field: %w", err)
			}
			rows[i].echelon = text
			return nil
		})
		for slot, rect := range memberRects {
			g.Go(func() error {
				text, err := u.recognizer.Recognize(gctx, img, rect, ocr.Timer)
				if err != nil {
					return fmt.Errorf("repair timer field %d: %w", slot+1, err)
				}
				rows[i].members[slot] = text
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var records []repairRecord
	for _, row := range rows {
		echelon, err := strconv.Atoi(strings.TrimSpace(row.echelon))
		if err != nil {
			log.Printf("status: unreadable repair echelon %q, skipping row", row.echelon)
			continue
		}
		// Slots with no visible timer still produce a record, with a zero
		// duration. Idle members are a positive observation, not noise.
		for slot, text := range row.members {
			records = append(records, repairRecord{
				echelon:  echelon,
				slot:     slot + 1,
				duration: parseTimer(text),
			})
		}
	}
	return records, nil
}
