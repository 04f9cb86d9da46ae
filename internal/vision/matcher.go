package vision

import (
	"fmt"
	"sort"

	"github.com/arocarlisle/WAI2K/pkg/geometry"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/stat"
)

// DefaultThreshold is the minimum normalized correlation score for a
// template hit to count as a marker detection.
const DefaultThreshold = 0.85

// Match is one detected marker occurrence.
type Match struct {
	Bounds geometry.RectInt
	Score  float64
}

// TemplateMatcher finds marker templates inside screenshot regions using
// normalized cross-correlation.
type TemplateMatcher struct {
	lib       *Library
	Threshold float64
}

// NewMatcher creates a matcher over the given template library.
func NewMatcher(lib *Library) *TemplateMatcher {
	return &TemplateMatcher{lib: lib, Threshold: DefaultThreshold}
}

// FindAll scans a sub-rectangle of img for the named marker and returns
// every occurrence scoring at or above the threshold. An empty result is a
// valid outcome, not an error: it means no entries of that kind are visible.
func (m *TemplateMatcher) FindAll(img gocv.Mat, region geometry.RectInt, name string) ([]Match, error) {
	if img.Empty() {
		return nil, fmt.Errorf("find %q: empty image", name)
	}

	tmpl, err := m.lib.Template(name)
	if err != nil {
		return nil, err
	}
	tw, th := tmpl.Cols(), tmpl.Rows()

	search := region.Clamp(img.Cols(), img.Rows())
	if search.Width < tw || search.Height < th {
		return nil, nil
	}

	roi := img.Region(search.ToImageRect())
	defer roi.Close()

	result := gocv.NewMat()
	defer result.Close()
	mask := gocv.NewMat()
	defer mask.Close()
	gocv.MatchTemplate(roi, tmpl, &result, gocv.TmCcoeffNormed, mask)

	var raw []hit
	for y := 0; y < result.Rows(); y++ {
		for x := 0; x < result.Cols(); x++ {
			score := float64(result.GetFloatAt(y, x))
			if score >= m.Threshold {
				raw = append(raw, hit{x: x, y: y, score: score})
			}
		}
	}

	matches := clusterHits(raw, tw, th)
	for i := range matches {
		matches[i].Bounds = matches[i].Bounds.Shift(search.TopLeft())
	}
	return matches, nil
}

// hit is one above-threshold correlation peak before deduplication.
type hit struct {
	x, y  int
	score float64
}

// clusterHits collapses clouds of adjacent correlation peaks into one match
// per marker. A strong peak absorbs every hit within half a template extent;
// the cluster centroid becomes the match position and the mean cluster score
// its confidence.
func clusterHits(hits []hit, tmplWidth, tmplHeight int) []Match {
	if len(hits) == 0 {
		return nil
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	used := make([]bool, len(hits))
	var matches []Match
	for i := range hits {
		if used[i] {
			continue
		}

		var xs, ys, scores []float64
		for j := i; j < len(hits); j++ {
			if used[j] {
				continue
			}
			dx := hits[j].x - hits[i].x
			dy := hits[j].y - hits[i].y
			if dx < 0 {
				dx = -dx
			}
			if dy < 0 {
				dy = -dy
			}
			if dx <= tmplWidth/2 && dy <= tmplHeight/2 {
				used[j] = true
				xs = append(xs, float64(hits[j].x))
				ys = append(ys, float64(hits[j].y))
				scores = append(scores, hits[j].score)
			}
		}

		matches = append(matches, Match{
			Bounds: geometry.RectInt{
				X:      int(stat.Mean(xs, nil) + 0.5),
				Y:      int(stat.Mean(ys, nil) + 0.5),
				Width:  tmplWidth,
				Height: tmplHeight,
			},
			Score: stat.Mean(scores, nil),
		})
	}
	return matches
}
