package game

import (
	"fmt"
	"time"
)

// LogisticsSupport is one entry in the immutable mission catalog. Entries
// are addressed by a computed index: chapter*4 + number - 1, matching the
// in-game numbering where each chapter offers four missions.
type LogisticsSupport struct {
	Chapter  int
	Number   int
	Duration time.Duration
}

// Index returns the catalog position of this mission.
func (ls *LogisticsSupport) Index() int {
	return ls.Chapter*4 + ls.Number - 1
}

// String returns the in-game mission label, e.g. "2-4".
func (ls *LogisticsSupport) String() string {
	return fmt.Sprintf("%d-%d", ls.Chapter, ls.Number)
}

// SupportByIndex returns the catalog entry at the computed index, or nil if
// the index is outside the catalog.
func SupportByIndex(index int) *LogisticsSupport {
	if index < 0 || index >= len(supports) {
		return nil
	}
	return supports[index]
}

// SupportByMission returns the catalog entry for a chapter/number pair, or
// nil if no such mission exists.
func SupportByMission(chapter, number int) *LogisticsSupport {
	if number < 1 || number > 4 {
		return nil
	}
	return SupportByIndex(chapter*4 + number - 1)
}

// Supports returns the whole ordered catalog.
func Supports() []*LogisticsSupport {
	return supports
}

var supports = buildSupports()

func buildSupports() []*LogisticsSupport {
	// Mission durations per chapter, four missions each, catalog order.
	durations := [][4]time.Duration{
		{50 * time.Minute, 3 * time.Hour, 12 * time.Hour, 24 * time.Hour},                          // 0
		{15 * time.Minute, 30 * time.Minute, 1 * time.Hour, 2 * time.Hour},                         // 1
		{40 * time.Minute, 90 * time.Minute, 4 * time.Hour, 6 * time.Hour},                         // 2
		{20 * time.Minute, 45 * time.Minute, 90 * time.Minute, 5 * time.Hour},                      // 3
		{1 * time.Hour, 2 * time.Hour, 6 * time.Hour, 8 * time.Hour},                               // 4
		{35 * time.Minute, 150 * time.Minute, 5 * time.Hour, 9 * time.Hour},                        // 5
		{70 * time.Minute, 3 * time.Hour, 7 * time.Hour, 12 * time.Hour},                           // 6
		{90 * time.Minute, 4 * time.Hour, 8 * time.Hour, 14 * time.Hour},                           // 7
		{2 * time.Hour, 5 * time.Hour, 10 * time.Hour, 16 * time.Hour},                             // 8
		{150 * time.Minute, 6 * time.Hour, 12 * time.Hour, 18 * time.Hour},                         // 9
		{3 * time.Hour, 7 * time.Hour, 14 * time.Hour, 24 * time.Hour},                             // 10
	}

	var catalog []*LogisticsSupport
	for chapter, chapterDurations := range durations {
		for i, d := range chapterDurations {
			catalog = append(catalog, &LogisticsSupport{
				Chapter:  chapter,
				Number:   i + 1,
				Duration: d,
			})
		}
	}
	return catalog
}
