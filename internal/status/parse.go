package status

import (
	"log"
	"regexp"
	"strconv"
	"time"

	"github.com/arocarlisle/WAI2K/internal/game"
)

// logisticsRecord is the parsed form of one logistics entry, valid only
// within the update pass that produced it.
type logisticsRecord struct {
	echelon  int
	support  *game.LogisticsSupport
	duration time.Duration
}

// repairRecord is the parsed repair timer for one member slot.
type repairRecord struct {
	echelon  int
	slot     int
	duration time.Duration
}

var (
	// "<echelon> In logistics <chapter> - <number> <HH>:<MM>:<SS>",
	// tolerant of the spacing jitter OCR introduces.
	logisticsPattern = regexp.MustCompile(
		`^(\d+)\s*In logistics\s*(\d+)\s*-\s*(\d+)\s*(\d{2}):(\d{2}):(\d{2})$`)

	timerPattern = regexp.MustCompile(`(\d{2}):(\d{2}):(\d{2})`)
)

// parseLogistics validates recognized text against the logistics grammar.
// Non-matching text is recognition noise, not an error: the entry is
// dropped and no record is produced. This deliberately differs from the
// repair-timer policy below.
func parseLogistics(text string) (logisticsRecord, bool) {
	m := logisticsPattern.FindStringSubmatch(text)
	if m == nil {
		return logisticsRecord{}, false
	}

	echelon := atoi(m[1])
	chapter := atoi(m[2])
	number := atoi(m[3])

	support := game.SupportByMission(chapter, number)
	if support == nil {
		log.Printf("status: no logistics mission %d-%d, dropping entry %q", chapter, number, text)
		return logisticsRecord{}, false
	}

	return logisticsRecord{
		echelon:  echelon,
		support:  support,
		duration: hms(m[4], m[5], m[6]),
	}, true
}

// parseTimer extracts an HH:MM:SS countdown from recognized text. Text with
// no timer (an idle slot, or OCR noise) falls back to a zero duration
// rather than being dropped, so every slot of a detected repair entry
// yields a record.
func parseTimer(text string) time.Duration {
	m := timerPattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	return hms(m[1], m[2], m[3])
}

func hms(h, m, s string) time.Duration {
	return time.Duration(atoi(h))*time.Hour +
		time.Duration(atoi(m))*time.Minute +
		time.Duration(atoi(s))*time.Second
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
