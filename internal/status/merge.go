package status

import (
	"log"
	"time"

	"github.com/arocarlisle/WAI2K/internal/game"
)

// Merging follows a clear-then-apply discipline: every field of the merged
// kind is wiped across the whole roster before the pass's records are
// written back. An entry with no detection this pass is therefore finished
// or idle, never "unknown". There is no transactional guarantee — a
// pipeline that fails before its merge leaves the previous values in place
// for that pass.
//
// The two merge functions write statically disjoint fields of the shared
// state (Echelon.Logistics vs Member.RepairETA), which is what makes it
// safe for the orchestrator to run them concurrently without locks.

// mergeLogistics replaces every logistics assignment with the pass's
// records. ETAs are anchored to the merge time. Echelon numbers that fall
// outside the roster are OCR misreads and are skipped.
func mergeLogistics(state *game.State, records []logisticsRecord, now time.Time) {
	for _, e := range state.Echelons() {
		e.Logistics = nil
	}

	for _, r := range records {
		e := state.Echelon(r.echelon)
		if e == nil {
			log.Printf("status: logistics echelon %d outside roster, skipping", r.echelon)
			continue
		}
		e.Logistics = &game.Assignment{
			Support: r.support,
			ETA:     now.Add(r.duration),
		}
	}
}

// mergeRepairs replaces every repair timer with the pass's records.
// Zero-duration records resolve to an ETA of now, i.e. the member is
// usable immediately.
func mergeRepairs(state *game.State, records []repairRecord, now time.Time) {
	for _, e := range state.Echelons() {
		for i := range e.Members {
			e.Members[i].RepairETA = time.Time{}
		}
	}

	for _, r := range records {
		e := state.Echelon(r.echelon)
		if e == nil {
			log.Printf("status: repair echelon %d outside roster, skipping", r.echelon)
			continue
		}
		if r.slot < 1 || r.slot > len(e.Members) {
			log.Printf("status: repair slot %d outside echelon %d, skipping", r.slot, r.echelon)
			continue
		}
		e.Members[r.slot-1].RepairETA = now.Add(r.duration)
	}
}
