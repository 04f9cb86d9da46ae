package status

import (
	"sync"
	"testing"
	"time"

	"github.com/arocarlisle/WAI2K/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeLogisticsClearsUndetected(t *testing.T) {
	state := game.NewState()
	now := time.Now()

	// Stale assignments everywhere.
	for _, e := range state.Echelons() {
		e.Logistics = &game.Assignment{Support: game.SupportByIndex(0), ETA: now}
	}

	records := []logisticsRecord{
		{echelon: 2, support: game.SupportByMission(1, 1), duration: 15 * time.Minute},
	}
	mergeLogistics(state, records, now)

	for _, e := range state.Echelons() {
		if e.Number == 2 {
			require.NotNil(t, e.Logistics)
			assert.Equal(t, "1-1", e.Logistics.Support.String())
			assert.Equal(t, now.Add(15*time.Minute), e.Logistics.ETA)
		} else {
			assert.Nil(t, e.Logistics, "echelon %d", e.Number)
		}
	}
}

func TestMergeWithZeroRecordsIsIdempotent(t *testing.T) {
	state := game.NewState()
	now := time.Now()

	state.Echelon(3).Logistics = &game.Assignment{Support: game.SupportByIndex(4), ETA: now}
	state.Echelon(5).Members[1].RepairETA = now.Add(time.Hour)

	mergeLogistics(state, nil, now)
	mergeRepairs(state, nil, now)
	for _, e := range state.Echelons() {
		assert.Nil(t, e.Logistics)
		for _, m := range e.Members {
			assert.True(t, m.RepairETA.IsZero())
		}
	}

	// Running again changes nothing further.
	mergeLogistics(state, nil, now)
	mergeRepairs(state, nil, now)
	for _, e := range state.Echelons() {
		assert.Nil(t, e.Logistics)
		for _, m := range e.Members {
			assert.True(t, m.RepairETA.IsZero())
		}
	}
}

func TestMergeRepairsAppliesTimers(t *testing.T) {
	state := game.NewState()
	now := time.Now()

	records := []repairRecord{
		{echelon: 4, slot: 1, duration: 30 * time.Minute},
		{echelon: 4, slot: 2, duration: 0},
		{echelon: 4, slot: 3, duration: 2 * time.Hour},
	}
	mergeRepairs(state, records, now)

	e := state.Echelon(4)
	assert.Equal(t, now.Add(30*time.Minute), e.Members[0].RepairETA)
	// Zero duration resolves to "usable now", not to an absent timer.
	assert.Equal(t, now, e.Members[1].RepairETA)
	assert.False(t, e.Members[1].UnderRepair(now))
	assert.True(t, e.Members[2].UnderRepair(now))
}

func TestMergeSkipsOutOfRangeIndices(t *testing.T) {
	state := game.NewState()
	now := time.Now()

	mergeLogistics(state, []logisticsRecord{
		{echelon: 0, support: game.SupportByIndex(0)},
		{echelon: 11, support: game.SupportByIndex(0)},
		{echelon: 7, support: game.SupportByMission(2, 2), duration: time.Hour},
	}, now)
	mergeRepairs(state, []repairRecord{
		{echelon: 12, slot: 1, duration: time.Hour},
		{echelon: 7, slot: 0, duration: time.Hour},
		{echelon: 7, slot: 6, duration: time.Hour},
		{echelon: 7, slot: 2, duration: time.Hour},
	}, now)

	e := state.Echelon(7)
	require.NotNil(t, e.Logistics)
	assert.Equal(t, "2-2", e.Logistics.Support.String())
	assert.Equal(t, now.Add(time.Hour), e.Members[1].RepairETA)
	assert.True(t, e.Members[0].RepairETA.IsZero())
	for _, other := range state.Echelons() {
		if other.Number != 7 {
			assert.Nil(t, other.Logistics)
		}
	}
}

// The two merges write disjoint fields of the same echelons, so running
// them concurrently must produce the same final state as any sequential
// order.
func TestMergeOrderIndependence(t *testing.T) {
	now := time.Now()
	logistics := []logisticsRecord{
		{echelon: 1, support: game.SupportByMission(1, 2), duration: 10 * time.Minute},
		{echelon: 4, support: game.SupportByMission(3, 1), duration: 2 * time.Hour},
	}
	repairs := []repairRecord{
		{echelon: 1, slot: 1, duration: 45 * time.Minute},
		{echelon: 4, slot: 5, duration: 0},
	}

	sequential := game.NewState()
	mergeLogistics(sequential, logistics, now)
	mergeRepairs(sequential, repairs, now)

	reversed := game.NewState()
	mergeRepairs(reversed, repairs, now)
	mergeLogistics(reversed, logistics, now)

	concurrent := game.NewState()
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		mergeLogistics(concurrent, logistics, now)
	}()
	go func() {
		defer wg.Done()
		mergeRepairs(concurrent, repairs, now)
	}()
	wg.Wait()

	for _, other := range []*game.State{reversed, concurrent} {
		for i, want := range sequential.Echelons() {
			got := other.Echelons()[i]
			assert.Equal(t, want.Logistics, got.Logistics, "echelon %d", i+1)
			assert.Equal(t, want.Members, got.Members, "echelon %d", i+1)
		}
	}
}
