package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewStateShape(t *testing.T) {
	s := NewState()
	assert.Len(t, s.Echelons(), NumEchelons)
	for i, e := range s.Echelons() {
		assert.Equal(t, i+1, e.Number)
		assert.Nil(t, e.Logistics)
		for j, m := range e.Members {
			assert.Equal(t, j+1, m.Number)
			assert.True(t, m.RepairETA.IsZero())
		}
	}
	assert.True(t, s.RequiresUpdate())
}

func TestEchelonOneBasedAccess(t *testing.T) {
	s := NewState()
	assert.Nil(t, s.Echelon(0))
	assert.Nil(t, s.Echelon(NumEchelons+1))
	assert.Nil(t, s.Echelon(-3))

	first := s.Echelon(1)
	if assert.NotNil(t, first) {
		assert.Equal(t, 1, first.Number)
	}
	last := s.Echelon(NumEchelons)
	if assert.NotNil(t, last) {
		assert.Equal(t, NumEchelons, last.Number)
	}
}

func TestFreshnessFlag(t *testing.T) {
	s := NewState()
	s.SetRequiresUpdate(false)
	assert.False(t, s.RequiresUpdate())
	s.SetRequiresUpdate(true)
	assert.True(t, s.RequiresUpdate())
}

func TestMemberUnderRepair(t *testing.T) {
	now := time.Now()
	m := Member{Number: 1}
	assert.False(t, m.UnderRepair(now))

	m.RepairETA = now.Add(time.Minute)
	assert.True(t, m.UnderRepair(now))

	m.RepairETA = now.Add(-time.Minute)
	assert.False(t, m.UnderRepair(now))
}
