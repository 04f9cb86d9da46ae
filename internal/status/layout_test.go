package status

import (
	"path/filepath"
	"testing"

	"github.com/arocarlisle/WAI2K/internal/game"
	"github.com/arocarlisle/WAI2K/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLayoutValid(t *testing.T) {
	lay := DefaultLayout()
	assert.NoError(t, lay.Validate())
	assert.Len(t, lay.Repair.Members, game.MembersPerEchelon)

	// The calibrated row placements.
	assert.Equal(t, geometry.PointInt{X: -143, Y: -22}, lay.Logistics.RowOffset)
	assert.Equal(t, geometry.SizeInt{Width: 976, Height: 144}, lay.Logistics.RowSize)
	assert.Equal(t, geometry.PointInt{X: -111, Y: -12}, lay.Repair.RowOffset)
	assert.Equal(t, geometry.SizeInt{Width: 1088, Height: 144}, lay.Repair.RowSize)
}

func TestLayoutRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")

	lay := DefaultLayout()
	lay.SearchRegion = geometry.NewRectInt(10, 20, 300, 800)
	require.NoError(t, lay.Save(path))

	loaded, err := LoadLayout(path)
	require.NoError(t, err)
	assert.Equal(t, lay, loaded)
}

func TestLoadLayoutMissingFile(t *testing.T) {
	_, err := LoadLayout(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLayoutValidateRejectsBadDescriptors(t *testing.T) {
	lay := DefaultLayout()
	lay.Repair.Members = lay.Repair.Members[:2]
	assert.Error(t, lay.Validate())

	lay = DefaultLayout()
	lay.SearchRegion = geometry.RectInt{}
	assert.Error(t, lay.Validate())

	lay = DefaultLayout()
	lay.Logistics.RowSize.Width = 0
	assert.Error(t, lay.Validate())

	lay = DefaultLayout()
	lay.Repair.Members[3] = geometry.RectInt{}
	assert.Error(t, lay.Validate())
}

func TestRowAndFieldPlacement(t *testing.T) {
	lay := DefaultLayout()
	marker := geometry.NewRectInt(300, 200, 32, 32)

	echelon, content := lay.Logistics.fields(marker)
	assert.Equal(t, geometry.NewRectInt(157, 178, 120, 144), echelon)
	assert.Equal(t, geometry.NewRectInt(277, 178, 856, 144), content)

	rEchelon, members := lay.Repair.fields(marker)
	assert.Equal(t, geometry.NewRectInt(189, 188, 120, 144), rEchelon)
	require.Len(t, members, game.MembersPerEchelon)
	// Member fields advance left to right inside the row.
	for i := 1; i < len(members); i++ {
		assert.Greater(t, members[i].X, members[i-1].X)
		assert.Equal(t, members[0].Y, members[i].Y)
	}
}
