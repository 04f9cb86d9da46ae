// Package status resynchronizes the roster state from the game's status
// screen. One pass captures a single screenshot, locates entry markers,
// reads each entry's text fields concurrently, parses them into timed
// records, and merges the records into the shared game state.
package status

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/arocarlisle/WAI2K/internal/game"
	"github.com/arocarlisle/WAI2K/pkg/geometry"
)

// Layout describes where everything sits on the status screen, in pixels.
// All offsets are calibrated for one fixed UI layout and resolution
// (1920x1080); a game UI update invalidates them. Keeping the numbers in a
// loadable descriptor makes recalibration a config change, not a code change.
type Layout struct {
	Version int `json:"version"`

	// SearchRegion is the screen area scanned for entry markers.
	SearchRegion geometry.RectInt `json:"search_region"`

	Logistics LogisticsLayout `json:"logistics"`
	Repair    RepairLayout    `json:"repair"`
}

// LogisticsLayout places a logistics entry row relative to its marker and
// names the recognition fields inside the row.
type LogisticsLayout struct {
	// RowOffset is added to the marker's top-left corner to find the row.
	RowOffset geometry.PointInt `json:"row_offset"`
	RowSize   geometry.SizeInt  `json:"row_size"`

	// Field rects are relative to the row's top-left corner.
	Echelon geometry.RectInt `json:"echelon"`
	Content geometry.RectInt `json:"content"`
}

// RepairLayout places a repair entry row and its per-member timer fields.
type RepairLayout struct {
	RowOffset geometry.PointInt `json:"row_offset"`
	RowSize   geometry.SizeInt  `json:"row_size"`

	Echelon geometry.RectInt   `json:"echelon"`
	Members []geometry.RectInt `json:"members"`
}

// DefaultLayout returns the calibrated descriptor for the current game UI.
func DefaultLayout() *Layout {
	members := make([]geometry.RectInt, game.MembersPerEchelon)
	for i := range members {
		members[i] = geometry.NewRectInt(128+i*192, 76, 176, 56)
	}

	return &Layout{
		Version:      1,
		SearchRegion: geometry.NewRectInt(290, 140, 250, 940),
		Logistics: LogisticsLayout{
			RowOffset: geometry.PointInt{X: -143, Y: -22},
			RowSize:   geometry.SizeInt{Width: 976, Height: 144},
			Echelon:   geometry.NewRectInt(0, 0, 120, 144),
			Content:   geometry.NewRectInt(120, 0, 856, 144),
		},
		Repair: RepairLayout{
			RowOffset: geometry.PointInt{X: -111, Y: -12},
			RowSize:   geometry.SizeInt{Width: 1088, Height: 144},
			Echelon:   geometry.NewRectInt(0, 0, 120, 144),
			Members:   members,
		},
	}
}

// LoadLayout reads a layout descriptor from a JSON file.
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load layout: %w", err)
	}

	var layout Layout
	if err := json.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("layout %s: %w", path, err)
	}
	return &layout, nil
}

// Save writes the layout descriptor to a JSON file.
func (l *Layout) Save(path string) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the descriptor is internally consistent.
func (l *Layout) Validate() error {
	if l.SearchRegion.Empty() {
		return fmt.Errorf("empty search region")
	}
	if l.Logistics.RowSize.Width <= 0 || l.Logistics.RowSize.Height <= 0 {
		return fmt.Errorf("invalid logistics row size")
	}
	if l.Repair.RowSize.Width <= 0 || l.Repair.RowSize.Height <= 0 {
		return fmt.Errorf("invalid repair row size")
	}
	if l.Logistics.Echelon.Empty() || l.Logistics.Content.Empty() {
		return fmt.Errorf("logistics field rects must be non-empty")
	}
	if l.Repair.Echelon.Empty() {
		return fmt.Errorf("repair echelon rect must be non-empty")
	}
	if len(l.Repair.Members) != game.MembersPerEchelon {
		return fmt.Errorf("repair layout has %d member fields, want %d",
			len(l.Repair.Members), game.MembersPerEchelon)
	}
	for i, m := range l.Repair.Members {
		if m.Empty() {
			return fmt.Errorf("repair member field %d is empty", i+1)
		}
	}
	return nil
}
