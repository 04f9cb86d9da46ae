package status

import "github.com/arocarlisle/WAI2K/pkg/geometry"

// Entry extraction is pure rectangle arithmetic: a detected marker box plus
// a layout descriptor yields the absolute crop for one record row, and
// named field rects inside that row. Bounds clipping happens at the OCR
// boundary, which knows the screenshot dimensions.

// rowRect maps a marker bounding box to the full record row it anchors.
func rowRect(marker geometry.RectInt, offset geometry.PointInt, size geometry.SizeInt) geometry.RectInt {
	return geometry.RectInt{
		X:      marker.X + offset.X,
		Y:      marker.Y + offset.Y,
		Width:  size.Width,
		Height: size.Height,
	}
}

// fields returns the absolute echelon and content field rects for one
// logistics row.
func (l *LogisticsLayout) fields(marker geometry.RectInt) (echelon, content geometry.RectInt) {
	row := rowRect(marker, l.RowOffset, l.RowSize)
	return l.Echelon.Within(row), l.Content.Within(row)
}

// fields returns the absolute echelon field and the per-member timer field
// rects for one repair row.
func (l *RepairLayout) fields(marker geometry.RectInt) (echelon geometry.RectInt, members []geometry.RectInt) {
	row := rowRect(marker, l.RowOffset, l.RowSize)
	members = make([]geometry.RectInt, len(l.Members))
	for i, m := range l.Members {
		members[i] = m.Within(row)
	}
	return l.Echelon.Within(row), members
}
