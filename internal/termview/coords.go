package termview

import (
	"math"

	"github.com/gogpu/gg"
)

// Terminal rows grow downwards while the scroll view is y-up. A cell
// (col, row) on a screen h rows tall covers x in [col, col+1) and
// y in [h-row-1, h-row).

// cellCenter maps a terminal cell to the view-space point at its center.
func cellCenter(col, row, h int) gg.Point {
	return gg.Pt(float64(col)+0.5, float64(h-row)-0.5)
}

// cellSpan returns the cells whose centers lie inside the view-space
// rectangle [x, x+w) x [y, y+h) on a screen rows tall. The ranges are
// half-open and may be empty or reach outside the screen.
func cellSpan(x, y, w, h float64, rows int) (col0, col1, row0, row1 int) {
	col0 = int(math.Ceil(x - 0.5))
	col1 = int(math.Ceil(x + w - 0.5))
	row0 = int(math.Floor(float64(rows)-0.5-(y+h))) + 1
	row1 = int(math.Floor(float64(rows)-0.5-y)) + 1
	return col0, col1, row0, row1
}
