package schedule

// CellBlock is the rendered content committed to a grid cell: the display
// text plus the category tag that drives cell coloring.
type CellBlock struct {
	Text     string
	Category string
}

// Placement records one committed block: a single cell or a merged
// vertical span of slots within one date column. Rows are a half-open
// [StartRow, EndRow) interval.
type Placement struct {
	Col      int
	StartRow int
	EndRow   int
	Block    CellBlock
	Merged   bool
}

type cellKey struct {
	col int
	row int
}

// Grid is the per-export calendar surface: slot rows crossed with date
// columns. It owns the claimed-cell bookkeeping for one placement pass and
// is discarded with the export call; nothing about it outlives a request.
type Grid struct {
	slots      SlotTable
	dates      DateRange
	placements []Placement
	claimed    map[cellKey]bool
}

// NewGrid creates an empty grid for the given slot table and date range.
func NewGrid(slots SlotTable, dates DateRange) *Grid {
	return &Grid{
		slots:   slots,
		dates:   dates,
		claimed: make(map[cellKey]bool),
	}
}

// Rows returns the number of slot rows.
func (g *Grid) Rows() int { return g.slots.Len() }

// Cols returns the number of date columns.
func (g *Grid) Cols() int { return g.dates.Days() }

// Slots returns the grid's slot table.
func (g *Grid) Slots() SlotTable { return g.slots }

// Dates returns the grid's date range.
func (g *Grid) Dates() DateRange { return g.dates }

// Placements returns every committed placement in commit order.
func (g *Grid) Placements() []Placement { return g.placements }

// Claimed reports whether a prior placement owns the cell.
func (g *Grid) Claimed(col, row int) bool {
	return g.claimed[cellKey{col: col, row: row}]
}

// EventSpan is a normalized event interval ready for placement: a calendar
// date plus a [StartRow, EndRow) slot interval and the rendered block.
type EventSpan struct {
	Date     Date
	StartRow int
	EndRow   int
	Block    CellBlock
}

// PlaceSpan resolves the span's date to a column and commits it. Spans on
// dates outside the grid's range are skipped and report false.
func (g *Grid) PlaceSpan(s EventSpan) bool {
	col := g.dates.ColumnIndex(s.Date)
	if col < 0 {
		return false
	}
	return g.Place(col, s.StartRow, s.EndRow, s.Block)
}

// Place commits a block to the grid, resolving every edge case
// deterministically:
//
//   - invalid coordinates (column or start row outside the grid) skip the
//     placement entirely, committing nothing;
//   - a degenerate or inverted interval (EndRow <= StartRow) occupies
//     exactly one slot;
//   - a multi-slot interval becomes a merged span unless any row in range
//     is already claimed, in which case the block degrades to the single
//     start cell and the earlier placement keeps its full span;
//   - a start cell already claimed by a prior placement skips the block,
//     so no cell ever carries two events' content.
//
// After a successful commit every covered row is claimed for the column.
// Callers feed events in input order; claims are first-come-first-kept.
func (g *Grid) Place(col, startRow, endRow int, block CellBlock) bool {
	if col < 0 || col >= g.Cols() || startRow < 0 || startRow >= g.Rows() {
		return false
	}

	if endRow <= startRow {
		endRow = startRow + 1
	}
	if endRow > g.Rows() {
		endRow = g.Rows()
	}

	for row := startRow; row < endRow; row++ {
		if g.claimed[cellKey{col: col, row: row}] {
			// Conflict: degrade to the start cell alone.
			endRow = startRow + 1
			break
		}
	}
	if g.claimed[cellKey{col: col, row: startRow}] {
		return false
	}

	p := Placement{
		Col:      col,
		StartRow: startRow,
		EndRow:   endRow,
		Block:    block,
		Merged:   endRow-startRow > 1,
	}
	g.placements = append(g.placements, p)
	for row := startRow; row < endRow; row++ {
		g.claimed[cellKey{col: col, row: row}] = true
	}
	return true
}
