package ui

// Rect is a rectangle of terminal cells.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Offset returns r moved by (dx, dy).
func (r Rect) Offset(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Region is where one mounted field sits on screen.
type Region struct {
	Field FieldID
	// Bounds covers everything the field draws: chips, input and open panel.
	Bounds Rect
	Input  Rect
	// Chips covers the chip rows above the input; empty for single-value
	// fields and for chip fields with no chips.
	Chips Rect
	// Panel is the open suggestion panel including its border; empty when
	// the panel is closed.
	Panel     Rect
	PanelRows int
}

// PanelOpen reports whether the region has a visible suggestion panel.
func (r Region) PanelOpen() bool {
	return !r.Panel.Empty() && r.PanelRows > 0
}

// rowAt returns the suggestion row under y, or -1.
func (r Region) rowAt(x, y int) int {
	if !r.PanelOpen() || !r.Panel.Contains(x, y) {
		return -1
	}
	row := y - r.Panel.Y - 1
	if row < 0 || row >= r.PanelRows {
		return -1
	}
	return row
}

// Press is the resolution of a left mouse press against the mounted fields.
type Press struct {
	// Dismiss lists fields with an open panel whose bounds exclude the point.
	Dismiss []FieldID
	// Target is the field under the point; empty when the press hit none.
	Target FieldID
	// PanelRow is the suggestion row of Target under the point, or -1.
	PanelRow int
}

// Dismissal tracks the regions of every mounted field. The form rebuilds it
// from its layout on every render pass, so regions of unmounted fields
// disappear with them.
type Dismissal struct {
	regions []Region
}

// NewDismissal creates a Dismissal over regions.
func NewDismissal(regions []Region) Dismissal {
	return Dismissal{regions: regions}
}

// Regions returns the mounted regions.
func (d Dismissal) Regions() []Region {
	return d.regions
}

// Region returns the region mounted for field.
func (d Dismissal) Region(field FieldID) (Region, bool) {
	for _, r := range d.regions {
		if r.Field == field {
			return r, true
		}
	}
	return Region{}, false
}

// Resolve hit-tests a press at (x, y).
func (d Dismissal) Resolve(x, y int) Press {
	p := Press{PanelRow: -1}
	for _, r := range d.regions {
		inside := r.Bounds.Contains(x, y)
		if r.PanelOpen() && !inside {
			p.Dismiss = append(p.Dismiss, r.Field)
		}
		if !inside || p.Target != "" {
			continue
		}
		p.Target = r.Field
		p.PanelRow = r.rowAt(x, y)
	}
	return p
}
