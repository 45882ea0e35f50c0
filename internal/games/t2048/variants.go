package t2048

import (
	"fmt"

	"github.com/vovakirdan/tui-2048/internal/registry"
)

// Variant is a selectable grid size.
type Variant struct {
	ID   string // Size label, e.g. "4x4"
	Name string
	Rows int
	Cols int
}

// Variants lists the square grids offered in menus, smallest first.
var Variants = []Variant{
	{ID: "4x4", Name: "Classic", Rows: 4, Cols: 4},
	{ID: "5x5", Name: "Roomy", Rows: 5, Cols: 5},
	{ID: "6x6", Name: "Large", Rows: 6, Cols: 6},
	{ID: "7x7", Name: "Huge", Rows: 7, Cols: 7},
	{ID: "8x8", Name: "Marathon", Rows: 8, Cols: 8},
}

// DefaultVariant is the classic 4x4 grid.
var DefaultVariant = Variants[0]

// VariantID returns the registry ID for a rows x cols game.
func VariantID(rows, cols int) string {
	return fmt.Sprintf("2048-%dx%d", rows, cols)
}

// GameID returns the registry ID of v.
func (v Variant) GameID() string {
	return VariantID(v.Rows, v.Cols)
}

// VariantByID finds a variant by its size label ("5x5") or game ID ("2048-5x5").
func VariantByID(id string) (Variant, bool) {
	for _, v := range Variants {
		if v.ID == id || v.GameID() == id {
			return v, true
		}
	}
	return Variant{}, false
}

// ParseSize parses a "<rows>x<cols>" label, with or without the "2048-" prefix.
func ParseSize(s string) (rows, cols int, err error) {
	var label string
	if _, scanErr := fmt.Sscanf(s, "2048-%s", &label); scanErr == nil {
		s = label
	}
	var rest string
	if n, _ := fmt.Sscanf(s, "%dx%d%s", &rows, &cols, &rest); n != 2 {
		return 0, 0, fmt.Errorf("t2048: invalid size %q, want <rows>x<cols>", s)
	}
	if rows <= 0 || cols <= 0 {
		return 0, 0, fmt.Errorf("t2048: invalid size %q, dimensions must be positive", s)
	}
	return rows, cols, nil
}

func init() {
	for _, v := range Variants {
		registry.Register(v.GameID(), func() registry.Game {
			return New(v.Rows, v.Cols)
		})
	}
}
